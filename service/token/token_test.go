package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/config"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/dependencies"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
)

// fakeBlacklist 内存版令牌黑名单，可注入错误模拟 Redis 不可用。
type fakeBlacklist struct {
	entries  map[string]time.Duration
	addErr   error
	checkErr error
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{entries: make(map[string]time.Duration)}
}

func (f *fakeBlacklist) AddJtiToBlacklist(_ context.Context, jti string, ttl time.Duration) error {
	if f.addErr != nil {
		return f.addErr
	}
	if ttl <= 0 {
		return nil
	}
	f.entries[jti] = ttl
	return nil
}

func (f *fakeBlacklist) IsJtiBlacklisted(_ context.Context, jti string) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	_, ok := f.entries[jti]
	return ok, nil
}

// fakeUserRepo 只实现令牌服务用到的回查路径，其余方法不应被调用。
type fakeUserRepo struct {
	users map[string]*entities.User
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entities.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) GetOrCreateByOpenid(context.Context, *entities.User) (*entities.User, bool, error) {
	panic("不应被调用")
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID string) (*entities.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, commonerrors.ErrRepoNotFound
}

func (f *fakeUserRepo) UpdateFields(context.Context, string, map[string]interface{}) error {
	panic("不应被调用")
}

func (f *fakeUserRepo) UpdateLastLogin(context.Context, string, time.Time) error {
	panic("不应被调用")
}

func (f *fakeUserRepo) ListByAuthStatus(context.Context, enums.AuthStatus, int, int) ([]*entities.User, int64, error) {
	panic("不应被调用")
}

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(config.ZapConfig{Level: "error", Encoding: "console"})
	require.NoError(t, err)
	return logger
}

func newTestJWT() dependencies.JWTTokenInterface {
	return dependencies.NewJWTUtility(&config.JWTConfig{
		SecretKey: "token-service-test-key",
		Issuer:    "star-vast-village-test",
	})
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	jwtUtil := newTestJWT()
	blacklist := newFakeBlacklist()
	svc := NewAuthTokenService(blacklist, newFakeUserRepo(), jwtUtil, newTestLogger(t))

	refreshToken, err := jwtUtil.GenerateRefreshToken("user-1", "openid-1")
	require.NoError(t, err)
	claims, err := jwtUtil.ParseRefreshToken(refreshToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), refreshToken))

	revoked, err := blacklist.IsJtiBlacklisted(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogout_InvalidTokenIsIdempotent(t *testing.T) {
	blacklist := newFakeBlacklist()
	svc := NewAuthTokenService(blacklist, newFakeUserRepo(), newTestJWT(), newTestLogger(t))

	// 解析不了的令牌无需吊销，退出视为成功
	assert.NoError(t, svc.Logout(context.Background(), "garbage"))
	assert.Empty(t, blacklist.entries)
}

func TestLogout_BlacklistFailureDoesNotBlock(t *testing.T) {
	jwtUtil := newTestJWT()
	blacklist := newFakeBlacklist()
	blacklist.addErr = errors.New("redis down")
	svc := NewAuthTokenService(blacklist, newFakeUserRepo(), jwtUtil, newTestLogger(t))

	refreshToken, err := jwtUtil.GenerateRefreshToken("user-1", "openid-1")
	require.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), refreshToken))
}

func TestRefreshToken_RotatesAndRevokesOldToken(t *testing.T) {
	jwtUtil := newTestJWT()
	blacklist := newFakeBlacklist()
	user := &entities.User{ID: "user-1", Openid: "openid-1", Role: enums.RoleResident}
	svc := NewAuthTokenService(blacklist, newFakeUserRepo(user), jwtUtil, newTestLogger(t))

	oldRefresh, err := jwtUtil.GenerateRefreshToken(user.ID, user.Openid)
	require.NoError(t, err)
	oldClaims, err := jwtUtil.ParseRefreshToken(oldRefresh)
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), oldRefresh)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Token)
	assert.NotEmpty(t, pair.RefreshToken)

	// 新令牌必须可按各自的类型解析
	accessClaims, err := jwtUtil.ParseAccessToken(pair.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, accessClaims.UserID)
	newClaims, err := jwtUtil.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, oldClaims.ID, newClaims.ID)

	// 轮换后旧 JTI 进入黑名单，同一刷新令牌不能用第二次
	revoked, err := blacklist.IsJtiBlacklisted(context.Background(), oldClaims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.RefreshToken(context.Background(), oldRefresh)
	assert.ErrorIs(t, err, commonerrors.ErrInvalidToken)
}

func TestRefreshToken_AccessTokenRejected(t *testing.T) {
	jwtUtil := newTestJWT()
	user := &entities.User{ID: "user-1", Openid: "openid-1"}
	svc := NewAuthTokenService(newFakeBlacklist(), newFakeUserRepo(user), jwtUtil, newTestLogger(t))

	accessToken, err := jwtUtil.GenerateAccessToken(user.ID, user.Openid)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), accessToken)
	assert.ErrorIs(t, err, commonerrors.ErrInvalidToken)
}

func TestRefreshToken_DeletedUserRejected(t *testing.T) {
	jwtUtil := newTestJWT()
	svc := NewAuthTokenService(newFakeBlacklist(), newFakeUserRepo(), jwtUtil, newTestLogger(t))

	refreshToken, err := jwtUtil.GenerateRefreshToken("ghost", "openid-x")
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), refreshToken)
	assert.ErrorIs(t, err, commonerrors.ErrInvalidToken)
}

func TestRefreshToken_BlacklistUnavailableFailsClosed(t *testing.T) {
	jwtUtil := newTestJWT()
	blacklist := newFakeBlacklist()
	blacklist.checkErr = errors.New("redis down")
	user := &entities.User{ID: "user-1", Openid: "openid-1"}
	svc := NewAuthTokenService(blacklist, newFakeUserRepo(user), jwtUtil, newTestLogger(t))

	refreshToken, err := jwtUtil.GenerateRefreshToken(user.ID, user.Openid)
	require.NoError(t, err)

	// 黑名单不可用时宁可拒绝刷新，也不放行可能已吊销的令牌
	_, err = svc.RefreshToken(context.Background(), refreshToken)
	assert.ErrorIs(t, err, commonerrors.ErrSystemError)
}
