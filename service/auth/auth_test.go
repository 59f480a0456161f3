package auth

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
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
)

// fakeWechatClient 按 code 返回预设的 openid，模拟微信服务端换取接口。
type fakeWechatClient struct {
	sessions map[string]string // code -> openid
}

func (f *fakeWechatClient) GetSession(_ context.Context, code string) (string, string, error) {
	if openid, ok := f.sessions[code]; ok {
		return openid, "session-key", nil
	}
	return "", "", errors.New("invalid code")
}

func (f *fakeWechatClient) GetPhoneNumber(context.Context, string) (string, error) {
	panic("不应被调用")
}

// fakeUserRepo 内存版用户仓库，模拟 (platform, openid) 唯一索引的建档语义。
type fakeUserRepo struct {
	users        map[string]*entities.User // key: platform + "/" + openid
	lastLoginIDs []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (f *fakeUserRepo) key(platform enums.Platform, openid string) string {
	return string(platform) + "/" + openid
}

func (f *fakeUserRepo) GetOrCreateByOpenid(_ context.Context, candidate *entities.User) (*entities.User, bool, error) {
	k := f.key(candidate.Platform, candidate.Openid)
	if existing, ok := f.users[k]; ok {
		return existing, false, nil
	}
	f.users[k] = candidate
	return candidate, true, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID string) (*entities.User, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, commonerrors.ErrRepoNotFound
}

func (f *fakeUserRepo) UpdateFields(context.Context, string, map[string]interface{}) error {
	panic("不应被调用")
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, userID string, _ time.Time) error {
	f.lastLoginIDs = append(f.lastLoginIDs, userID)
	return nil
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

func newTestService(t *testing.T, repo *fakeUserRepo) AuthService {
	t.Helper()
	wechat := &fakeWechatClient{sessions: map[string]string{"good-code": "openid-1"}}
	jwtUtil := dependencies.NewJWTUtility(&config.JWTConfig{
		SecretKey: "auth-service-test-key",
		Issuer:    "star-vast-village-test",
	})
	return NewAuthService(wechat, repo, jwtUtil, newTestLogger(t))
}

func TestLoginOrRegister_FirstLoginCreatesResident(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	resp, err := svc.LoginOrRegister(context.Background(), dto.LoginData{Code: "good-code"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEmpty(t, resp.UserInfo.ID)
	assert.Equal(t, "openid-1", resp.UserInfo.Openid)
	// 新建档的用户是待认证的普通住户
	assert.Equal(t, enums.RoleResident, resp.UserInfo.Role)
	assert.Equal(t, enums.AuthStatusPending, resp.UserInfo.AuthStatus)
	assert.Equal(t, []string{resp.UserInfo.ID}, repo.lastLoginIDs)
}

func TestLoginOrRegister_RepeatLoginReusesRecord(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	first, err := svc.LoginOrRegister(context.Background(), dto.LoginData{Code: "good-code"})
	require.NoError(t, err)
	second, err := svc.LoginOrRegister(context.Background(), dto.LoginData{Code: "good-code"})
	require.NoError(t, err)

	// 同一 openid 再次登录不建新档
	assert.Equal(t, first.UserInfo.ID, second.UserInfo.ID)
	assert.Len(t, repo.users, 1)
}

func TestLoginOrRegister_KeepsExistingRoleAndStatus(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["weapp/openid-1"] = &entities.User{
		ID:         "existing-id",
		Openid:     "openid-1",
		Platform:   enums.PlatformWeapp,
		Role:       enums.RoleAdmin,
		AuthStatus: enums.AuthStatusVerified,
		Nickname:   "老用户",
	}
	svc := newTestService(t, repo)

	resp, err := svc.LoginOrRegister(context.Background(), dto.LoginData{Code: "good-code"})
	require.NoError(t, err)

	assert.Equal(t, "existing-id", resp.UserInfo.ID)
	assert.Equal(t, enums.RoleAdmin, resp.UserInfo.Role)
	assert.Equal(t, enums.AuthStatusVerified, resp.UserInfo.AuthStatus)
	assert.Equal(t, "老用户", resp.UserInfo.Nickname)
}

func TestLoginOrRegister_InvalidCode(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())

	_, err := svc.LoginOrRegister(context.Background(), dto.LoginData{Code: "bad-code"})
	assert.ErrorIs(t, err, commonerrors.ErrInvalidCredential)
}

func TestLoginOrRegister_UnsupportedPlatform(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())

	for _, platform := range []string{"xhs", "web", "alien"} {
		_, err := svc.LoginOrRegister(context.Background(), dto.LoginData{Code: "good-code", Platform: platform})
		assert.ErrorIs(t, err, commonerrors.ErrUnsupportedPlatform, "platform: %s", platform)
	}
}
