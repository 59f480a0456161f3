package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/config"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/dependencies"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
)

// fakeBlacklist 内存版令牌黑名单。
type fakeBlacklist struct {
	entries  map[string]bool
	checkErr error
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{entries: make(map[string]bool)}
}

func (f *fakeBlacklist) AddJtiToBlacklist(_ context.Context, jti string, _ time.Duration) error {
	f.entries[jti] = true
	return nil
}

func (f *fakeBlacklist) IsJtiBlacklisted(_ context.Context, jti string) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.entries[jti], nil
}

// fakeUserRepo 只提供认证回查路径。
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
		SecretKey: "middleware-test-key",
		Issuer:    "star-vast-village-test",
	})
}

// setupRouter 组装一个挂了认证中间件的测试路由，记录受保护 handler 是否被执行。
func setupRouter(t *testing.T, jwtUtil dependencies.JWTTokenInterface, blacklist *fakeBlacklist, repo *fakeUserRepo, extra ...gin.HandlerFunc) (*gin.Engine, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reached := false
	handlers := []gin.HandlerFunc{AuthMiddleware(jwtUtil, blacklist, repo, newTestLogger(t))}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		reached = true
		c.Status(http.StatusOK)
	})

	router := gin.New()
	router.GET("/protected", handlers...)
	return router, &reached
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtUtil := newTestJWT()
	user := &entities.User{ID: "user-1", Openid: "openid-1", Role: enums.RoleResident}
	router, reached := setupRouter(t, jwtUtil, newFakeBlacklist(), newFakeUserRepo(user))

	token, err := jwtUtil.GenerateAccessToken(user.ID, user.Openid)
	require.NoError(t, err)

	recorder := doRequest(router, token)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, *reached)
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	jwtUtil := newTestJWT()
	router, reached := setupRouter(t, jwtUtil, newFakeBlacklist(), newFakeUserRepo())

	recorder := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, *reached)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	jwtUtil := newTestJWT()
	user := &entities.User{ID: "user-1", Openid: "openid-1"}
	router, reached := setupRouter(t, jwtUtil, newFakeBlacklist(), newFakeUserRepo(user))

	// 刷新令牌不能用来访问受保护接口
	refreshToken, err := jwtUtil.GenerateRefreshToken(user.ID, user.Openid)
	require.NoError(t, err)

	recorder := doRequest(router, refreshToken)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, *reached)
}

func TestAuthMiddleware_BlacklistedJTIRejected(t *testing.T) {
	jwtUtil := newTestJWT()
	user := &entities.User{ID: "user-1", Openid: "openid-1"}
	blacklist := newFakeBlacklist()
	router, reached := setupRouter(t, jwtUtil, blacklist, newFakeUserRepo(user))

	token, err := jwtUtil.GenerateAccessToken(user.ID, user.Openid)
	require.NoError(t, err)
	claims, err := jwtUtil.ParseAccessToken(token)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddJtiToBlacklist(context.Background(), claims.ID, time.Hour))

	recorder := doRequest(router, token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, *reached)
}

func TestAuthMiddleware_BlacklistUnavailableFailsClosed(t *testing.T) {
	jwtUtil := newTestJWT()
	user := &entities.User{ID: "user-1", Openid: "openid-1"}
	blacklist := newFakeBlacklist()
	blacklist.checkErr = errors.New("redis down")
	router, reached := setupRouter(t, jwtUtil, blacklist, newFakeUserRepo(user))

	token, err := jwtUtil.GenerateAccessToken(user.ID, user.Openid)
	require.NoError(t, err)

	recorder := doRequest(router, token)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.False(t, *reached)
}

func TestAuthMiddleware_DeletedUserRejected(t *testing.T) {
	jwtUtil := newTestJWT()
	router, reached := setupRouter(t, jwtUtil, newFakeBlacklist(), newFakeUserRepo())

	token, err := jwtUtil.GenerateAccessToken("ghost", "openid-x")
	require.NoError(t, err)

	recorder := doRequest(router, token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, *reached)
}

func TestRequireRoles_ResidentBlockedFromAdminRoute(t *testing.T) {
	jwtUtil := newTestJWT()
	user := &entities.User{ID: "user-1", Openid: "openid-1", Role: enums.RoleResident}
	router, reached := setupRouter(t, jwtUtil, newFakeBlacklist(), newFakeUserRepo(user), RequireRoles(enums.RoleAdmin))

	token, err := jwtUtil.GenerateAccessToken(user.ID, user.Openid)
	require.NoError(t, err)

	recorder := doRequest(router, token)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.False(t, *reached)
}

func TestRequireRoles_AdminAllowed(t *testing.T) {
	jwtUtil := newTestJWT()
	user := &entities.User{ID: "admin-1", Openid: "openid-1", Role: enums.RoleAdmin}
	router, reached := setupRouter(t, jwtUtil, newFakeBlacklist(), newFakeUserRepo(user), RequireRoles(enums.RoleAdmin))

	token, err := jwtUtil.GenerateAccessToken(user.ID, user.Openid)
	require.NoError(t, err)

	recorder := doRequest(router, token)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, *reached)
}

func TestRequireVerifiedResident(t *testing.T) {
	jwtUtil := newTestJWT()
	pending := &entities.User{ID: "pending-1", Openid: "o1", Role: enums.RoleResident, AuthStatus: enums.AuthStatusPending}
	verified := &entities.User{ID: "verified-1", Openid: "o2", Role: enums.RoleResident, AuthStatus: enums.AuthStatusVerified}
	admin := &entities.User{ID: "admin-1", Openid: "o3", Role: enums.RoleAdmin, AuthStatus: enums.AuthStatusPending}
	repo := newFakeUserRepo(pending, verified, admin)

	router, _ := setupRouter(t, jwtUtil, newFakeBlacklist(), repo, RequireVerifiedResident())

	cases := []struct {
		user     *entities.User
		wantCode int
	}{
		{pending, http.StatusForbidden},
		{verified, http.StatusOK},
		// 管理员不受住户认证门禁限制
		{admin, http.StatusOK},
	}
	for _, tc := range cases {
		token, err := jwtUtil.GenerateAccessToken(tc.user.ID, tc.user.Openid)
		require.NoError(t, err)
		recorder := doRequest(router, token)
		assert.Equal(t, tc.wantCode, recorder.Code, "user: %s", tc.user.ID)
	}
}

func TestCurrentUserHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// 未认证的上下文
	_, ok := CurrentUser(c)
	assert.False(t, ok)
	assert.Equal(t, "", CurrentUserID(c))

	user := &entities.User{ID: "user-1"}
	c.Set(ContextKeyUserID, user.ID)
	c.Set(ContextKeyUser, user)

	got, ok := CurrentUser(c)
	require.True(t, ok)
	assert.Equal(t, user, got)
	assert.Equal(t, "user-1", CurrentUserID(c))
}
