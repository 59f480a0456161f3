package dependencies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbeenigg/star-vast-village/config"
	"github.com/pbeenigg/star-vast-village/constants"
)

func newTestJWTUtility() JWTTokenInterface {
	return NewJWTUtility(&config.JWTConfig{
		SecretKey: "unit-test-signing-key",
		Issuer:    "star-vast-village-test",
	})
}

func TestJWTUtility_AccessTokenRoundTrip(t *testing.T) {
	util := newTestJWTUtility()

	tokenString, err := util.GenerateAccessToken("user-1", "openid-abc")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := util.ParseAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "openid-abc", claims.Openid)
	assert.Equal(t, constants.TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID, "JTI 必须存在，黑名单依赖它")
	assert.NotNil(t, claims.ExpiresAt)
}

func TestJWTUtility_RefreshTokenRoundTrip(t *testing.T) {
	util := newTestJWTUtility()

	tokenString, err := util.GenerateRefreshToken("user-1", "openid-abc")
	require.NoError(t, err)

	claims, err := util.ParseRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, constants.TokenTypeRefresh, claims.TokenType)
}

func TestJWTUtility_TokenTypeMismatchRejected(t *testing.T) {
	util := newTestJWTUtility()

	accessToken, err := util.GenerateAccessToken("user-1", "openid-abc")
	require.NoError(t, err)
	refreshToken, err := util.GenerateRefreshToken("user-1", "openid-abc")
	require.NoError(t, err)

	// 访问令牌不能当刷新令牌用，反之亦然
	_, err = util.ParseRefreshToken(accessToken)
	assert.Error(t, err)
	_, err = util.ParseAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestJWTUtility_JTIUniquePerToken(t *testing.T) {
	util := newTestJWTUtility()

	first, err := util.GenerateAccessToken("user-1", "openid-abc")
	require.NoError(t, err)
	second, err := util.GenerateAccessToken("user-1", "openid-abc")
	require.NoError(t, err)

	firstClaims, err := util.ParseAccessToken(first)
	require.NoError(t, err)
	secondClaims, err := util.ParseAccessToken(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestJWTUtility_WrongSecretRejected(t *testing.T) {
	util := newTestJWTUtility()
	other := NewJWTUtility(&config.JWTConfig{
		SecretKey: "a-different-key",
		Issuer:    "star-vast-village-test",
	})

	tokenString, err := util.GenerateAccessToken("user-1", "openid-abc")
	require.NoError(t, err)

	_, err = other.ParseAccessToken(tokenString)
	assert.Error(t, err)
}

func TestJWTUtility_WrongIssuerRejected(t *testing.T) {
	util := newTestJWTUtility()
	other := NewJWTUtility(&config.JWTConfig{
		SecretKey: "unit-test-signing-key",
		Issuer:    "someone-else",
	})

	tokenString, err := util.GenerateAccessToken("user-1", "openid-abc")
	require.NoError(t, err)

	_, err = other.ParseAccessToken(tokenString)
	assert.Error(t, err)
}

func TestJWTUtility_GarbageTokenRejected(t *testing.T) {
	util := newTestJWTUtility()

	_, err := util.ParseAccessToken("not.a.jwt")
	assert.Error(t, err)
	_, err = util.ParseAccessToken("")
	assert.Error(t, err)
}
