package dependencies

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pbeenigg/star-vast-village/config"
	"github.com/pbeenigg/star-vast-village/constants"
)

// JWTTokenInterface 定义 JWT 工具的接口
// - 用于生成和解析访问令牌与刷新令牌。
// - 两类令牌共用密钥，通过 type 声明区分：访问令牌不能当刷新令牌用，反之亦然。
type JWTTokenInterface interface {
	// GenerateAccessToken 生成访问令牌
	// - 输入: userID 用户ID, openid 外部身份标识
	// - 输出: 访问令牌字符串和可能的错误
	GenerateAccessToken(userID string, openid string) (string, error)

	// GenerateRefreshToken 生成刷新令牌
	GenerateRefreshToken(userID string, openid string) (string, error)

	// ParseAccessToken 解析并验证访问令牌，type 声明必须为 access
	ParseAccessToken(tokenString string) (*CustomClaims, error)

	// ParseRefreshToken 解析并验证刷新令牌，type 声明必须为 refresh
	ParseRefreshToken(tokenString string) (*CustomClaims, error)
}

// CustomClaims 定义 JWT 的声明结构体，包含标准字段和自定义字段
type CustomClaims struct {
	UserID               string `json:"userId"` // 用户ID，唯一标识用户
	Openid               string `json:"openid"` // 身份提供方下发的外部标识
	TokenType            string `json:"type"`   // 令牌类型: access 或 refresh
	jwt.RegisteredClaims        // 嵌入 JWT v5 的标准声明字段
}

// JWTUtility 实现 JWTTokenInterface 接口的结构体
type JWTUtility struct {
	cfg *config.JWTConfig
}

// NewJWTUtility 创建 JWTUtility 实例，通过依赖注入初始化
func NewJWTUtility(cfg *config.JWTConfig) JWTTokenInterface {
	return &JWTUtility{cfg: cfg}
}

// GenerateAccessToken 生成访问令牌
func (ju *JWTUtility) GenerateAccessToken(userID string, openid string) (string, error) {
	return ju.generate(userID, openid, constants.TokenTypeAccess, constants.AccessTokenTTL)
}

// GenerateRefreshToken 生成刷新令牌
func (ju *JWTUtility) GenerateRefreshToken(userID string, openid string) (string, error) {
	return ju.generate(userID, openid, constants.TokenTypeRefresh, constants.RefreshTokenTTL)
}

// generate 构造并签名令牌。JTI 使用 UUID，保证黑名单键的唯一性。
func (ju *JWTUtility) generate(userID, openid, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := &CustomClaims{
		UserID:    userID,
		Openid:    openid,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ju.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
	}

	// 使用 HS256 签名算法
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(ju.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("签名令牌失败: %w", err)
	}
	return signedToken, nil
}

// ParseAccessToken 解析并验证访问令牌
func (ju *JWTUtility) ParseAccessToken(tokenString string) (*CustomClaims, error) {
	return ju.parseToken(tokenString, constants.TokenTypeAccess)
}

// ParseRefreshToken 解析并验证刷新令牌
func (ju *JWTUtility) ParseRefreshToken(tokenString string) (*CustomClaims, error) {
	return ju.parseToken(tokenString, constants.TokenTypeRefresh)
}

// parseToken 解析并验证 JWT 令牌，同时校验 type 声明。
// type 不匹配与签名/过期一样按无效令牌处理，防止访问令牌被当作刷新令牌重放。
func (ju *JWTUtility) parseToken(tokenString string, expectedType string) (*CustomClaims, error) {
	parser := jwt.NewParser(
		jwt.WithExpirationRequired(),  // 强制要求令牌包含过期时间
		jwt.WithIssuer(ju.cfg.Issuer), // 验证发行者是否匹配配置中的值
	)

	token, err := parser.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法是否为 HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("签名算法不匹配: %v", token.Header["alg"])
		}
		return []byte(ju.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的JWT声明")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("令牌类型不匹配: 期望 %s", expectedType)
	}

	return claims, nil
}
