package constants

import (
	"time"
)

const (
	// 认证令牌和刷新令牌的过期时间
	// 小程序端没有 Cookie 续期机制，访问令牌给了相对较长的 7 天有效期，
	// 角色/认证状态的变更依赖认证中间件每次回查数据库即时生效。

	AccessTokenTTL = 7 * 24 * time.Hour // 认证令牌（Access Token）的有效期

	RefreshTokenTTL = 30 * 24 * time.Hour // 刷新令牌（Refresh Token）的有效期
)

const (
	// TokenTypeAccess 访问令牌的 type 声明值
	TokenTypeAccess = "access"

	// TokenTypeRefresh 刷新令牌的 type 声明值
	TokenTypeRefresh = "refresh"
)

// BlacklistKeyPrefix 令牌黑名单在 Redis 中的键前缀
const BlacklistKeyPrefix = "blacklist"
