package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/dependencies"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
	"github.com/pbeenigg/star-vast-village/repository/postgres"
	redisRepo "github.com/pbeenigg/star-vast-village/repository/redis"
	"github.com/pbeenigg/star-vast-village/response"
)

// Gin 上下文中当前用户信息的键名。
const (
	ContextKeyUserID = "currentUserID"
	ContextKeyUser   = "currentUser"
)

// AuthMiddleware 访问令牌认证中间件。
// 校验链路: Bearer 解析 -> 签名/过期/类型校验 -> JTI 黑名单 -> 回查用户。
// 每次请求都回查数据库取最新的角色与认证状态，角色变更和封禁即时生效，
// 不信任令牌里可能过时的快照。任何一环失败都返回 401，不区分具体原因。
func AuthMiddleware(
	jwtUtil dependencies.JWTTokenInterface,
	tokenBlackRepo redisRepo.TokenBlackRepo,
	userRepo postgres.UserRepository,
	logger *core.ZapLogger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c, commonerrors.ErrUnauthenticated.Error())
			return
		}

		claims, err := jwtUtil.ParseAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, commonerrors.ErrInvalidToken.Error())
			return
		}

		blacklisted, err := tokenBlackRepo.IsJtiBlacklisted(c.Request.Context(), claims.ID)
		if err != nil {
			// 黑名单不可用时宁可拒绝请求，也不放行可能已吊销的令牌
			logger.Error("查询令牌黑名单失败", zap.String("jti", claims.ID), zap.Error(err))
			response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, commonerrors.ErrServiceBusy.Error())
			c.Abort()
			return
		}
		if blacklisted {
			abortUnauthorized(c, commonerrors.ErrInvalidToken.Error())
			return
		}

		user, err := userRepo.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			// 用户被删除后令牌立刻失效
			abortUnauthorized(c, commonerrors.ErrInvalidToken.Error())
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// RequireRoles 角色门禁中间件，置于 AuthMiddleware 之后。
// 当前用户角色不在白名单内时返回 403。
func RequireRoles(roles ...enums.UserRole) gin.HandlerFunc {
	allowed := make(map[enums.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortUnauthorized(c, commonerrors.ErrUnauthenticated.Error())
			return
		}
		if !allowed[user.Role] {
			response.RespondError(c, http.StatusForbidden, response.ErrCodeClientForbidden, commonerrors.ErrForbidden.Error())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireVerifiedResident 住户认证门禁，报修等需要实名认证的操作使用。
// 管理员不受此限制。
func RequireVerifiedResident() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortUnauthorized(c, commonerrors.ErrUnauthenticated.Error())
			return
		}
		if user.Role != enums.RoleAdmin && user.AuthStatus != enums.AuthStatusVerified {
			response.RespondError(c, http.StatusForbidden, response.ErrCodeClientForbidden, "请先完成住户认证")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 从 Gin 上下文取出认证中间件注入的用户实体。
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	value, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entities.User)
	return user, ok
}

// CurrentUserID 从 Gin 上下文取出当前用户 ID。
func CurrentUserID(c *gin.Context) string {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return ""
	}
	id, _ := value.(string)
	return id
}

// extractBearerToken 从 Authorization 头解析 Bearer 令牌。
func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, message)
	c.Abort()
}
