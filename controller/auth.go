package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/vo"
	"github.com/pbeenigg/star-vast-village/response"
	"github.com/pbeenigg/star-vast-village/service/auth"
	"github.com/pbeenigg/star-vast-village/service/token"
)

// AuthController 处理登录与令牌生命周期相关的 HTTP 请求。
type AuthController struct {
	authService  auth.AuthService
	tokenService token.AuthTokenService
	logger       *core.ZapLogger
}

// NewAuthController 创建一个新的 AuthController 实例。
func NewAuthController(
	authService auth.AuthService,
	tokenService token.AuthTokenService,
	logger *core.ZapLogger,
) *AuthController {
	return &AuthController{
		authService:  authService,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Login 处理小程序登录请求。
// @Summary 登录
// @Description 使用客户端授权码登录。首次登录自动建档，返回令牌对和用户信息。
// @Tags 认证管理 (Auth Management)
// @Accept json
// @Produce json
// @Param request body dto.LoginData true "登录请求体，包含授权码和可选的平台标识"
// @Success 200 {object} docs.SwaggerAPILoginResponse "登录成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "授权码无效或平台不支持"
// @Failure 500 {object} docs.SwaggerAPIErrorResponse "系统内部错误"
// @Router /api/v1/village/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	const operation = "AuthController.Login"

	var req dto.LoginData
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "请求参数无效")
		return
	}

	result, err := ctrl.authService.LoginOrRegister(c.Request.Context(), req)
	if err != nil {
		ctrl.logger.Warn("登录失败", zap.String("operation", operation), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "登录成功")
}

// RefreshToken 处理刷新令牌请求。
// @Summary 刷新令牌
// @Description 使用有效的刷新令牌换取新的令牌对。旧刷新令牌同时被吊销（轮换）。
// @Tags 认证管理 (Auth Management)
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "请求体，包含 refreshToken 字段"
// @Success 200 {object} docs.SwaggerAPITokenPairResponse "刷新成功，返回新的令牌对"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "未提供有效的刷新令牌"
// @Failure 401 {object} docs.SwaggerAPIErrorResponse "刷新令牌无效、已过期或已被吊销"
// @Failure 500 {object} docs.SwaggerAPIErrorResponse "系统内部错误"
// @Router /api/v1/village/auth/refresh-token [post]
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	const operation = "AuthController.RefreshToken"

	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "未提供有效的刷新令牌")
		return
	}

	newTokenPair, err := ctrl.tokenService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ctrl.logger.Warn("刷新令牌失败", zap.String("operation", operation), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, newTokenPair, "刷新成功")
}

// Logout 处理退出登录请求。
// @Summary 退出登录
// @Description 吊销请求体中的刷新令牌。客户端应在调用后清除本地存储的令牌对。
// @Tags 认证管理 (Auth Management)
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest false "请求体，包含要吊销的 refreshToken"
// @Success 200 {object} docs.SwaggerAPIEmptyResponse "退出成功"
// @Failure 500 {object} docs.SwaggerAPIErrorResponse "系统内部错误"
// @Router /api/v1/village/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	const operation = "AuthController.Logout"

	var req dto.RefreshTokenRequest
	// 即使请求体为空也按退出成功处理，退出操作是幂等的
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken != "" {
		if err := ctrl.tokenService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
			ctrl.logger.Error("吊销刷新令牌失败", zap.String("operation", operation), zap.Error(err))
		}
	}
	response.RespondSuccess(c, vo.Empty{}, "退出成功")
}

// RegisterRoutes 注册登录与令牌管理路由。这些端点不需要认证中间件:
// 登录本身是认证入口，刷新与退出由刷新令牌自证身份。
func (ctrl *AuthController) RegisterRoutes(group *gin.RouterGroup) {
	authRoutes := group.Group("/auth")
	{
		authRoutes.POST("/login", ctrl.Login)
		authRoutes.POST("/refresh-token", ctrl.RefreshToken)
		authRoutes.POST("/logout", ctrl.Logout)
	}
}
