package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/middleware"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/response"
	"github.com/pbeenigg/star-vast-village/service/user"
)

// maxAvatarSize 头像文件大小上限 (5MB)。
const maxAvatarSize = 5 << 20

// UserController 处理当前用户的资料、认证与手机号绑定相关的 HTTP 请求。
// 所有端点都要求已通过认证中间件，操作目标固定为当前登录用户。
type UserController struct {
	userService user.UserService
	logger      *core.ZapLogger
}

// NewUserController 创建一个新的 UserController 实例。
func NewUserController(userService user.UserService, logger *core.ZapLogger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetProfile 获取当前用户的个人资料。
// @Summary 获取个人资料
// @Description 返回当前登录用户的资料，手机号脱敏展示。
// @Tags 用户管理 (User Management)
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} docs.SwaggerAPIProfileResponse "获取成功"
// @Failure 401 {object} docs.SwaggerAPIErrorResponse "未认证或令牌无效"
// @Router /api/v1/village/users/me [get]
func (ctrl *UserController) GetProfile(c *gin.Context) {
	result, err := ctrl.userService.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// UpdateProfile 更新当前用户的个人资料。
// @Summary 更新个人资料
// @Description 更新昵称、头像或手机号，只更新提供了的字段。
// @Tags 用户管理 (User Management)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.UpdateProfileDTO true "待更新的资料字段"
// @Success 200 {object} docs.SwaggerAPIProfileResponse "更新成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "请求参数无效"
// @Failure 401 {object} docs.SwaggerAPIErrorResponse "未认证或令牌无效"
// @Router /api/v1/village/users/me [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "请求参数无效")
		return
	}

	result, err := ctrl.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "更新成功")
}

// SubmitCertification 提交住户认证。
// @Summary 提交住户认证
// @Description 提交实名、身份证号与住址。敏感字段先校验格式、再加密落库，提交后进入待审核状态。
// @Tags 用户管理 (User Management)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CertificationDTO true "认证信息"
// @Success 200 {object} docs.SwaggerAPICertificationResponse "提交成功，等待审核"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "身份证号或手机号格式无效"
// @Failure 401 {object} docs.SwaggerAPIErrorResponse "未认证或令牌无效"
// @Failure 500 {object} docs.SwaggerAPIErrorResponse "系统内部错误"
// @Router /api/v1/village/users/me/certification [post]
func (ctrl *UserController) SubmitCertification(c *gin.Context) {
	const operation = "UserController.SubmitCertification"

	var req dto.CertificationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "认证信息格式无效")
		return
	}

	result, err := ctrl.userService.SubmitCertification(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		ctrl.logger.Warn("提交住户认证失败", zap.String("operation", operation), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "认证已提交，等待审核")
}

// GetCertificationStatus 查询认证状态。
// @Summary 查询认证状态
// @Description 返回当前用户的认证状态与住址信息，不包含任何明文敏感字段。
// @Tags 用户管理 (User Management)
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} docs.SwaggerAPICertificationStatusResponse "查询成功"
// @Failure 401 {object} docs.SwaggerAPIErrorResponse "未认证或令牌无效"
// @Router /api/v1/village/users/me/certification [get]
func (ctrl *UserController) GetCertificationStatus(c *gin.Context) {
	result, err := ctrl.userService.GetCertificationStatus(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// BindWechatPhone 绑定微信手机号。
// @Summary 绑定微信手机号
// @Description 使用微信手机号授权码换取并绑定手机号，返回脱敏后的号码。
// @Tags 用户管理 (User Management)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.WechatPhoneDTO true "手机号授权码"
// @Success 200 {object} docs.SwaggerAPIPhoneResponse "绑定成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "授权码无效"
// @Failure 401 {object} docs.SwaggerAPIErrorResponse "未认证或令牌无效"
// @Router /api/v1/village/users/me/phone [post]
func (ctrl *UserController) BindWechatPhone(c *gin.Context) {
	const operation = "UserController.BindWechatPhone"

	var req dto.WechatPhoneDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "请求参数无效")
		return
	}

	result, err := ctrl.userService.BindWechatPhone(c.Request.Context(), middleware.CurrentUserID(c), req.Code)
	if err != nil {
		ctrl.logger.Warn("绑定微信手机号失败", zap.String("operation", operation), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "绑定成功")
}

// UploadAvatar 上传头像。
// @Summary 上传头像
// @Description 上传头像文件到对象存储并更新用户记录，返回公开访问 URL。
// @Tags 用户管理 (User Management)
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param avatar formData file true "头像文件 (最大 5MB)"
// @Success 200 {object} docs.SwaggerAPIAvatarResponse "上传成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "文件缺失或超出大小限制"
// @Failure 401 {object} docs.SwaggerAPIErrorResponse "未认证或令牌无效"
// @Failure 500 {object} docs.SwaggerAPIErrorResponse "上传到对象存储失败"
// @Router /api/v1/village/users/me/avatar [post]
func (ctrl *UserController) UploadAvatar(c *gin.Context) {
	const operation = "UserController.UploadAvatar"

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "未提供头像文件")
		return
	}
	if fileHeader.Size > maxAvatarSize {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "头像文件不能超过 5MB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctrl.logger.Error("打开上传文件失败", zap.String("operation", operation), zap.Error(err))
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, "读取上传文件失败")
		return
	}
	defer file.Close()

	result, err := ctrl.userService.UploadAvatar(c.Request.Context(), middleware.CurrentUserID(c), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "上传成功")
}

// RegisterRoutes 注册当前用户相关路由，调用方需传入已挂认证中间件的路由组。
func (ctrl *UserController) RegisterRoutes(group *gin.RouterGroup) {
	userRoutes := group.Group("/users/me")
	{
		userRoutes.GET("", ctrl.GetProfile)
		userRoutes.PUT("", ctrl.UpdateProfile)
		userRoutes.POST("/certification", ctrl.SubmitCertification)
		userRoutes.GET("/certification", ctrl.GetCertificationStatus)
		userRoutes.POST("/phone", ctrl.BindWechatPhone)
		userRoutes.POST("/avatar", ctrl.UploadAvatar)
	}
}
