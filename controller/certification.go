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

// CertificationAdminController 处理管理端住户认证审核相关的 HTTP 请求。
// 所有端点仅限管理员角色访问。
type CertificationAdminController struct {
	certService user.CertificationAdminService
	logger      *core.ZapLogger
}

// NewCertificationAdminController 创建一个新的 CertificationAdminController 实例。
func NewCertificationAdminController(certService user.CertificationAdminService, logger *core.ZapLogger) *CertificationAdminController {
	return &CertificationAdminController{
		certService: certService,
		logger:      logger,
	}
}

// ListPending 分页列出待审核的认证申请。
// @Summary 待审核认证列表
// @Description 分页返回待审核的住户认证申请，实名与身份证号脱敏展示。
// @Tags 认证审核 (Certification Review)
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码，默认 1"
// @Param pageSize query int false "每页数量，默认 10，最大 50"
// @Success 200 {object} docs.SwaggerAPICertificationListResponse "查询成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Router /api/v1/village/admin/certifications [get]
func (ctrl *CertificationAdminController) ListPending(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "分页参数无效")
		return
	}
	query.Normalize()

	result, err := ctrl.certService.ListPending(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// GetDetail 获取认证详情。
// @Summary 认证详情
// @Description 默认返回脱敏字段；带 reveal=true 时返回明文，调用会被审计日志记录。
// @Tags 认证审核 (Certification Review)
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "目标用户 ID"
// @Param reveal query bool false "是否披露明文，默认 false"
// @Success 200 {object} docs.SwaggerAPICertificationDetailResponse "查询成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "用户不存在"
// @Failure 500 {object} docs.SwaggerAPIErrorResponse "敏感数据处理失败"
// @Router /api/v1/village/admin/certifications/{userId} [get]
func (ctrl *CertificationAdminController) GetDetail(c *gin.Context) {
	const operation = "CertificationAdminController.GetDetail"

	userID := c.Param("userId")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 userId 参数")
		return
	}
	reveal := c.Query("reveal") == "true"

	result, err := ctrl.certService.GetDetail(c.Request.Context(), middleware.CurrentUserID(c), userID, reveal)
	if err != nil {
		ctrl.logger.Warn("查询认证详情失败", zap.String("operation", operation), zap.String("targetUserID", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// Review 审核认证申请。
// @Summary 审核认证
// @Description 对待审核的申请执行 approve 或 reject。仅 pending 状态可被审核。
// @Tags 认证审核 (Certification Review)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "目标用户 ID"
// @Param request body dto.ReviewCertificationDTO true "审核动作与可选的驳回原因"
// @Success 200 {object} docs.SwaggerAPICertificationResponse "审核完成"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "申请不处于待审核状态"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "用户不存在"
// @Router /api/v1/village/admin/certifications/{userId}/review [post]
func (ctrl *CertificationAdminController) Review(c *gin.Context) {
	const operation = "CertificationAdminController.Review"

	userID := c.Param("userId")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 userId 参数")
		return
	}

	var req dto.ReviewCertificationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "审核参数无效")
		return
	}

	result, err := ctrl.certService.Review(c.Request.Context(), middleware.CurrentUserID(c), userID, req)
	if err != nil {
		ctrl.logger.Warn("审核认证失败", zap.String("operation", operation), zap.String("targetUserID", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "审核完成")
}

// RegisterRoutes 注册认证审核路由，调用方需传入仅限管理员的路由组。
func (ctrl *CertificationAdminController) RegisterRoutes(group *gin.RouterGroup) {
	certRoutes := group.Group("/certifications")
	{
		certRoutes.GET("", ctrl.ListPending)
		certRoutes.GET("/:userId", ctrl.GetDetail)
		certRoutes.POST("/:userId/review", ctrl.Review)
	}
}
