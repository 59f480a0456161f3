package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/middleware"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/enums"
	"github.com/pbeenigg/star-vast-village/models/vo"
	"github.com/pbeenigg/star-vast-village/response"
	"github.com/pbeenigg/star-vast-village/service/merchant"
)

// MerchantController 处理商家黄页相关的 HTTP 请求。
// 黄页对所有人只读，维护操作仅限管理员。
type MerchantController struct {
	merchantService merchant.MerchantService
	logger          *core.ZapLogger
}

// NewMerchantController 创建一个新的 MerchantController 实例。
func NewMerchantController(merchantService merchant.MerchantService, logger *core.ZapLogger) *MerchantController {
	return &MerchantController{
		merchantService: merchantService,
		logger:          logger,
	}
}

// List 分页查询商家。
// @Summary 商家列表
// @Description 分页返回在展示中的商家，认证商家优先，支持分类、名称关键字和认证状态过滤。
// @Tags 商家黄页 (Merchants)
// @Produce json
// @Param page query int false "页码，默认 1"
// @Param pageSize query int false "每页数量，默认 10，最大 50"
// @Param category query string false "商家分类"
// @Param keyword query string false "名称关键字"
// @Param isVerified query bool false "是否社区认证"
// @Success 200 {object} docs.SwaggerAPIMerchantListResponse "查询成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "查询参数无效"
// @Router /api/v1/village/merchants [get]
func (ctrl *MerchantController) List(c *gin.Context) {
	var query dto.MerchantListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "查询参数无效")
		return
	}

	result, err := ctrl.merchantService.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// GetByID 获取商家详情。
// @Summary 商家详情
// @Tags 商家黄页 (Merchants)
// @Produce json
// @Param id path int true "商家 ID"
// @Success 200 {object} docs.SwaggerAPIMerchantResponse "查询成功"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "商家不存在或已下架"
// @Router /api/v1/village/merchants/{id} [get]
func (ctrl *MerchantController) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	isAdmin := false
	if user, exists := middleware.CurrentUser(c); exists {
		isAdmin = user.Role == enums.RoleAdmin
	}

	result, err := ctrl.merchantService.GetByID(c.Request.Context(), id, isAdmin)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// Create 管理员录入商家。
// @Summary 录入商家
// @Tags 商家黄页 (Merchants)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateMerchantDTO true "商家信息"
// @Success 200 {object} docs.SwaggerAPIMerchantResponse "录入成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "请求参数无效"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Router /api/v1/village/admin/merchants [post]
func (ctrl *MerchantController) Create(c *gin.Context) {
	var req dto.CreateMerchantDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "商家信息格式无效")
		return
	}

	result, err := ctrl.merchantService.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "录入成功")
}

// Update 管理员更新商家信息。
// @Summary 更新商家
// @Tags 商家黄页 (Merchants)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "商家 ID"
// @Param request body dto.UpdateMerchantDTO true "待更新字段"
// @Success 200 {object} docs.SwaggerAPIMerchantResponse "更新成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "商家不存在"
// @Router /api/v1/village/admin/merchants/{id} [put]
func (ctrl *MerchantController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMerchantDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "请求参数无效")
		return
	}

	result, err := ctrl.merchantService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "更新成功")
}

// Delete 管理员删除商家条目。
// @Summary 删除商家
// @Tags 商家黄页 (Merchants)
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "商家 ID"
// @Success 200 {object} docs.SwaggerAPIEmptyResponse "删除成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "商家不存在"
// @Router /api/v1/village/admin/merchants/{id} [delete]
func (ctrl *MerchantController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.merchantService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, vo.Empty{}, "删除成功")
}

// RegisterPublicRoutes 注册无需认证的商家读取路由。
func (ctrl *MerchantController) RegisterPublicRoutes(group *gin.RouterGroup) {
	merchantRoutes := group.Group("/merchants")
	{
		merchantRoutes.GET("", ctrl.List)
		merchantRoutes.GET("/:id", ctrl.GetByID)
	}
}

// RegisterAdminRoutes 注册管理端商家维护路由。
func (ctrl *MerchantController) RegisterAdminRoutes(group *gin.RouterGroup) {
	merchantRoutes := group.Group("/merchants")
	{
		merchantRoutes.POST("", ctrl.Create)
		merchantRoutes.PUT("/:id", ctrl.Update)
		merchantRoutes.DELETE("/:id", ctrl.Delete)
	}
}
