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
	"github.com/pbeenigg/star-vast-village/service/announcement"
)

// AnnouncementController 处理社区公告相关的 HTTP 请求。
// 列表与详情对所有人开放，增删改仅限管理员。
type AnnouncementController struct {
	announcementService announcement.AnnouncementService
	logger              *core.ZapLogger
}

// NewAnnouncementController 创建一个新的 AnnouncementController 实例。
func NewAnnouncementController(announcementService announcement.AnnouncementService, logger *core.ZapLogger) *AnnouncementController {
	return &AnnouncementController{
		announcementService: announcementService,
		logger:              logger,
	}
}

// List 分页查询已发布公告。
// @Summary 公告列表
// @Description 分页返回已发布的公告，置顶优先，支持分类与标题关键字过滤。
// @Tags 社区公告 (Announcements)
// @Produce json
// @Param page query int false "页码，默认 1"
// @Param pageSize query int false "每页数量，默认 10，最大 50"
// @Param category query string false "公告分类 (emergency/notice/activity/maintenance)"
// @Param keyword query string false "标题关键字"
// @Success 200 {object} docs.SwaggerAPIAnnouncementListResponse "查询成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "查询参数无效"
// @Router /api/v1/village/announcements [get]
func (ctrl *AnnouncementController) List(c *gin.Context) {
	var query dto.AnnouncementListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "查询参数无效")
		return
	}

	result, err := ctrl.announcementService.List(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// GetByID 获取公告详情。
// @Summary 公告详情
// @Description 返回公告详情并自增浏览次数。未发布的公告对住户不可见。
// @Tags 社区公告 (Announcements)
// @Produce json
// @Param id path int true "公告 ID"
// @Success 200 {object} docs.SwaggerAPIAnnouncementResponse "查询成功"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "公告不存在或未发布"
// @Router /api/v1/village/announcements/{id} [get]
func (ctrl *AnnouncementController) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	isAdmin := false
	if user, exists := middleware.CurrentUser(c); exists {
		isAdmin = user.Role == enums.RoleAdmin
	}

	result, err := ctrl.announcementService.GetByID(c.Request.Context(), id, isAdmin)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// Create 管理员创建公告。
// @Summary 创建公告
// @Description 管理员创建公告，publish 为 true 时直接发布，否则保存为草稿。
// @Tags 社区公告 (Announcements)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateAnnouncementDTO true "公告内容"
// @Success 200 {object} docs.SwaggerAPIAnnouncementResponse "创建成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "请求参数无效"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Router /api/v1/village/admin/announcements [post]
func (ctrl *AnnouncementController) Create(c *gin.Context) {
	var req dto.CreateAnnouncementDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "公告内容格式无效")
		return
	}

	result, err := ctrl.announcementService.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "创建成功")
}

// Update 管理员更新公告。
// @Summary 更新公告
// @Description 管理员更新公告字段，状态改为 published 时记录发布时间。
// @Tags 社区公告 (Announcements)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "公告 ID"
// @Param request body dto.UpdateAnnouncementDTO true "待更新字段"
// @Success 200 {object} docs.SwaggerAPIAnnouncementResponse "更新成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "公告不存在"
// @Router /api/v1/village/admin/announcements/{id} [put]
func (ctrl *AnnouncementController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "请求参数无效")
		return
	}

	result, err := ctrl.announcementService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "更新成功")
}

// Delete 管理员删除公告。
// @Summary 删除公告
// @Tags 社区公告 (Announcements)
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "公告 ID"
// @Success 200 {object} docs.SwaggerAPIEmptyResponse "删除成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "公告不存在"
// @Router /api/v1/village/admin/announcements/{id} [delete]
func (ctrl *AnnouncementController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.announcementService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, vo.Empty{}, "删除成功")
}

// ListAll 管理端查询全部公告。
// @Summary 全部公告列表（管理端）
// @Description 分页返回全部公告，含草稿与归档。
// @Tags 社区公告 (Announcements)
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码，默认 1"
// @Param pageSize query int false "每页数量，默认 10，最大 50"
// @Success 200 {object} docs.SwaggerAPIAnnouncementListResponse "查询成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Router /api/v1/village/admin/announcements [get]
func (ctrl *AnnouncementController) ListAll(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "分页参数无效")
		return
	}

	result, err := ctrl.announcementService.ListAll(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// RegisterPublicRoutes 注册无需认证的公告读取路由。
func (ctrl *AnnouncementController) RegisterPublicRoutes(group *gin.RouterGroup) {
	announcementRoutes := group.Group("/announcements")
	{
		announcementRoutes.GET("", ctrl.List)
		announcementRoutes.GET("/:id", ctrl.GetByID)
	}
}

// RegisterAdminRoutes 注册管理端公告维护路由，调用方需传入仅限管理员的路由组。
func (ctrl *AnnouncementController) RegisterAdminRoutes(group *gin.RouterGroup) {
	announcementRoutes := group.Group("/announcements")
	{
		announcementRoutes.GET("", ctrl.ListAll)
		announcementRoutes.POST("", ctrl.Create)
		announcementRoutes.PUT("/:id", ctrl.Update)
		announcementRoutes.DELETE("/:id", ctrl.Delete)
	}
}
