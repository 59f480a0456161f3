package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/middleware"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/response"
	"github.com/pbeenigg/star-vast-village/service/repair"
)

// RepairController 处理在线报修工单相关的 HTTP 请求。
// 提交报修要求已通过住户认证（由路由组上的门禁中间件保证）。
type RepairController struct {
	repairService repair.RepairService
	logger        *core.ZapLogger
}

// NewRepairController 创建一个新的 RepairController 实例。
func NewRepairController(repairService repair.RepairService, logger *core.ZapLogger) *RepairController {
	return &RepairController{
		repairService: repairService,
		logger:        logger,
	}
}

// Create 提交报修工单。
// @Summary 提交报修
// @Description 提交报修工单，自动生成工单号。要求已通过住户认证。
// @Tags 在线报修 (Repairs)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateRepairDTO true "报修内容"
// @Success 200 {object} docs.SwaggerAPIRepairResponse "提交成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "请求参数无效"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "未通过住户认证"
// @Router /api/v1/village/repairs [post]
func (ctrl *RepairController) Create(c *gin.Context) {
	const operation = "RepairController.Create"

	var req dto.CreateRepairDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "报修内容格式无效")
		return
	}

	submitter, exists := middleware.CurrentUser(c)
	if !exists {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, commonerrors.ErrUnauthenticated.Error())
		return
	}

	result, err := ctrl.repairService.Create(c.Request.Context(), submitter, req)
	if err != nil {
		ctrl.logger.Warn("提交报修失败", zap.String("operation", operation), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "提交成功")
}

// ListMine 查询我提交的工单。
// @Summary 我的报修列表
// @Tags 在线报修 (Repairs)
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码，默认 1"
// @Param pageSize query int false "每页数量，默认 10，最大 50"
// @Param status query string false "工单状态过滤"
// @Success 200 {object} docs.SwaggerAPIRepairListResponse "查询成功"
// @Router /api/v1/village/repairs/mine [get]
func (ctrl *RepairController) ListMine(c *gin.Context) {
	var query dto.RepairListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "查询参数无效")
		return
	}

	result, err := ctrl.repairService.ListMine(c.Request.Context(), middleware.CurrentUserID(c), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// ListAssigned 查询指派给我的工单。
// @Summary 指派给我的工单
// @Description 志愿者/管理员查询被指派的工单。
// @Tags 在线报修 (Repairs)
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码，默认 1"
// @Param pageSize query int false "每页数量，默认 10，最大 50"
// @Param status query string false "工单状态过滤"
// @Success 200 {object} docs.SwaggerAPIRepairListResponse "查询成功"
// @Router /api/v1/village/repairs/assigned [get]
func (ctrl *RepairController) ListAssigned(c *gin.Context) {
	var query dto.RepairListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "查询参数无效")
		return
	}

	result, err := ctrl.repairService.ListAssigned(c.Request.Context(), middleware.CurrentUserID(c), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// GetByID 获取工单详情。
// @Summary 工单详情
// @Description 提交人、处理人、管理员可见。非提交人视角联系电话脱敏。
// @Tags 在线报修 (Repairs)
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "工单 ID"
// @Success 200 {object} docs.SwaggerAPIRepairResponse "查询成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "无权查看该工单"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "工单不存在"
// @Router /api/v1/village/repairs/{id} [get]
func (ctrl *RepairController) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	viewer, exists := middleware.CurrentUser(c)
	if !exists {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, commonerrors.ErrUnauthenticated.Error())
		return
	}

	result, err := ctrl.repairService.GetByID(c.Request.Context(), id, viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// UpdateStatus 推进工单状态。
// @Summary 更新工单状态
// @Description 按状态机推进工单。取消仅限提交人或管理员，其他迁移仅限处理人或管理员。
// @Tags 在线报修 (Repairs)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "工单 ID"
// @Param request body dto.UpdateRepairStatusDTO true "目标状态"
// @Success 200 {object} docs.SwaggerAPIRepairResponse "更新成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "非法的状态迁移"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "无权操作该工单"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "工单不存在"
// @Router /api/v1/village/repairs/{id}/status [put]
func (ctrl *RepairController) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRepairStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "请求参数无效")
		return
	}

	operator, exists := middleware.CurrentUser(c)
	if !exists {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, commonerrors.ErrUnauthenticated.Error())
		return
	}

	result, err := ctrl.repairService.UpdateStatus(c.Request.Context(), id, operator, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "更新成功")
}

// Rate 评价已完成工单。
// @Summary 评价工单
// @Description 提交人对已完成的工单评分（1-5 星），每单只能评价一次。
// @Tags 在线报修 (Repairs)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "工单 ID"
// @Param request body dto.RateRepairDTO true "评分与反馈"
// @Success 200 {object} docs.SwaggerAPIRepairResponse "评价成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "工单未完成或已评价"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "非提交人本人"
// @Router /api/v1/village/repairs/{id}/rate [post]
func (ctrl *RepairController) Rate(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.RateRepairDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "评价参数无效")
		return
	}

	result, err := ctrl.repairService.Rate(c.Request.Context(), id, middleware.CurrentUserID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "评价成功")
}

// ListAll 管理端查询全部工单。
// @Summary 全部工单列表（管理端）
// @Tags 在线报修 (Repairs)
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码，默认 1"
// @Param pageSize query int false "每页数量，默认 10，最大 50"
// @Param status query string false "工单状态过滤"
// @Success 200 {object} docs.SwaggerAPIRepairListResponse "查询成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Router /api/v1/village/admin/repairs [get]
func (ctrl *RepairController) ListAll(c *gin.Context) {
	var query dto.RepairListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "查询参数无效")
		return
	}

	result, err := ctrl.repairService.ListAll(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// Assign 管理员派单。
// @Summary 派单
// @Description 将 pending 工单指派给处理人，可附带优先级与预约时间。
// @Tags 在线报修 (Repairs)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "工单 ID"
// @Param request body dto.AssignRepairDTO true "处理人与调度信息"
// @Success 200 {object} docs.SwaggerAPIRepairResponse "派单成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "工单不处于可派单状态"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "权限不足"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "工单不存在"
// @Router /api/v1/village/admin/repairs/{id}/assign [post]
func (ctrl *RepairController) Assign(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.AssignRepairDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "派单参数无效")
		return
	}

	result, err := ctrl.repairService.Assign(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "派单成功")
}

// RegisterRoutes 注册住户侧报修路由。
// - createGuard: 附加在提交报修上的住户认证门禁。
func (ctrl *RepairController) RegisterRoutes(group *gin.RouterGroup, createGuard gin.HandlerFunc) {
	repairRoutes := group.Group("/repairs")
	{
		repairRoutes.POST("", createGuard, ctrl.Create)
		repairRoutes.GET("/mine", ctrl.ListMine)
		repairRoutes.GET("/assigned", ctrl.ListAssigned)
		repairRoutes.GET("/:id", ctrl.GetByID)
		repairRoutes.PUT("/:id/status", ctrl.UpdateStatus)
		repairRoutes.POST("/:id/rate", ctrl.Rate)
	}
}

// RegisterAdminRoutes 注册管理端报修路由。
func (ctrl *RepairController) RegisterAdminRoutes(group *gin.RouterGroup) {
	repairRoutes := group.Group("/repairs")
	{
		repairRoutes.GET("", ctrl.ListAll)
		repairRoutes.POST("/:id/assign", ctrl.Assign)
	}
}
