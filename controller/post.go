package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/middleware"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/vo"
	"github.com/pbeenigg/star-vast-village/response"
	"github.com/pbeenigg/star-vast-village/service/post"
)

// PostController 处理邻里互助帖子相关的 HTTP 请求。
// 所有端点都挂在认证路由组下: 列表与详情也需要登录，因为要标记当前用户的点赞状态。
type PostController struct {
	postService post.PostService
	logger      *core.ZapLogger
}

// NewPostController 创建一个新的 PostController 实例。
func NewPostController(postService post.PostService, logger *core.ZapLogger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// List 分页查询帖子。
// @Summary 帖子列表
// @Description 分页返回帖子，支持类型、标题关键字和作者过滤，标记当前用户的点赞状态。
// @Tags 邻里互助 (Posts)
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码，默认 1"
// @Param pageSize query int false "每页数量，默认 10，最大 50"
// @Param type query string false "帖子类型 (help/lost_found/share/discussion/second_hand)"
// @Param keyword query string false "标题关键字"
// @Param authorId query string false "作者用户 ID"
// @Success 200 {object} docs.SwaggerAPIPostListResponse "查询成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "查询参数无效"
// @Router /api/v1/village/posts [get]
func (ctrl *PostController) List(c *gin.Context) {
	var query dto.PostListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "查询参数无效")
		return
	}

	result, err := ctrl.postService.List(c.Request.Context(), query, middleware.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// GetByID 获取帖子详情。
// @Summary 帖子详情
// @Description 返回帖子详情并自增浏览次数。
// @Tags 邻里互助 (Posts)
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "帖子 ID"
// @Success 200 {object} docs.SwaggerAPIPostResponse "查询成功"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "帖子不存在"
// @Router /api/v1/village/posts/{id} [get]
func (ctrl *PostController) GetByID(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	result, err := ctrl.postService.GetByID(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// Create 发布帖子。
// @Summary 发布帖子
// @Tags 邻里互助 (Posts)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreatePostDTO true "帖子内容"
// @Success 200 {object} docs.SwaggerAPIPostResponse "发布成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "请求参数无效"
// @Router /api/v1/village/posts [post]
func (ctrl *PostController) Create(c *gin.Context) {
	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "帖子内容格式无效")
		return
	}

	result, err := ctrl.postService.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "发布成功")
}

// Update 作者修改帖子。
// @Summary 修改帖子
// @Description 仅作者本人可修改，支持标记求助帖为已解决。
// @Tags 邻里互助 (Posts)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "帖子 ID"
// @Param request body dto.UpdatePostDTO true "待更新字段"
// @Success 200 {object} docs.SwaggerAPIPostResponse "修改成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "非作者本人"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "帖子不存在"
// @Router /api/v1/village/posts/{id} [put]
func (ctrl *PostController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "请求参数无效")
		return
	}

	result, err := ctrl.postService.Update(c.Request.Context(), id, middleware.CurrentUserID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "修改成功")
}

// Delete 删除帖子。
// @Summary 删除帖子
// @Description 作者删除标记为 deleted，管理员删除标记为 hidden。
// @Tags 邻里互助 (Posts)
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "帖子 ID"
// @Success 200 {object} docs.SwaggerAPIEmptyResponse "删除成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "无权删除"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "帖子不存在"
// @Router /api/v1/village/posts/{id} [delete]
func (ctrl *PostController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	operator, exists := middleware.CurrentUser(c)
	if !exists {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, commonerrors.ErrUnauthenticated.Error())
		return
	}

	if err := ctrl.postService.Delete(c.Request.Context(), id, operator); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, vo.Empty{}, "删除成功")
}

// Like 点赞帖子。
// @Summary 点赞
// @Description 点赞幂等，重复点赞不会累积计数。
// @Tags 邻里互助 (Posts)
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "帖子 ID"
// @Success 200 {object} docs.SwaggerAPILikeResponse "操作成功"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "帖子不存在"
// @Router /api/v1/village/posts/{id}/like [post]
func (ctrl *PostController) Like(c *gin.Context) {
	ctrl.toggleLike(c, true)
}

// Unlike 取消点赞。
// @Summary 取消点赞
// @Tags 邻里互助 (Posts)
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "帖子 ID"
// @Success 200 {object} docs.SwaggerAPILikeResponse "操作成功"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "帖子不存在"
// @Router /api/v1/village/posts/{id}/like [delete]
func (ctrl *PostController) Unlike(c *gin.Context) {
	ctrl.toggleLike(c, false)
}

func (ctrl *PostController) toggleLike(c *gin.Context, like bool) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	result, err := ctrl.postService.ToggleLike(c.Request.Context(), id, middleware.CurrentUserID(c), like)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// CreateComment 发表评论。
// @Summary 发表评论
// @Description 支持楼中楼回复，回复目标必须是同一帖子下的评论。
// @Tags 邻里互助 (Posts)
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "帖子 ID"
// @Param request body dto.CreateCommentDTO true "评论内容"
// @Success 200 {object} docs.SwaggerAPICommentResponse "评论成功"
// @Failure 400 {object} docs.SwaggerAPIErrorResponse "评论内容或回复目标无效"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "帖子不存在"
// @Router /api/v1/village/posts/{id}/comments [post]
func (ctrl *PostController) CreateComment(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "评论内容格式无效")
		return
	}

	result, err := ctrl.postService.CreateComment(c.Request.Context(), id, middleware.CurrentUserID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "评论成功")
}

// ListComments 分页查询帖子评论。
// @Summary 评论列表
// @Tags 邻里互助 (Posts)
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "帖子 ID"
// @Param page query int false "页码，默认 1"
// @Param pageSize query int false "每页数量，默认 10，最大 50"
// @Success 200 {object} docs.SwaggerAPICommentListResponse "查询成功"
// @Router /api/v1/village/posts/{id}/comments [get]
func (ctrl *PostController) ListComments(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "分页参数无效")
		return
	}

	result, err := ctrl.postService.ListComments(c.Request.Context(), id, query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, result, "")
}

// DeleteComment 删除评论。
// @Summary 删除评论
// @Description 仅评论作者或管理员可删除。
// @Tags 邻里互助 (Posts)
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "帖子 ID"
// @Param commentId path int true "评论 ID"
// @Success 200 {object} docs.SwaggerAPIEmptyResponse "删除成功"
// @Failure 403 {object} docs.SwaggerAPIErrorResponse "无权删除"
// @Failure 404 {object} docs.SwaggerAPIErrorResponse "评论不存在"
// @Router /api/v1/village/posts/{id}/comments/{commentId} [delete]
func (ctrl *PostController) DeleteComment(c *gin.Context) {
	postID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "commentId")
	if !ok {
		return
	}

	operator, exists := middleware.CurrentUser(c)
	if !exists {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, commonerrors.ErrUnauthenticated.Error())
		return
	}

	if err := ctrl.postService.DeleteComment(c.Request.Context(), postID, commentID, operator); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondSuccess(c, vo.Empty{}, "删除成功")
}

// RegisterRoutes 注册帖子路由，调用方需传入已挂认证中间件的路由组。
func (ctrl *PostController) RegisterRoutes(group *gin.RouterGroup) {
	postRoutes := group.Group("/posts")
	{
		postRoutes.GET("", ctrl.List)
		postRoutes.POST("", ctrl.Create)
		postRoutes.GET("/:id", ctrl.GetByID)
		postRoutes.PUT("/:id", ctrl.Update)
		postRoutes.DELETE("/:id", ctrl.Delete)
		postRoutes.POST("/:id/like", ctrl.Like)
		postRoutes.DELETE("/:id/like", ctrl.Unlike)
		postRoutes.GET("/:id/comments", ctrl.ListComments)
		postRoutes.POST("/:id/comments", ctrl.CreateComment)
		postRoutes.DELETE("/:id/comments/:commentId", ctrl.DeleteComment)
	}
}
