package post

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
	"github.com/pbeenigg/star-vast-village/models/vo"
	"github.com/pbeenigg/star-vast-village/repository/postgres"
)

// PostService 定义了邻里互助帖子的服务接口。
// 权限约定: 帖子与评论的修改删除仅限作者本人，管理员可越权删除。
type PostService interface {
	// List 分页查询帖子。viewerID 非空时标记每条帖子的点赞状态。
	List(ctx context.Context, query dto.PostListQuery, viewerID string) (*vo.PageVO[vo.PostVO], error)

	// GetByID 获取帖子详情，原子自增浏览次数。
	GetByID(ctx context.Context, id uint, viewerID string) (*vo.PostVO, error)

	// Create 发布帖子。
	Create(ctx context.Context, authorID string, data dto.CreatePostDTO) (*vo.PostVO, error)

	// Update 作者修改帖子，非作者返回 ErrForbidden。
	Update(ctx context.Context, id uint, operatorID string, data dto.UpdatePostDTO) (*vo.PostVO, error)

	// Delete 删除帖子。作者标记为 deleted，管理员标记为 hidden。
	Delete(ctx context.Context, id uint, operator *entities.User) error

	// ToggleLike 点赞或取消点赞，幂等，返回最新状态与计数。
	ToggleLike(ctx context.Context, postID uint, userID string, like bool) (*vo.LikeVO, error)

	// CreateComment 发表评论。
	CreateComment(ctx context.Context, postID uint, authorID string, data dto.CreateCommentDTO) (*vo.CommentVO, error)

	// ListComments 分页查询帖子评论。
	ListComments(ctx context.Context, postID uint, query dto.PageQuery) (*vo.PageVO[vo.CommentVO], error)

	// DeleteComment 删除评论，仅评论作者或管理员。
	DeleteComment(ctx context.Context, postID, commentID uint, operator *entities.User) error
}

// postService 是 PostService 接口的实现。
type postService struct {
	postRepo postgres.PostRepository
	userRepo postgres.UserRepository
	logger   *core.ZapLogger
}

// NewPostService 创建一个新的 postService 实例。
func NewPostService(postRepo postgres.PostRepository, userRepo postgres.UserRepository, logger *core.ZapLogger) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// List 实现接口方法。
func (s *postService) List(ctx context.Context, query dto.PostListQuery, viewerID string) (*vo.PageVO[vo.PostVO], error) {
	const operation = "PostService.List"

	query.Normalize()
	if query.Type != "" && !enums.IsValidPostType(query.Type) {
		return nil, commonerrors.ErrValidation
	}

	posts, total, err := s.postRepo.List(ctx, query.Type, query.Keyword, query.AuthorID, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询帖子列表失败", zap.String("operation", operation), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	// 批量标记当前用户的点赞状态
	postIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}
	liked, err := s.postRepo.ListLikedPostIDs(ctx, postIDs, viewerID)
	if err != nil {
		s.logger.Warn("批量查询点赞状态失败", zap.String("operation", operation), zap.Error(err))
		liked = map[uint]bool{}
	}

	authors := s.loadAuthors(ctx, collectAuthorIDs(posts))
	items := make([]vo.PostVO, 0, len(posts))
	for _, p := range posts {
		item := buildPostVO(p, authors[p.AuthorID])
		item.IsLiked = liked[p.ID]
		items = append(items, item)
	}
	result := vo.NewPageVO(items, total, query.Page, query.PageSize)
	return &result, nil
}

// GetByID 实现接口方法。
func (s *postService) GetByID(ctx context.Context, id uint, viewerID string) (*vo.PostVO, error) {
	const operation = "PostService.GetByID"

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("查询帖子详情失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	if post.Status != enums.PostApproved {
		return nil, commonerrors.ErrRepoNotFound
	}

	if err := s.postRepo.IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn("自增帖子浏览次数失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
	} else {
		post.ViewCount++
	}

	authors := s.loadAuthors(ctx, []string{post.AuthorID})
	item := buildPostVO(post, authors[post.AuthorID])
	if viewerID != "" {
		hasLiked, err := s.postRepo.HasLiked(ctx, id, viewerID)
		if err != nil {
			s.logger.Warn("查询点赞状态失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		}
		item.IsLiked = hasLiked
	}
	return &item, nil
}

// Create 实现接口方法。
func (s *postService) Create(ctx context.Context, authorID string, data dto.CreatePostDTO) (*vo.PostVO, error) {
	const operation = "PostService.Create"

	if !enums.IsValidPostType(data.Type) {
		return nil, commonerrors.ErrValidation
	}

	post := &entities.Post{
		Type:     enums.PostType(data.Type),
		Title:    data.Title,
		Content:  data.Content,
		Images:   data.Images,
		AuthorID: authorID,
		Status:   enums.PostApproved,
		Tags:     data.Tags,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		s.logger.Error("发布帖子失败", zap.String("operation", operation), zap.String("authorID", authorID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	s.logger.Info("帖子发布成功", zap.String("operation", operation), zap.Uint("id", post.ID), zap.String("authorID", authorID))
	authors := s.loadAuthors(ctx, []string{authorID})
	item := buildPostVO(post, authors[authorID])
	return &item, nil
}

// Update 实现接口方法。
func (s *postService) Update(ctx context.Context, id uint, operatorID string, data dto.UpdatePostDTO) (*vo.PostVO, error) {
	const operation = "PostService.Update"

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("更新前查询帖子失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	if post.AuthorID != operatorID {
		return nil, commonerrors.ErrForbidden
	}

	fields := map[string]interface{}{}
	if data.Title != nil {
		fields["title"] = *data.Title
	}
	if data.Content != nil {
		fields["content"] = *data.Content
	}
	if data.Images != nil {
		fields["images"] = entities.StringSlice(*data.Images)
	}
	if data.Tags != nil {
		fields["tags"] = entities.StringSlice(*data.Tags)
	}
	if data.IsResolved != nil {
		fields["is_resolved"] = *data.IsResolved
	}

	if err := s.postRepo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("更新帖子失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	return s.GetByID(ctx, id, operatorID)
}

// Delete 实现接口方法。删除走状态标记，保留数据供追溯。
func (s *postService) Delete(ctx context.Context, id uint, operator *entities.User) error {
	const operation = "PostService.Delete"

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return commonerrors.ErrRepoNotFound
		}
		s.logger.Error("删除前查询帖子失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return commonerrors.ErrSystemError
	}

	var newStatus enums.PostStatus
	switch {
	case operator.Role == enums.RoleAdmin:
		newStatus = enums.PostHidden
	case post.AuthorID == operator.ID:
		newStatus = enums.PostDeleted
	default:
		return commonerrors.ErrForbidden
	}

	if err := s.postRepo.UpdateFields(ctx, id, map[string]interface{}{"status": newStatus}); err != nil {
		s.logger.Error("标记帖子删除失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return commonerrors.ErrSystemError
	}
	s.logger.Info("帖子已删除",
		zap.String("operation", operation),
		zap.Uint("id", id),
		zap.String("operatorID", operator.ID),
		zap.String("status", string(newStatus)),
	)
	return nil
}

// ToggleLike 实现接口方法。
func (s *postService) ToggleLike(ctx context.Context, postID uint, userID string, like bool) (*vo.LikeVO, error) {
	const operation = "PostService.ToggleLike"

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("点赞前查询帖子失败", zap.String("operation", operation), zap.Uint("postID", postID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	if post.Status != enums.PostApproved {
		return nil, commonerrors.ErrRepoNotFound
	}

	var changed bool
	if like {
		changed, err = s.postRepo.AddLike(ctx, postID, userID)
	} else {
		changed, err = s.postRepo.RemoveLike(ctx, postID, userID)
	}
	if err != nil {
		s.logger.Error("点赞操作失败", zap.String("operation", operation), zap.Uint("postID", postID), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	likeCount := post.LikeCount
	if changed {
		if like {
			likeCount++
		} else if likeCount > 0 {
			likeCount--
		}
	}
	return &vo.LikeVO{Liked: like, LikeCount: likeCount}, nil
}

// CreateComment 实现接口方法。
func (s *postService) CreateComment(ctx context.Context, postID uint, authorID string, data dto.CreateCommentDTO) (*vo.CommentVO, error) {
	const operation = "PostService.CreateComment"

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("评论前查询帖子失败", zap.String("operation", operation), zap.Uint("postID", postID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	if post.Status != enums.PostApproved {
		return nil, commonerrors.ErrRepoNotFound
	}

	// 楼中楼回复必须指向同一帖子下的评论
	if data.ReplyToID != nil {
		target, err := s.postRepo.GetCommentByID(ctx, *data.ReplyToID)
		if err != nil || target.PostID != postID {
			return nil, commonerrors.ErrValidation
		}
	}

	comment := &entities.PostComment{
		PostID:    postID,
		AuthorID:  authorID,
		Content:   data.Content,
		ReplyToID: data.ReplyToID,
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		s.logger.Error("发表评论失败", zap.String("operation", operation), zap.Uint("postID", postID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	authors := s.loadAuthors(ctx, []string{authorID})
	item := buildCommentVO(comment, authors[authorID])
	return &item, nil
}

// ListComments 实现接口方法。
func (s *postService) ListComments(ctx context.Context, postID uint, query dto.PageQuery) (*vo.PageVO[vo.CommentVO], error) {
	const operation = "PostService.ListComments"

	query.Normalize()
	comments, total, err := s.postRepo.ListComments(ctx, postID, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询评论列表失败", zap.String("operation", operation), zap.Uint("postID", postID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	authorIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	authors := s.loadAuthors(ctx, authorIDs)

	items := make([]vo.CommentVO, 0, len(comments))
	for _, c := range comments {
		items = append(items, buildCommentVO(c, authors[c.AuthorID]))
	}
	result := vo.NewPageVO(items, total, query.Page, query.PageSize)
	return &result, nil
}

// DeleteComment 实现接口方法。
func (s *postService) DeleteComment(ctx context.Context, postID, commentID uint, operator *entities.User) error {
	const operation = "PostService.DeleteComment"

	comment, err := s.postRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return commonerrors.ErrRepoNotFound
		}
		s.logger.Error("删除前查询评论失败", zap.String("operation", operation), zap.Uint("commentID", commentID), zap.Error(err))
		return commonerrors.ErrSystemError
	}
	if comment.PostID != postID {
		return commonerrors.ErrRepoNotFound
	}
	if comment.AuthorID != operator.ID && operator.Role != enums.RoleAdmin {
		return commonerrors.ErrForbidden
	}

	if err := s.postRepo.DeleteComment(ctx, commentID, postID); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return commonerrors.ErrRepoNotFound
		}
		s.logger.Error("删除评论失败", zap.String("operation", operation), zap.Uint("commentID", commentID), zap.Error(err))
		return commonerrors.ErrSystemError
	}
	return nil
}

// loadAuthors 按用户 ID 去重后加载作者信息，供列表展示昵称和头像。
// 单条加载失败只影响对应条目的展示，不中断整个请求。
func (s *postService) loadAuthors(ctx context.Context, ids []string) map[string]*entities.User {
	authors := make(map[string]*entities.User, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := authors[id]; ok {
			continue
		}
		user, err := s.userRepo.GetUserByID(ctx, id)
		if err != nil {
			continue
		}
		authors[id] = user
	}
	return authors
}

func collectAuthorIDs(posts []*entities.Post) []string {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	return ids
}

// buildPostVO 把帖子实体转换为对外视图。
func buildPostVO(p *entities.Post, author *entities.User) vo.PostVO {
	item := vo.PostVO{
		ID:           p.ID,
		Type:         p.Type,
		Title:        p.Title,
		Content:      p.Content,
		Images:       p.Images,
		AuthorID:     p.AuthorID,
		ViewCount:    p.ViewCount,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		Status:       p.Status,
		IsResolved:   p.IsResolved,
		Tags:         p.Tags,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if author != nil {
		item.AuthorName = author.Nickname
		item.AuthorAvatar = author.Avatar
	}
	return item
}

// buildCommentVO 把评论实体转换为对外视图。
func buildCommentVO(c *entities.PostComment, author *entities.User) vo.CommentVO {
	item := vo.CommentVO{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		ReplyToID: c.ReplyToID,
		CreatedAt: c.CreatedAt,
	}
	if author != nil {
		item.AuthorName = author.Nickname
		item.AuthorAvatar = author.Avatar
	}
	return item
}
