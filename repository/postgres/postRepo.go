package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
)

// PostRepository 定义了邻里互助帖子及其评论、点赞的数据存储接口。
// 点赞的幂等性由 (post_id, user_id) 唯一索引保证，计数字段全部走数据库侧原子自增。
type PostRepository interface {
	// Create 发布一条新帖子。
	Create(ctx context.Context, post *entities.Post) error

	// GetByID 根据 ID 检索单条帖子，未找到时返回 commonerrors.ErrRepoNotFound。
	GetByID(ctx context.Context, id uint) (*entities.Post, error)

	// UpdateFields 按字段名更新帖子的部分字段。
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error

	// IncrementViewCount 原子自增浏览次数。
	IncrementViewCount(ctx context.Context, id uint) error

	// List 分页查询正常展示的帖子，按创建时间倒序。
	List(ctx context.Context, postType, keyword, authorID string, offset, limit int) ([]*entities.Post, int64, error)

	// AddLike 点赞。重复点赞静默幂等，返回是否实际新增。
	// - 新增点赞记录与 like_count 自增在同一事务内完成。
	AddLike(ctx context.Context, postID uint, userID string) (bool, error)

	// RemoveLike 取消点赞。未点赞时静默幂等，返回是否实际删除。
	RemoveLike(ctx context.Context, postID uint, userID string) (bool, error)

	// HasLiked 查询用户是否已点赞指定帖子。
	HasLiked(ctx context.Context, postID uint, userID string) (bool, error)

	// ListLikedPostIDs 查询用户在给定帖子集合中点赞过的帖子 ID，供列表页标记。
	ListLikedPostIDs(ctx context.Context, postIDs []uint, userID string) (map[uint]bool, error)

	// CreateComment 发表评论，评论记录与帖子 comment_count 自增在同一事务内完成。
	CreateComment(ctx context.Context, comment *entities.PostComment) error

	// GetCommentByID 根据 ID 检索单条评论。
	GetCommentByID(ctx context.Context, id uint) (*entities.PostComment, error)

	// DeleteComment 软删除评论并原子自减帖子的 comment_count。
	DeleteComment(ctx context.Context, id uint, postID uint) error

	// ListComments 分页查询帖子的评论，按创建时间正序。
	ListComments(ctx context.Context, postID uint, offset, limit int) ([]*entities.PostComment, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建一个新的 postRepository 实例。
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entities.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("postRepo.Create: 发布帖子失败: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*entities.Post, error) {
	var post entities.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		return nil, fmt.Errorf("postRepo.GetByID: 查询帖子失败 (ID: %d): %w", id, err)
	}
	return &post, nil
}

func (r *postRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entities.Post{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("postRepo.UpdateFields: 更新帖子失败 (ID: %d): %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *postRepository) IncrementViewCount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&entities.Post{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return fmt.Errorf("postRepo.IncrementViewCount: 自增浏览次数失败 (ID: %d): %w", id, err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, postType, keyword, authorID string, offset, limit int) ([]*entities.Post, int64, error) {
	var posts []*entities.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Post{}).Where("status = ?", enums.PostApproved)
	if postType != "" {
		query = query.Where("type = ?", postType)
	}
	if keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}
	if authorID != "" {
		query = query.Where("author_id = ?", authorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("postRepo.List: 统计帖子数量失败: %w", err)
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("postRepo.List: 查询帖子列表失败: %w", err)
	}
	return posts, total, nil
}

// AddLike 实现接口方法。唯一索引冲突走 DO NOTHING，
// 只有插入真正生效时才自增计数，重复点赞不会把 like_count 越加越多。
func (r *postRepository) AddLike(ctx context.Context, postID uint, userID string) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &entities.PostLike{PostID: postID, UserID: userID}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(like)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil // 已点过赞
		}
		added = true
		return tx.Model(&entities.Post{}).Where("id = ?", postID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return false, fmt.Errorf("postRepo.AddLike: 点赞失败 (PostID: %d, UserID: %s): %w", postID, userID, err)
	}
	return added, nil
}

// RemoveLike 实现接口方法，删除生效时才自减计数。
func (r *postRepository) RemoveLike(ctx context.Context, postID uint, userID string) (bool, error) {
	var removed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&entities.PostLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil // 本来就没点赞
		}
		removed = true
		return tx.Model(&entities.Post{}).Where("id = ? AND like_count > 0", postID).
			Update("like_count", gorm.Expr("like_count - 1")).Error
	})
	if err != nil {
		return false, fmt.Errorf("postRepo.RemoveLike: 取消点赞失败 (PostID: %d, UserID: %s): %w", postID, userID, err)
	}
	return removed, nil
}

func (r *postRepository) HasLiked(ctx context.Context, postID uint, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("postRepo.HasLiked: 查询点赞状态失败 (PostID: %d): %w", postID, err)
	}
	return count > 0, nil
}

func (r *postRepository) ListLikedPostIDs(ctx context.Context, postIDs []uint, userID string) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 || userID == "" {
		return liked, nil
	}

	var likes []entities.PostLike
	err := r.db.WithContext(ctx).
		Where("post_id IN ? AND user_id = ?", postIDs, userID).
		Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("postRepo.ListLikedPostIDs: 查询点赞记录失败: %w", err)
	}
	for _, like := range likes {
		liked[like.PostID] = true
	}
	return liked, nil
}

func (r *postRepository) CreateComment(ctx context.Context, comment *entities.PostComment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Post{}).Where("id = ?", comment.PostID).
			Update("comment_count", gorm.Expr("comment_count + 1")).Error
	})
	if err != nil {
		return fmt.Errorf("postRepo.CreateComment: 发表评论失败 (PostID: %d): %w", comment.PostID, err)
	}
	return nil
}

func (r *postRepository) GetCommentByID(ctx context.Context, id uint) (*entities.PostComment, error) {
	var comment entities.PostComment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		return nil, fmt.Errorf("postRepo.GetCommentByID: 查询评论失败 (ID: %d): %w", id, err)
	}
	return &comment, nil
}

func (r *postRepository) DeleteComment(ctx context.Context, id uint, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND post_id = ?", id, postID).Delete(&entities.PostComment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return commonerrors.ErrRepoNotFound
		}
		return tx.Model(&entities.Post{}).Where("id = ? AND comment_count > 0", postID).
			Update("comment_count", gorm.Expr("comment_count - 1")).Error
	})
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return commonerrors.ErrRepoNotFound
		}
		return fmt.Errorf("postRepo.DeleteComment: 删除评论失败 (ID: %d): %w", id, err)
	}
	return nil
}

func (r *postRepository) ListComments(ctx context.Context, postID uint, offset, limit int) ([]*entities.PostComment, int64, error) {
	var comments []*entities.PostComment
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.PostComment{}).Where("post_id = ?", postID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("postRepo.ListComments: 统计评论数量失败 (PostID: %d): %w", postID, err)
	}

	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("postRepo.ListComments: 查询评论列表失败 (PostID: %d): %w", postID, err)
	}
	return comments, total, nil
}
