package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
)

// AnnouncementRepository 定义了社区公告的数据存储接口。
type AnnouncementRepository interface {
	// Create 持久化一条新公告。
	Create(ctx context.Context, announcement *entities.Announcement) error

	// GetByID 根据 ID 检索单条公告，未找到时返回 commonerrors.ErrRepoNotFound。
	GetByID(ctx context.Context, id uint) (*entities.Announcement, error)

	// UpdateFields 按字段名更新公告的部分字段。
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error

	// Delete 软删除一条公告。
	Delete(ctx context.Context, id uint) error

	// IncrementViewCount 原子自增浏览次数。
	IncrementViewCount(ctx context.Context, id uint) error

	// ListPublished 分页查询已发布公告，置顶优先，其余按发布时间倒序。
	// - category 为空时不过滤分类；keyword 为空时不做标题模糊匹配。
	ListPublished(ctx context.Context, category, keyword string, offset, limit int) ([]*entities.Announcement, int64, error)

	// ListAll 管理端分页查询全部公告（含草稿与归档）。
	ListAll(ctx context.Context, offset, limit int) ([]*entities.Announcement, int64, error)
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository 创建一个新的 announcementRepository 实例。
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *entities.Announcement) error {
	if err := r.db.WithContext(ctx).Create(announcement).Error; err != nil {
		return fmt.Errorf("announcementRepo.Create: 创建公告失败: %w", err)
	}
	return nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id uint) (*entities.Announcement, error) {
	var announcement entities.Announcement
	err := r.db.WithContext(ctx).First(&announcement, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		return nil, fmt.Errorf("announcementRepo.GetByID: 查询公告失败 (ID: %d): %w", id, err)
	}
	return &announcement, nil
}

func (r *announcementRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entities.Announcement{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("announcementRepo.UpdateFields: 更新公告失败 (ID: %d): %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Announcement{}, id)
	if result.Error != nil {
		return fmt.Errorf("announcementRepo.Delete: 删除公告失败 (ID: %d): %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// IncrementViewCount 在数据库侧自增，并发浏览不会丢计数。
func (r *announcementRepository) IncrementViewCount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&entities.Announcement{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return fmt.Errorf("announcementRepo.IncrementViewCount: 自增浏览次数失败 (ID: %d): %w", id, err)
	}
	return nil
}

func (r *announcementRepository) ListPublished(ctx context.Context, category, keyword string, offset, limit int) ([]*entities.Announcement, int64, error) {
	var announcements []*entities.Announcement
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Announcement{}).
		Where("status = ?", enums.AnnouncementPublished)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("announcementRepo.ListPublished: 统计公告数量失败: %w", err)
	}

	err := query.Order("is_pinned DESC, published_at DESC").Offset(offset).Limit(limit).Find(&announcements).Error
	if err != nil {
		return nil, 0, fmt.Errorf("announcementRepo.ListPublished: 查询公告列表失败: %w", err)
	}
	return announcements, total, nil
}

func (r *announcementRepository) ListAll(ctx context.Context, offset, limit int) ([]*entities.Announcement, int64, error) {
	var announcements []*entities.Announcement
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Announcement{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("announcementRepo.ListAll: 统计公告数量失败: %w", err)
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&announcements).Error
	if err != nil {
		return nil, 0, fmt.Errorf("announcementRepo.ListAll: 查询公告列表失败: %w", err)
	}
	return announcements, total, nil
}
