package announcement

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
	"github.com/pbeenigg/star-vast-village/models/vo"
	"github.com/pbeenigg/star-vast-village/repository/postgres"
)

// AnnouncementService 定义了社区公告的服务接口。
// 住户侧只能看到已发布的公告；草稿与归档仅管理端可见。
type AnnouncementService interface {
	// List 分页查询已发布公告，置顶优先。
	List(ctx context.Context, query dto.AnnouncementListQuery) (*vo.PageVO[vo.AnnouncementVO], error)

	// GetByID 获取公告详情并原子自增浏览次数。
	// 未发布的公告对住户返回 ErrRepoNotFound。
	GetByID(ctx context.Context, id uint, isAdmin bool) (*vo.AnnouncementVO, error)

	// Create 管理员创建公告，Publish 为 true 时直接发布。
	Create(ctx context.Context, publisherID string, data dto.CreateAnnouncementDTO) (*vo.AnnouncementVO, error)

	// Update 管理员更新公告，只更新提供了的字段。
	// 状态从非 published 变为 published 时记录发布时间。
	Update(ctx context.Context, id uint, data dto.UpdateAnnouncementDTO) (*vo.AnnouncementVO, error)

	// Delete 管理员删除公告。
	Delete(ctx context.Context, id uint) error

	// ListAll 管理端分页查询全部公告（含草稿与归档）。
	ListAll(ctx context.Context, query dto.PageQuery) (*vo.PageVO[vo.AnnouncementVO], error)
}

// announcementService 是 AnnouncementService 接口的实现。
type announcementService struct {
	announcementRepo postgres.AnnouncementRepository
	logger           *core.ZapLogger
}

// NewAnnouncementService 创建一个新的 announcementService 实例。
func NewAnnouncementService(announcementRepo postgres.AnnouncementRepository, logger *core.ZapLogger) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		logger:           logger,
	}
}

// List 实现接口方法。
func (s *announcementService) List(ctx context.Context, query dto.AnnouncementListQuery) (*vo.PageVO[vo.AnnouncementVO], error) {
	const operation = "AnnouncementService.List"

	query.Normalize()
	if query.Category != "" && !enums.IsValidAnnouncementCategory(query.Category) {
		return nil, commonerrors.ErrValidation
	}

	announcements, total, err := s.announcementRepo.ListPublished(ctx, query.Category, query.Keyword, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询公告列表失败", zap.String("operation", operation), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	items := make([]vo.AnnouncementVO, 0, len(announcements))
	for _, a := range announcements {
		items = append(items, buildAnnouncementVO(a))
	}
	result := vo.NewPageVO(items, total, query.Page, query.PageSize)
	return &result, nil
}

// GetByID 实现接口方法。
func (s *announcementService) GetByID(ctx context.Context, id uint, isAdmin bool) (*vo.AnnouncementVO, error) {
	const operation = "AnnouncementService.GetByID"

	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("查询公告详情失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	if !isAdmin && announcement.Status != enums.AnnouncementPublished {
		// 对住户而言未发布的公告等同不存在
		return nil, commonerrors.ErrRepoNotFound
	}

	// 浏览计数是非关键写入，失败不影响详情返回
	if err := s.announcementRepo.IncrementViewCount(ctx, id); err != nil {
		s.logger.Warn("自增公告浏览次数失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
	} else {
		announcement.ViewCount++
	}

	result := buildAnnouncementVO(announcement)
	return &result, nil
}

// Create 实现接口方法。
func (s *announcementService) Create(ctx context.Context, publisherID string, data dto.CreateAnnouncementDTO) (*vo.AnnouncementVO, error) {
	const operation = "AnnouncementService.Create"

	if !enums.IsValidAnnouncementCategory(data.Category) {
		return nil, commonerrors.ErrValidation
	}

	announcement := &entities.Announcement{
		Title:       data.Title,
		Content:     data.Content,
		Category:    enums.AnnouncementCategory(data.Category),
		CoverImage:  data.CoverImage,
		Images:      data.Images,
		PublisherID: publisherID,
		Status:      enums.AnnouncementDraft,
		IsPinned:    data.IsPinned,
	}
	if data.Publish {
		now := time.Now()
		announcement.Status = enums.AnnouncementPublished
		announcement.PublishedAt = &now
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		s.logger.Error("创建公告失败", zap.String("operation", operation), zap.String("publisherID", publisherID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	s.logger.Info("公告创建成功",
		zap.String("operation", operation),
		zap.Uint("id", announcement.ID),
		zap.String("publisherID", publisherID),
		zap.String("status", string(announcement.Status)),
	)
	result := buildAnnouncementVO(announcement)
	return &result, nil
}

// Update 实现接口方法。
func (s *announcementService) Update(ctx context.Context, id uint, data dto.UpdateAnnouncementDTO) (*vo.AnnouncementVO, error) {
	const operation = "AnnouncementService.Update"

	existing, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("更新前查询公告失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	fields := map[string]interface{}{}
	if data.Title != nil {
		fields["title"] = *data.Title
	}
	if data.Content != nil {
		fields["content"] = *data.Content
	}
	if data.Category != nil {
		if !enums.IsValidAnnouncementCategory(*data.Category) {
			return nil, commonerrors.ErrValidation
		}
		fields["category"] = *data.Category
	}
	if data.CoverImage != nil {
		fields["cover_image"] = *data.CoverImage
	}
	if data.Images != nil {
		fields["images"] = entities.StringSlice(*data.Images)
	}
	if data.IsPinned != nil {
		fields["is_pinned"] = *data.IsPinned
	}
	if data.Status != nil {
		fields["status"] = *data.Status
		if enums.AnnouncementStatus(*data.Status) == enums.AnnouncementPublished &&
			existing.Status != enums.AnnouncementPublished {
			fields["published_at"] = time.Now()
		}
	}

	if err := s.announcementRepo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("更新公告失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	updated, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("更新后回读公告失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	result := buildAnnouncementVO(updated)
	return &result, nil
}

// Delete 实现接口方法。
func (s *announcementService) Delete(ctx context.Context, id uint) error {
	const operation = "AnnouncementService.Delete"

	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return commonerrors.ErrRepoNotFound
		}
		s.logger.Error("删除公告失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return commonerrors.ErrSystemError
	}
	s.logger.Info("公告已删除", zap.String("operation", operation), zap.Uint("id", id))
	return nil
}

// ListAll 实现接口方法。
func (s *announcementService) ListAll(ctx context.Context, query dto.PageQuery) (*vo.PageVO[vo.AnnouncementVO], error) {
	const operation = "AnnouncementService.ListAll"

	query.Normalize()
	announcements, total, err := s.announcementRepo.ListAll(ctx, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询全部公告失败", zap.String("operation", operation), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	items := make([]vo.AnnouncementVO, 0, len(announcements))
	for _, a := range announcements {
		items = append(items, buildAnnouncementVO(a))
	}
	result := vo.NewPageVO(items, total, query.Page, query.PageSize)
	return &result, nil
}

// buildAnnouncementVO 把公告实体转换为对外视图。
func buildAnnouncementVO(a *entities.Announcement) vo.AnnouncementVO {
	return vo.AnnouncementVO{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Category:    a.Category,
		CoverImage:  a.CoverImage,
		Images:      a.Images,
		PublisherID: a.PublisherID,
		Status:      a.Status,
		PublishedAt: a.PublishedAt,
		ViewCount:   a.ViewCount,
		IsPinned:    a.IsPinned,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
