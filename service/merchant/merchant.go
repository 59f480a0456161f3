package merchant

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

// MerchantService 定义了商家黄页的服务接口。
// 黄页内容由管理员维护，住户侧只读。
type MerchantService interface {
	// List 分页查询在展示中的商家，认证商家优先。
	List(ctx context.Context, query dto.MerchantListQuery) (*vo.PageVO[vo.MerchantVO], error)

	// GetByID 获取商家详情。已下架的商家对住户返回 ErrRepoNotFound。
	GetByID(ctx context.Context, id uint, isAdmin bool) (*vo.MerchantVO, error)

	// Create 管理员录入商家。
	Create(ctx context.Context, data dto.CreateMerchantDTO) (*vo.MerchantVO, error)

	// Update 管理员更新商家信息，只更新提供了的字段。
	Update(ctx context.Context, id uint, data dto.UpdateMerchantDTO) (*vo.MerchantVO, error)

	// Delete 管理员删除商家条目。
	Delete(ctx context.Context, id uint) error
}

// merchantService 是 MerchantService 接口的实现。
type merchantService struct {
	merchantRepo postgres.MerchantRepository
	logger       *core.ZapLogger
}

// NewMerchantService 创建一个新的 merchantService 实例。
func NewMerchantService(merchantRepo postgres.MerchantRepository, logger *core.ZapLogger) MerchantService {
	return &merchantService{
		merchantRepo: merchantRepo,
		logger:       logger,
	}
}

// List 实现接口方法。
func (s *merchantService) List(ctx context.Context, query dto.MerchantListQuery) (*vo.PageVO[vo.MerchantVO], error) {
	const operation = "MerchantService.List"

	query.Normalize()
	if query.Category != "" && !enums.IsValidMerchantCategory(query.Category) {
		return nil, commonerrors.ErrValidation
	}

	merchants, total, err := s.merchantRepo.ListActive(ctx, query.Category, query.Keyword, query.IsVerified, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询商家列表失败", zap.String("operation", operation), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	items := make([]vo.MerchantVO, 0, len(merchants))
	for _, m := range merchants {
		items = append(items, buildMerchantVO(m))
	}
	result := vo.NewPageVO(items, total, query.Page, query.PageSize)
	return &result, nil
}

// GetByID 实现接口方法。
func (s *merchantService) GetByID(ctx context.Context, id uint, isAdmin bool) (*vo.MerchantVO, error) {
	const operation = "MerchantService.GetByID"

	merchant, err := s.merchantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("查询商家详情失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	if !isAdmin && !merchant.IsActive {
		return nil, commonerrors.ErrRepoNotFound
	}

	result := buildMerchantVO(merchant)
	return &result, nil
}

// Create 实现接口方法。
func (s *merchantService) Create(ctx context.Context, data dto.CreateMerchantDTO) (*vo.MerchantVO, error) {
	const operation = "MerchantService.Create"

	if !enums.IsValidMerchantCategory(data.Category) {
		return nil, commonerrors.ErrValidation
	}

	merchant := &entities.Merchant{
		Name:          data.Name,
		Category:      enums.MerchantCategory(data.Category),
		Description:   data.Description,
		Logo:          data.Logo,
		Images:        data.Images,
		ContactPerson: data.ContactPerson,
		Phone:         data.Phone,
		Address:       data.Address,
		Location:      data.Location,
		BusinessHours: data.BusinessHours,
		Tags:          data.Tags,
		IsVerified:    data.IsVerified,
		IsActive:      true,
	}

	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		s.logger.Error("录入商家失败", zap.String("operation", operation), zap.String("name", data.Name), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	s.logger.Info("商家录入成功", zap.String("operation", operation), zap.Uint("id", merchant.ID), zap.String("name", merchant.Name))
	result := buildMerchantVO(merchant)
	return &result, nil
}

// Update 实现接口方法。
func (s *merchantService) Update(ctx context.Context, id uint, data dto.UpdateMerchantDTO) (*vo.MerchantVO, error) {
	const operation = "MerchantService.Update"

	fields := map[string]interface{}{}
	if data.Name != nil {
		fields["name"] = *data.Name
	}
	if data.Category != nil {
		if !enums.IsValidMerchantCategory(*data.Category) {
			return nil, commonerrors.ErrValidation
		}
		fields["category"] = *data.Category
	}
	if data.Description != nil {
		fields["description"] = *data.Description
	}
	if data.Logo != nil {
		fields["logo"] = *data.Logo
	}
	if data.Images != nil {
		fields["images"] = entities.StringSlice(*data.Images)
	}
	if data.ContactPerson != nil {
		fields["contact_person"] = *data.ContactPerson
	}
	if data.Phone != nil {
		fields["phone"] = *data.Phone
	}
	if data.Address != nil {
		fields["address"] = *data.Address
	}
	if data.Location != nil {
		fields["location"] = *data.Location
	}
	if data.BusinessHours != nil {
		fields["business_hours"] = *data.BusinessHours
	}
	if data.Tags != nil {
		fields["tags"] = entities.StringSlice(*data.Tags)
	}
	if data.IsVerified != nil {
		fields["is_verified"] = *data.IsVerified
	}
	if data.IsActive != nil {
		fields["is_active"] = *data.IsActive
	}

	if err := s.merchantRepo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("更新商家失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	updated, err := s.merchantRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("更新后回读商家失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	result := buildMerchantVO(updated)
	return &result, nil
}

// Delete 实现接口方法。
func (s *merchantService) Delete(ctx context.Context, id uint) error {
	const operation = "MerchantService.Delete"

	if err := s.merchantRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return commonerrors.ErrRepoNotFound
		}
		s.logger.Error("删除商家失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return commonerrors.ErrSystemError
	}
	s.logger.Info("商家已删除", zap.String("operation", operation), zap.Uint("id", id))
	return nil
}

// buildMerchantVO 把商家实体转换为对外视图。
func buildMerchantVO(m *entities.Merchant) vo.MerchantVO {
	return vo.MerchantVO{
		ID:            m.ID,
		Name:          m.Name,
		Category:      m.Category,
		Description:   m.Description,
		Logo:          m.Logo,
		Images:        m.Images,
		ContactPerson: m.ContactPerson,
		Phone:         m.Phone,
		Address:       m.Address,
		Location:      m.Location,
		BusinessHours: m.BusinessHours,
		Tags:          m.Tags,
		Rating:        m.Rating,
		ReviewCount:   m.ReviewCount,
		IsVerified:    m.IsVerified,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
