package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/models/entities"
)

// MerchantRepository 定义了商家黄页的数据存储接口。
type MerchantRepository interface {
	// Create 录入一个新商家。
	Create(ctx context.Context, merchant *entities.Merchant) error

	// GetByID 根据 ID 检索单个商家，未找到时返回 commonerrors.ErrRepoNotFound。
	GetByID(ctx context.Context, id uint) (*entities.Merchant, error)

	// UpdateFields 按字段名更新商家的部分字段。
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error

	// Delete 软删除一个商家条目。
	Delete(ctx context.Context, id uint) error

	// ListActive 分页查询在展示中的商家，认证商家优先，按评分倒序。
	// - isVerified 为 nil 时不过滤认证状态。
	ListActive(ctx context.Context, category, keyword string, isVerified *bool, offset, limit int) ([]*entities.Merchant, int64, error)
}

type merchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository 创建一个新的 merchantRepository 实例。
func NewMerchantRepository(db *gorm.DB) MerchantRepository {
	return &merchantRepository{db: db}
}

func (r *merchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	if err := r.db.WithContext(ctx).Create(merchant).Error; err != nil {
		return fmt.Errorf("merchantRepo.Create: 录入商家失败: %w", err)
	}
	return nil
}

func (r *merchantRepository) GetByID(ctx context.Context, id uint) (*entities.Merchant, error) {
	var merchant entities.Merchant
	err := r.db.WithContext(ctx).First(&merchant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		return nil, fmt.Errorf("merchantRepo.GetByID: 查询商家失败 (ID: %d): %w", id, err)
	}
	return &merchant, nil
}

func (r *merchantRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entities.Merchant{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("merchantRepo.UpdateFields: 更新商家失败 (ID: %d): %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *merchantRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Merchant{}, id)
	if result.Error != nil {
		return fmt.Errorf("merchantRepo.Delete: 删除商家失败 (ID: %d): %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *merchantRepository) ListActive(ctx context.Context, category, keyword string, isVerified *bool, offset, limit int) ([]*entities.Merchant, int64, error) {
	var merchants []*entities.Merchant
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Merchant{}).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	if isVerified != nil {
		query = query.Where("is_verified = ?", *isVerified)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("merchantRepo.ListActive: 统计商家数量失败: %w", err)
	}

	err := query.Order("is_verified DESC, rating DESC, id ASC").Offset(offset).Limit(limit).Find(&merchants).Error
	if err != nil {
		return nil, 0, fmt.Errorf("merchantRepo.ListActive: 查询商家列表失败: %w", err)
	}
	return merchants, total, nil
}
