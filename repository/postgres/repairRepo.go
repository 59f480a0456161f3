package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/models/entities"
)

// ErrDuplicateOrderNo 工单号撞号，同一天的随机后缀冲突。调用方可换号重试一次。
var ErrDuplicateOrderNo = errors.New("工单号已存在")

// RepairRepository 定义了在线报修工单的数据存储接口。
type RepairRepository interface {
	// Create 创建工单。工单号唯一索引冲突时返回 ErrDuplicateOrderNo。
	Create(ctx context.Context, repair *entities.Repair) error

	// GetByID 根据 ID 检索单个工单，未找到时返回 commonerrors.ErrRepoNotFound。
	GetByID(ctx context.Context, id uint) (*entities.Repair, error)

	// UpdateFields 按字段名更新工单的部分字段。
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error

	// ListBySubmitter 分页查询指定住户提交的工单，按创建时间倒序。
	ListBySubmitter(ctx context.Context, submitterID, status string, offset, limit int) ([]*entities.Repair, int64, error)

	// ListAll 管理端分页查询全部工单。
	ListAll(ctx context.Context, status string, offset, limit int) ([]*entities.Repair, int64, error)

	// ListByHandler 分页查询指派给某处理人的工单。
	ListByHandler(ctx context.Context, handlerID, status string, offset, limit int) ([]*entities.Repair, int64, error)
}

type repairRepository struct {
	db *gorm.DB
}

// NewRepairRepository 创建一个新的 repairRepository 实例。
func NewRepairRepository(db *gorm.DB) RepairRepository {
	return &repairRepository{db: db}
}

func (r *repairRepository) Create(ctx context.Context, repair *entities.Repair) error {
	if err := r.db.WithContext(ctx).Create(repair).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateOrderNo
		}
		return fmt.Errorf("repairRepo.Create: 创建工单失败: %w", err)
	}
	return nil
}

func (r *repairRepository) GetByID(ctx context.Context, id uint) (*entities.Repair, error) {
	var repair entities.Repair
	err := r.db.WithContext(ctx).First(&repair, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		return nil, fmt.Errorf("repairRepo.GetByID: 查询工单失败 (ID: %d): %w", id, err)
	}
	return &repair, nil
}

func (r *repairRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entities.Repair{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("repairRepo.UpdateFields: 更新工单失败 (ID: %d): %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

func (r *repairRepository) ListBySubmitter(ctx context.Context, submitterID, status string, offset, limit int) ([]*entities.Repair, int64, error) {
	return r.list(ctx, map[string]interface{}{"submitter_id": submitterID}, status, offset, limit)
}

func (r *repairRepository) ListAll(ctx context.Context, status string, offset, limit int) ([]*entities.Repair, int64, error) {
	return r.list(ctx, nil, status, offset, limit)
}

func (r *repairRepository) ListByHandler(ctx context.Context, handlerID, status string, offset, limit int) ([]*entities.Repair, int64, error) {
	return r.list(ctx, map[string]interface{}{"handler_id": handlerID}, status, offset, limit)
}

func (r *repairRepository) list(ctx context.Context, conds map[string]interface{}, status string, offset, limit int) ([]*entities.Repair, int64, error) {
	var repairs []*entities.Repair
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Repair{})
	for column, value := range conds {
		query = query.Where(column+" = ?", value)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("repairRepo.list: 统计工单数量失败: %w", err)
	}

	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&repairs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("repairRepo.list: 查询工单列表失败: %w", err)
	}
	return repairs, total, nil
}

// isUniqueViolation 判断是否为唯一约束冲突。
// Postgres 的 SQLSTATE 23505，驱动错误信息里会带上这个代码。
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "23505")
}
