package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
)

// UserRepository 定义了与用户数据存储相关的操作接口。
// - 登录建档走 GetOrCreateByOpenid，唯一性由数据库的 (platform, openid) 联合唯一索引保证。
type UserRepository interface {
	// GetOrCreateByOpenid 按 (platform, openid) 查找用户，不存在时原子建档。
	// - candidate: 不存在时插入的用户实体（调用方负责填好 ID 和默认字段）。
	// - 返回最终的用户记录（已存在的或新建的）以及是否为新建。
	// - 并发首登时依赖 ON CONFLICT DO NOTHING + 回读，保证恰好一条记录。
	GetOrCreateByOpenid(ctx context.Context, candidate *entities.User) (*entities.User, bool, error)

	// GetUserByID 根据用户 ID 检索单个用户。
	// - 未找到时返回 commonerrors.ErrRepoNotFound。
	GetUserByID(ctx context.Context, userID string) (*entities.User, error)

	// UpdateFields 按字段名更新指定用户的部分字段。
	// - 用于资料更新、认证提交、审核结果落库等只改少数列的场景。
	UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) error

	// UpdateLastLogin 记录最近登录时间。
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// ListByAuthStatus 按认证状态分页列出用户，供管理端审核队列使用。
	ListByAuthStatus(ctx context.Context, status enums.AuthStatus, offset, limit int) ([]*entities.User, int64, error)
}

// userRepository 是 UserRepository 接口基于 GORM 的实现。
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建一个新的 userRepository 实例。
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetOrCreateByOpenid 实现接口方法，原子化的"查找或建档"。
func (r *userRepository) GetOrCreateByOpenid(ctx context.Context, candidate *entities.User) (*entities.User, bool, error) {
	// ON CONFLICT DO NOTHING: 冲突时静默跳过插入，RowsAffected 为 0。
	// 不用 "先查后插"，那样两个并发首登会同时判定不存在然后都去插入。
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "platform"}, {Name: "openid"}},
			DoNothing: true,
		}).
		Create(candidate)
	if result.Error != nil {
		return nil, false, fmt.Errorf("userRepo.GetOrCreateByOpenid: 建档失败 (Openid: %s): %w", candidate.Openid, result.Error)
	}
	created := result.RowsAffected > 0

	if created {
		return candidate, true, nil
	}

	// 插入被冲突跳过，回读已存在的记录
	var existing entities.User
	err := r.db.WithContext(ctx).
		Where("platform = ? AND openid = ?", candidate.Platform, candidate.Openid).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 插入没生效、回读也不存在，只可能是并发删除之类的异常时序
			return nil, false, commonerrors.ErrRepoNotFound
		}
		return nil, false, fmt.Errorf("userRepo.GetOrCreateByOpenid: 回读用户失败 (Openid: %s): %w", candidate.Openid, err)
	}
	return &existing, false, nil
}

// GetUserByID 实现接口方法，根据 ID 获取用户信息。
func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		return nil, fmt.Errorf("userRepo.GetUserByID: 查询用户失败 (UserID: %s): %w", userID, err)
	}
	return &user, nil
}

// UpdateFields 实现接口方法，按字段名更新部分字段。
// 显式传字段 map 而不是 Updates(实体)，避免零值字段被 GORM 跳过。
func (r *userRepository) UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", userID).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("userRepo.UpdateFields: 更新用户字段失败 (UserID: %s): %w", userID, result.Error)
	}
	if result.RowsAffected == 0 {
		return commonerrors.ErrRepoNotFound
	}
	return nil
}

// UpdateLastLogin 实现接口方法，刷新最近登录时间。
// 登录路径上的非关键写入，失败由调用方决定是否忽略。
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", userID).
		Update("last_login_at", at).Error
	if err != nil {
		return fmt.Errorf("userRepo.UpdateLastLogin: 更新登录时间失败 (UserID: %s): %w", userID, err)
	}
	return nil
}

// ListByAuthStatus 实现接口方法，按认证状态分页查询。
func (r *userRepository) ListByAuthStatus(ctx context.Context, status enums.AuthStatus, offset, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.User{}).Where("auth_status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("userRepo.ListByAuthStatus: 统计用户数量失败: %w", err)
	}

	err := query.Order("updated_at ASC").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("userRepo.ListByAuthStatus: 查询用户列表失败: %w", err)
	}
	return users, total, nil
}
