package repair

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
	"github.com/pbeenigg/star-vast-village/models/vo"
	"github.com/pbeenigg/star-vast-village/repository/postgres"
	"github.com/pbeenigg/star-vast-village/utils"
)

// RepairService 定义了在线报修工单的服务接口。
// 状态机: pending -> assigned -> processing -> completed，
// pending/assigned 可被取消；评价仅在 completed 后允许一次。
type RepairService interface {
	// Create 提交报修工单，自动生成 WX<yyyyMMdd><4位随机数> 格式的工单号。
	Create(ctx context.Context, submitter *entities.User, data dto.CreateRepairDTO) (*vo.RepairVO, error)

	// GetByID 获取工单详情。
	// - 提交人、处理人、管理员可见；其他人返回 ErrForbidden。
	// - 非提交人视角联系电话脱敏。
	GetByID(ctx context.Context, id uint, viewer *entities.User) (*vo.RepairVO, error)

	// ListMine 住户查询自己提交的工单。
	ListMine(ctx context.Context, submitterID string, query dto.RepairListQuery) (*vo.PageVO[vo.RepairVO], error)

	// ListAll 管理端查询全部工单。
	ListAll(ctx context.Context, query dto.RepairListQuery) (*vo.PageVO[vo.RepairVO], error)

	// ListAssigned 处理人（志愿者/管理员）查询指派给自己的工单。
	ListAssigned(ctx context.Context, handlerID string, query dto.RepairListQuery) (*vo.PageVO[vo.RepairVO], error)

	// Assign 管理员派单，工单进入 assigned 状态。
	Assign(ctx context.Context, id uint, data dto.AssignRepairDTO) (*vo.RepairVO, error)

	// UpdateStatus 推进工单状态，非法迁移返回 ErrValidation。
	// - 取消操作仅限提交人或管理员。
	// - 其他迁移仅限处理人或管理员。
	UpdateStatus(ctx context.Context, id uint, operator *entities.User, data dto.UpdateRepairStatusDTO) (*vo.RepairVO, error)

	// Rate 提交人对已完成工单评价，每单只能评价一次。
	Rate(ctx context.Context, id uint, submitterID string, data dto.RateRepairDTO) (*vo.RepairVO, error)
}

// repairService 是 RepairService 接口的实现。
type repairService struct {
	repairRepo postgres.RepairRepository
	logger     *core.ZapLogger
}

// NewRepairService 创建一个新的 repairService 实例。
func NewRepairService(repairRepo postgres.RepairRepository, logger *core.ZapLogger) RepairService {
	return &repairService{
		repairRepo: repairRepo,
		logger:     logger,
	}
}

// Create 实现接口方法，提交报修工单。
func (s *repairService) Create(ctx context.Context, submitter *entities.User, data dto.CreateRepairDTO) (*vo.RepairVO, error) {
	const operation = "RepairService.Create"

	if !enums.IsValidRepairCategory(data.Category) {
		return nil, commonerrors.ErrValidation
	}

	repair := &entities.Repair{
		OrderNo:       generateOrderNo(),
		Category:      enums.RepairCategory(data.Category),
		Title:         data.Title,
		Description:   data.Description,
		Images:        data.Images,
		Location:      data.Location,
		Building:      data.Building,
		Unit:          data.Unit,
		Room:          data.Room,
		ContactPerson: data.ContactPerson,
		ContactPhone:  data.ContactPhone,
		SubmitterID:   submitter.ID,
		Status:        enums.RepairPending,
	}

	err := s.repairRepo.Create(ctx, repair)
	if errors.Is(err, postgres.ErrDuplicateOrderNo) {
		// 同一天 4 位随机后缀撞号，换号重试一次
		repair.OrderNo = generateOrderNo()
		err = s.repairRepo.Create(ctx, repair)
	}
	if err != nil {
		s.logger.Error("创建报修工单失败",
			zap.String("operation", operation),
			zap.String("submitterID", submitter.ID),
			zap.Error(err),
		)
		return nil, commonerrors.ErrSystemError
	}

	s.logger.Info("报修工单已创建",
		zap.String("operation", operation),
		zap.String("orderNo", repair.OrderNo),
		zap.String("submitterID", submitter.ID),
		zap.String("category", data.Category),
	)
	result := buildRepairVO(repair, true)
	return &result, nil
}

// GetByID 实现接口方法。
func (s *repairService) GetByID(ctx context.Context, id uint, viewer *entities.User) (*vo.RepairVO, error) {
	const operation = "RepairService.GetByID"

	repair, err := s.repairRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("查询工单失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	isSubmitter := repair.SubmitterID == viewer.ID
	isHandler := repair.HandlerID != nil && *repair.HandlerID == viewer.ID
	if !isSubmitter && !isHandler && viewer.Role != enums.RoleAdmin {
		return nil, commonerrors.ErrForbidden
	}

	result := buildRepairVO(repair, isSubmitter)
	return &result, nil
}

// ListMine 实现接口方法。
func (s *repairService) ListMine(ctx context.Context, submitterID string, query dto.RepairListQuery) (*vo.PageVO[vo.RepairVO], error) {
	query.Normalize()
	repairs, total, err := s.repairRepo.ListBySubmitter(ctx, submitterID, query.Status, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询我的工单失败", zap.String("operation", "RepairService.ListMine"), zap.String("submitterID", submitterID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	return buildRepairPage(repairs, total, query.Page, query.PageSize, true), nil
}

// ListAll 实现接口方法。
func (s *repairService) ListAll(ctx context.Context, query dto.RepairListQuery) (*vo.PageVO[vo.RepairVO], error) {
	query.Normalize()
	repairs, total, err := s.repairRepo.ListAll(ctx, query.Status, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询全部工单失败", zap.String("operation", "RepairService.ListAll"), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	// 管理端列表需要完整联系电话
	return buildRepairPage(repairs, total, query.Page, query.PageSize, true), nil
}

// ListAssigned 实现接口方法。
func (s *repairService) ListAssigned(ctx context.Context, handlerID string, query dto.RepairListQuery) (*vo.PageVO[vo.RepairVO], error) {
	query.Normalize()
	repairs, total, err := s.repairRepo.ListByHandler(ctx, handlerID, query.Status, query.Offset(), query.PageSize)
	if err != nil {
		s.logger.Error("查询指派工单失败", zap.String("operation", "RepairService.ListAssigned"), zap.String("handlerID", handlerID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	// 处理人需要联系住户，电话不脱敏
	return buildRepairPage(repairs, total, query.Page, query.PageSize, true), nil
}

// Assign 实现接口方法，管理员派单。
func (s *repairService) Assign(ctx context.Context, id uint, data dto.AssignRepairDTO) (*vo.RepairVO, error) {
	const operation = "RepairService.Assign"

	repair, err := s.repairRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("派单前查询工单失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	if !enums.CanTransitRepairStatus(repair.Status, enums.RepairAssigned) {
		return nil, commonerrors.ErrValidation
	}

	fields := map[string]interface{}{
		"handler_id": data.HandlerID,
		"status":     enums.RepairAssigned,
	}
	if data.Priority != nil {
		fields["priority"] = *data.Priority
	}
	if data.ScheduledAt != nil {
		fields["scheduled_at"] = *data.ScheduledAt
	}

	if err := s.repairRepo.UpdateFields(ctx, id, fields); err != nil {
		s.logger.Error("派单落库失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	s.logger.Info("工单已派单",
		zap.String("operation", operation),
		zap.String("orderNo", repair.OrderNo),
		zap.String("handlerID", data.HandlerID),
	)
	return s.reload(ctx, id)
}

// UpdateStatus 实现接口方法，按状态机推进工单。
func (s *repairService) UpdateStatus(ctx context.Context, id uint, operator *entities.User, data dto.UpdateRepairStatusDTO) (*vo.RepairVO, error) {
	const operation = "RepairService.UpdateStatus"

	repair, err := s.repairRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("查询工单失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	target := enums.RepairStatus(data.Status)
	if !enums.CanTransitRepairStatus(repair.Status, target) {
		return nil, commonerrors.ErrValidation
	}

	// 取消仅限提交人或管理员；其余迁移仅限处理人或管理员
	isAdmin := operator.Role == enums.RoleAdmin
	if target == enums.RepairCancelled {
		if repair.SubmitterID != operator.ID && !isAdmin {
			return nil, commonerrors.ErrForbidden
		}
	} else {
		isHandler := repair.HandlerID != nil && *repair.HandlerID == operator.ID
		if !isHandler && !isAdmin {
			return nil, commonerrors.ErrForbidden
		}
	}

	fields := map[string]interface{}{"status": target}
	if target == enums.RepairCompleted {
		fields["completed_at"] = time.Now()
	}

	if err := s.repairRepo.UpdateFields(ctx, id, fields); err != nil {
		s.logger.Error("更新工单状态失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	s.logger.Info("工单状态已更新",
		zap.String("operation", operation),
		zap.String("orderNo", repair.OrderNo),
		zap.String("from", string(repair.Status)),
		zap.String("to", string(target)),
		zap.String("operatorID", operator.ID),
	)
	return s.reload(ctx, id)
}

// Rate 实现接口方法，评价已完成工单。
func (s *repairService) Rate(ctx context.Context, id uint, submitterID string, data dto.RateRepairDTO) (*vo.RepairVO, error) {
	const operation = "RepairService.Rate"

	repair, err := s.repairRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("评价前查询工单失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	if repair.SubmitterID != submitterID {
		return nil, commonerrors.ErrForbidden
	}
	if repair.Status != enums.RepairCompleted || repair.Rating != nil {
		return nil, commonerrors.ErrValidation
	}

	fields := map[string]interface{}{
		"rating":   data.Rating,
		"feedback": data.Feedback,
	}
	if err := s.repairRepo.UpdateFields(ctx, id, fields); err != nil {
		s.logger.Error("评价落库失败", zap.String("operation", operation), zap.Uint("id", id), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	return s.reload(ctx, id)
}

// reload 回读工单并以提交人视角构建视图（调用方都是有权看全量的角色）。
func (s *repairService) reload(ctx context.Context, id uint) (*vo.RepairVO, error) {
	repair, err := s.repairRepo.GetByID(ctx, id)
	if err != nil {
		return nil, commonerrors.ErrSystemError
	}
	result := buildRepairVO(repair, true)
	return &result, nil
}

// generateOrderNo 生成工单号: WX + yyyyMMdd + 4位随机数。
func generateOrderNo() string {
	return fmt.Sprintf("WX%s%04d", time.Now().Format("20060102"), rand.Intn(10000))
}

// buildRepairPage 批量构建分页视图。
func buildRepairPage(repairs []*entities.Repair, total int64, page, pageSize int, fullPhone bool) *vo.PageVO[vo.RepairVO] {
	items := make([]vo.RepairVO, 0, len(repairs))
	for _, r := range repairs {
		items = append(items, buildRepairVO(r, fullPhone))
	}
	result := vo.NewPageVO(items, total, page, pageSize)
	return &result
}

// buildRepairVO 把工单实体转换为对外视图，fullPhone 为 false 时联系电话脱敏。
func buildRepairVO(r *entities.Repair, fullPhone bool) vo.RepairVO {
	phone := r.ContactPhone
	if !fullPhone {
		phone = utils.MaskPhone(phone)
	}
	return vo.RepairVO{
		ID:            r.ID,
		OrderNo:       r.OrderNo,
		Category:      r.Category,
		Title:         r.Title,
		Description:   r.Description,
		Images:        r.Images,
		Location:      r.Location,
		Building:      r.Building,
		Unit:          r.Unit,
		Room:          r.Room,
		ContactPerson: r.ContactPerson,
		ContactPhone:  phone,
		SubmitterID:   r.SubmitterID,
		HandlerID:     r.HandlerID,
		Status:        r.Status,
		Priority:      r.Priority,
		ScheduledAt:   r.ScheduledAt,
		CompletedAt:   r.CompletedAt,
		Rating:        r.Rating,
		Feedback:      r.Feedback,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
