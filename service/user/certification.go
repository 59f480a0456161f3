package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/enums"
	"github.com/pbeenigg/star-vast-village/models/vo"
	"github.com/pbeenigg/star-vast-village/repository/postgres"
	"github.com/pbeenigg/star-vast-village/utils"
)

// CertificationAdminService 定义了管理端住户认证审核的服务接口。
// 这是仓库里唯一会解密敏感字段的地方:
// - 列表与默认详情只返回脱敏后的实名和身份证号。
// - 带披露标记的详情返回明文，每次披露都会记录审计日志。
type CertificationAdminService interface {
	// ListPending 分页列出待审核的认证申请，敏感字段脱敏。
	ListPending(ctx context.Context, page, pageSize int) (*vo.PageVO[vo.CertificationItemVO], error)

	// GetDetail 获取某个用户的认证详情。
	// - reveal 为 false 时返回脱敏字段。
	// - reveal 为 true 时返回明文，操作人与目标用户会写入审计日志。
	// - 密文信封损坏或解密失败时返回对应哨兵错误，不会静默吞掉。
	GetDetail(ctx context.Context, operatorID, userID string, reveal bool) (*vo.CertificationDetailVO, error)

	// Review 审核认证申请。
	// - approve: 认证状态置为 verified。
	// - reject: 认证状态置为 rejected。
	// - 只有 pending 状态的申请可以被审核。
	Review(ctx context.Context, operatorID, userID string, data dto.ReviewCertificationDTO) (*vo.CertificationResultVO, error)
}

// certificationAdminService 是 CertificationAdminService 接口的实现。
type certificationAdminService struct {
	userRepo  postgres.UserRepository
	encryptor *utils.Encryptor
	logger    *core.ZapLogger
}

// NewCertificationAdminService 创建一个新的 certificationAdminService 实例。
func NewCertificationAdminService(
	userRepo postgres.UserRepository,
	encryptor *utils.Encryptor,
	logger *core.ZapLogger,
) CertificationAdminService {
	return &certificationAdminService{
		userRepo:  userRepo,
		encryptor: encryptor,
		logger:    logger,
	}
}

// ListPending 实现接口方法。
func (s *certificationAdminService) ListPending(ctx context.Context, page, pageSize int) (*vo.PageVO[vo.CertificationItemVO], error) {
	const operation = "CertificationAdminService.ListPending"

	offset := (page - 1) * pageSize
	users, total, err := s.userRepo.ListByAuthStatus(ctx, enums.AuthStatusPending, offset, pageSize)
	if err != nil {
		s.logger.Error("查询待审核列表失败", zap.String("operation", operation), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	items := make([]vo.CertificationItemVO, 0, len(users))
	for _, u := range users {
		item := vo.CertificationItemVO{
			UserID:      u.ID,
			Nickname:    u.Nickname,
			Building:    u.Building,
			Unit:        u.Unit,
			Room:        u.Room,
			Phone:       utils.MaskPhone(u.Phone),
			Status:      u.AuthStatus,
			SubmittedAt: u.UpdatedAt,
		}
		// 单条记录的密文异常不应拖垮整个列表，脱敏字段置空并记录告警
		realName, idCard, err := s.decryptPII(u.RealNameEncrypted, u.IDCardEncrypted)
		if err != nil {
			s.logger.Warn("审核列表中存在无法解密的记录",
				zap.String("operation", operation),
				zap.String("userID", u.ID),
				zap.Error(err),
			)
		} else {
			item.RealNameMask = utils.MaskName(realName)
			item.IDCardMask = utils.MaskIDCard(idCard)
		}
		items = append(items, item)
	}

	result := vo.NewPageVO(items, total, page, pageSize)
	return &result, nil
}

// GetDetail 实现接口方法。
func (s *certificationAdminService) GetDetail(ctx context.Context, operatorID, userID string, reveal bool) (*vo.CertificationDetailVO, error) {
	const operation = "CertificationAdminService.GetDetail"

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("查询认证详情失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	realName, idCard, err := s.decryptPII(user.RealNameEncrypted, user.IDCardEncrypted)
	if err != nil {
		s.logger.Error("认证详情解密失败",
			zap.String("operation", operation),
			zap.String("userID", userID),
			zap.Error(err),
		)
		// 向上透传哨兵错误，控制器据此返回明确的失败而不是残缺数据
		return nil, err
	}

	detail := &vo.CertificationDetailVO{
		UserID:      user.ID,
		Building:    user.Building,
		Unit:        user.Unit,
		Room:        user.Room,
		Phone:       utils.MaskPhone(user.Phone),
		Status:      user.AuthStatus,
		SubmittedAt: user.UpdatedAt,
	}

	if reveal {
		// 明文披露必须留痕
		s.logger.Info("管理员披露认证明文",
			zap.String("operation", operation),
			zap.String("operatorID", operatorID),
			zap.String("targetUserID", userID),
		)
		detail.RealName = realName
		detail.IDCard = idCard
	} else {
		detail.RealName = utils.MaskName(realName)
		detail.IDCard = utils.MaskIDCard(idCard)
	}
	return detail, nil
}

// Review 实现接口方法。
func (s *certificationAdminService) Review(ctx context.Context, operatorID, userID string, data dto.ReviewCertificationDTO) (*vo.CertificationResultVO, error) {
	const operation = "CertificationAdminService.Review"

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("审核前查询用户失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	if user.AuthStatus != enums.AuthStatusPending {
		return nil, commonerrors.ErrValidation
	}

	newStatus := enums.AuthStatusRejected
	if data.Action == "approve" {
		newStatus = enums.AuthStatusVerified
	}

	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"auth_status": newStatus}); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("审核结果落库失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	s.logger.Info("住户认证审核完成",
		zap.String("operation", operation),
		zap.String("operatorID", operatorID),
		zap.String("targetUserID", userID),
		zap.String("action", data.Action),
		zap.String("reason", data.Reason),
	)
	return &vo.CertificationResultVO{
		ID:         userID,
		AuthStatus: newStatus,
		Building:   user.Building,
		Unit:       user.Unit,
		Room:       user.Room,
	}, nil
}

// decryptPII 解密实名与身份证号密文。
func (s *certificationAdminService) decryptPII(realNameEnc, idCardEnc string) (string, string, error) {
	realName, err := s.encryptor.Decrypt(realNameEnc)
	if err != nil {
		return "", "", err
	}
	idCard, err := s.encryptor.Decrypt(idCardEnc)
	if err != nil {
		return "", "", err
	}
	return realName, idCard, nil
}
