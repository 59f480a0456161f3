package user

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/dependencies"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
	"github.com/pbeenigg/star-vast-village/models/vo"
	"github.com/pbeenigg/star-vast-village/repository/postgres"
	"github.com/pbeenigg/star-vast-village/utils"
)

// UserService 定义了用户个人资料与住户认证相关的服务接口。
// 敏感字段约定: 实名与身份证号先校验格式、再加密、最后落库；
// 明文只在认证提交和管理端披露这两个瞬间存在于内存中。
type UserService interface {
	// GetProfile 获取个人资料，手机号脱敏返回。
	GetProfile(ctx context.Context, userID string) (*vo.ProfileVO, error)

	// UpdateProfile 更新昵称/头像/手机号，只更新提供了的字段。
	UpdateProfile(ctx context.Context, userID string, data dto.UpdateProfileDTO) (*vo.ProfileVO, error)

	// SubmitCertification 提交住户认证。
	// - 身份证号未通过格式校验时直接拒绝，不进入加密与持久化。
	// - 重新提交时认证状态无条件回到 pending，等待重新审核。
	SubmitCertification(ctx context.Context, userID string, data dto.CertificationDTO) (*vo.CertificationResultVO, error)

	// GetCertificationStatus 查询认证状态，不返回任何明文敏感字段。
	GetCertificationStatus(ctx context.Context, userID string) (*vo.CertificationStatusVO, error)

	// BindWechatPhone 用微信手机号授权码换取并绑定手机号，返回脱敏结果。
	BindWechatPhone(ctx context.Context, userID string, code string) (*vo.PhoneVO, error)

	// UploadAvatar 上传头像到对象存储并更新用户记录。
	UploadAvatar(ctx context.Context, userID string, fileName string, reader io.Reader, size int64) (*vo.AvatarVO, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo     postgres.UserRepository
	wechatClient dependencies.WechatClient
	cosClient    dependencies.COSClientInterface
	encryptor    *utils.Encryptor
	logger       *core.ZapLogger
}

// NewUserService 创建一个新的 userService 实例。
func NewUserService(
	userRepo postgres.UserRepository,
	wechatClient dependencies.WechatClient,
	cosClient dependencies.COSClientInterface,
	encryptor *utils.Encryptor,
	logger *core.ZapLogger,
) UserService {
	return &userService{
		userRepo:     userRepo,
		wechatClient: wechatClient,
		cosClient:    cosClient,
		encryptor:    encryptor,
		logger:       logger,
	}
}

// GetProfile 实现接口方法。
func (s *userService) GetProfile(ctx context.Context, userID string) (*vo.ProfileVO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("获取用户资料失败", zap.String("operation", "UserService.GetProfile"), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	return buildProfileVO(user), nil
}

// UpdateProfile 实现接口方法，只更新调用方提供的字段。
func (s *userService) UpdateProfile(ctx context.Context, userID string, data dto.UpdateProfileDTO) (*vo.ProfileVO, error) {
	const operation = "UserService.UpdateProfile"

	fields := map[string]interface{}{}
	if data.Nickname != nil {
		fields["nickname"] = *data.Nickname
	}
	if data.Avatar != nil {
		fields["avatar"] = *data.Avatar
	}
	if data.Phone != nil {
		fields["phone"] = *data.Phone
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			if errors.Is(err, commonerrors.ErrRepoNotFound) {
				return nil, commonerrors.ErrRepoNotFound
			}
			s.logger.Error("更新用户资料失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
			return nil, commonerrors.ErrSystemError
		}
	}

	return s.GetProfile(ctx, userID)
}

// SubmitCertification 实现接口方法，提交或重新提交住户认证。
func (s *userService) SubmitCertification(ctx context.Context, userID string, data dto.CertificationDTO) (*vo.CertificationResultVO, error) {
	const operation = "UserService.SubmitCertification"

	// 绑定层已经做过一轮校验，这里在加密前再拦一次，
	// 保证格式非法的身份证号在任何调用路径下都不会被加密落库。
	if !utils.IsValidIDCard(data.IDCard) {
		return nil, commonerrors.ErrValidation
	}

	realNameEnc, err := s.encryptor.Encrypt(data.RealName)
	if err != nil {
		s.logger.Error("加密实名失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	idCardEnc, err := s.encryptor.Encrypt(data.IDCard)
	if err != nil {
		s.logger.Error("加密身份证号失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	// 重新提交无条件回到 pending，之前的审核结果作废
	fields := map[string]interface{}{
		"real_name_encrypted": realNameEnc,
		"id_card_encrypted":   idCardEnc,
		"building":            data.Building,
		"unit":                data.Unit,
		"room":                data.Room,
		"auth_status":         enums.AuthStatusPending,
	}
	if data.Phone != "" {
		fields["phone"] = data.Phone
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("认证信息落库失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	s.logger.Info("住户认证已提交，等待审核",
		zap.String("operation", operation),
		zap.String("userID", userID),
		zap.String("building", data.Building),
	)
	return &vo.CertificationResultVO{
		ID:         userID,
		AuthStatus: enums.AuthStatusPending,
		Building:   data.Building,
		Unit:       data.Unit,
		Room:       data.Room,
	}, nil
}

// GetCertificationStatus 实现接口方法。
func (s *userService) GetCertificationStatus(ctx context.Context, userID string) (*vo.CertificationStatusVO, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("查询认证状态失败", zap.String("operation", "UserService.GetCertificationStatus"), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	return &vo.CertificationStatusVO{
		Status:      user.AuthStatus,
		Building:    user.Building,
		Unit:        user.Unit,
		Room:        user.Room,
		SubmittedAt: user.UpdatedAt,
	}, nil
}

// BindWechatPhone 实现接口方法。
func (s *userService) BindWechatPhone(ctx context.Context, userID string, code string) (*vo.PhoneVO, error) {
	const operation = "UserService.BindWechatPhone"

	phone, err := s.wechatClient.GetPhoneNumber(ctx, code)
	if err != nil {
		s.logger.Warn("微信手机号换取失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrInvalidCredential
	}

	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"phone": phone}); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("绑定手机号失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	return &vo.PhoneVO{Phone: utils.MaskPhone(phone)}, nil
}

// UploadAvatar 实现接口方法。
func (s *userService) UploadAvatar(ctx context.Context, userID string, fileName string, reader io.Reader, size int64) (*vo.AvatarVO, error) {
	const operation = "UserService.UploadAvatar"

	avatarURL, err := s.cosClient.UploadUserAvatar(ctx, userID, fileName, reader, size)
	if err != nil {
		s.logger.Error("上传头像到对象存储失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrServiceBusy
	}

	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"avatar": avatarURL}); err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			return nil, commonerrors.ErrRepoNotFound
		}
		s.logger.Error("更新头像字段失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	return &vo.AvatarVO{URL: avatarURL}, nil
}

// buildProfileVO 把用户实体转换为对外的资料视图，手机号脱敏。
func buildProfileVO(user *entities.User) *vo.ProfileVO {
	return &vo.ProfileVO{
		ID:          user.ID,
		Openid:      user.Openid,
		Platform:    user.Platform,
		Nickname:    user.Nickname,
		Avatar:      user.Avatar,
		Phone:       utils.MaskPhone(user.Phone),
		Role:        user.Role,
		AuthStatus:  user.AuthStatus,
		Building:    user.Building,
		Unit:        user.Unit,
		Room:        user.Room,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
