package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/dependencies"
	"github.com/pbeenigg/star-vast-village/models/dto"
	"github.com/pbeenigg/star-vast-village/models/entities"
	"github.com/pbeenigg/star-vast-village/models/enums"
	"github.com/pbeenigg/star-vast-village/models/vo"
	"github.com/pbeenigg/star-vast-village/repository/postgres"
)

// AuthService 定义了小程序登录（静默授权 + 自动建档）的服务接口。
// 设计目的:
// - 一次调用完成 "授权码换 openid -> 查找或建档 -> 签发令牌对" 的完整登录链路。
// - 同一个 (platform, openid) 无论登录多少次，始终对应同一条用户记录。
type AuthService interface {
	// LoginOrRegister 处理登录请求。
	// - 平台缺省为微信小程序；没有接入登录换取的平台返回 ErrUnsupportedPlatform。
	// - 授权码被身份提供方拒绝时返回 ErrInvalidCredential。
	// - 首次登录自动建档: 角色 resident，认证状态 pending。
	LoginOrRegister(ctx context.Context, data dto.LoginData) (*vo.LoginResponse, error)
}

// authService 是 AuthService 接口的实现。
type authService struct {
	wechatClient dependencies.WechatClient
	userRepo     postgres.UserRepository
	jwtUtil      dependencies.JWTTokenInterface
	logger       *core.ZapLogger
}

// NewAuthService 创建一个新的 authService 实例。
func NewAuthService(
	wechatClient dependencies.WechatClient,
	userRepo postgres.UserRepository,
	jwtUtil dependencies.JWTTokenInterface,
	logger *core.ZapLogger,
) AuthService {
	return &authService{
		wechatClient: wechatClient,
		userRepo:     userRepo,
		jwtUtil:      jwtUtil,
		logger:       logger,
	}
}

// LoginOrRegister 实现接口方法，处理登录或首次建档。
func (s *authService) LoginOrRegister(ctx context.Context, data dto.LoginData) (*vo.LoginResponse, error) {
	const operation = "AuthService.LoginOrRegister"

	// 1. 解析平台，缺省微信小程序
	platformStr := data.Platform
	if platformStr == "" {
		platformStr = string(enums.PlatformWeapp)
	}
	platform, err := enums.PlatformFromString(platformStr)
	if err != nil {
		return nil, commonerrors.ErrUnsupportedPlatform
	}

	// 2. 按平台换取 openid
	openid, err := s.exchangeOpenid(ctx, platform, data.Code)
	if err != nil {
		return nil, err
	}

	// 3. 查找或原子建档。
	// 候选实体先填好主键和默认字段，只有插入真正生效时它们才会落库。
	candidate := &entities.User{
		ID:         uuid.New().String(),
		Openid:     openid,
		Platform:   platform,
		Role:       enums.RoleResident,
		AuthStatus: enums.AuthStatusPending,
	}
	user, created, err := s.userRepo.GetOrCreateByOpenid(ctx, candidate)
	if err != nil {
		s.logger.Error("登录建档失败",
			zap.String("operation", operation),
			zap.String("platform", string(platform)),
			zap.Error(err),
		)
		return nil, commonerrors.ErrSystemError
	}
	if created {
		s.logger.Info("新用户建档成功",
			zap.String("operation", operation),
			zap.String("userID", user.ID),
			zap.String("platform", string(platform)),
		)
	}

	// 4. 签发令牌对
	accessToken, err := s.jwtUtil.GenerateAccessToken(user.ID, user.Openid)
	if err != nil {
		s.logger.Error("生成访问令牌失败", zap.String("operation", operation), zap.String("userID", user.ID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}
	refreshToken, err := s.jwtUtil.GenerateRefreshToken(user.ID, user.Openid)
	if err != nil {
		s.logger.Error("生成刷新令牌失败", zap.String("operation", operation), zap.String("userID", user.ID), zap.Error(err))
		return nil, commonerrors.ErrSystemError
	}

	// 5. 记录登录时间。非关键写入，失败不影响登录结果。
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.Warn("更新最近登录时间失败",
			zap.String("operation", operation),
			zap.String("userID", user.ID),
			zap.Error(err),
		)
	}

	return &vo.LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		UserInfo: vo.UserInfo{
			ID:         user.ID,
			Openid:     user.Openid,
			Nickname:   user.Nickname,
			Avatar:     user.Avatar,
			Role:       user.Role,
			AuthStatus: user.AuthStatus,
		},
	}, nil
}

// exchangeOpenid 按平台调用对应身份提供方的换取接口。
func (s *authService) exchangeOpenid(ctx context.Context, platform enums.Platform, code string) (string, error) {
	const operation = "AuthService.exchangeOpenid"

	switch platform {
	case enums.PlatformWeapp:
		openid, _, err := s.wechatClient.GetSession(ctx, code)
		if err != nil {
			s.logger.Warn("微信登录凭证换取失败",
				zap.String("operation", operation),
				zap.Error(err),
			)
			return "", commonerrors.ErrInvalidCredential
		}
		return openid, nil
	case enums.PlatformXhs, enums.PlatformWeb:
		// 这两个平台尚未接入登录换取
		return "", commonerrors.ErrUnsupportedPlatform
	default:
		return "", commonerrors.ErrUnsupportedPlatform
	}
}
