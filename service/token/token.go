package token

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/commonerrors"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/dependencies"
	"github.com/pbeenigg/star-vast-village/models/vo"
	"github.com/pbeenigg/star-vast-village/repository/postgres"
	"github.com/pbeenigg/star-vast-village/repository/redis"
)

// AuthTokenService 定义了管理认证令牌（Access Token 和 Refresh Token）的服务接口。
// 设计目的:
// - 提供统一的令牌吊销（退出登录）和续期（刷新令牌）功能。
// - 与登录方式解耦，登录服务只负责生成初始令牌对，后续生命周期由本服务管理。
type AuthTokenService interface {
	// Logout 处理用户退出登录的请求。
	// 解析传入的刷新令牌，获取其 JTI 并加入黑名单，使其在剩余有效期内失效。
	// 令牌解析失败（已过期、格式错误）时也视为退出成功，目标状态已经达到。
	Logout(ctx context.Context, tokenToRevoke string) error

	// RefreshToken 使用有效的刷新令牌换取新的令牌对。
	// 刷新是一次性的: 旧刷新令牌的 JTI 在发出新令牌对的同时加入黑名单，
	// 同一个刷新令牌不能换取两套令牌对。
	RefreshToken(ctx context.Context, refreshToken string) (vo.TokenPair, error)
}

// authTokenService 是 AuthTokenService 接口的实现。
type authTokenService struct {
	tokenBlackRepo redis.TokenBlackRepo
	userRepo       postgres.UserRepository
	jwtUtil        dependencies.JWTTokenInterface
	logger         *core.ZapLogger
}

// NewAuthTokenService 创建一个新的 authTokenService 实例。
func NewAuthTokenService(
	tokenBlackRepo redis.TokenBlackRepo,
	userRepo postgres.UserRepository,
	jwtUtil dependencies.JWTTokenInterface,
	logger *core.ZapLogger,
) AuthTokenService {
	return &authTokenService{
		tokenBlackRepo: tokenBlackRepo,
		userRepo:       userRepo,
		jwtUtil:        jwtUtil,
		logger:         logger,
	}
}

// Logout 实现接口方法，处理退出登录。
func (s *authTokenService) Logout(ctx context.Context, tokenToRevoke string) error {
	const operation = "AuthTokenService.Logout"

	claims, err := s.jwtUtil.ParseRefreshToken(tokenToRevoke)
	if err != nil {
		// 令牌本身已经不可用，退出的目标已达到
		s.logger.Warn("退出登录时解析令牌失败或令牌无效",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return nil
	}

	// 黑名单 TTL 对齐令牌剩余有效期，到期后键自动清理
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.tokenBlackRepo.AddJtiToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("将 JTI 加入黑名单失败",
			zap.String("operation", operation),
			zap.String("jti", claims.ID),
			zap.String("userID", claims.UserID),
			zap.Error(err),
		)
		// 黑名单写入失败不阻塞退出，令牌到期后自然失效
		return nil
	}

	s.logger.Info("成功吊销刷新令牌",
		zap.String("operation", operation),
		zap.String("jti", claims.ID),
		zap.String("userID", claims.UserID),
		zap.Duration("ttl", ttl),
	)
	return nil
}

// RefreshToken 实现接口方法，刷新认证令牌并轮换刷新令牌。
func (s *authTokenService) RefreshToken(ctx context.Context, refreshToken string) (vo.TokenPair, error) {
	const operation = "AuthTokenService.RefreshToken"
	emptyTokenPair := vo.TokenPair{}

	// 1. 解析刷新令牌。签名、过期、type 声明在这一步统一校验。
	claims, err := s.jwtUtil.ParseRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("解析刷新令牌失败或令牌无效",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return emptyTokenPair, commonerrors.ErrInvalidToken
	}
	jti := claims.ID
	userID := claims.UserID

	// 2. 检查 JTI 是否已被吊销
	isBlacklisted, err := s.tokenBlackRepo.IsJtiBlacklisted(ctx, jti)
	if err != nil {
		s.logger.Error("检查 JTI 黑名单失败",
			zap.String("operation", operation),
			zap.String("jti", jti),
			zap.String("userID", userID),
			zap.Error(err),
		)
		return emptyTokenPair, commonerrors.ErrSystemError
	}
	if isBlacklisted {
		s.logger.Warn("尝试使用已吊销的刷新令牌",
			zap.String("operation", operation),
			zap.String("jti", jti),
			zap.String("userID", userID),
		)
		return emptyTokenPair, commonerrors.ErrInvalidToken
	}

	// 3. 回查用户，被删除的用户不能续期
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, commonerrors.ErrRepoNotFound) {
			s.logger.Warn("刷新令牌对应的用户不存在",
				zap.String("operation", operation),
				zap.String("userID", userID),
			)
			return emptyTokenPair, commonerrors.ErrInvalidToken
		}
		s.logger.Error("刷新令牌时获取用户信息失败",
			zap.String("operation", operation),
			zap.String("userID", userID),
			zap.Error(err),
		)
		return emptyTokenPair, commonerrors.ErrSystemError
	}

	// 4. 生成新的令牌对
	newAccessToken, err := s.jwtUtil.GenerateAccessToken(user.ID, user.Openid)
	if err != nil {
		s.logger.Error("生成新的访问令牌失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return emptyTokenPair, commonerrors.ErrSystemError
	}
	newRefreshToken, err := s.jwtUtil.GenerateRefreshToken(user.ID, user.Openid)
	if err != nil {
		s.logger.Error("生成新的刷新令牌失败", zap.String("operation", operation), zap.String("userID", userID), zap.Error(err))
		return emptyTokenPair, commonerrors.ErrSystemError
	}

	// 5. 吊销旧的刷新令牌，完成轮换。
	// 写入失败只记录日志: 新令牌已经生成，回滚它对用户更不友好，
	// 旧令牌也会在剩余 TTL 后自然过期。
	var oldTokenTTL time.Duration
	if claims.ExpiresAt != nil {
		oldTokenTTL = time.Until(claims.ExpiresAt.Time)
	}
	if oldTokenTTL > 0 {
		if err := s.tokenBlackRepo.AddJtiToBlacklist(ctx, jti, oldTokenTTL); err != nil {
			s.logger.Error("将旧刷新令牌 JTI 加入黑名单失败",
				zap.String("operation", operation),
				zap.String("jti", jti),
				zap.String("userID", userID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("成功刷新令牌",
		zap.String("operation", operation),
		zap.String("userID", userID),
		zap.String("oldJti", jti),
	)
	return vo.TokenPair{
		Token:        newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}
