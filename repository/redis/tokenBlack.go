package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pbeenigg/star-vast-village/constants"
)

// TODO: 为令牌黑名单使用开启持久化（RDB+AOF）的独立 Redis 实例。
// 黑名单随实例重启丢失后，已吊销的刷新令牌会重新变得可用，退出登录形同虚设。

// TokenBlackRepo 定义了基于 JTI (JWT ID) 的令牌黑名单仓库接口。
// 退出登录与刷新轮换时把旧令牌的 JTI 写入黑名单，TTL 对齐令牌剩余有效期，
// 到期后键自动消失，黑名单体积有自然上界。
type TokenBlackRepo interface {
	// AddJtiToBlacklist 将指定的 JTI 加入黑名单。
	// - ttl: 应等于对应令牌的剩余有效时间，非正值时直接跳过（令牌已过期，无需拉黑）。
	AddJtiToBlacklist(ctx context.Context, jti string, ttl time.Duration) error

	// IsJtiBlacklisted 检查指定的 JTI 是否在黑名单中。
	// - JTI 不存在于黑名单是预期情况，返回 false, nil 而不是错误。
	IsJtiBlacklisted(ctx context.Context, jti string) (bool, error)
}

// tokenBlackRepo 是 TokenBlackRepo 接口基于 go-redis/v9 的实现。
type tokenBlackRepo struct {
	client *redis.Client
}

// NewTokenBlacklistRepo 创建一个新的 tokenBlackRepo 实例。
func NewTokenBlacklistRepo(client *redis.Client) TokenBlackRepo {
	return &tokenBlackRepo{client: client}
}

// buildBlacklistKey 生成黑名单键名，形如 "blacklist:jti:<uuid>"。
func (r *tokenBlackRepo) buildBlacklistKey(jti string) string {
	return constants.BlacklistKeyPrefix + ":jti:" + jti
}

// AddJtiToBlacklist 实现接口方法，将 JTI 加入黑名单。
func (r *tokenBlackRepo) AddJtiToBlacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// 令牌已经过期，解析环节本身会拒绝它
		return nil
	}

	key := r.buildBlacklistKey(jti)
	if err := r.client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		return fmt.Errorf("tokenBlackRepo.AddJtiToBlacklist: 将 JTI 加入黑名单失败 (JTI: %s): %w", jti, err)
	}
	return nil
}

// IsJtiBlacklisted 实现接口方法，检查 JTI 是否在黑名单中。
func (r *tokenBlackRepo) IsJtiBlacklisted(ctx context.Context, jti string) (bool, error) {
	key := r.buildBlacklistKey(jti)
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("tokenBlackRepo.IsJtiBlacklisted: 检查 JTI 黑名单失败 (JTI: %s): %w", jti, err)
	}
	return exists == 1, nil
}
