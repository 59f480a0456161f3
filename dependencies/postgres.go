package dependencies

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pbeenigg/star-vast-village/config"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/models/entities"
)

// InitPostgres 初始化 Postgres 连接并返回 *gorm.DB
func InitPostgres(cfg *config.VillageConfig, logger *core.ZapLogger) (*gorm.DB, error) {
	if cfg.PostgresConfig.DSN == "" {
		logger.Error("Postgres DSN 未配置")
		return nil, fmt.Errorf("配置中的 Postgres DSN 为空")
	}

	gormLogger := core.NewGormLogger(logger, cfg.GormLogConfig)
	gormConfig := &gorm.Config{
		Logger: gormLogger,
	}

	// 托管数据库冷启动时可能短暂不可达，带重试连接
	var db *gorm.DB
	var err error
	maxRetries := 5
	retryInterval := 2 * time.Second

	logger.Info("尝试连接 Postgres", zap.String("dsn_preview", previewDSN(cfg.PostgresConfig.DSN)))

	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(cfg.PostgresConfig.DSN), gormConfig)
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				if err = sqlDB.Ping(); err == nil {
					break
				}
			} else {
				err = pingErr
			}
		}
		logger.Warn("无法连接到 Postgres，尝试重试",
			zap.Int("retry", i+1),
			zap.Int("maxRetries", maxRetries),
			zap.Error(err),
		)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		logger.Error("无法连接到数据库", zap.Error(err))
		return nil, fmt.Errorf("无法连接到数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("无法获取数据库对象", zap.Error(err))
		return nil, fmt.Errorf("无法获取数据库对象: %w", err)
	}

	// 配置连接池
	sqlDB.SetMaxIdleConns(cfg.PostgresConfig.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.PostgresConfig.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移数据库表结构。
	// users 表上的 (platform, openid) 联合唯一索引是登录建档原子性的前提，由实体 tag 声明。
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Announcement{},
		&entities.Merchant{},
		&entities.Post{},
		&entities.PostComment{},
		&entities.PostLike{},
		&entities.Repair{},
	)
	if err != nil {
		logger.Error("数据库迁移失败", zap.Error(err))
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	logger.Info("成功连接到 Postgres 数据库并完成自动迁移")
	return db, nil
}

// previewDSN 返回用于日志记录的 DSN 预览版本，隐藏密码字段。
func previewDSN(dsn string) string {
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
