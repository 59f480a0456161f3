package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pbeenigg/star-vast-village/config"
)

// GormLogger 将 GORM 的日志输出适配到 ZapLogger。
type GormLogger struct {
	logger                    *ZapLogger
	level                     gormlogger.LogLevel
	slowThreshold             time.Duration
	ignoreRecordNotFoundError bool
}

// NewGormLogger 根据配置创建 GORM 日志适配器。
func NewGormLogger(logger *ZapLogger, cfg config.GormLogConfig) gormlogger.Interface {
	var level gormlogger.LogLevel
	switch cfg.Level {
	case "silent":
		level = gormlogger.Silent
	case "error":
		level = gormlogger.Error
	case "warn":
		level = gormlogger.Warn
	default:
		level = gormlogger.Info
	}

	slowThreshold := time.Duration(cfg.SlowThresholdMs) * time.Millisecond
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}

	return &GormLogger{
		logger:                    logger,
		level:                     level,
		slowThreshold:             slowThreshold,
		ignoreRecordNotFoundError: cfg.IgnoreRecordNotFoundError,
	}
}

// LogMode 实现 gorm logger.Interface。
func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Info {
		g.logger.Info("gorm", zap.String("msg", msg), zap.Any("data", data))
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.logger.Warn("gorm", zap.String("msg", msg), zap.Any("data", data))
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Error {
		g.logger.Error("gorm", zap.String("msg", msg), zap.Any("data", data))
	}
}

// Trace 记录 SQL 执行情况：错误、慢查询，其余按 Info 级别输出。
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && g.level >= gormlogger.Error &&
		(!errors.Is(err, gorm.ErrRecordNotFound) || !g.ignoreRecordNotFoundError):
		g.logger.Error("gorm 执行出错",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	case elapsed > g.slowThreshold && g.level >= gormlogger.Warn:
		g.logger.Warn("gorm 慢查询",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", g.slowThreshold),
		)
	case g.level >= gormlogger.Info:
		g.logger.Debug("gorm 执行",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
		)
	}
}
