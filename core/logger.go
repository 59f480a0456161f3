package core

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pbeenigg/star-vast-village/config"
)

// ZapLogger 是 zap.Logger 的轻量包装，统一日志初始化方式，
// 并在需要底层实例的场合（如 GORM 适配器、请求日志中间件）通过 Logger() 暴露。
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger 根据配置创建 ZapLogger。
// - encoding 为 console 时使用开发友好的编码器，否则输出 JSON。
func NewZapLogger(cfg config.ZapConfig) (*ZapLogger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Encoding == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("构建 zap logger 失败: %w", err)
	}
	return &ZapLogger{logger: logger}, nil
}

// Logger 返回底层的 *zap.Logger。
func (l *ZapLogger) Logger() *zap.Logger {
	return l.logger
}

func (l *ZapLogger) Debug(msg string, fields ...zap.Field) {
	l.logger.Debug(msg, fields...)
}

func (l *ZapLogger) Info(msg string, fields ...zap.Field) {
	l.logger.Info(msg, fields...)
}

func (l *ZapLogger) Warn(msg string, fields ...zap.Field) {
	l.logger.Warn(msg, fields...)
}

func (l *ZapLogger) Error(msg string, fields ...zap.Field) {
	l.logger.Error(msg, fields...)
}

func (l *ZapLogger) Fatal(msg string, fields ...zap.Field) {
	l.logger.Fatal(msg, fields...)
}
