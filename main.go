package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/pbeenigg/star-vast-village/config"
	"github.com/pbeenigg/star-vast-village/constants"
	"github.com/pbeenigg/star-vast-village/core"
	_ "github.com/pbeenigg/star-vast-village/docs" // Swagger 文档类型
	"github.com/pbeenigg/star-vast-village/initialization"
	"github.com/pbeenigg/star-vast-village/router"
)

// @title           Star Vast Village API
// @version         1.0
// @description     星瀚社区小程序后端服务 API 文档
// @termsOfService  http://swagger.io/terms/

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8082
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description 访问令牌，格式: "Bearer {token}"
func main() {
	// --- 配置和基础设置 ---
	var configFile string
	flag.StringVar(&configFile, "config", "config/config.development.yaml", "Path to configuration file")
	flag.Parse()

	// 1. 加载配置
	var cfg config.VillageConfig
	if err := core.LoadConfig(configFile, &cfg); err != nil {
		log.Fatalf("FATAL: 加载配置失败 (%s): %v", configFile, err)
	}

	// --- 手动从环境变量覆盖关键配置 (生产环境部署核心) ---
	log.Println("检查环境变量以覆盖文件配置...")
	// Log
	if level := os.Getenv("ZAPCONFIG_LEVEL"); level != "" {
		cfg.ZapConfig.Level = level
		log.Printf("通过环境变量覆盖了 ZapConfig.Level: %s\n", level)
	}
	if level := os.Getenv("GORMLOGCONFIG_LEVEL"); level != "" {
		cfg.GormLogConfig.Level = level
		log.Printf("通过环境变量覆盖了 GormLogConfig.Level: %s\n", level)
	}
	// Tracer
	if enabled, err := strconv.ParseBool(os.Getenv("TRACERCONFIG_ENABLED")); err == nil {
		cfg.TracerConfig.Enabled = enabled
		log.Printf("通过环境变量覆盖了 TracerConfig.Enabled: %t\n", enabled)
	}
	// JWT
	if key := os.Getenv("JWTCONFIG_SECRET_KEY"); key != "" {
		cfg.JWTConfig.SecretKey = key
		log.Printf("通过环境变量覆盖了 JWTConfig.SecretKey") // 不打印密钥值
	}
	// Postgres & Redis
	if dsn := os.Getenv("POSTGRESCONFIG_DSN"); dsn != "" {
		cfg.PostgresConfig.DSN = dsn
		log.Printf("通过环境变量覆盖了 PostgresConfig.DSN") // 不打印DSN
	}
	if addr := os.Getenv("REDISCONFIG_ADDRESS"); addr != "" {
		cfg.RedisConfig.Address = addr
		log.Printf("通过环境变量覆盖了 RedisConfig.Address: %s\n", addr)
	}
	if pass := os.Getenv("REDISCONFIG_PASSWORD"); pass != "" {
		cfg.RedisConfig.Password = pass
		log.Printf("通过环境变量覆盖了 RedisConfig.Password")
	}
	// 微信小程序
	if appID := os.Getenv("WECHATCONFIG_APP_ID"); appID != "" {
		cfg.WechatConfig.AppID = appID
		log.Printf("通过环境变量覆盖了 WechatConfig.AppID: %s\n", appID)
	}
	if secret := os.Getenv("WECHATCONFIG_SECRET"); secret != "" {
		cfg.WechatConfig.Secret = secret
		log.Printf("通过环境变量覆盖了 WechatConfig.Secret")
	}
	// 敏感字段加密
	if secret := os.Getenv("ENCRYPTIONCONFIG_SECRET"); secret != "" {
		cfg.EncryptionConfig.Secret = secret
		log.Printf("通过环境变量覆盖了 EncryptionConfig.Secret")
	}
	// COS
	if id := os.Getenv("COSCONFIG_SECRET_ID"); id != "" {
		cfg.COSConfig.SecretID = id
		log.Printf("通过环境变量覆盖了 COSConfig.SecretID")
	}
	if key := os.Getenv("COSCONFIG_SECRET_KEY"); key != "" {
		cfg.COSConfig.SecretKey = key
		log.Printf("通过环境变量覆盖了 COSConfig.SecretKey")
	}
	if name := os.Getenv("COSCONFIG_BUCKET_NAME"); name != "" {
		cfg.COSConfig.BucketName = name
		log.Printf("通过环境变量覆盖了 COSConfig.BucketName: %s\n", name)
	}
	if id := os.Getenv("COSCONFIG_APP_ID"); id != "" {
		cfg.COSConfig.AppID = id
		log.Printf("通过环境变量覆盖了 COSConfig.AppID: %s\n", id)
	}
	if region := os.Getenv("COSCONFIG_REGION"); region != "" {
		cfg.COSConfig.Region = region
		log.Printf("通过环境变量覆盖了 COSConfig.Region: %s\n", region)
	}
	if url := os.Getenv("COSCONFIG_BASE_URL"); url != "" {
		cfg.COSConfig.BaseURL = url
		log.Printf("通过环境变量覆盖了 COSConfig.BaseURL: %s\n", url)
	}
	// --- 结束环境变量覆盖 ---

	// 2. 初始化 Logger (使用可能已被覆盖的配置)
	logger, loggerErr := core.NewZapLogger(cfg.ZapConfig)
	if loggerErr != nil {
		log.Fatalf("FATAL: 初始化 ZapLogger 失败: %v", loggerErr)
	}
	defer func() {
		logger.Info("正在同步日志...")
		if err := logger.Logger().Sync(); err != nil {
			log.Printf("WARN: ZapLogger Sync 失败: %v\n", err)
		}
	}()
	logger.Info("Logger 初始化成功")

	// 3. 初始化 TracerProvider (如果启用)
	if cfg.TracerConfig.Enabled {
		tracerShutdown, err := core.InitTracerProvider(
			constants.ServiceName,
			constants.ServiceVersion,
			cfg.TracerConfig,
		)
		if err != nil {
			logger.Fatal("初始化 TracerProvider 失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			logger.Info("正在关闭 TracerProvider...")
			if err := tracerShutdown(ctx); err != nil {
				logger.Error("关闭 TracerProvider 失败", zap.Error(err))
			} else {
				logger.Info("TracerProvider 已成功关闭")
			}
		}()
		logger.Info("分布式追踪已初始化")
	} else {
		logger.Info("分布式追踪已禁用")
	}

	// 4. 初始化基础依赖 (数据库, Redis, JWT, 外部客户端等)
	appDeps, err := initialization.SetupDependencies(&cfg, logger)
	if err != nil {
		logger.Fatal("初始化基础依赖失败", zap.Error(err))
	}
	logger.Info("基础依赖初始化成功")

	// 5. 初始化服务层实例
	appServices := initialization.SetupServices(appDeps)
	logger.Info("服务层初始化成功")

	// 6. 设置路由和中间件
	engine := router.SetupRouter(logger, &cfg, appServices, appDeps)
	logger.Info("Gin 路由器设置完成")

	// 7. 配置并启动 HTTP 服务器
	serverAddress := fmt.Sprintf(":%s", cfg.ServerConfig.Port)
	srv := &http.Server{
		Addr:    serverAddress,
		Handler: otelhttp.NewHandler(engine, "HTTPServer"),
	}

	// 8. 启动服务器
	go func() {
		logger.Info("HTTP 服务器开始监听", zap.String("address", serverAddress))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器启动失败", zap.Error(err))
		}
	}()

	// 9. 等待中断信号以实现优雅关停
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	recSignal := <-quit
	logger.Info("接收到关停信号", zap.String("signal", recSignal.String()))

	// 10. 执行优雅关停
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	logger.Info("开始优雅关停 HTTP 服务器...")
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP 服务器优雅关停失败", zap.Error(err))
	} else {
		logger.Info("HTTP 服务器已成功关闭")
	}

	logger.Info("服务已完全关闭")
}
