package initialization

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pbeenigg/star-vast-village/config"
	"github.com/pbeenigg/star-vast-village/core"
	"github.com/pbeenigg/star-vast-village/dependencies"
	"github.com/pbeenigg/star-vast-village/repository/postgres"
	redisRepo "github.com/pbeenigg/star-vast-village/repository/redis"
	"github.com/pbeenigg/star-vast-village/utils"
)

// AppDependencies 封装了应用运行所需的所有基础依赖项。
// 设计目的:
//   - 将各个独立的依赖（数据库连接、Redis客户端、配置、日志等）聚合到一个结构体中。
//   - 方便在应用的不同层（如服务层、路由层）之间传递这些共享的依赖。
//   - 仓库实例也在此初始化，认证中间件和服务层共用同一批实例。
type AppDependencies struct {
	Config       *config.VillageConfig           // Config: 应用的全局配置。
	Logger       *core.ZapLogger                 // Logger: Zap 日志记录器实例。
	DB           *gorm.DB                        // DB: GORM 数据库连接实例。
	RedisClient  *redis.Client                   // RedisClient: Redis v9 客户端实例。
	JWTUtil      dependencies.JWTTokenInterface  // JWTUtil: JWT 工具实例。
	WechatClient dependencies.WechatClient       // WechatClient: 微信 API 客户端实例。
	COSClient    dependencies.COSClientInterface // COSClient: 对象存储客户端实例。
	Encryptor    *utils.Encryptor                // Encryptor: 敏感字段加解密器。

	TokenBlackRepo   redisRepo.TokenBlackRepo        // 令牌黑名单仓库。
	UserRepo         postgres.UserRepository         // 用户仓库。
	AnnouncementRepo postgres.AnnouncementRepository // 公告仓库。
	MerchantRepo     postgres.MerchantRepository     // 商家仓库。
	PostRepo         postgres.PostRepository         // 帖子仓库。
	RepairRepo       postgres.RepairRepository       // 报修工单仓库。
}

// SetupDependencies 初始化应用所需的所有基础依赖项。
// 设计目的:
//   - 按正确的顺序创建和配置各个依赖组件（数据库、Redis、外部客户端等）。
//   - 处理初始化过程中可能出现的错误。
//   - 返回一个包含所有已初始化依赖的 AppDependencies 结构体。
//
// 参数:
//   - cfg: *config.VillageConfig，应用的全局配置。
//   - logger: *core.ZapLogger，已初始化的日志记录器实例。
//
// 返回:
//   - *AppDependencies: 包含所有成功初始化的依赖项的结构体指针。
//   - error: 如果任何关键依赖项初始化失败，则返回相应的错误。
func SetupDependencies(cfg *config.VillageConfig, logger *core.ZapLogger) (*AppDependencies, error) {
	var deps AppDependencies
	deps.Config = cfg
	deps.Logger = logger

	// 1. 注册自定义验证器
	//    手机号和身份证号的请求体校验依赖它，失败应阻止应用启动。
	if err := utils.RegisterCustomValidators(); err != nil {
		return nil, fmt.Errorf("注册自定义验证器失败: %w", err)
	}
	logger.Info("自定义验证器注册成功")

	// 2. 初始化数据库连接 (PostgreSQL)
	db, err := dependencies.InitPostgres(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("初始化数据库失败: %w", err)
	}
	deps.DB = db
	logger.Info("数据库连接初始化成功")

	// 3. 初始化 Redis 连接
	redisClient, err := dependencies.InitRedis(&cfg.RedisConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("初始化 Redis 失败: %w", err)
	}
	deps.RedisClient = redisClient
	logger.Info("Redis 连接初始化成功")

	// 4. 初始化 JWT 工具
	deps.JWTUtil = dependencies.NewJWTUtility(&cfg.JWTConfig)
	logger.Info("JWT 工具初始化成功")

	// 5. 初始化微信客户端工具
	deps.WechatClient = dependencies.NewWechatClient(&cfg.WechatConfig)
	logger.Info("微信客户端初始化成功")

	// 6. 初始化 COS 客户端
	cosClient, err := dependencies.InitCOS(&cfg.COSConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("初始化 COS 客户端失败: %w", err)
	}
	deps.COSClient = cosClient
	logger.Info("COS 客户端初始化成功")

	// 7. 初始化敏感字段加解密器
	//    密钥缺失会在这里报错，阻止带着不可用的加密配置启动。
	encryptor, err := utils.NewEncryptor(cfg.EncryptionConfig.Secret)
	if err != nil {
		return nil, fmt.Errorf("初始化加解密器失败: %w", err)
	}
	deps.Encryptor = encryptor
	logger.Info("敏感字段加解密器初始化成功")

	// 8. 初始化仓库实例
	//    认证中间件需要用户仓库和令牌黑名单仓库，所以仓库在依赖层统一创建。
	deps.TokenBlackRepo = redisRepo.NewTokenBlacklistRepo(redisClient)
	deps.UserRepo = postgres.NewUserRepository(db)
	deps.AnnouncementRepo = postgres.NewAnnouncementRepository(db)
	deps.MerchantRepo = postgres.NewMerchantRepository(db)
	deps.PostRepo = postgres.NewPostRepository(db)
	deps.RepairRepo = postgres.NewRepairRepository(db)
	logger.Info("仓库实例初始化成功")

	logger.Info("所有基础依赖项初始化完成")
	return &deps, nil
}
