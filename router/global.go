package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	otelgin "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pbeenigg/star-vast-village/config"
	"github.com/pbeenigg/star-vast-village/constants"
	"github.com/pbeenigg/star-vast-village/controller"
	"github.com/pbeenigg/star-vast-village/core"
	_ "github.com/pbeenigg/star-vast-village/docs" // 引入 docs 包以注册 Swagger 信息
	"github.com/pbeenigg/star-vast-village/initialization"
	"github.com/pbeenigg/star-vast-village/middleware"
	"github.com/pbeenigg/star-vast-village/models/enums"
)

// SetupRouter 初始化并配置 Gin 引擎，注册所有中间件和路由。
// 设计目的:
//   - 作为应用路由配置的统一入口点。
//   - 应用全局中间件，处理通用逻辑如追踪、日志、错误恢复、超时等。
//   - 按访问级别划分三层路由组:
//     公开组（登录、公告/商家只读）、认证组（个人中心、帖子、报修）、
//     管理组（认证审核、公告/商家维护、派单）。
//
// 参数:
//   - logger: Zap 日志记录器实例，用于中间件和控制器。
//   - cfg: 应用的全局配置 (VillageConfig)。
//   - appServices: 包含所有已初始化服务实例的结构体。
//   - appDeps: 包含基础依赖（JWT 工具、仓库实例等），认证中间件需要。
//
// 返回:
//   - *gin.Engine: 配置完成的 Gin 引擎实例，可以直接运行。
func SetupRouter(
	logger *core.ZapLogger,
	cfg *config.VillageConfig,
	appServices *initialization.AppServices,
	appDeps *initialization.AppDependencies,
) *gin.Engine {
	logger.Info("开始设置 Gin 路由...")

	// 1. 创建 Gin 引擎实例
	//    不使用 gin.Default()，日志和恢复由自己的中间件统一处理。
	router := gin.New()

	// 2. 全局中间件
	//    - OTel Middleware 最先注册，负责追踪上下文和 Span。
	//    - Panic Recovery 捕获后续中间件和 handler 的 panic。
	//    - Request Logger 记录访问日志。
	//    - Request Timeout 做单请求超时控制。
	router.Use(otelgin.Middleware(constants.ServiceName))
	router.Use(middleware.ErrorHandlingMiddleware(logger))
	if baseLogger := logger.Logger(); baseLogger != nil {
		router.Use(middleware.RequestLoggerMiddleware(baseLogger))
	} else {
		logger.Warn("无法获取底层的 *zap.Logger，跳过 RequestLoggerMiddleware 注册")
	}
	requestTimeout := time.Duration(cfg.ServerConfig.RequestTimeout) * time.Second
	router.Use(middleware.RequestTimeoutMiddleware(logger, requestTimeout))

	// 3. 创建 API 版本分组
	v1 := router.Group("api/v1/village")
	logger.Info("API 路由将注册到 api/v1/village 分组下")

	// 4. 初始化所有控制器
	authCtrl := controller.NewAuthController(appServices.Auth, appServices.Token, logger)
	userCtrl := controller.NewUserController(appServices.User, logger)
	certificationCtrl := controller.NewCertificationAdminController(appServices.CertificationAdmin, logger)
	announcementCtrl := controller.NewAnnouncementController(appServices.Announcement, logger)
	merchantCtrl := controller.NewMerchantController(appServices.Merchant, logger)
	postCtrl := controller.NewPostController(appServices.Post, logger)
	repairCtrl := controller.NewRepairController(appServices.Repair, logger)

	// 5. 公开路由: 登录/令牌管理、公告与商家黄页的只读访问
	authCtrl.RegisterRoutes(v1)
	announcementCtrl.RegisterPublicRoutes(v1)
	merchantCtrl.RegisterPublicRoutes(v1)

	// 6. 认证路由: 挂载访问令牌认证中间件
	authRequired := middleware.AuthMiddleware(
		appDeps.JWTUtil,
		appDeps.TokenBlackRepo,
		appDeps.UserRepo,
		logger,
	)
	authed := v1.Group("", authRequired)
	userCtrl.RegisterRoutes(authed)
	postCtrl.RegisterRoutes(authed)
	// 提交报修额外要求已通过住户认证，查询与推进只要求登录
	repairCtrl.RegisterRoutes(authed, middleware.RequireVerifiedResident())

	// 7. 管理路由: 认证之上再叠加管理员角色校验
	admin := v1.Group("/admin", authRequired, middleware.RequireRoles(enums.RoleAdmin))
	certificationCtrl.RegisterRoutes(admin)
	announcementCtrl.RegisterAdminRoutes(admin)
	merchantCtrl.RegisterAdminRoutes(admin)
	repairCtrl.RegisterAdminRoutes(admin)

	logger.Info("所有业务路由已成功注册")

	// 8. 配置 Swagger UI 路由，访问路径 /swagger/index.html
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	logger.Info("Swagger UI 路由已注册，访问路径: /swagger/index.html")

	return router
}
