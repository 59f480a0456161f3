package initialization

import (
	"github.com/pbeenigg/star-vast-village/service/announcement"
	"github.com/pbeenigg/star-vast-village/service/auth"
	"github.com/pbeenigg/star-vast-village/service/merchant"
	"github.com/pbeenigg/star-vast-village/service/post"
	"github.com/pbeenigg/star-vast-village/service/repair"
	"github.com/pbeenigg/star-vast-village/service/token"
	"github.com/pbeenigg/star-vast-village/service/user"
)

// AppServices 封装了应用所需的所有服务层实例。
// 路由层用它实例化控制器，避免在路由里重复做依赖装配。
type AppServices struct {
	Auth               auth.AuthService
	Token              token.AuthTokenService
	User               user.UserService
	CertificationAdmin user.CertificationAdminService
	Announcement       announcement.AnnouncementService
	Merchant           merchant.MerchantService
	Post               post.PostService
	Repair             repair.RepairService
}

// SetupServices 基于已初始化的基础依赖装配所有服务层实例。
func SetupServices(deps *AppDependencies) *AppServices {
	authService := auth.NewAuthService(
		deps.WechatClient,
		deps.UserRepo,
		deps.JWTUtil,
		deps.Logger,
	)

	tokenService := token.NewAuthTokenService(
		deps.TokenBlackRepo,
		deps.UserRepo,
		deps.JWTUtil,
		deps.Logger,
	)

	userService := user.NewUserService(
		deps.UserRepo,
		deps.WechatClient,
		deps.COSClient,
		deps.Encryptor,
		deps.Logger,
	)

	certificationAdminService := user.NewCertificationAdminService(
		deps.UserRepo,
		deps.Encryptor,
		deps.Logger,
	)

	announcementService := announcement.NewAnnouncementService(
		deps.AnnouncementRepo,
		deps.Logger,
	)

	merchantService := merchant.NewMerchantService(
		deps.MerchantRepo,
		deps.Logger,
	)

	postService := post.NewPostService(
		deps.PostRepo,
		deps.UserRepo,
		deps.Logger,
	)

	repairService := repair.NewRepairService(
		deps.RepairRepo,
		deps.Logger,
	)

	return &AppServices{
		Auth:               authService,
		Token:              tokenService,
		User:               userService,
		CertificationAdmin: certificationAdminService,
		Announcement:       announcementService,
		Merchant:           merchantService,
		Post:               postService,
		Repair:             repairService,
	}
}
