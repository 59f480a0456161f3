package docs

// 这个文件定义了专门用于 Swagger 文档注解的类型。
// 由于 swaggo/swag 工具目前不支持直接解析泛型类型（如 response.APIResponse[T]），
// 我们需要为每个在控制器注解中使用的具体泛型实例化类型定义一个非泛型的包装器。

import (
	"github.com/pbeenigg/star-vast-village/models/vo"
	"github.com/pbeenigg/star-vast-village/response"
)

// --- 成功响应包装类型 ---

// SwaggerAPILoginResponse 包装了 response.APIResponse[vo.LoginResponse]
// 用于 AuthController.Login
type SwaggerAPILoginResponse struct {
	response.APIResponse[vo.LoginResponse]
}

// SwaggerAPITokenPairResponse 包装了 response.APIResponse[vo.TokenPair]
// 用于 AuthController.RefreshToken
type SwaggerAPITokenPairResponse struct {
	response.APIResponse[vo.TokenPair]
}

// SwaggerAPIProfileResponse 包装了 response.APIResponse[vo.ProfileVO]
// 用于 UserController.GetProfile / UpdateProfile
type SwaggerAPIProfileResponse struct {
	response.APIResponse[vo.ProfileVO]
}

// SwaggerAPICertificationResponse 包装了 response.APIResponse[vo.CertificationResultVO]
// 用于 UserController.SubmitCertification 和 CertificationAdminController.Review
type SwaggerAPICertificationResponse struct {
	response.APIResponse[vo.CertificationResultVO]
}

// SwaggerAPICertificationStatusResponse 包装了 response.APIResponse[vo.CertificationStatusVO]
// 用于 UserController.GetCertificationStatus
type SwaggerAPICertificationStatusResponse struct {
	response.APIResponse[vo.CertificationStatusVO]
}

// SwaggerAPIPhoneResponse 包装了 response.APIResponse[vo.PhoneVO]
// 用于 UserController.BindWechatPhone
type SwaggerAPIPhoneResponse struct {
	response.APIResponse[vo.PhoneVO]
}

// SwaggerAPIAvatarResponse 包装了 response.APIResponse[vo.AvatarVO]
// 用于 UserController.UploadAvatar
type SwaggerAPIAvatarResponse struct {
	response.APIResponse[vo.AvatarVO]
}

// SwaggerAPICertificationListResponse 包装了认证审核列表的分页响应
// 用于 CertificationAdminController.ListPending
type SwaggerAPICertificationListResponse struct {
	response.APIResponse[vo.PageVO[vo.CertificationItemVO]]
}

// SwaggerAPICertificationDetailResponse 包装了 response.APIResponse[vo.CertificationDetailVO]
// 用于 CertificationAdminController.GetDetail
type SwaggerAPICertificationDetailResponse struct {
	response.APIResponse[vo.CertificationDetailVO]
}

// SwaggerAPIAnnouncementResponse 包装了 response.APIResponse[vo.AnnouncementVO]
// 用于公告详情和公告维护接口
type SwaggerAPIAnnouncementResponse struct {
	response.APIResponse[vo.AnnouncementVO]
}

// SwaggerAPIAnnouncementListResponse 包装了公告列表的分页响应
type SwaggerAPIAnnouncementListResponse struct {
	response.APIResponse[vo.PageVO[vo.AnnouncementVO]]
}

// SwaggerAPIMerchantResponse 包装了 response.APIResponse[vo.MerchantVO]
// 用于商家详情和商家维护接口
type SwaggerAPIMerchantResponse struct {
	response.APIResponse[vo.MerchantVO]
}

// SwaggerAPIMerchantListResponse 包装了商家列表的分页响应
type SwaggerAPIMerchantListResponse struct {
	response.APIResponse[vo.PageVO[vo.MerchantVO]]
}

// SwaggerAPIPostResponse 包装了 response.APIResponse[vo.PostVO]
// 用于帖子详情、发帖和编辑接口
type SwaggerAPIPostResponse struct {
	response.APIResponse[vo.PostVO]
}

// SwaggerAPIPostListResponse 包装了帖子列表的分页响应
type SwaggerAPIPostListResponse struct {
	response.APIResponse[vo.PageVO[vo.PostVO]]
}

// SwaggerAPILikeResponse 包装了 response.APIResponse[vo.LikeVO]
// 用于 PostController 的点赞/取消点赞接口
type SwaggerAPILikeResponse struct {
	response.APIResponse[vo.LikeVO]
}

// SwaggerAPICommentResponse 包装了 response.APIResponse[vo.CommentVO]
// 用于 PostController.CreateComment
type SwaggerAPICommentResponse struct {
	response.APIResponse[vo.CommentVO]
}

// SwaggerAPICommentListResponse 包装了评论列表的分页响应
type SwaggerAPICommentListResponse struct {
	response.APIResponse[vo.PageVO[vo.CommentVO]]
}

// SwaggerAPIRepairResponse 包装了 response.APIResponse[vo.RepairVO]
// 用于报修工单的提交、详情和状态流转接口
type SwaggerAPIRepairResponse struct {
	response.APIResponse[vo.RepairVO]
}

// SwaggerAPIRepairListResponse 包装了工单列表的分页响应
type SwaggerAPIRepairListResponse struct {
	response.APIResponse[vo.PageVO[vo.RepairVO]]
}

// --- 通用响应包装类型 ---

// SwaggerAPIEmptyResponse 包装了 response.APIResponse[vo.Empty]
// 用于成功时不返回业务数据的接口（如退出登录、删除操作）
type SwaggerAPIEmptyResponse struct {
	response.APIResponse[vo.Empty]
}

// SwaggerAPIErrorResponse 包装了 response.APIResponse[vo.Empty]
// 用于所有失败响应的文档展示
type SwaggerAPIErrorResponse struct {
	response.APIResponse[vo.Empty]
}
