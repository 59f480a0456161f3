package enums

// AuthStatus 住户认证审核状态。
// 状态机: pending -> verified / rejected（管理员审核），
// 用户重新提交认证时无条件回到 pending，不允许跳过。
type AuthStatus string

const (
	AuthStatusPending  AuthStatus = "pending"  // 待审核
	AuthStatusVerified AuthStatus = "verified" // 审核通过
	AuthStatusRejected AuthStatus = "rejected" // 审核驳回
)
