package dto

// UpdateProfileDTO 更新个人资料。字段均可选，仅更新提供了的字段。
type UpdateProfileDTO struct {
	Nickname *string `json:"nickname" binding:"omitempty,max=64"`
	Avatar   *string `json:"avatar" binding:"omitempty,url"`
	Phone    *string `json:"phone" binding:"omitempty,ChinesePhone"`
}

// CertificationDTO 住户认证提交。
// 身份证号在进入加密与持久化之前先做格式校验。
type CertificationDTO struct {
	RealName string `json:"realName" binding:"required,max=32"`
	IDCard   string `json:"idCard" binding:"required,IDCard"`
	Building string `json:"building" binding:"required,max=32"`
	Unit     string `json:"unit" binding:"required,max=32"`
	Room     string `json:"room" binding:"required,max=32"`
	Phone    string `json:"phone" binding:"omitempty,ChinesePhone"`
}

// WechatPhoneDTO 微信手机号授权码
type WechatPhoneDTO struct {
	Code string `json:"code" binding:"required"`
}

// ReviewCertificationDTO 管理员审核住户认证
type ReviewCertificationDTO struct {
	// Action 审核动作: approve 或 reject
	Action string `json:"action" binding:"required,oneof=approve reject"`
	// Reason 驳回原因，仅 reject 时有意义
	Reason string `json:"reason" binding:"omitempty,max=255"`
}
