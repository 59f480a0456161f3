package vo

import (
	"time"

	"github.com/pbeenigg/star-vast-village/models/enums"
)

// ProfileVO 用户个人资料视图
type ProfileVO struct {
	ID          string           `json:"id"`
	Openid      string           `json:"openid"`
	Platform    enums.Platform   `json:"platform"`
	Nickname    string           `json:"nickname"`
	Avatar      string           `json:"avatar"`
	Phone       string           `json:"phone"` // 脱敏后的手机号
	Role        enums.UserRole   `json:"role"`
	AuthStatus  enums.AuthStatus `json:"authStatus"`
	Building    string           `json:"building"`
	Unit        string           `json:"unit"`
	Room        string           `json:"room"`
	LastLoginAt *time.Time       `json:"lastLoginAt"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CertificationStatusVO 住户认证状态视图
type CertificationStatusVO struct {
	Status      enums.AuthStatus `json:"status"`
	Building    string           `json:"building"`
	Unit        string           `json:"unit"`
	Room        string           `json:"room"`
	SubmittedAt time.Time        `json:"submittedAt"`
}

// CertificationResultVO 认证提交后的回执
type CertificationResultVO struct {
	ID         string           `json:"id"`
	AuthStatus enums.AuthStatus `json:"authStatus"`
	Building   string           `json:"building"`
	Unit       string           `json:"unit"`
	Room       string           `json:"room"`
}

// AvatarVO 头像上传结果
type AvatarVO struct {
	URL string `json:"url"`
}

// PhoneVO 手机号绑定结果（脱敏展示）
type PhoneVO struct {
	Phone string `json:"phone"`
}

// CertificationItemVO 管理端认证审核列表项。实名与身份证号只以脱敏形式出现。
type CertificationItemVO struct {
	UserID       string           `json:"userId"`
	Nickname     string           `json:"nickname"`
	RealNameMask string           `json:"realName"`
	IDCardMask   string           `json:"idCard"`
	Building     string           `json:"building"`
	Unit         string           `json:"unit"`
	Room         string           `json:"room"`
	Phone        string           `json:"phone"`
	Status       enums.AuthStatus `json:"status"`
	SubmittedAt  time.Time        `json:"submittedAt"`
}

// CertificationDetailVO 管理端认证详情。
// 默认返回脱敏字段；带 reveal=true 时 RealName/IDCard 为明文，调用会被审计日志记录。
type CertificationDetailVO struct {
	UserID      string           `json:"userId"`
	RealName    string           `json:"realName"`
	IDCard      string           `json:"idCard"`
	Building    string           `json:"building"`
	Unit        string           `json:"unit"`
	Room        string           `json:"room"`
	Phone       string           `json:"phone"`
	Status      enums.AuthStatus `json:"status"`
	SubmittedAt time.Time        `json:"submittedAt"`
}
