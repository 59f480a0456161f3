package vo

import (
	"github.com/pbeenigg/star-vast-village/models/enums"
)

// Empty 空数据载荷
type Empty struct{}

// TokenPair 认证令牌对
type TokenPair struct {
	Token        string `json:"token"`                  // 访问令牌
	RefreshToken string `json:"refreshToken,omitempty"` // 刷新令牌
}

// UserInfo 登录后返回的公开用户信息，不包含任何敏感字段。
type UserInfo struct {
	ID         string           `json:"id"`
	Openid     string           `json:"openid"`
	Nickname   string           `json:"nickname"`
	Avatar     string           `json:"avatar"`
	Role       enums.UserRole   `json:"role"`
	AuthStatus enums.AuthStatus `json:"authStatus"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	UserInfo     UserInfo `json:"userInfo"`
}
