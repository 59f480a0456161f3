package dto

// LoginData 登录请求体。
// - Code: 客户端原生登录调用（如 wx.login()）获取的一次性授权码。
// - Platform: 平台选择器，缺省为微信小程序。
type LoginData struct {
	Code     string `json:"code" binding:"required"`
	Platform string `json:"platform"`
}

// RefreshTokenRequest 刷新令牌请求体
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
