package enums

import "fmt"

// Platform 客户端平台。决定登录时调用哪个身份提供方的换取接口，
// 不影响 openid 的匹配逻辑本身。
type Platform string

const (
	PlatformWeapp Platform = "weapp" // 微信小程序
	PlatformXhs   Platform = "xhs"   // 小红书小程序（登录换取暂未实现）
	PlatformWeb   Platform = "web"   // Web 端
)

// PlatformFromString 解析平台字符串，非法值返回错误。
func PlatformFromString(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformWeapp, PlatformXhs, PlatformWeb:
		return Platform(s), nil
	default:
		return "", fmt.Errorf("无效的平台类型: %q", s)
	}
}
