package config

// JWTConfig 定义JWT认证功能的相关配置，包含密钥、签发者等信息，用于生成和验证JWT。
// 访问令牌和刷新令牌共用同一密钥，通过令牌内嵌的 type 声明区分用途。
type JWTConfig struct {
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"` // 用于签名令牌的密钥
	Issuer    string `mapstructure:"issuer" yaml:"issuer"`         // JWT的签发者
}
