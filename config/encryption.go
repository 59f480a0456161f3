package config

// EncryptionConfig 敏感字段（实名、身份证号）对称加密配置
type EncryptionConfig struct {
	// Secret 加密口令，启动时经 HKDF 派生为固定长度密钥，禁止为空
	Secret string `mapstructure:"secret" yaml:"secret"`
}
