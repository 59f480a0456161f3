package config

// VillageConfig 是整个社区服务的聚合配置，从 YAML 文件加载，
// 关键字段允许在 main 中被环境变量覆盖（生产部署时注入密钥）。
type VillageConfig struct {
	ZapConfig        ZapConfig        `mapstructure:"zapConfig" json:"zapConfig" yaml:"zapConfig"`
	GormLogConfig    GormLogConfig    `mapstructure:"gormLogConfig" json:"gormLogConfig" yaml:"gormLogConfig"`
	ServerConfig     ServerConfig     `mapstructure:"serverConfig" json:"serverConfig" yaml:"serverConfig"`
	TracerConfig     TracerConfig     `mapstructure:"tracerConfig" json:"tracerConfig" yaml:"tracerConfig"`
	JWTConfig        JWTConfig        `mapstructure:"jwtConfig" json:"jwtConfig" yaml:"jwtConfig"`
	PostgresConfig   PostgresConfig   `mapstructure:"postgresConfig" json:"postgresConfig" yaml:"postgresConfig"`
	RedisConfig      RedisConfig      `mapstructure:"redisConfig" json:"redisConfig" yaml:"redisConfig"`
	WechatConfig     WechatConfig     `mapstructure:"wechatConfig" json:"wechatConfig" yaml:"wechatConfig"`
	EncryptionConfig EncryptionConfig `mapstructure:"encryptionConfig" json:"encryptionConfig" yaml:"encryptionConfig"`
	COSConfig        COSConfig        `mapstructure:"cosConfig" json:"cosConfig" yaml:"cosConfig"`
}
