package config

// PostgresConfig 定义 Postgres 连接的相关配置
type PostgresConfig struct {
	DSN         string `mapstructure:"dsn" yaml:"dsn"`                     // Postgres DSN，例如 "host=localhost user=village password=xxx dbname=village port=5432 sslmode=disable TimeZone=Asia/Shanghai"
	MaxOpenConn int    `mapstructure:"max_open_conn" yaml:"max_open_conn"` // 最大打开连接数
	MaxIdleConn int    `mapstructure:"max_idle_conn" yaml:"max_idle_conn"` // 最大空闲连接数
}
