package config

// ZapConfig 日志组件配置
type ZapConfig struct {
	Level    string `mapstructure:"level" yaml:"level"`       // 日志级别: debug/info/warn/error
	Encoding string `mapstructure:"encoding" yaml:"encoding"` // 输出格式: json 或 console
}

// GormLogConfig GORM 日志配置
type GormLogConfig struct {
	Level                     string `mapstructure:"level" yaml:"level"`                                               // GORM 日志级别: silent/error/warn/info
	SlowThresholdMs           int    `mapstructure:"slow_threshold_ms" yaml:"slow_threshold_ms"`                       // 慢查询阈值（毫秒）
	IgnoreRecordNotFoundError bool   `mapstructure:"ignore_record_not_found_error" yaml:"ignore_record_not_found_error"` // 是否忽略记录未找到错误
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port           string `mapstructure:"port" yaml:"port"`                       // 监听端口
	RequestTimeout int    `mapstructure:"request_timeout" yaml:"request_timeout"` // 单请求超时时间（秒）
}

// TracerConfig 分布式追踪配置
type TracerConfig struct {
	Enabled      bool   `mapstructure:"enabled" yaml:"enabled"`             // 是否启用追踪
	ExporterAddr string `mapstructure:"exporter_addr" yaml:"exporter_addr"` // OTLP gRPC 接收端地址，例如 localhost:4317
	SamplerRatio float64 `mapstructure:"sampler_ratio" yaml:"sampler_ratio"` // 采样比例 (0~1]
}
