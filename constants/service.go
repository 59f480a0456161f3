package constants

const (
	// ServiceName 服务名，用于追踪和日志标识
	ServiceName = "star-vast-village"

	// ServiceVersion 服务版本
	ServiceVersion = "1.0.0"
)
