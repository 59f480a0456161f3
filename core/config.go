package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig 从指定路径的 YAML 文件加载配置并反序列化到 out 指向的结构体。
// - 环境变量覆盖不在这里处理：关键密钥类配置由 main 显式逐项覆盖，
//   避免 viper 自动绑定带来的隐式行为。
func LoadConfig(path string, out interface{}) error {
	v := viper.New()

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		ext = "yaml"
	}
	v.SetConfigFile(path)
	v.SetConfigType(ext)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件失败 (%s): %w", path, err)
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("解析配置文件失败 (%s): %w", path, err)
	}
	return nil
}
