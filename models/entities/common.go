package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice 以 JSON 数组形式持久化的字符串切片，用于图片 URL 列表、标签等字段。
type StringSlice []string

// Value 实现 driver.Valuer。
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("序列化字符串切片失败: %w", err)
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner。
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("无法将 %T 扫描为 StringSlice", value)
	}
	if len(data) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(data, s)
}
