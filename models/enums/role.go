package enums

import "fmt"

// UserRole 用户角色。与数据库中的字符串值一一对应。
type UserRole string

const (
	RoleResident  UserRole = "resident"  // 普通住户
	RoleAdmin     UserRole = "admin"     // 社区管理员
	RoleVolunteer UserRole = "volunteer" // 志愿者（可处理报修工单）
	RoleMerchant  UserRole = "merchant"  // 商家
)

// RoleFromString 解析角色字符串，非法值返回错误。
func RoleFromString(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleResident, RoleAdmin, RoleVolunteer, RoleMerchant:
		return UserRole(s), nil
	default:
		return "", fmt.Errorf("无效的用户角色: %q", s)
	}
}
