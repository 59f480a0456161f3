package entities

import (
	"time"

	"gorm.io/gorm"

	"github.com/pbeenigg/star-vast-village/models/enums"
)

// User 用户核心信息。
// 身份由 (platform, openid) 唯一确定，首次登录时自动建档。
// 实名与身份证号以密文落库，任何查询路径都不得返回明文。
type User struct {
	// 用户ID，使用 UUID 作为主键
	ID string `gorm:"type:char(36);primary_key"`

	// 身份提供方下发的用户唯一标识，与平台组成联合唯一索引。
	// 唯一约束由数据库承担，登录走 ON CONFLICT 原子建档，避免并发首登建出重复记录。
	Openid string `gorm:"type:varchar(128);not null;uniqueIndex:idx_platform_openid"`

	// 客户端平台 (weapp/xhs/web)
	Platform enums.Platform `gorm:"type:varchar(16);not null;uniqueIndex:idx_platform_openid"`

	// 用户角色，默认普通住户，仅管理端可变更
	Role enums.UserRole `gorm:"type:varchar(16);not null;default:'resident'"`

	// 住户认证状态，建档时为 pending
	AuthStatus enums.AuthStatus `gorm:"type:varchar(16);not null;default:'pending'"`

	// 昵称
	Nickname string `gorm:"type:varchar(64)"`

	// 头像 URL
	Avatar string `gorm:"type:varchar(255)"`

	// 联系电话
	Phone string `gorm:"type:varchar(20)"`

	// 实名密文（信封格式 nonceHex:cipherHex）
	RealNameEncrypted string `gorm:"type:text"`

	// 身份证号密文
	IDCardEncrypted string `gorm:"type:text"`

	// 居住信息：楼栋 / 单元 / 房号
	Building string `gorm:"type:varchar(32)"`
	Unit     string `gorm:"type:varchar(32)"`
	Room     string `gorm:"type:varchar(32)"`

	// 最近一次登录时间
	LastLoginAt *time.Time

	// 创建时间，默认当前时间戳
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`

	// 更新时间，默认当前时间戳，自动更新
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;autoUpdateTime"`

	// 软删除时间戳
	DeletedAt gorm.DeletedAt `gorm:"type:timestamp;column:deleted_at"`
}
