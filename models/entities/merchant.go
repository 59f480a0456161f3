package entities

import (
	"time"

	"gorm.io/gorm"

	"github.com/pbeenigg/star-vast-village/models/enums"
)

// Merchant 商家黄页条目
type Merchant struct {
	ID uint `gorm:"primary_key;auto_increment"`

	// 商家名称
	Name string `gorm:"type:varchar(64);not null"`

	// 分类（restaurant/supermarket/repair/...）
	Category enums.MerchantCategory `gorm:"type:varchar(16);not null;index"`

	// 简介
	Description string `gorm:"type:text"`

	// 商标与门店图片
	Logo   string      `gorm:"type:varchar(255)"`
	Images StringSlice `gorm:"type:text"`

	// 联系人与电话
	ContactPerson string `gorm:"type:varchar(32)"`
	Phone         string `gorm:"type:varchar(20)"`

	// 地址与位置描述
	Address  string `gorm:"type:varchar(128)"`
	Location string `gorm:"type:varchar(128)"`

	// 营业时间描述，例如 "09:00-21:00"
	BusinessHours string `gorm:"type:varchar(64)"`

	// 标签
	Tags StringSlice `gorm:"type:text"`

	// 评分与评价数
	Rating      float64 `gorm:"not null;default:0"`
	ReviewCount int64   `gorm:"not null;default:0"`

	// 是否经过社区认证、是否展示
	IsVerified bool `gorm:"not null;default:false;index"`
	IsActive   bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"type:timestamp;column:deleted_at"`
}
