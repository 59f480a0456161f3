package entities

import (
	"time"

	"gorm.io/gorm"

	"github.com/pbeenigg/star-vast-village/models/enums"
)

// Repair 在线报修工单
type Repair struct {
	ID uint `gorm:"primary_key;auto_increment"`

	// 工单号，格式 WX<yyyyMMdd><4位随机数>，唯一
	OrderNo string `gorm:"type:varchar(20);not null;uniqueIndex"`

	// 报修分类（water/electric/door/elevator/public_facility/other）
	Category enums.RepairCategory `gorm:"type:varchar(24);not null;index"`

	// 标题与问题描述
	Title       string `gorm:"type:varchar(128);not null"`
	Description string `gorm:"type:text"`

	// 现场图片
	Images StringSlice `gorm:"type:text"`

	// 位置描述与住址信息
	Location string `gorm:"type:varchar(128)"`
	Building string `gorm:"type:varchar(32)"`
	Unit     string `gorm:"type:varchar(32)"`
	Room     string `gorm:"type:varchar(32)"`

	// 联系人与联系电话
	ContactPerson string `gorm:"type:varchar(32)"`
	ContactPhone  string `gorm:"type:varchar(20)"`

	// 提交人与处理人（管理员/志愿者）
	SubmitterID string  `gorm:"type:char(36);not null;index"`
	HandlerID   *string `gorm:"type:char(36);index"`

	// 工单状态与优先级
	Status   enums.RepairStatus `gorm:"type:varchar(16);not null;default:'pending';index"`
	Priority int                `gorm:"not null;default:0"`

	// 预约上门时间与完成时间
	ScheduledAt *time.Time
	CompletedAt *time.Time

	// 完成后住户评价（1-5 星）与反馈
	Rating   *int   `gorm:""`
	Feedback string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"type:timestamp;column:deleted_at"`
}
