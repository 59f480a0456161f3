package entities

import (
	"time"

	"gorm.io/gorm"

	"github.com/pbeenigg/star-vast-village/models/enums"
)

// Announcement 社区公告
type Announcement struct {
	ID uint `gorm:"primary_key;auto_increment"`

	// 标题与正文
	Title   string `gorm:"type:varchar(128);not null"`
	Content string `gorm:"type:text;not null"`

	// 分类（emergency/notice/activity/maintenance）
	Category enums.AnnouncementCategory `gorm:"type:varchar(16);not null;index"`

	// 封面图与正文图片
	CoverImage string      `gorm:"type:varchar(255)"`
	Images     StringSlice `gorm:"type:text"`

	// 发布人（管理员）的用户ID
	PublisherID string `gorm:"type:char(36);not null;index"`

	// 发布状态与发布时间
	Status      enums.AnnouncementStatus `gorm:"type:varchar(16);not null;default:'draft';index"`
	PublishedAt *time.Time

	// 浏览次数，通过原子自增更新
	ViewCount int64 `gorm:"not null;default:0"`

	// 是否置顶
	IsPinned bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"type:timestamp;column:deleted_at"`
}
