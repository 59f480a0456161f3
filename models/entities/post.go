package entities

import (
	"time"

	"gorm.io/gorm"

	"github.com/pbeenigg/star-vast-village/models/enums"
)

// Post 邻里互助帖子
type Post struct {
	ID uint `gorm:"primary_key;auto_increment"`

	// 类型（help/lost_found/share/discussion/second_hand）
	Type enums.PostType `gorm:"type:varchar(16);not null;index"`

	// 标题与正文
	Title   string `gorm:"type:varchar(128);not null"`
	Content string `gorm:"type:text;not null"`

	// 图片
	Images StringSlice `gorm:"type:text"`

	// 作者用户ID
	AuthorID string `gorm:"type:char(36);not null;index"`

	// 计数字段，全部通过原子自增/自减更新，避免并发丢失更新
	ViewCount    int64 `gorm:"not null;default:0"`
	LikeCount    int64 `gorm:"not null;default:0"`
	CommentCount int64 `gorm:"not null;default:0"`

	// 审核状态
	Status enums.PostStatus `gorm:"type:varchar(16);not null;default:'approved';index"`

	// 求助类帖子是否已解决
	IsResolved bool `gorm:"not null;default:false"`

	// 标签
	Tags StringSlice `gorm:"type:text"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"type:timestamp;column:deleted_at"`
}
