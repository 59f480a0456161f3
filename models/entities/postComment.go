package entities

import (
	"time"

	"gorm.io/gorm"
)

// PostComment 帖子评论
type PostComment struct {
	ID uint `gorm:"primary_key;auto_increment"`

	// 所属帖子ID
	PostID uint `gorm:"not null;index"`

	// 评论人用户ID
	AuthorID string `gorm:"type:char(36);not null;index"`

	// 评论内容
	Content string `gorm:"type:text;not null"`

	// 回复目标评论ID（楼中楼），可为空
	ReplyToID *uint `gorm:"index"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"type:timestamp;column:deleted_at"`
}

// PostLike 帖子点赞记录，(post_id, user_id) 唯一，保证一人一赞。
type PostLike struct {
	ID     uint   `gorm:"primary_key;auto_increment"`
	PostID uint   `gorm:"not null;uniqueIndex:idx_post_user"`
	UserID string `gorm:"type:char(36);not null;uniqueIndex:idx_post_user"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
}
