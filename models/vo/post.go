package vo

import (
	"time"

	"github.com/pbeenigg/star-vast-village/models/enums"
)

// PostVO 帖子视图
type PostVO struct {
	ID           uint             `json:"id"`
	Type         enums.PostType   `json:"type"`
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	Images       []string         `json:"images"`
	AuthorID     string           `json:"authorId"`
	AuthorName   string           `json:"authorName"`
	AuthorAvatar string           `json:"authorAvatar"`
	ViewCount    int64            `json:"viewCount"`
	LikeCount    int64            `json:"likeCount"`
	CommentCount int64            `json:"commentCount"`
	Status       enums.PostStatus `json:"status"`
	IsResolved   bool             `json:"isResolved"`
	IsLiked      bool             `json:"isLiked"` // 当前用户是否已点赞
	Tags         []string         `json:"tags"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// CommentVO 评论视图
type CommentVO struct {
	ID           uint      `json:"id"`
	PostID       uint      `json:"postId"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	Content      string    `json:"content"`
	ReplyToID    *uint     `json:"replyToId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LikeVO 点赞操作结果
type LikeVO struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}
