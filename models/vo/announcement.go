package vo

import (
	"time"

	"github.com/pbeenigg/star-vast-village/models/enums"
)

// AnnouncementVO 公告视图
type AnnouncementVO struct {
	ID          uint                       `json:"id"`
	Title       string                     `json:"title"`
	Content     string                     `json:"content"`
	Category    enums.AnnouncementCategory `json:"category"`
	CoverImage  string                     `json:"coverImage"`
	Images      []string                   `json:"images"`
	PublisherID string                     `json:"publisherId"`
	AuthorName  string                     `json:"authorName"`
	Status      enums.AnnouncementStatus   `json:"status,omitempty"`
	PublishedAt *time.Time                 `json:"publishedAt"`
	ViewCount   int64                      `json:"viewCount"`
	IsPinned    bool                       `json:"isPinned"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
}
