package dto

// AnnouncementListQuery 公告列表查询参数
type AnnouncementListQuery struct {
	PageQuery
	Category string `form:"category" binding:"omitempty"`
	Keyword  string `form:"keyword" binding:"omitempty,max=64"`
}

// CreateAnnouncementDTO 管理员创建公告
type CreateAnnouncementDTO struct {
	Title      string   `json:"title" binding:"required,max=128"`
	Content    string   `json:"content" binding:"required"`
	Category   string   `json:"category" binding:"required"`
	CoverImage string   `json:"coverImage" binding:"omitempty,url"`
	Images     []string `json:"images" binding:"omitempty,dive,url"`
	IsPinned   bool     `json:"isPinned"`
	Publish    bool     `json:"publish"` // true 时直接发布，否则存为草稿
}

// UpdateAnnouncementDTO 管理员更新公告，字段可选。
type UpdateAnnouncementDTO struct {
	Title      *string   `json:"title" binding:"omitempty,max=128"`
	Content    *string   `json:"content"`
	Category   *string   `json:"category"`
	CoverImage *string   `json:"coverImage" binding:"omitempty,url"`
	Images     *[]string `json:"images" binding:"omitempty,dive,url"`
	IsPinned   *bool     `json:"isPinned"`
	Status     *string   `json:"status" binding:"omitempty,oneof=draft published archived"`
}
