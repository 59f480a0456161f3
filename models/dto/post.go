package dto

// PostListQuery 帖子列表查询参数
type PostListQuery struct {
	PageQuery
	Type     string `form:"type" binding:"omitempty"`
	Keyword  string `form:"keyword" binding:"omitempty,max=64"`
	AuthorID string `form:"authorId" binding:"omitempty,uuid"`
}

// CreatePostDTO 发布帖子
type CreatePostDTO struct {
	Type    string   `json:"type" binding:"required"`
	Title   string   `json:"title" binding:"required,max=128"`
	Content string   `json:"content" binding:"required"`
	Images  []string `json:"images" binding:"omitempty,max=9,dive,url"`
	Tags    []string `json:"tags" binding:"omitempty,dive,max=16"`
}

// UpdatePostDTO 作者修改帖子，字段可选。
type UpdatePostDTO struct {
	Title      *string   `json:"title" binding:"omitempty,max=128"`
	Content    *string   `json:"content"`
	Images     *[]string `json:"images" binding:"omitempty,max=9,dive,url"`
	Tags       *[]string `json:"tags" binding:"omitempty,dive,max=16"`
	IsResolved *bool     `json:"isResolved"`
}

// CreateCommentDTO 发表评论
type CreateCommentDTO struct {
	Content   string `json:"content" binding:"required,max=500"`
	ReplyToID *uint  `json:"replyToId"`
}
