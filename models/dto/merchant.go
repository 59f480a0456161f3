package dto

// MerchantListQuery 商家列表查询参数
type MerchantListQuery struct {
	PageQuery
	Category   string `form:"category" binding:"omitempty"`
	Keyword    string `form:"keyword" binding:"omitempty,max=64"`
	IsVerified *bool  `form:"isVerified"`
}

// CreateMerchantDTO 管理员录入商家
type CreateMerchantDTO struct {
	Name          string   `json:"name" binding:"required,max=64"`
	Category      string   `json:"category" binding:"required"`
	Description   string   `json:"description" binding:"omitempty"`
	Logo          string   `json:"logo" binding:"omitempty,url"`
	Images        []string `json:"images" binding:"omitempty,dive,url"`
	ContactPerson string   `json:"contactPerson" binding:"omitempty,max=32"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Address       string   `json:"address" binding:"omitempty,max=128"`
	Location      string   `json:"location" binding:"omitempty,max=128"`
	BusinessHours string   `json:"businessHours" binding:"omitempty,max=64"`
	Tags          []string `json:"tags" binding:"omitempty,dive,max=16"`
	IsVerified    bool     `json:"isVerified"`
}

// UpdateMerchantDTO 管理员更新商家信息，字段可选。
type UpdateMerchantDTO struct {
	Name          *string   `json:"name" binding:"omitempty,max=64"`
	Category      *string   `json:"category"`
	Description   *string   `json:"description"`
	Logo          *string   `json:"logo" binding:"omitempty,url"`
	Images        *[]string `json:"images" binding:"omitempty,dive,url"`
	ContactPerson *string   `json:"contactPerson" binding:"omitempty,max=32"`
	Phone         *string   `json:"phone" binding:"omitempty,max=20"`
	Address       *string   `json:"address" binding:"omitempty,max=128"`
	Location      *string   `json:"location" binding:"omitempty,max=128"`
	BusinessHours *string   `json:"businessHours" binding:"omitempty,max=64"`
	Tags          *[]string `json:"tags" binding:"omitempty,dive,max=16"`
	IsVerified    *bool     `json:"isVerified"`
	IsActive      *bool     `json:"isActive"`
}
