package vo

import (
	"time"

	"github.com/pbeenigg/star-vast-village/models/enums"
)

// MerchantVO 商家视图
type MerchantVO struct {
	ID            uint                   `json:"id"`
	Name          string                 `json:"name"`
	Category      enums.MerchantCategory `json:"category"`
	Description   string                 `json:"description"`
	Logo          string                 `json:"logo"`
	Images        []string               `json:"images"`
	ContactPerson string                 `json:"contactPerson"`
	Phone         string                 `json:"phone"`
	Address       string                 `json:"address"`
	Location      string                 `json:"location"`
	BusinessHours string                 `json:"businessHours"`
	Tags          []string               `json:"tags"`
	Rating        float64                `json:"rating"`
	ReviewCount   int64                  `json:"reviewCount"`
	IsVerified    bool                   `json:"isVerified"`
	IsActive      bool                   `json:"isActive"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}
