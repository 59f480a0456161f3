package vo

import (
	"time"

	"github.com/pbeenigg/star-vast-village/models/enums"
)

// RepairVO 报修工单视图
type RepairVO struct {
	ID            uint                 `json:"id"`
	OrderNo       string               `json:"orderNo"`
	Category      enums.RepairCategory `json:"category"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Images        []string             `json:"images"`
	Location      string               `json:"location"`
	Building      string               `json:"building"`
	Unit          string               `json:"unit"`
	Room          string               `json:"room"`
	ContactPerson string               `json:"contactPerson"`
	ContactPhone  string               `json:"contactPhone"` // 非提交人视角返回脱敏号码
	SubmitterID   string               `json:"submitterId"`
	HandlerID     *string              `json:"handlerId"`
	Status        enums.RepairStatus   `json:"status"`
	Priority      int                  `json:"priority"`
	ScheduledAt   *time.Time           `json:"scheduledAt"`
	CompletedAt   *time.Time           `json:"completedAt"`
	Rating        *int                 `json:"rating"`
	Feedback      string               `json:"feedback"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}
