package dto

import "time"

// RepairListQuery 报修列表查询参数
type RepairListQuery struct {
	PageQuery
	Status string `form:"status" binding:"omitempty,oneof=pending assigned processing completed cancelled"`
}

// CreateRepairDTO 提交报修
type CreateRepairDTO struct {
	Category      string   `json:"category" binding:"required"`
	Title         string   `json:"title" binding:"required,max=128"`
	Description   string   `json:"description" binding:"omitempty"`
	Images        []string `json:"images" binding:"omitempty,max=9,dive,url"`
	Location      string   `json:"location" binding:"omitempty,max=128"`
	Building      string   `json:"building" binding:"required,max=32"`
	Unit          string   `json:"unit" binding:"required,max=32"`
	Room          string   `json:"room" binding:"required,max=32"`
	ContactPerson string   `json:"contactPerson" binding:"required,max=32"`
	ContactPhone  string   `json:"contactPhone" binding:"required,ChinesePhone"`
}

// AssignRepairDTO 管理员派单
type AssignRepairDTO struct {
	HandlerID   string     `json:"handlerId" binding:"required,uuid"`
	Priority    *int       `json:"priority" binding:"omitempty,min=0,max=2"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// UpdateRepairStatusDTO 处理人推进工单状态
type UpdateRepairStatusDTO struct {
	Status string `json:"status" binding:"required,oneof=assigned processing completed cancelled"`
}

// RateRepairDTO 住户对已完成工单评价
type RateRepairDTO struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback" binding:"omitempty,max=500"`
}
