package enums

// AnnouncementCategory 公告分类
type AnnouncementCategory string

const (
	AnnouncementEmergency   AnnouncementCategory = "emergency"   // 紧急通知
	AnnouncementNotice      AnnouncementCategory = "notice"      // 一般通知
	AnnouncementActivity    AnnouncementCategory = "activity"    // 社区活动
	AnnouncementMaintenance AnnouncementCategory = "maintenance" // 维修维护
)

// IsValidAnnouncementCategory 判断公告分类是否合法。
func IsValidAnnouncementCategory(s string) bool {
	switch AnnouncementCategory(s) {
	case AnnouncementEmergency, AnnouncementNotice, AnnouncementActivity, AnnouncementMaintenance:
		return true
	default:
		return false
	}
}

// AnnouncementStatus 公告发布状态
type AnnouncementStatus string

const (
	AnnouncementDraft     AnnouncementStatus = "draft"     // 草稿
	AnnouncementPublished AnnouncementStatus = "published" // 已发布
	AnnouncementArchived  AnnouncementStatus = "archived"  // 已归档
)
