package enums

// RepairCategory 报修分类
type RepairCategory string

const (
	RepairWater          RepairCategory = "water"           // 水路
	RepairElectric       RepairCategory = "electric"        // 电路
	RepairDoor           RepairCategory = "door"            // 门窗
	RepairElevator       RepairCategory = "elevator"        // 电梯
	RepairPublicFacility RepairCategory = "public_facility" // 公共设施
	RepairOther          RepairCategory = "other"           // 其他
)

// IsValidRepairCategory 判断报修分类是否合法。
func IsValidRepairCategory(s string) bool {
	switch RepairCategory(s) {
	case RepairWater, RepairElectric, RepairDoor, RepairElevator, RepairPublicFacility, RepairOther:
		return true
	default:
		return false
	}
}

// RepairStatus 报修工单状态。
// 状态机: pending -> assigned -> processing -> completed；
// pending 状态可由提交人取消（cancelled）。
type RepairStatus string

const (
	RepairPending    RepairStatus = "pending"    // 待受理
	RepairAssigned   RepairStatus = "assigned"   // 已派单
	RepairProcessing RepairStatus = "processing" // 处理中
	RepairCompleted  RepairStatus = "completed"  // 已完成
	RepairCancelled  RepairStatus = "cancelled"  // 已取消
)

// CanTransitRepairStatus 校验工单状态迁移是否合法。
func CanTransitRepairStatus(from, to RepairStatus) bool {
	switch from {
	case RepairPending:
		return to == RepairAssigned || to == RepairProcessing || to == RepairCancelled
	case RepairAssigned:
		return to == RepairProcessing || to == RepairCancelled
	case RepairProcessing:
		return to == RepairCompleted
	default:
		return false
	}
}
