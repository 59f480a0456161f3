package enums

// MerchantCategory 商家黄页分类
type MerchantCategory string

const (
	MerchantRestaurant  MerchantCategory = "restaurant"  // 餐饮
	MerchantSupermarket MerchantCategory = "supermarket" // 超市便利
	MerchantRepair      MerchantCategory = "repair"      // 维修服务
	MerchantEducation   MerchantCategory = "education"   // 教育培训
	MerchantHealthcare  MerchantCategory = "healthcare"  // 医疗健康
	MerchantBeauty      MerchantCategory = "beauty"      // 美容美发
	MerchantOther       MerchantCategory = "other"       // 其他
)

// IsValidMerchantCategory 判断商家分类是否合法。
func IsValidMerchantCategory(s string) bool {
	switch MerchantCategory(s) {
	case MerchantRestaurant, MerchantSupermarket, MerchantRepair,
		MerchantEducation, MerchantHealthcare, MerchantBeauty, MerchantOther:
		return true
	default:
		return false
	}
}
