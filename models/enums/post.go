package enums

// PostType 邻里互助帖子类型
type PostType string

const (
	PostHelp       PostType = "help"        // 求助
	PostLostFound  PostType = "lost_found"  // 失物招领
	PostShare      PostType = "share"       // 分享
	PostDiscussion PostType = "discussion"  // 讨论
	PostSecondHand PostType = "second_hand" // 二手闲置
)

// IsValidPostType 判断帖子类型是否合法。
func IsValidPostType(s string) bool {
	switch PostType(s) {
	case PostHelp, PostLostFound, PostShare, PostDiscussion, PostSecondHand:
		return true
	default:
		return false
	}
}

// PostStatus 帖子审核状态
type PostStatus string

const (
	PostApproved PostStatus = "approved" // 正常展示
	PostHidden   PostStatus = "hidden"   // 被管理员隐藏
	PostDeleted  PostStatus = "deleted"  // 作者删除
)
