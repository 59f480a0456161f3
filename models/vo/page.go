package vo

// PageVO 通用分页响应
type PageVO[T any] struct {
	List     []T   `json:"list"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	HasMore  bool  `json:"hasMore"`
}

// NewPageVO 根据查询结果构建分页响应。
func NewPageVO[T any](list []T, total int64, page, pageSize int) PageVO[T] {
	if list == nil {
		list = []T{}
	}
	return PageVO[T]{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  int64((page-1)*pageSize+len(list)) < total,
	}
}
