package dto

// PageQuery 通用分页查询参数，绑定自 URL query。
type PageQuery struct {
	Page     int `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize,default=10" binding:"omitempty,min=1,max=50"`
}

// Normalize 纠正越界的分页参数。
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	if q.PageSize > 50 {
		q.PageSize = 50
	}
}

// Offset 计算偏移量。
func (q *PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
