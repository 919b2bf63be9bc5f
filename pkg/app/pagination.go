package app

import "math"

// Pager describes one page of a collection
// Pager 分页信息
type Pager struct {
	Page     int `json:"page"`     // Page number // 页码
	PageSize int `json:"pageSize"` // Page size // 每页数量
	LastPage int `json:"lastPage"` // Last page, 0 for an empty collection // 最后一页，空集合为 0
}

// GetLastPage returns ceil(total/pageSize), 0 when total is 0
// GetLastPage 返回 ceil(total/pageSize)，total 为 0 时返回 0
func GetLastPage(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	last := total / pageSize
	if total%pageSize != 0 {
		last++
	}
	return last
}

// GetPageOffset 返回第 page 页的起始下标，乘积溢出时返回 math.MaxInt
func GetPageOffset(page, pageSize int) int {
	if page <= 1 || pageSize <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

// Paginate returns the items of page (1-based) and the pager.
// A page beyond the last one yields an empty slice, not an error.
// Paginate 返回第 page 页（从 1 开始）的元素及分页信息，超出最后一页时返回空切片
func Paginate[T any](items []T, page, pageSize int) ([]T, Pager) {
	pager := Pager{
		Page:     page,
		PageSize: pageSize,
		LastPage: GetLastPage(len(items), pageSize),
	}
	if page <= 0 || pageSize <= 0 {
		return []T{}, pager
	}

	// 先比较页码再计算下标，避免 (page-1)*pageSize 溢出
	if page > pager.LastPage {
		return []T{}, pager
	}
	start := GetPageOffset(page, pageSize)
	end := len(items)
	if pageSize < end-start {
		end = start + pageSize
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, pager
}
