package service

import (
	"slices"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
)

// FilterNotes keeps the notes whose text contains filter, ignoring case.
// An empty filter returns notes unchanged.
// FilterNotes 按内容做不区分大小写的子串过滤，filter 为空时原样返回
func FilterNotes(notes []*domain.Note, filter string) []*domain.Note {
	if filter == "" {
		return notes
	}
	out := make([]*domain.Note, 0, len(notes))
	for _, n := range notes {
		if n.Contains(filter) {
			out = append(out, n)
		}
	}
	return out
}

// SortNotes returns a stably sorted copy ordered by the given timestamp field
// SortNotes 按时间字段稳定排序，返回新切片；desc 时反转比较，相等元素保持原顺序
func SortNotes(notes []*domain.Note, field domain.NoteSortField, order domain.SortOrder) []*domain.Note {
	out := slices.Clone(notes)
	slices.SortStableFunc(out, func(a, b *domain.Note) int {
		x, y := a.Timestamp(field), b.Timestamp(field)
		if order == domain.SortDesc {
			x, y = y, x
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	})
	return out
}

// shapeNotes 执行 过滤 → 分页 → 排序（或 过滤 → 排序 → 分页）
func shapeNotes(notes []*domain.Note, q string, page, limit int, field domain.NoteSortField, order domain.SortOrder, sortFirst bool) ([]*domain.Note, app.Pager) {
	notes = FilterNotes(notes, q)
	if sortFirst {
		return app.Paginate(SortNotes(notes, field, order), page, limit)
	}
	paged, pager := app.Paginate(notes, page, limit)
	return SortNotes(paged, field, order), pager
}
