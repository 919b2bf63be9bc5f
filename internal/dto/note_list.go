package dto

import (
	"net/url"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/hateoas"

	"github.com/gin-gonic/gin/binding"
)

const (
	DefaultNoteListLimit = 2
	DefaultNoteListPage  = 1
	DefaultNoteListSort  = string(domain.NoteSortUpdatedAt)
	DefaultNoteListOrder = string(domain.SortAsc)
)

// NoteListRequest Query parameters of the note collection
// NoteListRequest 笔记集合的查询参数，缺失或为空的字段使用默认值
type NoteListRequest struct {
	Q     string `json:"q" form:"q"`                                                             // Case-insensitive text filter // 关键字（不区分大小写）
	Limit int    `json:"limit" form:"limit,default=2" binding:"min=1"`                           // Page size // 每页数量
	Page  int    `json:"page" form:"page,default=1" binding:"min=1"`                             // Page number, 1-based // 页码
	Sort  string `json:"sort" form:"sort,default=updatedAt" binding:"oneof=createdAt updatedAt"` // Sort field // 排序字段
	Order string `json:"order" form:"order,default=asc" binding:"oneof=asc desc"`                // Sort direction // 排序方向
}

// ParseNoteListRequest parses and validates raw query values.
// Absent and empty parameters both fall back to their defaults.
// ParseNoteListRequest 解析并校验查询参数，参数缺失或为空时使用默认值
func ParseNoteListRequest(values url.Values) (*NoteListRequest, error) {
	form := make(map[string][]string, len(values))
	for k, vs := range values {
		if len(vs) == 0 || vs[0] == "" {
			continue
		}
		form[k] = vs
	}

	req := &NoteListRequest{}
	if err := binding.MapFormWithTag(req, form, "form"); err != nil {
		return nil, err
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Normalize 为零值字段填充默认值
func (r *NoteListRequest) Normalize() *NoteListRequest {
	if r.Limit == 0 {
		r.Limit = DefaultNoteListLimit
	}
	if r.Page == 0 {
		r.Page = DefaultNoteListPage
	}
	if r.Sort == "" {
		r.Sort = DefaultNoteListSort
	}
	if r.Order == "" {
		r.Order = DefaultNoteListOrder
	}
	return r
}

// SortField 排序字段
func (r *NoteListRequest) SortField() domain.NoteSortField {
	return domain.NoteSortField(r.Sort)
}

// SortOrder 排序方向
func (r *NoteListRequest) SortOrder() domain.SortOrder {
	return domain.SortOrder(r.Order)
}

// ToQuery 转换为链接生成使用的查询状态
func (r *NoteListRequest) ToQuery() hateoas.Query {
	return hateoas.Query{
		Q:     r.Q,
		Limit: r.Limit,
		Page:  r.Page,
		Sort:  r.Sort,
		Order: r.Order,
	}
}
