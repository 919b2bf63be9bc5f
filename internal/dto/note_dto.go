// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/hateoas"
)

// NoteCreateRequest Request parameters for creating a note
// 创建笔记请求参数，text 可以为空字符串但必须存在
type NoteCreateRequest struct {
	Text *string `json:"text" form:"text" binding:"required"` // Note text // 笔记内容
}

// NoteUpdateRequest Request parameters for replacing a note (PUT)
// 整体替换笔记的请求参数，所有字段必须存在
type NoteUpdateRequest struct {
	ID        *string `json:"id" binding:"required"`        // Note ID, must equal the path ID // 笔记ID，必须与路径一致
	Text      *string `json:"text" binding:"required"`      // Note text // 笔记内容
	CreatedAt *int64  `json:"createdAt" binding:"required"` // Unix ms // 创建时间（毫秒）
	UpdatedAt *int64  `json:"updatedAt" binding:"required"` // Unix ms // 更新时间（毫秒）
}

// NotePatchRequest Request parameters for editing note text (PATCH)
// 只修改笔记内容的请求参数
type NotePatchRequest struct {
	Text *string `json:"text" binding:"required"` // Note text // 笔记内容
}

// ---------------- DTO / Response ----------------

// NoteDTO Full note representation
// NoteDTO 单个笔记的完整表示
type NoteDTO struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	CreatedAt int64          `json:"createdAt"`
	UpdatedAt int64          `json:"updatedAt"`
	Links     []hateoas.Link `json:"links"`
}

// NoteItemDTO Compact note representation inside a collection (no createdAt)
// NoteItemDTO 集合中的笔记精简表示（不含 createdAt）
type NoteItemDTO struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	UpdatedAt int64          `json:"updatedAt"`
	Links     []hateoas.Link `json:"links"`
}

// NoteCollectionDTO Note collection response
// NoteCollectionDTO 笔记集合响应
type NoteCollectionDTO struct {
	Notes []NoteItemDTO  `json:"notes"`
	Links []hateoas.Link `json:"links"`
}

// NewNoteDTO 构建单个笔记的完整表示及其五个链接
func NewNoteDTO(base string, n *domain.Note) *NoteDTO {
	return &NoteDTO{
		ID:        n.ID,
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Links:     hateoas.ResourceLinks(base, n.ID),
	}
}

// NewNoteCollectionDTO 构建笔记集合表示
func NewNoteCollectionDTO(base string, notes []*domain.Note, q hateoas.Query, lastPage int) *NoteCollectionDTO {
	items := make([]NoteItemDTO, 0, len(notes))
	for _, n := range notes {
		items = append(items, NoteItemDTO{
			ID:        n.ID,
			Text:      n.Text,
			UpdatedAt: n.UpdatedAt,
			Links:     hateoas.ItemLinks(base, n.ID),
		})
	}
	return &NoteCollectionDTO{
		Notes: items,
		Links: hateoas.CollectionLinks(base, q, lastPage),
	}
}
