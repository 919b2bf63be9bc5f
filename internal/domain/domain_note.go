// Package domain 定义领域模型和接口
package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNoteNotFound 笔记不存在或不属于当前用户
	ErrNoteNotFound = errors.New("note not found")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
)

// NoteSortField 笔记可排序的时间字段
type NoteSortField string

const (
	NoteSortCreatedAt NoteSortField = "createdAt"
	NoteSortUpdatedAt NoteSortField = "updatedAt"
)

// SortOrder 排序方向
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Note 笔记领域模型
// CreatedAt / UpdatedAt 为 Unix 毫秒时间戳
type Note struct {
	ID        string
	Text      string
	CreatedAt int64
	UpdatedAt int64
}

// Clone 返回笔记副本
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}

// Contains reports whether text contains filter, ignoring case
// Contains 判断笔记内容是否包含关键字（不区分大小写）
func (n *Note) Contains(filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(n.Text), strings.ToLower(filter))
}

// Timestamp 返回指定排序字段的时间戳
func (n *Note) Timestamp(field NoteSortField) int64 {
	if field == NoteSortCreatedAt {
		return n.CreatedAt
	}
	return n.UpdatedAt
}
