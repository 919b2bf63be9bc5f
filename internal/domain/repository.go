package domain

import "context"

// NoteRepository 笔记仓储接口
// 笔记不存在或不属于 uid 时统一返回 ErrNoteNotFound
type NoteRepository interface {
	// GetByID 根据ID获取用户的笔记
	GetByID(ctx context.Context, id, uid string) (*Note, error)

	// ListByUser 按用户笔记列表顺序返回全部笔记
	ListByUser(ctx context.Context, uid string) ([]*Note, error)

	// Create 创建笔记并关联到用户
	Create(ctx context.Context, note *Note, uid string) (*Note, error)

	// Update 整体替换笔记
	Update(ctx context.Context, note *Note, uid string) (*Note, error)

	// UpdateText 只更新笔记内容和更新时间
	UpdateText(ctx context.Context, id, uid, text string, updatedAt int64) (*Note, error)

	// Delete 删除笔记并从用户笔记列表中移除
	Delete(ctx context.Context, id, uid string) error
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByID 根据ID获取用户
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// Seed 初始数据集
type Seed struct {
	Users []*User
	Notes []*Note
}

// Store 数据存储，提供两个仓储并支持用初始数据重建
type Store interface {
	Notes() NoteRepository
	Users() UserRepository

	// Reset 清空全部数据并载入 seed
	Reset(ctx context.Context, seed *Seed) error

	// Close 释放底层资源
	Close() error
}
