package dao

import (
	"context"
	"strings"
	"sync"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
)

// MemoryStore 进程内存储
// 所有记录以 ID 为索引，读写统一由 mu 保护；返回值均为副本
type MemoryStore struct {
	mu     sync.RWMutex
	notes  map[string]*domain.Note
	users  map[string]*domain.User
	emails map[string]string // lower(email) -> user id
}

// NewMemoryStore 创建空的内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notes:  make(map[string]*domain.Note),
		users:  make(map[string]*domain.User),
		emails: make(map[string]string),
	}
}

func (s *MemoryStore) Notes() domain.NoteRepository { return (*memoryNoteRepository)(s) }

func (s *MemoryStore) Users() domain.UserRepository { return (*memoryUserRepository)(s) }

// Reset 清空并载入 seed
func (s *MemoryStore) Reset(_ context.Context, seed *domain.Seed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = make(map[string]*domain.Note)
	s.users = make(map[string]*domain.User)
	s.emails = make(map[string]string)
	if seed == nil {
		return nil
	}
	for _, n := range seed.Notes {
		s.notes[n.ID] = n.Clone()
	}
	for _, u := range seed.Users {
		s.users[u.ID] = u.Clone()
		s.emails[strings.ToLower(u.Email)] = u.ID
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// ownedNote 返回 uid 拥有的笔记，调用方需持有锁
func (s *MemoryStore) ownedNote(id, uid string) (*domain.User, *domain.Note, error) {
	u, ok := s.users[uid]
	if !ok || !u.OwnsNote(id) {
		return nil, nil, domain.ErrNoteNotFound
	}
	n, ok := s.notes[id]
	if !ok {
		return nil, nil, domain.ErrNoteNotFound
	}
	return u, n, nil
}

type memoryNoteRepository MemoryStore

// GetByID 根据ID获取用户的笔记
func (r *memoryNoteRepository) GetByID(_ context.Context, id, uid string) (*domain.Note, error) {
	s := (*MemoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, n, err := s.ownedNote(id, uid)
	if err != nil {
		return nil, err
	}
	return n.Clone(), nil
}

// ListByUser 按用户笔记列表顺序返回笔记，缺失的记录跳过
func (r *memoryNoteRepository) ListByUser(_ context.Context, uid string) ([]*domain.Note, error) {
	s := (*MemoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := make([]*domain.Note, 0, len(u.Notes))
	for _, id := range u.Notes {
		if n, ok := s.notes[id]; ok {
			out = append(out, n.Clone())
		}
	}
	return out, nil
}

// Create 创建笔记并追加到用户笔记列表
func (r *memoryNoteRepository) Create(_ context.Context, note *domain.Note, uid string) (*domain.Note, error) {
	s := (*MemoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	s.notes[note.ID] = note.Clone()
	u.Notes = append(u.Notes, note.ID)
	return note.Clone(), nil
}

// Update 整体替换笔记
func (r *memoryNoteRepository) Update(_ context.Context, note *domain.Note, uid string) (*domain.Note, error) {
	s := (*MemoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, err := s.ownedNote(note.ID, uid); err != nil {
		return nil, err
	}
	s.notes[note.ID] = note.Clone()
	return note.Clone(), nil
}

// UpdateText 更新内容和更新时间
func (r *memoryNoteRepository) UpdateText(_ context.Context, id, uid, text string, updatedAt int64) (*domain.Note, error) {
	s := (*MemoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	_, n, err := s.ownedNote(id, uid)
	if err != nil {
		return nil, err
	}
	updated := n.Clone()
	updated.Text = text
	updated.UpdatedAt = updatedAt
	s.notes[id] = updated
	return updated.Clone(), nil
}

// Delete 删除笔记并从用户笔记列表中移除
func (r *memoryNoteRepository) Delete(_ context.Context, id, uid string) error {
	s := (*MemoryStore)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	u, _, err := s.ownedNote(id, uid)
	if err != nil {
		return err
	}
	delete(s.notes, id)
	u.RemoveNote(id)
	return nil
}

type memoryUserRepository MemoryStore

// GetByID 根据ID获取用户
func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	s := (*MemoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

// GetByEmail 根据邮箱获取用户（不区分大小写）
func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s := (*MemoryStore)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return s.users[id].Clone(), nil
}

var (
	_ domain.Store          = (*MemoryStore)(nil)
	_ domain.NoteRepository = (*memoryNoteRepository)(nil)
	_ domain.UserRepository = (*memoryUserRepository)(nil)
)
