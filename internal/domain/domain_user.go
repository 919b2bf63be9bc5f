package domain

import "slices"

// User 用户领域模型
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string // bcrypt hash
	Notes     []string
	CreatedAt int64
	UpdatedAt int64
}

// Clone 返回用户副本（包括笔记ID列表）
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Notes = slices.Clone(u.Notes)
	return &c
}

// OwnsNote 判断笔记是否属于该用户
func (u *User) OwnsNote(noteID string) bool {
	return slices.Contains(u.Notes, noteID)
}

// RemoveNote 从用户的笔记列表中移除指定笔记
func (u *User) RemoveNote(noteID string) {
	u.Notes = slices.DeleteFunc(u.Notes, func(id string) bool { return id == noteID })
}
