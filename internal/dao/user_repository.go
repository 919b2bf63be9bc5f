package dao

import (
	"context"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型，并加载笔记ID列表
func (r *userRepository) toDomain(db *gorm.DB, m *model.User) (*domain.User, error) {
	u := &domain.User{}
	if err := copyStruct(m, u); err != nil {
		return nil, err
	}
	var noteIDs []string
	err := db.Model(&model.UserNote{}).Where("uid = ?", m.ID).Order("seq ASC").Pluck("note_id", &noteIDs).Error
	if err != nil {
		return nil, errors.Wrap(err, "query user notes failed")
	}
	u.Notes = noteIDs
	return u, nil
}

func (r *userRepository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	db := r.dao.Db.WithContext(ctx)
	var m model.User
	err := db.Where(query, arg).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query user failed")
	}
	return r.toDomain(db, &m)
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByEmail 根据邮箱获取用户（不区分大小写）
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "LOWER(email) = LOWER(?)", email)
}

// 确保 userRepository 实现了 domain.UserRepository 接口
var _ domain.UserRepository = (*userRepository)(nil)
var _ domain.Store = (*Dao)(nil)
