package dao

import (
	"context"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const joinUserNote = "JOIN " + model.TableNameUserNote + " un ON un.note_id = " + model.TableNameNote + ".id"

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) (*domain.Note, error) {
	if m == nil {
		return nil, nil
	}
	n := &domain.Note{}
	if err := copyStruct(m, n); err != nil {
		return nil, err
	}
	return n, nil
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(n *domain.Note) (*model.Note, error) {
	m := &model.Note{}
	if err := copyStruct(n, m); err != nil {
		return nil, err
	}
	return m, nil
}

// owned 在 db 上查询 uid 拥有的笔记
func (r *noteRepository) owned(db *gorm.DB, id, uid string) (*model.Note, error) {
	var m model.Note
	err := db.Model(&model.Note{}).
		Joins(joinUserNote).
		Where("un.uid = ? AND un.note_id = ?", uid, id).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoteNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query note failed")
	}
	return &m, nil
}

// GetByID 根据ID获取用户的笔记
func (r *noteRepository) GetByID(ctx context.Context, id, uid string) (*domain.Note, error) {
	m, err := r.owned(r.dao.Db.WithContext(ctx), id, uid)
	if err != nil {
		return nil, err
	}
	return r.toDomain(m)
}

// ListByUser 按用户笔记列表顺序返回笔记
func (r *noteRepository) ListByUser(ctx context.Context, uid string) ([]*domain.Note, error) {
	db := r.dao.Db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.User{}).Where("id = ?", uid).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "query user failed")
	}
	if count == 0 {
		return nil, domain.ErrUserNotFound
	}

	var ms []*model.Note
	err := db.Model(&model.Note{}).
		Joins(joinUserNote).
		Where("un.uid = ?", uid).
		Order("un.seq ASC").
		Find(&ms).Error
	if err != nil {
		return nil, errors.Wrap(err, "list notes failed")
	}

	out := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		n, err := r.toDomain(m)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Create 创建笔记并追加到用户笔记列表末尾
func (r *noteRepository) Create(ctx context.Context, note *domain.Note, uid string) (*domain.Note, error) {
	m, err := r.toModel(note)
	if err != nil {
		return nil, err
	}
	err = r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("id = ?", uid).Count(&count).Error; err != nil {
			return errors.Wrap(err, "query user failed")
		}
		if count == 0 {
			return domain.ErrUserNotFound
		}

		var maxSeq int64
		if err := tx.Model(&model.UserNote{}).Where("uid = ?", uid).
			Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
			return errors.Wrap(err, "query note seq failed")
		}
		if err := tx.Create(m).Error; err != nil {
			return errors.Wrap(err, "create note failed")
		}
		if err := tx.Create(&model.UserNote{UID: uid, NoteID: m.ID, Seq: maxSeq + 1}).Error; err != nil {
			return errors.Wrap(err, "link note failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m)
}

// Update 整体替换笔记
func (r *noteRepository) Update(ctx context.Context, note *domain.Note, uid string) (*domain.Note, error) {
	m, err := r.toModel(note)
	if err != nil {
		return nil, err
	}
	err = r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.owned(tx, note.ID, uid); err != nil {
			return err
		}
		return errors.Wrap(
			tx.Model(&model.Note{}).Where("id = ?", m.ID).Updates(map[string]any{
				"text":       m.Text,
				"created_at": m.CreatedAt,
				"updated_at": m.UpdatedAt,
			}).Error,
			"update note failed",
		)
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m)
}

// UpdateText 更新内容和更新时间
func (r *noteRepository) UpdateText(ctx context.Context, id, uid, text string, updatedAt int64) (*domain.Note, error) {
	var out *model.Note
	err := r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := r.owned(tx, id, uid)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.Note{}).Where("id = ?", id).Updates(map[string]any{
			"text":       text,
			"updated_at": updatedAt,
		}).Error; err != nil {
			return errors.Wrap(err, "update note text failed")
		}
		m.Text = text
		m.UpdatedAt = updatedAt
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(out)
}

// Delete 删除笔记及其用户关联
func (r *noteRepository) Delete(ctx context.Context, id, uid string) error {
	return r.dao.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.owned(tx, id, uid); err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", id).Delete(&model.UserNote{}).Error; err != nil {
			return errors.Wrap(err, "unlink note failed")
		}
		if err := tx.Where("id = ?", id).Delete(&model.Note{}).Error; err != nil {
			return errors.Wrap(err, "delete note failed")
		}
		return nil
	})
}

// 确保 noteRepository 实现了 domain.NoteRepository 接口
var _ domain.NoteRepository = (*noteRepository)(nil)
