package service

import (
	"context"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dto"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"
	apperrors "github.com/DmitriSedov/rest-api-design-tutorial/pkg/errors"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/hateoas"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/logger"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/writequeue"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoteService 定义笔记业务服务接口
// 笔记不存在与不属于当前用户返回同一个 404 错误
type NoteService interface {
	// List 过滤、分页、排序后返回笔记集合
	List(ctx context.Context, uid string, params *dto.NoteListRequest) (*dto.NoteCollectionDTO, error)

	// Get 获取单个笔记
	Get(ctx context.Context, uid, id string) (*dto.NoteDTO, error)

	// Create 创建笔记
	Create(ctx context.Context, uid string, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Update 整体替换笔记
	Update(ctx context.Context, uid, id string, params *dto.NoteUpdateRequest) error

	// EditText 只修改内容，更新时间取当前时间
	EditText(ctx context.Context, uid, id string, params *dto.NotePatchRequest) error

	// Delete 删除笔记
	Delete(ctx context.Context, uid, id string) error
}

// NoteServiceOption 笔记服务可选项
type NoteServiceOption func(*noteService)

// WithClock 指定时间来源
func WithClock(c clock.Clock) NoteServiceOption {
	return func(s *noteService) { s.clock = c }
}

// WithIDGenerator 指定笔记ID生成函数
func WithIDGenerator(fn func() string) NoteServiceOption {
	return func(s *noteService) { s.newID = fn }
}

// noteService 实现 NoteService 接口
type noteService struct {
	noteRepo   domain.NoteRepository
	writeQueue *writequeue.Manager
	clock      clock.Clock
	newID      func() string
	logger     *zap.Logger
	config     *ServiceConfig
}

// NewNoteService 创建 NoteService 实例
// writeQueue 为 nil 时写操作直接执行
func NewNoteService(noteRepo domain.NoteRepository, writeQueue *writequeue.Manager, lg *zap.Logger, config *ServiceConfig, opts ...NoteServiceOption) NoteService {
	if lg == nil {
		lg = zap.NewNop()
	}
	if config == nil {
		config = &ServiceConfig{}
	}
	s := &noteService{
		noteRepo:   noteRepo,
		writeQueue: writeQueue,
		clock:      clock.New(),
		newID:      uuid.NewString,
		logger:     lg,
		config:     config,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// write 通过用户写队列串行执行写操作
func (s *noteService) write(ctx context.Context, uid string, fn func() error) error {
	if s.writeQueue == nil {
		return fn()
	}
	return s.writeQueue.Execute(ctx, uid, fn)
}

func (s *noteService) now() int64 {
	return s.clock.Now().UnixMilli()
}

// List 过滤、分页、排序后返回笔记集合
func (s *noteService) List(ctx context.Context, uid string, params *dto.NoteListRequest) (*dto.NoteCollectionDTO, error) {
	params.Normalize()

	notes, err := s.noteRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, toServiceError(err, "")
	}

	page, pager := shapeNotes(notes, params.Q, params.Page, params.Limit,
		params.SortField(), params.SortOrder(), s.config.Note.SortBeforePaginate)

	return dto.NewNoteCollectionDTO(hateoas.PathNotes, page, params.ToQuery(), pager.LastPage), nil
}

// Get 获取单个笔记
func (s *noteService) Get(ctx context.Context, uid, id string) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, id, uid)
	if err != nil {
		return nil, toServiceError(err, id)
	}
	return dto.NewNoteDTO(hateoas.PathNotes, note), nil
}

// Create 创建笔记
func (s *noteService) Create(ctx context.Context, uid string, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	now := s.now()
	note := &domain.Note{
		ID:        s.newID(),
		Text:      *params.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var created *domain.Note
	err := s.write(ctx, uid, func() error {
		var err error
		created, err = s.noteRepo.Create(ctx, note, uid)
		return err
	})
	if err != nil {
		s.logger.Warn("create note failed",
			zap.String(logger.FieldUID, uid),
			zap.String(logger.FieldMethod, "NoteService.Create"),
			zap.Error(err),
		)
		return nil, toServiceError(err, note.ID)
	}

	s.logger.Debug("note created",
		zap.String(logger.FieldUID, uid),
		zap.String(logger.FieldNoteID, created.ID),
	)
	return dto.NewNoteDTO(hateoas.PathNotes, created), nil
}

// Update 整体替换笔记，请求体中的 id 必须与路径一致
func (s *noteService) Update(ctx context.Context, uid, id string, params *dto.NoteUpdateRequest) error {
	if _, err := s.noteRepo.GetByID(ctx, id, uid); err != nil {
		return toServiceError(err, id)
	}
	if *params.ID != id {
		return apperrors.NewAppError(code.ErrorInvalidParams.WithDetails("id in body does not match the resource"), nil)
	}

	note := &domain.Note{
		ID:        id,
		Text:      *params.Text,
		CreatedAt: *params.CreatedAt,
		UpdatedAt: *params.UpdatedAt,
	}
	err := s.write(ctx, uid, func() error {
		_, err := s.noteRepo.Update(ctx, note, uid)
		return err
	})
	return toServiceError(err, id)
}

// EditText 只修改内容，更新时间取当前时间
func (s *noteService) EditText(ctx context.Context, uid, id string, params *dto.NotePatchRequest) error {
	err := s.write(ctx, uid, func() error {
		_, err := s.noteRepo.UpdateText(ctx, id, uid, *params.Text, s.now())
		return err
	})
	return toServiceError(err, id)
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, uid, id string) error {
	err := s.write(ctx, uid, func() error {
		return s.noteRepo.Delete(ctx, id, uid)
	})
	if err == nil {
		s.logger.Debug("note deleted",
			zap.String(logger.FieldUID, uid),
			zap.String(logger.FieldNoteID, id),
		)
	}
	return toServiceError(err, id)
}

// ModTime 毫秒时间戳转换为 time.Time
func ModTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
