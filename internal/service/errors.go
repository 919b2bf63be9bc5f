package service

import (
	"context"
	"errors"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/domain"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"
	apperrors "github.com/DmitriSedov/rest-api-design-tutorial/pkg/errors"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/writequeue"
)

// noteNotFound 笔记不存在或无权访问
func noteNotFound(id string, cause error) error {
	return apperrors.NewAppErrorf(code.ErrorNoteNotFound, cause, id)
}

// userNotFound 用户不存在或不是当前用户
func userNotFound(id string, cause error) error {
	return apperrors.NewAppErrorf(code.ErrorUserNotFound, cause, id)
}

// toServiceError 将仓储和写队列错误转换为带 HTTP 状态的业务错误
func toServiceError(err error, noteID string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNoteNotFound):
		return noteNotFound(noteID, err)
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NewAppError(code.ErrorInvalidAuthToken, err)
	case errors.Is(err, writequeue.ErrWriteQueueFull):
		return apperrors.NewAppError(code.ErrorWriteQueueFull, err)
	case errors.Is(err, writequeue.ErrWriteQueueClosed):
		return apperrors.NewAppError(code.ErrorWriteQueueClose, err)
	case errors.Is(err, writequeue.ErrWriteTimeout), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperrors.NewAppError(code.ErrorRequestTimeout, err)
	case apperrors.IsAppError(err):
		return err
	}
	return apperrors.NewAppError(code.ServerError, err)
}
