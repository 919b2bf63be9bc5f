package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/middleware"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError 统一应用错误结构体
// 包含错误码、消息、详情、追踪ID和时间戳
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Status 对应的 HTTP 状态码（不序列化）
	Status int `json:"-"`
	// Message 错误消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`

	code *code.Code
	args []interface{}
	// customMessage 消息由调用方给定，不随请求语言变化
	customMessage bool
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap 支持 errors.Is / errors.As 沿错误链查找
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Status:    c.StatusCode(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
		code:      c,
	}
}

// NewAppErrorf 创建消息带格式化参数的 AppError
func NewAppErrorf(c *code.Code, cause error, args ...interface{}) *AppError {
	e := NewAppError(c, cause)
	e.args = args
	e.Message = c.Msgf(args...)
	return e
}

// NewAppErrorWithMessage 创建带自定义消息的 AppError
func NewAppErrorWithMessage(c *code.Code, message string, cause error) *AppError {
	e := NewAppError(c, cause)
	e.Message = message
	e.customMessage = true
	return e
}

// Localize re-renders the message in the given language; custom messages are kept
// Localize 按指定语言重新生成消息，自定义消息保持不变
func (e *AppError) Localize(language string) *AppError {
	if e.code == nil || e.customMessage {
		return e
	}
	e.Message = e.code.MsgIn(language, e.args...)
	return e
}

// WithTraceID 设置 TraceID 并返回自身（链式调用）
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// WithDetails 设置详情并返回自身（链式调用）
func (e *AppError) WithDetails(details ...string) *AppError {
	e.Details = details
	return e
}

// Resolve converts any error into an AppError; unknown errors become a generic 500
// Resolve 将任意错误转换为 AppError，未知错误统一为 500，不暴露内部信息
func Resolve(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status == 0 {
			appErr.Status = http.StatusInternalServerError
		}
		return appErr
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		return NewAppError(codeErr, err)
	}

	return NewAppError(code.ServerError, err)
}

// ErrorResponse 统一错误响应处理
// 从 gin.Context 获取 TraceID，将错误转换为 AppError 并按其 HTTP 状态码返回 JSON
func ErrorResponse(c *gin.Context, err error) {
	appErr := Resolve(err).Localize(app.GetLang(c))
	appErr.TraceID = middleware.GetTraceIDFromGin(c)

	c.Set("status_code", appErr.Status)
	c.AbortWithStatusJSON(appErr.Status, appErr)
}

// ErrorResponseWithCode 使用指定的 Code 对象返回错误响应
func ErrorResponseWithCode(c *gin.Context, codeErr *code.Code, cause error) {
	ErrorResponse(c, NewAppError(codeErr, cause))
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
