// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/middleware"
	pkgapp "github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"
	apperrors "github.com/DmitriSedov/rest-api-design-tutorial/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError 记录带 traceId 的错误日志
func (h *Handler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}

// invalidParams 返回 400 以及逐字段的校验信息
func (h *Handler) invalidParams(c *gin.Context, method string, codeObj *code.Code, errs pkgapp.ValidErrors) {
	h.App.Logger().Warn(method, zap.Error(errs), zap.String("traceId", middleware.GetTraceIDFromGin(c)))
	apperrors.ErrorResponse(c, codeObj.WithDetails(errs.Errors()...))
}

// currentUID 读取认证中间件写入的用户 ID，缺失时直接返回 401
func (h *Handler) currentUID(c *gin.Context, method string) (string, bool) {
	uid := pkgapp.GetUID(c)
	if uid == "" {
		h.App.Logger().Error(method + " err uid empty")
		apperrors.ErrorResponseWithCode(c, code.ErrorInvalidAuthToken, nil)
		return "", false
	}
	return uid, true
}
