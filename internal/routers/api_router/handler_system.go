package api_router

import (
	"net/http"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/app"
	pkgapp "github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SystemHandler 版本与健康检查处理器
type SystemHandler struct {
	*Handler
}

// NewSystemHandler 创建 SystemHandler 实例
func NewSystemHandler(a *app.App) *SystemHandler {
	return &SystemHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string  `json:"status"`  // "healthy" 或 "unhealthy"
	Version string  `json:"version"` // 服务版本号
	Uptime  float64 `json:"uptime"`  // 运行时间（秒）
	Store   string  `json:"store"`   // "connected" 或 "error"
}

// Version 返回服务版本信息
func (h *SystemHandler) Version(c *gin.Context) {
	pkgapp.NewResponse(c).ToRepresentation(http.StatusOK, h.App.Version())
}

// Health 健康检查，存储不可用时返回 503
func (h *SystemHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:  "healthy",
		Version: h.App.Version().Version,
		Uptime:  time.Since(h.App.StartTime).Seconds(),
		Store:   "connected",
	}

	if err := h.App.PingStore(c.Request.Context()); err != nil {
		h.App.Logger().Warn("SystemHandler.Health ping err", zap.Error(err))
		response.Status = "unhealthy"
		response.Store = "error"
		pkgapp.NewResponse(c).ToRepresentation(http.StatusServiceUnavailable, response)
		return
	}

	pkgapp.NewResponse(c).ToRepresentation(http.StatusOK, response)
}
