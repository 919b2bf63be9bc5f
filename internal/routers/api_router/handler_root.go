package api_router

import (
	"net/http"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dto"
	pkgapp "github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"

	"github.com/gin-gonic/gin"
)

// codeOnDemandScript 由服务端下发、在浏览器中执行的脚本
const codeOnDemandScript = "alert( 'Namaste World!🙏. The JS code behind this alert was sent by the API server and then executed by your browser.' )"

// RootHandler API 入口与 code-on-demand 处理器
type RootHandler struct {
	*Handler
}

// NewRootHandler 创建 RootHandler 实例
func NewRootHandler(a *app.App) *RootHandler {
	return &RootHandler{Handler: NewHandler(a)}
}

// Entry API 入口，返回可发现的链接
func (h *RootHandler) Entry(c *gin.Context) {
	pkgapp.NewResponse(c).ToRepresentation(http.StatusOK, dto.NewEntryDTO(app.Name, h.App.Version().Version))
}

// CodeOnDemand 返回可执行的 JavaScript
func (h *RootHandler) CodeOnDemand(c *gin.Context) {
	c.Set("status_code", http.StatusOK)
	c.Data(http.StatusOK, "text/javascript; charset=utf-8", []byte(codeOnDemandScript))
}
