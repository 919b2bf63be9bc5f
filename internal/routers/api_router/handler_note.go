package api_router

import (
	"net/http"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dto"
	pkgapp "github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"
	apperrors "github.com/DmitriSedov/rest-api-design-tutorial/pkg/errors"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/hateoas"

	"github.com/gin-gonic/gin"
)

// ownedNoteKey RequireOwner 写入上下文的笔记
const ownedNoteKey = "owned_note"

// NoteAllow /notes/:id 支持的方法
const NoteAllow = "GET, PUT, PATCH, DELETE"

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(a),
	}
}

// RequireOwner 校验 :id 指向的笔记属于当前用户，否则返回 404
// 在解析请求体之前执行，不存在与无权访问无法区分
func (h *NoteHandler) RequireOwner(c *gin.Context) {
	uid, ok := h.currentUID(c, "NoteHandler.RequireOwner")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteService.Get(ctx, uid, c.Param("id"))
	if err != nil {
		if apperrors.Resolve(err).Status >= http.StatusInternalServerError {
			h.logError(ctx, "NoteHandler.RequireOwner", err)
		}
		apperrors.ErrorResponse(c, err)
		return
	}

	c.Set(ownedNoteKey, note)
	c.Next()
}

// List 获取笔记集合
// 查询参数 q / limit / page / sort / order，缺失或为空时使用默认值
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	params, err := dto.ParseNoteListRequest(c.Request.URL.Query())
	if err != nil {
		h.invalidParams(c, "NoteHandler.List.ParseNoteListRequest", code.ErrorInvalidQuery, pkgapp.TranslateErrors(c, err))
		return
	}

	uid, ok := h.currentUID(c, "NoteHandler.List")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	collection, err := h.App.NoteService.List(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToRepresentation(http.StatusOK, collection)
}

// Create 创建笔记，返回 201 与 Location
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	// 参数绑定和验证
	if valid, errs := pkgapp.BindJSONAndValid(c, params); !valid {
		h.invalidParams(c, "NoteHandler.Create.BindJSONAndValid", code.ErrorInvalidParams, errs)
		return
	}

	uid, ok := h.currentUID(c, "NoteHandler.Create")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	note, err := h.App.NoteService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.Created(hateoas.ResourceHref(hateoas.PathNotes, note.ID), note)
}

// Get 获取单个笔记
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	if note, ok := c.Get(ownedNoteKey); ok {
		response.ToRepresentation(http.StatusOK, note)
		return
	}

	uid, ok := h.currentUID(c, "NoteHandler.Get")
	if !ok {
		return
	}

	note, err := h.App.NoteService.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToRepresentation(http.StatusOK, note)
}

// Update 整体替换笔记（PUT），成功返回 204
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	if valid, errs := pkgapp.BindJSONAndValid(c, params); !valid {
		h.invalidParams(c, "NoteHandler.Update.BindJSONAndValid", code.ErrorInvalidParams, errs)
		return
	}

	uid, ok := h.currentUID(c, "NoteHandler.Update")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.App.NoteService.Update(ctx, uid, c.Param("id"), params); err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.NoContent()
}

// EditText 只修改笔记内容（PATCH），成功返回 204
func (h *NoteHandler) EditText(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NotePatchRequest{}

	if valid, errs := pkgapp.BindJSONAndValid(c, params); !valid {
		h.invalidParams(c, "NoteHandler.EditText.BindJSONAndValid", code.ErrorInvalidParams, errs)
		return
	}

	uid, ok := h.currentUID(c, "NoteHandler.EditText")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.App.NoteService.EditText(ctx, uid, c.Param("id"), params); err != nil {
		h.logError(ctx, "NoteHandler.EditText", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.NoContent()
}

// Delete 删除笔记，成功返回 204
func (h *NoteHandler) Delete(c *gin.Context) {
	uid, ok := h.currentUID(c, "NoteHandler.Delete")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.App.NoteService.Delete(ctx, uid, c.Param("id")); err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	pkgapp.NewResponse(c).NoContent()
}
