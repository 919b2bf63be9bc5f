package api_router

import (
	"net/http"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dto"
	pkgapp "github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"
	apperrors "github.com/DmitriSedov/rest-api-design-tutorial/pkg/errors"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/httpcache"

	"github.com/gin-gonic/gin"
)

// AccessTokenHeader 登录成功后携带访问令牌的响应头
const AccessTokenHeader = "X-Access-Token"

// UserHandler user API router handler
// UserHandler 用户 API 路由处理器
type UserHandler struct {
	*Handler
}

// NewUserHandler creates UserHandler instance
// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(a),
	}
}

// Auth exchanges email and password for an access token
// Auth 使用邮箱和密码换取访问令牌，令牌放在 X-Access-Token 响应头
func (h *UserHandler) Auth(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AuthRequest{}

	// Parameter binding and validation
	// 参数绑定和验证
	if valid, errs := pkgapp.BindJSONAndValid(c, params); !valid {
		h.invalidParams(c, "UserHandler.Auth.BindJSONAndValid", code.ErrorInvalidParams, errs)
		return
	}

	ctx := c.Request.Context()
	auth, token, err := h.App.UserService.Authenticate(ctx, params)
	if err != nil {
		if apperrors.Resolve(err).Status >= http.StatusInternalServerError {
			h.logError(ctx, "UserHandler.Auth", err)
		}
		apperrors.ErrorResponse(c, err)
		return
	}

	c.Header(AccessTokenHeader, token)
	response.ToRepresentation(http.StatusOK, auth)
}

// Profile returns the caller's public profile with cache validators; the path id is not consulted
// Profile 返回当前用户的公开资料，支持 ETag / Last-Modified 条件请求，路径中的 id 不参与查询
func (h *UserHandler) Profile(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid, ok := h.currentUID(c, "UserHandler.Profile")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	profile, modTime, err := h.App.UserService.Profile(ctx, uid)
	if err != nil {
		if apperrors.Resolve(err).Status >= http.StatusInternalServerError {
			h.logError(ctx, "UserHandler.Profile", err)
		}
		apperrors.ErrorResponse(c, err)
		return
	}

	validators, err := httpcache.NewValidators(profile, modTime)
	if err != nil {
		h.logError(ctx, "UserHandler.Profile.NewValidators", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	validators.Apply(c.Writer.Header())

	if validators.CheckRequest(c.Request) {
		response.NotModified()
		return
	}

	response.ToRepresentation(http.StatusOK, profile)
}
