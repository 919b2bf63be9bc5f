package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/middleware"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus int
	}{
		{"code error", code.ErrorInvalidQuery.WithDetails("limit"), code.ErrorInvalidQuery.Code(), http.StatusBadRequest},
		{"wrapped code error", fmt.Errorf("find: %w", code.ErrorNoteNotFound), code.ErrorNoteNotFound.Code(), http.StatusNotFound},
		{"app error", NewAppError(code.ErrorInvalidCredentials, nil), code.ErrorInvalidCredentials.Code(), http.StatusUnauthorized},
		{"unknown error", errors.New("disk on fire"), code.ServerError.Code(), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestErrorResponse_HidesInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/notes", nil)
	c.Set(middleware.TraceIDKey, "trace-1")

	ErrorResponse(c, errors.New("sql: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, c.IsAborted())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Uh oh! Something went wrong.", body["message"])
	assert.Equal(t, "trace-1", body["traceId"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestErrorResponseWithCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/notes/9", nil)

	ErrorResponseWithCode(c, code.ErrorNoteNotFound, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":407`)
}

func TestErrorResponse_UsesRequestLanguage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		lang string
		err  error
		want string
	}{
		{"formatted zh", code.LangZH, NewAppErrorf(code.ErrorNoteNotFound, nil, "42"), "ID 为 '42' 的笔记不存在。"},
		{"formatted en", code.LangEN, NewAppErrorf(code.ErrorNoteNotFound, nil, "42"), "Note with ID '42' does not exist."},
		{"plain code zh", code.LangZH, code.ErrorInvalidParams, "参数错误"},
		{"unknown error zh", code.LangZH, errors.New("boom"), "哎呀！服务器出错了。"},
		{"no language", "", NewAppError(code.ErrorInvalidParams, nil), "Invalid parameters"},
		{"custom message kept", code.LangZH, NewAppErrorWithMessage(code.ErrorInvalidParams, "limit too large", nil), "limit too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/notes/42", nil)
			if tt.lang != "" {
				c.Set(app.ContextLangKey, tt.lang)
			}

			ErrorResponse(c, tt.err)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body["message"])
		})
	}
}

func TestErrorResponse_ThroughLangMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/users/:id", middleware.LangWithTranslator(nil), func(c *gin.Context) {
		ErrorResponse(c, NewAppErrorf(code.ErrorUserNotFound, nil, c.Param("id")))
	})

	zh := httptest.NewRecorder()
	r.ServeHTTP(zh, httptest.NewRequest(http.MethodGet, "/users/7?lang=zh", nil))
	assert.Equal(t, http.StatusNotFound, zh.Code)
	assert.Contains(t, zh.Body.String(), "ID 为 '7' 的用户不存在。")

	en := httptest.NewRecorder()
	r.ServeHTTP(en, httptest.NewRequest(http.MethodGet, "/users/7", nil))
	assert.Contains(t, en.Body.String(), "User with ID '7' does not exist.")
}
