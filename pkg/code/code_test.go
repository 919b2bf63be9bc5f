package code

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		c    *Code
		want int
	}{
		{"success", Success, http.StatusOK},
		{"created", SuccessCreate, http.StatusCreated},
		{"invalid params", ErrorInvalidParams, http.StatusBadRequest},
		{"missing token", ErrorNotUserAuthToken, http.StatusUnauthorized},
		{"note not found", ErrorNoteNotFound, http.StatusNotFound},
		{"method not allowed", ErrorMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rate limited", ErrorTooManyRequests, http.StatusTooManyRequests},
		{"server error", ServerError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.StatusCode())
		})
	}
}

func TestCode_WithDetailsDoesNotMutateRegistered(t *testing.T) {
	c := ErrorInvalidParams.WithDetails("limit must be a positive integer")

	assert.True(t, c.HaveDetails())
	assert.Equal(t, []string{"limit must be a positive integer"}, c.Details())
	assert.False(t, ErrorInvalidParams.HaveDetails())
	assert.Empty(t, ErrorInvalidParams.Details())
	assert.Equal(t, ErrorInvalidParams.Code(), c.Code())
	assert.Equal(t, ErrorInvalidParams.StatusCode(), c.StatusCode())
}

func TestCode_Msgf(t *testing.T) {
	assert.Equal(t, "Note with ID '42' does not exist.", ErrorNoteNotFound.Msgf("42"))
}

func TestRegisteredCodes_UseFallbackLanguage(t *testing.T) {
	// 注册表在包变量初始化阶段填充，此时尚未设置过语言
	assert.Equal(t, "Success", sussCodes[Success.Code()])
	assert.Equal(t, "Invalid parameters", codes[ErrorInvalidParams.Code()])
	assert.Equal(t, FALLBACK_LNG, GetGlobalDefaultLang())
}

func TestCode_MsgIn(t *testing.T) {
	assert.Equal(t, "参数错误", ErrorInvalidParams.MsgIn(LangZH))
	assert.Equal(t, "Invalid parameters", ErrorInvalidParams.MsgIn(LangEN))
	assert.Equal(t, "Invalid parameters", ErrorInvalidParams.MsgIn("fr"))
	assert.Equal(t, "ID 为 '7' 的笔记不存在。", ErrorNoteNotFound.MsgIn(LangZH, "7"))
	assert.Equal(t, "Note with ID '7' does not exist.", ErrorNoteNotFound.MsgIn(LangEN, "7"))
}

func TestSetGlobalDefaultLang(t *testing.T) {
	defer SetGlobalDefaultLang(LangEN)

	assert.NoError(t, SetGlobalDefaultLang(LangZH))
	assert.Equal(t, "参数错误", ErrorInvalidParams.Msg())

	assert.Error(t, SetGlobalDefaultLang("fr"))
	assert.Equal(t, LangEN, GetGlobalDefaultLang())
	assert.Equal(t, "Invalid parameters", ErrorInvalidParams.Msg())
}

func TestNewError_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewError(ErrorInvalidParams.Code(), http.StatusBadRequest, lang{en: "dup"})
	})
}
