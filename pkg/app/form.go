package app

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 所有错误信息以逗号拼接
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString 字段名到错误信息的映射
func (v ValidErrors) MapsToString() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid binds the request into obj with gin binding rules, then validates it
// BindAndValid 按 gin 的绑定规则解析请求参数并校验
func BindAndValid(c *gin.Context, obj any) (bool, ValidErrors) {
	if err := c.ShouldBind(obj); err != nil {
		return false, TranslateErrors(c, err)
	}
	return true, nil
}

// BindJSONAndValid 只从请求体解析 JSON 并校验
func BindJSONAndValid(c *gin.Context, obj any) (bool, ValidErrors) {
	if err := c.ShouldBindWith(obj, binding.JSON); err != nil {
		return false, TranslateErrors(c, err)
	}
	return true, nil
}

// BindQueryAndValid 只从查询字符串解析并校验
func BindQueryAndValid(c *gin.Context, obj any) (bool, ValidErrors) {
	if err := c.ShouldBindQuery(obj); err != nil {
		return false, TranslateErrors(c, err)
	}
	return true, nil
}

// TranslateErrors turns binding errors into ValidErrors using the request translator
// TranslateErrors 使用请求的翻译器将绑定错误转换为 ValidErrors
func TranslateErrors(c *gin.Context, err error) ValidErrors {
	var errs ValidErrors

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return append(errs, &ValidError{Key: "body", Message: err.Error()})
	}

	trans, _ := c.Value("trans").(ut.Translator)
	for _, e := range validationErrors {
		msg := e.Error()
		if trans != nil {
			msg = e.Translate(trans)
		}
		errs = append(errs, &ValidError{Key: e.Field(), Message: msg})
	}
	return errs
}
