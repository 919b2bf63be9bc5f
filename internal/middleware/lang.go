package middleware

import (
	"strings"

	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator picks the validator translator from ?lang=, the lang header or Accept-Language
// LangWithTranslator 按 ?lang=、lang 头或 Accept-Language 选择校验翻译器
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		} else if s = c.GetHeader("Accept-Language"); len(s) != 0 {
			lang = strings.SplitN(strings.SplitN(s, ",", 2)[0], ";", 2)[0]
		}

		lang = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(lang), "-", "_"))

		var trans ut.Translator
		found := false
		if uni != nil {
			if trans, found = uni.GetTranslator(lang); !found {
				// zh_cn -> zh
				trans, found = uni.GetTranslator(strings.SplitN(lang, "_", 2)[0])
			}
			if !found {
				trans, _ = uni.GetTranslator("en")
			}
			c.Set("trans", trans)
		}

		// 语言只对当前请求生效
		if strings.HasPrefix(lang, "zh") {
			c.Set(app.ContextLangKey, code.LangZH)
		} else {
			c.Set(app.ContextLangKey, code.LangEN)
		}

		c.Next()
	}
}
