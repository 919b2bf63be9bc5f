package code

import (
	"errors"
	"sync/atomic"
)

// lang stores the English and Chinese text of one message
// lang 用来存储一条消息的英文和中文文本
type lang struct {
	en    string // English // 英文
	zh_cn string // Chinese // 中文
}

const (
	LangEN = "en"
	LangZH = "zh_cn"

	FALLBACK_LNG = LangEN
)

// lng 全局默认语言，未设置时为 FALLBACK_LNG
// 包级变量（各个 Code）初始化时就会读取它，不能依赖 init 赋初值
var lng atomic.Value

// GetMessage returns the message in the global language, falling back to English
// GetMessage 根据全局语言返回消息，缺失时回退到英文
func (l lang) GetMessage() string {
	return l.In(GetGlobalDefaultLang())
}

// In returns the message in the given language
// In 返回指定语言的消息
func (l lang) In(language string) string {
	if language == LangZH && l.zh_cn != "" {
		return l.zh_cn
	}
	return l.en
}

// GetSupportedLanguages 返回支持的语言列表
func GetSupportedLanguages() []string {
	return []string{LangEN, LangZH}
}

// SetGlobalDefaultLang sets the global default language
// 设置全局默认语言
func SetGlobalDefaultLang(language string) error {
	for _, l := range GetSupportedLanguages() {
		if language == l {
			lng.Store(language)
			return nil
		}
	}
	lng.Store(FALLBACK_LNG)
	return errors.New("unsupported language type, set defaulting to " + FALLBACK_LNG)
}

// GetGlobalDefaultLang 获取全局默认语言
func GetGlobalDefaultLang() string {
	if language, ok := lng.Load().(string); ok && language != "" {
		return language
	}
	return FALLBACK_LNG
}
