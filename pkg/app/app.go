package app

import (
	"net/http"
	"strings"

	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

// ContextLangKey 请求语言在 gin.Context 中的键
const ContextLangKey = "lang"

// GetLang returns the language chosen for this request, or the global default
// GetLang 返回当前请求的语言，未设置时使用全局默认语言
func GetLang(c *gin.Context) string {
	if c != nil {
		if language := c.GetString(ContextLangKey); language != "" {
			return language
		}
	}
	return code.GetGlobalDefaultLang()
}

type Response struct {
	Ctx *gin.Context
}

// Res is the envelope used for error and status replies
// Res 是错误与状态类响应使用的统一结构
type Res struct {
	Code    int         `json:"code"`
	Status  bool        `json:"status"`
	Message interface{} `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

func GetAccessHost(c *gin.Context) string {
	proto := c.Request.Header.Get("X-Forwarded-Proto")
	if proto == "" {
		proto = "http"
	}
	return proto + "://" + c.Request.Host
}

// ToResponse writes the code envelope with the code's HTTP status
// ToResponse 输出统一结构，HTTP 状态码由 code 决定
func (r *Response) ToResponse(codeObj *code.Code) {
	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.MsgIn(GetLang(r.Ctx)),
		Data:    codeObj.Data(),
	}

	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	r.send(codeObj.StatusCode(), content)
}

// ToRepresentation writes a resource representation as the bare body
// ToRepresentation 直接输出资源表示（不包裹统一结构）
func (r *Response) ToRepresentation(statusCode int, body interface{}) {
	r.send(statusCode, body)
}

// Created 输出 201 和 Location 头
func (r *Response) Created(location string, body interface{}) {
	r.Ctx.Header("Location", location)
	r.send(http.StatusCreated, body)
}

// NoContent 输出 204，没有响应体
func (r *Response) NoContent() {
	r.Ctx.Set("status_code", http.StatusNoContent)
	r.Ctx.Status(http.StatusNoContent)
}

// NotModified 输出 304，没有响应体
func (r *Response) NotModified() {
	r.Ctx.Set("status_code", http.StatusNotModified)
	r.Ctx.Status(http.StatusNotModified)
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.Set("status_code", statusCode)
	r.Ctx.JSON(statusCode, content)
}
