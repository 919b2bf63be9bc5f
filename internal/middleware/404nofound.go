package middleware

import (
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"

	"github.com/gin-gonic/gin"
)

// NoFound 404 处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		app.NewResponse(c).ToResponse(code.ErrorNotFound)
		c.Abort()
	}
}

// MethodNotAllowed 405 处理；allow 非空时写入 Allow 头
func MethodNotAllowed(allow string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if allow != "" {
			c.Header("Allow", allow)
		}
		app.NewResponse(c).ToResponse(code.ErrorMethodNotAllowed)
		c.Abort()
	}
}
