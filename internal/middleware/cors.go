package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// exposedHeaders 浏览器端需要读取的响应头
var exposedHeaders = strings.Join([]string{
	"X-Access-Token", "Location", "ETag", "Last-Modified", "Cache-Control", DefaultTraceIDHeader,
}, ", ")

// Cors 跨域中间件，allowOrigins 为空或包含 "*" 时允许任意来源
func Cors(allowOrigins []string) gin.HandlerFunc {
	allowAll := len(allowOrigins) == 0
	allowed := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, If-None-Match, If-Modified-Since, lang")
			c.Header("Access-Control-Expose-Headers", exposedHeaders)
			c.Header("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
