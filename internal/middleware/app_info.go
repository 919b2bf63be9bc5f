package middleware

import (
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"

	"github.com/gin-gonic/gin"
)

// AppInfoWithConfig 写入应用名称、版本和访问地址到上下文，并通过响应头暴露版本
func AppInfoWithConfig(name, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))
		c.Header("X-App-Version", version)

		c.Next()
	}
}
