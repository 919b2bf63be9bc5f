package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"

	"github.com/gin-gonic/gin"
)

// ContextTimeout 为请求上下文设置超时，处理器未写响应且已超时时返回 503
func ContextTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			app.NewResponse(c).ToResponse(code.ErrorRequestTimeout)
		}
	}
}
