package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 捕获 panic，记录日志并返回通用 500 响应（不暴露内部信息）
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := []zap.Field{
				zap.String("router", c.Request.URL.Path),
				zap.String(logger.FieldMethod, c.Request.Method),
				zap.String("query", c.Request.URL.RawQuery),
				zap.String("ip", c.ClientIP()),
				zap.String(logger.FieldTraceID, GetTraceIDFromGin(c)),
				zap.String("stack", string(debug.Stack())),
			}
			if err, ok := rec.(error); ok {
				lg.Error("Recovered from panic", append(fields, zap.Error(err))...)
			} else {
				lg.Error("Recovered from unknown panic", append(fields, zap.String("panic_value", fmt.Sprintf("%v", rec)))...)
			}

			app.NewResponse(c).ToResponse(code.ServerError)
			c.Abort()
		}()

		c.Next()
	}
}
