package middleware

import (
	"math"
	"strconv"

	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter 按路由令牌桶限流，桶空时返回 429 并带 Retry-After
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bucket, ok := l.GetBucket(l.Key(c)); ok {
			if bucket.TakeAvailable(1) == 0 {
				retry := math.Ceil(1 / bucket.Rate())
				c.Header("Retry-After", strconv.Itoa(int(retry)))
				app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
