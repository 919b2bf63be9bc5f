package middleware

import (
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/code"

	"github.com/gin-gonic/gin"
)

// UserAuthTokenWithConfig verifies "Authorization: Bearer <token>" and stores the claims
// UserAuthTokenWithConfig 校验 Bearer Token 并把用户信息写入上下文，失败返回 401
func UserAuthTokenWithConfig(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		token := app.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		user, err := app.ParseTokenWithKey(token, secretKey)
		if err != nil {
			response.ToResponse(code.ErrorInvalidAuthToken)
			c.Abort()
			return
		}
		c.Set(app.UserTokenKey, user)

		c.Next()
	}
}
