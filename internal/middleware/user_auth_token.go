package middleware

import (
	"github.com/haierkeys/bookmark-service/pkg/app"
	"github.com/haierkeys/bookmark-service/pkg/code"
	apperrors "github.com/haierkeys/bookmark-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// UserAuthTokenWithConfig 用户 Token 认证中间件（使用注入的 TokenManager）
// Accepts "Authorization: Bearer <jwt>", a bare token, or the token query parameter.
func UserAuthTokenWithConfig(tm app.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		if s := c.GetHeader("Authorization"); len(s) != 0 {
			token = s
		} else if s, exist := c.GetQuery("token"); exist {
			token = s
		} else if s = c.GetHeader("Token"); len(s) != 0 {
			token = s
		}

		token = app.ExtractBearer(token)
		if token == "" {
			apperrors.AbortWithCode(c, code.ErrorNotUserAuthToken)
			return
		}

		user, err := tm.Parse(token)
		if err != nil {
			apperrors.AbortWithCode(c, code.ErrorInvalidUserAuthToken)
			return
		}
		c.Set(app.UserTokenKey, user)

		c.Next()
	}
}
