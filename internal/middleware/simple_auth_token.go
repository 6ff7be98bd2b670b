package middleware

import (
	"crypto/subtle"

	"github.com/haierkeys/bookmark-service/pkg/app"
	"github.com/haierkeys/bookmark-service/pkg/code"
	apperrors "github.com/haierkeys/bookmark-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// SimpleAuthTokenWithConfig 简单 Token 认证中间件，保护私有监听端口
// An empty authToken disables the check.
func SimpleAuthTokenWithConfig(authToken string) gin.HandlerFunc {
	return func(c *gin.Context) {

		if authToken == "" {
			c.Next()
			return
		}

		var token string
		if s, exist := c.GetQuery("authorization"); exist {
			token = s
		} else if s = c.GetHeader("Authorization"); len(s) != 0 {
			token = s
		}
		token = app.ExtractBearer(token)

		if subtle.ConstantTimeCompare([]byte(token), []byte(authToken)) != 1 {
			apperrors.AbortWithCode(c, code.ErrorInvalidAuthToken)
			return
		}

		c.Next()
	}
}
