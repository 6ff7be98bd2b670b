package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/haierkeys/bookmark-service/pkg/app"
	"github.com/haierkeys/bookmark-service/pkg/code"
	apperrors "github.com/haierkeys/bookmark-service/pkg/errors"
	"github.com/haierkeys/bookmark-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger 创建带日志器的 Recovery 中间件（支持依赖注入）
func RecoveryWithLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		defer func() {
			if err := recover(); err != nil {
				var errorMsg string
				fields := []zap.Field{
					zap.String(logger.FieldTraceID, app.GetTraceID(c)),
					zap.String("router", path),
					zap.String("method", c.Request.Method),
					zap.String("query", query),
					zap.String("ip", c.ClientIP()),
					zap.String("user-agent", c.Request.UserAgent()),
				}

				switch e := err.(type) {
				case error:
					errorMsg = e.Error()
					lg.Error("Recovered from panic", append(fields,
						zap.Error(e),
						zap.String("stack", string(debug.Stack())),
					)...)
				default:
					errorMsg = fmt.Sprintf("%v", e)
					lg.Error("Recovered from unknown panic", append(fields,
						zap.String("panic_value", errorMsg), // 记录 panic 的值
						zap.String("stack", string(debug.Stack())),
					)...)
				}

				// 返回统一的错误响应
				apperrors.ErrorResponseWithCode(c, code.ErrorServerInternal.WithDetails(errorMsg), nil)
				c.Abort()
			}
		}()

		c.Next()
	}
}
