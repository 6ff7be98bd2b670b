package middleware

import (
	"context"

	"github.com/haierkeys/bookmark-service/pkg/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// DefaultTraceIDHeader 默认的 Trace ID 请求头名称
const DefaultTraceIDHeader = "X-Trace-ID"

type traceIDCtxKey struct{}

// TracerConfig 追踪中间件配置
type TracerConfig struct {
	Enabled bool
	Header  string
}

// TraceMiddlewareWithConfig 创建请求追踪中间件
// 1. 从请求头获取或生成唯一的 Trace ID
// 2. 将 Trace ID 注入到 gin.Context 和 request.Context
// 3. 在响应头中返回 Trace ID
// 4. 为请求开启 opentracing span，gorm 的 SQL span 挂在其下
func TraceMiddlewareWithConfig(cfg TracerConfig) gin.HandlerFunc {
	headerName := cfg.Header
	if headerName == "" {
		headerName = DefaultTraceIDHeader
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		traceID := c.GetHeader(headerName)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		c.Set(app.TraceIDKey, traceID)
		c.Header(headerName, traceID)

		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), c.Request.Method+" "+c.FullPath())
		defer span.Finish()
		span.SetTag("trace_id", traceID)
		ext.HTTPMethod.Set(span, c.Request.Method)
		ext.HTTPUrl.Set(span, c.Request.URL.Path)

		c.Request = c.Request.WithContext(context.WithValue(ctx, traceIDCtxKey{}, traceID))

		c.Next()

		ext.HTTPStatusCode.Set(span, uint16(c.Writer.Status()))
		if c.Writer.Status() >= 500 {
			ext.Error.Set(span, true)
		}
	}
}

// GetTraceID 从 context.Context 获取 Trace ID
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(traceIDCtxKey{}).(string); ok {
		return id
	}
	return ""
}
