package app

import (
	"github.com/haierkeys/bookmark-service/pkg/code"

	"github.com/gin-gonic/gin"
)

const (
	// TraceIDKey key of the trace id in gin.Context and request context
	// TraceIDKey gin.Context 与 request.Context 中存储 Trace ID 的键
	TraceIDKey = "trace_id"
	// LangKey key of the negotiated message language in gin.Context
	// LangKey gin.Context 中存储消息语言的键
	LangKey = "lang"
	// TransKey key of the validator translator in gin.Context
	// TransKey gin.Context 中存储验证翻译器的键
	TransKey = "trans"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

func GetAccessHost(c *gin.Context) string {
	accessProto := ""
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto == "" {
		accessProto = "http" + "://"
	} else {
		accessProto = proto + "://"
	}
	return accessProto + c.Request.Host
}

// GetTraceID gets the trace id stored by the trace middleware
// GetTraceID 从 gin.Context 获取 Trace ID
func GetTraceID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if id, exists := c.Get(TraceIDKey); exists {
		if traceID, ok := id.(string); ok {
			return traceID
		}
	}
	return ""
}

// GetLang gets the negotiated message language
// GetLang 获取协商后的消息语言
func GetLang(c *gin.Context) string {
	if c == nil {
		return code.FALLBACK_LNG
	}
	return c.GetString(LangKey)
}

// ToResponse writes data as the response body with the HTTP status bound to codeObj.
// Statuses that forbid a body (204) only write the header.
// ToResponse 以 codeObj 绑定的 HTTP 状态码输出数据；不允许响应体的状态码（204）只写响应头
func (r *Response) ToResponse(codeObj *code.Code, data interface{}) {
	statusCode := codeObj.StatusCode()
	r.Ctx.Set("status_code", statusCode)

	if data == nil {
		r.Ctx.Status(statusCode)
		r.Ctx.Writer.WriteHeaderNow()
		return
	}
	r.Ctx.JSON(statusCode, data)
}
