package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/haierkeys/bookmark-service/pkg/app"
	"github.com/haierkeys/bookmark-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError 统一应用错误结构体
// 包含错误码、消息、详情、追踪ID和时间戳
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Message 错误消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// Data 附加数据，例如字段级验证错误（可选）
	Data interface{} `json:"data,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// Status HTTP 状态码（不序列化）
	Status int `json:"-"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap 实现 errors.Unwrap 接口，支持错误链路追踪
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Status:    c.StatusCode(),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithData 设置附加数据并返回自身（链式调用）
func (e *AppError) WithData(data interface{}) *AppError {
	e.Data = data
	return e
}

// ErrorResponse 统一错误响应处理
// 从 gin.Context 获取 TraceID，将错误转换为 AppError 并返回 JSON 响应
func ErrorResponse(c *gin.Context, err error) {
	traceID := app.GetTraceID(c)

	var appErr *AppError
	if errors.As(err, &appErr) {
		appErr.TraceID = traceID
		write(c, appErr)
		return
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		ErrorResponseWithCode(c, codeErr, err)
		return
	}

	// 未知错误，返回内部错误
	ErrorResponseWithCode(c, code.ErrorServerInternal, err)
}

// ErrorResponseWithCode 使用指定的 Code 对象返回错误响应
func ErrorResponseWithCode(c *gin.Context, codeErr *code.Code, cause error) {
	write(c, &AppError{
		Code:      codeErr.Code(),
		Message:   codeErr.MsgLang(app.GetLang(c)),
		Details:   codeErr.Details(),
		TraceID:   app.GetTraceID(c),
		Status:    codeErr.StatusCode(),
		Cause:     cause,
		Timestamp: time.Now(),
	})
}

// AbortWithCode writes the error response and stops the handler chain
// AbortWithCode 输出错误响应并中止后续处理
func AbortWithCode(c *gin.Context, codeErr *code.Code) {
	ErrorResponseWithCode(c, codeErr, nil)
	c.Abort()
}

func write(c *gin.Context, appErr *AppError) {
	status := appErr.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if appErr.TraceID == "" {
		appErr.TraceID = app.GetTraceID(c)
	}
	c.Set("status_code", status)
	if appErr.Cause != nil {
		_ = c.Error(appErr.Cause)
	}
	c.JSON(status, appErr)
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 从错误链中获取 AppError
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
