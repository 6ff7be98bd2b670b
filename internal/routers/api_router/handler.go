// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"
	"errors"

	"github.com/haierkeys/bookmark-service/internal/app"
	"github.com/haierkeys/bookmark-service/internal/middleware"
	pkgapp "github.com/haierkeys/bookmark-service/pkg/app"
	"github.com/haierkeys/bookmark-service/pkg/code"
	apperrors "github.com/haierkeys/bookmark-service/pkg/errors"
	"github.com/haierkeys/bookmark-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError 记录错误日志，包含 Trace ID
// 业务错误（4xx）只记录 Info 级别
func (h *Handler) logError(ctx context.Context, method string, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String(logger.FieldTraceID, middleware.GetTraceID(ctx)),
	}

	var codeErr *code.Code
	if errors.As(err, &codeErr) && codeErr.StatusCode() < 500 {
		h.App.Logger().Info(method, fields...)
		return
	}
	h.App.Logger().Error(method, fields...)
}

// invalidParams 输出参数验证失败响应
func (h *Handler) invalidParams(c *gin.Context, method string, errs pkgapp.ValidErrors) {
	h.App.Logger().Debug(method+".BindAndValid errs",
		zap.Error(errs),
		zap.String(logger.FieldTraceID, pkgapp.GetTraceID(c)),
	)
	apperrors.ErrorResponse(c, code.ErrorInvalidParams.WithDetails(errs.Errors()...))
}
