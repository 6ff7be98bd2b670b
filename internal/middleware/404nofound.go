package middleware

import (
	"github.com/haierkeys/bookmark-service/pkg/code"
	apperrors "github.com/haierkeys/bookmark-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NoFound 404 handler
// NoFound 404 处理
func NoFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		apperrors.AbortWithCode(c, code.ErrorNotFoundAPI)
	}
}
