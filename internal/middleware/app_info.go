package middleware

import (
	"github.com/haierkeys/bookmark-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// AppInfoWithVersion 注入应用名称、版本与访问地址，并在响应头中返回版本
func AppInfoWithVersion(name, version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))
		c.Header("X-App-Version", version)

		c.Next()
	}
}
