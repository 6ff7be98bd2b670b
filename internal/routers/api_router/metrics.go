package api_router

import (
	"expvar"
	"sync"
	"time"

	"github.com/haierkeys/bookmark-service/internal/app"

	"github.com/gin-gonic/gin"
)

var (
	publishOnce sync.Once
	appVars     = expvar.NewMap("bookmark")
	current     struct {
		sync.RWMutex
		app *app.App
	}
)

// PublishAppVars 在 /debug/vars 中发布应用信息
// 配置重载后重新调用时指向新的 App 实例
func PublishAppVars(a *app.App) {
	current.Lock()
	current.app = a
	current.Unlock()

	publishOnce.Do(func() {
		appVars.Set("version", expvar.Func(func() interface{} {
			current.RLock()
			defer current.RUnlock()
			if current.app == nil {
				return nil
			}
			return current.app.Version()
		}))
		appVars.Set("uptime", expvar.Func(func() interface{} {
			current.RLock()
			defer current.RUnlock()
			if current.app == nil {
				return 0
			}
			return time.Since(current.app.StartTime).Seconds()
		}))
		appVars.Set("dbStats", expvar.Func(func() interface{} {
			current.RLock()
			defer current.RUnlock()
			if current.app == nil || current.app.DB == nil {
				return nil
			}
			sqlDB, err := current.app.DB.DB()
			if err != nil {
				return nil
			}
			return sqlDB.Stats()
		}))
	})
}

// Expvar 导出系统运行时指标
// 函数名: Expvar
// 函数使用说明: 处理获取系统运行时指标 (expvar) 的 HTTP 请求，输出 expvar 导出的 JSON 数据。
// 参数说明:
//   - c *gin.Context: Gin 上下文
//
// 返回值说明:
//   - JSON: 包含系统指标的 JSON 数据
func Expvar(c *gin.Context) {
	expvar.Handler().ServeHTTP(c.Writer, c.Request)
}
