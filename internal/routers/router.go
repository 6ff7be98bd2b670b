package routers

import (
	"github.com/haierkeys/bookmark-service/internal/app"
	"github.com/haierkeys/bookmark-service/internal/middleware"
	"github.com/haierkeys/bookmark-service/internal/routers/api_router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// NewRouter 创建公开 API 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	r := gin.New()

	r.Use(middleware.RecoveryWithLogger(lg))
	r.Use(middleware.TraceMiddlewareWithConfig(middleware.TracerConfig{
		Enabled: cfg.Tracer.Enabled,
		Header:  cfg.Tracer.Header,
	})) // Trace ID 中间件
	r.Use(middleware.AccessLogWithLogger(lg))
	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig(cfg)))
	r.Use(middleware.AppInfoWithVersion(app.Name, appContainer.Version().Version))
	r.Use(middleware.LangWithTranslator(uni))
	r.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))

	// 创建 Handlers（注入 App Container）
	authHandler := api_router.NewAuthHandler(appContainer)
	userHandler := api_router.NewUserHandler(appContainer)
	bookmarkHandler := api_router.NewBookmarkHandler(appContainer)
	healthHandler := api_router.NewHealthHandler(appContainer)
	versionHandler := api_router.NewVersionHandler(appContainer)

	r.GET("/health", healthHandler.Check)
	r.GET("/version", versionHandler.ServerVersion)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	userAuth := middleware.UserAuthTokenWithConfig(appContainer.TokenManager)

	users := r.Group("/users", userAuth)
	{
		users.GET("/me", userHandler.Me)
		users.PATCH("", userHandler.Edit)
	}

	bookmarks := r.Group("/bookmarks", userAuth)
	{
		bookmarks.GET("", bookmarkHandler.List)
		bookmarks.POST("", bookmarkHandler.Create)
		bookmarks.GET("/:id", bookmarkHandler.Get)
		bookmarks.PATCH("/:id", bookmarkHandler.Edit)
		bookmarks.DELETE("/:id", bookmarkHandler.Delete)
	}

	r.NoRoute(middleware.NoFound())

	return r
}

// corsConfig 根据配置生成跨域设置，allow-origins 为空或包含 * 时允许全部来源
func corsConfig(cfg *app.AppConfig) cors.Config {
	traceHeader := cfg.Tracer.Header
	if traceHeader == "" {
		traceHeader = middleware.DefaultTraceIDHeader
	}

	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Token", "lang", traceHeader},
		ExposeHeaders:    []string{traceHeader, "X-App-Version"},
		AllowCredentials: false,
		MaxAge:           cfg.GetCorsMaxAge(),
	}

	allowAll := len(cfg.Cors.AllowOrigins) == 0
	for _, origin := range cfg.Cors.AllowOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
	}
	if allowAll {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.Cors.AllowOrigins
	}
	return c
}
