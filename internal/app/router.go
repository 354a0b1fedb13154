package app

import (
	"careerquest_portal/docs"
	"careerquest_portal/internal/middleware"
	"careerquest_portal/internal/util"
	"careerquest_portal/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// configMiddleware 把当前生效的配置放入请求上下文，供令牌校验使用
func (a *App) configMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(util.ContextConfigKey, a.Config())
		c.Next()
	}
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录，有令牌时识别当前会话)
	a.registerPublicRoutes(router, c)

	// 2. 需要会话的路由
	sessionGroup := router.Group("/api")
	sessionGroup.Use(middleware.SessionMiddleware())
	{
		a.registerQuestRoutes(sessionGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	router.GET("/api/health", c.health.HealthCheck)

	public := router.Group("/api")
	public.Use(middleware.OptionalSessionMiddleware())
	{
		public.GET("/connection", c.session.Connection)
		public.GET("/page", c.session.Page)
		public.POST("/session/login", c.session.Login)
		public.POST("/session/logout", c.session.Logout)
	}
}

func (a *App) registerQuestRoutes(group *gin.RouterGroup, c *controllers) {
	quest := group.Group("/quest")
	{
		quest.POST("/start", c.quest.Start)
		quest.POST("/tasks/:id/open", c.quest.OpenTask)
		quest.PUT("/answers/:id", c.quest.SaveAnswer)
		quest.POST("/complete", c.quest.Complete)
		quest.POST("/cancel", c.quest.Cancel)
	}

	group.POST("/results/return", c.quest.ReturnToDashboard)
	group.GET("/dashboard/stats", c.quest.DashboardStats)
}
