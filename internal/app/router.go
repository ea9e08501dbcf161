package app

import (
	"interview_prep_backend/docs"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/middleware"
	"interview_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	registerAuthorizedRoutes(authGroup, c)
}

func registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/questions", c.question.ListQuestions)
		public.GET("/questions/:id", c.question.GetQuestion)
	}
}

func registerAuthorizedRoutes(api *gin.RouterGroup, c *controllers) {
	api.GET("/auth/me", c.auth.Me)

	users := api.Group("/users")
	{
		users.PUT("/profile", c.user.UpdateProfile)
		users.DELETE("/resume", c.user.DeleteResume)
	}

	api.POST("/questions/submit/:id", c.question.SubmitAnswer)
	api.POST("/upload", c.upload.Upload)
	api.POST("/resume/created", c.resume.Created)

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/stats", c.dashboard.GetStats)
		dashboard.GET("/activity", c.dashboard.GetActivity)
		dashboard.GET("/recent", c.dashboard.GetRecent)
		dashboard.GET("/performance", c.dashboard.GetPerformance)
		dashboard.POST("/interview/complete", c.dashboard.CompleteInterview)
	}

	interview := api.Group("/interview")
	{
		interview.GET("/tracks", c.interview.ListTracks)
		interview.POST("/evaluate", c.interview.Evaluate)
		interview.GET("/ws", c.interview.HandleWS)
	}
}
