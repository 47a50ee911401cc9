package app

import (
	"tutoria_backend/docs"
	"tutoria_backend/internal/config"
	"tutoria_backend/internal/middleware"
	"tutoria_backend/internal/model"
	"tutoria_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// Catalog
	rg.GET("/courses", c.catalog.ListCourses)
	rg.GET("/courses/:id", c.catalog.GetCourse)

	// Diagnostics
	rg.GET("/diagnostics/:id/questions", c.diagnostic.GetStudentQuestions)
	rg.POST("/diagnostics/:id/start", c.diagnostic.StartSession)
	rg.GET("/diagnostics/:id/result", c.diagnostic.GetResult)
	rg.POST("/diagnostics/sessions/:sessionId/answer", c.diagnostic.SelectAnswer)
	rg.POST("/diagnostics/sessions/:sessionId/skip", c.diagnostic.Skip)
	rg.POST("/diagnostics/sessions/:sessionId/next", c.diagnostic.Next)
	rg.POST("/diagnostics/sessions/:sessionId/finalize", c.diagnostic.Finalize)

	// Progress
	rg.POST("/progress/completions", c.progress.RecordCompletion)
	rg.GET("/modules/:id/progress", c.progress.GetModuleProgress)
	rg.GET("/courses/:id/progress", c.progress.GetCourseProgress)
	rg.GET("/courses/:id/next-lesson", c.progress.GetNextLesson)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		// Catalog authoring
		teacher.POST("/courses", c.catalog.CreateCourse)
		teacher.POST("/modules", c.catalog.CreateModule)
		teacher.POST("/lessons", c.catalog.CreateLesson)

		// Diagnostic authoring
		teacher.POST("/diagnostics", c.diagnostic.CreateDiagnostic)
		teacher.GET("/diagnostics", c.diagnostic.ListDiagnostics)
		teacher.POST("/diagnostics/:id/publish", c.diagnostic.PublishDiagnostic)
		teacher.POST("/diagnostics/:id/questions", c.diagnostic.CreateQuestion)
		teacher.GET("/diagnostics/:id/questions", c.diagnostic.ListQuestions)
		teacher.DELETE("/diagnostics/questions/:questionId", c.diagnostic.DeleteQuestion)
	}
}
