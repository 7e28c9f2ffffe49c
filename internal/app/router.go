package app

import (
	"ery_cursos_backend/internal/config"
	"ery_cursos_backend/internal/middleware"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/pkg/monitoring"

	_ "ery_cursos_backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// Public surface.
	api.GET("/health", c.health.HealthCheck)
	api.POST("/auth/register", c.auth.Register)
	api.POST("/auth/login", c.auth.Login)
	api.GET("/units", c.course.ListUnits)
	api.GET("/units/:key", c.course.GetUnit)
	api.GET("/assignments", c.assignment.List)
	api.GET("/assignments/upcoming", c.assignment.Upcoming)
	api.GET("/assignments/overdue", c.assignment.Overdue)

	// Progress works with or without a token; guests are served from the
	// in-memory tier under user id 0.
	progress := api.Group("/progress", middleware.TryAuthMiddleware(cfg))
	{
		progress.GET("", c.progress.GetOverallProgress)
		progress.GET("/:unit", c.progress.GetUnitProgress)
		progress.POST("/:unit/lessons", c.progress.ToggleLesson)
		progress.POST("/:unit/complete", c.progress.CompleteUnit)
		progress.DELETE("/:unit", c.progress.ResetUnit)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	authed.Use(middleware.ActivityMiddleware(repos.user))
	{
		authed.GET("/me", c.user.Me)
		authed.GET("/notifications", c.notification.MyFeed)
		authed.GET("/grades", c.grade.MyGrades)
		authed.POST("/submissions", c.submission.Upload)
		authed.GET("/submissions", c.submission.MySubmissions)
	}

	// Grading queue is open to evaluators and assistants as well as the
	// administrator.
	grading := authed.Group("/admin", middleware.RoleMiddleware(model.Evaluator, model.Assistant))
	{
		grading.GET("/submissions/pending", c.submission.Pending)
		grading.POST("/submissions/:id/grade", c.grade.GradeSubmission)
		grading.GET("/grades/stats", c.grade.Stats)
		grading.GET("/grades/export", c.grade.ExportCSV)
	}

	admin := authed.Group("/admin", middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.List)
		admin.PUT("/users/:id/role", c.user.ChangeRole)
		admin.PUT("/users/:id/active", c.user.SetActive)

		admin.PUT("/assignments/:id/deadline", c.assignment.SetDeadline)
		admin.DELETE("/assignments/:id/deadline", c.assignment.ClearDeadline)
		admin.PUT("/assignments/deadlines", c.assignment.BulkUpdateDeadlines)
		admin.PUT("/assignments/units/:unit/deadlines", c.assignment.SetUnitDeadlines)

		admin.POST("/notifications", c.notification.Send)
		admin.GET("/notifications", c.notification.History)
	}
}
