package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/courseview-backend/internal/handlers"
	"github.com/yungbote/courseview-backend/internal/middleware"
)

type RouterConfig struct {
	AuthMiddleware *middleware.AuthMiddleware
	SiteHandler    *handlers.SiteHandler
	EnrollHandler  *handlers.EnrollHandler
	AdminHandler   *handlers.AdminHandler

	AllowOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.GET("/announcement", cfg.SiteHandler.ListAnnouncements)
		api.GET("/statistic", cfg.SiteHandler.GetStatistics)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/lesson/sync/:term", cfg.EnrollHandler.SyncEnrollments)

	// ===============
	// || Admin     ||
	// ===============
	admin := protected.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	admin.POST("/course/merge", cfg.AdminHandler.MergeCourse)
	admin.POST("/teacher/merge", cfg.AdminHandler.MergeTeacher)
	admin.POST("/course/replace-code", cfg.AdminHandler.ReplaceCourseCode)
	admin.POST("/aggregates/recompute", cfg.AdminHandler.RecomputeAggregates)
	admin.GET("/course/export", cfg.AdminHandler.ExportCourses)

	return router
}
