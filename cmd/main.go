package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/courseview-backend/internal/data/aggregates"
	"github.com/yungbote/courseview-backend/internal/data/db"
	"github.com/yungbote/courseview-backend/internal/data/repos"
	"github.com/yungbote/courseview-backend/internal/handlers"
	"github.com/yungbote/courseview-backend/internal/middleware"
	"github.com/yungbote/courseview-backend/internal/platform/envutil"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
	"github.com/yungbote/courseview-backend/internal/server"
	"github.com/yungbote/courseview-backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := envutil.Str("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := envutil.Str("JWT_SECRET_KEY", "defaultsecret")
	redisAddr := envutil.Str("REDIS_ADDR", "")
	allowOrigins := envutil.Str("CORS_ALLOW_ORIGINS", "")

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()
	if err := db.AutoMigrateAll(thePG); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}

	// Redis (optional; statistics fall back to direct computation)
	var cache *redis.Client
	if redisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: redisAddr})
	}

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	semesterRepo := repos.NewSemesterRepo(thePG, log)
	teacherRepo := repos.NewTeacherRepo(thePG, log)
	courseRepo := repos.NewCourseRepo(thePG, log)
	formerCodeRepo := repos.NewFormerCodeRepo(thePG, log)
	reviewRepo := repos.NewReviewRepo(thePG, log)
	actionRepo := repos.NewActionRepo(thePG, log)
	enrollCourseRepo := repos.NewEnrollCourseRepo(thePG, log)
	announcementRepo := repos.NewAnnouncementRepo(thePG, log)
	adminOpLogRepo := repos.NewAdminOpLogRepo(thePG, log)

	// Aggregates
	catalogAggregate := aggregates.NewCatalogAggregate(aggregates.CatalogAggregateDeps{
		Base: aggregates.BaseDeps{DB: thePG, Log: log},

		Courses:  courseRepo,
		Teachers: teacherRepo,
		Reviews:  reviewRepo,
		Actions:  actionRepo,
		Enrolls:  enrollCourseRepo,
	})

	// Services
	log.Info("Setting up services...")
	var lessonClient services.LessonClient
	if cfg := services.LessonClientConfigFromEnv(); cfg.BaseURL != "" {
		lessonClient, err = services.NewLessonHTTPClient(log, cfg)
		if err != nil {
			log.Warn("Lesson upstream client init failed", "error", err)
		}
	}
	enrollSyncService := services.NewEnrollSyncService(thePG, log, courseRepo, semesterRepo, formerCodeRepo, enrollCourseRepo)
	exportService := services.NewExportService(thePG, log, courseRepo)
	statsService := services.NewStatsService(thePG, log, cache, userRepo, courseRepo, reviewRepo)
	announcementService := services.NewAnnouncementService(thePG, log, announcementRepo)
	adminService := services.NewAdminService(thePG, log, catalogAggregate, adminOpLogRepo)

	// Handlers
	log.Info("Setting up handlers...")
	siteHandler := handlers.NewSiteHandler(announcementService, statsService)
	enrollHandler := handlers.NewEnrollHandler(enrollSyncService, lessonClient)
	adminHandler := handlers.NewAdminHandler(adminService, exportService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, userRepo, jwtSecretKey)

	// Router
	var origins []string
	if allowOrigins != "" {
		origins = strings.Split(allowOrigins, ",")
	}
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware: authMiddleware,
		SiteHandler:    siteHandler,
		EnrollHandler:  enrollHandler,
		AdminHandler:   adminHandler,
		AllowOrigins:   origins,
	})

	port := envutil.Str("PORT", "8080")
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
