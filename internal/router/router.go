package router

import (
	"github.com/anonto42/pixelgram/backend/internal/handlers"
	"github.com/anonto42/pixelgram/backend/internal/logger"
	"github.com/anonto42/pixelgram/backend/internal/middleware"
	"github.com/anonto42/pixelgram/backend/internal/models"
	"github.com/anonto42/pixelgram/backend/internal/repositories"
	"github.com/anonto42/pixelgram/backend/internal/services"
	"github.com/anonto42/pixelgram/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// MigrateModels creates or updates the schema for every entity.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.SavedPost{},
		&models.Story{},
		&models.Notification{},
		&models.Message{},
	)
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	if err := MigrateModels(db); err != nil {
		logger.Error("auto migrate failed", "error", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(db)
	storyRepo := repositories.NewStoryRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	messageRepo := repositories.NewPostgresMessageRepository(db)

	// --- Services ---
	toggleService := services.NewToggleService(db)
	commentService := services.NewCommentService(db)
	postService := services.NewPostService(db)
	storyService := services.NewStoryService(db)
	feedService := services.NewFeedService(db, postRepo, userRepo, followRepo, likeRepo, savedPostRepo, commentRepo, storyRepo)
	notificationService := services.NewNotificationService(db, userRepo, notificationRepo)
	messageService := services.NewMessageService(db, userRepo, messageRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	handlers.NewUserHandler(feedService).RegisterUserRoutes(api)
	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(api)
	handlers.NewPostHandler(postService, feedService).RegisterPostRoutes(api)
	handlers.NewLikeHandler(toggleService).RegisterLikeRoutes(api)
	handlers.NewFollowHandler(toggleService).RegisterFollowRoutes(api)
	handlers.NewSavedPostHandler(toggleService).RegisterSavedPostRoutes(api)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api)
	handlers.NewStoryHandler(storyService).RegisterStoryRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	handlers.NewMessageHandler(messageService).RegisterMessageRoutes(api)

	logger.Info("all routes configured")
}
