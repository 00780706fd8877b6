package main

import (
	"github.com/anonto42/pixelgram/backend/internal/logger"
	"github.com/anonto42/pixelgram/backend/internal/router"
	"github.com/anonto42/pixelgram/backend/pkg/config"
	"github.com/anonto42/pixelgram/backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(&logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("starting pixelgram", "env", cfg.Env, "port", cfg.Port)

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		return
	}
	defer config.CloseDB(db)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
