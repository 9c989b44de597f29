package main

import (
	"context"
	"log"

	"storepress/internal/api"
	"storepress/internal/blob"
	"storepress/internal/config"
	"storepress/internal/database"
	"storepress/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	// Image storage is optional; uploads report unavailable without it.
	var blobs *blob.Store
	if cfg.ImageBucket != "" {
		blobs, err = blob.NewStore(context.Background(), cfg, logger)
		if err != nil {
			logger.Fatal("failed to initialize image storage", "error", err)
		}
		defer blobs.Close()
	}

	// Initialize API server
	server := api.New(cfg, logger, db, blobs)

	// Start server
	logger.Info("starting API server", "port", cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("failed to start server", "error", err)
	}
}
