package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/daehyunk/picmarket/internal/api"
	"github.com/daehyunk/picmarket/internal/config"
	"github.com/daehyunk/picmarket/internal/repository"
	"github.com/daehyunk/picmarket/internal/service"
	"github.com/daehyunk/picmarket/internal/storage"
	"github.com/daehyunk/picmarket/internal/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := utils.NewLogger()

	// Load configuration
	cfg := config.LoadConfig()

	// Set up database connection
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		logger.Error("Failed to set up database: %v", err)
		return
	}
	defer db.Close()

	// Object storage is optional; uploads are rejected when it is absent
	var store storage.ObjectStore
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), cfg.Storage)
		if err != nil {
			logger.Error("Failed to set up object storage: %v", err)
			return
		}
		store = s3Store
	} else {
		logger.Info("Object storage not configured, picture uploads disabled")
	}

	// Create repository
	repo := repository.NewPostgresRepository(db)

	// Create service
	svc := service.NewDefaultService(repo, store, cfg.Auth.JWTSecret)

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(api.RequestLogger(logger))

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		logger.Error("Failed to start server: %v", err)
	}
}
