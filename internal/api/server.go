package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storepress/internal/api/handlers"
	"storepress/internal/api/middleware"
	"storepress/internal/blob"
	"storepress/internal/config"
	"storepress/internal/database"
	"storepress/internal/events"
	"storepress/internal/feed"
	"storepress/internal/images"
	"storepress/internal/logger"
	"storepress/internal/publish"
	"storepress/internal/seo"
	"storepress/internal/store"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(cfg *config.Config, log *logger.Logger, db *database.Database, blobs *blob.Store) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// Pipeline wiring
	productStore := store.New(db.DB, log)
	feedClient := feed.NewClient(cfg.FeedURL, log)
	optimizer := seo.New(cfg, log)
	resolver := images.NewResolver(cfg.ImageRepoAPIURL, log)
	eventBus := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	publisher := publish.New(feedClient, productStore, optimizer, resolver, eventBus, log)

	// Handlers
	publishHandler := handlers.NewPublishHandler(publisher, log)
	productHandler := handlers.NewProductHandler(productStore, log)
	adminHandler := handlers.NewAdminHandler(productStore, log)
	uploadHandler := handlers.NewUploadHandler(blobs, log)
	sitemapHandler := handlers.NewSitemapHandler(productStore, cfg.SiteBaseURL, log)

	// Health check
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "Storepress API is running"})
	})

	router.GET("/sitemap.xml", sitemapHandler.Sitemap)

	// Routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/publish", publishHandler.Publish)
		v1.POST("/delete-product", productHandler.Delete)
		v1.POST("/upload-image", uploadHandler.UploadImage)

		products := v1.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:slug", productHandler.Get)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/init-db", adminHandler.InitDB)
			admin.GET("/check-schema", adminHandler.CheckSchema)
			admin.POST("/migrate-categories", adminHandler.MigrateCategories)
			admin.POST("/migrate-slugs", adminHandler.MigrateSlugs)
			admin.POST("/regenerate-slugs", adminHandler.RegenerateSlugs)
			admin.GET("/debug-slugs", adminHandler.DebugSlugs)
		}
	}

	return &Server{
		config: cfg,
		logger: log,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.server.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
