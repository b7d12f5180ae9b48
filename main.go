package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kp3ventures/coverkeep-backend/config"
	"github.com/kp3ventures/coverkeep-backend/handler"
	"github.com/kp3ventures/coverkeep-backend/middleware"
	"github.com/kp3ventures/coverkeep-backend/pkg/logger"
	"github.com/kp3ventures/coverkeep-backend/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize services
	mediaSvc, err := service.NewMediaService(&cfg.Media)
	if err != nil {
		slog.Error("failed to initialize media service", "error", err)
		os.Exit(1)
	}

	// Ensure photo bucket exists
	if err := mediaSvc.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure media bucket", "error", err)
		os.Exit(1)
	}

	identifySvc := service.NewIdentifyService(&cfg.Identify)
	assistant := service.NewAssistant()

	productStore := service.NewProductStore()
	claimSessions := service.NewClaimSessions(assistant)
	scanFlows := service.NewScanFlows()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	productHandler := handler.NewProductHandler(productStore, identifySvc, mediaSvc, scanFlows)
	claimHandler := handler.NewClaimHandler(claimSessions, productStore, assistant)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS for the mobile client
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.GET("/products", productHandler.List)
		protected.POST("/products", productHandler.Create)
		protected.POST("/products/identify", productHandler.Identify)
		protected.GET("/products/:id", productHandler.Get)
		protected.PATCH("/products/:id", productHandler.Update)
		protected.DELETE("/products/:id", productHandler.Delete)
		protected.POST("/products/:id/photo", productHandler.UploadPhoto)

		protected.GET("/claims", claimHandler.List)
		protected.POST("/claims/draft", claimHandler.CreateDraft)
		protected.POST("/claims/ai-assist", claimHandler.Assist)
		protected.POST("/claims/:id/submit", claimHandler.Submit)
		protected.PATCH("/claims/:id", claimHandler.Update)
		protected.DELETE("/claims/current", claimHandler.End)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
