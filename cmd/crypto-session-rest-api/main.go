// cmd/crypto-session-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/crypto-session-service/internal/api/rest/v1"
	"github.com/MGTheTrain/crypto-session-service/internal/app"
	"github.com/MGTheTrain/crypto-session-service/internal/domain/sessions"
	"github.com/MGTheTrain/crypto-session-service/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-session-service/internal/infrastructure/persistence"
	"github.com/MGTheTrain/crypto-session-service/internal/infrastructure/persistence/models"
	"github.com/MGTheTrain/crypto-session-service/internal/pkg/config"
	"github.com/MGTheTrain/crypto-session-service/internal/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	sessionService, pipelineService, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, sessionService, pipelineService, log)
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (sessions.SessionService, sessions.PipelineService, error) {
	var recordRepo sessions.SessionRecordRepository

	if cfg.Service.AuditEnabled {
		// Initialize database
		db, err := persistence.NewDBConnection(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create db connection: %w", err)
		}

		// Run migrations
		if err := db.AutoMigrate(&models.SessionRecordModel{}); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
		log.Info("Database migrations completed successfully")

		recordRepo, err = persistence.NewGormSessionRecordRepository(db, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create session record repository: %w", err)
		}
	}

	// Initialize the algorithm registry
	registry, err := cryptography.NewRegistry(log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create registry: %w", err)
	}

	// Initialize services
	sessionService, pipelineService, err := app.NewSessionServices(registry, recordRepo, log, cfg.Service.EnableStats)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session services: %w", err)
	}

	log.Info("Application services initialized successfully")
	return sessionService, pipelineService, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, sessionService sessions.SessionService, pipelineService sessions.PipelineService, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r, sessionService, pipelineService)

	// Expose Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Service.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Service.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal %v, initiating graceful shutdown", sig)
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// Release transforms of any sessions still live
	if err := sessionService.DestroyAll(context.Background()); err != nil {
		log.Warn("Failed to destroy remaining sessions: ", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
