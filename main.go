package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"propdastak/internal/config"
	"propdastak/internal/container"
	"propdastak/internal/handler"
	"propdastak/internal/middleware"
	"propdastak/internal/ws"
	"propdastak/pkg/database"
	"propdastak/pkg/logger"
	"propdastak/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db          *database.PostgresDB
	redisClient *redis.Client
	apiServer   *http.Server
	viewTracker *ws.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources. The API server stops first, then
// the view tracker drains its in-flight recordings, and only then do the
// stores close underneath them.
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errors []error

	r.log.Info("Starting graceful shutdown...")

	if r.apiServer != nil {
		r.log.Info("Shutting down API server...")
		if err := r.apiServer.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown API server")
			errors = append(errors, fmt.Errorf("API server shutdown: %w", err))
		} else {
			r.log.Info("API server shutdown complete")
		}
	}

	if r.viewTracker != nil {
		r.log.Info("Shutting down view tracker...")
		if err := r.viewTracker.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown view tracker")
			errors = append(errors, fmt.Errorf("view tracker shutdown: %w", err))
		} else {
			r.log.Info("View tracker shutdown complete")
		}
	}

	if r.redisClient != nil {
		r.log.Info("Closing Redis connection...")
		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errors = append(errors, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed successfully")
		}
	}

	if r.db != nil {
		r.log.Info("Closing database connection pool...")
		r.db.Close()
		r.log.Info("Database connection pool closed successfully")
	}

	if len(errors) > 0 {
		r.log.WithField("error_count", len(errors)).Error("Cleanup completed with errors")
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errors), errors)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":              cfg.Port,
		"view_tracker_port": cfg.ViewTrackerPort,
		"log_level":         cfg.LogLevel,
		"environment":       cfg.Environment,
	}).Info("Starting propdastak server")

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	c, err := container.New(cfg, log, db)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	router := setupRouter(c)

	apiServer := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	viewTracker := ws.NewServer(cfg.ViewTrackerPort, c.Services.Tracking, log)

	resources := &Resources{
		db:          db,
		redisClient: c.RedisClient,
		apiServer:   apiServer,
		viewTracker: viewTracker,
		log:         log,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	serverErrChan := make(chan error, 2)
	go func() {
		log.Info("API server starting on port " + cfg.Port)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("API server error occurred")
			serverErrChan <- err
		}
	}()
	go func() {
		log.Info("View tracker starting on port " + cfg.ViewTrackerPort)
		if err := viewTracker.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("View tracker error occurred")
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	log.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(c *container.Container) *chi.Mux {
	cfg := c.GetConfig()
	log := c.GetLogger()
	services := c.Services

	r := chi.NewRouter()

	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "Range"},
		ExposedHeaders:   []string{"Content-Length", "Content-Range", "Accept-Ranges"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	healthHandler := handler.NewHealthHandler(c.DB, c.RedisClient, log)
	userHandler := handler.NewUserHandler(services.User, log)
	propertyHandler := handler.NewPropertyHandler(services.Property, services.Tracking, services.Media, log)
	leadHandler := handler.NewLeadHandler(services.Lead, log)
	mediaHandler := handler.NewMediaHandler(services.Media, log)

	auth := middleware.Auth(services.Token, log)

	healthHandler.RegisterRoutes(r)

	r.Route("/api", func(r chi.Router) {
		userHandler.RegisterRoutes(r, auth)
		propertyHandler.RegisterRoutes(r, auth)
		leadHandler.RegisterRoutes(r)
		mediaHandler.RegisterRoutes(r)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
