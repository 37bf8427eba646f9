package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/mediacatalog/backend/docs"
	"github.com/mediacatalog/backend/internal/auth"
	"github.com/mediacatalog/backend/internal/config"
	"github.com/mediacatalog/backend/internal/handlers"
	"github.com/mediacatalog/backend/internal/logger"
	"github.com/mediacatalog/backend/internal/middleware"
	"github.com/mediacatalog/backend/internal/repositories"
	"github.com/mediacatalog/backend/internal/search"
	"github.com/mediacatalog/backend/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Media Catalog API
// @version 1.0
// @description API for browsing videos, video embeds and external links, submitting content and moderating submissions

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Media Catalog Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	// Initialize repositories
	videoRepo := repositories.NewVideoRepository(db, logger.Logger)
	embedRepo := repositories.NewVideoEmbedRepository(db, logger.Logger)
	linkRepo := repositories.NewExternalLinkRepository(db, logger.Logger)
	categoryRepo := repositories.NewCategoryRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	favoriteRepo := repositories.NewFavoriteRepository(db)
	reviewRepo := repositories.NewReviewRepository(db, logger.Logger)
	submissionRepo := repositories.NewSubmissionRepository(db, logger.Logger)
	analyticsRepo := repositories.NewAnalyticsRepository(db)

	// Initialize services
	limits := search.Limits{Default: cfg.Search.DefaultLimit, Max: cfg.Search.MaxLimit}
	catalogService := services.NewCatalogService(videoRepo, embedRepo, linkRepo, categoryRepo, tagRepo, limits, logger.Logger)
	favoriteService := services.NewFavoriteService(favoriteRepo, logger.Logger)
	reviewService := services.NewReviewService(reviewRepo, videoRepo, logger.Logger)
	submissionService := services.NewSubmissionService(submissionRepo, logger.Logger)
	moderationService := services.NewModerationService(submissionRepo, cfg.Moderation.AllowTerminalSwitch, logger.Logger)
	analyticsService := services.NewAnalyticsService(analyticsRepo, logger.Logger)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger.Logger)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, logger.Logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger.Logger)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, logger.Logger)
	adminHandler := handlers.NewAdminHandler(submissionService, moderationService, logger.Logger)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, logger.Logger)
	healthHandler := handlers.NewHealthHandler(db, logger.Logger)

	// Initialize auth middleware
	privilege := auth.NewPrivilegeResolver(cfg.Moderation.ModeratorRole, cfg.Moderation.AdminEmail, cfg.Moderation.LegacyEmailCheck)
	tokenValidator := auth.NewTokenValidator(cfg.JWT.Secret, privilege)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB
	r.Use(metrics.Middleware)

	r.Get("/health", healthHandler.Health)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.RecordDBPoolStats(db.Stats())
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP(w, req)
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(tokenValidator))

		catalogHandler.RegisterRoutes(r)
		reviewHandler.RegisterRoutes(r)
		favoriteHandler.RegisterRoutes(r)
		submissionHandler.RegisterRoutes(r)
		adminHandler.RegisterRoutes(r)
		analyticsHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "catalog_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
