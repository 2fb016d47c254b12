package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/user/cookie-table/internal/adapter/postgres"
	redis_adapter "github.com/user/cookie-table/internal/adapter/redis"
	"github.com/user/cookie-table/internal/delivery/http/handler"
	"github.com/user/cookie-table/internal/delivery/http/router"
	"github.com/user/cookie-table/internal/usecase"
	"github.com/user/cookie-table/pkg/config"
	"github.com/user/cookie-table/pkg/logger"
	"github.com/user/cookie-table/pkg/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, reading environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}

	// --- Logger ---
	logLevel := logger.ParseLevel(cfg.LogLevel)
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()
	slog.Info("Metrics initialized")

	// --- Database Connections ---
	ctx := context.Background()

	// PostgreSQL
	dbpool, err := pgxpool.New(ctx, cfg.PostgresURL())
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	slog.Info("PostgreSQL connection pool established")

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("Redis connection established")

	// --- Schema ---
	if cfg.InstallSchema {
		if err := postgres.NewSchema(dbpool).Install(ctx); err != nil {
			slog.Error("Unable to install catalog schema", "error", err)
			os.Exit(1)
		}
		slog.Info("Catalog schema installed")
	}

	// --- Repositories ---
	cookieRepo := postgres.NewCookieRepo(dbpool)
	categoryRepo := postgres.NewCategoryRepo(dbpool)
	sessionRepo := redis_adapter.NewSessionRepo(rdb, cfg.SessionTTL)

	// --- Use Cases ---
	catalog := usecase.NewCatalog(cookieRepo, categoryRepo)

	// --- HTTP Server ---
	apiHandler, err := handler.NewHandler(catalog, sessionRepo, dbpool)
	if err != nil {
		slog.Error("Unable to build HTTP handler", "error", err)
		os.Exit(1)
	}
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
		os.Exit(1)
	}
}
