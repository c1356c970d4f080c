// Command api serves the exported box score tables over HTTP.
//
// Usage:
//
//	scoracle-api
//	API_PORT=8080 EXPORT_DIR=/data/export scoracle-api

// @title Scoracle Boxscores API
// @version 1.0.0
// @description Serves the exported NBA games, team statistics and player statistics tables as JSON, with ETag revalidation.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
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

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-boxscores/internal/api"
	"github.com/albapepper/scoracle-boxscores/internal/cache"
	"github.com/albapepper/scoracle-boxscores/internal/config"
	"github.com/albapepper/scoracle-boxscores/internal/export"

	_ "github.com/albapepper/scoracle-boxscores/docs" // swagger docs
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Debug {
		level.Set(slog.LevelDebug)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Tables are read straight from the export directory on each cache miss.
	tables := export.New(cfg.ExportDir, logger)
	logger.Info("Serving export directory", "dir", tables.Dir())

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	appCache.StartEviction(ctx)
	if cfg.CacheEnabled && cfg.RedisURL != "" {
		store, err := cache.NewRedisStore(ctx, cfg.RedisURL, cfg.CacheRedisPrefix)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		appCache.UseShared(store, logger)
	}
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "shared", cfg.RedisURL != "")

	// Create router
	router := api.NewRouter(tables, appCache, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Scoracle Boxscores API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
