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

	"github.com/lernify/road-api/internal/api"
	"github.com/lernify/road-api/internal/auth"
	"github.com/lernify/road-api/internal/cache"
	"github.com/lernify/road-api/internal/cleanup"
	"github.com/lernify/road-api/internal/config"
	"github.com/lernify/road-api/internal/curriculum"
	"github.com/lernify/road-api/internal/progress"
	"github.com/lernify/road-api/internal/resume"
	"github.com/lernify/road-api/internal/storage"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load .env when present; deployed environments set variables directly
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting road-api",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"driver", cfg.Database.Driver,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Open the storage backend
	repo, err := openRepository(initCtx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected", "driver", cfg.Database.Driver)

	// Connect the token cache. The service degrades to repository lookups
	// when Redis is disabled or unreachable.
	var tokens *cache.TokenCache
	if cfg.Redis.Enabled {
		tokens, err = cache.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TokenTTL)
		if err != nil {
			slog.Warn("redis unavailable, token cache disabled", "error", err)
			tokens = nil
		} else {
			slog.Info("token cache connected", "address", cfg.Redis.Address)
		}
	}

	// Build the curriculum catalog
	catalog, err := loadCatalog(cfg.Curriculum.Dir)
	if err != nil {
		slog.Error("failed to build curriculum", "error", err)
		os.Exit(1)
	}
	slog.Info("curriculum ready", "domains", len(catalog.Domains()))

	// Wire services
	authService := auth.NewService(repo, tokens, cfg.Auth.TokenTTL)
	tracker := progress.NewTracker(catalog, repo)
	resumes := resume.NewService(repo)

	// Initialize cleanup worker
	cleaner := cleanup.NewCleaner(repo, cfg.Cleanup.Interval)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cleanup worker
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, authService, tracker, resumes, catalog, repo, tokens)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	if tokens != nil {
		if err := tokens.Close(); err != nil {
			slog.Error("token cache close error", "error", err)
		}
	}
	repo.Close()

	slog.Info("road-api stopped")
}

// openRepository builds the storage backend selected by configuration.
// The postgres path runs embedded migrations before returning.
func openRepository(ctx context.Context, cfg *config.Config) (storage.Repository, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		return storage.NewSQLiteRepository(cfg.Database.Path)
	default:
		repo, err := storage.NewPostgresRepository(ctx, storage.PostgresConfig{
			DSN: cfg.Database.DSN,
		})
		if err != nil {
			return nil, err
		}
		if err := storage.RunMigrations(ctx, repo.Pool()); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil
	}
}

// loadCatalog builds the catalog from a track directory, or from the
// built-in tracks when no directory is configured.
func loadCatalog(dir string) (*curriculum.Catalog, error) {
	if dir == "" {
		return curriculum.Build(curriculum.DefaultTracks())
	}
	tracks, err := curriculum.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return curriculum.Build(tracks)
}
