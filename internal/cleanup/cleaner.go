package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/lernify/road-api/internal/storage"
)

// Cleaner handles periodic removal of expired auth tokens
type Cleaner struct {
	repo     storage.Repository
	interval time.Duration
}

// NewCleaner creates a new cleanup worker
func NewCleaner(repo storage.Repository, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &Cleaner{
		repo:     repo,
		interval: interval,
	}
}

// Start begins the cleanup worker in a goroutine
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

// run is the main loop for the cleanup worker
func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

// cleanup deletes tokens that have passed their expiry
func (c *Cleaner) cleanup(ctx context.Context) {
	slog.Debug("running cleanup cycle")

	deleted, err := c.repo.DeleteExpiredTokens(ctx)
	if err != nil {
		slog.Error("failed to delete expired tokens", "error", err)
		return
	}

	if deleted == 0 {
		slog.Debug("no expired tokens found")
		return
	}

	slog.Info("expired tokens deleted", "count", deleted)
}
