package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/glide/internal/registry"
)

// RefresherConfig holds configuration for the refresher.
type RefresherConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Refresher periodically rescans windows so the registry tracks windows that
// opened, closed, or changed titles since the last command.
type Refresher struct {
	interval time.Duration
	registry *registry.Registry
	logger   *slog.Logger
}

// NewRefresher creates a refresher with the given configuration.
func NewRefresher(cfg RefresherConfig, reg *registry.Registry) *Refresher {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Refresher{
		interval: interval,
		registry: reg,
		logger:   logger,
	}
}

// Run starts the refresh loop. Blocks until context is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("registry refresher started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("registry refresher stopped")
			return
		case <-ticker.C:
			r.refresh()
		}
	}
}

// refresh performs a single rescan pass.
func (r *Refresher) refresh() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("refresher panic recovered", "error", err)
		}
	}()

	if err := r.registry.Refresh(); err != nil {
		r.logger.Warn("window rescan failed", "error", err)
	}
}

// RefreshNow triggers an immediate rescan pass.
func (r *Refresher) RefreshNow() {
	r.refresh()
}
