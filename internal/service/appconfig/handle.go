// Package appconfig holds the installation-wide configuration row in memory.
// It is loaded once at startup and handed to the components that need it.
package appconfig

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

type configRepo interface {
	GetOrCreateAppConfig(ctx context.Context) (domain.AppConfig, error)
}

// Handle serves the current AppConfig without touching the store.
type Handle struct {
	repo configRepo
	log  *slog.Logger

	mu  sync.RWMutex
	cfg domain.AppConfig
}

// Load reads the configuration row, creating it with defaults when the table
// is empty, and returns a Handle over it.
func Load(ctx context.Context, log *slog.Logger, repo configRepo) (*Handle, error) {
	h := &Handle{repo: repo, log: log.With("service", "appconfig")}
	if err := h.Reload(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

// Get returns a copy of the loaded configuration.
func (h *Handle) Get() domain.AppConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg
}

// Reload re-reads the configuration row. On error the previous value stays.
func (h *Handle) Reload(ctx context.Context) error {
	cfg, err := h.repo.GetOrCreateAppConfig(ctx)
	if err != nil {
		return fmt.Errorf("load app config: %w", err)
	}

	h.mu.Lock()
	h.cfg = cfg
	h.mu.Unlock()

	h.log.InfoContext(ctx, "app config loaded",
		slog.Int64("id", cfg.ID),
		slog.Bool("panel_open", cfg.PanelOpen),
		slog.String("numbering", string(cfg.Numbering)),
	)
	return nil
}
