// Package backend selects and initializes the configured storage backend.
package backend

import (
	"context"
	"fmt"

	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// Open builds the storage.Store named by cfg.DataBackend. The returned
// cleanup function closes the store and is safe to call once.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (storage.Store, func() error, error) {
	switch cfg.DataBackend {
	case config.BackendSQLite:
		store, err := storage.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLitePath)
		return store, store.Close, nil

	case config.BackendPostgres:
		store, err := storage.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize postgres backend: %w", err)
		}
		logger.Info("Initialized Postgres backend")
		return store, store.Close, nil

	case config.BackendMemory:
		store := storage.NewMemoryStore()
		logger.Info("Initialized memory backend")
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
	}
}
