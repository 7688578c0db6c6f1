package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nba-possession-sim/internal/app/games"
	"github.com/preston-bernstein/nba-possession-sim/internal/config"
	"github.com/preston-bernstein/nba-possession-sim/internal/store"
)

// gameStore is a games.Store the server owns and closes on shutdown.
type gameStore interface {
	games.Store
	Close() error
}

// buildStore opens the configured store. ready is nil when the store has nothing to probe.
func buildStore(cfg config.Config, logger *slog.Logger) (gameStore, func(context.Context) error, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		sqlite, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		if logger != nil {
			logger.Info("using sqlite store", slog.String("path", cfg.SQLitePath))
		}
		return sqlite, sqlite.Ping, nil
	case config.StoreMemory, "":
		return store.NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
