package cmd

import (
	"errors"
	"fmt"

	"github.com/kozaktomas/photo-archive/internal/config"
	"github.com/kozaktomas/photo-archive/internal/database"
	"github.com/kozaktomas/photo-archive/internal/database/mariadb"
	"github.com/kozaktomas/photo-archive/internal/database/mock"
	"github.com/kozaktomas/photo-archive/internal/database/postgres"
	"github.com/kozaktomas/photo-archive/internal/event"
)

// openBackend registers the storage backend selected by the configuration,
// or the demo archive when --demo is set. The returned function releases it.
func openBackend(cfg *config.Config) (func(), error) {
	log := event.Log
	release := func() { database.RegisterBackend(nil, 0) }

	if demoMode {
		database.RegisterBackend(mock.NewDemoBackend(), cfg.Search.CacheTTL)
		log.Info("Using in-memory demo archive")
		return release, nil
	}

	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required (or use --demo)")
	}

	switch cfg.Database.Driver {
	case "mysql":
		log.Info("Connecting to MariaDB database...")
		pool, err := mariadb.Initialize(&cfg.Database, cfg.Search.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MariaDB: %w", err)
		}
		return func() {
			release()
			_ = pool.Close()
		}, nil
	default:
		log.Info("Connecting to PostgreSQL database...")
		if err := postgres.Initialize(&cfg.Database, cfg.Search.CacheTTL); err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		return func() {
			release()
			if pool := postgres.GetGlobalPool(); pool != nil {
				_ = pool.Close()
			}
		}, nil
	}
}
