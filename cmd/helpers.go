package cmd

import (
	"fmt"
	"io"

	"github.com/ziadkadry99/p5embed/internal/config"
	"github.com/ziadkadry99/p5embed/internal/db"
	"github.com/ziadkadry99/p5embed/internal/store"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `p5embed init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore opens the configured sketch store. The returned closer
// releases the backing database, if any.
func openStore(cfg *config.Config) (store.Store, io.Closer, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		database, err := db.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		return store.NewSQLite(database), database, nil
	default:
		return store.NewMemory(), nopCloser{}, nil
	}
}
