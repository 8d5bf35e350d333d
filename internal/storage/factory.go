// internal/storage/factory.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hexclash/tankagent/internal/config"
	"github.com/hexclash/tankagent/internal/database"
	gormstorage "github.com/hexclash/tankagent/internal/storage/gorm"
	"github.com/hexclash/tankagent/internal/storage/memory"
)

// NewBackend creates a journal backend based on configuration. The database backends connect
// here; Init still has to be called.
func NewBackend(cfg config.JournalConfig, db config.DBConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "none", "":
		return Discard{}, nil
	case "memory":
		return memory.New(cfg.Memory), nil
	case "sqlite":
		m := database.NewManager(log)
		if err := m.ConnectSqlite(cfg.SQLite.Path); err != nil {
			return nil, err
		}
		return newGorm(m, cfg, log), nil
	case "postgres":
		m := database.NewManager(log)
		if err := m.ConnectPostgres(db); err != nil {
			return nil, err
		}
		return newGorm(m, cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown journal type: %s", cfg.Type)
	}
}

func newGorm(m *database.Manager, cfg config.JournalConfig, log zerolog.Logger) *gormstorage.Backend {
	return gormstorage.New(gormstorage.Dependencies{
		DB:            m,
		FlushInterval: cfg.FlushInterval,
		Logger:        log,
	})
}
