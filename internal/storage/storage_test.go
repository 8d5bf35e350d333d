// internal/storage/storage_test.go
package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexclash/tankagent/internal/config"
	"github.com/hexclash/tankagent/internal/storage"
	gormstorage "github.com/hexclash/tankagent/internal/storage/gorm"
	"github.com/hexclash/tankagent/internal/storage/memory"
	"github.com/hexclash/tankagent/pkg/core"
)

// Compile-time interface checks
var (
	_ storage.Backend    = (*memory.Backend)(nil)
	_ storage.Backend    = (*gormstorage.Backend)(nil)
	_ storage.Backend    = storage.Discard{}
	_ storage.Exportable = (*memory.Backend)(nil)
)

func TestNewBackend(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config.JournalConfig
		want any
	}{
		{"none", config.JournalConfig{Type: "none"}, storage.Discard{}},
		{"empty", config.JournalConfig{}, storage.Discard{}},
		{"memory", config.JournalConfig{Type: "memory", Memory: config.MemoryConfig{OutputDir: dir}}, &memory.Backend{}},
		{"sqlite", config.JournalConfig{Type: "sqlite", SQLite: config.SQLiteConfig{Path: filepath.Join(dir, "j.db")}}, &gormstorage.Backend{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := storage.NewBackend(tt.cfg, config.DBConfig{}, zerolog.Nop())
			require.NoError(t, err)
			assert.IsType(t, tt.want, b)
			require.NoError(t, b.Init())
			require.NoError(t, b.Close())
		})
	}
}

func TestNewBackend_JournalFlushInterval(t *testing.T) {
	cfg := config.JournalConfig{
		Type:          "sqlite",
		FlushInterval: 7 * time.Second,
		SQLite:        config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "j.db")},
	}
	b, err := storage.NewBackend(cfg, config.DBConfig{}, zerolog.Nop())
	require.NoError(t, err)
	g, ok := b.(*gormstorage.Backend)
	require.True(t, ok)
	assert.Equal(t, 7*time.Second, g.FlushInterval())
	require.NoError(t, b.Init())
	require.NoError(t, b.Close())
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := storage.NewBackend(config.JournalConfig{Type: "mongo"}, config.DBConfig{}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}

func TestDiscard(t *testing.T) {
	var b storage.Backend = storage.Discard{}
	s := &core.Session{}
	assert.NoError(t, b.StartSession(s))
	assert.NoError(t, b.RecordLine(&core.LineEvent{}))
	assert.NoError(t, b.RecordScan(&core.ScanRecord{}))
	assert.NoError(t, b.RecordRound(&core.RoundSummary{}))
	assert.NoError(t, b.RecordPeerReport(&core.PeerReport{}))
	assert.NoError(t, b.EndSession("finished"))
}
