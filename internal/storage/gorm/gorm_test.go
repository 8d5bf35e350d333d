package gormstorage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexclash/tankagent/internal/database"
	"github.com/hexclash/tankagent/internal/model"
	"github.com/hexclash/tankagent/pkg/core"
)

// newTestBackend creates a Backend with no DB (queue-only mode for unit testing).
func newTestBackend() *Backend {
	return New(Dependencies{Logger: zerolog.Nop()})
}

func newSqliteBackend(t *testing.T) (*Backend, *database.Manager) {
	t.Helper()
	m := database.NewManager(zerolog.Nop())
	require.NoError(t, m.ConnectSqlite(filepath.Join(t.TempDir(), "journal.db")))
	b := New(Dependencies{DB: m, FlushInterval: time.Hour, Logger: zerolog.Nop()})
	require.NoError(t, b.Init())
	return b, m
}

func TestInitClose(t *testing.T) {
	b := newTestBackend()

	err := b.Init()
	require.NoError(t, err)
	require.NotNil(t, b.queues)
	require.NotNil(t, b.stopChan)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
}

func TestNew_DefaultFlushInterval(t *testing.T) {
	b := newTestBackend()
	assert.Equal(t, defaultFlushInterval, b.deps.FlushInterval)
}

func TestRecord_QueuesWithoutDB(t *testing.T) {
	b := newTestBackend()
	require.NoError(t, b.Init())
	defer b.Close()

	s := &core.Session{Colour: "R"}
	require.NoError(t, b.StartSession(s))
	assert.Zero(t, s.ID)

	require.NoError(t, b.RecordLine(&core.LineEvent{Line: "SCAN"}))
	require.NoError(t, b.RecordScan(&core.ScanRecord{Payload: "abcdefghijk"}))
	require.NoError(t, b.RecordRound(&core.RoundSummary{Round: 1}))
	require.NoError(t, b.RecordPeerReport(&core.PeerReport{Payload: "abc"}))

	assert.Equal(t, 1, b.queues.Lines.Len())
	assert.Equal(t, 1, b.queues.Scans.Len())
	assert.Equal(t, 1, b.queues.Rounds.Len())
	assert.Equal(t, 1, b.queues.Peers.Len())
	assert.Zero(t, b.Flush())
	assert.NoError(t, b.EndSession("finished"))
}

func TestSqlite_SessionRoundTrip(t *testing.T) {
	b, m := newSqliteBackend(t)

	s := &core.Session{StartedAt: time.Now(), Class: "S", Colour: "G", SideLen: 5, Source: "stdio"}
	require.NoError(t, b.StartSession(s))
	require.NotZero(t, s.ID)

	require.NoError(t, b.RecordLine(&core.LineEvent{Round: 1, Direction: core.DirectionIn, Tag: "MOVE", Line: "MOVE G 1"}))
	require.NoError(t, b.RecordScan(&core.ScanRecord{
		Round:   1,
		Facing:  "NW",
		Payload: "Rb",
		Cells: []core.ScannedCell{
			{Index: 0, Q: -1, R: -1, S: 2, Occupant: "R"},
			{Index: 1, Q: 0, R: -1, S: 1, Occupant: "b"},
		},
		Enemies: []int{0},
	}))
	require.NoError(t, b.RecordRound(&core.RoundSummary{Round: 1, Strategy: "find-corner", Steps: 2}))
	require.NoError(t, b.RecordPeerReport(&core.PeerReport{Round: 1, Payload: "abc"}))

	require.NoError(t, b.EndSession("finished"))

	db := m.DB
	var session model.Session
	require.NoError(t, db.First(&session, s.ID).Error)
	assert.Equal(t, "finished", session.Outcome)
	assert.Equal(t, "G", session.Colour)

	var lines []model.LineEvent
	require.NoError(t, db.Where("session_id = ?", s.ID).Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.Equal(t, "MOVE G 1", lines[0].Line)

	var cells []model.ScanCell
	require.NoError(t, db.Order("`index`").Find(&cells).Error)
	require.Len(t, cells, 2)
	assert.Equal(t, "R", cells[0].Occupant)

	var rounds, peers int64
	require.NoError(t, db.Model(&model.RoundSummary{}).Where("session_id = ?", s.ID).Count(&rounds).Error)
	require.NoError(t, db.Model(&model.PeerReport{}).Where("session_id = ?", s.ID).Count(&peers).Error)
	assert.Equal(t, int64(1), rounds)
	assert.Equal(t, int64(1), peers)

	assert.Zero(t, b.queues.Lines.Len())
	require.NoError(t, b.Close())
}

func TestSqlite_EndSessionDrainsPastOneBatch(t *testing.T) {
	b, m := newSqliteBackend(t)

	s := &core.Session{StartedAt: time.Now(), Class: "T", Colour: "R", SideLen: 5, Source: "mock.txt"}
	require.NoError(t, b.StartSession(s))

	total := 2*batchSize + 200
	for i := 0; i < total; i++ {
		require.NoError(t, b.RecordLine(&core.LineEvent{Round: i/10 + 1, Direction: core.DirectionOut, Tag: "SCAN", Line: "SCAN"}))
	}
	require.NoError(t, b.RecordRound(&core.RoundSummary{Round: 1}))

	require.NoError(t, b.EndSession("finished"))
	assert.Zero(t, b.pending())

	var lines int64
	require.NoError(t, m.DB.Model(&model.LineEvent{}).Where("session_id = ?", s.ID).Count(&lines).Error)
	assert.Equal(t, int64(total), lines)

	require.NoError(t, b.Close())
}

func TestClose_DrainsQueuedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	m := database.NewManager(zerolog.Nop())
	require.NoError(t, m.ConnectSqlite(path))
	b := New(Dependencies{DB: m, FlushInterval: time.Hour, Logger: zerolog.Nop()})
	require.NoError(t, b.Init())
	require.NoError(t, b.StartSession(&core.Session{StartedAt: time.Now(), Colour: "B"}))

	for i := 0; i < batchSize+1; i++ {
		require.NoError(t, b.RecordPeerReport(&core.PeerReport{Round: 1, Payload: "abc"}))
	}
	require.NoError(t, b.Close())

	reopened, err := database.GetSqliteDB(path)
	require.NoError(t, err)
	sqlDB, err := reopened.DB()
	require.NoError(t, err)
	defer sqlDB.Close()
	var peers int64
	require.NoError(t, reopened.Model(&model.PeerReport{}).Count(&peers).Error)
	assert.Equal(t, int64(batchSize+1), peers)
}
