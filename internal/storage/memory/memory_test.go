package memory

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexclash/tankagent/internal/config"
	"github.com/hexclash/tankagent/pkg/core"
)

func newSession() *core.Session {
	return &core.Session{
		StartedAt:         time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC),
		Class:             "T",
		Colour:            "R",
		SideLen:           5,
		ExplorationRounds: 3,
		Source:            "stdio",
	}
}

func TestStartSession_AssignsIDAndResets(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, b.Init())

	s := newSession()
	require.NoError(t, b.StartSession(s))
	assert.Equal(t, uint(1), s.ID)

	require.NoError(t, b.RecordLine(&core.LineEvent{Round: 1, Direction: core.DirectionIn, Line: "MOVE R 1"}))
	require.NoError(t, b.RecordScan(&core.ScanRecord{Round: 1, Payload: "abcdefghijk"}))

	s2 := newSession()
	require.NoError(t, b.StartSession(s2))
	assert.Equal(t, uint(2), s2.ID)
	assert.Empty(t, b.Lines())
	_, ok := b.GetRound(1)
	assert.False(t, ok)

	require.NoError(t, b.Close())
}

func TestRecordRound_GroupsScans(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.StartSession(newSession()))

	require.NoError(t, b.RecordScan(&core.ScanRecord{Round: 2, Payload: "one"}))
	require.NoError(t, b.RecordScan(&core.ScanRecord{Round: 2, Payload: "two"}))
	require.NoError(t, b.RecordRound(&core.RoundSummary{Round: 2, Steps: 2}))
	require.NoError(t, b.RecordRound(&core.RoundSummary{Round: 2, Steps: 3}))

	r, ok := b.GetRound(2)
	require.True(t, ok)
	require.Len(t, r.Scans, 2)
	assert.Equal(t, "two", r.Scans[1].Payload)
	assert.Equal(t, 3, r.Summary.Steps)
}

func TestEndSession_WithoutStart(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})
	assert.NoError(t, b.EndSession("finished"))
	assert.Empty(t, b.GetExportedFilePath())
}

func TestEndSession_ExportsGzip(t *testing.T) {
	dir := t.TempDir()
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true})
	require.NoError(t, b.StartSession(newSession()))
	require.NoError(t, b.RecordLine(&core.LineEvent{Round: 1, Direction: core.DirectionOut, Line: "SCAN"}))
	require.NoError(t, b.RecordScan(&core.ScanRecord{Round: 1, Payload: "RbWdefWWijW", Enemies: []int{0}, Walls: []int{2, 6, 7, 10}}))
	require.NoError(t, b.RecordPeerReport(&core.PeerReport{Round: 1, Payload: "abc"}))

	require.NoError(t, b.EndSession("finished"))

	path := b.GetExportedFilePath()
	assert.True(t, strings.HasPrefix(path, dir))
	assert.Equal(t, "R_T_2026-10-16_09-30-00.json.gz", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)

	var got MatchExport
	require.NoError(t, json.NewDecoder(gz).Decode(&got))
	assert.Equal(t, "finished", got.Session.Outcome)
	assert.False(t, got.Session.EndedAt.IsZero())
	require.Len(t, got.Rounds, 1)
	assert.Equal(t, []int{2, 6, 7, 10}, got.Rounds[0].Scans[0].Walls)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, []any{float64(1), "out", "SCAN"}, got.Lines[0])
	require.Len(t, got.Peers, 1)
}

func TestEndSession_ExportsPlainJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "matches")
	b := New(config.MemoryConfig{OutputDir: dir, CompressOutput: false})
	require.NoError(t, b.StartSession(newSession()))
	require.NoError(t, b.EndSession("eliminated"))

	path := b.GetExportedFilePath()
	assert.True(t, strings.HasSuffix(path, ".json"))
	assert.False(t, strings.HasSuffix(path, ".json.gz"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got MatchExport
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "eliminated", got.Session.Outcome)
	assert.Empty(t, got.Rounds)
	assert.NotNil(t, got.Peers)
}

func TestRoundsExportedInOrder(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.StartSession(newSession()))
	for _, n := range []int{3, 1, 2} {
		require.NoError(t, b.RecordRound(&core.RoundSummary{Round: n}))
	}

	export := b.buildExport()
	require.Len(t, export.Rounds, 3)
	for i, r := range export.Rounds {
		assert.Equal(t, i+1, r.Round)
	}
}

func TestConcurrentAccess(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.StartSession(newSession()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = b.RecordLine(&core.LineEvent{Round: n})
				_ = b.RecordPeerReport(&core.PeerReport{Round: n})
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, b.Lines(), 400)
}
