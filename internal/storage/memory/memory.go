// internal/storage/memory/memory.go
package memory

import (
	"sync"
	"time"

	"github.com/hexclash/tankagent/internal/config"
	"github.com/hexclash/tankagent/pkg/core"
)

// RoundRecord groups a round summary with the scans taken during that round
type RoundRecord struct {
	Summary *core.RoundSummary
	Scans   []core.ScanRecord
}

// Backend stores the match journal in memory and exports it to JSON when the session ends
type Backend struct {
	cfg     config.MemoryConfig
	session *core.Session

	lines  []core.LineEvent
	rounds map[int]*RoundRecord
	peers  []core.PeerReport

	exportPath string
	idCounter  uint
	mu         sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:    cfg,
		rounds: make(map[int]*RoundRecord),
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartSession begins a new journal and drops anything recorded before
func (b *Backend) StartSession(s *core.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	s.ID = b.idCounter
	b.session = s
	b.lines = nil
	b.rounds = make(map[int]*RoundRecord)
	b.peers = nil
	b.exportPath = ""
	return nil
}

// EndSession stamps the outcome and exports the journal
func (b *Backend) EndSession(outcome string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil
	}
	b.session.EndedAt = time.Now()
	b.session.Outcome = outcome
	return b.exportJSON()
}

func (b *Backend) round(n int) *RoundRecord {
	r, ok := b.rounds[n]
	if !ok {
		r = &RoundRecord{}
		b.rounds[n] = r
	}
	return r
}

// RecordLine appends a protocol line
func (b *Backend) RecordLine(e *core.LineEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, *e)
	return nil
}

// RecordScan files a scan under its round
func (b *Backend) RecordScan(s *core.ScanRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := b.round(s.Round)
	r.Scans = append(r.Scans, *s)
	return nil
}

// RecordRound sets the summary of a round, replacing an earlier one
func (b *Backend) RecordRound(rs *core.RoundSummary) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	summary := *rs
	b.round(rs.Round).Summary = &summary
	return nil
}

// RecordPeerReport appends a team mate's scan
func (b *Backend) RecordPeerReport(p *core.PeerReport) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.peers = append(b.peers, *p)
	return nil
}

// GetRound returns the record of round n
func (b *Backend) GetRound(n int) (*RoundRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, ok := b.rounds[n]
	return r, ok
}

// Lines returns a copy of the recorded protocol lines
func (b *Backend) Lines() []core.LineEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]core.LineEvent, len(b.lines))
	copy(out, b.lines)
	return out
}

// GetExportedFilePath returns the file written by the last EndSession, or "".
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.exportPath
}
