// Package gormstorage implements the storage.Backend interface on top of GORM (sqlite or
// postgres) with internal queues and a background writer goroutine.
package gormstorage

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hexclash/tankagent/internal/database"
	"github.com/hexclash/tankagent/internal/model"
	"github.com/hexclash/tankagent/internal/model/convert"
	"github.com/hexclash/tankagent/internal/queue"
	"github.com/hexclash/tankagent/pkg/core"
)

const (
	defaultFlushInterval = 5 * time.Second
	batchSize            = 500
)

// Dependencies holds all dependencies for the GORM journal backend.
// A nil DB keeps records queued only, which is what the unit tests use.
type Dependencies struct {
	DB            *database.Manager
	FlushInterval time.Duration
	Logger        zerolog.Logger
}

// queues holds all the write queues for batch DB insertion.
type queues struct {
	Lines  *queue.Queue[model.LineEvent]
	Scans  *queue.Queue[model.Scan]
	Rounds *queue.Queue[model.RoundSummary]
	Peers  *queue.Queue[model.PeerReport]
}

func newQueues() *queues {
	return &queues{
		Lines:  queue.New[model.LineEvent](),
		Scans:  queue.New[model.Scan](),
		Rounds: queue.New[model.RoundSummary](),
		Peers:  queue.New[model.PeerReport](),
	}
}

// Backend is the GORM journal.
type Backend struct {
	deps      Dependencies
	queues    *queues
	sessionID atomic.Uint64

	stopChan  chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	flushLock sync.Mutex
}

// New creates a backend. Init must be called before recording.
func New(deps Dependencies) *Backend {
	if deps.FlushInterval <= 0 {
		deps.FlushInterval = defaultFlushInterval
	}
	return &Backend{
		deps: deps,
	}
}

func (b *Backend) db() *gorm.DB {
	if b.deps.DB == nil {
		return nil
	}
	return b.deps.DB.DB
}

// Init creates internal queues, migrates the schema and starts the writer goroutine.
func (b *Backend) Init() error {
	b.queues = newQueues()
	b.stopChan = make(chan struct{})

	if b.db() != nil {
		if err := b.deps.DB.Setup(); err != nil {
			return fmt.Errorf("failed to setup DB: %w", err)
		}
		b.startDBWriter()
	}
	return nil
}

// Close stops the writer, flushes what is left and closes the connection.
func (b *Backend) Close() error {
	if b.stopChan == nil {
		return nil
	}
	b.stopOnce.Do(func() { close(b.stopChan) })
	b.wg.Wait()
	if b.db() == nil {
		return nil
	}
	b.drain()
	return b.deps.DB.Close()
}

// StartSession inserts the session row right away so queued records can reference it.
func (b *Backend) StartSession(s *core.Session) error {
	db := b.db()
	if db == nil {
		return nil
	}
	m := convert.CoreToSession(*s)
	if err := db.Create(&m).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	s.ID = m.ID
	b.sessionID.Store(uint64(m.ID))
	b.deps.Logger.Info().Uint("session", m.ID).Str("colour", s.Colour).Msg("Session started")
	return nil
}

// EndSession drains every queue and stamps the outcome on the session row.
func (b *Backend) EndSession(outcome string) error {
	db := b.db()
	if db == nil {
		return nil
	}
	b.drain()
	id := uint(b.sessionID.Load())
	if id == 0 {
		return nil
	}
	err := db.Model(&model.Session{}).Where("id = ?", id).Updates(map[string]any{
		"ended_at": time.Now(),
		"outcome":  outcome,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func (b *Backend) RecordLine(e *core.LineEvent) error {
	b.queues.Lines.Push(convert.CoreToLineEvent(*e, 0))
	return nil
}

func (b *Backend) RecordScan(s *core.ScanRecord) error {
	b.queues.Scans.Push(convert.CoreToScan(*s, 0))
	return nil
}

func (b *Backend) RecordRound(r *core.RoundSummary) error {
	b.queues.Rounds.Push(convert.CoreToRoundSummary(*r, 0))
	return nil
}

func (b *Backend) RecordPeerReport(p *core.PeerReport) error {
	b.queues.Peers.Push(convert.CoreToPeerReport(*p, 0))
	return nil
}

// writeQueue writes up to batchSize items from a queue in a transaction. Failed batches go back
// on the queue.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string, log zerolog.Logger, prepare func([]T)) int {
	if q.Empty() {
		return 0
	}

	items := q.Take(batchSize)
	if prepare != nil {
		prepare(items)
	}
	tx := db.Begin()
	if err := tx.Create(&items).Error; err != nil {
		log.Error().Err(err).Str("table", name).Int("count", len(items)).Msg("Error writing batch")
		tx.Rollback()
		q.Requeue(items...)
		return 0
	}
	if err := tx.Commit().Error; err != nil {
		log.Error().Err(err).Str("table", name).Msg("Error committing batch")
		q.Requeue(items...)
		return 0
	}
	return len(items)
}

// Flush writes one batch of every queue and returns the number of rows written.
func (b *Backend) Flush() int {
	db := b.db()
	if db == nil {
		return 0
	}
	b.flushLock.Lock()
	defer b.flushLock.Unlock()

	sessionID := uint(b.sessionID.Load())
	log := b.deps.Logger

	n := writeQueue(db, b.queues.Lines, "line_events", log, func(items []model.LineEvent) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	})
	n += writeQueue(db, b.queues.Scans, "scans", log, func(items []model.Scan) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	})
	n += writeQueue(db, b.queues.Rounds, "round_summaries", log, func(items []model.RoundSummary) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	})
	n += writeQueue(db, b.queues.Peers, "peer_reports", log, func(items []model.PeerReport) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	})
	if n > 0 {
		log.Debug().Int("rows", n).Msg("Flushed journal")
	}
	return n
}

// FlushInterval is the period of the background writer.
func (b *Backend) FlushInterval() time.Duration { return b.deps.FlushInterval }

// drain flushes batches until every queue is empty. It gives up when a pass writes nothing,
// which happens while the database rejects a batch.
func (b *Backend) drain() int {
	total := 0
	for b.pending() > 0 {
		n := b.Flush()
		if n == 0 {
			b.deps.Logger.Warn().Int("pending", b.pending()).Msg("Journal rows left unwritten")
			break
		}
		total += n
	}
	return total
}

func (b *Backend) pending() int {
	return b.queues.Lines.Len() + b.queues.Scans.Len() + b.queues.Rounds.Len() + b.queues.Peers.Len()
}

// startDBWriter starts the goroutine that periodically drains the queues.
func (b *Backend) startDBWriter() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ticker := time.NewTicker(b.deps.FlushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-b.stopChan:
				return
			case <-ticker.C:
				b.Flush()
			}
		}
	}()
}
