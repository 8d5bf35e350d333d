// Package agent runs the decision loop: one server line in, at most one command out.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hexclash/tankagent/internal/action"
	"github.com/hexclash/tankagent/internal/cache"
	"github.com/hexclash/tankagent/internal/channel"
	"github.com/hexclash/tankagent/internal/comms"
	"github.com/hexclash/tankagent/internal/dispatcher"
	"github.com/hexclash/tankagent/internal/hex"
	"github.com/hexclash/tankagent/internal/lineio"
	"github.com/hexclash/tankagent/internal/parser"
	"github.com/hexclash/tankagent/internal/player"
	"github.com/hexclash/tankagent/internal/scan"
	"github.com/hexclash/tankagent/internal/storage"
	"github.com/hexclash/tankagent/internal/strategy"
	"github.com/hexclash/tankagent/pkg/core"
)

// Outcome is why Run returned.
type Outcome int

const (
	Finished Outcome = iota
	Eliminated
	InputClosed
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Finished:
		return "finished"
	case Eliminated:
		return "eliminated"
	case InputClosed:
		return "input_closed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Telemetry receives per-round and per-scan measurements.
type Telemetry interface {
	WriteRound(s *core.Session, r *core.RoundSummary) error
	WriteScan(s *core.Session, r *core.ScanRecord) error
}

// Publisher shares own scans with the team.
type Publisher interface {
	Publish(rows []string) error
}

// Config wires the agent. Player, Reader and Writer are required.
type Config struct {
	Player *player.State
	Reader lineio.Reader
	// Writer carries commands to the server.
	Writer lineio.Writer
	Logger *slog.Logger

	Session   *core.Session
	Journal   storage.Backend
	Telemetry Telemetry
	Peers     channel.Receiver[string]
	Publisher Publisher
}

// Agent owns the unit state and every collaborator of the decision loop. All of it is touched
// from the goroutine calling Run only.
type Agent struct {
	p          *player.State
	reader     lineio.Reader
	actions    *action.Manager
	controller *strategy.Controller
	board      *hex.Board
	result     *scan.Result
	enemies    *cache.EnemyCache
	dispatch   *dispatcher.Dispatcher
	logger     *slog.Logger

	session   *core.Session
	journal   storage.Backend
	telemetry Telemetry
	peers     channel.Receiver[string]
	publisher Publisher

	done    bool
	outcome Outcome

	// mirrors for the log context, read from other goroutines
	round    atomic.Int64
	health   atomic.Int64
	strategy atomic.Int64
}

// New builds an agent and opens the journal session.
func New(cfg Config) (*Agent, error) {
	if cfg.Player == nil || cfg.Reader == nil || cfg.Writer == nil {
		return nil, errors.New("agent needs a player, a reader and a writer")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	journal := cfg.Journal
	if journal == nil {
		journal = storage.Discard{}
	}
	session := cfg.Session
	if session == nil {
		session = &core.Session{
			StartedAt:         time.Now(),
			Class:             cfg.Player.Class().Letter(),
			Colour:            cfg.Player.Colour(),
			SideLen:           cfg.Player.SideLen(),
			ExplorationRounds: cfg.Player.ExplorationRounds(),
		}
	}

	board, err := hex.NewBoard(cfg.Player.SideLen())
	if err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}

	a := &Agent{
		p:          cfg.Player,
		reader:     cfg.Reader,
		controller: strategy.NewController(logger),
		board:      board,
		enemies:    cache.NewEnemyCache(),
		logger:     logger,
		session:    session,
		journal:    journal,
		telemetry:  cfg.Telemetry,
		peers:      cfg.Peers,
		publisher:  cfg.Publisher,
	}

	a.actions, err = action.NewManager(lineio.Tee{cfg.Writer, outbound{a}})
	if err != nil {
		return nil, err
	}
	a.dispatch, err = dispatcher.New(logger)
	if err != nil {
		return nil, err
	}
	a.register()

	if err := journal.StartSession(session); err != nil {
		return nil, fmt.Errorf("starting journal session: %w", err)
	}
	a.mirror()
	return a, nil
}

func (a *Agent) register() {
	a.dispatch.Register(parser.TagMove.String(), a.onRoundStart, dispatcher.Logged())
	a.dispatch.Register(parser.TagOK.String(), a.onAccepted)
	a.dispatch.Register(parser.TagHuh.String(), a.onRejected, dispatcher.Logged())
	a.dispatch.Register(parser.TagDamage.String(), a.onDamage, dispatcher.Logged())
	a.dispatch.Register(parser.TagDead.String(), a.onEliminated, dispatcher.Logged())
	a.dispatch.Register(parser.TagFinish.String(), a.onFinish, dispatcher.Logged())
	a.dispatch.Fallback(a.onOther)
}

// outbound journals every command after it reached the server.
type outbound struct{ a *Agent }

func (o outbound) WriteLine(line string) error {
	o.a.recordLine(core.DirectionOut, parser.Tokens(line), line)
	return nil
}

type readResult struct {
	line string
	err  error
}

// Run processes server lines until the match ends for this unit, the input closes or ctx is
// cancelled. Command write failures are returned as errors.
func (a *Agent) Run(ctx context.Context) (Outcome, error) {
	readCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan readResult)
	go func() {
		for {
			line, err := a.reader.ReadLine()
			select {
			case lines <- readResult{line, err}:
			case <-readCtx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for !a.done {
		var rr readResult
		select {
		case <-ctx.Done():
			a.finish(Cancelled)
			return Cancelled, nil
		case rr = <-lines:
		}
		if rr.err != nil {
			a.finish(InputClosed)
			if errors.Is(rr.err, io.EOF) {
				return InputClosed, nil
			}
			return InputClosed, fmt.Errorf("reading server line: %w", rr.err)
		}
		if err := a.Handle(rr.line); err != nil {
			a.finish(InputClosed)
			return InputClosed, err
		}
	}
	a.finish(a.outcome)
	return a.outcome, nil
}

// Handle processes one server line.
func (a *Agent) Handle(line string) error {
	tokens := parser.Tokens(line)
	tag := parser.Classify(tokens)
	a.recordLine(core.DirectionIn, tokens, line)
	err := a.dispatch.Dispatch(dispatcher.Event{
		Tag:       tag.String(),
		Line:      line,
		Tokens:    tokens,
		Timestamp: time.Now(),
	})
	a.mirror()
	return err
}

// Done reports whether a terminal line was handled.
func (a *Agent) Done() bool { return a.done }

func (a *Agent) stop(o Outcome) {
	a.done = true
	a.outcome = o
}

// decide runs the active strategy for one cycle.
func (a *Agent) decide() error {
	kind := a.controller.Evaluate(a.p)
	return strategy.Run(kind, a.p, a.result, a.actions)
}

func (a *Agent) onRoundStart(e dispatcher.Event) error {
	a.drainPeers()
	n, ok := parser.LastInt(e.Tokens)
	if !ok {
		n = a.p.Round() + 1
		a.logger.Warn("round start without round number", "line", e.Line, "assumed", n)
	}
	if a.actions.Counter() > 0 || a.p.Steps() > 0 {
		a.recordRound()
	}
	a.p.StartRound(n)
	a.actions.ResetCounter()
	return a.decide()
}

func (a *Agent) onAccepted(e dispatcher.Event) error {
	if a.p.Steps() >= player.StepsPerRound {
		return nil
	}
	if a.actions.LastAction().IsDrive() {
		if pts, ok := parser.LastInt(e.Tokens); ok {
			a.p.AddPoints(pts)
		}
	}
	return a.decide()
}

func (a *Agent) onRejected(dispatcher.Event) error {
	return a.actions.End()
}

func (a *Agent) onDamage(dispatcher.Event) error {
	a.p.TakeDamage()
	a.logger.Info("took damage", "health", a.p.Health())
	if a.p.Eliminated() {
		a.stop(Eliminated)
	}
	return nil
}

func (a *Agent) onEliminated(dispatcher.Event) error {
	a.stop(Eliminated)
	return nil
}

func (a *Agent) onFinish(dispatcher.Event) error {
	a.stop(Finished)
	return nil
}

func (a *Agent) onOther(e dispatcher.Event) error {
	switch a.actions.LastAction() {
	case action.Scan:
		a.absorbScan(e.Tokens)
		return a.decide()
	case action.Turn, action.Skip:
		return nil
	default:
		return a.actions.End()
	}
}

// absorbScan replaces the current scan result and spreads it to the board, the enemy cache,
// the journal and the team.
func (a *Agent) absorbScan(tokens []string) {
	payload := parser.Payload(tokens)
	a.result = scan.Parse(payload, hex.ShapeFor(a.p.Class() == player.Scout))

	if err := a.board.Update(a.result.Cells()); err != nil {
		a.logger.Warn("scan does not fit the board", "error", err)
	}
	if n := a.enemies.RecordCells(a.result.Cells(), a.p.Round(), cache.SourceSelf); n > 0 {
		a.logger.Info("enemy spotted", "count", n, "indices", a.result.Enemies())
	}

	rec := a.scanRecord(payload)
	if err := a.journal.RecordScan(rec); err != nil {
		a.logger.Error("journal scan", "error", err)
	}
	if a.telemetry != nil {
		if err := a.telemetry.WriteScan(a.session, rec); err != nil {
			a.logger.Debug("telemetry scan", "error", err)
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Publish(tokens); err != nil {
			a.logger.Warn("publishing scan to team", "error", err)
		}
	}
}

// drainPeers takes every queued team report without blocking.
func (a *Agent) drainPeers() {
	if a.peers == nil {
		return
	}
	for _, line := range a.peers.Drain() {
		a.absorbPeer(line)
	}
}

func (a *Agent) absorbPeer(line string) {
	rep, err := comms.DecodeReport(line)
	if err != nil {
		a.logger.Debug("ignoring side channel line", "error", err)
		return
	}
	payload := rep.Payload()
	res := scan.Parse(payload, hex.ShapeFor(len(payload) == hex.Scout.Len()))
	n := a.enemies.RecordCells(res.Cells(), a.p.Round(), cache.SourcePeer)
	if err := a.journal.RecordPeerReport(&core.PeerReport{
		Time:    time.Now(),
		Round:   a.p.Round(),
		Payload: payload,
		Enemies: n,
	}); err != nil {
		a.logger.Error("journal peer report", "error", err)
	}
}

func (a *Agent) finish(o Outcome) {
	a.outcome = o
	a.done = true
	if a.actions.Counter() > 0 || a.p.Steps() > 0 {
		a.recordRound()
	}
	if err := a.journal.EndSession(o.String()); err != nil {
		a.logger.Error("closing journal session", "error", err)
	}
	a.logger.Info("match over", "outcome", o.String(), "round", a.p.Round(), "health", a.p.Health())
}

func (a *Agent) mirror() {
	a.round.Store(int64(a.p.Round()))
	a.health.Store(int64(a.p.Health()))
	a.strategy.Store(int64(a.controller.Active()))
}

// LogContext stamps round, health and strategy on log records. It is safe to call from any
// goroutine.
func (a *Agent) LogContext() []slog.Attr {
	return []slog.Attr{
		slog.Int64("round", a.round.Load()),
		slog.Int64("health", a.health.Load()),
		slog.String("strategy", strategy.Kind(a.strategy.Load()).String()),
	}
}

func (a *Agent) Player() *player.State      { return a.p }
func (a *Agent) Board() *hex.Board          { return a.board }
func (a *Agent) Enemies() *cache.EnemyCache { return a.enemies }
func (a *Agent) Strategy() strategy.Kind    { return a.controller.Active() }
func (a *Agent) LastAction() action.Kind    { return a.actions.LastAction() }
func (a *Agent) Session() *core.Session     { return a.session }
func (a *Agent) ScanResult() *scan.Result   { return a.result }
