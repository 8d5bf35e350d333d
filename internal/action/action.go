// Package action emits protocol commands and keeps the unit's counters in step with them.
package action

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hexclash/tankagent/internal/hex"
	"github.com/hexclash/tankagent/internal/lineio"
	"github.com/hexclash/tankagent/internal/player"
)

const instrumentationName = "github.com/hexclash/tankagent/internal/action"

// Kind is the tag of the last emitted command.
type Kind int

const (
	None Kind = iota
	Scan
	Turn
	End
	Shoot
	Skip
	Drive
	// DriveSkip is accepted wherever Drive is but never emitted.
	DriveSkip
)

var kindNames = [...]string{"NONE", "SCAN", "TURN", "END", "SHOOT", "SKIP", "DRIVE", "DRIVE_SKIP"}

func (k Kind) String() string {
	if k < None || k > DriveSkip {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsDrive reports whether k moved the unit.
func (k Kind) IsDrive() bool {
	return k == Drive || k == DriveSkip
}

// Manager writes one command per call, records it as the last action and bumps the round
// action counter. Turns count as actions but not as steps.
type Manager struct {
	w       lineio.Writer
	last    Kind
	counter int

	emitted metric.Int64Counter
}

// NewManager returns a Manager writing to w. Metrics go to the global OTel meter.
func NewManager(w lineio.Writer) (*Manager, error) {
	emitted, err := otel.Meter(instrumentationName).Int64Counter(
		"agent.commands.emitted",
		metric.WithDescription("Commands written to the server"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating emitted counter: %w", err)
	}
	return &Manager{w: w, emitted: emitted}, nil
}

func (m *Manager) LastAction() Kind { return m.last }
func (m *Manager) Counter() int     { return m.counter }

// ResetCounter is called at the start of every round.
func (m *Manager) ResetCounter() { m.counter = 0 }

func (m *Manager) emit(kind Kind, line string) error {
	if err := m.w.WriteLine(line); err != nil {
		return fmt.Errorf("sending %s: %w", kind, err)
	}
	m.last = kind
	m.counter++
	m.emitted.Add(context.Background(), 1, metric.WithAttributes(attribute.String("kind", kind.String())))
	return nil
}

func (m *Manager) Scan(p *player.State) error {
	p.AddScan()
	p.AddStep()
	return m.emit(Scan, "SCAN")
}

func (m *Manager) Drive(p *player.State) error {
	p.AddDrive()
	p.AddStep()
	return m.emit(Drive, "DRIVE")
}

func (m *Manager) Skip(p *player.State) error {
	p.AddSkip()
	p.AddStep()
	return m.emit(Skip, "SKIP")
}

// Shoot sends a complete command such as "SHOOT NW-N".
func (m *Manager) Shoot(command string, p *player.State) error {
	p.AddShoot()
	p.AddStep()
	return m.emit(Shoot, command)
}

// Turn faces the unit towards dir. It does not consume a step.
func (m *Manager) Turn(dir hex.Direction, p *player.State) error {
	p.SetFacing(dir)
	return m.emit(Turn, "TURN "+dir.String())
}

// End closes the unit's turn.
func (m *Manager) End() error {
	return m.emit(End, "END")
}
