// Package player holds the per-unit resource model: health, facing, and the per-round action
// and point budgets of each unit class.
package player

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hexclash/tankagent/internal/hex"
	"github.com/hexclash/tankagent/internal/moves"
	"github.com/hexclash/tankagent/internal/scan"
)

// ErrUnknownClass is returned for a unit class selector that is not T, S or H.
var ErrUnknownClass = errors.New("unknown unit class")

// StepsPerRound is the number of budget-consuming actions a unit may take in a round.
const StepsPerRound = 3

const startingHealth = 2

// Class is the combat class of a unit.
type Class int

const (
	Light Class = iota
	Scout
	Heavy
)

// Budget is the fixed per-round quota of a class.
type Budget struct {
	Drive, Shoot, Scan, Points int
}

var budgets = map[Class]Budget{
	Light: {Drive: 2, Shoot: 1, Scan: 2, Points: 4},
	Heavy: {Drive: 2, Shoot: 2, Scan: 1, Points: 5},
	Scout: {Drive: 4, Shoot: 1, Scan: 3, Points: 5},
}

var classLetters = map[Class]string{Light: "T", Scout: "S", Heavy: "H"}

// Classes lists every class in handshake fallback order.
var Classes = []Class{Light, Scout, Heavy}

// ParseClass maps the protocol letter (T, S or H, any case) to a Class.
func ParseClass(s string) (Class, error) {
	for c, letter := range classLetters {
		if strings.EqualFold(letter, s) {
			return c, nil
		}
	}
	return Light, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// Letter is the protocol selector sent in the IAM handshake.
func (c Class) Letter() string {
	return classLetters[c]
}

// Budget returns the class quota.
func (c Class) Budget() Budget {
	return budgets[c]
}

func (c Class) String() string {
	switch c {
	case Light:
		return "light"
	case Scout:
		return "scout"
	case Heavy:
		return "heavy"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// State is the mutable per-unit state. It is owned by the decision loop and not safe for
// concurrent use.
type State struct {
	class             Class
	budget            Budget
	colour            string
	explorationRounds int
	sideLen           int

	health int
	round  int
	facing hex.Direction

	drives, scans, skips, shots int
	steps                       int
	pointsSpent                 int

	cornerFound bool
	cornerRound int
	corner      hex.Coordinate
}

// New builds a unit at full health facing north in round 1.
func New(class Class, colour string, explorationRounds, sideLen int) *State {
	return &State{
		class:             class,
		budget:            class.Budget(),
		colour:            colour,
		explorationRounds: explorationRounds,
		sideLen:           sideLen,
		health:            startingHealth,
		round:             1,
		facing:            hex.North,
		corner:            hex.Sentinel,
	}
}

// SetInitialInformation records what the server announces in START.
func (p *State) SetInitialInformation(colour string, explorationRounds, sideLen int) {
	p.colour = colour
	p.explorationRounds = explorationRounds
	p.sideLen = sideLen
}

// StartRound resets every per-round counter and sets the round number.
func (p *State) StartRound(n int) {
	p.drives, p.scans, p.skips, p.shots = 0, 0, 0, 0
	p.steps = 0
	p.pointsSpent = 0
	p.round = n
}

func (p *State) TakeDamage()      { p.health-- }
func (p *State) Health() int      { return p.health }
func (p *State) Eliminated() bool { return p.health <= 0 }

func (p *State) Class() Class              { return p.class }
func (p *State) Colour() string            { return p.colour }
func (p *State) Round() int                { return p.round }
func (p *State) SideLen() int              { return p.sideLen }
func (p *State) ExplorationRounds() int    { return p.explorationRounds }
func (p *State) Facing() hex.Direction     { return p.facing }
func (p *State) SetFacing(d hex.Direction) { p.facing = d }

func (p *State) Steps() int       { return p.steps }
func (p *State) DriveCount() int  { return p.drives }
func (p *State) ScanCount() int   { return p.scans }
func (p *State) ShootCount() int  { return p.shots }
func (p *State) SkipCount() int   { return p.skips }
func (p *State) PointsSpent() int { return p.pointsSpent }

func (p *State) AddDrive() { p.drives++ }
func (p *State) AddScan()  { p.scans++ }
func (p *State) AddShoot() { p.shots++ }
func (p *State) AddSkip()  { p.skips++ }
func (p *State) AddStep()  { p.steps++ }

// AddPoints records points the server charged for an action.
func (p *State) AddPoints(n int) { p.pointsSpent += n }

// PointsLeft is the signed remaining point budget of the round.
func (p *State) PointsLeft() int {
	return p.budget.Points - p.pointsSpent
}

func (p *State) DriveAllowed() bool {
	return p.drives < p.budget.Drive && p.PointsLeft() > 0
}

func (p *State) ScanAllowed() bool {
	return p.scans < p.budget.Scan && p.PointsLeft() > 0
}

func (p *State) ShootAllowed() bool {
	return p.shots < p.budget.Shoot && p.PointsLeft() > 0
}

// SkipAllowed is false only when exactly one drive was taken this round.
func (p *State) SkipAllowed() bool {
	return p.drives != 1
}

// StepsLeft reports whether the round still has a step to spend.
func (p *State) StepsLeft() bool {
	return p.steps < StepsPerRound
}

func (p *State) CornerFound() bool { return p.cornerFound }

// MarkCornerFound sets the corner flag, stores the team corner and remembers the round. The
// flag is never cleared.
func (p *State) MarkCornerFound() {
	p.cornerFound = true
	p.corner = p.Corner()
	p.cornerRound = p.round
}

// CornerFoundThisRound reports whether the corner was found during the current round. The rest
// of that round is spent skipping.
func (p *State) CornerFoundThisRound() bool {
	return p.cornerFound && p.cornerRound == p.round
}

// Anchor is the corner stored when the corner was found, or hex.Sentinel before that.
func (p *State) Anchor() hex.Coordinate { return p.corner }

// Corner returns the fixed corner of the team's board section.
func (p *State) Corner() hex.Coordinate {
	return CornerFor(p.colour, p.sideLen)
}

// CornerFor returns the corner of colour on a board of side length sideLen, or hex.Sentinel for
// an unknown colour.
func CornerFor(colour string, sideLen int) hex.Coordinate {
	m := sideLen - 1
	var q, r int
	switch colour {
	case "R":
		q, r = m, -m
	case "O":
		q, r = m, 0
	case "Y":
		q, r = 0, m
	case "G":
		q, r = -m, m
	case "B":
		q, r = -m, 0
	case "V":
		q, r = 0, -m
	default:
		return hex.Sentinel
	}
	return hex.New(q, r, hex.Unset)
}

// CandidateMoves lists the commands worth considering after a scan. With an enemy in sight
// after the exploration rounds and a shot already taken this round it returns the shots at
// each enemy. Otherwise it returns the open drives.
func (p *State) CandidateMoves(r *scan.Result) []string {
	var out []string
	if r.EnemyDetected() {
		if p.round > p.explorationRounds && p.shots > 0 {
			for _, i := range r.Enemies() {
				if cmd, ok := moves.ShootMove(p.facing, i); ok {
					out = append(out, cmd)
				}
			}
		}
		return out
	}
	// compares the counter with itself, so a scan is never prepended
	//lint:ignore SA4000 scan counter is compared with itself on purpose
	if p.scans < p.scans {
		out = append(out, "SCAN")
	}
	return append(out, moves.DriveMoves(p.facing, r)...)
}
