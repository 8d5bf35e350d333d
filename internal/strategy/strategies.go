package strategy

import (
	"strings"

	"github.com/hexclash/tankagent/internal/action"
	"github.com/hexclash/tankagent/internal/hex"
	"github.com/hexclash/tankagent/internal/moves"
	"github.com/hexclash/tankagent/internal/player"
	"github.com/hexclash/tankagent/internal/scan"
)

// Scan indices checked for the board edge: straight ahead, and straight ahead of that cell.
const (
	wallAhead      = 1
	wallAfterDrive = 5
)

// teamHeading is the first turn of each team, pointing away from the centre.
var teamHeading = map[string]hex.Direction{
	"R": hex.SouthEast,
	"O": hex.South,
	"Y": hex.SouthWest,
	"G": hex.NorthWest,
	"B": hex.North,
	"V": hex.NorthEast,
}

// Run executes one decision cycle of kind. It emits at most one command. Once the unit has
// ended its turn for the round nothing more is sent.
func Run(kind Kind, p *player.State, r *scan.Result, a *action.Manager) error {
	if r == nil {
		r = scan.NewResult(hex.ShapeFor(p.Class() == player.Scout))
	}
	if a.LastAction() == action.End && a.Counter() > 0 {
		return nil
	}
	switch kind {
	case FindCorner:
		return findCorner(p, r, a)
	case Explorer:
		return explore(p, r, a)
	case Traverse:
		return traverse(p, r, a)
	}
	return a.End()
}

func findCorner(p *player.State, r *scan.Result, a *action.Manager) error {
	if p.CornerFoundThisRound() {
		return skipOrEnd(p, a)
	}
	if p.Round() == 1 && a.Counter() == 0 {
		dir, ok := teamHeading[p.Colour()]
		if !ok {
			return a.End()
		}
		return a.Turn(dir, p)
	}
	if p.ScanCount() == 0 {
		return a.Scan(p)
	}

	switch last := a.LastAction(); {
	case last == action.Scan:
		if r.HasWall(wallAhead) {
			p.MarkCornerFound()
			break
		}
		return driveOrEnd(p, a)
	case last.IsDrive():
		if r.HasWall(wallAfterDrive) {
			p.MarkCornerFound()
			break
		}
		return driveOrEnd(p, a)
	default:
		return a.End()
	}

	return skipOrEnd(p, a)
}

func explore(p *player.State, r *scan.Result, a *action.Manager) error {
	if p.Class() == player.Heavy || !p.StepsLeft() {
		return a.End()
	}
	switch last := a.LastAction(); {
	case a.Counter() == 0:
		return scanOrEnd(p, a)
	case last == action.Scan:
		return approach(p, moves.DriveCandidates(p.Facing(), r), a)
	case last == action.Turn:
		return driveOrEnd(p, a)
	case last.IsDrive():
		if p.SkipAllowed() {
			return a.Skip(p)
		}
		return a.End()
	default:
		return scanOrEnd(p, a)
	}
}

func traverse(p *player.State, r *scan.Result, a *action.Manager) error {
	if !p.StepsLeft() {
		return a.End()
	}
	switch last := a.LastAction(); {
	case a.Counter() == 0:
		return scanOrEnd(p, a)
	case last == action.Scan:
		if cmd, ok := target(p, r); ok && p.ShootAllowed() {
			return a.Shoot(cmd, p)
		}
		return approach(p, driveDirections(p.CandidateMoves(r)), a)
	case last == action.Shoot:
		if cmd, ok := target(p, r); ok && p.ShootAllowed() {
			return a.Shoot(cmd, p)
		}
		return scanOrEnd(p, a)
	case last == action.Turn:
		return driveOrEnd(p, a)
	case last.IsDrive():
		if p.SkipAllowed() {
			return a.Skip(p)
		}
		return a.End()
	default:
		return scanOrEnd(p, a)
	}
}

// target picks the shot for the first enemy in range. Follow-up shots suggested by the unit's
// candidate moves take precedence.
func target(p *player.State, r *scan.Result) (string, bool) {
	for _, cmd := range p.CandidateMoves(r) {
		if strings.HasPrefix(cmd, "SHOOT ") {
			return cmd, true
		}
	}
	for _, i := range r.Enemies() {
		if cmd, ok := moves.ShootMove(p.Facing(), i); ok {
			return cmd, true
		}
	}
	return "", false
}

func driveDirections(cmds []string) []string {
	var out []string
	for _, cmd := range cmds {
		if dir, ok := strings.CutPrefix(cmd, "DRIVE "); ok {
			out = append(out, dir)
		}
	}
	return out
}

// approach turns towards the first open heading, or drives when already facing it.
func approach(p *player.State, dirs []string, a *action.Manager) error {
	if len(dirs) == 0 || !p.DriveAllowed() {
		return a.End()
	}
	dir, err := hex.ParseDirection(dirs[0])
	if err != nil {
		return a.End()
	}
	if dir != p.Facing() {
		return a.Turn(dir, p)
	}
	return a.Drive(p)
}

func driveOrEnd(p *player.State, a *action.Manager) error {
	if p.DriveAllowed() {
		return a.Drive(p)
	}
	return a.End()
}

func skipOrEnd(p *player.State, a *action.Manager) error {
	if p.StepsLeft() && p.SkipAllowed() {
		return a.Skip(p)
	}
	return a.End()
}

func scanOrEnd(p *player.State, a *action.Manager) error {
	if p.ScanAllowed() {
		return a.Scan(p)
	}
	return a.End()
}
