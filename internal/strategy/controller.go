// Package strategy picks the active behaviour of the unit and runs it for one decision cycle.
package strategy

import (
	"fmt"
	"log/slog"

	"github.com/hexclash/tankagent/internal/player"
)

// Kind is one of the three mutually exclusive strategies.
type Kind int

const (
	FindCorner Kind = iota
	Explorer
	Traverse
)

func (k Kind) String() string {
	switch k {
	case FindCorner:
		return "find_corner"
	case Explorer:
		return "explorer"
	case Traverse:
		return "traverse"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Controller holds the active strategy. It starts in FindCorner.
type Controller struct {
	active Kind
	logger *slog.Logger
}

// NewController returns a controller in FindCorner. A nil logger discards transition logs.
func NewController(logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{active: FindCorner, logger: logger}
}

func (c *Controller) Active() Kind { return c.active }

// Set forces the active strategy.
func (c *Controller) Set(k Kind) { c.active = k }

// Evaluate recomputes the active strategy from the unit's state. FindCorner stays active for
// the rest of the round in which the corner is found.
func (c *Controller) Evaluate(p *player.State) Kind {
	next := Traverse
	switch {
	case !p.CornerFound() || p.CornerFoundThisRound():
		next = FindCorner
	case p.Round() < p.ExplorationRounds():
		next = Explorer
	}
	if next != c.active {
		c.logger.Info("strategy changed", "from", c.active.String(), "to", next.String(), "round", p.Round())
	}
	c.active = next
	return next
}
