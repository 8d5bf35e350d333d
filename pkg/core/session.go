// pkg/core/session.go
package core

import "time"

// Session is one match played by one agent process
type Session struct {
	ID                uint
	StartedAt         time.Time
	EndedAt           time.Time
	Class             string // unit class letter accepted by the server (T, S or H)
	Colour            string
	SideLen           int
	ExplorationRounds int
	Source            string // "stdio" or the mock server file
	Outcome           string
}

// Direction of a protocol line relative to the agent
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)
