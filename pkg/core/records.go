// pkg/core/records.go
package core

import "time"

// LineEvent is one protocol line, received or sent
type LineEvent struct {
	Time      time.Time
	Round     int
	Direction string
	Tag       string
	Line      string
}

// ScannedCell is one cell of a scan, relative to the scanning unit
type ScannedCell struct {
	Index    int
	Q, R, S  int
	Occupant string
}

// ScanRecord is a scan reply as interpreted by the agent
type ScanRecord struct {
	Time    time.Time
	Round   int
	Facing  string
	Payload string
	Cells   []ScannedCell
	Enemies []int
	Walls   []int
}

// RoundSummary is the state of the unit at the end of a round
type RoundSummary struct {
	Time        time.Time
	Round       int
	Strategy    string
	Health      int
	Facing      string
	Drives      int
	Scans       int
	Shots       int
	Skips       int
	Steps       int
	PointsSpent int
	Actions     int
}

// PeerReport is a scan received from a team mate over the side channel
type PeerReport struct {
	Time    time.Time
	Round   int
	Payload string
	Enemies int
}
