package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Session{},
	&LineEvent{},
	&Scan{},
	&ScanCell{},
	&RoundSummary{},
	&PeerReport{},
}

// Session is one match of one agent process
type Session struct {
	gorm.Model
	StartedAt         time.Time `json:"startedAt" gorm:"type:timestamptz;"`
	EndedAt           time.Time `json:"endedAt" gorm:"type:timestamptz;"`
	Class             string    `json:"class" gorm:"size:1"`
	Colour            string    `json:"colour" gorm:"size:1;index:idx_session_colour"`
	SideLen           int       `json:"sideLen"`
	ExplorationRounds int       `json:"explorationRounds"`
	Source            string    `json:"source" gorm:"size:255"`
	Outcome           string    `json:"outcome" gorm:"size:32"`
}

func (*Session) TableName() string {
	return "sessions"
}

// LineEvent is one protocol line in either direction
type LineEvent struct {
	ID        uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Time      time.Time `json:"time" gorm:"type:timestamptz;"`
	SessionID uint      `json:"sessionId" gorm:"index:idx_lineevent_session_id"`
	Session   Session   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	Round     int       `json:"round" gorm:"index:idx_lineevent_round"`
	Direction string    `json:"direction" gorm:"size:3"`
	Tag       string    `json:"tag" gorm:"size:16"`
	Line      string    `json:"line" gorm:"size:255"`
}

func (*LineEvent) TableName() string {
	return "line_events"
}

// Scan is one interpreted scan reply
type Scan struct {
	ID        uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	Time      time.Time      `json:"time" gorm:"type:timestamptz;"`
	SessionID uint           `json:"sessionId" gorm:"index:idx_scan_session_id"`
	Session   Session        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	Round     int            `json:"round" gorm:"index:idx_scan_round"`
	Facing    string         `json:"facing" gorm:"size:2"`
	Payload   string         `json:"payload" gorm:"size:64"`
	Enemies   datatypes.JSON `json:"enemies"`
	Walls     datatypes.JSON `json:"walls"`
	// Footprint joins the cell centres in scan order
	Footprint geom.LineString `json:"footprint"`
	Cells     []ScanCell      `json:"cells"`
}

func (*Scan) TableName() string {
	return "scans"
}

// ScanCell is one cell of a scan. Center is the planar centre of the hex with unit size,
// relative to the scanning unit.
type ScanCell struct {
	ID       uint       `json:"id" gorm:"primarykey;autoIncrement;"`
	ScanID   uint       `json:"scanId" gorm:"index:idx_scancell_scan_id"`
	Index    int        `json:"index"`
	Q        int        `json:"q"`
	R        int        `json:"r"`
	S        int        `json:"s"`
	Occupant string     `json:"occupant" gorm:"size:1"`
	Center   geom.Point `json:"center"`
}

func (*ScanCell) TableName() string {
	return "scan_cells"
}

// RoundSummary is the unit state at the end of a round
type RoundSummary struct {
	ID          uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Time        time.Time `json:"time" gorm:"type:timestamptz;"`
	SessionID   uint      `json:"sessionId" gorm:"index:idx_roundsummary_session_id"`
	Session     Session   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	Round       int       `json:"round"`
	Strategy    string    `json:"strategy" gorm:"size:16"`
	Health      int       `json:"health"`
	Facing      string    `json:"facing" gorm:"size:2"`
	Drives      int       `json:"drives"`
	Scans       int       `json:"scans"`
	Shots       int       `json:"shots"`
	Skips       int       `json:"skips"`
	Steps       int       `json:"steps"`
	PointsSpent int       `json:"pointsSpent"`
	Actions     int       `json:"actions"`
}

func (*RoundSummary) TableName() string {
	return "round_summaries"
}

// PeerReport is a scan received from a team mate
type PeerReport struct {
	ID        uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Time      time.Time `json:"time" gorm:"type:timestamptz;"`
	SessionID uint      `json:"sessionId" gorm:"index:idx_peerreport_session_id"`
	Session   Session   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	Round     int       `json:"round"`
	Payload   string    `json:"payload" gorm:"size:64"`
	Enemies   int       `json:"enemies"`
}

func (*PeerReport) TableName() string {
	return "peer_reports"
}
