package convert

import (
	"github.com/hexclash/tankagent/internal/geo"
	"github.com/hexclash/tankagent/internal/model"
	"github.com/hexclash/tankagent/pkg/core"
)

// CoreToSession converts a core.Session to a GORM model.Session.
func CoreToSession(s core.Session) model.Session {
	m := model.Session{
		StartedAt:         s.StartedAt,
		EndedAt:           s.EndedAt,
		Class:             s.Class,
		Colour:            s.Colour,
		SideLen:           s.SideLen,
		ExplorationRounds: s.ExplorationRounds,
		Source:            s.Source,
		Outcome:           s.Outcome,
	}
	m.ID = s.ID
	return m
}

// CoreToLineEvent converts a core.LineEvent to a GORM model.LineEvent.
func CoreToLineEvent(e core.LineEvent, sessionID uint) model.LineEvent {
	return model.LineEvent{
		Time:      e.Time,
		SessionID: sessionID,
		Round:     e.Round,
		Direction: e.Direction,
		Tag:       e.Tag,
		Line:      e.Line,
	}
}

// CoreToScan converts a core.ScanRecord to a GORM model.Scan with its cells.
func CoreToScan(s core.ScanRecord, sessionID uint) model.Scan {
	cells := make([]model.ScanCell, 0, len(s.Cells))
	for _, c := range s.Cells {
		cells = append(cells, model.ScanCell{
			Index:    c.Index,
			Q:        c.Q,
			R:        c.R,
			S:        c.S,
			Occupant: c.Occupant,
			Center:   geo.HexCenter(c.Q, c.R),
		})
	}
	return model.Scan{
		Time:      s.Time,
		SessionID: sessionID,
		Round:     s.Round,
		Facing:    s.Facing,
		Payload:   s.Payload,
		Enemies:   intsToJSON(s.Enemies),
		Walls:     intsToJSON(s.Walls),
		Footprint: geo.Footprint(s.Cells),
		Cells:     cells,
	}
}

// CoreToRoundSummary converts a core.RoundSummary to a GORM model.RoundSummary.
func CoreToRoundSummary(r core.RoundSummary, sessionID uint) model.RoundSummary {
	return model.RoundSummary{
		Time:        r.Time,
		SessionID:   sessionID,
		Round:       r.Round,
		Strategy:    r.Strategy,
		Health:      r.Health,
		Facing:      r.Facing,
		Drives:      r.Drives,
		Scans:       r.Scans,
		Shots:       r.Shots,
		Skips:       r.Skips,
		Steps:       r.Steps,
		PointsSpent: r.PointsSpent,
		Actions:     r.Actions,
	}
}

// CoreToPeerReport converts a core.PeerReport to a GORM model.PeerReport.
func CoreToPeerReport(p core.PeerReport, sessionID uint) model.PeerReport {
	return model.PeerReport{
		Time:      p.Time,
		SessionID: sessionID,
		Round:     p.Round,
		Payload:   p.Payload,
		Enemies:   p.Enemies,
	}
}
