package agent

import (
	"strings"
	"time"

	"github.com/hexclash/tankagent/internal/parser"
	"github.com/hexclash/tankagent/pkg/core"
)

func (a *Agent) recordLine(direction string, tokens []string, line string) {
	tag := parser.Classify(tokens).String()
	if direction == core.DirectionOut && len(tokens) > 0 {
		tag = tokens[0]
	}
	err := a.journal.RecordLine(&core.LineEvent{
		Time:      time.Now(),
		Round:     a.p.Round(),
		Direction: direction,
		Tag:       tag,
		Line:      strings.TrimSpace(line),
	})
	if err != nil {
		a.logger.Error("journal line", "error", err)
	}
}

func (a *Agent) scanRecord(payload string) *core.ScanRecord {
	cells := a.result.Cells()
	rec := &core.ScanRecord{
		Time:    time.Now(),
		Round:   a.p.Round(),
		Facing:  a.p.Facing().String(),
		Payload: payload,
		Cells:   make([]core.ScannedCell, 0, len(cells)),
		Enemies: a.result.Enemies(),
		Walls:   a.result.Walls(),
	}
	for i, c := range cells {
		rec.Cells = append(rec.Cells, core.ScannedCell{
			Index:    i,
			Q:        c.Q,
			R:        c.R,
			S:        c.S,
			Occupant: string(c.Occupant),
		})
	}
	return rec
}

func (a *Agent) recordRound() {
	sum := &core.RoundSummary{
		Time:        time.Now(),
		Round:       a.p.Round(),
		Strategy:    a.controller.Active().String(),
		Health:      a.p.Health(),
		Facing:      a.p.Facing().String(),
		Drives:      a.p.DriveCount(),
		Scans:       a.p.ScanCount(),
		Shots:       a.p.ShootCount(),
		Skips:       a.p.SkipCount(),
		Steps:       a.p.Steps(),
		PointsSpent: a.p.PointsSpent(),
		Actions:     a.actions.Counter(),
	}
	if err := a.journal.RecordRound(sum); err != nil {
		a.logger.Error("journal round", "error", err)
	}
	if a.telemetry != nil {
		if err := a.telemetry.WriteRound(a.session, sum); err != nil {
			a.logger.Debug("telemetry round", "error", err)
		}
	}
}
