package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{ TableName() string }
		expected string
	}{
		{"Session", &Session{}, "sessions"},
		{"LineEvent", &LineEvent{}, "line_events"},
		{"Scan", &Scan{}, "scans"},
		{"ScanCell", &ScanCell{}, "scan_cells"},
		{"RoundSummary", &RoundSummary{}, "round_summaries"},
		{"PeerReport", &PeerReport{}, "peer_reports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.TableName())
		})
	}
}

func TestDatabaseModelsCoverTables(t *testing.T) {
	assert.Len(t, DatabaseModels, 6)
}
