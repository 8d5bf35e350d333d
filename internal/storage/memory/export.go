// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hexclash/tankagent/pkg/core"
)

// MatchExport is the root JSON structure
type MatchExport struct {
	Session core.Session      `json:"session"`
	Rounds  []RoundExport     `json:"rounds"`
	Lines   [][]any           `json:"lines"`
	Peers   []core.PeerReport `json:"peers"`
}

// RoundExport is one round of the export
type RoundExport struct {
	Round   int                `json:"round"`
	Summary *core.RoundSummary `json:"summary,omitempty"`
	Scans   []core.ScanRecord  `json:"scans"`
}

// exportJSON writes the journal to a JSON file, gzipped when configured
func (b *Backend) exportJSON() error {
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data := b.buildExport()

	name := exportFileName(b.session)
	var path string
	var err error
	if b.cfg.CompressOutput {
		path = filepath.Join(b.cfg.OutputDir, name+".json.gz")
		err = b.writeGzipJSON(path, data)
	} else {
		path = filepath.Join(b.cfg.OutputDir, name+".json")
		err = b.writeJSON(path, data)
	}
	if err != nil {
		return err
	}
	b.exportPath = path
	return nil
}

// exportFileName is <colour>_<class>_<start time>, safe for every filesystem
func exportFileName(s *core.Session) string {
	name := fmt.Sprintf("%s_%s_%s", s.Colour, s.Class, s.StartedAt.Format("2006-01-02_15-04-05"))
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, name)
}

func (b *Backend) buildExport() MatchExport {
	export := MatchExport{
		Session: *b.session,
		Rounds:  make([]RoundExport, 0, len(b.rounds)),
		Lines:   make([][]any, 0, len(b.lines)),
		Peers:   b.peers,
	}
	if export.Peers == nil {
		export.Peers = []core.PeerReport{}
	}

	keys := make([]int, 0, len(b.rounds))
	for n := range b.rounds {
		keys = append(keys, n)
	}
	sort.Ints(keys)
	for _, n := range keys {
		r := b.rounds[n]
		scans := r.Scans
		if scans == nil {
			scans = []core.ScanRecord{}
		}
		export.Rounds = append(export.Rounds, RoundExport{Round: n, Summary: r.Summary, Scans: scans})
	}

	// [round, direction, line] keeps the transcript compact
	for _, l := range b.lines {
		export.Lines = append(export.Lines, []any{l.Round, l.Direction, l.Line})
	}

	return export
}

func (b *Backend) writeJSON(path string, data MatchExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func (b *Backend) writeGzipJSON(path string, data MatchExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
