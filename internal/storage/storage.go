// internal/storage/storage.go
package storage

import "github.com/hexclash/tankagent/pkg/core"

// Backend is the interface all match journal implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management (StartSession assigns the ID to the passed pointer)
	StartSession(s *core.Session) error
	EndSession(outcome string) error

	// Recording
	RecordLine(e *core.LineEvent) error
	RecordScan(s *core.ScanRecord) error
	RecordRound(r *core.RoundSummary) error
	RecordPeerReport(p *core.PeerReport) error
}

// Exportable is an optional interface for backends that write the journal to a file
// when the session ends.
type Exportable interface {
	GetExportedFilePath() string
}
