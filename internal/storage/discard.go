package storage

import "github.com/hexclash/tankagent/pkg/core"

// Discard is a Backend that keeps nothing, used when the journal is disabled.
type Discard struct{}

func (Discard) Init() error                             { return nil }
func (Discard) Close() error                            { return nil }
func (Discard) StartSession(*core.Session) error        { return nil }
func (Discard) EndSession(string) error                 { return nil }
func (Discard) RecordLine(*core.LineEvent) error        { return nil }
func (Discard) RecordScan(*core.ScanRecord) error       { return nil }
func (Discard) RecordRound(*core.RoundSummary) error    { return nil }
func (Discard) RecordPeerReport(*core.PeerReport) error { return nil }
