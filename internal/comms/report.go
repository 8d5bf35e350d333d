// Package comms is the team side channel: peers exchange their scans as `SCAN {"scan":[...]}`
// lines so every unit learns about enemies it has not seen itself.
package comms

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotAReport is returned for side channel lines that carry no scan.
var ErrNotAReport = errors.New("not a scan report")

const reportTag = "SCAN"

// Report is one peer scan, as the rows of the scan payload.
type Report struct {
	Scan []string `json:"scan"`
}

// Payload is the scan rows concatenated.
func (r Report) Payload() string {
	return strings.Join(r.Scan, "")
}

// DecodeReport parses a `SCAN {"scan":[...]}` line.
func DecodeReport(line string) (Report, error) {
	tag, body, ok := strings.Cut(strings.TrimSpace(line), " ")
	if !ok || tag != reportTag {
		return Report{}, fmt.Errorf("%w: %q", ErrNotAReport, line)
	}
	var r Report
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return Report{}, fmt.Errorf("decoding scan report: %w", err)
	}
	return r, nil
}

// EncodeReport renders rows as a side channel line without the trailing newline.
func EncodeReport(rows []string) (string, error) {
	if rows == nil {
		rows = []string{}
	}
	data, err := json.Marshal(Report{Scan: rows})
	if err != nil {
		return "", fmt.Errorf("encoding scan report: %w", err)
	}
	return reportTag + " " + string(data), nil
}
