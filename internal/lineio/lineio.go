// Package lineio carries the newline-delimited server protocol.
package lineio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Reader yields one server line at a time. It returns io.EOF when the server is gone.
type Reader interface {
	ReadLine() (string, error)
}

// Writer sends one command line to the server.
type Writer interface {
	WriteLine(line string) error
}

// ScannerReader reads lines from any io.Reader.
type ScannerReader struct {
	s *bufio.Scanner
}

// NewReader wraps r. Trailing carriage returns are stripped.
func NewReader(r io.Reader) *ScannerReader {
	return &ScannerReader{s: bufio.NewScanner(r)}
}

func (r *ScannerReader) ReadLine() (string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", fmt.Errorf("reading line: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(r.s.Text(), "\r"), nil
}

// LineWriter writes newline-terminated lines to an io.Writer.
type LineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

func (w *LineWriter) WriteLine(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := io.WriteString(w.w, line+"\n"); err != nil {
		return fmt.Errorf("writing %q: %w", line, err)
	}
	return nil
}

// Stdio returns the reader and writer bound to the process's stdin and stdout.
func Stdio() (*ScannerReader, *LineWriter) {
	return NewReader(os.Stdin), NewWriter(os.Stdout)
}

// FileSource replays a recorded server session, one server message per line. It stands in for
// a live server when input.mockFile is set.
type FileSource struct {
	lines []string
	next  int
}

// OpenFile loads every line of path.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mock server file: %w", err)
	}
	defer f.Close()
	return ReadAll(f)
}

// ReadAll loads every line of r into a FileSource.
func ReadAll(r io.Reader) (*FileSource, error) {
	src := &FileSource{}
	s := bufio.NewScanner(r)
	for s.Scan() {
		src.lines = append(src.lines, strings.TrimRight(s.Text(), "\r"))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading mock server file: %w", err)
	}
	return src, nil
}

// Lines returns the loaded lines.
func (f *FileSource) Lines() []string { return f.lines }

func (f *FileSource) ReadLine() (string, error) {
	if f.next >= len(f.lines) {
		return "", io.EOF
	}
	line := f.lines[f.next]
	f.next++
	return line, nil
}

// Recorder is a Writer that keeps every line in memory.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *Recorder) WriteLine(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	return nil
}

// Lines returns a copy of the recorded lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Tee writes every line to all writers and stops at the first error.
type Tee []Writer

func (t Tee) WriteLine(line string) error {
	for _, w := range t {
		if err := w.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}
