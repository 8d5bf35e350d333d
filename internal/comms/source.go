package comms

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Source yields side channel lines until it is closed or the peer goes away.
type Source interface {
	ReadLine() (string, error)
	Close() error
}

// streamSource reads newline-delimited lines from a stream such as an inherited descriptor.
type streamSource struct {
	rc io.ReadCloser
	s  *bufio.Scanner
}

// NewStreamSource reads lines from rc.
func NewStreamSource(rc io.ReadCloser) Source {
	return &streamSource{rc: rc, s: bufio.NewScanner(rc)}
}

func (s *streamSource) ReadLine() (string, error) {
	for s.s.Scan() {
		if line := strings.TrimSpace(s.s.Text()); line != "" {
			return line, nil
		}
	}
	if err := s.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *streamSource) Close() error {
	return s.rc.Close()
}

// wsSource reads text frames from a websocket relay. A frame may carry several lines.
type wsSource struct {
	conn    *ws.Conn
	pending []string
}

// DialRelay connects to a websocket relay that fans scans out to the team.
func DialRelay(url string) (*ws.Conn, error) {
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return conn, nil
}

// NewRelaySource reads lines from conn.
func NewRelaySource(conn *ws.Conn) Source {
	return &wsSource{conn: conn}
}

func (s *wsSource) ReadLine() (string, error) {
	for len(s.pending) == 0 {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(string(msg), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				s.pending = append(s.pending, line)
			}
		}
	}
	line := s.pending[0]
	s.pending = s.pending[1:]
	return line, nil
}

func (s *wsSource) Close() error {
	return s.conn.Close()
}

// RelayWriter publishes lines as websocket text frames. Writes are serialized.
type RelayWriter struct {
	mu   sync.Mutex
	conn *ws.Conn
}

func NewRelayWriter(conn *ws.Conn) *RelayWriter {
	return &RelayWriter{conn: conn}
}

func (w *RelayWriter) WriteLine(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("websocket SetWriteDeadline: %w", err)
	}
	if err := w.conn.WriteMessage(ws.TextMessage, []byte(line)); err != nil {
		return fmt.Errorf("websocket write: %w", err)
	}
	return nil
}
