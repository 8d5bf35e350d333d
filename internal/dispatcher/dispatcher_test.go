package dispatcher

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testLogger) {
	logger := &testLogger{}

	d, err := New(logger)
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}

	return d, logger
}

func TestDispatcher_RoutesByTag(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var got Event
	d.Register("MOVE", func(e Event) error {
		got = e
		return nil
	})

	err := d.Dispatch(Event{Tag: "MOVE", Line: "MOVE R 3", Tokens: []string{"MOVE", "R", "3"}})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if got.Line != "MOVE R 3" {
		t.Errorf("handler got %q", got.Line)
	}
}

func TestDispatcher_NoHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	err := d.Dispatch(Event{Tag: "UNKNOWN"})

	if err == nil {
		t.Fatal("expected error for unknown tag")
	}
	if !strings.Contains(err.Error(), "UNKNOWN") {
		t.Errorf("error should name the tag: %v", err)
	}
}

func TestDispatcher_Fallback(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var fallback []string
	d.Fallback(func(e Event) error {
		fallback = append(fallback, e.Line)
		return nil
	})
	d.Register("OK", func(Event) error { return nil })

	for _, line := range []string{"ACTION!", "OK", "abcdefghijk"} {
		tag := line
		if err := d.Dispatch(Event{Tag: tag, Line: line}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(fallback) != 2 || fallback[0] != "ACTION!" || fallback[1] != "abcdefghijk" {
		t.Errorf("unexpected fallback lines %v", fallback)
	}
}

func TestDispatcher_HandlerError(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register("HUH?", func(Event) error { return fmt.Errorf("write failed") })

	if err := d.Dispatch(Event{Tag: "HUH?"}); err == nil {
		t.Error("expected handler error to be returned")
	}
}

func TestDispatcher_LoggedHandler(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("DAMAGE", func(Event) error { return nil }, Logged())

	d.Dispatch(Event{Tag: "DAMAGE", Line: "DAMAGE 1"})

	logger.mu.Lock()
	defer logger.mu.Unlock()

	if len(logger.messages) < 2 {
		t.Errorf("expected at least 2 log messages, got %d", len(logger.messages))
	}
}

func TestDispatcher_LoggedHandlerError(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("DEAD", func(Event) error {
		return fmt.Errorf("test error")
	}, Logged())

	d.Dispatch(Event{Tag: "DEAD"})

	logger.mu.Lock()
	defer logger.mu.Unlock()

	hasError := false
	for _, msg := range logger.messages {
		if strings.HasPrefix(msg, "ERROR") {
			hasError = true
			break
		}
	}

	if !hasError {
		t.Error("expected error log message")
	}
}

func TestDispatcher_HasHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register("FINISH", func(Event) error { return nil })

	if !d.HasHandler("FINISH") {
		t.Error("expected handler to exist")
	}

	if d.HasHandler("START") {
		t.Error("expected handler to not exist")
	}
}
