// Package dispatcher routes classified server lines to the handler registered for their tag.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/hexclash/tankagent/internal/dispatcher"

// ErrNoHandler is returned for a tag with no handler and no fallback.
var ErrNoHandler = errors.New("no handler")

// Event is one server line after classification.
type Event struct {
	Tag       string
	Line      string
	Tokens    []string
	Timestamp time.Time
}

// HandlerFunc processes an event.
type HandlerFunc func(Event) error

// Logger interface for pluggable logging. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	logged bool
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

// Dispatcher routes events to registered handlers. It is not safe for concurrent registration;
// handlers are registered once before the read loop starts.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	fallback HandlerFunc
	logger   Logger

	handled  metric.Int64Counter
	unrouted metric.Int64Counter
}

// New creates a new Dispatcher with the given logger.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: make(map[string]HandlerFunc),
		logger:   logger,
	}

	m := otel.Meter(instrumentationName)

	var err error

	d.handled, err = m.Int64Counter(
		"dispatcher.lines.handled",
		metric.WithDescription("Total server lines handled"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating handled counter: %w", err)
	}

	d.unrouted, err = m.Int64Counter(
		"dispatcher.lines.unrouted",
		metric.WithDescription("Server lines that reached the fallback handler or no handler at all"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating unrouted counter: %w", err)
	}

	return d, nil
}

// Register adds a handler for the given tag with optional configuration.
func (d *Dispatcher) Register(tag string, h HandlerFunc, opts ...Option) {
	d.handlers[tag] = d.wrap(tag, h, opts)
}

// Fallback sets the handler for tags nobody registered.
func (d *Dispatcher) Fallback(h HandlerFunc, opts ...Option) {
	d.fallback = d.wrap("fallback", h, opts)
}

func (d *Dispatcher) wrap(tag string, h HandlerFunc, opts []Option) HandlerFunc {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logged {
		return d.withLogging(tag, h)
	}
	return h
}

// Dispatch routes an event to its registered handler, or to the fallback.
func (d *Dispatcher) Dispatch(e Event) error {
	tagAttr := metric.WithAttributes(attribute.String("tag", e.Tag))
	h, ok := d.handlers[e.Tag]
	if !ok {
		d.unrouted.Add(context.Background(), 1, tagAttr)
		if d.fallback == nil {
			return fmt.Errorf("%w for %s", ErrNoHandler, e.Tag)
		}
		h = d.fallback
	}
	d.handled.Add(context.Background(), 1, tagAttr)
	return h(e)
}

// HasHandler returns true if a handler is registered for the tag.
func (d *Dispatcher) HasHandler(tag string) bool {
	_, ok := d.handlers[tag]
	return ok
}

func (d *Dispatcher) withLogging(tag string, h HandlerFunc) HandlerFunc {
	return func(e Event) error {
		start := time.Now()
		d.logger.Debug("handling line", "tag", tag, "line", e.Line)

		err := h(e)

		if err != nil {
			d.logger.Error("line failed", "tag", tag, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("line complete", "tag", tag, "duration", time.Since(start))
		}

		return err
	}
}
