package logging

import (
	"context"
	"log/slog"
)

// ContextProvider returns attributes that change while the agent runs, such as the round.
type ContextProvider func() []slog.Attr

// ContextHandler stamps the provider's attributes on every record before passing it on.
type ContextHandler struct {
	next  slog.Handler
	stamp ContextProvider
}

// NewContextHandler wraps next. A nil provider makes the handler a pass-through.
func NewContextHandler(next slog.Handler, stamp ContextProvider) *ContextHandler {
	return &ContextHandler{next: next, stamp: stamp}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.stamp != nil {
		r = r.Clone()
		r.AddAttrs(h.stamp()...)
	}
	return h.next.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewContextHandler(h.next.WithAttrs(attrs), h.stamp)
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return NewContextHandler(h.next.WithGroup(name), h.stamp)
}
