package comms

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/hexclash/tankagent/internal/cache"
	"github.com/hexclash/tankagent/internal/channel"
	"github.com/hexclash/tankagent/internal/lineio"
)

// Listener forwards side channel lines into a bounded channel from one background goroutine.
// Lines arriving while the channel is full are dropped and counted.
type Listener struct {
	src    Source
	out    channel.Sender[string]
	logger *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	received cache.SafeCounter
	dropped  cache.SafeCounter
}

// NewListener returns a listener reading src into out.
func NewListener(src Source, out channel.Sender[string], logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Listener{
		src:    src,
		out:    out,
		logger: logger,
		stop:   make(chan struct{}),
	}
}

// Start launches the reader goroutine.
func (l *Listener) Start() {
	l.wg.Add(1)
	go l.run()
}

func (l *Listener) run() {
	defer l.wg.Done()
	for {
		line, err := l.src.ReadLine()
		if err != nil {
			select {
			case <-l.stop:
			default:
				if !errors.Is(err, io.EOF) {
					l.logger.Warn("side channel read failed", "error", err)
				}
			}
			return
		}
		select {
		case <-l.stop:
			return
		default:
		}
		l.received.Inc()
		if !l.out.TrySend(line) {
			l.dropped.Inc()
			l.logger.Debug("side channel full, dropping report")
		}
	}
}

// Stop signals the reader once, closes the source to unblock it and waits for it to exit.
func (l *Listener) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
		if err := l.src.Close(); err != nil {
			l.logger.Debug("closing side channel", "error", err)
		}
	})
	l.wg.Wait()
}

// Received counts lines read from the source.
func (l *Listener) Received() int { return l.received.Value() }

// Dropped counts lines lost to a full channel.
func (l *Listener) Dropped() int { return l.dropped.Value() }

// Publisher sends own scans to the team.
type Publisher struct {
	w lineio.Writer
}

func NewPublisher(w lineio.Writer) *Publisher {
	return &Publisher{w: w}
}

// Publish sends the scan rows as one report line.
func (p *Publisher) Publish(rows []string) error {
	line, err := EncodeReport(rows)
	if err != nil {
		return err
	}
	return p.w.WriteLine(line)
}
