package main

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/hexclash/tankagent/internal/channel"
	"github.com/hexclash/tankagent/internal/comms"
	"github.com/hexclash/tankagent/internal/config"
	"github.com/hexclash/tankagent/internal/influx"
	"github.com/hexclash/tankagent/internal/lineio"
	"github.com/hexclash/tankagent/internal/storage"
)

// openJournal builds and initializes the configured journal backend.
func openJournal(log zerolog.Logger) (storage.Backend, error) {
	cfg := config.GetJournalConfig()
	backend, err := storage.NewBackend(cfg, config.GetDBConfig(), log)
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		return nil, err
	}
	log.Info().Str("type", cfg.Type).Msg("Journal initialized")
	return backend, nil
}

// openTelemetry connects to InfluxDB. It returns nil when telemetry is disabled or unusable.
func openTelemetry(ctx context.Context, log zerolog.Logger, logsDir string, start time.Time) *influx.Manager {
	backup := filepath.Join(logsDir, "telemetry."+start.Format("20060102_150405")+".lp.gz")
	m := influx.NewManager(config.GetInfluxConfig(), log, backup)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := m.Connect(ctx); err != nil {
		if !errors.Is(err, influx.ErrDisabled) {
			log.Warn().Err(err).Msg("Telemetry unavailable")
		}
		_ = m.Close()
		return nil
	}
	return m
}

// teamLink is the side channel to the other units of the team.
type teamLink struct {
	peers     channel.Channel[string]
	listener  *comms.Listener
	publisher *comms.Publisher
}

func (t *teamLink) Close() {
	t.listener.Stop()
	t.peers.Close()
}

// openTeamLink starts the side channel listener. Inherited fds are used unless a relay URL is
// configured.
func openTeamLink(logger *slog.Logger) (*teamLink, error) {
	cfg := config.GetCommsConfig()
	if !cfg.Enabled {
		return nil, nil
	}

	var (
		src comms.Source
		pub *comms.Publisher
	)
	if cfg.URL != "" {
		conn, err := comms.DialRelay(cfg.URL)
		if err != nil {
			return nil, err
		}
		src = comms.NewRelaySource(conn)
		pub = comms.NewPublisher(comms.NewRelayWriter(conn))
		logger.Info("team relay connected", "url", cfg.URL)
	} else {
		in, err := comms.OpenFd(cfg.Fd, "team-in")
		if err != nil {
			return nil, err
		}
		out, err := comms.OpenFd(cfg.PublishFd, "team-out")
		if err != nil {
			in.Close()
			return nil, err
		}
		src = comms.NewStreamSource(in)
		pub = comms.NewPublisher(lineio.NewWriter(out))
		logger.Info("team channel on inherited fds", "in", cfg.Fd, "out", cfg.PublishFd)
	}

	peers := channel.New[string](cfg.BufferSize)
	l := comms.NewListener(src, peers, logger)
	l.Start()
	return &teamLink{peers: peers, listener: l, publisher: pub}, nil
}

func exportedPath(b storage.Backend) string {
	if e, ok := b.(storage.Exportable); ok {
		return e.GetExportedFilePath()
	}
	return ""
}
