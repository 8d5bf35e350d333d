package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/hexclash/tankagent/internal/agent"
	"github.com/hexclash/tankagent/internal/config"
	"github.com/hexclash/tankagent/internal/lineio"
	"github.com/hexclash/tankagent/internal/logging"
	intOtel "github.com/hexclash/tankagent/internal/otel"
	"github.com/hexclash/tankagent/internal/player"
	"github.com/hexclash/tankagent/pkg/core"
)

// BuildDate can be set at build time via ldflags
var (
	Version   = "0.0.1"
	BuildDate = "unknown"
)

const appName = "tankagent"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run plays one match. Usage: tankagent [T|S|H]. The config directory is taken from
// TANKAGENT_CONFIG_DIR and defaults to the working directory.
func run(args []string) int {
	sessionStart := time.Now()

	slogManager := logging.NewSlogManager()
	slogManager.Setup(logging.Options{Level: "info"})
	logger := slogManager.Logger()

	configDir := os.Getenv("TANKAGENT_CONFIG_DIR")
	if configDir == "" {
		configDir = "."
	}
	if err := config.Load(configDir); err != nil {
		if !errors.Is(err, config.ErrNoConfigFile) {
			logger.Error("Failed to load config", "error", err)
			return 1
		}
		logger.Warn("Using default config", "dir", configDir)
	}

	selector := config.GetString("unitClass")
	if len(args) > 0 {
		selector = args[0]
	}
	class, err := player.ParseClass(selector)
	if err != nil {
		logger.Error("Invalid unit class", "error", err)
		return 1
	}

	level := config.GetString("logLevel")
	logsDir := config.GetString("logsDir")

	var logFile io.Writer
	if f, err := logging.OpenLogFile(logsDir, appName, sessionStart); err != nil {
		logger.Warn("Session log file unavailable", "error", err)
	} else {
		defer f.Close()
		logFile = f
	}

	provider, err := setupOTel(logsDir, sessionStart, class)
	if err != nil {
		logger.Warn("OTel disabled", "error", err)
		provider, _ = intOtel.New(intOtel.Config{})
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	var gelf slog.Handler
	if config.GetBool("graylog.enabled") {
		h, closer, err := logging.NewGelfHandler(config.GetString("graylog.address"), level)
		if err != nil {
			logger.Warn("Graylog disabled", "error", err)
		} else {
			defer closer.Close()
			gelf = h
		}
	}

	var current atomic.Pointer[agent.Agent]
	slogManager.Setup(logging.Options{
		Level:    level,
		File:     logFile,
		Gelf:     gelf,
		Provider: provider.LoggerProvider(),
		Context: func() []slog.Attr {
			if a := current.Load(); a != nil {
				return a.LogContext()
			}
			return nil
		},
	})
	logger = slogManager.Logger()
	logger.Info("Starting", "version", Version, "buildDate", BuildDate, "class", class.String())

	zl := logging.NewZerolog(os.Stderr, logFile, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdin, writer := lineio.Stdio()
	var reader lineio.Reader = stdin
	source := "stdio"
	if mock := config.GetString("input.mockFile"); mock != "" {
		fs, err := lineio.OpenFile(mock)
		if err != nil {
			logger.Error("Failed to open mock server file", "error", err)
			return 1
		}
		reader = fs
		source = mock
	}

	start, err := readStart(reader)
	if err != nil {
		logger.Error("No START from server", "error", err)
		return 1
	}
	class, err = handshake(reader, writer, class)
	if err != nil {
		logger.Error("Handshake failed", "error", err)
		return 1
	}
	logger.Info("Joined match", "class", class.String(), "colour", start.Colour,
		"sideLen", start.SideLen, "explorationRounds", start.ExplorationRounds)

	journal, err := openJournal(zl)
	if err != nil {
		logger.Error("Failed to open journal", "error", err)
		return 1
	}
	defer journal.Close()

	cfg := agent.Config{
		Player:  player.New(class, start.Colour, start.ExplorationRounds, start.SideLen),
		Reader:  reader,
		Writer:  writer,
		Logger:  logger,
		Journal: journal,
		Session: &core.Session{
			StartedAt:         sessionStart,
			Class:             class.Letter(),
			Colour:            start.Colour,
			SideLen:           start.SideLen,
			ExplorationRounds: start.ExplorationRounds,
			Source:            source,
		},
	}

	if tm := openTelemetry(ctx, zl, logsDir, sessionStart); tm != nil {
		defer tm.Close()
		cfg.Telemetry = tm
	}

	link, err := openTeamLink(logger)
	if err != nil {
		logger.Warn("Team channel unavailable", "error", err)
	}
	if link != nil {
		defer link.Close()
		cfg.Peers = link.peers
		cfg.Publisher = link.publisher
	}

	a, err := agent.New(cfg)
	if err != nil {
		logger.Error("Failed to create agent", "error", err)
		return 1
	}
	current.Store(a)

	outcome, err := a.Run(ctx)
	if err != nil {
		logger.Error("Match aborted", "outcome", outcome.String(), "error", err)
		return 1
	}
	if path := exportedPath(journal); path != "" {
		logger.Info("Journal exported", "path", path)
	}
	return 0
}

func setupOTel(logsDir string, start time.Time, class player.Class) (*intOtel.Provider, error) {
	oc := config.GetOTelConfig()
	cfg := intOtel.Config{
		Enabled:      oc.Enabled,
		ServiceName:  oc.ServiceName,
		BatchTimeout: oc.BatchTimeout,
		Endpoint:     oc.Endpoint,
		Insecure:     oc.Insecure,
		Attributes:   map[string]string{"unit.class": class.Letter()},
	}
	if oc.Enabled && oc.Endpoint == "" {
		f, err := logging.OpenLogFile(logsDir, appName+".otel", start)
		if err != nil {
			return nil, fmt.Errorf("opening otel log file: %w", err)
		}
		cfg.LogWriter = f
	}
	return intOtel.New(cfg)
}
