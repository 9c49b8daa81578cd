package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/lox/klondike/internal/config"
)

func newLogger(w io.Writer, level log.Level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
		Level:           level,
	})
}

// openLogFile sends logging to the configured file, since the terminal UI
// owns the screen. The returned func closes it.
func openLogFile(cfg *config.Config, level log.Level) (*log.Logger, func(), error) {
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := newLogger(f, level, "klondike")
	return logger, func() {
		if err := f.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}, nil
}

// setupSignalHandler returns a context cancelled on interrupt
func setupSignalHandler(ctx context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		logger.Debug("Shutting down", "cause", context.Cause(ctx))
	}()
	return ctx, cancel
}

// loadConfig reads the config file and applies the global flags
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Debug {
		cfg.Game.Debug = true
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}
