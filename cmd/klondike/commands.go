package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/klondike/internal/config"
	"github.com/lox/klondike/internal/session"
	"github.com/lox/klondike/internal/simulator"
	"github.com/lox/klondike/internal/tui"
)

// PlayCmd starts an interactive game
type PlayCmd struct {
	Draw    int    `kong:"help='Cards per draw, 1 or 3 (default from config)'"`
	Seed    int64  `kong:"help='Seed for the first deal (0 picks one)'"`
	Theme   string `kong:"help='Colour theme: ruby, classic or mono'"`
	NoColor bool   `kong:"help='Disable colours'"`
	Bell    bool   `kong:"help='Ring the terminal bell on a win'"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if c.Draw != 0 {
		cfg.Game.DrawCount = c.Draw
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.Theme != "" {
		cfg.UI.Theme = c.Theme
	}
	cfg.UI.NoColor = cfg.UI.NoColor || c.NoColor
	cfg.UI.Bell = cfg.UI.Bell || c.Bell
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := openLogFile(cfg, cfg.LogLevel())
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := newSession(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler(context.Background(), logger)
	defer cancel()

	if err := tui.Run(ctx, s, logger, tui.Options{
		Theme:   cfg.UI.Theme,
		Bell:    cfg.UI.Bell,
		NoColor: cfg.UI.NoColor,
	}); err != nil {
		return err
	}

	result := "unfinished"
	if s.Won() {
		result = "won"
	}
	fmt.Fprintf(g.Stdout, "Game %s (seed %d) %s after %d moves in %s\n",
		s.ID(), s.Seed(), result, s.Moves(), s.Elapsed().Round(time.Second))
	return nil
}

// DealCmd prints the layout for a seed
type DealCmd struct {
	Seed int64 `kong:"help='Seed to deal (0 picks one)'"`
	Draw int   `kong:"help='Cards per draw, 1 or 3 (default from config)'"`
	Hint bool  `kong:"help='Also print a suggested first move'"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if c.Draw != 0 {
		cfg.Game.DrawCount = c.Draw
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg.LogLevel(), "deal")
	s, err := newSession(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(g.Stdout, "game %s  seed %d\n%s\n", s.ID(), s.Seed(), s.State())
	if c.Hint {
		if m, ok := s.Hint(); ok {
			fmt.Fprintf(g.Stdout, "hint: %s\n", m)
		} else {
			fmt.Fprintln(g.Stdout, "hint: none")
		}
	}
	return nil
}

// SimulateCmd plays games without a human
type SimulateCmd struct {
	Games    int           `kong:"default='1000',help='Number of games to play'"`
	Seed     int64         `kong:"default='1',help='Seed of the first game; game i uses seed+i'"`
	Draw     int           `kong:"help='Cards per draw, 1 or 3 (default from config)'"`
	Policy   string        `kong:"default='greedy',enum='greedy,random',help='Move policy'"`
	Workers  int           `kong:"help='Parallel games (default GOMAXPROCS)'"`
	MaxMoves int           `kong:"default='1000',help='Give up on a game after this many moves'"`
	Timeout  time.Duration `kong:"default='10s',help='Per-game timeout'"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if c.Draw != 0 {
		cfg.Game.DrawCount = c.Draw
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg.LogLevel(), "klondike")
	ctx, cancel := setupSignalHandler(context.Background(), logger)
	defer cancel()

	logger.Info("Starting simulation",
		"games", c.Games,
		"seed", c.Seed,
		"draw", cfg.Game.DrawCount,
		"policy", c.Policy)

	stats, err := simulator.New(simulator.Config{
		Games:     c.Games,
		Seed:      c.Seed,
		DrawCount: cfg.Game.DrawCount,
		Policy:    c.Policy,
		Workers:   c.Workers,
		MaxMoves:  c.MaxMoves,
		Timeout:   c.Timeout,
		Logger:    logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(g.Stdout, stats, c.Policy, cfg.Game.DrawCount)
	return nil
}

// ConfigCmd groups config file commands
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write a config file with the default settings"`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
}

// ConfigInitCmd writes the default config
type ConfigInitCmd struct {
	Force bool `kong:"help='Overwrite an existing file'"`
}

func (c *ConfigInitCmd) Run(g *Globals) error {
	if _, err := os.Stat(g.Config); err == nil && !c.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", g.Config)
	}
	if err := config.Write(g.Config, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "Wrote %s\n", g.Config)
	return nil
}

// ConfigShowCmd prints the configuration after defaults are applied
type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	_, err = g.Stdout.Write(cfg.Encode())
	return err
}

func newSession(cfg *config.Config, logger *log.Logger) (*session.Session, error) {
	return session.New(session.Config{
		DrawCount: cfg.Game.DrawCount,
		Seed:      cfg.Game.Seed,
		Debug:     cfg.Game.Debug,
	}, logger, nil)
}
