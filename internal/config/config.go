// Package config loads klondike settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/lox/klondike/internal/fileutil"
)

// DefaultPath is where the CLI looks for a config file
const DefaultPath = "klondike.hcl"

// Themes lists the colour themes the terminal UI understands
var Themes = []string{"ruby", "classic", "mono"}

// Config represents the complete configuration
type Config struct {
	Game *GameSettings `hcl:"game,block"`
	UI   *UISettings   `hcl:"ui,block"`
	Log  *LogSettings  `hcl:"log,block"`
}

// GameSettings controls dealing and rules
type GameSettings struct {
	DrawCount int   `hcl:"draw_count,optional"`
	Seed      int64 `hcl:"seed,optional"`
	Debug     bool  `hcl:"debug,optional"`
}

// UISettings controls the terminal front-end
type UISettings struct {
	Theme   string `hcl:"theme,optional"`
	Bell    bool   `hcl:"bell,optional"`
	NoColor bool   `hcl:"no_color,optional"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			DrawCount: 3,
		},
		UI: &UISettings{
			Theme: "ruby",
		},
		Log: &LogSettings{
			Level: "info",
			File:  "klondike.log",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; settings absent from the file keep their default values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Game == nil {
		c.Game = d.Game
	}
	if c.UI == nil {
		c.UI = d.UI
	}
	if c.Log == nil {
		c.Log = d.Log
	}

	if c.Game.DrawCount == 0 {
		c.Game.DrawCount = d.Game.DrawCount
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = d.Log.File
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game == nil || c.UI == nil || c.Log == nil {
		return fmt.Errorf("game, ui and log settings are required")
	}
	if c.Game.DrawCount != 1 && c.Game.DrawCount != 3 {
		return fmt.Errorf("game: draw_count must be 1 or 3, got %d", c.Game.DrawCount)
	}
	if c.Game.Seed < 0 {
		return fmt.Errorf("game: seed must not be negative, got %d", c.Game.Seed)
	}
	if !slices.Contains(Themes, c.UI.Theme) {
		return fmt.Errorf("ui: unknown theme %q (available: %v)", c.UI.Theme, Themes)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Encode renders the configuration as HCL
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return f.Bytes()
}

// Write saves the configuration to filename, replacing it atomically
func Write(filename string, c *Config) error {
	if err := fileutil.WriteFileAtomic(filename, c.Encode(), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
