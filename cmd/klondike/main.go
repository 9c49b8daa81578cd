package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lox/klondike/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are shared by every command
type Globals struct {
	Config string    `short:"c" default:"${config_path}" type:"path" help:"Config file (HCL)"`
	Debug  bool      `help:"Log at debug level and re-validate every move"`
	Stdout io.Writer `kong:"-"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play in the terminal"`
	Deal     DealCmd          `cmd:"" help:"Print the layout dealt from a seed"`
	Simulate SimulateCmd      `cmd:"" help:"Play many games automatically and report win rates"`
	Config   ConfigCmd        `cmd:"" help:"Manage the config file"`
}

func newParser(cli *CLI, opts ...kong.Option) (*kong.Kong, error) {
	opts = append([]kong.Option{
		kong.Name("klondike"),
		kong.Description("Klondike solitaire for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_path": config.DefaultPath,
		},
	}, opts...)
	return kong.New(cli, opts...)
}

func main() {
	cli := CLI{Globals: Globals{Stdout: os.Stdout}}
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
