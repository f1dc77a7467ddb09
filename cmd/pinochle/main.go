package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/pinochle/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command
type Globals struct {
	LogLevel string `help:"Log level (debug|info|warn|error), overrides the config file"`
	NoColor  bool   `help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Meld     MeldCmd          `cmd:"" help:"Score the best meld combination of a hand"`
	Melds    MeldsCmd         `cmd:"" help:"List the meld catalogue"`
	Decide   DecideCmd        `cmd:"" help:"Ask the AI for a single decision"`
	Simulate SimulateCmd      `cmd:"" help:"Play AI against AI and report results"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pinochle"),
		kong.Description("Decision AI for two player pinochle"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// logger builds the command logger. An explicit --log-level wins over the
// configured one.
func (g *Globals) logger(configured string) (*log.Logger, error) {
	name := configured
	if g.LogLevel != "" {
		name = g.LogLevel
	}
	if name == "" {
		name = "info"
	}

	level, err := log.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", name, err)
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	}), nil
}

// loadConfig reads an HCL or properties file, applies PINOCHLE_*
// environment overrides and validates the result
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
