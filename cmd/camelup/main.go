package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/camelup/internal/display"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play an interactive game against bots"`
	Odds     OddsCmd          `cmd:"" help:"Show each camel's chance of leading after the next die"`
	EV       EVCmd            `cmd:"" name:"ev" help:"Estimate leg ticket expected values by simulation"`
	Simulate SimulateCmd      `cmd:"" help:"Run bot-vs-bot games and report strategy performance"`
	Watch    WatchCmd         `cmd:"" help:"Watch bots race in the terminal UI"`
}

func main() {
	display.DetectProfile()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("camelup"),
		kong.Description("Camel Up race engine with betting odds and bot players"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// setupLogger builds the CLI logger. Debug wins over the configured
// level.
func setupLogger(level string, debug bool) *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.InfoLevel,
	}
	if parsed, err := log.ParseLevel(level); err == nil && level != "" {
		opts.Level = parsed
	}
	if debug {
		opts.Level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, opts)
}

// resolveSeed returns the explicit seed, or the clock when none was
// given.
func resolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}
