// Command drivepedal runs the drive pedal engine offline, live, or as a
// measurement harness.
//
// Usage:
//
//	drivepedal <command> [flags]
//
// Commands:
//
//	render IN OUT      process a WAV file
//	play [IN]          play a WAV file (or a sine) through the pedal
//	analyze            print THD and aliasing with and without oversampling
//	state dump FILE    print a saved parameter state
//
// Every processor flag can also be set through a DRIVEPEDAL_* environment
// variable, for example DRIVEPEDAL_DRIVE=18.
//
// Examples:
//
//	drivepedal render --drive 18 --tone 1.2 guitar.wav out.wav
//	drivepedal render --automation sweep.lua --save-state preset.drv in.wav out.wav
//	drivepedal play --filter fir
//	drivepedal analyze --oversampling 3
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-drive/internal/cli"
)

// Globals are flags shared by every command.
type Globals struct {
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"warn" env:"DRIVEPEDAL_LOG_LEVEL" help:"Log level (${enum})."`

	out    io.Writer    `kong:"-"`
	logger *slog.Logger `kong:"-"`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Render  RenderCmd  `cmd:"" help:"Process a WAV file."`
	Play    PlayCmd    `cmd:"" help:"Play through the pedal in real time."`
	Analyze AnalyzeCmd `cmd:"" help:"Measure distortion and aliasing."`
	State   StateCmd   `cmd:"" help:"Inspect saved parameter states."`
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	var c CLI

	ctx := kong.Parse(&c,
		kong.Name("drivepedal"),
		kong.Description("Oversampled drive pedal: render, play and measure."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	logger, err := newLogger(os.Stderr, c.LogLevel)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(2)
	}

	c.out = os.Stdout
	c.logger = logger

	if err := ctx.Run(&c.Globals); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
