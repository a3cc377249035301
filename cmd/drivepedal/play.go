package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/cwbudde/algo-drive/dsp/effects/drive"
	"github.com/cwbudde/algo-drive/internal/cli"
	"github.com/cwbudde/algo-drive/internal/host"
	"github.com/cwbudde/algo-drive/internal/ui"
	"github.com/cwbudde/algo-drive/internal/wavio"
)

// PlayCmd plays a looped WAV file, or a sine, through the pedal.
type PlayCmd struct {
	ProcessorFlags `embed:""`

	In string `arg:"" optional:"" type:"existingfile" help:"WAV file to loop. A sine is played when omitted."`

	Rate   int           `default:"48000" help:"Sample rate for the sine source."`
	Freq   float64       `default:"220" help:"Sine frequency in Hz."`
	Buffer time.Duration `default:"50ms" env:"DRIVEPEDAL_BUFFER" help:"Device buffer length."`
	NoUI   bool          `name:"no-ui" help:"Disable the interactive knob panel."`
}

// Run executes the play command.
func (c *PlayCmd) Run(g *Globals) error {
	var (
		src    host.Source
		layout = drive.Stereo
		rate   = c.Rate
	)

	if c.In != "" {
		in, err := wavio.ReadFile(c.In)
		if err != nil {
			return err
		}

		if layout, err = layoutFor(len(in.Channels)); err != nil {
			return err
		}

		src = host.NewLoopSource(in.Channels)
		rate = in.SampleRate
	} else {
		src = host.NewSineSource(c.Freq, 0.5, float64(rate))
	}

	p, err := c.newProcessor(g, layout, float64(rate))
	if err != nil {
		return err
	}
	defer p.Release()

	stream, err := host.NewStream(p, src, layout.Outputs, c.BlockSize)
	if err != nil {
		return err
	}

	player, err := host.NewPlayer(rate, layout.Outputs, c.Buffer)
	if err != nil {
		return err
	}
	defer player.Close()

	player.Start(stream)

	if !c.NoUI && term.IsTerminal(int(os.Stdout.Fd())) {
		status := func() string {
			secs := float64(stream.Frames()) / float64(rate)
			return fmt.Sprintf("%d Hz  %dx oversampling  %s  %.1f s", rate, p.OversamplingFactor(), c.Filter, secs)
		}

		_, err := tea.NewProgram(ui.NewModel("Drive pedal", p.Params(), status)).Run()
		if err != nil {
			return err
		}

		return player.Err()
	}

	cli.PrintKeyValue(g.out, "Playing", fmt.Sprintf("%d Hz, %s", rate, layout))
	cli.PrintKeyValue(g.out, "Stop", "Ctrl+C")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	<-ctx.Done()

	return player.Err()
}
