package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/algo-drive/dsp/effects/drive"
	"github.com/cwbudde/algo-drive/internal/automation"
	"github.com/cwbudde/algo-drive/internal/cli"
	"github.com/cwbudde/algo-drive/internal/wavio"
)

// RenderCmd processes a WAV file offline.
type RenderCmd struct {
	ProcessorFlags `embed:""`

	In  string `arg:"" type:"existingfile" help:"Input WAV file."`
	Out string `arg:"" type:"path" help:"Output WAV file."`

	BitDepth   int    `name:"bit-depth" enum:"0,16,24,32" default:"0" help:"Output bit depth, 0 keeps the input depth."`
	Dither     bool   `env:"DRIVEPEDAL_DITHER" help:"Add TPDF dither before quantizing the output."`
	SaveState  string `name:"save-state" type:"path" help:"Write the final parameter state to this file."`
	Automation string `type:"existingfile" env:"DRIVEPEDAL_AUTOMATION" help:"Lua script called before every block."`
}

// Run executes the render command.
func (c *RenderCmd) Run(g *Globals) error {
	in, err := wavio.ReadFile(c.In)
	if err != nil {
		return err
	}

	layout, err := layoutFor(len(in.Channels))
	if err != nil {
		return err
	}

	p, err := c.newProcessor(g, layout, float64(in.SampleRate))
	if err != nil {
		return err
	}
	defer p.Release()

	var script *automation.Script
	if c.Automation != "" {
		script, err = automation.LoadFile(c.Automation, p.Params())
		if err != nil {
			return err
		}
		defer script.Close()
	}

	start := time.Now()
	if err := render(p, in.Channels, c.BlockSize, float64(in.SampleRate), script); err != nil {
		return err
	}
	elapsed := time.Since(start)

	if c.BitDepth != 0 {
		in.BitDepth = c.BitDepth
	}

	var opts []wavio.WriteOption
	if c.Dither {
		opts = append(opts, wavio.WithDither(1))
	}

	if err := wavio.WriteFile(c.Out, in, opts...); err != nil {
		return err
	}

	if c.SaveState != "" {
		data, err := p.SaveState()
		if err != nil {
			return err
		}

		if err := os.WriteFile(c.SaveState, data, 0o644); err != nil {
			return err
		}
	}

	seconds := float64(in.Frames()) / float64(in.SampleRate)
	cli.PrintKeyValue(g.out, "Rendered", c.Out)
	cli.PrintKeyValue(g.out, "Duration", fmt.Sprintf("%.2f s", seconds))
	cli.PrintKeyValue(g.out, "Speed", fmt.Sprintf("%.1fx realtime", seconds/max(elapsed.Seconds(), 1e-9)))

	return nil
}

// render processes channels in place, block by block, running script
// before each block.
func render(p *drive.Processor, channels [][]float64, blockSize int, sampleRate float64, script *automation.Script) error {
	if len(channels) == 0 {
		return nil
	}

	frames := len(channels[0])
	block := make([][]float64, len(channels))

	for n, start := 0, 0; start < frames; n, start = n+1, start+blockSize {
		end := min(start+blockSize, frames)

		if script != nil {
			if err := script.Run(n, float64(start)/sampleRate); err != nil {
				return err
			}
		}

		for c, ch := range channels {
			block[c] = ch[start:end]
		}

		p.Process(block)
	}

	return nil
}
