package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-drive/dsp/effects/drive"
	"github.com/cwbudde/algo-drive/dsp/oversample"
)

// ProcessorFlags configure a drive.Processor. Knob flags left unset keep
// the value from --state, or the parameter default.
type ProcessorFlags struct {
	Drive  *float64 `env:"DRIVEPEDAL_DRIVE" help:"Drive amount [0, 24]."`
	Level  *float64 `env:"DRIVEPEDAL_LEVEL" help:"Output level [0, 2]."`
	Tone   *float64 `env:"DRIVEPEDAL_TONE" help:"Tone shelf gain [0.1, 1.5]."`
	Bypass *bool    `env:"DRIVEPEDAL_BYPASS" help:"Pass the input through unchanged."`

	BlockSize    int    `name:"block-size" default:"512" env:"DRIVEPEDAL_BLOCK_SIZE" help:"Processing block size in frames."`
	Oversampling int    `default:"2" env:"DRIVEPEDAL_OVERSAMPLING" help:"Number of 2x oversampling stages [0, 4]."`
	Filter       string `enum:"iir,fir" default:"iir" env:"DRIVEPEDAL_FILTER" help:"Oversampling filter (${enum})."`
	State        string `type:"existingfile" env:"DRIVEPEDAL_STATE" help:"Load parameter state from this file."`
}

// newProcessor builds and prepares a processor for the given stream.
func (f *ProcessorFlags) newProcessor(g *Globals, layout drive.Layout, sampleRate float64) (*drive.Processor, error) {
	filter, err := oversample.ParseFilter(f.Filter)
	if err != nil {
		return nil, err
	}

	p, err := drive.NewProcessor(
		drive.WithLayout(layout),
		drive.WithOversamplingStages(f.Oversampling),
		drive.WithOversamplingFilter(filter),
		drive.WithLogger(g.logger),
	)
	if err != nil {
		return nil, err
	}

	if err := f.applyParams(p); err != nil {
		return nil, err
	}

	if err := p.Prepare(sampleRate, f.BlockSize); err != nil {
		return nil, err
	}

	return p, nil
}

func (f *ProcessorFlags) applyParams(p *drive.Processor) error {
	if f.State != "" {
		data, err := os.ReadFile(f.State)
		if err != nil {
			return err
		}

		if err := p.LoadState(data); err != nil {
			return fmt.Errorf("%s: %w", f.State, err)
		}
	}

	params := p.Params()
	for id, v := range map[string]*float64{
		drive.ParamDrive: f.Drive,
		drive.ParamLevel: f.Level,
		drive.ParamTone:  f.Tone,
	} {
		if v == nil {
			continue
		}

		if err := params.Set(id, *v); err != nil {
			return fmt.Errorf("--%s: %w", strings.ToLower(id), err)
		}
	}

	if f.Bypass != nil {
		v := 0.0
		if *f.Bypass {
			v = 1
		}

		if err := params.Set(drive.ParamBypass, v); err != nil {
			return err
		}
	}

	return nil
}

// layoutFor maps a channel count to a processor layout.
func layoutFor(channels int) (drive.Layout, error) {
	switch channels {
	case 1:
		return drive.Mono, nil
	case 2:
		return drive.Stereo, nil
	default:
		return drive.Layout{}, fmt.Errorf("%w: %d channels", drive.ErrInvalidLayout, channels)
	}
}
