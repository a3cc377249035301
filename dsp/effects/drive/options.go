package drive

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-drive/dsp/oversample"
)

// DefaultOversamplingStages gives a factor of 4.
const DefaultOversamplingStages = 2

// Layout describes the channel configuration. Outputs is 1 or 2; Inputs
// lies in [1, Outputs]. Output channels without an input are silenced.
type Layout struct {
	Inputs  int
	Outputs int
}

// Common layouts.
var (
	Mono         = Layout{Inputs: 1, Outputs: 1}
	Stereo       = Layout{Inputs: 2, Outputs: 2}
	MonoToStereo = Layout{Inputs: 1, Outputs: 2}
)

func (l Layout) validate() error {
	if l.Outputs < 1 || l.Outputs > 2 || l.Inputs < 1 || l.Inputs > l.Outputs {
		return fmt.Errorf("%w: %d in, %d out", ErrInvalidLayout, l.Inputs, l.Outputs)
	}

	return nil
}

func (l Layout) String() string {
	return fmt.Sprintf("%din/%dout", l.Inputs, l.Outputs)
}

type config struct {
	layout Layout
	stages int
	filter oversample.Filter
	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		layout: Stereo,
		stages: DefaultOversamplingStages,
		filter: oversample.FilterHalfBandPolyphaseIIR,
		logger: slog.New(slog.DiscardHandler),
	}
}

// Option configures a Processor at construction.
type Option func(*config) error

// WithLayout sets the channel layout. Default is Stereo.
func WithLayout(l Layout) Option {
	return func(cfg *config) error {
		if err := l.validate(); err != nil {
			return err
		}

		cfg.layout = l

		return nil
	}
}

// WithOversamplingStages sets the number of 2x stages in
// [0, oversample.MaxStages].
func WithOversamplingStages(n int) Option {
	return func(cfg *config) error {
		if n < 0 || n > oversample.MaxStages {
			return fmt.Errorf("%w: oversampling stages must be in [0, %d]: %d",
				oversample.ErrInvalidConfig, oversample.MaxStages, n)
		}

		cfg.stages = n

		return nil
	}
}

// WithOversamplingFilter selects the halfband filter family.
func WithOversamplingFilter(f oversample.Filter) Option {
	return func(cfg *config) error {
		if f != oversample.FilterHalfBandPolyphaseIIR && f != oversample.FilterHalfBandFIR {
			return fmt.Errorf("%w: unknown filter %d", oversample.ErrInvalidConfig, f)
		}

		cfg.filter = f

		return nil
	}
}

// WithLogger sets the logger for lifecycle events. Process never logs.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger != nil {
			cfg.logger = logger
		}

		return nil
	}
}
