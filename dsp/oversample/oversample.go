package oversample

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/filter/halfband"
)

// MaxStages bounds the cascade depth (factor 16).
const MaxStages = 4

var (
	// ErrInvalidConfig indicates an unusable oversampler configuration.
	ErrInvalidConfig = errors.New("oversample: invalid configuration")
	// ErrInvalidBlockSize indicates a non-positive maximum block size.
	ErrInvalidBlockSize = errors.New("oversample: invalid block size")
)

// Filter selects the halfband filter family of every stage.
type Filter int

const (
	// FilterHalfBandPolyphaseIIR uses pairs of allpass chains. Cheap, with
	// a small nonlinear-phase group delay.
	FilterHalfBandPolyphaseIIR Filter = iota
	// FilterHalfBandFIR uses linear-phase Kaiser-windowed halfband FIRs.
	FilterHalfBandFIR
)

// String returns the short filter name.
func (f Filter) String() string {
	switch f {
	case FilterHalfBandPolyphaseIIR:
		return "iir"
	case FilterHalfBandFIR:
		return "fir"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// ParseFilter maps "iir" or "fir" to a Filter.
func ParseFilter(name string) (Filter, error) {
	switch name {
	case "iir":
		return FilterHalfBandPolyphaseIIR, nil
	case "fir":
		return FilterHalfBandFIR, nil
	default:
		return 0, fmt.Errorf("%w: unknown filter %q", ErrInvalidConfig, name)
	}
}

// Default stage designs. Index 0 is the stage next to the base rate; deeper
// stages reuse the last entry.
var (
	DefaultIIRDesign = []halfband.IIRSpec{
		{Coefficients: 10, Transition: 0.05},
		{Coefficients: 6, Transition: 0.2},
	}
	DefaultFIRDesign = []halfband.FIRSpec{
		{HalfLength: 31, KaiserBeta: 8},
		{HalfLength: 15, KaiserBeta: 8},
	}
)

type config struct {
	filter Filter
	iir    []halfband.IIRSpec
	fir    []halfband.FIRSpec
}

// Option configures an Oversampler.
type Option func(*config)

// WithFilter selects the filter family.
func WithFilter(f Filter) Option {
	return func(cfg *config) {
		cfg.filter = f
	}
}

// WithIIRDesign overrides the per-stage polyphase IIR designs.
func WithIIRDesign(specs ...halfband.IIRSpec) Option {
	return func(cfg *config) {
		if len(specs) > 0 {
			cfg.iir = append([]halfband.IIRSpec(nil), specs...)
		}
	}
}

// WithFIRDesign overrides the per-stage FIR designs.
func WithFIRDesign(specs ...halfband.FIRSpec) Option {
	return func(cfg *config) {
		if len(specs) > 0 {
			cfg.fir = append([]halfband.FIRSpec(nil), specs...)
		}
	}
}

// stage is one 2x interpolation/decimation pair with per-channel state.
type stage interface {
	upsample(ch int, in, out []float64)
	downsample(ch int, in, out []float64)
	reset()
	// latency is the round-trip delay in samples of the stage's low rate.
	latency() float64
}

// Oversampler is a cascade of 2x stages shared by a fixed number of channels.
type Oversampler struct {
	channels int
	filter   Filter
	stages   []stage

	maxBlock int
	// levels[i] holds the planar scratch at rate 2^(i+1); base is used only
	// by a zero-stage cascade.
	levels [][][]float64
	base   [][]float64
}

// New builds an Oversampler with factor 2^stages for the given channel
// count. Stage filters are designed here; buffers are sized by Prepare.
func New(channels, stages int, opts ...Option) (*Oversampler, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels must be >= 1: %d", ErrInvalidConfig, channels)
	}

	if stages < 0 || stages > MaxStages {
		return nil, fmt.Errorf("%w: stages must be in [0, %d]: %d", ErrInvalidConfig, MaxStages, stages)
	}

	cfg := config{filter: FilterHalfBandPolyphaseIIR, iir: DefaultIIRDesign, fir: DefaultFIRDesign}
	for _, opt := range opts {
		opt(&cfg)
	}

	o := &Oversampler{
		channels: channels,
		filter:   cfg.filter,
		stages:   make([]stage, stages),
	}

	for i := range o.stages {
		var (
			st  stage
			err error
		)

		switch cfg.filter {
		case FilterHalfBandPolyphaseIIR:
			st, err = newIIRStage(channels, cfg.iir[min(i, len(cfg.iir)-1)])
		case FilterHalfBandFIR:
			st, err = newFIRStage(channels, cfg.fir[min(i, len(cfg.fir)-1)])
		default:
			err = fmt.Errorf("%w: unknown filter %d", ErrInvalidConfig, cfg.filter)
		}

		if err != nil {
			return nil, fmt.Errorf("oversample: stage %d: %w", i, err)
		}

		o.stages[i] = st
	}

	return o, nil
}

// Prepare sizes the internal buffers for blocks of up to maxBlock base-rate
// frames and resets all filter state. Buffers are reallocated only when
// maxBlock changes.
func (o *Oversampler) Prepare(maxBlock int) error {
	if maxBlock < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlock)
	}

	if maxBlock != o.maxBlock {
		o.maxBlock = maxBlock
		o.base = core.NewPlanar(o.channels, maxBlock)

		o.levels = make([][][]float64, len(o.stages))
		for i := range o.levels {
			o.levels[i] = core.NewPlanar(o.channels, maxBlock<<(i+1))
		}
	}

	o.Reset()

	return nil
}

// Release drops the buffers and clears all state. Prepare must be called
// again before processing.
func (o *Oversampler) Release() {
	o.maxBlock = 0
	o.base = nil
	o.levels = nil
	o.Reset()
}

// Reset clears the state of every stage and channel.
func (o *Oversampler) Reset() {
	for _, st := range o.stages {
		st.reset()
	}
}

// Channels returns the channel count.
func (o *Oversampler) Channels() int { return o.channels }

// Stages returns the number of 2x stages.
func (o *Oversampler) Stages() int { return len(o.stages) }

// Factor returns the oversampling factor 2^Stages.
func (o *Oversampler) Factor() int { return 1 << len(o.stages) }

// Filter returns the configured filter family.
func (o *Oversampler) Filter() Filter { return o.filter }

// MaxBlockSize returns the base-rate block size set by Prepare.
func (o *Oversampler) MaxBlockSize() int { return o.maxBlock }

// Latency returns the round-trip delay of ProcessUp followed by ProcessDown
// in base-rate samples. It is exact for FilterHalfBandFIR and the
// low-frequency group delay for FilterHalfBandPolyphaseIIR.
func (o *Oversampler) Latency() float64 {
	total := 0.0
	scale := 1.0

	for _, st := range o.stages {
		total += st.latency() * scale
		scale *= 0.5
	}

	return total
}

// ProcessUp interpolates in (channel ch) to the oversampled rate and returns
// a view of Factor()*len(in) samples that stays valid until the next
// ProcessUp on the same channel. Frames beyond MaxBlockSize are ignored. It
// returns nil for an unknown channel or before Prepare.
func (o *Oversampler) ProcessUp(ch int, in []float64) []float64 {
	if ch < 0 || ch >= o.channels || o.maxBlock == 0 {
		return nil
	}

	if len(in) > o.maxBlock {
		in = in[:o.maxBlock]
	}

	if len(o.stages) == 0 {
		out := o.base[ch][:len(in)]
		copy(out, in)

		return out
	}

	cur := in
	for i, st := range o.stages {
		next := o.levels[i][ch][:2*len(cur)]
		st.upsample(ch, cur, next)
		cur = next
	}

	return cur
}

// ProcessDown decimates the oversampled buffer of channel ch, as left by
// ProcessUp and any in-place processing, into out.
func (o *Oversampler) ProcessDown(ch int, out []float64) {
	if ch < 0 || ch >= o.channels || o.maxBlock == 0 {
		return
	}

	if len(out) > o.maxBlock {
		out = out[:o.maxBlock]
	}

	n := len(out)
	if len(o.stages) == 0 {
		copy(out, o.base[ch][:n])
		return
	}

	for i := len(o.stages) - 1; i >= 0; i-- {
		src := o.levels[i][ch][:n<<(i+1)]

		dst := out
		if i > 0 {
			dst = o.levels[i-1][ch][:n<<i]
		}

		o.stages[i].downsample(ch, src, dst)
	}
}
