package drive

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/filter/design"
	"github.com/cwbudde/algo-drive/dsp/oversample"
	"github.com/cwbudde/algo-drive/dsp/param"
)

var (
	// ErrInvalidLayout indicates an unsupported channel layout.
	ErrInvalidLayout = errors.New("drive: unsupported channel layout")
	// ErrInvalidSampleRate indicates a non-positive or non-finite rate.
	ErrInvalidSampleRate = errors.New("drive: invalid sample rate")
	// ErrInvalidBlockSize indicates a non-positive maximum block size.
	ErrInvalidBlockSize = errors.New("drive: invalid block size")
	// ErrFrequencyAboveNyquist indicates that a fixed filter frequency is
	// not below the Nyquist frequency of the base sample rate.
	ErrFrequencyAboveNyquist = design.ErrFrequencyAboveNyquist
)

// Processor is the complete pedal. Process must be called from a single
// goroutine and never concurrently with Prepare, Release or LoadState.
// Parameters may be written at any time through Params.
type Processor struct {
	layout Layout
	logger *slog.Logger

	params *param.Set
	knobs  handles

	// wet carries the signal through the chain; dryUp lifts the dry copy
	// to the same rate and delay.
	wet   *oversample.Oversampler
	dryUp *oversample.Oversampler
	chain *Chain
	tone  *Tone
	dry   [][]float64

	sampleRate float64
	osRate     float64
	maxBlock   int
	prepared   bool
}

// NewProcessor builds an unprepared Processor.
func NewProcessor(opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	ch := cfg.layout.Inputs

	wet, err := oversample.New(ch, cfg.stages, oversample.WithFilter(cfg.filter))
	if err != nil {
		return nil, fmt.Errorf("drive: %w", err)
	}

	dryUp, err := oversample.New(ch, cfg.stages, oversample.WithFilter(cfg.filter))
	if err != nil {
		return nil, fmt.Errorf("drive: %w", err)
	}

	params := NewParameterSet()

	return &Processor{
		layout: cfg.layout,
		logger: cfg.logger,
		params: params,
		knobs:  newHandles(params),
		wet:    wet,
		dryUp:  dryUp,
		chain:  NewChain(ch),
		tone:   NewTone(ch),
	}, nil
}

// Params returns the live parameter set.
func (p *Processor) Params() *param.Set { return p.params }

// Layout returns the channel layout.
func (p *Processor) Layout() Layout { return p.layout }

// OversamplingFactor returns the ratio between processing and base rate.
func (p *Processor) OversamplingFactor() int { return p.wet.Factor() }

// SampleRate returns the base rate set by Prepare, or 0.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// MaxBlockSize returns the block size set by Prepare, or 0.
func (p *Processor) MaxBlockSize() int { return p.maxBlock }

// Prepared reports whether Process will run.
func (p *Processor) Prepared() bool { return p.prepared }

// Prepare validates the stream configuration, sizes all buffers for blocks
// of up to maxBlockSize frames and clears all filter state. Buffers are
// reallocated only when maxBlockSize changes.
func (p *Processor) Prepare(sampleRate float64, maxBlockSize int) error {
	if !core.ValidSampleRate(sampleRate) {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	if maxBlockSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlockSize)
	}

	for _, f := range []float64{HighpassFrequency, LowpassFrequency, ToneFrequency} {
		if err := design.ValidateFrequency(f, sampleRate); err != nil {
			return fmt.Errorf("drive: prepare: %w", err)
		}
	}

	osRate := sampleRate * float64(p.wet.Factor())

	if err := p.wet.Prepare(maxBlockSize); err != nil {
		return fmt.Errorf("drive: %w", err)
	}

	if err := p.dryUp.Prepare(maxBlockSize); err != nil {
		return fmt.Errorf("drive: %w", err)
	}

	if maxBlockSize != p.maxBlock || p.dry == nil {
		p.dry = core.NewPlanar(p.layout.Inputs, maxBlockSize)
	}

	p.chain.Reset()
	p.tone.Reset()

	snap := p.knobs.snapshot()
	if err := p.chain.Update(osRate, snap.Drive); err != nil {
		return fmt.Errorf("drive: %w", err)
	}

	if err := p.tone.Update(osRate, snap.Tone, snap.Level); err != nil {
		return fmt.Errorf("drive: %w", err)
	}

	p.sampleRate = sampleRate
	p.osRate = osRate
	p.maxBlock = maxBlockSize
	p.prepared = true

	p.logger.Info("drive: prepared",
		"sample_rate", sampleRate,
		"max_block", maxBlockSize,
		"layout", p.layout.String(),
		"oversampling", p.wet.Factor(),
		"filter", p.wet.Filter().String(),
	)

	return nil
}

// Release frees the block buffers and clears state. Process is a no-op
// until the next Prepare.
func (p *Processor) Release() {
	p.wet.Release()
	p.dryUp.Release()
	p.chain.Reset()
	p.tone.Reset()

	p.dry = nil
	p.sampleRate = 0
	p.osRate = 0
	p.maxBlock = 0
	p.prepared = false

	p.logger.Info("drive: released")
}

// Process renders block in place with the current parameter values.
func (p *Processor) Process(block [][]float64) {
	p.ProcessSnapshot(block, p.knobs.snapshot())
}

// ProcessSnapshot renders block in place with explicit parameter values.
// Values are constrained to the parameter ranges. Blocks longer than
// MaxBlockSize are processed in consecutive chunks. Before Prepare the
// block is left untouched.
func (p *Processor) ProcessSnapshot(block [][]float64, snap Snapshot) {
	if !p.prepared {
		return
	}

	outs := min(len(block), p.layout.Outputs)
	ins := min(outs, p.layout.Inputs)

	for ch := ins; ch < outs; ch++ {
		core.Zero(block[ch])
	}

	if snap.Bypass || ins == 0 {
		return
	}

	snap = p.constrain(snap)

	// Prepare validated every frequency, so these cannot fail.
	_ = p.chain.Update(p.osRate, snap.Drive)
	_ = p.tone.Update(p.osRate, snap.Tone, snap.Level)

	frames := core.Frames(block[:ins])
	for start := 0; start < frames; start += p.maxBlock {
		end := min(start+p.maxBlock, frames)

		for ch := range ins {
			p.processChannel(ch, block[ch][start:end])
		}
	}
}

func (p *Processor) processChannel(ch int, buf []float64) {
	dry := p.dry[ch][:len(buf)]
	copy(dry, buf)

	wet := p.wet.ProcessUp(ch, buf)
	p.chain.ProcessChannel(ch, wet)

	Combine(wet, p.dryUp.ProcessUp(ch, dry))

	p.tone.ProcessChannel(ch, wet)
	p.wet.ProcessDown(ch, buf)
}

func (p *Processor) constrain(s Snapshot) Snapshot {
	s.Drive = p.knobs.drive.Spec().Constrain(s.Drive)
	s.Level = p.knobs.level.Spec().Constrain(s.Level)
	s.Tone = p.knobs.tone.Spec().Constrain(s.Tone)

	return s
}

// SaveState serializes the parameter values.
func (p *Processor) SaveState() ([]byte, error) {
	return p.params.MarshalBinary()
}

// LoadState restores parameter values written by SaveState. On error no
// value changes.
func (p *Processor) LoadState(data []byte) error {
	if err := p.params.UnmarshalBinary(data); err != nil {
		p.logger.Warn("drive: state rejected", "bytes", len(data), "error", err)
		return err
	}

	p.logger.Info("drive: state loaded",
		"drive", p.params.Get(ParamDrive),
		"level", p.params.Get(ParamLevel),
		"tone", p.params.Get(ParamTone),
		"bypass", p.params.Get(ParamBypass),
	)

	return nil
}
