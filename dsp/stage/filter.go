package stage

import (
	"fmt"

	"github.com/cwbudde/algo-drive/dsp/filter/biquad"
	"github.com/cwbudde/algo-drive/dsp/filter/design"
)

// FilterKind selects the response designed by Filter.Update.
type FilterKind int

const (
	FirstOrderHighpass FilterKind = iota
	FirstOrderLowpass
	HighShelf
)

func (k FilterKind) String() string {
	switch k {
	case FirstOrderHighpass:
		return "highpass"
	case FirstOrderLowpass:
		return "lowpass"
	case HighShelf:
		return "highshelf"
	default:
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
}

type filterKey struct {
	sampleRate, freq, q, gain float64
}

// Filter is a biquad stage with one state per channel. Coefficients are
// shared by all channels and redesigned by Update.
type Filter struct {
	kind  FilterKind
	bank  *biquad.Bank
	key   filterKey
	valid bool
}

// NewFilter returns a pass-through filter of the given kind. Call Update
// before processing.
func NewFilter(kind FilterKind, channels int) *Filter {
	return &Filter{kind: kind, bank: biquad.NewBank(channels, biquad.Identity())}
}

// Kind returns the response type.
func (f *Filter) Kind() FilterKind { return f.kind }

// Update designs coefficients for the given sample rate, frequency, Q and
// linear gain. Q and gain are ignored by the first-order kinds. Designs are
// skipped when every argument matches the previous successful call. On
// error the previous coefficients stay in place.
func (f *Filter) Update(sampleRate, freq, q, gain float64) error {
	key := filterKey{sampleRate: sampleRate, freq: freq, q: q, gain: gain}
	if f.valid && key == f.key {
		return nil
	}

	var (
		c   biquad.Coefficients
		err error
	)

	switch f.kind {
	case FirstOrderHighpass:
		c, err = design.FirstOrderHighpass(freq, sampleRate)
	case FirstOrderLowpass:
		c, err = design.FirstOrderLowpass(freq, sampleRate)
	case HighShelf:
		c, err = design.HighShelf(freq, q, gain, sampleRate)
	default:
		return fmt.Errorf("stage: unknown filter kind %d", f.kind)
	}

	if err != nil {
		return fmt.Errorf("stage: %v: %w", f.kind, err)
	}

	f.bank.SetCoefficients(c)
	f.key = key
	f.valid = true

	return nil
}

// Coefficients returns the active coefficients.
func (f *Filter) Coefficients() biquad.Coefficients { return f.bank.Coefficients() }

// Resize changes the channel count. A new count clears the state of every
// channel; the same count keeps it.
func (f *Filter) Resize(channels int) { f.bank.Resize(channels) }

// Channels returns the channel count.
func (f *Filter) Channels() int { return f.bank.Channels() }

// ProcessChannel filters buf in place with the state of channel ch.
func (f *Filter) ProcessChannel(ch int, buf []float64) { f.bank.ProcessBlock(ch, buf) }

// Process filters each channel of block in place. Channels beyond the
// filter's channel count are left untouched.
func (f *Filter) Process(block [][]float64) {
	for ch, buf := range block {
		f.bank.ProcessBlock(ch, buf)
	}
}

// Reset clears the per-channel state. Coefficients are kept.
func (f *Filter) Reset() { f.bank.Reset() }
