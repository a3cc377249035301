package param

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/cwbudde/algo-drive/dsp/core"
)

var (
	// ErrInvalidSpec indicates an inconsistent parameter declaration.
	ErrInvalidSpec = errors.New("param: invalid spec")
	// ErrUnknownParameter is returned for ids not present in a Set.
	ErrUnknownParameter = errors.New("param: unknown parameter")
	// ErrInvalidValue is returned when writing NaN.
	ErrInvalidValue = errors.New("param: invalid value")
)

// Spec declares a parameter.
type Spec struct {
	ID      string
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Step    float64 // value grid from Min; 0 disables snapping, >= 1 is discrete
	Default float64
}

// Discrete reports whether values are rounded to multiples of Step.
func (s Spec) Discrete() bool { return s.Step >= 1 }

// Validate checks the declaration.
func (s Spec) Validate() error {
	switch {
	case s.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidSpec)
	case len(s.ID) > math.MaxUint8:
		return fmt.Errorf("%w: id %q longer than %d bytes", ErrInvalidSpec, s.ID, math.MaxUint8)
	case !core.IsFinite(s.Min) || !core.IsFinite(s.Max) || s.Min > s.Max:
		return fmt.Errorf("%w: %s: range [%g, %g]", ErrInvalidSpec, s.ID, s.Min, s.Max)
	case !core.IsFinite(s.Step) || s.Step < 0:
		return fmt.Errorf("%w: %s: step %g", ErrInvalidSpec, s.ID, s.Step)
	case !core.IsFinite(s.Default) || s.Default < s.Min || s.Default > s.Max:
		return fmt.Errorf("%w: %s: default %g outside [%g, %g]", ErrInvalidSpec, s.ID, s.Default, s.Min, s.Max)
	}

	return nil
}

// Constrain maps v onto the declared range and snaps it to the nearest
// multiple of Step above Min. NaN maps to the default.
func (s Spec) Constrain(v float64) float64 {
	if math.IsNaN(v) {
		return s.Default
	}

	v = core.Clamp(v, s.Min, s.Max)
	if s.Step > 0 {
		v = core.Clamp(s.snap(v), s.Min, s.Max)
	}

	return v
}

func (s Spec) snap(v float64) float64 {
	// Steps like 0.01 divide instead of multiply so that 12.35 comes out
	// as the nearest double to 12.35.
	if inv := math.Round(1 / s.Step); inv >= 1 && isWhole(1/s.Step) && isWhole(s.Min*inv) {
		return math.Round(v*inv) / inv
	}

	return s.Min + math.Round((v-s.Min)/s.Step)*s.Step
}

func isWhole(x float64) bool {
	return math.Abs(x-math.Round(x)) < 1e-9
}

// Parameter is a single lock-free value slot.
type Parameter struct {
	spec Spec
	bits atomic.Uint64
}

// New creates a parameter holding its default value.
func New(spec Spec) (*Parameter, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	p := &Parameter{spec: spec}
	p.Reset()

	return p, nil
}

// Spec returns the declaration.
func (p *Parameter) Spec() Spec { return p.spec }

// ID returns the parameter id.
func (p *Parameter) ID() string { return p.spec.ID }

// Load returns the current value. Safe from any goroutine.
func (p *Parameter) Load() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Store writes v after constraining it to the range. NaN is ignored.
func (p *Parameter) Store(v float64) {
	if math.IsNaN(v) {
		return
	}

	p.bits.Store(math.Float64bits(p.spec.Constrain(v)))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.bits.Store(math.Float64bits(p.spec.Default))
}

// Normalized returns the value mapped to [0, 1].
func (p *Parameter) Normalized() float64 {
	span := p.spec.Max - p.spec.Min
	if span <= 0 {
		return 0
	}

	return (p.Load() - p.spec.Min) / span
}

// StoreNormalized writes a value given in [0, 1].
func (p *Parameter) StoreNormalized(n float64) {
	p.Store(p.spec.Min + core.Clamp(n, 0, 1)*(p.spec.Max-p.spec.Min))
}

// Nudge moves the value by steps increments of Step (or 1% of the range
// for continuous parameters without a step).
func (p *Parameter) Nudge(steps int) {
	inc := p.spec.Step
	if inc == 0 {
		inc = (p.spec.Max - p.spec.Min) / 100
	}

	p.Store(p.Load() + float64(steps)*inc)
}

// String formats the current value with its unit.
func (p *Parameter) String() string {
	prec := 2
	if p.spec.Discrete() {
		prec = 0
	}

	s := strconv.FormatFloat(p.Load(), 'f', prec, 64)
	if p.spec.Unit != "" {
		s += " " + p.spec.Unit
	}

	return s
}
