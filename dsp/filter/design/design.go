package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/filter/biquad"
)

// DefaultQ is the Butterworth quality factor 1/sqrt(2).
const DefaultQ = 1 / math.Sqrt2

var (
	// ErrInvalidSampleRate indicates a non-positive or non-finite sample rate.
	ErrInvalidSampleRate = errors.New("design: invalid sample rate")
	// ErrFrequencyAboveNyquist indicates a corner frequency outside (0, fs/2).
	ErrFrequencyAboveNyquist = errors.New("design: frequency not below Nyquist")
	// ErrInvalidGain indicates a non-positive or non-finite linear gain.
	ErrInvalidGain = errors.New("design: invalid gain")
)

// ValidateFrequency checks freq against the Nyquist frequency of sampleRate.
func ValidateFrequency(freq, sampleRate float64) error {
	if !core.ValidSampleRate(sampleRate) {
		return fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	if !core.BelowNyquist(freq, sampleRate) {
		return fmt.Errorf("%w: %g Hz at %g Hz", ErrFrequencyAboveNyquist, freq, sampleRate)
	}

	return nil
}

// FirstOrderLowpass designs a one-pole lowpass at freq (Hz).
func FirstOrderLowpass(freq, sampleRate float64) (biquad.Coefficients, error) {
	if err := ValidateFrequency(freq, sampleRate); err != nil {
		return biquad.Coefficients{}, err
	}

	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}, nil
}

// FirstOrderHighpass designs a one-pole highpass at freq (Hz).
func FirstOrderHighpass(freq, sampleRate float64) (biquad.Coefficients, error) {
	if err := ValidateFrequency(freq, sampleRate); err != nil {
		return biquad.Coefficients{}, err
	}

	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}, nil
}

// HighShelf designs an RBJ high shelf at freq (Hz) whose gain above the
// corner is gain, a linear amplitude factor (1 = flat).
func HighShelf(freq, q, gain, sampleRate float64) (biquad.Coefficients, error) {
	if err := ValidateFrequency(freq, sampleRate); err != nil {
		return biquad.Coefficients{}, err
	}

	if gain <= 0 || !core.IsFinite(gain) {
		return biquad.Coefficients{}, fmt.Errorf("%w: %g", ErrInvalidGain, gain)
	}

	q = normalizedQ(q)
	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	a := math.Sqrt(gain)
	beta := sw * math.Sqrt(a) / q

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2), nil
}

func normalizedQ(q float64) float64 {
	if q <= 0 || !core.IsFinite(q) {
		return DefaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || !core.IsFinite(a0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
