// Package thd measures harmonic distortion and aliasing of a rendered test
// tone.
//
// The signal is windowed and transformed; energy is then split into the
// fundamental, its in-band harmonics, and everything else. For a
// nonlinearity driven by a pure tone, "everything else" is dominated by
// harmonics folded back from above Nyquist, so the residual ratio is a
// direct aliasing figure.
package thd

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

// ErrInvalidConfig indicates unusable analysis settings or input.
var ErrInvalidConfig = errors.New("thd: invalid configuration")

// Config holds analysis parameters.
type Config struct {
	SampleRate      float64
	FundamentalFreq float64
	MaxHarmonics    int // 0 analyses every harmonic below Nyquist
	Window          Window
	// DCBins excludes bins [0, DCBins] from the residual. 0 uses the
	// window's main lobe width.
	DCBins int
}

// Result holds the measurement.
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64   // peak amplitude estimate
	Harmonics        []float64 // amplitude ratios for harmonics 2, 3, ...
	THD              float64   // harmonic / fundamental amplitude ratio
	THDdB            float64
	Alias            float64 // residual / fundamental amplitude ratio
	AliasdB          float64
}

// Calculator runs repeated analyses with one configuration.
type Calculator struct {
	cfg Config
}

// NewCalculator validates cfg.
func NewCalculator(cfg Config) (*Calculator, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("%w: sample rate %g", ErrInvalidConfig, cfg.SampleRate)
	}

	if cfg.FundamentalFreq <= 0 || cfg.FundamentalFreq >= cfg.SampleRate/2 {
		return nil, fmt.Errorf("%w: fundamental %g Hz", ErrInvalidConfig, cfg.FundamentalFreq)
	}

	if cfg.MaxHarmonics < 0 || cfg.DCBins < 0 {
		return nil, fmt.Errorf("%w: negative harmonic or DC bin count", ErrInvalidConfig)
	}

	return &Calculator{cfg: cfg}, nil
}

// AnalyzeSignal is a one-shot analysis.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	c, err := NewCalculator(cfg)
	if err != nil {
		return Result{}, err
	}

	return c.AnalyzeSignal(signal)
}

// AnalyzeSignal measures signal, whose length must be a power of two. The
// fundamental should sit on a bin centre for accurate level readings.
func (c *Calculator) AnalyzeSignal(signal []float64) (Result, error) {
	n := len(signal)
	if n < 16 || n&(n-1) != 0 {
		return Result{}, fmt.Errorf("%w: length %d is not a power of two >= 16", ErrInvalidConfig, n)
	}

	windowed, winEnergy := c.cfg.Window.apply(signal)

	in := make([]complex128, n)
	for i, v := range windowed {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Result{}, fmt.Errorf("thd: fft plan: %w", err)
	}

	spectrum := make([]complex128, n)
	if err := plan.Forward(spectrum, in); err != nil {
		return Result{}, fmt.Errorf("thd: fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for i := range bins {
		re[i] = real(spectrum[i])
		im[i] = imag(spectrum[i])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	return c.fromPower(power, n, winEnergy), nil
}

func (c *Calculator) fromPower(power []float64, n int, winEnergy float64) Result {
	cfg := c.cfg
	binHz := cfg.SampleRate / float64(n)
	maxBin := len(power) - 1
	lobe := cfg.Window.mainLobeBins()

	dcBins := cfg.DCBins
	if dcBins == 0 {
		dcBins = lobe
	}

	// used marks bins already attributed to the fundamental or a harmonic.
	used := make([]bool, len(power))
	band := func(center int) float64 {
		var sum float64
		for i := max(center-lobe, dcBins+1); i <= min(center+lobe, maxBin); i++ {
			if !used[i] {
				sum += power[i]
				used[i] = true
			}
		}

		return sum
	}

	fundBin := int(math.Round(cfg.FundamentalFreq / binHz))
	fundamental := band(fundBin)

	res := Result{FundamentalFreq: float64(fundBin) * binHz}
	if fundamental <= 0 {
		return res
	}

	var harmonicSum float64
	for h := 2; cfg.MaxHarmonics == 0 || h <= cfg.MaxHarmonics+1; h++ {
		bin := h * fundBin
		if bin+lobe > maxBin {
			break
		}

		e := band(bin)
		harmonicSum += e
		res.Harmonics = append(res.Harmonics, math.Sqrt(e/fundamental))
	}

	var residual float64
	for i := dcBins + 1; i <= maxBin; i++ {
		if !used[i] {
			residual += power[i]
		}
	}

	// A sine of amplitude A leaves N*A²*Σw²/4 in the positive-frequency
	// half of the spectrum.
	res.FundamentalLevel = math.Sqrt(4 * fundamental / (float64(n) * winEnergy))
	res.THD = math.Sqrt(harmonicSum / fundamental)
	res.THDdB = ratioToDB(res.THD)
	res.Alias = math.Sqrt(residual / fundamental)
	res.AliasdB = ratioToDB(res.Alias)

	return res
}

func ratioToDB(r float64) float64 {
	if r <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(r)
}
