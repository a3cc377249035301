package thd

import (
	"errors"
	"math"
	"testing"
)

const (
	testRate = 48000.0
	testN    = 8192
	testF0   = 1031.25 // bin 176
)

func tone(parts map[float64]float64) []float64 {
	out := make([]float64, testN)
	for f, a := range parts {
		w := 2 * math.Pi * f / testRate
		for i := range out {
			out[i] += a * math.Sin(w*float64(i))
		}
	}

	return out
}

func analyze(t *testing.T, signal []float64, w Window) Result {
	t.Helper()

	res, err := AnalyzeSignal(signal, Config{SampleRate: testRate, FundamentalFreq: testF0, Window: w})
	if err != nil {
		t.Fatalf("AnalyzeSignal: %v", err)
	}

	return res
}

func TestPureSine(t *testing.T) {
	for _, w := range []Window{WindowBlackmanHarris, WindowHann} {
		res := analyze(t, tone(map[float64]float64{testF0: 0.5}), w)

		if res.FundamentalFreq != testF0 {
			t.Errorf("window %d: fundamental %v Hz", w, res.FundamentalFreq)
		}
		if math.Abs(res.FundamentalLevel-0.5) > 1e-3 {
			t.Errorf("window %d: level %v, want 0.5", w, res.FundamentalLevel)
		}
		if res.THD > 1e-6 || res.Alias > 1e-6 {
			t.Errorf("window %d: THD %v alias %v, want ~0", w, res.THD, res.Alias)
		}
	}
}

func TestThirdHarmonic(t *testing.T) {
	res := analyze(t, tone(map[float64]float64{testF0: 1, 3 * testF0: 0.1}), WindowBlackmanHarris)

	if math.Abs(res.THD-0.1) > 1e-4 {
		t.Fatalf("THD = %v, want 0.1", res.THD)
	}
	if math.Abs(res.THDdB+20) > 0.01 {
		t.Fatalf("THD = %v dB, want -20", res.THDdB)
	}
	if len(res.Harmonics) < 2 || math.Abs(res.Harmonics[1]-0.1) > 1e-4 || res.Harmonics[0] > 1e-6 {
		t.Fatalf("harmonics = %v", res.Harmonics[:2])
	}
	if res.Alias > 1e-6 {
		t.Fatalf("alias = %v, want ~0", res.Alias)
	}
}

func TestNonHarmonicCountsAsAlias(t *testing.T) {
	res := analyze(t, tone(map[float64]float64{testF0: 1, 2.5 * testF0: 0.01}), WindowBlackmanHarris)

	if math.Abs(res.Alias-0.01) > 1e-5 {
		t.Fatalf("alias = %v, want 0.01", res.Alias)
	}
	if res.THD > 1e-6 {
		t.Fatalf("THD = %v, want ~0", res.THD)
	}
}

func TestMaxHarmonicsLimitsCount(t *testing.T) {
	res, err := AnalyzeSignal(tone(map[float64]float64{testF0: 1}), Config{
		SampleRate: testRate, FundamentalFreq: testF0, MaxHarmonics: 5,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Harmonics) != 5 {
		t.Fatalf("len(Harmonics) = %d, want 5", len(res.Harmonics))
	}
}

func TestInvalidInput(t *testing.T) {
	good := Config{SampleRate: testRate, FundamentalFreq: testF0}

	for name, cfg := range map[string]Config{
		"zero rate":      {FundamentalFreq: testF0},
		"above nyquist":  {SampleRate: testRate, FundamentalFreq: 30000},
		"negative count": {SampleRate: testRate, FundamentalFreq: testF0, MaxHarmonics: -1},
	} {
		if _, err := NewCalculator(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: err = %v", name, err)
		}
	}

	if _, err := AnalyzeSignal(make([]float64, 1000), good); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("non power of two: err = %v", err)
	}
}
