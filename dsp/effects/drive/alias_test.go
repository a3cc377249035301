package drive

import (
	"testing"

	"github.com/cwbudde/algo-drive/dsp/oversample"
	"github.com/cwbudde/algo-drive/internal/testutil"
	"github.com/cwbudde/algo-drive/measure/thd"
)

// renderTone drives a bin-centred 1031.25 Hz tone through the processor and
// returns the left channel of the settled tail.
func renderTone(t *testing.T, stages int, filter Option) []float64 {
	t.Helper()

	const (
		settle = 4096
		frames = 8192
	)

	opts := []Option{WithOversamplingStages(stages)}
	if filter != nil {
		opts = append(opts, filter)
	}

	p := newTestProcessor(t, opts...)
	if err := p.Params().Set(ParamDrive, 24); err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicSine(1031.25, testRate, 0.5, settle+frames)
	block := [][]float64{append([]float64(nil), in...), append([]float64(nil), in...)}
	p.Process(block)

	return block[0][settle:]
}

func aliasRatio(t *testing.T, signal []float64) float64 {
	t.Helper()

	res, err := thd.AnalyzeSignal(signal, thd.Config{SampleRate: testRate, FundamentalFreq: 1031.25})
	if err != nil {
		t.Fatalf("AnalyzeSignal: %v", err)
	}

	return res.Alias
}

func TestOversamplingReducesAliasing(t *testing.T) {
	base := aliasRatio(t, renderTone(t, 0, nil))

	for name, opt := range map[string]Option{
		"iir": WithOversamplingFilter(oversample.FilterHalfBandPolyphaseIIR),
		"fir": WithOversamplingFilter(oversample.FilterHalfBandFIR),
	} {
		over := aliasRatio(t, renderTone(t, 2, opt))
		t.Logf("%s: alias %.3g without oversampling, %.3g with", name, base, over)

		if over >= 0.5*base {
			t.Errorf("%s: alias %.3g with oversampling, want well below %.3g", name, over, base)
		}
	}
}
