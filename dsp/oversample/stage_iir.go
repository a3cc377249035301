package oversample

import (
	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/filter/halfband"
)

// iirStage is a polyphase allpass halfband pair. Even-indexed coefficients
// form the first branch, odd-indexed ones the second.
type iirStage struct {
	coeffs []float64
	delay  float64

	// Per-channel allpass memories, one slot per coefficient.
	upX, upY     [][]float64
	downX, downY [][]float64
}

func newIIRStage(channels int, spec halfband.IIRSpec) (*iirStage, error) {
	coeffs, err := halfband.DesignIIR(spec)
	if err != nil {
		return nil, err
	}

	n := len(coeffs)

	return &iirStage{
		coeffs: coeffs,
		delay:  halfband.IIRDelay(coeffs),
		upX:    core.NewPlanar(channels, n),
		upY:    core.NewPlanar(channels, n),
		downX:  core.NewPlanar(channels, n),
		downY:  core.NewPlanar(channels, n),
	}, nil
}

// runBranches advances both allpass chains by one low-rate sample. Section
// outputs are flushed before they become memories, so silence settles to
// exact zero.
func runBranches(c, x, y []float64, s0, s1 float64) (float64, float64) {
	n := len(c)

	j := 0
	for ; j+1 < n; j += 2 {
		t0 := core.FlushDenormals((s0-y[j])*c[j] + x[j])
		t1 := core.FlushDenormals((s1-y[j+1])*c[j+1] + x[j+1])
		x[j], x[j+1] = s0, s1
		y[j], y[j+1] = t0, t1
		s0, s1 = t0, t1
	}

	if j < n {
		t0 := core.FlushDenormals((s0-y[j])*c[j] + x[j])
		x[j] = s0
		y[j] = t0
		s0 = t0
	}

	return s0, s1
}

func (s *iirStage) upsample(ch int, in, out []float64) {
	x, y := s.upX[ch], s.upY[ch]

	for i, v := range in {
		out[2*i], out[2*i+1] = runBranches(s.coeffs, x, y, v, v)
	}
}

func (s *iirStage) downsample(ch int, in, out []float64) {
	x, y := s.downX[ch], s.downY[ch]

	for i := range out {
		s0, s1 := runBranches(s.coeffs, x, y, in[2*i+1], in[2*i])
		out[i] = 0.5 * (s0 + s1)
	}
}

func (s *iirStage) reset() {
	for _, bank := range [][][]float64{s.upX, s.upY, s.downX, s.downY} {
		for _, mem := range bank {
			core.Zero(mem)
		}
	}
}

// Interpolator and decimator each delay by s.delay high-rate samples; the
// decimator keeps the odd phase, which gains back one high-rate sample.
func (s *iirStage) latency() float64 {
	return s.delay - 0.5
}
