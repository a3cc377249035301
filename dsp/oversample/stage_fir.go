package oversample

import (
	"github.com/cwbudde/algo-drive/dsp/core"
	"github.com/cwbudde/algo-drive/dsp/filter/halfband"
)

// tap is a nonzero filter coefficient applied to history[index].
type tap struct {
	index int
	coef  float64
}

// history is a mirrored ring: every sample is written twice so that the
// last n samples are always contiguous, oldest first.
type history struct {
	buf []float64
	pos int
	n   int
}

func newHistory(n int) history {
	return history{buf: make([]float64, 2*n), n: n}
}

func (h *history) push(v float64) {
	h.buf[h.pos] = v
	h.buf[h.pos+h.n] = v

	h.pos++
	if h.pos == h.n {
		h.pos = 0
	}
}

func (h *history) window() []float64 {
	return h.buf[h.pos : h.pos+h.n]
}

func (h *history) reset() {
	core.Zero(h.buf)
	h.pos = 0
}

func dot(taps []tap, win []float64) float64 {
	var acc float64
	for _, t := range taps {
		acc += t.coef * win[t.index]
	}

	return acc
}

// firStage is a linear-phase halfband pair. The interpolator runs the two
// polyphase branches on a low-rate history; the decimator evaluates the
// full filter on every other high-rate sample. Zero taps are skipped.
type firStage struct {
	half int

	upEven, upOdd []tap
	downTaps      []tap

	up   []history
	down []history
}

func newFIRStage(channels int, spec halfband.FIRSpec) (*firStage, error) {
	coeffs, err := halfband.DesignFIR(spec)
	if err != nil {
		return nil, err
	}

	half := spec.HalfLength
	upLen := half + 1
	s := &firStage{
		half: half,
		up:   make([]history, channels),
		down: make([]history, channels),
	}

	// Interpolation: v[2m+p] = sum over j with j%2 == p of 2*h[j]*x[m-j/2].
	// x[m-d] sits at window index upLen-1-d.
	for j, h := range coeffs {
		if h == 0 {
			continue
		}

		t := tap{index: upLen - 1 - j/2, coef: 2 * h}
		if j%2 == 0 {
			s.upEven = append(s.upEven, t)
		} else {
			s.upOdd = append(s.upOdd, t)
		}
	}

	// The taps are symmetric, so the window can be weighted in order.
	for j, h := range coeffs {
		if h != 0 {
			s.downTaps = append(s.downTaps, tap{index: j, coef: h})
		}
	}

	for ch := range channels {
		s.up[ch] = newHistory(upLen)
		s.down[ch] = newHistory(len(coeffs))
	}

	return s, nil
}

func (s *firStage) upsample(ch int, in, out []float64) {
	h := &s.up[ch]

	for i, v := range in {
		h.push(v)
		win := h.window()
		out[2*i] = dot(s.upEven, win)
		out[2*i+1] = dot(s.upOdd, win)
	}
}

func (s *firStage) downsample(ch int, in, out []float64) {
	h := &s.down[ch]

	for i := range out {
		h.push(in[2*i])
		out[i] = dot(s.downTaps, h.window())
		h.push(in[2*i+1])
	}
}

func (s *firStage) reset() {
	for ch := range s.up {
		s.up[ch].reset()
		s.down[ch].reset()
	}
}

// Each direction delays by half high-rate samples, i.e. half/2 low-rate
// samples.
func (s *firStage) latency() float64 {
	return float64(s.half)
}
