package stage

// Transfer is a memoryless sample mapping.
type Transfer func(x float64) float64

// WaveShaper applies Fn to every sample.
type WaveShaper struct {
	Fn Transfer
}

// ProcessChannel shapes buf in place. A nil Fn leaves buf unchanged.
func (w WaveShaper) ProcessChannel(buf []float64) {
	if w.Fn == nil {
		return
	}

	for i, x := range buf {
		buf[i] = w.Fn(x)
	}
}

// Process shapes every channel of block in place.
func (w WaveShaper) Process(block [][]float64) {
	for _, buf := range block {
		w.ProcessChannel(buf)
	}
}

// SoftClip is the cubic saturator 1.5x - 0.5x^3. Its slope is 1.5 at zero
// and 0 at x = ±1, where it reaches ±1. It is not bounded beyond that;
// follow it with a hard clip.
func SoftClip(x float64) float64 {
	return 1.5*x - 0.5*x*x*x
}

// HardClip returns a transfer that clamps to [-limit, limit].
func HardClip(limit float64) Transfer {
	return func(x float64) float64 {
		switch {
		case x > limit:
			return limit
		case x < -limit:
			return -limit
		default:
			return x
		}
	}
}
