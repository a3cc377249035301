package thd

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Window selects the analysis window.
type Window int

const (
	// WindowBlackmanHarris is the 4-term Blackman-Harris window
	// (-92 dB sidelobes). It is the default.
	WindowBlackmanHarris Window = iota
	// WindowHann trades sidelobe rejection for a narrower main lobe.
	WindowHann
)

// mainLobeBins is the half width of the main lobe in bins.
func (w Window) mainLobeBins() int {
	if w == WindowHann {
		return 2
	}

	return 4
}

func (w Window) coefficients(n int) []float64 {
	out := make([]float64, n)

	for i := range out {
		x := 2 * math.Pi * float64(i) / float64(n)

		switch w {
		case WindowHann:
			out[i] = 0.5 - 0.5*math.Cos(x)
		default:
			out[i] = 0.35875 - 0.48829*math.Cos(x) + 0.14128*math.Cos(2*x) - 0.01168*math.Cos(3*x)
		}
	}

	return out
}

// apply returns signal multiplied by the window and the window's sum of
// squares.
func (w Window) apply(signal []float64) ([]float64, float64) {
	coeffs := w.coefficients(len(signal))

	var energy float64
	for _, c := range coeffs {
		energy += c * c
	}

	out := make([]float64, len(signal))
	vecmath.MulBlock(out, signal, coeffs)

	return out, energy
}
