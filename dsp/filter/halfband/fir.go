package halfband

import (
	"fmt"
	"math"
)

// FIRSpec selects a Kaiser-windowed halfband FIR.
type FIRSpec struct {
	HalfLength int     // taps on each side of the centre; the filter has 2*HalfLength+1 taps
	KaiserBeta float64 // window shape, >= 0
}

// DesignFIR returns the taps of a linear-phase halfband lowpass with unity
// DC gain. The centre tap is 0.5 and taps at even distance from the centre
// are exactly zero.
func DesignFIR(spec FIRSpec) ([]float64, error) {
	if spec.HalfLength < 1 {
		return nil, fmt.Errorf("%w: half length must be >= 1: %d", ErrInvalidDesign, spec.HalfLength)
	}

	if math.IsNaN(spec.KaiserBeta) || spec.KaiserBeta < 0 {
		return nil, fmt.Errorf("%w: kaiser beta must be >= 0: %g", ErrInvalidDesign, spec.KaiserBeta)
	}

	n := 2*spec.HalfLength + 1
	taps := make([]float64, n)

	for i := range taps {
		offset := i - spec.HalfLength
		if offset != 0 && offset%2 == 0 {
			continue
		}

		taps[i] = 0.5 * sinc(0.5*float64(offset)) * kaiserWindow(offset, spec.HalfLength, spec.KaiserBeta)
	}

	// Scale the side taps so both polyphase branches have unity DC gain.
	var side float64
	for i, v := range taps {
		if i != spec.HalfLength {
			side += v
		}
	}

	if side == 0 {
		return nil, fmt.Errorf("%w: designed zero-sum filter", ErrInvalidDesign)
	}

	for i := range taps {
		taps[i] *= 0.5 / side
	}

	taps[spec.HalfLength] = 0.5

	return taps, nil
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

// kaiserWindow evaluates the window at offset from the centre of a window
// spanning [-half, half].
func kaiserWindow(offset, half int, beta float64) float64 {
	if half < 1 || beta == 0 {
		return 1
	}

	t := float64(offset) / float64(half)
	a := math.Sqrt(math.Max(0, 1-t*t))

	return besselI0(beta*a) / besselI0(beta)
}

// besselI0 is the zeroth-order modified Bessel function of the first kind.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0

	x2 := (x * x) / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-16*sum {
			break
		}
	}

	return sum
}
