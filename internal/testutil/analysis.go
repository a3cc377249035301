package testutil

import "math"

// FitSine projects x onto sin(omega*n) and cos(omega*n) and returns the
// amplitude and phase of the best-fitting sinusoid amp*sin(omega*n + phase).
// The projection is exact when len(x) spans a whole number of periods.
func FitSine(x []float64, omega float64) (amp, phase float64) {
	if len(x) == 0 {
		return 0, 0
	}

	var s, c float64
	for n, v := range x {
		s += v * math.Sin(omega*float64(n))
		c += v * math.Cos(omega*float64(n))
	}

	scale := 2 / float64(len(x))
	s *= scale
	c *= scale

	return math.Hypot(s, c), math.Atan2(c, s)
}

// Peak returns the largest absolute value in x.
func Peak(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	return peak
}

// RMS returns the root mean square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var sum float64
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(x)))
}
