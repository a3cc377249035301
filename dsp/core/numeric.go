package core

import "math"

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ValidSampleRate reports whether sampleRate is usable for filter design.
func ValidSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && IsFinite(sampleRate)
}

// BelowNyquist reports whether freq lies strictly inside (0, sampleRate/2).
func BelowNyquist(freq, sampleRate float64) bool {
	if !ValidSampleRate(sampleRate) || !IsFinite(freq) {
		return false
	}

	return freq > 0 && freq < sampleRate/2
}

// denormalFloor is the magnitude below which FlushDenormals returns zero.
const denormalFloor = 1e-30

// FlushDenormals returns 0 for |x| < 1e-30 and x otherwise. Recursive
// filter memories pass through it so a decaying tail reaches exact zero
// instead of cycling through subnormal values.
func FlushDenormals(x float64) float64 {
	if x > -denormalFloor && x < denormalFloor {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
