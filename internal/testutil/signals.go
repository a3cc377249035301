// Package testutil holds signal generators and assertions shared by the
// package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns amplitude*sin(2π·freqHz·n/sampleRate) for
// n in [0, length).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	w := 2 * math.Pi * freqHz / sampleRate
	for n := range out {
		out[n] = amplitude * math.Sin(w*float64(n))
	}

	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude). The
// same seed always yields the same samples.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns a unit impulse at pos. A pos outside the buffer yields
// silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for n := range out {
		out[n] = value
	}

	return out
}

// Block builds a planar block with one copy of signal per channel.
func Block(channels int, signal []float64) [][]float64 {
	block := make([][]float64, channels)
	for ch := range block {
		block[ch] = append([]float64(nil), signal...)
	}

	return block
}

// NoiseBlock builds a planar block of independent noise channels; channel c
// uses seed+c.
func NoiseBlock(seed int64, channels, frames int, amplitude float64) [][]float64 {
	block := make([][]float64, channels)
	for ch := range block {
		block[ch] = DeterministicNoise(seed+int64(ch), amplitude, frames)
	}

	return block
}

// CloneBlock deep-copies a planar block.
func CloneBlock(block [][]float64) [][]float64 {
	out := make([][]float64, len(block))
	for ch, data := range block {
		out[ch] = append([]float64(nil), data...)
	}

	return out
}
