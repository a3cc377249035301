// Package core holds small numeric and buffer helpers shared by the DSP
// packages: range clamping, dB conversion, sample-rate validation and planar
// (channel × frame) block utilities.
package core
