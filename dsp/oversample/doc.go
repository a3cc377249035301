// Package oversample runs per-channel audio through a cascade of 2x halfband
// interpolation and decimation stages so that a nonlinear process can operate
// at a multiple of the base sample rate.
//
// ProcessUp lifts one channel to the oversampled rate and returns a view on
// an internal buffer; the caller processes that view in place and then calls
// ProcessDown to return to the base rate. Filter state persists across calls
// and is cleared only by Reset.
package oversample
