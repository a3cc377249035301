// Package design computes biquad coefficients for the filter shapes used by
// the drive pedal: first-order highpass/lowpass (bilinear transform of the
// one-pole analog prototypes) and the RBJ high shelf driven by a linear gain
// factor.
//
// Every designer validates its corner frequency against the Nyquist
// frequency of the given sample rate and returns [ErrFrequencyAboveNyquist]
// instead of producing unstable coefficients.
package design
