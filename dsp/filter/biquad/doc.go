// Package biquad provides the second-order IIR runtime used by the filter
// stages.
//
// A [Section] implements Direct Form II Transposed processing for one
// channel. A [Bank] duplicates one set of [Coefficients] across several
// channels, each with its own delay state, so a multi-channel block can be
// filtered with a single coefficient update per block.
//
// Coefficient design lives in dsp/filter/design.
package biquad
