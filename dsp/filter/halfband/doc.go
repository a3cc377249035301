// Package halfband designs the 2x interpolation/decimation filters used by
// the oversampler.
//
// Two families are provided:
//
//   - Polyphase IIR: two parallel chains of first-order allpass sections in
//     z^2. [DesignIIR] returns the allpass coefficients for a given count and
//     normalized transition bandwidth; [IIRAttenuation] reports the resulting
//     stopband attenuation. Even-indexed coefficients belong to the first
//     branch, odd-indexed ones to the second.
//   - Linear-phase FIR: a Kaiser-windowed sinc with every other tap zero
//     around the centre tap ([DesignFIR]).
//
// Transition bandwidth is normalized to the high (oversampled) rate; the
// passband edge sits at 0.25 - transition/2.
package halfband
