// Package drive implements an oversampled overdrive pedal.
//
// Each block runs through a fixed chain at the oversampled rate: a highpass
// at 320 Hz, a drive-controlled pre-gain, a cubic soft clip, a hard clip at
// ±1.4, a 0.5 trim and a lowpass at 2.2 kHz. The result is mixed 1:1 with
// the unprocessed input, shaped by a high shelf (Tone) and scaled by Level
// before returning to the base rate.
//
// Parameters live in a param.Set and may be written from any goroutine;
// Process reads them once per block without locking.
package drive
