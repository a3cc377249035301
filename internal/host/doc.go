// Package host adapts a drive.Processor to streaming audio back ends.
//
// The processor works on planar float64 blocks. Audio devices and files
// usually exchange interleaved samples, so this package provides the
// conversion helpers, a pull-style Stream that renders fixed-size blocks on
// demand, and an oto-backed Player for realtime output.
package host
