// Package wavio reads and writes PCM WAV files as planar float64 audio.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-vecmath"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrUnsupported is returned for WAV files this package cannot convert.
var ErrUnsupported = errors.New("wavio: unsupported wav")

// Audio is a planar buffer with its stream format.
type Audio struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float64
}

// Frames returns the number of frames per channel.
func (a *Audio) Frames() int {
	if a == nil || len(a.Channels) == 0 {
		return 0
	}

	return len(a.Channels[0])
}

// readChunk is the number of frames decoded per PCMBuffer call.
const readChunk = 4096

// WAVE format tags from the fmt chunk.
const (
	formatPCM   = 1
	formatFloat = 3
)

func validDepth(bits int) bool {
	return bits == 16 || bits == 24 || bits == 32
}

// Read decodes an integer PCM or 32-bit IEEE float WAV stream.
func Read(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a wav stream", ErrUnsupported)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("wavio: seek to pcm: %w", err)
	}

	format := dec.Format()
	bits := int(dec.SampleBitDepth())

	isFloat := dec.WavAudioFormat == formatFloat

	switch {
	case dec.WavAudioFormat != formatPCM && !isFloat:
		return nil, fmt.Errorf("%w: format tag %#x", ErrUnsupported, dec.WavAudioFormat)
	case isFloat && bits != 32:
		return nil, fmt.Errorf("%w: %d-bit float samples", ErrUnsupported, bits)
	case !validDepth(bits):
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupported, bits)
	}

	if format.NumChannels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupported, format.NumChannels)
	}

	nch := format.NumChannels
	buf := &audio.IntBuffer{
		Format:         format,
		Data:           make([]int, readChunk*nch),
		SourceBitDepth: bits,
	}

	data := make([]int, 0, int(dec.PCMLen())/(bits/8))
	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("wavio: decode pcm: %w", err)
		}

		if n == 0 {
			break
		}

		data = append(data, buf.Data[:n]...)
	}

	frames := len(data) / nch
	scale := 1 / math.Ldexp(1, bits-1)

	out := &Audio{
		SampleRate: format.SampleRate,
		BitDepth:   bits,
		Channels:   make([][]float64, nch),
	}

	for c := range out.Channels {
		ch := make([]float64, frames)
		for i := range ch {
			v := data[i*nch+c]
			if isFloat {
				// The decoder hands back the raw 32-bit word.
				ch[i] = float64(math.Float32frombits(uint32(int32(v))))
			} else {
				ch[i] = float64(v) * scale
			}
		}

		out.Channels[c] = ch
	}

	return out, nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// WriteOption configures Write.
type WriteOption func(*writeConfig)

type writeConfig struct {
	dither *vecmath.DitherState
}

// WithDither adds TPDF dither of ±1 LSB before quantization. The seed makes
// the noise reproducible.
func WithDither(seed int64) WriteOption {
	return func(cfg *writeConfig) {
		cfg.dither = vecmath.NewDitherState(seed)
	}
}

// Write encodes a as integer PCM. Samples are clipped to [-1, 1]. A zero
// BitDepth writes 16-bit samples.
func Write(w io.WriteSeeker, a *Audio, opts ...WriteOption) error {
	var cfg writeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	bits := a.BitDepth
	if bits == 0 {
		bits = 16
	}

	if !validDepth(bits) {
		return fmt.Errorf("%w: %d-bit samples", ErrUnsupported, bits)
	}

	nch := len(a.Channels)
	if nch == 0 || a.SampleRate < 1 {
		return fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupported, nch, a.SampleRate)
	}

	frames := a.Frames()
	full := math.Ldexp(1, bits-1) - 1

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: nch,
			SampleRate:  a.SampleRate,
		},
		Data:           make([]int, frames*nch),
		SourceBitDepth: bits,
	}

	scratch := make([]float64, frames)
	for c, ch := range a.Channels {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, want %d", ErrUnsupported, c, len(ch), frames)
		}

		for i, v := range ch {
			scratch[i] = max(-1, min(1, v)) * full
		}

		if cfg.dither != nil {
			vecmath.AddDitherTPDF(scratch, 1, cfg.dither)
		}

		for i, v := range scratch {
			buf.Data[i*nch+c] = int(max(-full-1, min(full, math.Round(v))))
		}
	}

	enc := wav.NewEncoder(w, a.SampleRate, bits, nch, 1)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	return enc.Close()
}

// WriteFile encodes a into a new file at path.
func WriteFile(path string, a *Audio, opts ...WriteOption) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, a, opts...); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
