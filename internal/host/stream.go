package host

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-drive/dsp/core"
)

// ErrInvalidStream is returned for unusable stream configurations.
var ErrInvalidStream = errors.New("host: invalid stream")

// Renderer processes a planar block in place. drive.Processor satisfies it.
type Renderer interface {
	Process(block [][]float64)
}

// Stream is an io.Reader producing interleaved little-endian float32 frames.
// Every block is pulled from a Source and rendered before it is served, so
// the reader drives the processor from the device callback goroutine.
type Stream struct {
	renderer Renderer
	source   Source
	block    [][]float64
	pending  []byte
	offset   int
	frames   atomic.Int64
}

// NewStream returns a Stream rendering blocks of blockSize frames with the
// given channel count.
func NewStream(r Renderer, src Source, channels, blockSize int) (*Stream, error) {
	if r == nil || src == nil {
		return nil, fmt.Errorf("%w: nil renderer or source", ErrInvalidStream)
	}

	if channels < 1 || blockSize < 1 {
		return nil, fmt.Errorf("%w: channels=%d block=%d", ErrInvalidStream, channels, blockSize)
	}

	pending := make([]byte, channels*blockSize*4)

	return &Stream{
		renderer: r,
		source:   src,
		block:    core.NewPlanar(channels, blockSize),
		pending:  pending,
		offset:   len(pending),
	}, nil
}

// Frames returns the number of frames rendered so far. It is safe to call
// while another goroutine reads.
func (s *Stream) Frames() int64 { return s.frames.Load() }

// Read fills p completely. It never returns an error.
func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if s.offset == len(s.pending) {
			s.render()
		}

		c := copy(p[n:], s.pending[s.offset:])
		s.offset += c
		n += c
	}

	return n, nil
}

func (s *Stream) render() {
	s.source.Fill(s.block)
	s.renderer.Process(s.block)

	channels := len(s.block)
	for c, ch := range s.block {
		for i, v := range ch {
			off := (i*channels + c) * 4
			binary.LittleEndian.PutUint32(s.pending[off:], math.Float32bits(float32(v)))
		}
	}

	s.offset = 0
	s.frames.Add(int64(len(s.block[0])))
}
