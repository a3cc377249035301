package host

import "math"

// Source fills planar blocks with input audio.
type Source interface {
	Fill(block [][]float64)
}

// SineSource generates a continuous sine on every channel.
type SineSource struct {
	step      float64
	amplitude float64
	phase     float64
}

// NewSineSource returns a sine generator at freq Hz.
func NewSineSource(freq, amplitude, sampleRate float64) *SineSource {
	return &SineSource{
		step:      2 * math.Pi * freq / sampleRate,
		amplitude: amplitude,
	}
}

// Fill writes the next len(block[0]) frames.
func (s *SineSource) Fill(block [][]float64) {
	if len(block) == 0 {
		return
	}

	phase := s.phase
	for i := range block[0] {
		v := s.amplitude * math.Sin(phase)
		for _, ch := range block {
			ch[i] = v
		}

		phase += s.step
		if phase >= 2*math.Pi {
			phase -= 2 * math.Pi
		}
	}

	s.phase = phase
}

// LoopSource plays a planar buffer in a loop. Output channels beyond the
// buffer's channel count repeat its channels round robin.
type LoopSource struct {
	data   [][]float64
	frames int
	pos    int
}

// NewLoopSource returns a looping source over data. All channels must have
// the same length; an empty buffer produces silence.
func NewLoopSource(data [][]float64) *LoopSource {
	frames := 0
	if len(data) > 0 {
		frames = len(data[0])
	}

	return &LoopSource{data: data, frames: frames}
}

// Fill writes the next len(block[0]) frames, wrapping at the end of the
// buffer.
func (l *LoopSource) Fill(block [][]float64) {
	if len(block) == 0 {
		return
	}

	n := len(block[0])
	if l.frames == 0 {
		for _, ch := range block {
			clear(ch)
		}

		return
	}

	for done := 0; done < n; {
		chunk := min(n-done, l.frames-l.pos)
		for c, ch := range block {
			copy(ch[done:done+chunk], l.data[c%len(l.data)][l.pos:l.pos+chunk])
		}

		done += chunk
		l.pos += chunk
		if l.pos == l.frames {
			l.pos = 0
		}
	}
}
