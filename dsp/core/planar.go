package core

// NewPlanar allocates a zeroed channel × frame buffer backed by a single
// contiguous slice.
func NewPlanar(channels, frames int) [][]float64 {
	if channels <= 0 {
		return nil
	}

	if frames < 0 {
		frames = 0
	}

	backing := make([]float64, channels*frames)
	out := make([][]float64, channels)

	for ch := range out {
		out[ch] = backing[ch*frames : (ch+1)*frames : (ch+1)*frames]
	}

	return out
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	return copy(dst, src)
}

// Frames returns the frame count of a planar block: the length of its
// shortest channel, or 0 for an empty block.
func Frames(block [][]float64) int {
	if len(block) == 0 {
		return 0
	}

	n := len(block[0])
	for _, ch := range block[1:] {
		if len(ch) < n {
			n = len(ch)
		}
	}

	return n
}

// ClonePlanar returns a deep copy of block.
func ClonePlanar(block [][]float64) [][]float64 {
	out := NewPlanar(len(block), Frames(block))
	for ch := range out {
		copy(out[ch], block[ch])
	}

	return out
}
