package host

// Deinterleave splits interleaved samples into planar channels. It returns
// the number of whole frames written, bounded by the shortest destination
// channel.
func Deinterleave(dst [][]float64, src []float32) int {
	channels := len(dst)
	if channels == 0 {
		return 0
	}

	frames := len(src) / channels
	for _, ch := range dst {
		frames = min(frames, len(ch))
	}

	for c, ch := range dst {
		for i := range frames {
			ch[i] = float64(src[i*channels+c])
		}
	}

	return frames
}

// Interleave packs the first frames samples of each planar channel into dst.
// It returns the number of frames written.
func Interleave(dst []float32, src [][]float64, frames int) int {
	channels := len(src)
	if channels == 0 {
		return 0
	}

	frames = min(frames, len(dst)/channels)
	for _, ch := range src {
		frames = min(frames, len(ch))
	}

	for c, ch := range src {
		for i := range frames {
			dst[i*channels+c] = float32(ch[i])
		}
	}

	return frames
}
