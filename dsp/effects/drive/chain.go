package drive

import (
	"github.com/cwbudde/algo-drive/dsp/stage"
)

// Fixed design constants.
const (
	HighpassFrequency = 320.484  // Hz, removes low end before clipping
	LowpassFrequency  = 2223.431 // Hz, smooths generated harmonics
	DriveMultiplier   = 1.06383  // dB per Drive unit
	DriveOffset       = 11.851   // dB at Drive = 0
	ClipLimit         = 1.4
	OutputFactor      = 0.5
)

// Chain is the distortion core: highpass, pre-gain, soft clip, hard clip,
// post-gain, lowpass. It runs at the oversampled rate.
type Chain struct {
	highpass *stage.Filter
	preGain  *stage.Gain
	softClip stage.WaveShaper
	hardClip stage.WaveShaper
	postGain *stage.Gain
	lowpass  *stage.Filter
}

// NewChain returns a chain for the given channel count. Update must be
// called before processing.
func NewChain(channels int) *Chain {
	c := &Chain{
		highpass: stage.NewFilter(stage.FirstOrderHighpass, channels),
		preGain:  stage.NewGain(),
		softClip: stage.WaveShaper{Fn: stage.SoftClip},
		hardClip: stage.WaveShaper{Fn: stage.HardClip(ClipLimit)},
		postGain: stage.NewGain(),
		lowpass:  stage.NewFilter(stage.FirstOrderLowpass, channels),
	}
	c.postGain.SetGainLinear(OutputFactor)

	return c
}

// Update designs the filters for sampleRate and sets the pre-gain from
// drive.
func (c *Chain) Update(sampleRate, drive float64) error {
	if err := c.highpass.Update(sampleRate, HighpassFrequency, 0, 0); err != nil {
		return err
	}

	if err := c.lowpass.Update(sampleRate, LowpassFrequency, 0, 0); err != nil {
		return err
	}

	c.preGain.SetGainDecibels(PreGainDB(drive))

	return nil
}

// PreGainDB returns the active pre-gain in dB.
func (c *Chain) PreGainDB() float64 { return c.preGain.GainDecibels() }

// ProcessChannel runs buf through the chain with the filter state of ch.
func (c *Chain) ProcessChannel(ch int, buf []float64) {
	c.highpass.ProcessChannel(ch, buf)
	c.preGain.ProcessChannel(buf)
	c.softClip.ProcessChannel(buf)
	c.hardClip.ProcessChannel(buf)
	c.postGain.ProcessChannel(buf)
	c.lowpass.ProcessChannel(ch, buf)
}

// Reset clears filter state.
func (c *Chain) Reset() {
	c.highpass.Reset()
	c.lowpass.Reset()
}

// Resize changes the channel count.
func (c *Chain) Resize(channels int) {
	c.highpass.Resize(channels)
	c.lowpass.Resize(channels)
}
