package drive

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-drive/dsp/filter/design"
	"github.com/cwbudde/algo-drive/dsp/stage"
)

// Tone shelf constants.
const (
	ToneFrequency = 2223.431
	ToneQ         = design.DefaultQ
)

// Tone is the post stage: a high shelf whose linear gain is the Tone
// parameter, then a volume gain set to Level.
type Tone struct {
	shelf  *stage.Filter
	volume *stage.Gain
}

// NewTone returns a tone stage for the given channel count.
func NewTone(channels int) *Tone {
	return &Tone{
		shelf:  stage.NewFilter(stage.HighShelf, channels),
		volume: stage.NewGain(),
	}
}

// Update redesigns the shelf and sets the volume.
func (t *Tone) Update(sampleRate, tone, level float64) error {
	if err := t.shelf.Update(sampleRate, ToneFrequency, ToneQ, tone); err != nil {
		return err
	}

	t.volume.SetGainLinear(level)

	return nil
}

// ProcessChannel applies shelf and volume to buf with the state of ch.
func (t *Tone) ProcessChannel(ch int, buf []float64) {
	t.shelf.ProcessChannel(ch, buf)
	t.volume.ProcessChannel(buf)
}

// Reset clears the shelf state.
func (t *Tone) Reset() { t.shelf.Reset() }

// Resize changes the channel count.
func (t *Tone) Resize(channels int) { t.shelf.Resize(channels) }

// Combine mixes dry into wet in place: wet = (wet + dry) * OutputFactor.
// dry must be at least as long as wet.
func Combine(wet, dry []float64) {
	vecmath.AddBlockInPlace(wet, dry[:len(wet)])
	vecmath.ScaleBlockInPlace(wet, OutputFactor)
}
