package stage

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-drive/dsp/core"
)

// Gain multiplies every sample by a linear factor.
type Gain struct {
	linear float64
}

// NewGain returns a unity gain.
func NewGain() *Gain { return &Gain{linear: 1} }

// SetGainDecibels sets the factor from a level in dB.
func (g *Gain) SetGainDecibels(db float64) { g.linear = core.DBToLinear(db) }

// SetGainLinear sets the factor directly.
func (g *Gain) SetGainLinear(linear float64) { g.linear = linear }

// GainLinear returns the current factor.
func (g *Gain) GainLinear() float64 { return g.linear }

// GainDecibels returns the current factor in dB.
func (g *Gain) GainDecibels() float64 { return core.LinearToDB(g.linear) }

// ProcessChannel scales buf in place.
func (g *Gain) ProcessChannel(buf []float64) {
	if g.linear == 1 {
		return
	}

	vecmath.ScaleBlockInPlace(buf, g.linear)
}

// Process scales every channel of block in place.
func (g *Gain) Process(block [][]float64) {
	for _, buf := range block {
		g.ProcessChannel(buf)
	}
}
