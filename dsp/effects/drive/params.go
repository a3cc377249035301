package drive

import (
	"github.com/cwbudde/algo-drive/dsp/param"
)

// Parameter ids.
const (
	ParamDrive  = "DRIVE"
	ParamLevel  = "LEVEL"
	ParamTone   = "TONE"
	ParamBypass = "BYPASS"
)

// ParameterSpecs returns the parameter table in declaration order.
func ParameterSpecs() []param.Spec {
	return []param.Spec{
		{ID: ParamDrive, Name: "Drive", Min: 0, Max: 24, Step: 0.01, Default: 12},
		{ID: ParamLevel, Name: "Level", Min: 0, Max: 2, Step: 0.01, Default: 1},
		{ID: ParamTone, Name: "Tone", Min: 0.1, Max: 1.5, Step: 0.01, Default: 0.8},
		{ID: ParamBypass, Name: "Bypass", Min: 0, Max: 1, Step: 1, Default: 0},
	}
}

// NewParameterSet returns a Set holding every parameter at its default.
func NewParameterSet() *param.Set {
	set, err := param.NewSet(ParameterSpecs()...)
	if err != nil {
		panic("drive: invalid parameter table: " + err.Error())
	}

	return set
}

// Snapshot is the parameter state used for one block.
type Snapshot struct {
	Drive  float64
	Level  float64
	Tone   float64
	Bypass bool
}

// DefaultSnapshot returns the parameter defaults.
func DefaultSnapshot() Snapshot {
	return Snapshot{Drive: 12, Level: 1, Tone: 0.8}
}

// PreGainDB maps the Drive parameter to the pre-clip boost in dB.
func PreGainDB(drive float64) float64 {
	return DriveMultiplier*drive + DriveOffset
}

// handles caches the parameter slots read on every block.
type handles struct {
	drive, level, tone, bypass *param.Parameter
}

func newHandles(set *param.Set) handles {
	return handles{
		drive:  set.Param(ParamDrive),
		level:  set.Param(ParamLevel),
		tone:   set.Param(ParamTone),
		bypass: set.Param(ParamBypass),
	}
}

func (h handles) snapshot() Snapshot {
	return Snapshot{
		Drive:  h.drive.Load(),
		Level:  h.level.Load(),
		Tone:   h.tone.Load(),
		Bypass: h.bypass.Load() >= 0.5,
	}
}
