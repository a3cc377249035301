//go:build headless

package host

import (
	"errors"
	"io"
	"time"
)

// ErrNoAudio is returned by NewPlayer in headless builds.
var ErrNoAudio = errors.New("host: built without audio output")

// Player is unavailable in headless builds.
type Player struct{}

// NewPlayer always fails in headless builds.
func NewPlayer(sampleRate, channels int, buffer time.Duration) (*Player, error) {
	return nil, ErrNoAudio
}

func (p *Player) Start(r io.Reader) {}

func (p *Player) Err() error { return nil }

func (p *Player) Close() error { return nil }
