//go:build !headless

package host

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Player plays an io.Reader of interleaved float32 frames on the default
// audio device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

// NewPlayer opens the audio device. It blocks until the device is ready.
func NewPlayer(sampleRate, channels int, buffer time.Duration) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   buffer,
	})
	if err != nil {
		return nil, fmt.Errorf("host: open audio device: %w", err)
	}
	<-ready

	return &Player{ctx: ctx}, nil
}

// Start begins pulling from r. A second call replaces the running source.
func (p *Player) Start(r io.Reader) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player != nil {
		_ = p.player.Close()
	}

	p.player = p.ctx.NewPlayer(r)
	p.player.Play()
}

// Err reports an asynchronous playback error, if any.
func (p *Player) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player != nil {
		if err := p.player.Err(); err != nil {
			return err
		}
	}

	return p.ctx.Err()
}

// Close stops playback.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player == nil {
		return nil
	}

	err := p.player.Close()
	p.player = nil

	return err
}
