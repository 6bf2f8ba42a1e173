// Package cue plays a short synthesized chirp when a swipe completes.
package cue

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/olivier-w/swipe/internal/deck"
)

const (
	sampleRate   = 44100
	channelCount = 2
	chirpLength  = 120 * time.Millisecond
)

// Player lazily opens the audio device on first use. After a failure it
// stays silent.
type Player struct {
	volume float64

	once   sync.Once
	ctx    *oto.Context
	err    error
	mu     sync.Mutex
	active *oto.Player
}

// New returns a Player at the given volume in [0, 1].
func New(volume float64) *Player {
	return &Player{volume: volume}
}

func (p *Player) init() error {
	p.once.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		p.ctx, ready, p.err = oto.NewContext(op)
		if p.err == nil {
			<-ready
		}
	})
	return p.err
}

// Play starts the chirp for dir and returns without waiting for it to end.
func (p *Player) Play(dir deck.Direction) error {
	if err := p.init(); err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}

	pcm := Chirp(dir, p.volume)
	player := p.ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()

	// Hold a reference so the previous chirp is not collected mid-play.
	p.mu.Lock()
	p.active = player
	p.mu.Unlock()
	return nil
}

// Chirp renders a stereo signed 16-bit little-endian sweep: rising for
// accept, falling for reject.
func Chirp(dir deck.Direction, volume float64) []byte {
	from, to := 440.0, 294.0
	if dir == deck.Accept {
		from, to = 660.0, 990.0
	}

	n := int(chirpLength.Seconds() * sampleRate)
	fade := n / 8
	buf := make([]byte, n*channelCount*2)
	phase := 0.0
	for i := range n {
		t := float64(i) / float64(n)
		freq := from + (to-from)*t
		phase += 2 * math.Pi * freq / sampleRate

		env := 1.0
		if i < fade {
			env = float64(i) / float64(fade)
		} else if i > n-fade {
			env = float64(n-i) / float64(fade)
		}

		v := int16(math.Sin(phase) * env * volume * math.MaxInt16)
		off := i * channelCount * 2
		for ch := range channelCount {
			binary.LittleEndian.PutUint16(buf[off+ch*2:], uint16(v))
		}
	}
	return buf
}
