package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto/v2"
)

// Player plays tones without blocking the caller.
type Player interface {
	Play(tones ...Tone)
	Close() error
}

// Nop discards everything. It stands in when no audio device is available.
type Nop struct{}

func (Nop) Play(...Tone) {}

func (Nop) Close() error { return nil }

// OtoPlayer renders tones to PCM and plays each batch on its own oto player.
type OtoPlayer struct {
	ctx        *oto.Context
	ready      chan struct{}
	sampleRate int
	gain       float64

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewOtoPlayer opens the audio device. oto allows one context per process.
func NewOtoPlayer(sampleRate int, gain float64) (*OtoPlayer, error) {
	ctx, ready, err := oto.NewContext(sampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("audio: cannot open device: %w", err)
	}
	return &OtoPlayer{
		ctx:        ctx,
		ready:      ready,
		sampleRate: sampleRate,
		gain:       clampF(gain, 0, 1),
	}, nil
}

// Play starts the tones and returns immediately. Calls made before the
// device is ready, or after Close, are dropped.
func (p *OtoPlayer) Play(tones ...Tone) {
	select {
	case <-p.ready:
	default:
		return
	}

	pcm := Render(p.sampleRate, p.gain, tones...)
	if len(pcm) == 0 {
		return
	}

	p.spawn(func() {
		player := p.ctx.NewPlayer(bytes.NewReader(pcm))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	})
}

// spawn runs fn on its own goroutine unless the player is closed.
// The closed check and wg.Add share a lock with Close.
func (p *OtoPlayer) spawn(fn func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		fn()
	}()
	return true
}

// Close stops accepting tones and waits for the ones in flight.
func (p *OtoPlayer) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
	return nil
}

// Open returns an oto-backed player, or Nop when the device cannot be opened.
// The second result reports whether real audio is available.
func Open(sampleRate int, gain float64, logger *log.Logger) (Player, bool) {
	p, err := NewOtoPlayer(sampleRate, gain)
	if err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "error", err)
		}
		return Nop{}, false
	}
	return p, true
}
