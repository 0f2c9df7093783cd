package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestEnvelopeShape(t *testing.T) {
	tone := Tone{Freq: 440, Duration: 100 * time.Millisecond, Volume: 0.02}

	if g := tone.Envelope(0); math.Abs(g-silence) > 1e-9 {
		t.Errorf("Envelope at start = %g, expected %g", g, silence)
	}
	if g := tone.Envelope(attack); math.Abs(g-0.02) > 1e-9 {
		t.Errorf("Envelope at peak = %g, expected 0.02", g)
	}
	if tone.Envelope(5*time.Millisecond) >= tone.Envelope(attack) {
		t.Error("Envelope should rise during attack")
	}
	if tone.Envelope(50*time.Millisecond) >= tone.Envelope(20*time.Millisecond) {
		t.Error("Envelope should fall after attack")
	}
	if tone.Envelope(100*time.Millisecond) != 0 || tone.Envelope(-time.Millisecond) != 0 {
		t.Error("Envelope outside the tone should be 0")
	}
}

func TestRenderLength(t *testing.T) {
	const rate = 8000
	pcm := Render(rate, 1, GameOverFX()...)

	// Second note ends at 90ms + 220ms, plus release tail.
	want := int((310*time.Millisecond+release).Seconds()*rate) * frameBytes
	if len(pcm) != want {
		t.Errorf("Render length = %d bytes, expected %d", len(pcm), want)
	}
	if Render(rate, 1, Tone{Freq: 0, Duration: time.Second, Volume: 1}) != nil {
		t.Error("A rest alone should render nothing")
	}
}

func TestRenderStereoAndClamped(t *testing.T) {
	const rate = 8000
	loud := Tone{Freq: 200, Duration: 50 * time.Millisecond, Volume: 1, Wave: WaveSquare}
	pcm := Render(rate, 1, loud, loud, loud)

	frames := len(pcm) / frameBytes
	var peak float64
	for i := range frames {
		l := math.Float32frombits(binary.LittleEndian.Uint32(pcm[i*frameBytes:]))
		r := math.Float32frombits(binary.LittleEndian.Uint32(pcm[i*frameBytes+4:]))
		if l != r {
			t.Fatalf("Frame %d: channels differ (%g vs %g)", i, l, r)
		}
		peak = math.Max(peak, math.Abs(float64(l)))
	}
	if peak > 1 {
		t.Errorf("Peak %g exceeds full scale", peak)
	}
	if peak < 0.9 {
		t.Errorf("Three full-volume tones should hit the clamp, peak %g", peak)
	}
}

func TestOscillators(t *testing.T) {
	tests := []struct {
		wave  Wave
		phase float64
		want  float64
	}{
		{WaveSquare, 0.25, 1},
		{WaveSquare, 0.75, -1},
		{WaveTriangle, 0.5, 1},
		{WaveTriangle, 0, -1},
		{WaveSine, 0.25, 1},
	}
	for _, tc := range tests {
		if got := oscillate(tc.wave, tc.phase); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("oscillate(%d, %g) = %g, expected %g", tc.wave, tc.phase, got, tc.want)
		}
	}
}

func TestSequencerLoopsPattern(t *testing.T) {
	seq := NewSequencer(MusicPattern)
	if len(MusicPattern) != 16 {
		t.Fatalf("Pattern should have 16 steps, got %d", len(MusicPattern))
	}

	var notes, rests int
	for range 2 * len(MusicPattern) {
		tone, ok := seq.Next()
		if !ok {
			rests++
			continue
		}
		notes++
		if tone.Wave != WaveSquare || tone.Volume != musicVolume || tone.Duration != musicNoteLen {
			t.Errorf("Unexpected music tone %+v", tone)
		}
	}
	if rests != 4 || notes != 28 {
		t.Errorf("Two loops should give 28 notes and 4 rests, got %d and %d", notes, rests)
	}
	if seq.Step() != 32 {
		t.Errorf("Step = %d, expected 32", seq.Step())
	}

	seq.Reset()
	if tone, _ := seq.Next(); tone.Freq != 392 {
		t.Errorf("First note after reset = %g, expected 392", tone.Freq)
	}

	if _, ok := NewSequencer(nil).Next(); ok {
		t.Error("Empty pattern should only produce rests")
	}
}

func TestEffects(t *testing.T) {
	eat := EatFX()
	if len(eat) != 1 || eat[0].Freq != 880 || eat[0].Wave != WaveTriangle {
		t.Errorf("Unexpected eat effect %+v", eat)
	}
	over := GameOverFX()
	if len(over) != 2 || over[1].Delay != 90*time.Millisecond || over[0].Freq <= over[1].Freq {
		t.Errorf("Unexpected game-over effect %+v", over)
	}
}

func TestNopPlayer(t *testing.T) {
	var p Player = Nop{}
	p.Play(EatFX()...)
	if err := p.Close(); err != nil {
		t.Errorf("Nop.Close() = %v", err)
	}
}

func TestOtoPlayerCloseWaitsForPlayback(t *testing.T) {
	p := &OtoPlayer{ready: make(chan struct{})}

	var started, finished atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.spawn(func() {
				started.Add(1)
				time.Sleep(time.Millisecond)
				finished.Add(1)
			})
		}()
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if started.Load() != finished.Load() {
		t.Errorf("Close returned with %d of %d sounds still playing", started.Load()-finished.Load(), started.Load())
	}
	wg.Wait()

	if p.spawn(func() { t.Error("Sound played after Close") }) {
		t.Error("spawn should refuse work after Close")
	}
	// Not ready: Play drops the tones without touching the device.
	p.Play(EatFX()...)
	if started.Load() != finished.Load() {
		t.Error("No sound may start after Close")
	}
}
