// Package audio synthesizes the game's chiptune sound effects and background
// music and plays them through oto.
package audio

import (
	"math"
	"time"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSquare Wave = iota
	WaveTriangle
	WaveSine
)

const (
	// ChannelCount is fixed at stereo; both channels carry the same signal.
	ChannelCount = 2
	// frameBytes is one stereo float32 frame.
	frameBytes = 4 * ChannelCount

	silence = 0.0001
	attack  = 10 * time.Millisecond
	release = 20 * time.Millisecond
)

// Tone is a single enveloped oscillator note.
type Tone struct {
	Freq     float64       // Hz; 0 is a rest
	Duration time.Duration // time until the envelope reaches silence
	Volume   float64       // peak gain
	Wave     Wave
	Delay    time.Duration // offset from the start of the render
}

// Envelope returns the gain at offset at from the tone's start: an
// exponential rise from silence to Volume over 10ms, then an exponential
// fall back to silence at Duration.
func (t Tone) Envelope(at time.Duration) float64 {
	if t.Volume <= 0 || at < 0 || at >= t.Duration {
		return 0
	}
	if at < attack {
		return expRamp(silence, t.Volume, at.Seconds()/attack.Seconds())
	}
	decay := t.Duration - attack
	if decay <= 0 {
		return t.Volume
	}
	return expRamp(t.Volume, silence, (at - attack).Seconds()/decay.Seconds())
}

func expRamp(from, to, frac float64) float64 {
	return from * math.Pow(to/from, frac)
}

func oscillate(w Wave, phase float64) float64 {
	switch w {
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveSine:
		return math.Sin(2 * math.Pi * phase)
	default:
		if phase < 0.5 {
			return 1
		}
		return -1
	}
}

// Length returns how long a render of tones lasts.
func Length(tones ...Tone) time.Duration {
	var end time.Duration
	for _, t := range tones {
		if t.Freq <= 0 {
			continue
		}
		end = max(end, t.Delay+t.Duration+release)
	}
	return end
}

// Render mixes tones into interleaved stereo float32 little-endian PCM,
// scaled by gain. Rests contribute nothing.
func Render(sampleRate int, gain float64, tones ...Tone) []byte {
	frames := int(Length(tones...).Seconds() * float64(sampleRate))
	if frames <= 0 || sampleRate <= 0 {
		return nil
	}

	mix := make([]float64, frames)
	for _, t := range tones {
		if t.Freq <= 0 {
			continue
		}
		start := int(t.Delay.Seconds() * float64(sampleRate))
		n := int(t.Duration.Seconds() * float64(sampleRate))
		for i := 0; i < n && start+i < frames; i++ {
			at := time.Duration(float64(i) / float64(sampleRate) * float64(time.Second))
			phase := math.Mod(t.Freq*float64(i)/float64(sampleRate), 1)
			mix[start+i] += oscillate(t.Wave, phase) * t.Envelope(at)
		}
	}

	buf := make([]byte, frames*frameBytes)
	for i, s := range mix {
		putStereoF32(buf, i, clampF(s*gain, -1, 1))
	}
	return buf
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := range ChannelCount {
		off := i*frameBytes + ch*4
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
	}
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
