package audio

import "time"

// Note is one step of a music pattern. Len scales the note duration.
type Note struct {
	Freq float64
	Len  int
}

// MusicPattern is the background loop, one note per music step. Zero is a rest.
var MusicPattern = []Note{
	{392, 1}, {523.25, 1}, {659.25, 1}, {523.25, 1},
	{392, 1}, {329.63, 1}, {392, 1}, {0, 1},
	{440, 1}, {587.33, 1}, {698.46, 1}, {587.33, 1},
	{440, 1}, {349.23, 1}, {440, 1}, {0, 1},
}

// DefaultMusicStep is the interval between music notes.
const DefaultMusicStep = 170 * time.Millisecond

const (
	musicNoteLen = 140 * time.Millisecond
	musicVolume  = 0.012
)

// Sequencer walks a pattern one note per call, looping forever.
type Sequencer struct {
	pattern []Note
	step    int
}

// NewSequencer creates a sequencer over pattern.
func NewSequencer(pattern []Note) *Sequencer {
	return &Sequencer{pattern: pattern}
}

// Next returns the tone for the current step and advances. Rests report false.
func (s *Sequencer) Next() (Tone, bool) {
	if len(s.pattern) == 0 {
		return Tone{}, false
	}
	note := s.pattern[s.step%len(s.pattern)]
	s.step++
	if note.Freq <= 0 {
		return Tone{}, false
	}
	return Tone{
		Freq:     note.Freq,
		Duration: musicNoteLen * time.Duration(max(note.Len, 1)),
		Volume:   musicVolume,
		Wave:     WaveSquare,
	}, true
}

// Step returns how many notes have been sequenced.
func (s *Sequencer) Step() int {
	return s.step
}

// Reset rewinds to the first note.
func (s *Sequencer) Reset() {
	s.step = 0
}

// EatFX is the blip played when food is eaten.
func EatFX() []Tone {
	return []Tone{
		{Freq: 880, Duration: 60 * time.Millisecond, Volume: 0.018, Wave: WaveTriangle},
	}
}

// GameOverFX is the falling two-note sting played on a fatal step.
func GameOverFX() []Tone {
	return []Tone{
		{Freq: 180, Duration: 150 * time.Millisecond, Volume: 0.03, Wave: WaveSquare},
		{Freq: 130, Duration: 220 * time.Millisecond, Volume: 0.03, Wave: WaveSquare, Delay: 90 * time.Millisecond},
	}
}
