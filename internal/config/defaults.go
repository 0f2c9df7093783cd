package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			BoardPx: 480,
			CellPx:  24,
		},
		Speed: SpeedConfig{
			BaseTickMs:     130,
			MinTickMs:      65,
			StepMs:         5,
			StepEveryScore: 30,
		},
		Scoring: ScoringConfig{
			FoodReward: 10,
		},
		Display: DisplayConfig{
			Theme: "retro",
		},
		Audio: AudioConfig{
			Music:       false,
			Volume:      1.0,
			MusicStepMs: 170,
			SampleRate:  44100,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
