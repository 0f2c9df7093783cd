// Package config provides YAML-based configuration loading for the snake
// game: board geometry, speed ramp, scoring, display and audio.
package config

import (
	"errors"
	"fmt"
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Speed   SpeedConfig   `yaml:"speed"`
	Scoring ScoringConfig `yaml:"scoring"`
	Display DisplayConfig `yaml:"display"`
	Audio   AudioConfig   `yaml:"audio"`
}

// BoardConfig defines the board geometry in pixels. The engine only sees
// the resulting cell count.
type BoardConfig struct {
	BoardPx int `yaml:"board_px"`
	CellPx  int `yaml:"cell_px"`
}

// Cells returns the board side length in cells.
func (b BoardConfig) Cells() int {
	if b.CellPx <= 0 {
		return 0
	}
	return b.BoardPx / b.CellPx
}

// SpeedConfig defines the tick interval ramp.
type SpeedConfig struct {
	BaseTickMs     int `yaml:"base_tick_ms"`
	MinTickMs      int `yaml:"min_tick_ms"`
	StepMs         int `yaml:"step_ms"`
	StepEveryScore int `yaml:"step_every_score"`
}

// ScoringConfig defines points.
type ScoringConfig struct {
	FoodReward int `yaml:"food_reward"`
}

// DisplayConfig defines presentation defaults.
type DisplayConfig struct {
	Theme string `yaml:"theme"`
}

// AudioConfig defines sound settings.
type AudioConfig struct {
	Music       bool    `yaml:"music"`
	Volume      float64 `yaml:"volume"` // master gain, 0..1
	MusicStepMs int     `yaml:"music_step_ms"`
	SampleRate  int     `yaml:"sample_rate"`
}

// Validate checks that every value is usable.
func (c SnakeConfig) Validate() error {
	var errs []error

	if c.Board.BoardPx <= 0 || c.Board.CellPx <= 0 {
		errs = append(errs, fmt.Errorf("board: board_px and cell_px must be positive"))
	} else if cells := c.Board.Cells(); cells < 4 {
		errs = append(errs, fmt.Errorf("board: need at least 4 cells, got %d", cells))
	}

	if c.Speed.BaseTickMs <= 0 || c.Speed.MinTickMs <= 0 {
		errs = append(errs, fmt.Errorf("speed: tick intervals must be positive"))
	}
	if c.Speed.MinTickMs > c.Speed.BaseTickMs {
		errs = append(errs, fmt.Errorf("speed: min_tick_ms %d exceeds base_tick_ms %d", c.Speed.MinTickMs, c.Speed.BaseTickMs))
	}
	if c.Speed.StepMs < 0 {
		errs = append(errs, fmt.Errorf("speed: step_ms must not be negative"))
	}
	if c.Speed.StepEveryScore <= 0 {
		errs = append(errs, fmt.Errorf("speed: step_every_score must be positive"))
	}

	if c.Scoring.FoodReward <= 0 {
		errs = append(errs, fmt.Errorf("scoring: food_reward must be positive"))
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio: volume must be within 0..1, got %g", c.Audio.Volume))
	}
	if c.Audio.MusicStepMs <= 0 {
		errs = append(errs, fmt.Errorf("audio: music_step_ms must be positive"))
	}
	if c.Audio.SampleRate < 8000 {
		errs = append(errs, fmt.Errorf("audio: sample_rate must be at least 8000, got %d", c.Audio.SampleRate))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
