package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Status is the lifecycle state of a run.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusGameOver Status = "gameover"
)

// Rules holds the fixed numbers the engine plays by.
type Rules struct {
	Cells          int // board side length in cells
	BaseTickMs     int // tick interval at score 0
	MinTickMs      int // fastest allowed tick interval
	StepMs         int // interval reduction per speed step
	StepEveryScore int // score needed per speed step
	FoodReward     int // points per food eaten
}

// DefaultRules returns the classic 480px board split into 24px cells.
func DefaultRules() Rules {
	return Rules{
		Cells:          480 / 24,
		BaseTickMs:     130,
		MinTickMs:      65,
		StepMs:         5,
		StepEveryScore: 30,
		FoodReward:     10,
	}
}

// Validate rejects rules the engine cannot play by.
func (r Rules) Validate() error {
	var errs []error
	if r.Cells < 4 {
		errs = append(errs, fmt.Errorf("cells must be at least 4, got %d", r.Cells))
	}
	if r.BaseTickMs <= 0 {
		errs = append(errs, fmt.Errorf("base tick must be positive, got %d", r.BaseTickMs))
	}
	if r.MinTickMs <= 0 {
		errs = append(errs, fmt.Errorf("min tick must be positive, got %d", r.MinTickMs))
	}
	if r.MinTickMs > r.BaseTickMs {
		errs = append(errs, fmt.Errorf("min tick %d exceeds base tick %d", r.MinTickMs, r.BaseTickMs))
	}
	if r.StepMs < 0 {
		errs = append(errs, fmt.Errorf("step must not be negative, got %d", r.StepMs))
	}
	if r.StepEveryScore <= 0 {
		errs = append(errs, fmt.Errorf("step-every score must be positive, got %d", r.StepEveryScore))
	}
	if r.FoodReward <= 0 {
		errs = append(errs, fmt.Errorf("food reward must be positive, got %d", r.FoodReward))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("snake: invalid rules: %w", err)
	}
	return nil
}

// TickInterval returns the tick in milliseconds for a given score.
func (r Rules) TickInterval(score int) int {
	steps := score / r.StepEveryScore
	return max(r.MinTickMs, r.BaseTickMs-steps*r.StepMs)
}

// GameState is one immutable snapshot of a run. Engine operations take a
// state and return a new one; they never write through Snake.
type GameState struct {
	Snake           []core.Point `json:"snake"`
	Food            core.Point   `json:"food"`
	Direction       Direction    `json:"direction"`
	QueuedDirection Direction    `json:"queuedDirection"`
	Score           int          `json:"score"`
	BestScore       int          `json:"bestScore"`
	TickMs          int          `json:"tickMs"`
	Status          Status       `json:"status"`
}

// Head returns the first snake segment.
func (g GameState) Head() core.Point {
	if len(g.Snake) == 0 {
		return core.Point{}
	}
	return g.Snake[0]
}

// Length returns the number of segments.
func (g GameState) Length() int {
	return len(g.Snake)
}

// Running reports whether the scheduler should be ticking this state.
func (g GameState) Running() bool {
	return g.Status == StatusRunning
}

// Clone returns a copy with its own snake slice.
func (g GameState) Clone() GameState {
	out := g
	out.Snake = append([]core.Point(nil), g.Snake...)
	return out
}

// Outcome summarizes what a single operation did.
type Outcome struct {
	Changed          bool `json:"changed"`
	GameOver         bool `json:"gameOver"`
	AteFood          bool `json:"ateFood"`
	BestScoreChanged bool `json:"bestScoreChanged"`
	TickChanged      bool `json:"tickChanged"`
}

// RulesFromConfig builds rules from a loaded configuration.
func RulesFromConfig(cfg config.SnakeConfig) Rules {
	return Rules{
		Cells:          cfg.Board.Cells(),
		BaseTickMs:     cfg.Speed.BaseTickMs,
		MinTickMs:      cfg.Speed.MinTickMs,
		StepMs:         cfg.Speed.StepMs,
		StepEveryScore: cfg.Speed.StepEveryScore,
		FoodReward:     cfg.Scoring.FoodReward,
	}
}
