package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Engine applies the rules to game states. It is a pure reducer over
// GameState except for the random source used to place food, so an Engine
// must not be shared between goroutines without external locking (Session
// provides that).
type Engine struct {
	rules Rules
	rng   *rand.Rand
}

// NewEngine creates an engine. A zero seed derives one from the clock.
func NewEngine(rules Rules, seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewEngineWithRand(rules, rand.New(rand.NewSource(seed)))
}

// NewEngineWithRand creates an engine around an existing random source.
func NewEngineWithRand(rules Rules, rng *rand.Rand) *Engine {
	return &Engine{rules: rules, rng: rng}
}

// Rules returns the rules the engine plays by.
func (e *Engine) Rules() Rules {
	return e.rules
}

// NewGame returns a fresh idle state carrying the given best score.
func (e *Engine) NewGame(best int) GameState {
	mid := e.rules.Cells / 2
	body := []core.Point{
		{X: mid, Y: mid},
		{X: mid - 1, Y: mid},
		{X: mid - 2, Y: mid},
	}
	food, _ := SpawnFood(body, e.rules.Cells, e.rng)

	return GameState{
		Snake:           body,
		Food:            food,
		Direction:       DirRight,
		QueuedDirection: DirRight,
		Score:           0,
		BestScore:       max(best, 0),
		TickMs:          e.rules.BaseTickMs,
		Status:          StatusIdle,
	}
}

// HandleDirection queues a direction change. Requests that reverse either the
// committed or the already queued direction are ignored, as is any input
// after game over. A valid direction on an idle board starts the run.
func (e *Engine) HandleDirection(prev GameState, dir Direction) GameState {
	if !dir.Valid() || prev.Status == StatusGameOver {
		return prev
	}
	if dir == prev.Direction.Opposite() || dir == prev.QueuedDirection.Opposite() {
		return prev
	}

	next := prev
	next.QueuedDirection = dir
	if next.Status == StatusIdle {
		next.Status = StatusRunning
	}
	return next
}

// Start begins play. From game over it resets the board first; from idle or
// paused it keeps the existing board.
func (e *Engine) Start(prev GameState) GameState {
	switch prev.Status {
	case StatusRunning:
		return prev
	case StatusGameOver:
		next := e.NewGame(prev.BestScore)
		next.Status = StatusRunning
		return next
	default:
		next := prev
		next.Status = StatusRunning
		return next
	}
}

// Pause halts a running game.
func (e *Engine) Pause(prev GameState) GameState {
	if prev.Status != StatusRunning {
		return prev
	}
	next := prev
	next.Status = StatusPaused
	return next
}

// Resume continues a paused game.
func (e *Engine) Resume(prev GameState) GameState {
	if prev.Status != StatusPaused {
		return prev
	}
	next := prev
	next.Status = StatusRunning
	return next
}

// TogglePause flips between running and paused.
func (e *Engine) TogglePause(prev GameState) GameState {
	switch prev.Status {
	case StatusRunning:
		return e.Pause(prev)
	case StatusPaused:
		return e.Resume(prev)
	default:
		return prev
	}
}

// Restart discards the current run and returns a fresh idle board.
func (e *Engine) Restart(prev GameState) GameState {
	return e.NewGame(prev.BestScore)
}

// Step advances a running game by one tick.
func (e *Engine) Step(prev GameState) (GameState, Outcome) {
	if prev.Status != StatusRunning || len(prev.Snake) == 0 {
		return prev, Outcome{}
	}

	dir := prev.QueuedDirection
	dx, dy := dir.Vector()
	head := prev.Snake[0].Add(dx, dy)
	grows := head == prev.Food

	if !head.InBounds(e.rules.Cells) || hitsBody(prev.Snake, head, grows) {
		next := prev
		next.Status = StatusGameOver
		next.BestScore = max(prev.BestScore, prev.Score)
		return next, Outcome{
			Changed:          true,
			GameOver:         true,
			BestScoreChanged: next.BestScore != prev.BestScore,
		}
	}

	body := make([]core.Point, 0, len(prev.Snake)+1)
	body = append(body, head)
	body = append(body, prev.Snake...)

	next := prev
	next.Direction = dir
	next.QueuedDirection = dir

	if grows {
		next.Score = prev.Score + e.rules.FoodReward
		next.Food, _ = SpawnFood(body, e.rules.Cells, e.rng)
		next.TickMs = e.rules.TickInterval(next.Score)
	} else {
		body = body[:len(body)-1]
	}
	next.Snake = body
	next.BestScore = max(prev.BestScore, next.Score)

	return next, Outcome{
		Changed:          true,
		AteFood:          grows,
		BestScoreChanged: next.BestScore != prev.BestScore,
		TickChanged:      next.TickMs != prev.TickMs,
	}
}

// hitsBody checks the new head against the body. When the snake is not
// growing the tail moves out of the way this tick, so it is excluded.
func hitsBody(body []core.Point, head core.Point, grows bool) bool {
	check := len(body)
	if !grows {
		check--
	}
	return Occupies(body[:check], head)
}
