package snake

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// BestScoreStore persists the best score across runs.
type BestScoreStore interface {
	ReadBestScore() (int, error)
	PersistBestScore(score int) error
}

// Session owns the latest state of one run and serializes every operation
// on it, so input and ticks may arrive from different goroutines.
type Session struct {
	mu     sync.Mutex
	engine *Engine
	store  BestScoreStore
	logger *log.Logger
	state  GameState
}

// NewSession loads the best score from store (nil means in-memory only) and
// returns a session holding a fresh idle board.
func NewSession(engine *Engine, store BestScoreStore, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	best := 0
	if store != nil {
		stored, err := store.ReadBestScore()
		switch {
		case err != nil:
			logger.Warn("read best score", "error", err)
		case stored > 0:
			best = stored
		}
	}

	return &Session{
		engine: engine,
		store:  store,
		logger: logger,
		state:  engine.NewGame(best),
	}
}

// Rules returns the rules of the underlying engine.
func (s *Session) Rules() Rules {
	return s.engine.Rules()
}

// State returns a copy of the latest state.
func (s *Session) State() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Tick advances the game by one step.
func (s *Session) Tick() (GameState, Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, out := s.engine.Step(s.state)
	s.commit(next, out)
	return next, out
}

// Steer queues a direction change.
func (s *Session) Steer(dir Direction) (GameState, Outcome) {
	return s.apply(func(g GameState) GameState {
		return s.engine.HandleDirection(g, dir)
	})
}

// Apply performs a player action. Actions that do not affect the game
// (music, theme, navigation) are no-ops here.
func (s *Session) Apply(a core.Action) (GameState, Outcome) {
	switch a {
	case core.ActionUp:
		return s.Steer(DirUp)
	case core.ActionDown:
		return s.Steer(DirDown)
	case core.ActionLeft:
		return s.Steer(DirLeft)
	case core.ActionRight:
		return s.Steer(DirRight)
	case core.ActionStart:
		return s.apply(s.engine.Start)
	case core.ActionPrimary:
		return s.apply(func(g GameState) GameState {
			if g.Status == StatusIdle || g.Status == StatusGameOver {
				return s.engine.Start(g)
			}
			return s.engine.TogglePause(g)
		})
	case core.ActionPause:
		return s.apply(s.engine.Pause)
	case core.ActionToggle:
		return s.apply(s.engine.TogglePause)
	case core.ActionResume:
		return s.apply(s.engine.Resume)
	case core.ActionRestart:
		return s.apply(s.engine.Restart)
	default:
		return s.State(), Outcome{}
	}
}

func (s *Session) apply(op func(GameState) GameState) (GameState, Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := op(prev)
	out := Outcome{
		Changed:          changed(prev, next),
		BestScoreChanged: next.BestScore != prev.BestScore,
		TickChanged:      next.TickMs != prev.TickMs,
	}
	s.commit(next, out)
	return next, out
}

// commit stores next and persists the best score when it moved.
// Must be called with mu held.
func (s *Session) commit(next GameState, out Outcome) {
	s.state = next
	if !out.BestScoreChanged || s.store == nil {
		return
	}
	if err := s.store.PersistBestScore(next.BestScore); err != nil {
		s.logger.Warn("persist best score", "score", next.BestScore, "error", err)
	}
}

func changed(prev, next GameState) bool {
	if prev.Status != next.Status ||
		prev.QueuedDirection != next.QueuedDirection ||
		prev.Direction != next.Direction ||
		prev.Score != next.Score ||
		prev.Food != next.Food ||
		len(prev.Snake) != len(next.Snake) {
		return true
	}
	for i := range prev.Snake {
		if prev.Snake[i] != next.Snake[i] {
			return true
		}
	}
	return false
}
