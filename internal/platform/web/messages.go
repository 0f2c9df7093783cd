package web

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Message types sent to clients.
const (
	TypeConfig = "config"
	TypeState  = "state"
)

// ClientMessage is one input from the browser.
type ClientMessage struct {
	Action string `json:"action"`
}

// GameConfig describes the board a client is about to play on.
type GameConfig struct {
	Session    string `json:"session"`
	Player     string `json:"player"`
	Cells      int    `json:"cells"`
	BaseTickMs int    `json:"baseTickMs"`
	MinTickMs  int    `json:"minTickMs"`
	FoodReward int    `json:"foodReward"`
}

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type    string          `json:"type"`
	Config  *GameConfig     `json:"config,omitempty"`
	State   *snake.Snapshot `json:"state,omitempty"`
	Outcome *snake.Outcome  `json:"outcome,omitempty"`
}

// clientAction maps a wire action to a game action. Front-end only actions
// (music, theme, back, quit) are not accepted over the wire.
func clientAction(name string) (core.Action, bool) {
	a := core.ParseAction(name)
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
		core.ActionStart, core.ActionPrimary, core.ActionPause, core.ActionToggle, core.ActionResume, core.ActionRestart:
		return a, true
	}
	return core.ActionNone, false
}
