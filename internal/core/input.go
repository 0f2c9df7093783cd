package core

import "strings"

// Action represents a semantic player intent, abstracted from physical key
// presses or network messages. Front ends translate their input into actions
// and hand them to the game session one at a time.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionStart          // Enter - start a new run or resume
	ActionPrimary        // Space - start when idle/over, otherwise toggle pause
	ActionPause          // pause only (network clients)
	ActionToggle         // P - toggle pause
	ActionResume         // resume only (network clients)
	ActionRestart        // R - reset to a fresh idle board
	ActionMusic          // M - toggle background music
	ActionTheme          // T - cycle color theme
	ActionBack           // B, Escape - back to menu
	ActionQuit           // Q, Ctrl+C
)

var actionNames = map[Action]string{
	ActionNone:    "none",
	ActionUp:      "up",
	ActionDown:    "down",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionStart:   "start",
	ActionPrimary: "primary",
	ActionPause:   "pause",
	ActionToggle:  "toggle",
	ActionResume:  "resume",
	ActionRestart: "restart",
	ActionMusic:   "music",
	ActionTheme:   "theme",
	ActionBack:    "back",
	ActionQuit:    "quit",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction converts a wire name into an action. Unknown names yield
// ActionNone.
func ParseAction(s string) Action {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == s {
			return a
		}
	}
	return ActionNone
}

// IsDirection reports whether the action steers the snake.
func (a Action) IsDirection() bool {
	return a >= ActionUp && a <= ActionRight
}
