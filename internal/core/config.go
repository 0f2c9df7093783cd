package core

// RuntimeConfig contains configuration passed to a game session at start.
// Front ends fill it from flags and the terminal they run in.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    int64  // RNG seed for food placement (0 = derive from time)
	Player  string // Name the best score is stored under
	Theme   string // Color theme name
	Music   bool   // Whether background music starts enabled
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0,
		Player:  "local",
		Theme:   "retro",
	}
}
