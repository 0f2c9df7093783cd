package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Theme assigns terminal colors to the parts of the board.
type Theme struct {
	Name  string
	Label string

	Head      core.Color
	Body      core.Color
	Flash     core.Color // snake color after game over
	Food      core.Color
	Grid      core.Color
	GridMajor core.Color
	Border    core.Color
	Text      core.Color
	Accent    core.Color
	Danger    core.Color
}

// DefaultTheme is used when a name is unknown.
const DefaultTheme = "retro"

var themes = []Theme{
	{
		Name:      "retro",
		Label:     "Retro",
		Head:      core.ColorBrightGreen,
		Body:      core.ColorGreen,
		Flash:     core.ColorBrightRed,
		Food:      core.ColorRed,
		Grid:      core.ColorDarkGray,
		GridMajor: core.ColorGray,
		Border:    core.ColorGreen,
		Text:      core.ColorBrightWhite,
		Accent:    core.ColorLime,
		Danger:    core.ColorRed,
	},
	{
		Name:      "neon-blue",
		Label:     "Neon Blue",
		Head:      core.ColorBrightCyan,
		Body:      core.ColorCyan,
		Flash:     core.ColorPink,
		Food:      core.ColorBrightMagenta,
		Grid:      core.ColorDeepBlue,
		GridMajor: core.ColorBlue,
		Border:    core.ColorBrightBlue,
		Text:      core.ColorBrightWhite,
		Accent:    core.ColorBrightCyan,
		Danger:    core.ColorPink,
	},
	{
		Name:      "matrix",
		Label:     "Matrix",
		Head:      core.ColorLime,
		Body:      core.ColorGreen,
		Flash:     core.ColorBrightYellow,
		Food:      core.ColorBrightGreen,
		Grid:      core.ColorDarkGray,
		GridMajor: core.ColorGreen,
		Border:    core.ColorTeal,
		Text:      core.ColorBrightGreen,
		Accent:    core.ColorLime,
		Danger:    core.ColorYellow,
	},
}

// Themes returns every theme in menu order.
func Themes() []Theme {
	return append([]Theme(nil), themes...)
}

// ThemeByName looks a theme up, falling back to retro.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
