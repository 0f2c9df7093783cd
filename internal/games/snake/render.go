package snake

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	cellWidth = 2 // terminal columns per board cell
	hudHeight = 2
)

// RenderOptions holds presentation settings that are not part of the game.
type RenderOptions struct {
	Theme Theme
	Music bool
}

// MinScreenSize returns the smallest terminal that fits a board of cells.
func MinScreenSize(cells int) (w, h int) {
	return cells*cellWidth + 2, cells + 2 + hudHeight
}

// Render draws the board, HUD and status overlay for snap onto dst.
func Render(dst *core.Screen, snap Snapshot, opts RenderOptions) {
	dst.Clear()
	theme := opts.Theme
	if theme.Name == "" {
		theme = ThemeByName(DefaultTheme)
	}

	renderHUD(dst, snap, theme, opts.Music)

	minW, minH := MinScreenSize(snap.Cells)
	if dst.Width() < minW || dst.Height() < minH {
		renderOverlay(dst, core.NewRect(0, 0, dst.Width(), dst.Height()), theme,
			"Window too small", fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	board := core.NewRect((dst.Width()-minW)/2, hudHeight, minW, snap.Cells+2)
	dst.DrawBox(board, theme.Border)
	renderGrid(dst, board, snap.Cells, theme)
	renderFood(dst, board, snap, theme)
	renderSnake(dst, board, snap, theme)

	switch snap.Status {
	case StatusIdle:
		renderOverlay(dst, board, theme, "Press Start", "Space, Enter or an arrow key")
	case StatusPaused:
		renderOverlay(dst, board, theme, "Paused", "Press Space or P to resume")
	case StatusGameOver:
		renderOverlay(dst, board, theme,
			fmt.Sprintf("Game Over - you scored %d", snap.Score),
			"Space to play again, R to reset")
	}
}

func renderHUD(dst *core.Screen, snap Snapshot, theme Theme, music bool) {
	dst.DrawTextColor(1, 0, "SNAKE", theme.Accent)

	musicState := "off"
	if music {
		musicState = "on"
	}
	hud := fmt.Sprintf("Score: %d  Best: %d  Speed: %sx  Length: %d  Theme: %s  Music: %s",
		snap.Score, snap.BestScore, snap.SpeedFactor, snap.Length, theme.Label, musicState)
	dst.DrawTextColor(8, 0, hud, theme.Text)

	for x := range dst.Width() {
		dst.SetWithColor(x, 1, '─', theme.Grid)
	}
}

func renderGrid(dst *core.Screen, board core.Rect, cells int, theme Theme) {
	for y := range cells {
		for x := range cells {
			c := theme.Grid
			if x%4 == 0 || y%4 == 0 {
				c = theme.GridMajor
			}
			sx, sy := cellOrigin(board, core.Point{X: x, Y: y})
			dst.SetWithColor(sx, sy, '·', c)
		}
	}
}

func renderFood(dst *core.Screen, board core.Rect, snap Snapshot, theme Theme) {
	if !snap.HasFood {
		return
	}
	sx, sy := cellOrigin(board, snap.Food)
	dst.SetWithColor(sx, sy, '(', theme.Food)
	dst.SetWithColor(sx+1, sy, ')', theme.Food)
}

func renderSnake(dst *core.Screen, board core.Rect, snap Snapshot, theme Theme) {
	// Draw tail first so the head wins if segments ever overlap on screen.
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		seg := snap.Snake[i]
		if !seg.InBounds(snap.Cells) {
			continue
		}
		glyph, c := '▓', theme.Body
		if i == 0 {
			glyph, c = '█', theme.Head
		}
		if snap.Status == StatusGameOver {
			c = theme.Flash
		}
		sx, sy := cellOrigin(board, seg)
		dst.SetWithColor(sx, sy, glyph, c)
		dst.SetWithColor(sx+1, sy, glyph, c)
	}
}

func cellOrigin(board core.Rect, p core.Point) (int, int) {
	return board.X + 1 + p.X*cellWidth, board.Y + 1 + p.Y
}

// renderOverlay draws a two-line message box centered in area.
func renderOverlay(dst *core.Screen, area core.Rect, theme Theme, line1, line2 string) {
	textW := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2))
	box := core.NewRect(area.X+(area.W-textW-4)/2, area.Y+(area.H-5)/2, textW+4, 5)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, theme.Accent)
	drawCentered(dst, box, box.Y+1, line1, theme.Text)
	drawCentered(dst, box, box.Y+3, line2, theme.GridMajor)
}

func drawCentered(dst *core.Screen, box core.Rect, y int, text string, c core.Color) {
	x := box.X + (box.W-utf8.RuneCountInString(text))/2
	dst.DrawTextColor(x, y, text, c)
}
