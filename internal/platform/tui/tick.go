// Package tui provides the Bubble Tea front end for snake.
// It handles the terminal UI loop, input mapping, tick scheduling and the
// SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks for one engine step. Gen names the tick chain that scheduled
// it; ticks from a superseded chain are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// MusicTickMsg asks for the next background music note.
type MusicTickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd schedules a game tick after tickMs milliseconds.
func tickCmd(gen, tickMs int) tea.Cmd {
	interval := time.Duration(tickMs) * time.Millisecond
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// musicTickCmd schedules the next music step.
func musicTickCmd(gen int, step time.Duration) tea.Cmd {
	return tea.Tick(step, func(t time.Time) tea.Msg {
		return MusicTickMsg{Gen: gen, Time: t}
	})
}
