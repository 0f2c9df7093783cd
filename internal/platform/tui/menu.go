package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// MenuItem identifies an entry of the main menu.
type MenuItem int

const (
	MenuPlay MenuItem = iota
	MenuScores
	MenuTheme
	MenuMusic
	MenuQuit
)

var menuItems = []MenuItem{MenuPlay, MenuScores, MenuTheme, MenuMusic, MenuQuit}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor         int
	width          int
	height         int
	best           int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	play           bool
	openScoreboard bool
}

// NewMenuModel creates a new menu model. The player's best score is read
// from store when one is given.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	best := 0
	if store != nil {
		if b, err := store.BestScore(cfg.Player); err == nil {
			best = b
		}
	}
	cfg.Theme = snake.ThemeByName(cfg.Theme).Name

	return MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		best:      best,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionLeft, MenuActionRight:
		m.adjust(action == MenuActionLeft)

	case MenuActionSelect:
		switch menuItems[m.cursor] {
		case MenuPlay:
			m.play = true
			return m, tea.Quit
		case MenuScores:
			m.openScoreboard = true
			return m, tea.Quit
		case MenuQuit:
			m.quitting = true
			return m, tea.Quit
		default:
			m.adjust(false)
		}
	}

	return m, nil
}

// adjust changes the setting under the cursor.
func (m *MenuModel) adjust(back bool) {
	switch menuItems[m.cursor] {
	case MenuTheme:
		m.config.Theme = cycleTheme(m.config.Theme, back)
	case MenuMusic:
		m.config.Music = !m.config.Music
	}
}

func cycleTheme(name string, back bool) string {
	if !back {
		return snake.NextTheme(name).Name
	}
	all := snake.Themes()
	for i, t := range all {
		if t.Name == name {
			return all[(i+len(all)-1)%len(all)].Name
		}
	}
	return snake.DefaultTheme
}

func (m MenuModel) label(item MenuItem) string {
	switch item {
	case MenuPlay:
		return "Play"
	case MenuScores:
		return "High Scores"
	case MenuTheme:
		return "Theme: < " + snake.ThemeByName(m.config.Theme).Label + " >"
	case MenuMusic:
		if m.config.Music {
			return "Music: on"
		}
		return "Music: off"
	case MenuQuit:
		return "Quit"
	}
	return ""
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  S N A K E  ", m.width))
	b.WriteString("\n\n")

	subtitle := fmt.Sprintf("Player: %s  Best: %d", m.config.Player, m.best)
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+m.label(item), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsPlay returns true if user picked Play.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize
// or the settings entries).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Config          core.RuntimeConfig
	Play            bool
	WantsScoreboard bool
	Quit            bool
}

// Result summarizes the menu's final state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.config}
	switch {
	case m.play:
		result.Play = true
	case m.openScoreboard:
		result.WantsScoreboard = true
	default:
		result.Quit = true
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
