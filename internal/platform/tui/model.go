package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// RunRecorder stores finished runs for the scoreboard.
type RunRecorder interface {
	RecordRun(score, length int) error
}

// GameOptions configures a GameModel.
type GameOptions struct {
	Session       *snake.Session
	Recorder      RunRecorder  // nil disables score history
	Audio         audio.Player // nil is silent
	AudioEnabled  bool         // whether Audio reaches a real device
	MusicStep     time.Duration
	Logger        *log.Logger
	Config        core.RuntimeConfig
	Renderer      *lipgloss.Renderer // nil uses the local terminal
	AllowBack     bool               // esc returns to a menu instead of doing nothing
	ScreenshotDir string             // empty means ~/.snake/screenshots
}

// GameModel is the Bubble Tea model for one game of snake. The engine state
// lives in the Session; the model owns scheduling: a tick chain that runs
// only while the game is running, and a music chain while music is on.
type GameModel struct {
	session   *snake.Session
	recorder  RunRecorder
	player    audio.Player
	audioOK   bool
	musicStep time.Duration
	sequencer *audio.Sequencer
	logger    *log.Logger
	renderer  *lipgloss.Renderer

	screen    *core.Screen
	keys      *KeyMapper
	help      help.Model
	config    core.RuntimeConfig
	theme     snake.Theme
	showHelp  bool
	allowBack bool
	shotDir   string

	tickGen    int  // generation of the live tick chain
	musicGen   int  // generation of the live music chain
	musicLive  bool // a music chain is scheduled
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new game model.
func NewGameModel(opts GameOptions) GameModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Audio
	if player == nil {
		player = audio.Nop{}
	}
	step := opts.MusicStep
	if step <= 0 {
		step = audio.DefaultMusicStep
	}

	cfg := opts.Config
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	cfg.Music = cfg.Music && opts.AudioEnabled

	m := GameModel{
		session:   opts.Session,
		recorder:  opts.Recorder,
		player:    player,
		audioOK:   opts.AudioEnabled,
		musicStep: step,
		sequencer: audio.NewSequencer(audio.MusicPattern),
		logger:    logger,
		renderer:  opts.Renderer,
		keys:      NewKeyMapper(),
		help:      help.New(),
		config:    cfg,
		theme:     snake.ThemeByName(cfg.Theme),
		allowBack: opts.AllowBack,
		shotDir:   opts.ScreenshotDir,
	}
	m.screen = core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	m.layout(cfg.ScreenW, cfg.ScreenH)
	return m
}

// Init does nothing until the player starts the game.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.layout(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case MusicTickMsg:
		return m.handleMusicTick(msg)
	}

	return m, nil
}

// layout sizes the screen buffer, keeping a line for key help when it fits.
func (m *GameModel) layout(width, height int) {
	_, minH := snake.MinScreenSize(m.session.Rules().Cells)
	m.showHelp = height > minH
	if m.showHelp {
		height--
	}
	m.screen.Resize(width, height)
	m.help.Width = width
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.quitting = true
		m.stopMusic()
		return m, tea.Quit

	case core.ActionBack:
		if m.allowBack && !m.session.State().Running() {
			m.backToMenu = true
			m.stopMusic()
		}
		return m, nil

	case core.ActionTheme:
		m.theme = snake.NextTheme(m.theme.Name)
		m.config.Theme = m.theme.Name
		return m, nil

	case core.ActionMusic:
		if !m.audioOK {
			return m, nil
		}
		m.config.Music = !m.config.Music
		return m, m.syncMusic(m.session.State())
	}

	prev := m.session.State()
	next, _ := m.session.Apply(action)
	return m, tea.Batch(m.schedule(prev, next, false), m.syncMusic(next))
}

// handleTick advances the game if the tick belongs to the live chain.
func (m GameModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.tickGen {
		return m, nil
	}

	prev := m.session.State()
	next, out := m.session.Tick()

	switch {
	case out.GameOver:
		m.play(audio.GameOverFX()...)
		m.recordRun(next)
		m.logger.Info("game over", "player", m.config.Player, "score", next.Score, "best", next.BestScore)
	case out.AteFood:
		m.play(audio.EatFX()...)
	}

	return m, tea.Batch(m.schedule(prev, next, true), m.syncMusic(next))
}

// handleMusicTick plays the next note while the music chain is live.
func (m GameModel) handleMusicTick(msg MusicTickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.musicGen || !m.musicLive {
		return m, nil
	}
	if tone, ok := m.sequencer.Next(); ok {
		m.player.Play(tone)
	}
	return m, musicTickCmd(m.musicGen, m.musicStep)
}

// schedule keeps exactly one tick chain alive while the game runs. A new
// chain (with a new generation) starts when the game starts running or the
// interval changes; leaving the running state retires the chain.
func (m *GameModel) schedule(prev, next snake.GameState, fromTick bool) tea.Cmd {
	switch {
	case !next.Running():
		if prev.Running() {
			m.tickGen++
		}
		return nil
	case !prev.Running() || next.TickMs != prev.TickMs:
		m.tickGen++
		return tickCmd(m.tickGen, next.TickMs)
	case fromTick:
		return tickCmd(m.tickGen, next.TickMs)
	default:
		return nil
	}
}

// syncMusic starts or stops the music chain to match the music setting and
// the game status.
func (m *GameModel) syncMusic(state snake.GameState) tea.Cmd {
	want := m.config.Music && state.Running()
	switch {
	case want && !m.musicLive:
		m.musicGen++
		m.musicLive = true
		return musicTickCmd(m.musicGen, m.musicStep)
	case !want && m.musicLive:
		m.stopMusic()
	}
	return nil
}

func (m *GameModel) stopMusic() {
	if m.musicLive {
		m.musicGen++
		m.musicLive = false
	}
}

// play emits sound effects when sound is on.
func (m *GameModel) play(tones ...audio.Tone) {
	if m.config.Music {
		m.player.Play(tones...)
	}
}

// recordRun saves a finished run. Failures are logged; the game continues.
func (m *GameModel) recordRun(state snake.GameState) {
	if m.recorder == nil || state.Score <= 0 {
		return
	}
	if err := m.recorder.RecordRun(state.Score, state.Length()); err != nil {
		m.logger.Warn("record run", "score", state.Score, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.draw()

	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("screenshot", "error", err)
			return
		}
		dir = filepath.Join(home, ".snake", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("snake_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m GameModel) draw() {
	snap := snake.NewSnapshot(m.session.State(), m.session.Rules())
	snake.Render(m.screen, snap, snake.RenderOptions{Theme: m.theme, Music: m.config.Music})
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	out := RenderScreen(m.screen, m.renderer)
	if m.showHelp {
		out += "\n" + m.help.View(m.keys.Keys())
	}
	return out
}

// State returns the latest game state.
func (m GameModel) State() snake.GameState {
	return m.session.State()
}

// Config returns the runtime config, including theme and music changes.
func (m GameModel) Config() core.RuntimeConfig {
	return m.config
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// GameResult is what a standalone game run hands back to the caller.
type GameResult struct {
	Config     core.RuntimeConfig
	BackToMenu bool
}

// RunGame starts the Bubble Tea program for one game and blocks until it ends.
func RunGame(opts GameOptions) (GameResult, error) {
	model := NewGameModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return GameResult{Config: opts.Config}, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return GameResult{Config: opts.Config}, nil
	}
	return GameResult{Config: m.Config(), BackToMenu: m.BackToMenu()}, nil
}

// NewPlayerSession builds a snake session whose best score is stored under
// player in store. A nil store keeps everything in memory; the returned
// recorder is then nil too.
func NewPlayerSession(store *storage.Store, rules snake.Rules, seed int64, player string, logger *log.Logger) (*snake.Session, RunRecorder) {
	engine := snake.NewEngine(rules, seed)
	if store == nil {
		return snake.NewSession(engine, nil, logger), nil
	}
	ps := store.ForPlayer(player)
	return snake.NewSession(engine, ps, logger), ps
}
