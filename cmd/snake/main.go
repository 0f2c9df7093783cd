// snake is the classic snake game for the terminal, over SSH and over
// WebSocket.
//
// Usage:
//
//	snake play               - Play a game right away
//	snake menu               - Start menu with settings and high scores
//	snake scores             - Show high scores
//	snake serve              - Start SSH server for remote play
//	snake web                - Start WebSocket server for browser clients
//	snake themes             - List color themes
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--config <path> - Game config YAML (default search: ~/.snake/configs, ./configs)
//	--db <path>     - Set database path (default: ~/.snake/scores.db)
//	--seed <value>  - Set RNG seed for reproducible food placement
//	--player <name> - Name the best score is stored under
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagTheme    string
	flagMusic    bool
	flagPlayer   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is the classic grid game: steer the snake, eat food, grow,
and avoid the walls and your own tail. The game speeds up as you score.

Available commands:
  play     - Play a game directly
  menu     - Interactive menu with settings and high scores
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Start WebSocket server for browser clients
  themes   - List color themes
  config   - Print the effective configuration

Examples:
  snake play
  snake play --theme matrix --music
  snake menu
  snake serve --ssh :2222
  snake web --addr :8080
  snake scores --all-players`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Color theme (see 'snake themes')")
	rootCmd.PersistentFlags().BoolVar(&flagMusic, "music", false, "Start with music and sound on")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Name the best score is stored under")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.snake/snake.log", "Log file for terminal modes")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(configCmd)
}

func defaultPlayer() string {
	if u := strings.TrimSpace(os.Getenv("USER")); u != "" {
		return u
	}
	return core.DefaultConfig().Player
}

// settings is everything a command needs after flags and YAML are merged.
type settings struct {
	game    config.SnakeConfig
	rules   snake.Rules
	runtime core.RuntimeConfig
	logger  *log.Logger
	close   func()
}

// loadSettings loads the YAML config, applies flag overrides and sets up
// logging. Terminal modes log to the log file, servers to stderr.
func loadSettings(cmd *cobra.Command, terminal bool) (settings, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return settings{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Display.Theme = flagTheme
	}
	if flags.Changed("music") {
		cfg.Audio.Music = flagMusic
	}

	rules := snake.RulesFromConfig(cfg)
	if err := rules.Validate(); err != nil {
		return settings{}, err
	}

	logger, closeLog, err := newLogger(terminal)
	if err != nil {
		return settings{}, err
	}

	rt := core.DefaultConfig()
	rt.ScreenW, rt.ScreenH = terminalSize()
	rt.Seed = flagSeed
	rt.Player = flagPlayer
	rt.Theme = snake.ThemeByName(cfg.Display.Theme).Name
	rt.Music = cfg.Audio.Music

	return settings{
		game:    cfg,
		rules:   rules,
		runtime: rt,
		logger:  logger,
		close:   closeLog,
	}, nil
}

// newLogger builds the charm logger. When toFile is set and the log file
// cannot be opened, output is discarded so the alt screen stays clean.
func newLogger(toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if toFile {
		w = io.Discard
		if path, err := expandHome(flagLogFile); err == nil && path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
				if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
					w = f
					closeFn = func() { f.Close() }
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStore opens the scores database. Failures are reported and the game
// continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or the default 80x24.
func terminalSize() (int, int) {
	def := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return def.ScreenW, def.ScreenH
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
