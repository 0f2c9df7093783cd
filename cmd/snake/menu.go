package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start snake with the main menu",
	Long: `Start snake in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select, Left/Right to change
the theme and music settings. After a game you return to the menu with
Esc or B (while the game is not running).

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Change setting
  Enter/Space  - Select
  Q            - Quit

Examples:
  snake menu
  snake menu --player alice
  snake menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	s, err := loadSettings(cmd, true)
	if err != nil {
		fatalf("%v", err)
	}
	defer s.close()

	store := openStore(s.logger)
	if store != nil {
		defer store.Close()
	}

	// One audio device for the whole process.
	player, audioOK := audio.Open(s.game.Audio.SampleRate, s.game.Audio.Volume, s.logger)
	defer player.Close()

	cfg := s.runtime
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.Player, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		session, recorder := tui.NewPlayerSession(store, s.rules, cfg.Seed, cfg.Player, s.logger)
		result, err := tui.RunGame(tui.GameOptions{
			Session:      session,
			Recorder:     recorder,
			Audio:        player,
			AudioEnabled: audioOK,
			MusicStep:    time.Duration(s.game.Audio.MusicStepMs) * time.Millisecond,
			Logger:       s.logger,
			Config:       cfg,
			AllowBack:    true,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
		cfg = result.Config
		if !result.BackToMenu {
			return
		}
	}
}
