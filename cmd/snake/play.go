package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of snake right away.

Controls:
  Arrows/WASD  - Steer (also starts the game)
  Space        - Start, pause and resume
  Enter        - Start
  P            - Pause/resume
  R            - Reset the board
  T            - Next color theme
  M            - Music and sound on/off
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  snake play
  snake play --theme neon-blue
  snake play --music
  snake play --seed 42
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	s, err := loadSettings(cmd, true)
	if err != nil {
		fatalf("%v", err)
	}
	defer s.close()

	store := openStore(s.logger)
	if store != nil {
		defer store.Close()
	}

	player, audioOK := audio.Open(s.game.Audio.SampleRate, s.game.Audio.Volume, s.logger)
	defer player.Close()

	session, recorder := tui.NewPlayerSession(store, s.rules, s.runtime.Seed, s.runtime.Player, s.logger)
	s.logger.Info("game started", "player", s.runtime.Player, "cells", s.rules.Cells, "audio", audioOK)

	_, err = tui.RunGame(tui.GameOptions{
		Session:      session,
		Recorder:     recorder,
		Audio:        player,
		AudioEnabled: audioOK,
		MusicStep:    time.Duration(s.game.Audio.MusicStepMs) * time.Millisecond,
		Logger:       s.logger,
		Config:       s.runtime,
	})
	if err != nil {
		fatalf("running game: %v", err)
	}
}
