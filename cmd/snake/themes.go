package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List all color themes",
	Long:  `Shows the color themes that can be passed to --theme or picked in the menu.`,
	Args:  cobra.NoArgs,
	Run:   runThemes,
}

func runThemes(_ *cobra.Command, _ []string) {
	themes := snake.Themes()

	maxNameLen := 4 // "Name" header
	for _, t := range themes {
		maxNameLen = max(maxNameLen, len(t.Name))
	}

	fmt.Println("Available themes:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Label")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----")
	for _, t := range themes {
		marker := ""
		if t.Name == snake.DefaultTheme {
			marker = " (default)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxNameLen, t.Name, t.Label, marker)
	}

	fmt.Println()
	fmt.Println("Run 'snake play --theme <name>' to use a theme.")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration snake would use, as YAML, after the search
order (--config, ~/.snake/configs/snake.yaml, ./configs/snake.yaml, built-in
defaults) and flag overrides. Redirect it to a file to start customizing.

Examples:
  snake config > ~/.snake/configs/snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	if cmd.Flags().Changed("theme") {
		cfg.Display.Theme = flagTheme
	}
	if cmd.Flags().Changed("music") {
		cfg.Audio.Music = flagMusic
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	os.Stdout.Write(data)
}
