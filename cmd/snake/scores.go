package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit      int
	flagAllPlayers bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top runs of a player (default: --player) or of everyone,
followed by the best score and run statistics.

Examples:
  snake scores
  snake scores --player alice
  snake scores --all-players --limit 20`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagAllPlayers, "all-players", false, "Show runs of every player")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening scores database: %v", err)
	}
	defer store.Close()

	player := flagPlayer
	title := player
	if flagAllPlayers {
		player = ""
		title = "all players"
	}

	scores, err := store.TopScores(player, flagLimit)
	if err != nil {
		fatalf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %s\n", "Rank", "Player", "Score", "Length", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %s\n", "----", "------", "-----", "------", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-8d  %-6d  %s\n", i+1, entry.Player, entry.Score, entry.Length, dateStr)
	}

	fmt.Println()
	if !flagAllPlayers {
		if best, err := store.BestScore(player); err == nil {
			fmt.Printf("Best: %d\n", best)
		}
	} else if leaders, err := store.Leaderboard(1); err == nil && len(leaders) > 0 {
		fmt.Printf("Best: %d (%s)\n", leaders[0].Best, leaders[0].Player)
	}

	if stats, err := store.GetStats(player); err == nil {
		fmt.Printf("Games: %d  Average: %.1f  Total: %d  Last played: %s\n",
			stats.GamesCount, stats.AvgScore, stats.TotalScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
