package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyfall-arcade/skyfall/internal/registry"
	"github.com/skyfall-arcade/skyfall/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show local high scores for a mode",
	Long: `Display the top 10 local high scores for the specified mode.

Examples:
  skyfall scores classic
  skyfall scores precision`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	modeID := args[0]

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'skyfall modes' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(modeID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'skyfall play %s' to set the first high score!\n", modeID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %-6s  %-6s  %s\n", "Rank", "Player", "Score", "Level", "Combo", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %-6s  %-6s  %s\n", "----", "------", "-----", "-----", "-----", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-12s  %-10d  %-6d  %-6d  %s\n",
			i+1, entry.Player, entry.Score, entry.Level, entry.MaxCombo,
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if highScore, hsErr := store.HighScore(modeID); hsErr == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}
