package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skyfall-arcade/skyfall/internal/leaderboard"
)

var flagBoardLimit int

var boardCmd = &cobra.Command{
	Use:   "board <mode>",
	Short: "Show the remote leaderboard for a mode",
	Long: `Fetch and display the remote leaderboard for the specified mode.
Requires --leaderboard to point at a score service.

Examples:
  skyfall board classic --leaderboard https://scores.example.com
  skyfall board frenzy --leaderboard https://scores.example.com --limit 25`,
	Args: cobra.ExactArgs(1),
	Run:  runBoard,
}

func init() {
	boardCmd.Flags().IntVar(&flagBoardLimit, "limit", 10, "Number of entries to fetch")
}

func runBoard(cmd *cobra.Command, args []string) {
	modeID := args[0]

	client := leaderboard.New(flagBoardURL)
	if !client.Enabled() {
		fmt.Fprintln(os.Stderr, "Error: no leaderboard configured; pass --leaderboard <url>")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries := client.FetchTop(ctx, modeID, flagBoardLimit)
	if len(entries) == 0 {
		fmt.Printf("No remote scores for %q (or the service is unreachable).\n", modeID)
		return
	}

	fmt.Printf("Leaderboard - %s\n", modeID)
	fmt.Println()
	fmt.Printf("  %-4s  %-12s  %-10s  %-6s  %s\n", "Rank", "Player", "Score", "Level", "Combo")
	fmt.Printf("  %-4s  %-12s  %-10s  %-6s  %s\n", "----", "------", "-----", "-----", "-----")

	for _, e := range entries {
		fmt.Printf("  %-4d  %-12s  %-10d  %-6d  %d\n", e.Rank, e.Player, e.Score, e.Level, e.Combo)
	}
}
