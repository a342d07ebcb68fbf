// skyfall is a terminal catch-and-dodge arcade game.
//
// Usage:
//
//	skyfall modes             - List play modes
//	skyfall play <mode>       - Play a mode
//	skyfall menu              - Interactive mode picker
//	skyfall serve             - Start SSH server for remote play
//	skyfall scores <mode>     - Show local high scores
//	skyfall stats             - Show per-mode run statistics
//	skyfall board <mode>      - Show the remote leaderboard
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.skyfall/scores.db)
//	--player <name>      - Player name for scores (default: $USER)
//	--leaderboard <url>  - Remote leaderboard base URL (empty = disabled)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import to register the play modes.
	_ "github.com/skyfall-arcade/skyfall/internal/sim"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagPlayer     string
	flagBoardURL   string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyfall",
	Short: "Skyfall - catch what falls, dodge what explodes",
	Long: `Skyfall is a terminal arcade game. Move the catcher, collect falling
items, shoot bombs out of the sky, and chain combos for score.

Available commands:
  modes    - Show all play modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View local high scores
  stats    - View per-mode run statistics
  board    - View the remote leaderboard

Examples:
  skyfall modes
  skyfall play classic
  skyfall play precision --difficulty hard
  skyfall menu
  skyfall serve --ssh :2222
  skyfall scores classic`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name recorded with scores")
	rootCmd.PersistentFlags().StringVar(&flagBoardURL, "leaderboard", "", "Remote leaderboard base URL (empty = disabled)")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(boardCmd)
}

func defaultPlayer() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}
