package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/skyfall-arcade/skyfall/internal/config"
	"github.com/skyfall-arcade/skyfall/internal/core"
	"github.com/skyfall-arcade/skyfall/internal/leaderboard"
	"github.com/skyfall-arcade/skyfall/internal/platform/tui"
	"github.com/skyfall-arcade/skyfall/internal/registry"
	"github.com/skyfall-arcade/skyfall/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  A/D or arrows  - Move (double-tap to dash)
  Space          - Fire (hold to charge in charge mode)
  O              - Overcharge (when the meter is full)
  P              - Pause
  R              - Restart (after game over)
  B/Esc          - Back to menu
  Q/Ctrl+C       - Quit

Difficulty presets:
  easy   - More lives, slower items, fewer bombs
  normal - Defaults
  hard   - Fewer lives, faster items, more bombs

Examples:
  skyfall play classic
  skyfall play precision --difficulty hard
  skyfall play frenzy --config ./my-skyfall.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// terminalSize returns the current terminal dimensions, or 80x24 when stdout
// is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// loadGameConfig resolves the gameplay tuning from the config flag and
// applies the difficulty preset on top.
func loadGameConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))
	return cfg, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := args[0]

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'skyfall modes' to see available modes.")
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := terminalSize()
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(modeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	board := leaderboard.New(flagBoardURL)

	runErr := tui.Run(game, store, board, gameCfg, rt, flagPlayer)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
