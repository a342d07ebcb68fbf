package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skyfall-arcade/skyfall/internal/core"
	"github.com/skyfall-arcade/skyfall/internal/leaderboard"
	"github.com/skyfall-arcade/skyfall/internal/platform/tui"
	"github.com/skyfall-arcade/skyfall/internal/registry"
	"github.com/skyfall-arcade/skyfall/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Skyfall with a mode picker menu",
	Long: `Start Skyfall in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode. After a run
ends, you return to the menu to play again. Tab opens the scoreboard.

Examples:
  skyfall menu
  skyfall menu --fps 30
  skyfall menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runMenu(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	board := leaderboard.New(flagBoardURL)

	width, height := terminalSize()
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

menuLoop:
	for {
		result, err := tui.RunMenu(store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		switch result.Choice {
		case tui.MenuChoiceQuit:
			break menuLoop

		case tui.MenuChoiceScoreboard:
			goBack, sbErr := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				break menuLoop
			}

		case tui.MenuChoicePlay:
			game, createErr := registry.Create(result.ModeID)
			if createErr != nil {
				fmt.Fprintf(os.Stderr, "Error creating mode: %v\n", createErr)
				continue
			}

			// A fresh seed per run unless pinned on the command line.
			runRT := rt
			if runRT.Seed == 0 {
				runRT.Seed = time.Now().UnixNano()
			}

			if runErr := tui.Run(game, store, board, gameCfg, runRT, flagPlayer); runErr != nil {
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			}
		}
	}

	if store != nil {
		store.Close()
	}
}
