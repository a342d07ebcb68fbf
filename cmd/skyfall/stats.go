package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skyfall-arcade/skyfall/internal/economy"
	"github.com/skyfall-arcade/skyfall/internal/registry"
	"github.com/skyfall-arcade/skyfall/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-mode run statistics and player progression",
	Long: `Display aggregated run statistics for every mode with recorded runs,
plus the stored player profile: level, XP, currency, and unlocks.

Examples:
  skyfall stats
  skyfall stats --db ./scores.db`,
	Run: runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	profile := store.LoadProfile()
	level := economy.LevelForXP(profile.XP)
	bonuses := economy.BonusesForLevel(level)

	fmt.Printf("Profile: %s\n", profile.Name)
	fmt.Printf("  Level %d (%d XP) • %d currency\n", level, profile.XP, profile.Currency)
	fmt.Printf("  Bonuses: speed ×%.2f, xp ×%.2f, currency ×%.2f, combo ×%.2f",
		bonuses.Speed, bonuses.XP, bonuses.Currency, bonuses.Combo)
	if bonuses.ShieldCharges > 0 {
		fmt.Printf(", %d shield charge(s)", bonuses.ShieldCharges)
	}
	fmt.Println()

	unlocks := equipmentList(profile)
	if len(unlocks) > 0 {
		fmt.Printf("  Equipment: %v\n", unlocks)
	}
	fmt.Println()

	all, err := store.GetAllModeStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-12s  %-6s  %-10s  %-10s  %-6s  %s\n", "Mode", "Runs", "Best", "Average", "Combo", "Last played")
	fmt.Printf("  %-12s  %-6s  %-10s  %-10s  %-6s  %s\n", "----", "----", "----", "-------", "-----", "-----------")

	for _, mode := range registry.List() {
		s, ok := all[mode.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %-6d  %-10d  %-10.0f  %-6d  %s\n",
			mode.ID, s.RunCount, s.HighScore, s.AvgScore, s.BestCombo,
			s.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func equipmentList(p storage.Profile) []string {
	var out []string
	if p.Piercing {
		out = append(out, "piercing")
	}
	if p.Explosive {
		out = append(out, "explosive")
	}
	if p.Chain {
		out = append(out, "chain")
	}
	if p.PassiveMagnet {
		out = append(out, "magnet")
	}
	if p.WeaponMode != "" {
		out = append(out, "weapon:"+p.WeaponMode)
	}
	return out
}
