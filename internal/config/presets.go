package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset; unknown strings map to empty
// (no preset applied).
func ParsePreset(s string) DifficultyPreset {
	switch s {
	case "easy":
		return DifficultyEasy
	case "normal":
		return DifficultyNormal
	case "hard":
		return DifficultyHard
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a difficulty preset. The adaptive
// difficulty loop stays active in all presets; presets only shift the
// starting point.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Items.BaseFallSpeed = 6
		cfg.Spawn.IntervalTicks = 72
		cfg.Items.WeightBomb = 8
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Items.BaseFallSpeed = 10
		cfg.Spawn.IntervalTicks = 48
		cfg.Items.WeightBomb = 16
	}
}
