package economy

// RunTotals aggregates everything a finished run feeds into progression.
type RunTotals struct {
	Score          int
	MaxCombo       int
	GoldCaught     int
	ItemsCaught    int
	ItemsMissed    int
	BombsDestroyed int
	ElapsedSeconds int
}

// StatBonuses are the multiplicative bonuses the player's persistent level
// and equipment grant a run. All multipliers default to 1; ShieldCharges to 0.
type StatBonuses struct {
	Speed         float64
	XP            float64
	Currency      float64
	Combo         float64
	ShieldCharges int
}

// DefaultBonuses returns neutral bonuses for a fresh profile.
func DefaultBonuses() StatBonuses {
	return StatBonuses{Speed: 1, XP: 1, Currency: 1, Combo: 1}
}

// XPForRun derives experience from run totals. Catches and destroyed bombs
// are worth flat XP, score contributes a trickle, and max combo a bonus.
func XPForRun(t RunTotals, xpBonus float64) int {
	base := float64(t.ItemsCaught*2) +
		float64(t.BombsDestroyed*5) +
		float64(t.GoldCaught*3) +
		float64(t.Score)*0.01 +
		float64(t.MaxCombo)
	if xpBonus <= 0 {
		xpBonus = 1
	}
	return int(base * xpBonus)
}

// LevelForXP maps accumulated XP to a player level with a quadratic curve:
// level n requires 100×n² total XP.
func LevelForXP(xp int) int {
	level := 1
	for xp >= 100*(level+1)*(level+1) {
		level++
	}
	return level
}

// BonusesForLevel derives the stat bonuses a player level grants. Each level
// past the first adds 2% speed, 5% XP, 4% currency and 3% combo; a shield
// charge is granted every 5 levels.
func BonusesForLevel(level int) StatBonuses {
	if level < 1 {
		level = 1
	}
	n := float64(level - 1)
	return StatBonuses{
		Speed:         1 + n*0.02,
		XP:            1 + n*0.05,
		Currency:      1 + n*0.04,
		Combo:         1 + n*0.03,
		ShieldCharges: (level - 1) / 5,
	}
}
