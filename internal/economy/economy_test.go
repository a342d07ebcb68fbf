package economy

import (
	"math"
	"testing"
)

func TestComboMultiplierSteps(t *testing.T) {
	tests := []struct {
		combo    int
		expected int
	}{
		{0, 1},
		{4, 1},
		{5, 2},
		{9, 2},
		{10, 3},
		{19, 4},
		{20, 5},
		{25, 5},  // capped
		{100, 5}, // capped
	}

	for _, tc := range tests {
		if got := ComboMultiplier(tc.combo); got != tc.expected {
			t.Errorf("ComboMultiplier(%d) = %d, expected %d", tc.combo, got, tc.expected)
		}
	}
}

func TestPointsGoldBaseline(t *testing.T) {
	// Gold item (value 50) at level 1, no bonuses, combo 0: exactly 50.
	got := Points(ScoreInput{
		ItemValue:       50,
		Level:           1,
		Combo:           0,
		ScoreMultiplier: 1,
		EquipmentBonus:  1,
		ComboLevelBonus: 1,
	})
	if got != 50 {
		t.Errorf("Points = %d, expected 50", got)
	}
}

func TestPointsComboStepAtFive(t *testing.T) {
	// 5th consecutive regular catch (value 10) at level 1: 10×1×2 = 20.
	got := Points(ScoreInput{
		ItemValue:       10,
		Level:           1,
		Combo:           5,
		ScoreMultiplier: 1,
		EquipmentBonus:  1,
		ComboLevelBonus: 1,
	})
	if got != 20 {
		t.Errorf("Points at combo 5 = %d, expected 20", got)
	}
}

func TestPointsOverchargeDoubles(t *testing.T) {
	in := ScoreInput{
		ItemValue:       10,
		Level:           2,
		Combo:           0,
		ScoreMultiplier: 1,
		EquipmentBonus:  1,
		ComboLevelBonus: 1,
	}
	base := Points(in)
	in.Overcharge = true
	if got := Points(in); got != base*2 {
		t.Errorf("overcharge Points = %d, expected %d", got, base*2)
	}
}

func TestPointsFloorsResult(t *testing.T) {
	got := Points(ScoreInput{
		ItemValue:       10,
		Level:           1,
		Combo:           0,
		ScoreMultiplier: 1.15,
		EquipmentBonus:  1,
		ComboLevelBonus: 1,
	})
	if got != 11 { // floor(11.5)
		t.Errorf("Points = %d, expected floored 11", got)
	}
}

func TestCurrencyFraction(t *testing.T) {
	if got := Currency(100, 1); got != 10 {
		t.Errorf("Currency(100, 1) = %d, expected 10", got)
	}
	if got := Currency(100, 1.5); got != 15 {
		t.Errorf("Currency(100, 1.5) = %d, expected 15", got)
	}
}

func TestPerformanceScoreEmptyWindow(t *testing.T) {
	tr := NewPerformanceTracker(10, 60)
	if got := tr.Score(600, 0); got != 0 {
		t.Errorf("empty window score = %v, expected 0", got)
	}
}

func TestPerformanceScorePrunesOldEvents(t *testing.T) {
	tr := NewPerformanceTracker(10, 60)

	tr.RecordCatch(0, 10)    // falls out of the window at tick 601
	tr.RecordCatch(500, 10)  // stays
	tr.RecordCatch(550, 10)  // stays

	score := tr.Score(601, 0)

	// 2 catches in 10s: rate 0.2; valueSum 20 -> 0.2; (0.2+0+0.2)/3.
	want := (0.2 + 0.2) / 3
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("score = %v, expected %v", score, want)
	}
}

func TestPerformanceScoreClampedToTen(t *testing.T) {
	tr := NewPerformanceTracker(10, 60)
	for i := 0; i < 500; i++ {
		tr.RecordCatch(i, 100)
	}
	if got := tr.Score(500, 500); got != 10 {
		t.Errorf("score = %v, expected clamp at 10", got)
	}
}

func TestSpeedAdjustmentScalesUp(t *testing.T) {
	if got := SpeedAdjustment(0); got != 1 {
		t.Errorf("SpeedAdjustment(0) = %v", got)
	}
	if got := SpeedAdjustment(10); got != 1.5 {
		t.Errorf("SpeedAdjustment(10) = %v, expected 1.5", got)
	}
}

func TestSpawnAdjustmentFloor(t *testing.T) {
	if got := SpawnAdjustment(0); got != 1 {
		t.Errorf("SpawnAdjustment(0) = %v", got)
	}
	// 1 - 10*0.03 = 0.7 exactly at the floor; anything lower clamps.
	if got := SpawnAdjustment(10); got != 0.7 {
		t.Errorf("SpawnAdjustment(10) = %v, expected 0.7", got)
	}
	if got := SpawnAdjustment(20); got != 0.7 {
		t.Errorf("SpawnAdjustment(20) = %v, expected floor 0.7", got)
	}
}

func TestXPAndLevelCurve(t *testing.T) {
	totals := RunTotals{
		Score:          1000,
		MaxCombo:       10,
		GoldCaught:     2,
		ItemsCaught:    50,
		BombsDestroyed: 4,
	}

	xp := XPForRun(totals, 1)
	// 50*2 + 4*5 + 2*3 + 1000*0.01 + 10 = 100+20+6+10+10 = 146
	if xp != 146 {
		t.Errorf("XPForRun = %d, expected 146", xp)
	}

	if LevelForXP(0) != 1 {
		t.Error("0 XP should be level 1")
	}
	if LevelForXP(400) != 2 { // 100*2*2
		t.Errorf("LevelForXP(400) = %d, expected 2", LevelForXP(400))
	}
	if LevelForXP(899) != 2 {
		t.Errorf("LevelForXP(899) = %d, expected 2", LevelForXP(899))
	}
	if LevelForXP(900) != 3 { // 100*3*3
		t.Errorf("LevelForXP(900) = %d, expected 3", LevelForXP(900))
	}
}

func TestBonusesForLevel(t *testing.T) {
	b := BonusesForLevel(1)
	if b.Speed != 1 || b.ShieldCharges != 0 {
		t.Errorf("level 1 bonuses = %+v", b)
	}

	b = BonusesForLevel(6)
	if b.ShieldCharges != 1 {
		t.Errorf("level 6 shield charges = %d, expected 1", b.ShieldCharges)
	}
	if math.Abs(b.Speed-1.10) > 1e-9 {
		t.Errorf("level 6 speed bonus = %v, expected 1.10", b.Speed)
	}
}
