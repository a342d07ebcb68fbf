// Package economy holds the pure scoring, currency and adaptive-difficulty
// math for Skyfall runs. Everything here is a function of its inputs so the
// simulation can call it every tick without side effects, and tests can pin
// exact values.
package economy

import "math"

// ComboMultiplierCap bounds the stepped combo multiplier.
const ComboMultiplierCap = 5

// CurrencyFraction is the share of points converted to currency on a catch.
const CurrencyFraction = 0.10

// ComboMultiplier returns the stepped multiplier for a combo streak:
// min(floor(combo/5)+1, 5). Combo 0-4 scores 1x, 5-9 scores 2x, and so on.
func ComboMultiplier(combo int) int {
	m := combo/5 + 1
	if m > ComboMultiplierCap {
		m = ComboMultiplierCap
	}
	return m
}

// ScoreInput bundles every factor of a non-bomb catch.
type ScoreInput struct {
	ItemValue       float64 // Base value of the caught item
	Level           int     // Current run level (1-based)
	Combo           int     // Streak count including this catch
	ScoreMultiplier float64 // Timed multiplier status (1 when inactive)
	Overcharge      bool    // Whether an overcharge window is open
	EquipmentBonus  float64 // Equipment-supplied multiplier (1 when none)
	ComboLevelBonus float64 // Leveling-supplied combo multiplier (1 when none)
}

// Points computes the score awarded for a catch:
// floor(value × level × comboMult × scoreMult × overchargeBonus × equipBonus × comboLevelBonus).
func Points(in ScoreInput) int {
	overcharge := 1.0
	if in.Overcharge {
		overcharge = 2.0
	}
	raw := in.ItemValue *
		float64(in.Level) *
		float64(ComboMultiplier(in.Combo)) *
		in.ScoreMultiplier *
		overcharge *
		in.EquipmentBonus *
		in.ComboLevelBonus
	return int(math.Floor(raw))
}

// Currency converts points earned on a catch to currency, scaled by the
// equipment/leveling currency bonus.
func Currency(points int, currencyBonus float64) int {
	return int(math.Floor(float64(points) * CurrencyFraction * currencyBonus))
}

// CatchEvent records one catch for the sliding performance window.
type CatchEvent struct {
	Tick  int
	Value float64
}

// PerformanceTracker maintains a sliding window of recent catch events and
// derives the smoothed 0-10 performance score that feeds adaptive difficulty.
type PerformanceTracker struct {
	events      []CatchEvent
	windowTicks int
	tickRate    int
}

// NewPerformanceTracker creates a tracker with a window of windowSeconds at
// the given tick rate.
func NewPerformanceTracker(windowSeconds, tickRate int) *PerformanceTracker {
	if windowSeconds <= 0 {
		windowSeconds = 10
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	return &PerformanceTracker{
		windowTicks: windowSeconds * tickRate,
		tickRate:    tickRate,
	}
}

// RecordCatch appends a catch event at the given tick.
func (t *PerformanceTracker) RecordCatch(tick int, value float64) {
	t.events = append(t.events, CatchEvent{Tick: tick, Value: value})
}

// Reset drops all recorded events.
func (t *PerformanceTracker) Reset() {
	t.events = t.events[:0]
}

// Score computes clamp(0, 10, (catchRate + combo×0.1 + valueSum×0.01) / 3)
// over the window ending at the given tick. Events older than the window are
// pruned as a side effect, keeping the tracker O(window).
func (t *PerformanceTracker) Score(tick, combo int) float64 {
	cutoff := tick - t.windowTicks
	keep := 0
	for _, e := range t.events {
		if e.Tick > cutoff {
			break
		}
		keep++
	}
	t.events = t.events[keep:]

	valueSum := 0.0
	for _, e := range t.events {
		valueSum += e.Value
	}

	windowSeconds := float64(t.windowTicks) / float64(t.tickRate)
	catchRate := float64(len(t.events)) / windowSeconds

	raw := (catchRate + float64(combo)*0.1 + valueSum*0.01) / 3
	if raw < 0 {
		return 0
	}
	if raw > 10 {
		return 10
	}
	return raw
}

// SpeedAdjustment maps the performance score to an item fall-speed
// multiplier: better play makes items fall faster.
func SpeedAdjustment(performanceScore float64) float64 {
	return 1 + performanceScore*0.05
}

// SpawnAdjustment maps the performance score to a spawn-interval multiplier:
// better play spawns items denser, floored at 0.7 so the game stays fair.
func SpawnAdjustment(performanceScore float64) float64 {
	adj := 1 - performanceScore*0.03
	if adj < 0.7 {
		return 0.7
	}
	return adj
}
