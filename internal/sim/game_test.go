package sim

import (
	"testing"

	"github.com/skyfall-arcade/skyfall/internal/config"
	"github.com/skyfall-arcade/skyfall/internal/core"
	"github.com/skyfall-arcade/skyfall/internal/economy"
	"github.com/skyfall-arcade/skyfall/internal/perf"
)

func qualityLow() perf.QualityConfig {
	return perf.QualityFor(perf.LevelLow)
}

func bonusesWithShield(n int) economy.StatBonuses {
	b := economy.DefaultBonuses()
	b.ShieldCharges = n
	return b
}

// quietConfig disables timed spawning so tests control exactly which
// entities exist.
func quietConfig() config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Spawn.IntervalTicks = 1 << 20
	cfg.Spawn.MinIntervalTicks = 1 << 20
	cfg.Spawn.PowerupIntervalTicks = 1 << 20
	return cfg
}

func newTestGame(t *testing.T, cfg config.GameConfig) *Game {
	t.Helper()
	g := NewGame(modes[0]) // classic
	g.SetConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 7})
	startRun(g)
	return g
}

func startRun(g *Game) {
	f := core.NewInputFrame()
	f.Press(core.ActionConfirm)
	g.Step(f)
}

func stepN(g *Game, n int) {
	f := core.NewInputFrame()
	for i := 0; i < n; i++ {
		g.Step(f)
	}
}

func pressFrame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Press(a)
	}
	return f
}

func holdFrame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Hold(a)
	}
	return f
}

// dropAt places a stationary item directly into the playfield.
func dropAt(g *Game, kind ItemKind, x, y float64) *Entity {
	it := g.items.Acquire()
	it.Kind = kind
	it.Value = g.itemValue(kind)
	it.Pos = core.Vec2{X: x, Y: y}
	it.Speed = 0
	it.Active = true
	it.Visible = true
	return it
}

func TestReadyStartsOnConfirm(t *testing.T) {
	g := NewGame(modes[0])
	g.SetConfig(quietConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 1})

	if g.phase != phaseReady {
		t.Fatalf("fresh game phase = %v, expected ready", g.phase)
	}

	stepN(g, 5)
	if g.phase != phaseReady {
		t.Error("empty input should not start the run")
	}

	g.Step(pressFrame(core.ActionConfirm))
	if g.phase != phasePlaying {
		t.Error("confirm should start the run")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, quietConfig())

	g.Step(pressFrame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("pause press should pause")
	}
	tickAtPause := g.tick

	stepN(g, 10)
	if g.tick != tickAtPause {
		t.Error("paused game must not advance ticks")
	}

	g.Step(pressFrame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause press should resume")
	}
}

func TestCatchScoresAndBuildsCombo(t *testing.T) {
	g := newTestGame(t, quietConfig())

	dropAt(g, ItemRegular, g.catcherX, g.catcherY)
	stepN(g, 1)

	st := g.State()
	if st.Score != 10 {
		t.Errorf("score = %d, expected 10 (value 10 x level 1 x combo mult 1)", st.Score)
	}
	if st.Combo != 1 {
		t.Errorf("combo = %d, expected 1", st.Combo)
	}
	if st.Currency != 1 {
		t.Errorf("currency = %d, expected 1 (10%% of points)", st.Currency)
	}
	if g.items.Metrics().Active != 0 {
		t.Error("caught item should be released back to the pool")
	}
	if g.totals.ItemsCaught != 1 {
		t.Errorf("ItemsCaught = %d, expected 1", g.totals.ItemsCaught)
	}
}

func TestComboMultiplierStepsAtFive(t *testing.T) {
	g := newTestGame(t, quietConfig())

	for i := 0; i < 5; i++ {
		dropAt(g, ItemRegular, g.catcherX, g.catcherY)
		stepN(g, 1)
	}
	// Catches 1-4 score 10 each; catch 5 hits combo 5 = 2x.
	if g.score != 60 {
		t.Errorf("score after 5 catches = %d, expected 60", g.score)
	}
}

func TestMissCostsLifeAndResetsCombo(t *testing.T) {
	g := newTestGame(t, quietConfig())

	dropAt(g, ItemRegular, g.catcherX, g.catcherY)
	stepN(g, 1)
	if g.combo != 1 {
		t.Fatal("setup: expected combo 1")
	}

	dropAt(g, ItemRegular, 3, g.catcherY+5)
	stepN(g, 1)

	st := g.State()
	if st.Lives != 2 {
		t.Errorf("lives = %d, expected 2", st.Lives)
	}
	if st.Combo != 0 {
		t.Errorf("combo = %d, expected reset to 0", st.Combo)
	}
	if g.totals.ItemsMissed != 1 {
		t.Errorf("ItemsMissed = %d, expected 1", g.totals.ItemsMissed)
	}
}

func TestThreeMissesEndTheRun(t *testing.T) {
	g := newTestGame(t, quietConfig())

	for i := 0; i < 3; i++ {
		dropAt(g, ItemRegular, 3, g.catcherY+5)
		stepN(g, 1)
	}

	st := g.State()
	if !st.GameOver {
		t.Fatal("three misses at three lives should end the run")
	}
	if st.Lives != 0 {
		t.Errorf("lives = %d, expected 0", st.Lives)
	}
}

func TestGameOverFinalizesTotals(t *testing.T) {
	g := newTestGame(t, quietConfig())

	dropAt(g, ItemGold, g.catcherX, g.catcherY)
	stepN(g, 1)
	for i := 0; i < 3; i++ {
		dropAt(g, ItemRegular, 3, g.catcherY+5)
		stepN(g, 1)
	}

	tot := g.Totals()
	if tot.Score != g.score {
		t.Errorf("totals score = %d, expected %d", tot.Score, g.score)
	}
	if tot.GoldCaught != 1 {
		t.Errorf("GoldCaught = %d, expected 1", tot.GoldCaught)
	}
	if tot.MaxCombo != 1 {
		t.Errorf("MaxCombo = %d, expected 1", tot.MaxCombo)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t, quietConfig())

	for i := 0; i < 3; i++ {
		dropAt(g, ItemRegular, 3, g.catcherY+5)
		stepN(g, 1)
	}
	if !g.State().GameOver {
		t.Fatal("setup: expected game over")
	}

	g.Step(pressFrame(core.ActionRestart))
	st := g.State()
	if st.GameOver || st.Lives != 3 || st.Score != 0 {
		t.Errorf("restart should reset the run, got %+v", st)
	}
}

func TestShieldAbsorbsMiss(t *testing.T) {
	g := newTestGame(t, quietConfig())
	g.shieldCharges = 1

	dropAt(g, ItemRegular, g.catcherX, g.catcherY)
	stepN(g, 1)

	dropAt(g, ItemRegular, 3, g.catcherY+5)
	stepN(g, 1)

	if g.State().Lives != 3 {
		t.Errorf("lives = %d, shield should absorb the miss", g.State().Lives)
	}
	if g.combo != 1 {
		t.Errorf("combo = %d, shield should preserve the streak", g.combo)
	}
	if g.shieldCharges != 0 {
		t.Errorf("shield charges = %d, expected 0", g.shieldCharges)
	}
}

func TestBombSlippingPastIsNotAMiss(t *testing.T) {
	g := newTestGame(t, quietConfig())

	dropAt(g, ItemBomb, 3, g.catcherY+5)
	stepN(g, 1)

	if g.State().Lives != 3 {
		t.Error("a dodged bomb must not cost a life")
	}
	if g.items.Metrics().Active != 0 {
		t.Error("dodged bomb should still be released")
	}
}

func TestBombCatchCostsLife(t *testing.T) {
	g := newTestGame(t, quietConfig())

	dropAt(g, ItemRegular, g.catcherX, g.catcherY)
	stepN(g, 1)

	dropAt(g, ItemBomb, g.catcherX, g.catcherY)
	stepN(g, 1)

	st := g.State()
	if st.Lives != 2 {
		t.Errorf("lives = %d, expected 2 after catching a bomb", st.Lives)
	}
	if st.Combo != 0 {
		t.Errorf("combo = %d, bomb should reset the streak", st.Combo)
	}
}

func TestConverterTurnsBombsToGold(t *testing.T) {
	g := newTestGame(t, quietConfig())
	g.abilities.Grant(AbilityConverter, g.tick+600)

	dropAt(g, ItemBomb, g.catcherX, g.catcherY)
	stepN(g, 1)

	st := g.State()
	if st.Lives != 3 {
		t.Errorf("lives = %d, converter should defuse the bomb", st.Lives)
	}
	if st.Score != 50 {
		t.Errorf("score = %d, expected gold value 50", st.Score)
	}
}

func TestHealthItemCapsAtMaxLives(t *testing.T) {
	g := newTestGame(t, quietConfig())

	for i := 0; i < 4; i++ {
		dropAt(g, ItemHealth, g.catcherX, g.catcherY)
		stepN(g, 1)
	}

	if g.State().Lives != 5 {
		t.Errorf("lives = %d, expected cap at 5", g.State().Lives)
	}
}

func TestStatusItemsGrantAbilitiesWithoutCombo(t *testing.T) {
	tests := []struct {
		kind    ItemKind
		ability Ability
	}{
		{ItemFreeze, AbilityFreeze},
		{ItemGlitch, AbilityGlitch},
		{ItemMultiplier, AbilityMultiplier},
		{ItemVirus, AbilityVirus},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			g := newTestGame(t, quietConfig())
			dropAt(g, tt.kind, g.catcherX, g.catcherY)
			stepN(g, 1)

			if !g.abilities.Active(tt.ability, g.tick) {
				t.Errorf("catching %v should grant %v", tt.kind, tt.ability)
			}
			if g.combo != 0 {
				t.Errorf("status catch should not touch the combo, got %d", g.combo)
			}
			if g.score != 0 {
				t.Errorf("status catch should not score, got %d", g.score)
			}
		})
	}
}

func TestMultiplierDoublesPoints(t *testing.T) {
	g := newTestGame(t, quietConfig())
	g.abilities.Grant(AbilityMultiplier, g.tick+600)

	dropAt(g, ItemRegular, g.catcherX, g.catcherY)
	stepN(g, 1)

	if g.score != 20 {
		t.Errorf("score = %d, expected 20 with 2x multiplier", g.score)
	}
}

func TestVirusHalvesPoints(t *testing.T) {
	g := newTestGame(t, quietConfig())
	g.abilities.Grant(AbilityVirus, g.tick+600)

	dropAt(g, ItemRegular, g.catcherX, g.catcherY)
	stepN(g, 1)

	if g.score != 5 {
		t.Errorf("score = %d, expected 5 under virus", g.score)
	}
}

func TestGiantCatchTolerance(t *testing.T) {
	g := newTestGame(t, quietConfig())

	// Outside the normal half-width (4.5) but inside the giant bonus (6.5).
	dropAt(g, ItemGiant, g.catcherX+5.5, g.catcherY)
	stepN(g, 1)
	if g.score != 30 {
		t.Errorf("score = %d, giant should be caught with widened tolerance", g.score)
	}

	g2 := newTestGame(t, quietConfig())
	dropAt(g2, ItemRegular, g2.catcherX+5.5, g2.catcherY)
	stepN(g2, 1)
	if g2.score != 0 {
		t.Errorf("score = %d, regular item at same offset must not be caught", g2.score)
	}
}

func TestOverchargeDoublesScoring(t *testing.T) {
	cfg := quietConfig()
	cfg.Gameplay.OverchargePerCatch = 100
	g := newTestGame(t, cfg)

	dropAt(g, ItemRegular, g.catcherX, g.catcherY)
	stepN(g, 1)
	if meter, _ := g.Overcharge(); meter != 100 {
		t.Fatalf("meter = %d, expected 100", meter)
	}

	g.Step(pressFrame(core.ActionOvercharge))
	if _, open := g.Overcharge(); !open {
		t.Fatal("overcharge window should open at full meter")
	}

	dropAt(g, ItemRegular, g.catcherX, g.catcherY)
	stepN(g, 1)
	// 10 before, then 10 x combo mult 1 x 2 = 20.
	if g.score != 30 {
		t.Errorf("score = %d, expected 30 with overcharge doubling", g.score)
	}
}

func TestOverchargeRequiresFullMeter(t *testing.T) {
	g := newTestGame(t, quietConfig())

	dropAt(g, ItemRegular, g.catcherX, g.catcherY)
	stepN(g, 1)

	g.Step(pressFrame(core.ActionOvercharge))
	if _, open := g.Overcharge(); open {
		t.Error("overcharge must not trigger below a full meter")
	}
}

func TestGlitchReversesControls(t *testing.T) {
	g := newTestGame(t, quietConfig())
	start := g.catcherX

	g.Step(holdFrame(core.ActionRight))
	if g.catcherX <= start {
		t.Fatal("setup: right should move right")
	}

	g.abilities.Grant(AbilityGlitch, g.tick+600)
	before := g.catcherX
	g.Step(holdFrame(core.ActionRight))
	if g.catcherX >= before {
		t.Error("right should move left while glitched")
	}
}

func TestFallMultiplierCompounds(t *testing.T) {
	g := newTestGame(t, quietConfig())

	if m := g.fallMultiplier(); m != 1 {
		t.Fatalf("base multiplier = %v, expected 1", m)
	}

	g.abilities.Grant(AbilitySlowMotion, g.tick+600)
	g.abilities.Grant(AbilityTimeWarp, g.tick+600)
	want := 0.5 * 0.7
	if m := g.fallMultiplier(); m != want {
		t.Errorf("multiplier = %v, expected %v (multiplicative compounding)", m, want)
	}

	g.chaosUntil = g.tick + 600
	want *= 1.5
	if m := g.fallMultiplier(); m != want {
		t.Errorf("multiplier with chaos = %v, expected %v", m, want)
	}
}

func TestBlackHoleAutoCatch(t *testing.T) {
	g := newTestGame(t, quietConfig())
	g.abilities.Grant(AbilityBlackHole, g.tick+600)

	dropAt(g, ItemRegular, g.catcherX+1, g.catcherY-1)
	stepN(g, 1)

	if g.score != 10 {
		t.Errorf("score = %d, item inside the inner radius should auto-catch", g.score)
	}
}

func TestBlackHolePullsItems(t *testing.T) {
	g := newTestGame(t, quietConfig())
	g.abilities.Grant(AbilityBlackHole, g.tick+600)

	it := dropAt(g, ItemRegular, g.catcherX+10, g.catcherY-5)
	before := it.Pos.DistanceTo(core.Vec2{X: g.catcherX, Y: g.catcherY})
	stepN(g, 1)
	after := it.Pos.DistanceTo(core.Vec2{X: g.catcherX, Y: g.catcherY})

	if after >= before {
		t.Errorf("distance %v -> %v, black hole should pull the item closer", before, after)
	}
}

func TestBlackHoleIgnoresBombs(t *testing.T) {
	g := newTestGame(t, quietConfig())
	g.abilities.Grant(AbilityBlackHole, g.tick+600)

	dropAt(g, ItemBomb, g.catcherX+1, g.catcherY-1)
	stepN(g, 1)

	if g.State().Lives != 3 {
		t.Error("black hole must not pull bombs into the catcher")
	}
}

func TestMagnetAttractsLaterally(t *testing.T) {
	g := newTestGame(t, quietConfig())
	g.abilities.Grant(AbilityMagnet, g.tick+600)

	it := dropAt(g, ItemRegular, g.catcherX+6, g.catcherY-3)
	before := it.Pos.X
	stepN(g, 1)

	if it.Pos.X >= before {
		t.Error("magnet should drift the item toward the catcher")
	}
}

func TestPowerupPickup(t *testing.T) {
	g := newTestGame(t, quietConfig())

	pu := g.powerups.Acquire()
	pu.Power = AbilityShield
	pu.Pos = core.Vec2{X: g.catcherX, Y: g.catcherY}
	pu.Active = true
	pu.Visible = true
	stepN(g, 1)

	if g.ShieldCharges() != 1 {
		t.Errorf("shield charges = %d, expected 1", g.ShieldCharges())
	}

	pu2 := g.powerups.Acquire()
	pu2.Power = AbilityMagnet
	pu2.Pos = core.Vec2{X: g.catcherX, Y: g.catcherY}
	pu2.Active = true
	pu2.Visible = true
	stepN(g, 1)

	if !g.abilities.Active(AbilityMagnet, g.tick) {
		t.Error("magnet pickup should grant the timed ability")
	}
}

func TestMissedPowerupHasNoPenalty(t *testing.T) {
	g := newTestGame(t, quietConfig())

	pu := g.powerups.Acquire()
	pu.Power = AbilityMagnet
	pu.Pos = core.Vec2{X: 3, Y: g.catcherY + 5}
	pu.Active = true
	pu.Visible = true
	stepN(g, 1)

	if g.State().Lives != 3 {
		t.Error("missed pickups must not penalize")
	}
	if g.powerups.Metrics().Active != 0 {
		t.Error("missed pickup should be released")
	}
}

func TestLevelUpRaisesDifficultyAndTriggersChaos(t *testing.T) {
	cfg := quietConfig()
	cfg.Gameplay.LevelScoreStep = 10
	g := newTestGame(t, cfg)
	baseSpeed := g.baseFallSpeed

	dropAt(g, ItemRegular, g.catcherX, g.catcherY)
	stepN(g, 1)
	if g.level != 2 {
		t.Fatalf("level = %d, expected 2 after crossing the step", g.level)
	}
	if g.baseFallSpeed <= baseSpeed {
		t.Error("level-up should raise base fall speed")
	}

	dropAt(g, ItemRegular, g.catcherX, g.catcherY)
	stepN(g, 1)
	if g.level < 3 {
		t.Fatalf("level = %d, expected at least 3", g.level)
	}
	if !g.chaosActive() {
		t.Error("reaching level 3 should trigger chaos mode")
	}
}

func TestAdaptiveDifficultyReactsToCatches(t *testing.T) {
	g := newTestGame(t, quietConfig())

	if g.PerformanceScore() != 0 {
		t.Fatal("fresh run should have zero performance score")
	}

	for i := 0; i < 10; i++ {
		dropAt(g, ItemGold, g.catcherX, g.catcherY)
		stepN(g, 1)
	}

	if g.PerformanceScore() <= 0 {
		t.Error("a catch streak should raise the performance score")
	}
}

func TestItemPoolEvictsOldestAtCapacity(t *testing.T) {
	g := newTestGame(t, quietConfig())
	capacity := g.cfg.Pool.Items

	for i := 0; i < capacity+8; i++ {
		dropAt(g, ItemRegular, 3, 5)
	}

	m := g.items.Metrics()
	if m.Active != capacity {
		t.Errorf("active = %d, expected eviction to hold the cap %d", m.Active, capacity)
	}
}

func TestSpawningRespectsTimerAndCap(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Spawn.IntervalTicks = 10
	cfg.Spawn.MinIntervalTicks = 10
	cfg.Spawn.PowerupIntervalTicks = 1 << 20
	g := newTestGame(t, cfg)

	stepN(g, 9)
	if g.items.Metrics().Active != 0 {
		t.Fatalf("active = %d before the first deadline, expected 0", g.items.Metrics().Active)
	}
	stepN(g, 1)
	if g.items.Metrics().Active != 1 {
		t.Errorf("active = %d at the deadline, expected 1", g.items.Metrics().Active)
	}
}

func TestQualityScalesSpawnCap(t *testing.T) {
	g := newTestGame(t, quietConfig())

	high := g.maxActiveItems()
	g.SetQuality(qualityLow())
	low := g.maxActiveItems()

	if low >= high {
		t.Errorf("low-quality cap %d should be below high-quality cap %d", low, high)
	}
}

func TestQualityScalesParticleBursts(t *testing.T) {
	g := newTestGame(t, quietConfig())

	g.spawnBurst(core.Vec2{X: 10, Y: 10}, core.ColorRed, 10)
	full := g.particles.Metrics().Active

	g.particles.Clear()
	g.SetQuality(qualityLow())
	g.spawnBurst(core.Vec2{X: 10, Y: 10}, core.ColorRed, 10)
	reduced := g.particles.Metrics().Active

	if reduced >= full {
		t.Errorf("low quality burst %d should emit fewer particles than %d", reduced, full)
	}
}

func TestPrecisionModeUsesCircularCatch(t *testing.T) {
	g := NewGame(modes[1]) // precision
	g.SetConfig(quietConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 7})
	startRun(g)

	// Inside the radius: caught, at double value.
	dropAt(g, ItemRegular, g.catcherX+1, g.catcherY-1)
	stepN(g, 1)
	if g.score != 20 {
		t.Errorf("score = %d, expected 20 (double value inside the circle)", g.score)
	}

	// Outside the 2.5 radius but inside what a rectangle would catch.
	dropAt(g, ItemRegular, g.catcherX+4, g.catcherY)
	stepN(g, 1)
	if g.score != 20 {
		t.Errorf("score = %d, item outside the circle must not be caught", g.score)
	}
}

func TestFrenzyModeIsPermanentChaos(t *testing.T) {
	g := NewGame(modes[2]) // frenzy
	g.SetConfig(quietConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 7})
	startRun(g)

	if !g.chaosActive() {
		t.Error("frenzy should run under permanent chaos")
	}
	if g.State().Lives != 4 {
		t.Errorf("lives = %d, frenzy grants 4", g.State().Lives)
	}
}

func TestBonusesApplyToRun(t *testing.T) {
	g := NewGame(modes[0])
	g.SetConfig(quietConfig())
	g.SetBonuses(bonusesWithShield(2))
	g.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60, Seed: 7})
	startRun(g)

	if g.ShieldCharges() != 2 {
		t.Errorf("shield charges = %d, expected 2 from bonuses", g.ShieldCharges())
	}
}

func TestDeterministicReplay(t *testing.T) {
	script := func(i int) core.InputFrame {
		f := core.NewInputFrame()
		switch {
		case i%40 == 0:
			f.Press(core.ActionFire)
		case i%11 < 5:
			f.Hold(core.ActionLeft)
		case i%17 < 6:
			f.Hold(core.ActionRight)
		}
		if i%90 == 3 {
			f.Press(core.ActionRight)
		}
		return f
	}

	run := func() []uint64 {
		g := NewGame(modes[0])
		g.Reset(core.RuntimeConfig{ScreenW: 60, ScreenH: 24, TickRate: 60, Seed: 42})
		startRun(g)

		var hashes []uint64
		for i := 0; i < 900; i++ {
			g.Step(script(i))
			if i%100 == 99 {
				snap := g.Snapshot()
				hashes = append(hashes, snap.Hash())
			}
		}
		return hashes
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("hash divergence at checkpoint %d: %x != %x", i, a[i], b[i])
		}
	}
}

func TestSeedChangesOutcome(t *testing.T) {
	run := func(seed int64) uint64 {
		g := NewGame(modes[0])
		g.Reset(core.RuntimeConfig{ScreenW: 60, ScreenH: 24, TickRate: 60, Seed: seed})
		startRun(g)
		stepN(g, 600)
		snap := g.Snapshot()
		return snap.Hash()
	}

	if run(1) == run(2) {
		t.Error("different seeds should diverge")
	}
}
