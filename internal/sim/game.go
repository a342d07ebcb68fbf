package sim

import (
	"math"
	"time"

	"github.com/skyfall-arcade/skyfall/internal/config"
	"github.com/skyfall-arcade/skyfall/internal/core"
	"github.com/skyfall-arcade/skyfall/internal/economy"
	"github.com/skyfall-arcade/skyfall/internal/perf"
	"github.com/skyfall-arcade/skyfall/internal/pool"
)

// phase is the run state machine.
type phase int

const (
	phaseReady phase = iota
	phasePlaying
	phasePaused
	phaseGameOver
)

// Loadout is the equipment-derived kit the platform injects before a run.
// The simulation treats it as opaque input; acquiring equipment is the
// platform's business.
type Loadout struct {
	Piercing      bool    // Projectiles survive bomb hits
	Explosive     bool    // Projectiles area-hit on impact
	Chain         bool    // Projectile hits jump to nearby bombs
	PassiveMagnet bool    // Magnet attraction without the timed ability
	ScoreBonus    float64 // Equipment score multiplier (1 when none)
}

// Game is one Skyfall run: a catcher, falling items, projectiles, power-ups
// and particles, advanced by fixed ticks. All entity storage is pooled; a
// steady-state tick performs no allocation. Not safe for concurrent use —
// the platform owns the tick loop.
type Game struct {
	params modeParams
	cfg    config.GameConfig
	rt     core.RuntimeConfig
	rng    *RNG
	dt     float64

	items       *pool.Pool[*Entity]
	projectiles *pool.Pool[*Entity]
	powerups    *pool.Pool[*Entity]
	particles   *pool.Pool[*Entity]
	nextID      int
	released    []*Entity // Scratch for deferred releases during iteration

	phase    phase
	tick     int
	catcherX float64
	catcherY float64

	score    int
	combo    int
	maxCombo int
	lives    int
	level    int
	currency int

	overchargeMeter int // 0-100
	overchargeUntil int
	shieldCharges   int

	abilities AbilitySet
	dash      dashState
	weapon    weaponState

	perfTracker *economy.PerformanceTracker
	perfScore   float64

	nextItemSpawn    int
	nextPowerupSpawn int
	baseFallSpeed    float64
	spawnInterval    int
	chaosUntil       int

	bonuses economy.StatBonuses
	loadout Loadout
	quality perf.QualityConfig

	totals economy.RunTotals
}

// NewGame creates a run for the given mode parameters with default config,
// neutral bonuses and an empty loadout. The platform overrides these through
// the Set* methods before calling Reset.
func NewGame(params modeParams) *Game {
	return &Game{
		params:  params,
		cfg:     config.DefaultGameConfig(),
		bonuses: economy.DefaultBonuses(),
		loadout: Loadout{ScoreBonus: 1},
		quality: perf.QualityFor(perf.LevelHigh),
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string { return g.params.id }

// Title returns the mode display name.
func (g *Game) Title() string { return g.params.title }

// SetConfig replaces the tunables. Takes effect on the next Reset.
func (g *Game) SetConfig(cfg config.GameConfig) { g.cfg = cfg }

// SetBonuses injects the persistent-progression stat bonuses for this run.
// Takes effect on the next Reset.
func (g *Game) SetBonuses(b economy.StatBonuses) {
	if b.Speed <= 0 {
		b = economy.DefaultBonuses()
	}
	g.bonuses = b
}

// SetLoadout injects the equipment kit for this run. Takes effect on the
// next Reset.
func (g *Game) SetLoadout(l Loadout) {
	if l.ScoreBonus <= 0 {
		l.ScoreBonus = 1
	}
	g.loadout = l
}

// SetQuality applies an adaptive-quality signal. Safe to call mid-run; only
// decorative density and spawn caps react, never scoring.
func (g *Game) SetQuality(q perf.QualityConfig) { g.quality = q }

// Reset initializes the run. Pools are created once and cleared on
// subsequent resets so restart does not reallocate.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	if g.rt.TickRate <= 0 {
		g.rt.TickRate = 60
	}
	g.dt = 1.0 / float64(g.rt.TickRate)
	g.rng = NewRNG(rt.Seed)

	if g.items == nil {
		g.initPools()
	} else {
		g.items.Clear()
		g.projectiles.Clear()
		g.powerups.Clear()
		g.particles.Clear()
	}

	g.phase = phaseReady
	g.tick = 0
	g.catcherX = float64(g.rt.ScreenW) / 2
	g.catcherY = float64(g.rt.ScreenH - 2)

	g.score = 0
	g.combo = 0
	g.maxCombo = 0
	g.lives = g.cfg.Gameplay.Lives
	if g.params.livesOverride > 0 {
		g.lives = g.params.livesOverride
	}
	g.level = 1
	g.currency = 0

	g.overchargeMeter = 0
	g.overchargeUntil = 0
	g.shieldCharges = g.bonuses.ShieldCharges

	g.abilities.Clear()
	g.dash.reset(g.cfg.Dash)
	g.weapon.reset(g.cfg.Weapon)

	g.perfTracker = economy.NewPerformanceTracker(10, g.rt.TickRate)
	g.perfScore = 0

	g.baseFallSpeed = g.cfg.Items.BaseFallSpeed
	g.spawnInterval = g.cfg.Spawn.IntervalTicks
	g.nextItemSpawn = g.itemSpawnDeadline()
	g.nextPowerupSpawn = g.cfg.Spawn.PowerupIntervalTicks
	g.chaosUntil = 0

	g.totals = economy.RunTotals{}
}

func (g *Game) initPools() {
	factory := func() *Entity {
		g.nextID++
		e := &Entity{ID: g.nextID}
		resetEntity(e)
		return e
	}
	pc := g.cfg.Pool
	policy := pool.EvictOldest
	if pc.Policy == "grow" {
		policy = pool.GrowAlways
	}
	mk := func(capacity int) *pool.Pool[*Entity] {
		return pool.New(pool.Config{
			Capacity:       capacity,
			InitialSize:    min(pc.InitialSize, capacity),
			Policy:         policy,
			ReportInterval: time.Duration(pc.ReportIntervalMS) * time.Millisecond,
		}, factory, resetEntity)
	}
	g.items = mk(pc.Items)
	g.projectiles = mk(pc.Projectiles)
	g.powerups = mk(pc.Powerups)
	g.particles = mk(pc.Particles)
}

// Step advances the simulation by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.phase {
	case phaseReady:
		if in.Pressed(core.ActionConfirm) || in.Pressed(core.ActionFire) ||
			in.Held(core.ActionLeft) || in.Held(core.ActionRight) {
			g.phase = phasePlaying
		}
		return g.result()
	case phasePaused:
		if in.Pressed(core.ActionPause) {
			g.phase = phasePlaying
		}
		return g.result()
	case phaseGameOver:
		if in.Pressed(core.ActionRestart) {
			g.Reset(g.rt)
		}
		return g.result()
	}

	if in.Pressed(core.ActionPause) {
		g.phase = phasePaused
		return g.result()
	}

	g.tick++

	g.updateCatcher(in)
	g.updateWeapon(in)
	g.updateProjectiles()
	g.updateItems()
	g.resolveCatches()
	g.resolveMisses()
	g.updatePowerups()
	g.updateParticles()
	g.updateSpawning()
	g.updateLeveling()

	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State()}
}

// State returns the externally visible run state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		Combo:    g.combo,
		Level:    g.level,
		Currency: g.currency,
		GameOver: g.phase == phaseGameOver,
		Paused:   g.phase == phasePaused,
	}
}

// Totals returns the progression aggregate. Meaningful after game over, but
// safe to read any time.
func (g *Game) Totals() economy.RunTotals { return g.totals }

// PerformanceScore returns the current 0-10 adaptive-difficulty score.
func (g *Game) PerformanceScore() float64 { return g.perfScore }

// Overcharge returns the meter fill (0-100) and whether a 2x window is open.
func (g *Game) Overcharge() (int, bool) {
	return g.overchargeMeter, g.tick < g.overchargeUntil
}

// ShieldCharges returns remaining miss-absorbing charges.
func (g *Game) ShieldCharges() int { return g.shieldCharges }

// DashCharges returns remaining dash charges and whether a dash is running.
func (g *Game) DashCharges() (int, bool) { return g.dash.charges, g.dash.active }

// ActiveAbilities returns running timed abilities for the HUD.
func (g *Game) ActiveAbilities() []Ability { return g.abilities.ActiveList(g.tick) }

// PoolMetrics reports entity pool health for diagnostics.
func (g *Game) PoolMetrics() (items, projectiles, powerups, particles pool.Metrics) {
	return g.items.Metrics(), g.projectiles.Metrics(), g.powerups.Metrics(), g.particles.Metrics()
}

// --- Step 1: catcher movement, dash, overcharge activation ---

func (g *Game) updateCatcher(in core.InputFrame) {
	leftHeld, rightHeld := in.Held(core.ActionLeft), in.Held(core.ActionRight)
	leftPressed, rightPressed := in.Pressed(core.ActionLeft), in.Pressed(core.ActionRight)
	if g.abilities.Active(AbilityGlitch, g.tick) {
		leftHeld, rightHeld = rightHeld, leftHeld
		leftPressed, rightPressed = rightPressed, leftPressed
	}

	if leftPressed {
		g.dash.tap(-1, g.tick, g.cfg.Dash)
	}
	if rightPressed {
		g.dash.tap(+1, g.tick, g.cfg.Dash)
	}

	dashHeld := (g.dash.dir < 0 && leftHeld) || (g.dash.dir > 0 && rightHeld)
	g.dash.update(g.tick, dashHeld, g.cfg.Dash)

	dir := 0
	if leftHeld {
		dir--
	}
	if rightHeld {
		dir++
	}
	if g.dash.active {
		dir = g.dash.dir
	}

	speed := g.cfg.Catcher.Speed * g.bonuses.Speed
	if g.dash.active {
		speed *= g.cfg.Dash.SpeedMultiplier
	}
	g.catcherX += float64(dir) * speed * g.dt

	half := float64(g.cfg.Catcher.Width) / 2
	g.catcherX = core.ClampF(g.catcherX, half, float64(g.rt.ScreenW-1)-half)

	if in.Pressed(core.ActionOvercharge) && g.overchargeMeter >= 100 {
		g.overchargeMeter = 0
		g.overchargeUntil = g.tick + g.cfg.Gameplay.OverchargeDurationTicks
	}
}

// --- Step 1b: weapon ---

func (g *Game) updateWeapon(in core.InputFrame) {
	s, fire := g.weapon.update(g.tick, in.Pressed(core.ActionFire), in.Held(core.ActionFire), g.cfg.Weapon)
	if !fire {
		return
	}

	p := g.projectiles.Acquire()
	p.Pos = core.Vec2{X: g.catcherX, Y: g.catcherY - 1}
	p.Vel = core.Vec2{Y: -g.cfg.Weapon.ProjectileSpeed}
	p.Charge = s.charge
	if g.loadout.Piercing {
		p.Flags |= FlagPiercing
	}
	if g.loadout.Explosive {
		p.Flags |= FlagExplosive
	}
	if g.loadout.Chain {
		p.Flags |= FlagChain
	}
	p.Glyph = '↑'
	p.Active = true
	p.Visible = true
}

// --- Step 2: projectiles vs bombs ---

func (g *Game) updateProjectiles() {
	g.released = g.released[:0]
	for _, p := range g.projectiles.Active() {
		p.Pos.Y += p.Vel.Y * g.dt
		if p.Pos.Y < 0 {
			g.released = append(g.released, p)
			continue
		}

		bomb := g.findBombHit(p)
		if bomb == nil {
			continue
		}
		g.detonate(p, bomb)
		if !p.Flags.Has(FlagPiercing) {
			g.released = append(g.released, p)
		}
	}
	for _, p := range g.released {
		g.projectiles.Release(p)
	}
}

// findBombHit returns the first active bomb within the hit window of the
// projectile, by per-axis coordinate delta.
func (g *Game) findBombHit(p *Entity) *Entity {
	r := g.cfg.Weapon.HitRadius
	for _, it := range g.items.Active() {
		if it.Kind != ItemBomb {
			continue
		}
		if math.Abs(it.Pos.X-p.Pos.X) <= r && math.Abs(it.Pos.Y-p.Pos.Y) <= r {
			return it
		}
	}
	return nil
}

// detonate destroys the struck bomb and cascades per the projectile's
// capabilities: explosive area damage around the impact, then chain hops to
// nearby bombs up to the configured depth.
func (g *Game) detonate(p *Entity, bomb *Entity) {
	destroyed := []*Entity{bomb}

	if p.Flags.Has(FlagExplosive) || p.Charge > 0 {
		radius := g.cfg.Weapon.AoeBaseRadius +
			(g.cfg.Weapon.AoeMaxRadius-g.cfg.Weapon.AoeBaseRadius)*p.Charge
		for _, it := range g.items.Active() {
			if it.Kind != ItemBomb || it == bomb {
				continue
			}
			if it.Pos.DistanceTo(bomb.Pos) <= radius {
				destroyed = append(destroyed, it)
			}
		}
	}

	if p.Flags.Has(FlagChain) {
		from := bomb
		for hop := 0; hop < g.cfg.Weapon.ChainDepth; hop++ {
			next := g.nearestBomb(from.Pos, g.cfg.Weapon.ChainRadius, destroyed)
			if next == nil {
				break
			}
			destroyed = append(destroyed, next)
			from = next
		}
	}

	for _, b := range destroyed {
		g.score += g.cfg.Weapon.BombBonus
		g.totals.BombsDestroyed++
		g.spawnBurst(b.Pos, core.ColorRed, 6)
		g.items.Release(b)
	}
}

// nearestBomb finds the closest active bomb within radius of pos that is not
// already claimed.
func (g *Game) nearestBomb(pos core.Vec2, radius float64, claimed []*Entity) *Entity {
	var best *Entity
	bestDist := radius
	for _, it := range g.items.Active() {
		if it.Kind != ItemBomb {
			continue
		}
		taken := false
		for _, c := range claimed {
			if c == it {
				taken = true
				break
			}
		}
		if taken {
			continue
		}
		if d := it.Pos.DistanceTo(pos); d <= bestDist {
			best = it
			bestDist = d
		}
	}
	return best
}

// --- Step 3: item advance ---

// chaosActive reports whether the chaos-mode surge applies this tick.
func (g *Game) chaosActive() bool {
	return g.params.permanentChaos || g.tick < g.chaosUntil
}

// fallMultiplier compounds every live fall-speed modifier multiplicatively.
func (g *Game) fallMultiplier() float64 {
	m := 1.0
	if g.abilities.Active(AbilitySlowMotion, g.tick) {
		m *= g.cfg.Abilities.SlowMotionFactor
	}
	if g.abilities.Active(AbilityTimeWarp, g.tick) {
		m *= g.cfg.Abilities.TimeWarpFactor
	}
	if g.abilities.Active(AbilityFreeze, g.tick) {
		m *= g.cfg.Abilities.FreezeFactor
	}
	if g.chaosActive() {
		m *= g.cfg.Gameplay.ChaosSpeedMult
	}
	return m
}

func (g *Game) updateItems() {
	catcher := core.Vec2{X: g.catcherX, Y: g.catcherY}
	mult := g.fallMultiplier()
	blackHole := g.abilities.Active(AbilityBlackHole, g.tick)
	magnet := g.abilities.Active(AbilityMagnet, g.tick) || g.loadout.PassiveMagnet
	ac := g.cfg.Abilities

	g.released = g.released[:0]
	for _, it := range g.items.Active() {
		if blackHole && it.Kind != ItemBomb {
			d := it.Pos.DistanceTo(catcher)
			if d <= ac.BlackHoleInner {
				g.catchItem(it)
				g.released = append(g.released, it)
				continue
			}
			if d <= ac.BlackHoleRadius {
				pull := catcher.Sub(it.Pos).Normalized().Scale(ac.BlackHolePull * g.dt)
				it.Pos = it.Pos.Add(pull)
			}
		}

		if magnet && it.Kind != ItemBomb && it.Pos.DistanceTo(catcher) <= ac.MagnetRadius {
			step := ac.MagnetPull * g.dt
			dx := g.catcherX - it.Pos.X
			it.Pos.X += core.ClampF(dx, -step, step)
		}

		it.Pos.Y += it.Speed * mult * g.dt
	}
	for _, it := range g.released {
		g.items.Release(it)
	}
}

// --- Step 4: catch resolution ---

func (g *Game) resolveCatches() {
	g.released = g.released[:0]
	for _, it := range g.items.Active() {
		if !g.inCatchZone(it) {
			continue
		}
		g.catchItem(it)
		g.released = append(g.released, it)
		if g.phase == phaseGameOver {
			break
		}
	}
	for _, it := range g.released {
		g.items.Release(it)
	}
}

// inCatchZone applies the mode's catch geometry: a rectangle around the
// catcher, or a circle for precision-style modes. Giant items get extra
// tolerance either way.
func (g *Game) inCatchZone(it *Entity) bool {
	giant := 0.0
	if it.Kind == ItemGiant {
		giant = g.cfg.Catcher.GiantBonus
	}

	if g.params.shape == catchCircle {
		return it.Pos.DistanceTo(core.Vec2{X: g.catcherX, Y: g.catcherY}) <= g.params.catchRadius+giant
	}

	halfW := float64(g.cfg.Catcher.Width)/2 + g.cfg.Catcher.CatchToleranceX + giant
	return math.Abs(it.Pos.X-g.catcherX) <= halfW &&
		math.Abs(it.Pos.Y-g.catcherY) <= g.cfg.Catcher.CatchToleranceY+giant
}

// catchItem dispatches a caught item. Special kinds trigger status effects
// without touching the combo; bombs hurt unless a converter is running;
// everything else scores.
func (g *Game) catchItem(it *Entity) {
	switch it.Kind {
	case ItemBomb:
		if g.abilities.Active(AbilityConverter, g.tick) {
			g.scoreCatch(g.cfg.Items.ValueGold, ItemGold)
			g.spawnBurst(it.Pos, core.ColorYellow, 8)
			return
		}
		g.combo = 0
		g.spawnBurst(it.Pos, core.ColorRed, 10)
		g.loseLife()

	case ItemFreeze:
		g.grantAbility(AbilityFreeze)
		g.totals.ItemsCaught++
	case ItemGlitch:
		g.grantAbility(AbilityGlitch)
		g.totals.ItemsCaught++
	case ItemMultiplier:
		g.grantAbility(AbilityMultiplier)
		g.totals.ItemsCaught++
	case ItemVirus:
		g.grantAbility(AbilityVirus)
		g.totals.ItemsCaught++
	case ItemHealth:
		g.lives = core.Min(g.lives+1, g.cfg.Gameplay.MaxLives)
		g.totals.ItemsCaught++
		g.spawnBurst(it.Pos, core.ColorGreen, 6)
	case ItemMystery:
		g.resolveMystery(it)

	default:
		g.scoreCatch(it.Value, it.Kind)
		g.spawnBurst(it.Pos, colorForKind(it.Kind), 6)
	}
}

// resolveMystery rolls the mystery item's outcome: a flat score catch or one
// of a few random timed abilities.
func (g *Game) resolveMystery(it *Entity) {
	switch g.rng.Intn(4) {
	case 0:
		g.scoreCatch(g.cfg.Items.ValueSilver, ItemSilver)
	case 1:
		g.grantAbility(AbilityMagnet)
		g.totals.ItemsCaught++
	case 2:
		g.grantAbility(AbilitySlowMotion)
		g.totals.ItemsCaught++
	default:
		g.grantAbility(AbilityMultiplier)
		g.totals.ItemsCaught++
	}
	g.spawnBurst(it.Pos, core.ColorMagenta, 8)
}

func (g *Game) grantAbility(a Ability) {
	g.abilities.Grant(a, g.tick+durationFor(a, g.cfg.Abilities))
}

// scoreCatch applies the full scoring pipeline for a scoring catch.
func (g *Game) scoreCatch(value float64, kind ItemKind) {
	g.combo++
	if g.combo > g.maxCombo {
		g.maxCombo = g.combo
	}
	g.totals.ItemsCaught++
	if kind == ItemGold {
		g.totals.GoldCaught++
	}

	g.overchargeMeter = core.Min(100, g.overchargeMeter+g.cfg.Gameplay.OverchargePerCatch)

	g.perfTracker.RecordCatch(g.tick, value)
	g.perfScore = g.perfTracker.Score(g.tick, g.combo)

	mult := 1.0
	if g.abilities.Active(AbilityMultiplier, g.tick) {
		mult *= g.cfg.Abilities.MultiplierValue
	}
	if g.abilities.Active(AbilityVirus, g.tick) {
		mult *= g.cfg.Abilities.VirusFactor
	}

	pts := economy.Points(economy.ScoreInput{
		ItemValue:       value,
		Level:           g.level,
		Combo:           g.combo,
		ScoreMultiplier: mult,
		Overcharge:      g.tick < g.overchargeUntil,
		EquipmentBonus:  g.loadout.ScoreBonus,
		ComboLevelBonus: g.bonuses.Combo,
	})
	g.score += pts
	g.currency += economy.Currency(pts, g.bonuses.Currency)
}

func (g *Game) loseLife() {
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.gameOver()
	}
}

func (g *Game) gameOver() {
	g.phase = phaseGameOver
	g.totals.Score = g.score
	g.totals.MaxCombo = g.maxCombo
	g.totals.ElapsedSeconds = g.tick / g.rt.TickRate
}

// --- Step 5: miss resolution ---

func (g *Game) resolveMisses() {
	if g.phase != phasePlaying {
		return
	}
	floor := g.catcherY + g.cfg.Catcher.CatchToleranceY + 1

	g.released = g.released[:0]
	for _, it := range g.items.Active() {
		if it.Pos.Y <= floor {
			continue
		}
		g.released = append(g.released, it)

		// A bomb slipping past is a dodge, not a miss.
		if it.Kind == ItemBomb {
			continue
		}

		if g.shieldCharges > 0 {
			g.shieldCharges--
			g.spawnBurst(core.Vec2{X: it.Pos.X, Y: g.catcherY}, core.ColorCyan, 4)
			continue
		}

		g.combo = 0
		g.totals.ItemsMissed++
		g.perfScore = g.perfTracker.Score(g.tick, g.combo)
		g.loseLife()
		if g.phase == phaseGameOver {
			break
		}
	}
	for _, it := range g.released {
		g.items.Release(it)
	}
}

// --- Step 6: power-up pickups ---

func (g *Game) updatePowerups() {
	floor := g.catcherY + g.cfg.Catcher.CatchToleranceY + 1
	halfW := float64(g.cfg.Catcher.Width)/2 +
		g.cfg.Catcher.CatchToleranceX + g.cfg.Catcher.PowerupBonus

	g.released = g.released[:0]
	for _, pu := range g.powerups.Active() {
		pu.Pos.Y += pu.Speed * g.dt

		caught := math.Abs(pu.Pos.X-g.catcherX) <= halfW &&
			math.Abs(pu.Pos.Y-g.catcherY) <= g.cfg.Catcher.CatchToleranceY+g.cfg.Catcher.PowerupBonus
		if caught {
			g.collectPowerup(pu)
			g.released = append(g.released, pu)
			continue
		}
		if pu.Pos.Y > floor {
			g.released = append(g.released, pu) // No penalty for missed pickups
		}
	}
	for _, pu := range g.released {
		g.powerups.Release(pu)
	}
}

func (g *Game) collectPowerup(pu *Entity) {
	if pu.Power == AbilityShield {
		g.shieldCharges += g.cfg.Abilities.ShieldChargesPerPickup
	} else {
		g.grantAbility(pu.Power)
	}
	g.spawnBurst(pu.Pos, core.ColorCyan, 8)
}

// --- Particles ---

func (g *Game) updateParticles() {
	g.released = g.released[:0]
	for _, p := range g.particles.Active() {
		p.Pos = p.Pos.Add(p.Vel.Scale(g.dt))
		if g.tick >= p.DiesAt {
			g.released = append(g.released, p)
		}
	}
	for _, p := range g.released {
		g.particles.Release(p)
	}
}

// spawnBurst emits a radial particle burst, budgeted by the quality signal.
func (g *Game) spawnBurst(pos core.Vec2, color core.Color, count int) {
	n := int(float64(count) * g.quality.ParticleDensity)
	for i := 0; i < n; i++ {
		p := g.particles.Acquire()
		p.Pos = pos
		p.Vel = core.Vec2{
			X: g.rng.Range(-8, 8),
			Y: g.rng.Range(-10, 2),
		}
		p.Glyph = '·'
		p.Color = color
		p.DiesAt = g.tick + 15 + g.rng.Intn(15)
		p.Active = true
		p.Visible = true
	}
}

// --- Step 7: spawn timers and adaptive difficulty ---

// itemSpawnDeadline computes the next item spawn tick from the live spawn
// interval. Performance-based and chaos adjustments re-apply every time a
// deadline is scheduled, so difficulty shifts take effect on the next spawn.
func (g *Game) itemSpawnDeadline() int {
	interval := float64(g.spawnInterval) *
		economy.SpawnAdjustment(g.perfScore) *
		g.params.spawnScale
	if g.chaosActive() {
		interval *= g.cfg.Gameplay.ChaosSpawnMult
	}
	ticks := core.Max(g.cfg.Spawn.MinIntervalTicks, int(interval))
	return g.tick + ticks
}

// maxActiveItems scales the configured cap by the quality signal so degraded
// terminals push fewer live entities.
func (g *Game) maxActiveItems() int {
	n := int(float64(g.cfg.Spawn.MaxActiveItems) * g.quality.ParticleDensity)
	return core.Max(4, n)
}

func (g *Game) updateSpawning() {
	if g.tick >= g.nextItemSpawn {
		if g.items.Metrics().Active < g.maxActiveItems() {
			g.spawnItem()
		}
		g.nextItemSpawn = g.itemSpawnDeadline()
	}

	if g.tick >= g.nextPowerupSpawn {
		g.spawnPowerup()
		g.nextPowerupSpawn = g.tick + g.cfg.Spawn.PowerupIntervalTicks
	}
}

func (g *Game) spawnItem() {
	kind := g.rollItemKind()

	it := g.items.Acquire()
	it.Kind = kind
	it.Value = g.itemValue(kind)
	it.Pos = core.Vec2{X: g.rng.Range(1, float64(g.rt.ScreenW-1)), Y: 1}
	it.Speed = g.baseFallSpeed * economy.SpeedAdjustment(g.perfScore) * g.rng.Range(0.9, 1.15)
	it.Glyph = kind.Glyph()
	it.Active = true
	it.Visible = true
}

// rollItemKind picks a kind by configured weight.
func (g *Game) rollItemKind() ItemKind {
	ic := g.cfg.Items
	weights := [itemKindCount]int{
		ItemRegular:    ic.WeightRegular,
		ItemSilver:     ic.WeightSilver,
		ItemGold:       ic.WeightGold,
		ItemGiant:      ic.WeightGiant,
		ItemBomb:       ic.WeightBomb,
		ItemFreeze:     ic.WeightFreeze,
		ItemHealth:     ic.WeightHealth,
		ItemMystery:    ic.WeightMystery,
		ItemGlitch:     ic.WeightGlitch,
		ItemMultiplier: ic.WeightMultiplier,
		ItemVirus:      ic.WeightVirus,
	}

	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return ItemRegular
	}

	roll := g.rng.Intn(total)
	for kind, w := range weights {
		if roll < w {
			return ItemKind(kind)
		}
		roll -= w
	}
	return ItemRegular
}

func (g *Game) itemValue(kind ItemKind) float64 {
	ic := g.cfg.Items
	switch kind {
	case ItemRegular:
		return ic.ValueRegular * g.params.valueScale
	case ItemSilver:
		return ic.ValueSilver * g.params.valueScale
	case ItemGold:
		return ic.ValueGold * g.params.valueScale
	case ItemGiant:
		return ic.ValueGiant * g.params.valueScale
	default:
		return 0
	}
}

// spawnPowerup drops a random pickup. Pickups fall slower than items so the
// player can commit to a detour.
func (g *Game) spawnPowerup() {
	kinds := [...]Ability{
		AbilityMagnet, AbilityShield, AbilitySlowMotion,
		AbilityTimeWarp, AbilityBlackHole, AbilityConverter,
	}

	pu := g.powerups.Acquire()
	pu.Power = kinds[g.rng.Intn(len(kinds))]
	pu.Pos = core.Vec2{X: g.rng.Range(1, float64(g.rt.ScreenW-1)), Y: 1}
	pu.Speed = g.baseFallSpeed * 0.75
	pu.Glyph = pu.Power.Glyph()
	pu.Active = true
	pu.Visible = true
}

// --- Step 8: level-ups and chaos mode ---

func (g *Game) updateLeveling() {
	if g.phase != phasePlaying {
		return
	}
	gp := g.cfg.Gameplay
	for g.score >= g.level*gp.LevelScoreStep {
		g.level++
		g.baseFallSpeed += gp.SpeedStepPerLevel
		g.spawnInterval = core.Max(g.cfg.Spawn.MinIntervalTicks, g.spawnInterval-gp.SpawnStepPerLevel)

		if gp.ChaosEveryLevels > 0 && g.level%gp.ChaosEveryLevels == 0 {
			g.chaosUntil = g.tick + gp.ChaosDurationTicks
		}
	}
}

// colorForKind maps scoring item kinds to their display color.
func colorForKind(kind ItemKind) core.Color {
	switch kind {
	case ItemSilver:
		return core.ColorWhite
	case ItemGold:
		return core.ColorYellow
	case ItemGiant:
		return core.ColorMagenta
	case ItemBomb:
		return core.ColorRed
	case ItemFreeze:
		return core.ColorCyan
	case ItemHealth:
		return core.ColorGreen
	default:
		return core.ColorBlue
	}
}
