package sim

import "math"

// Snapshot captures the observable run state for determinism testing and
// replay verification. Entity positions are captured as raw float64 bits so
// two runs hash equal only if they are bit-identical.
type Snapshot struct {
	Tick     uint64
	CatcherX uint64 // Float bits
	Phase    int

	Score    int
	Combo    int
	MaxCombo int
	Lives    int
	Level    int
	Currency int

	OverchargeMeter int
	OverchargeUntil int
	ShieldCharges   int
	ChaosUntil      int

	AbilityDeadlines []int

	// Entity records, 5 values each: ID, kind/power tag, X bits, Y bits,
	// speed bits. Order follows pool acquisition order, which is
	// deterministic under a fixed seed.
	ItemCount  int
	ItemData   []uint64
	ShotCount  int
	ShotData   []uint64
	PowerCount int
	PowerData  []uint64

	PerfScore uint64 // Float bits
	RNGState  uint64
}

// Snapshot returns the current run state.
func (g *Game) Snapshot() Snapshot {
	flatten := func(entities []*Entity, tag func(*Entity) uint64) []uint64 {
		data := make([]uint64, 0, len(entities)*5)
		for _, e := range entities {
			data = append(data,
				uint64(e.ID), //#nosec G115 -- IDs are always positive
				tag(e),
				math.Float64bits(e.Pos.X),
				math.Float64bits(e.Pos.Y),
				math.Float64bits(e.Speed),
			)
		}
		return data
	}

	items := g.items.Active()
	shots := g.projectiles.Active()
	powers := g.powerups.Active()

	deadlines := make([]int, abilityCount)
	copy(deadlines, g.abilities.deadline[:])

	return Snapshot{
		Tick:     uint64(g.tick), //#nosec G115 -- tick count is always positive
		CatcherX: math.Float64bits(g.catcherX),
		Phase:    int(g.phase),

		Score:    g.score,
		Combo:    g.combo,
		MaxCombo: g.maxCombo,
		Lives:    g.lives,
		Level:    g.level,
		Currency: g.currency,

		OverchargeMeter: g.overchargeMeter,
		OverchargeUntil: g.overchargeUntil,
		ShieldCharges:   g.shieldCharges,
		ChaosUntil:      g.chaosUntil,

		AbilityDeadlines: deadlines,

		ItemCount:  len(items),
		ItemData:   flatten(items, func(e *Entity) uint64 { return uint64(e.Kind) }), //#nosec G115
		ShotCount:  len(shots),
		ShotData:   flatten(shots, func(e *Entity) uint64 { return uint64(e.Flags) }),
		PowerCount: len(powers),
		PowerData:  flatten(powers, func(e *Entity) uint64 { return uint64(e.Power) }), //#nosec G115

		PerfScore: math.Float64bits(g.perfScore),
		RNGState:  g.rng.State(),
	}
}

// Hash folds the snapshot into a single value for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + snap.CatcherX
	h = h*31 + uint64(snap.Phase)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.MaxCombo)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Currency)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.OverchargeMeter) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.OverchargeUntil) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ShieldCharges)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ChaosUntil)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ItemCount)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ShotCount)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PowerCount)      //#nosec G115 -- hash computation

	for _, v := range snap.AbilityDeadlines {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.ItemData {
		h = h*31 + v
	}
	for _, v := range snap.ShotData {
		h = h*31 + v
	}
	for _, v := range snap.PowerData {
		h = h*31 + v
	}

	h = h*31 + snap.PerfScore
	h = h*31 + snap.RNGState

	return h
}
