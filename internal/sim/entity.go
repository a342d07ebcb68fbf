// Package sim implements the Skyfall real-time simulation core: the per-tick
// entity lifecycle, catch/miss resolution, ability and weapon state machines,
// and the adaptive difficulty loop. All state mutation happens inside Step,
// sequentially and deterministically given the tick's input snapshot.
package sim

import "github.com/skyfall-arcade/skyfall/internal/core"

// ItemKind tags a falling item.
type ItemKind int

const (
	ItemRegular ItemKind = iota
	ItemSilver
	ItemGold
	ItemGiant
	ItemBomb
	ItemFreeze
	ItemHealth
	ItemMystery
	ItemGlitch
	ItemMultiplier
	ItemVirus
	itemKindCount // Sentinel
)

// String returns the item kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemRegular:
		return "regular"
	case ItemSilver:
		return "silver"
	case ItemGold:
		return "gold"
	case ItemGiant:
		return "giant"
	case ItemBomb:
		return "bomb"
	case ItemFreeze:
		return "freeze"
	case ItemHealth:
		return "health"
	case ItemMystery:
		return "mystery"
	case ItemGlitch:
		return "glitch"
	case ItemMultiplier:
		return "multiplier"
	case ItemVirus:
		return "virus"
	default:
		return "?"
	}
}

// Glyph returns the display character for an item kind.
func (k ItemKind) Glyph() rune {
	switch k {
	case ItemRegular:
		return '●'
	case ItemSilver:
		return '◆'
	case ItemGold:
		return '★'
	case ItemGiant:
		return '◉'
	case ItemBomb:
		return '✹'
	case ItemFreeze:
		return '❄'
	case ItemHealth:
		return '♥'
	case ItemMystery:
		return '?'
	case ItemGlitch:
		return '▒'
	case ItemMultiplier:
		return '×'
	case ItemVirus:
		return '§'
	default:
		return '·'
	}
}

// ProjectileFlags mark special projectile capabilities granted by the
// player's loadout.
type ProjectileFlags uint8

const (
	FlagPiercing  ProjectileFlags = 1 << iota // Survives a bomb hit
	FlagExplosive                             // Area-hits bombs around the impact
	FlagChain                                 // Jumps to the nearest other bomb
)

// Has returns true if all given flags are set.
func (f ProjectileFlags) Has(flag ProjectileFlags) bool {
	return f&flag == flag
}

// Entity is one pooled simulation object: a falling item, a projectile, a
// power-up pickup, or a decorative particle. Entities are plain data held in
// pool slots; the renderer holds only the slot and reads position and
// visibility from here each frame. Entities are never individually
// heap-allocated during steady-state play.
type Entity struct {
	ID int // Slot identity, stable across recycles

	Pos core.Vec2
	Vel core.Vec2

	Kind    ItemKind        // Items
	Power   Ability         // Power-up pickups
	Flags   ProjectileFlags // Projectiles
	Charge  float64         // Projectile AoE charge fraction (0..1)
	Speed   float64         // Scalar fall speed, cells/s
	Value   float64         // Score contribution
	DiesAt  int             // Particle expiry tick
	Glyph   rune            // Particle glyph
	Color   core.Color      // Particle color
	Active  bool
	Visible bool
}

// offscreen is where reset entities are parked, far outside any playfield.
const offscreen = -1000

// resetEntity zeroes all gameplay-relevant fields of a recycled entity.
// Used as the reset function for every pool.
func resetEntity(e *Entity) {
	e.Pos = core.Vec2{X: offscreen, Y: offscreen}
	e.Vel = core.Vec2{}
	e.Kind = ItemRegular
	e.Power = 0
	e.Flags = 0
	e.Charge = 0
	e.Speed = 0
	e.Value = 0
	e.DiesAt = 0
	e.Glyph = 0
	e.Color = core.ColorDefault
	e.Active = false
	e.Visible = false
}
