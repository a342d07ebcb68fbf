package sim

import "github.com/skyfall-arcade/skyfall/internal/config"

// Ability identifies a timed status effect. Power-up pickups and special
// items both grant abilities; the only difference is how they arrive.
type Ability int

const (
	AbilityNone Ability = iota
	AbilityMagnet
	AbilityShield // Charge-based, never timed
	AbilitySlowMotion
	AbilityTimeWarp
	AbilityBlackHole
	AbilityConverter
	AbilityFreeze
	AbilityGlitch
	AbilityMultiplier
	AbilityVirus
	abilityCount // Sentinel
)

// String returns the ability name.
func (a Ability) String() string {
	switch a {
	case AbilityMagnet:
		return "magnet"
	case AbilityShield:
		return "shield"
	case AbilitySlowMotion:
		return "slowmo"
	case AbilityTimeWarp:
		return "timewarp"
	case AbilityBlackHole:
		return "blackhole"
	case AbilityConverter:
		return "converter"
	case AbilityFreeze:
		return "freeze"
	case AbilityGlitch:
		return "glitch"
	case AbilityMultiplier:
		return "multiplier"
	case AbilityVirus:
		return "virus"
	default:
		return "none"
	}
}

// Glyph returns the display character for a power-up pickup.
func (a Ability) Glyph() rune {
	switch a {
	case AbilityMagnet:
		return 'M'
	case AbilityShield:
		return 'S'
	case AbilitySlowMotion:
		return 'T'
	case AbilityTimeWarp:
		return 'W'
	case AbilityBlackHole:
		return 'B'
	case AbilityConverter:
		return 'C'
	default:
		return '◇'
	}
}

// AbilitySet tracks ability expiry deadlines in ticks. Granting an ability
// that is already active extends it to the later deadline; there is no
// stacking of effect strength. Deadlines, not counters: pausing the
// simulation pauses the tick, so every ability survives a pause untouched.
type AbilitySet struct {
	deadline [abilityCount]int
}

// Grant activates an ability until the given tick, keeping an existing later
// deadline if the ability is already running.
func (s *AbilitySet) Grant(a Ability, until int) {
	if a <= AbilityNone || a >= abilityCount {
		return
	}
	if until > s.deadline[a] {
		s.deadline[a] = until
	}
}

// Active reports whether the ability is running at the given tick.
func (s *AbilitySet) Active(a Ability, tick int) bool {
	if a <= AbilityNone || a >= abilityCount {
		return false
	}
	return tick < s.deadline[a]
}

// Remaining returns ticks left on an ability, zero if inactive.
func (s *AbilitySet) Remaining(a Ability, tick int) int {
	if !s.Active(a, tick) {
		return 0
	}
	return s.deadline[a] - tick
}

// ActiveList returns all running abilities at the given tick, in a fixed
// order. Used by the HUD.
func (s *AbilitySet) ActiveList(tick int) []Ability {
	var out []Ability
	for a := AbilityNone + 1; a < abilityCount; a++ {
		if s.Active(a, tick) {
			out = append(out, a)
		}
	}
	return out
}

// Clear drops every ability.
func (s *AbilitySet) Clear() {
	s.deadline = [abilityCount]int{}
}

// durationFor maps an ability to its configured duration in ticks.
func durationFor(a Ability, cfg config.AbilitiesConfig) int {
	switch a {
	case AbilityMagnet:
		return cfg.MagnetTicks
	case AbilitySlowMotion:
		return cfg.SlowMotionTicks
	case AbilityTimeWarp:
		return cfg.TimeWarpTicks
	case AbilityBlackHole:
		return cfg.BlackHoleTicks
	case AbilityConverter:
		return cfg.ConverterTicks
	case AbilityFreeze:
		return cfg.FreezeTicks
	case AbilityGlitch:
		return cfg.GlitchTicks
	case AbilityMultiplier:
		return cfg.MultiplierTicks
	case AbilityVirus:
		return cfg.VirusTicks
	default:
		return 0
	}
}

// dashState is the double-tap dash machine. A dash starts when the same
// direction is pressed twice within the tap window, provided the cooldown
// has elapsed and a charge remains. It ends when the direction key is
// released or the max duration runs out. Charges refill to full once the
// player is out of the dash and past the cooldown.
type dashState struct {
	lastTapTick int
	lastTapDir  int // -1 left, +1 right, 0 none

	active    bool
	dir       int
	startedAt int

	charges       int
	cooldownUntil int
}

func (d *dashState) reset(cfg config.DashConfig) {
	*d = dashState{charges: cfg.Charges}
}

// tap registers a direction press and reports whether a dash starts.
func (d *dashState) tap(dir, tick int, cfg config.DashConfig) bool {
	doubleTap := d.lastTapDir == dir && tick-d.lastTapTick <= cfg.TapWindowTicks
	d.lastTapDir = dir
	d.lastTapTick = tick

	if !doubleTap || d.active || d.charges <= 0 || tick < d.cooldownUntil {
		return false
	}

	d.active = true
	d.dir = dir
	d.startedAt = tick
	d.charges--
	return true
}

// update advances the dash machine one tick. held reports whether the dash
// direction key is still down.
func (d *dashState) update(tick int, held bool, cfg config.DashConfig) {
	if d.active {
		if !held || tick-d.startedAt >= cfg.MaxDurationTicks {
			d.active = false
			if d.charges <= 0 {
				d.cooldownUntil = tick + cfg.CooldownTicks
			}
		}
		return
	}

	// Refill only once idle and out of cooldown.
	if d.charges <= 0 && tick >= d.cooldownUntil {
		d.charges = cfg.Charges
	}
}
