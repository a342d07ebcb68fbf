package sim

import "github.com/skyfall-arcade/skyfall/internal/config"

// Weapon firing modes.
const (
	WeaponRapid  = "rapid"
	WeaponCharge = "charge"
)

// weaponState drives the ranged weapon. Rapid mode fires one projectile per
// press, gated by a cooldown. Charge mode accumulates while the fire key is
// held and releases a projectile whose area-of-effect radius scales with the
// charge fraction.
type weaponState struct {
	mode string

	readyAt     int
	charging    bool
	chargeStart int
}

func (w *weaponState) reset(cfg config.WeaponConfig) {
	mode := cfg.Mode
	if mode != WeaponCharge {
		mode = WeaponRapid
	}
	*w = weaponState{mode: mode}
}

// shot describes a projectile the weapon wants spawned this tick.
type shot struct {
	charge float64 // AoE fraction, zero for rapid fire
}

// update advances the weapon one tick and returns a shot to spawn, if any.
// pressed is the fire-key edge, held its level.
func (w *weaponState) update(tick int, pressed, held bool, cfg config.WeaponConfig) (shot, bool) {
	switch w.mode {
	case WeaponCharge:
		if w.charging {
			if held {
				return shot{}, false
			}
			// Release.
			w.charging = false
			w.readyAt = tick + cfg.ReleaseCooldownTicks
			frac := float64(tick-w.chargeStart) / float64(max(cfg.ChargeTicks, 1))
			if frac > 1 {
				frac = 1
			}
			return shot{charge: frac}, true
		}
		if held && tick >= w.readyAt {
			w.charging = true
			w.chargeStart = tick
		}
		return shot{}, false

	default: // Rapid
		if pressed && tick >= w.readyAt {
			w.readyAt = tick + cfg.RapidCooldownTicks
			return shot{}, true
		}
		return shot{}, false
	}
}

// chargeFraction reports charge progress for the HUD, zero when not charging.
func (w *weaponState) chargeFraction(tick int, cfg config.WeaponConfig) float64 {
	if !w.charging {
		return 0
	}
	frac := float64(tick-w.chargeStart) / float64(max(cfg.ChargeTicks, 1))
	if frac > 1 {
		return 1
	}
	return frac
}
