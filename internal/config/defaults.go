package config

import (
	_ "embed"
)

//go:embed defaults/skyfall.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration, used when no YAML
// file can be loaded at all.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Catcher: CatcherConfig{
			Width:           7,
			Speed:           30,
			CatchToleranceX: 1,
			CatchToleranceY: 1,
			GiantBonus:      2,
			PowerupBonus:    2,
		},
		Spawn: SpawnConfig{
			IntervalTicks:        60,
			MinIntervalTicks:     18,
			PowerupIntervalTicks: 540,
			MaxActiveItems:       24,
		},
		Items: ItemsConfig{
			BaseFallSpeed: 8,

			ValueRegular: 10,
			ValueSilver:  25,
			ValueGold:    50,
			ValueGiant:   30,

			WeightRegular:    40,
			WeightSilver:     15,
			WeightGold:       6,
			WeightGiant:      6,
			WeightBomb:       12,
			WeightFreeze:     4,
			WeightHealth:     3,
			WeightMystery:    4,
			WeightGlitch:     3,
			WeightMultiplier: 4,
			WeightVirus:      3,
		},
		Gameplay: GameplayConfig{
			Lives:              3,
			MaxLives:           5,
			LevelScoreStep:     500,
			SpeedStepPerLevel:  1.2,
			SpawnStepPerLevel:  4,
			ChaosEveryLevels:   3,
			ChaosDurationTicks: 600,
			ChaosSpeedMult:     1.5,
			ChaosSpawnMult:     0.5,

			OverchargePerCatch:      4,
			OverchargeDurationTicks: 360,
		},
		Abilities: AbilitiesConfig{
			MagnetTicks:     600,
			SlowMotionTicks: 480,
			TimeWarpTicks:   480,
			BlackHoleTicks:  420,
			ConverterTicks:  600,
			FreezeTicks:     240,
			GlitchTicks:     300,
			MultiplierTicks: 480,
			VirusTicks:      360,

			MagnetRadius:    12,
			MagnetPull:      25,
			BlackHoleRadius: 14,
			BlackHoleInner:  2,
			BlackHolePull:   35,

			SlowMotionFactor: 0.5,
			TimeWarpFactor:   0.7,
			FreezeFactor:     0.3,
			MultiplierValue:  2,
			VirusFactor:      0.5,

			ShieldChargesPerPickup: 1,
		},
		Dash: DashConfig{
			TapWindowTicks:   18,
			CooldownTicks:    300,
			Charges:          2,
			SpeedMultiplier:  2.5,
			MaxDurationTicks: 30,
		},
		Weapon: WeaponConfig{
			Mode: "rapid",

			RapidCooldownTicks:   24,
			ChargeTicks:          60,
			ReleaseCooldownTicks: 45,

			ProjectileSpeed: 40,
			HitRadius:       1.5,
			ChainRadius:     10,
			ChainDepth:      2,
			AoeBaseRadius:   2,
			AoeMaxRadius:    8,
			BombBonus:       25,
		},
		Pool: PoolConfig{
			Items:            32,
			Projectiles:      16,
			Powerups:         8,
			Particles:        64,
			InitialSize:      8,
			ReportIntervalMS: 2000,
			Policy:           "evict_oldest",
		},
		Quality: QualityConfig{
			LowFPS:  40,
			HighFPS: 58,
		},
	}
}
