// Package config provides YAML-based game configuration loading and
// difficulty presets for Skyfall.
package config

// GameConfig contains all tunables for a Skyfall run.
// Speeds are in cells per second; durations and intervals in ticks at the
// nominal 60 ticks/second rate.
type GameConfig struct {
	Catcher   CatcherConfig   `yaml:"catcher"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Items     ItemsConfig     `yaml:"items"`
	Gameplay  GameplayConfig  `yaml:"gameplay"`
	Abilities AbilitiesConfig `yaml:"abilities"`
	Dash      DashConfig      `yaml:"dash"`
	Weapon    WeaponConfig    `yaml:"weapon"`
	Pool      PoolConfig      `yaml:"pool"`
	Quality   QualityConfig   `yaml:"quality"`
}

// CatcherConfig defines the player's catcher.
type CatcherConfig struct {
	Width           int     `yaml:"width"`
	Speed           float64 `yaml:"speed"`
	CatchToleranceX float64 `yaml:"catch_tolerance_x"` // Extra cells past the catcher edges
	CatchToleranceY float64 `yaml:"catch_tolerance_y"`
	GiantBonus      float64 `yaml:"giant_bonus"`       // Extra tolerance for giant items
	PowerupBonus    float64 `yaml:"powerup_bonus"`     // Extra tolerance for power-up pickups
}

// SpawnConfig defines item and power-up spawn pacing.
type SpawnConfig struct {
	IntervalTicks        int `yaml:"interval_ticks"`
	MinIntervalTicks     int `yaml:"min_interval_ticks"`
	PowerupIntervalTicks int `yaml:"powerup_interval_ticks"`
	MaxActiveItems       int `yaml:"max_active_items"` // Scaled down by the quality signal
}

// ItemsConfig defines base fall speed, per-kind score values and spawn
// weights (relative, higher = more common).
type ItemsConfig struct {
	BaseFallSpeed float64 `yaml:"base_fall_speed"`

	ValueRegular float64 `yaml:"value_regular"`
	ValueSilver  float64 `yaml:"value_silver"`
	ValueGold    float64 `yaml:"value_gold"`
	ValueGiant   float64 `yaml:"value_giant"`

	WeightRegular    int `yaml:"weight_regular"`
	WeightSilver     int `yaml:"weight_silver"`
	WeightGold       int `yaml:"weight_gold"`
	WeightGiant      int `yaml:"weight_giant"`
	WeightBomb       int `yaml:"weight_bomb"`
	WeightFreeze     int `yaml:"weight_freeze"`
	WeightHealth     int `yaml:"weight_health"`
	WeightMystery    int `yaml:"weight_mystery"`
	WeightGlitch     int `yaml:"weight_glitch"`
	WeightMultiplier int `yaml:"weight_multiplier"`
	WeightVirus      int `yaml:"weight_virus"`
}

// GameplayConfig defines lives, leveling and the chaos-mode surge.
type GameplayConfig struct {
	Lives              int     `yaml:"lives"`
	MaxLives           int     `yaml:"max_lives"`
	LevelScoreStep     int     `yaml:"level_score_step"`      // Score per level-up
	SpeedStepPerLevel  float64 `yaml:"speed_step_per_level"`  // Added to base fall speed
	SpawnStepPerLevel  int     `yaml:"spawn_step_per_level"`  // Ticks removed from spawn interval
	ChaosEveryLevels   int     `yaml:"chaos_every_levels"`    // Chaos mode every Nth level
	ChaosDurationTicks int     `yaml:"chaos_duration_ticks"`
	ChaosSpeedMult     float64 `yaml:"chaos_speed_mult"`
	ChaosSpawnMult     float64 `yaml:"chaos_spawn_mult"` // Multiplies spawn interval (<1 = denser)

	OverchargePerCatch      int `yaml:"overcharge_per_catch"`      // Meter gain per catch (0-100 scale)
	OverchargeDurationTicks int `yaml:"overcharge_duration_ticks"` // 2x window length
}

// AbilitiesConfig defines timed power-up effects. Durations are per type.
type AbilitiesConfig struct {
	MagnetTicks     int `yaml:"magnet_ticks"`
	SlowMotionTicks int `yaml:"slow_motion_ticks"`
	TimeWarpTicks   int `yaml:"time_warp_ticks"`
	BlackHoleTicks  int `yaml:"black_hole_ticks"`
	ConverterTicks  int `yaml:"converter_ticks"`
	FreezeTicks     int `yaml:"freeze_ticks"`
	GlitchTicks     int `yaml:"glitch_ticks"`
	MultiplierTicks int `yaml:"multiplier_ticks"`
	VirusTicks      int `yaml:"virus_ticks"`

	MagnetRadius    float64 `yaml:"magnet_radius"`
	MagnetPull      float64 `yaml:"magnet_pull"` // Lateral attraction, cells/s
	BlackHoleRadius float64 `yaml:"black_hole_radius"`
	BlackHoleInner  float64 `yaml:"black_hole_inner"` // Auto-catch radius
	BlackHolePull   float64 `yaml:"black_hole_pull"`

	SlowMotionFactor float64 `yaml:"slow_motion_factor"` // Fall-speed multiplier while active
	TimeWarpFactor   float64 `yaml:"time_warp_factor"`
	FreezeFactor     float64 `yaml:"freeze_factor"`
	MultiplierValue  float64 `yaml:"multiplier_value"` // Score multiplier while active
	VirusFactor      float64 `yaml:"virus_factor"`     // Score multiplier while infected

	ShieldChargesPerPickup int `yaml:"shield_charges_per_pickup"`
}

// DashConfig defines the double-tap dash.
type DashConfig struct {
	TapWindowTicks   int     `yaml:"tap_window_ticks"` // Max ticks between taps
	CooldownTicks    int     `yaml:"cooldown_ticks"`
	Charges          int     `yaml:"charges"`
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`
	MaxDurationTicks int     `yaml:"max_duration_ticks"`
}

// WeaponConfig defines the ranged weapon.
type WeaponConfig struct {
	Mode string `yaml:"mode"` // "rapid" or "charge"

	RapidCooldownTicks   int `yaml:"rapid_cooldown_ticks"`
	ChargeTicks          int `yaml:"charge_ticks"`           // Ticks to reach full charge
	ReleaseCooldownTicks int `yaml:"release_cooldown_ticks"` // Cooldown after a charged release

	ProjectileSpeed float64 `yaml:"projectile_speed"`
	HitRadius       float64 `yaml:"hit_radius"`      // Bomb proximity window
	ChainRadius     float64 `yaml:"chain_radius"`    // Chain-capability search radius
	ChainDepth      int     `yaml:"chain_depth"`     // Max chain hops
	AoeBaseRadius   float64 `yaml:"aoe_base_radius"` // Explosive radius at zero charge
	AoeMaxRadius    float64 `yaml:"aoe_max_radius"`  // Explosive radius at full charge
	BombBonus       int     `yaml:"bomb_bonus"`      // Flat score per destroyed bomb
}

// PoolConfig sizes the entity pools.
type PoolConfig struct {
	Items            int    `yaml:"items"`
	Projectiles      int    `yaml:"projectiles"`
	Powerups         int    `yaml:"powerups"`
	Particles        int    `yaml:"particles"`
	InitialSize      int    `yaml:"initial_size"`
	ReportIntervalMS int    `yaml:"report_interval_ms"`
	Policy           string `yaml:"policy"` // "evict_oldest" or "grow"
}

// QualityConfig defines the adaptive-quality FPS thresholds.
type QualityConfig struct {
	LowFPS  float64 `yaml:"low_fps"`
	HighFPS float64 `yaml:"high_fps"`
}
