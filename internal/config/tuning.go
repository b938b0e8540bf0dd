// Package config provides the tuning data and process-wide settings for the game.
// Tuning values are loaded from YAML so balance can be adjusted without a rebuild.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/nightcorridor/internal/core/dice"
)

// Tuning holds every gameplay constant of the simulation
type Tuning struct {
	Physics  PhysicsConfig             `yaml:"physics"`
	World    WorldConfig               `yaml:"world"`
	Player   PlayerConfig              `yaml:"player"`
	Avatars  []AvatarConfig            `yaml:"avatars"`
	Revolver WeaponConfig              `yaml:"revolver"`
	Beam     BeamConfig                `yaml:"beam"`
	Enemies  map[string]EnemyConfig    `yaml:"enemies"`
	Daughter DaughterConfig            `yaml:"daughter"`
	Comp     CompanionConfig           `yaml:"companion"`
	Effects  EffectsConfig             `yaml:"effects"`
	Director DirectorConfig            `yaml:"director"`
	Drops    DropConfig                `yaml:"drops"`
	Mission  MissionConfig             `yaml:"mission"`
	Dialogue DialogueConfig            `yaml:"dialogue"`
	Score    ScoreConfig               `yaml:"score"`
	Pickups  map[string]PickupConfig   `yaml:"pickups"`
	Props    map[string][]WeightedDrop `yaml:"props"`
}

// PhysicsConfig defines the shared integration parameters
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`        // px/s^2
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // px/s
	MaxDT        float64 `yaml:"max_dt"`         // Upper bound for a frame step (s)
}

// WorldConfig defines the corridor generator
type WorldConfig struct {
	Length       float64 `yaml:"length"`      // Corridor length in px
	GroundY      float64 `yaml:"ground_y"`    // Y of the ground plane
	StartClear   float64 `yaml:"start_clear"` // No obstacles before this X
	ExitMargin   float64 `yaml:"exit_margin"` // Distance from the corridor end to the exit marker
	GapMin       float64 `yaml:"gap_min"`     // Min spacing between obstacles
	GapMax       float64 `yaml:"gap_max"`     // Max spacing between obstacles
	ObstacleMinW float64 `yaml:"obstacle_min_w"`
	ObstacleMaxW float64 `yaml:"obstacle_max_w"`
	ObstacleMinH float64 `yaml:"obstacle_min_h"`
	ObstacleMaxH float64 `yaml:"obstacle_max_h"`
	PropChance   float64 `yaml:"prop_chance"` // Chance of a prop in each gap
	PropSize     float64 `yaml:"prop_size"`
	ViewWidth    float64 `yaml:"view_width"` // Logical screen width used by the camera
}

// PlayerConfig defines avatar-independent player rules
type PlayerConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	SanityDecay       float64 `yaml:"sanity_decay"`        // Background drain per second
	DamageSanityRatio float64 `yaml:"damage_sanity_ratio"` // Sanity lost per point of damage
	InvulnTime        float64 `yaml:"invuln_time"`         // Post-hit invulnerability (s)
	FlinchThreshold   float64 `yaml:"flinch_threshold"`    // Hits at or above this start the invulnerability window
	KnockbackX        float64 `yaml:"knockback_x"`
	KnockbackY        float64 `yaml:"knockback_y"`
	InteractRadius    float64 `yaml:"interact_radius"`
	StartX            float64 `yaml:"start_x"`
}

// AvatarConfig fixes the vitals and mobility of one playable preset
type AvatarConfig struct {
	Name      string  `yaml:"name"`
	HPMax     float64 `yaml:"hp_max"`
	SanityMax float64 `yaml:"sanity_max"`
	Speed     float64 `yaml:"speed"`
	Jump      float64 `yaml:"jump"`
}

// WeaponConfig defines the discrete projectile weapon
type WeaponConfig struct {
	Name        string  `yaml:"name"`
	Cooldown    float64 `yaml:"cooldown"`    // Seconds between shots
	Spread      float64 `yaml:"spread"`      // Max angular deviation (radians)
	SanityCost  float64 `yaml:"sanity_cost"` // Sanity per shot
	Damage      float64 `yaml:"damage"`
	BulletSpeed float64 `yaml:"bullet_speed"`
	BulletLife  float64 `yaml:"bullet_life"`
	BulletSize  float64 `yaml:"bullet_size"`
}

// BeamConfig defines the continuous beam weapon
type BeamConfig struct {
	Name        string  `yaml:"name"`
	DPS         float64 `yaml:"dps"`
	SanityDrain float64 `yaml:"sanity_drain"` // Per second while firing
	Range       float64 `yaml:"range"`
	Width       float64 `yaml:"width"` // Max distance from the beam axis that still hits
	Step        float64 `yaml:"step"`  // Ray-march step
}

// EnemyConfig holds the immutable per-type enemy constants
type EnemyConfig struct {
	HP             float64 `yaml:"hp"`
	Speed          float64 `yaml:"speed"`
	TouchDPS       float64 `yaml:"touch_dps"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Floating       bool    `yaml:"floating"`
	HoverHeight    float64 `yaml:"hover_height"`    // Floating types: height above ground
	BobAmplitude   float64 `yaml:"bob_amplitude"`   // Floating types
	BobFrequency   float64 `yaml:"bob_frequency"`   // Floating types (rad/s)
	DebuffRadius   float64 `yaml:"debuff_radius"`   // Floating types
	DebuffDuration float64 `yaml:"debuff_duration"` // Floating types
	Weight         float64 `yaml:"weight"`          // Spawn weight
	Score          int     `yaml:"score"`
	ShotCooldown   float64 `yaml:"shot_cooldown"` // Elite ranged attack; zero disables it
	ShotDamage     float64 `yaml:"shot_damage"`
	ShotSpeed      float64 `yaml:"shot_speed"`
}

// DaughterConfig defines the rescuable NPC
type DaughterConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Position     float64 `yaml:"position"` // Fraction of the corridor length
	WanderSpeed  float64 `yaml:"wander_speed"`
	WanderRange  float64 `yaml:"wander_range"`
	AvoidRadius  float64 `yaml:"avoid_radius"`
	FleeSpeed    float64 `yaml:"flee_speed"`
	FollowRate   float64 `yaml:"follow_rate"` // Smoothing rate for following
	FollowOffset float64 `yaml:"follow_offset"`
}

// CompanionConfig defines the ally turret
type CompanionConfig struct {
	Cooldown      float64 `yaml:"cooldown"`
	BoostFactor   float64 `yaml:"boost_factor"` // Cooldown multiplier while boosted
	BoostDuration float64 `yaml:"boost_duration"`
	Range         float64 `yaml:"range"`
	Damage        float64 `yaml:"damage"`
	BulletSpeed   float64 `yaml:"bullet_speed"`
	OffsetX       float64 `yaml:"offset_x"`
	OffsetY       float64 `yaml:"offset_y"`
	FollowRate    float64 `yaml:"follow_rate"`
}

// EffectsConfig defines the status effect magnitudes
type EffectsConfig struct {
	SlowFactor        float64 `yaml:"slow_factor"` // Move speed multiplier while slowed
	GriefDrain        float64 `yaml:"grief_drain"` // Extra sanity drain per second
	ConfusionDuration float64 `yaml:"confusion_duration"`
	WiggleDuration    float64 `yaml:"wiggle_duration"`
	MemoryDuration    float64 `yaml:"memory_duration"`
	LowSanityWiggle   float64 `yaml:"low_sanity_wiggle"` // Sanity fraction below which the screen wiggles
}

// DirectorConfig defines the tension director curve
type DirectorConfig struct {
	CalmHeat            float64 `yaml:"calm_heat"`
	FreneticHeat        float64 `yaml:"frenetic_heat"`
	HeatRate            float64 `yaml:"heat_rate"`
	MercyRate           float64 `yaml:"mercy_rate"`
	LowHPFraction       float64 `yaml:"low_hp_fraction"`
	LowSanityFraction   float64 `yaml:"low_sanity_fraction"`
	SpawnDistance       float64 `yaml:"spawn_distance"` // Calm before this progress
	MinSpawnDistance    float64 `yaml:"min_spawn_distance"`
	BandLength          float64 `yaml:"band_length"`    // Length of one calm/frenetic cycle
	FreneticShare       float64 `yaml:"frenetic_share"` // Fraction of each band that is frenetic
	UrgentTime          float64 `yaml:"urgent_time"`    // Survive: frenetic when less time remains
	RescueUrgency       float64 `yaml:"rescue_urgency"` // Rescue: frenetic past this progress while unsaved
	BaseInterval        float64 `yaml:"base_interval"`
	MinInterval         float64 `yaml:"min_interval"`
	HeatIntervalGain    float64 `yaml:"heat_interval_gain"`
	MercyIntervalRelief float64 `yaml:"mercy_interval_relief"`
	BaseMaxEnemies      int     `yaml:"base_max_enemies"`
	MercyEnemyRelief    float64 `yaml:"mercy_enemy_relief"`
	EliteChance         float64 `yaml:"elite_chance"`
	HeatEliteGain       float64 `yaml:"heat_elite_gain"`
	MercyEliteRelief    float64 `yaml:"mercy_elite_relief"`
	WaveMax             int     `yaml:"wave_max"`
	EliteMultiplier     float64 `yaml:"elite_multiplier"`
	MercyDropThreshold  float64 `yaml:"mercy_drop_threshold"`
	MercyDropChance     float64 `yaml:"mercy_drop_chance"` // Per second while above threshold
	MercyDropCooldown   float64 `yaml:"mercy_drop_cooldown"`
}

// WeightedDrop is one entry of a drop table. An empty name means no drop.
type WeightedDrop = dice.Weighted

// DropConfig defines the independent per-kind chances rolled on enemy death
type DropConfig struct {
	EnemyDeath map[string]float64 `yaml:"enemy_death"`
	MercyKinds []WeightedDrop     `yaml:"mercy_kinds"`
}

// PickupConfig defines the magnitude of each pickup kind
type PickupConfig struct {
	Amount   float64 `yaml:"amount"`
	Duration float64 `yaml:"duration"`
}

// MissionConfig defines mission parameters
type MissionConfig struct {
	SurviveDuration float64 `yaml:"survive_duration"`
	ExitReach       float64 `yaml:"exit_reach"` // Exit counts as reached at ExitX - ExitReach
}

// DialogueConfig defines encounter pacing
type DialogueConfig struct {
	Cooldown    float64 `yaml:"cooldown"`
	RetryDelay  float64 `yaml:"retry_delay"`
	Chance      float64 `yaml:"chance"`
	MinProgress float64 `yaml:"min_progress"`
}

// ScoreConfig defines the score formula
type ScoreConfig struct {
	Max         int     `yaml:"max"`
	DistanceDiv float64 `yaml:"distance_div"`
	RescueBonus int     `yaml:"rescue_bonus"`
	WinBonus    int     `yaml:"win_bonus"`
}

// DefaultTuning returns the shipped balance
func DefaultTuning() *Tuning {
	return &Tuning{
		Physics: PhysicsConfig{
			Gravity:      1500,
			MaxFallSpeed: 900,
			MaxDT:        0.05,
		},
		World: WorldConfig{
			Length:       6400,
			GroundY:      460,
			StartClear:   360,
			ExitMargin:   240,
			GapMin:       260,
			GapMax:       480,
			ObstacleMinW: 40,
			ObstacleMaxW: 130,
			ObstacleMinH: 28,
			ObstacleMaxH: 96,
			PropChance:   0.55,
			PropSize:     28,
			ViewWidth:    960,
		},
		Player: PlayerConfig{
			Width:             26,
			Height:            46,
			SanityDecay:       0.45,
			DamageSanityRatio: 0.25,
			InvulnTime:        0.8,
			FlinchThreshold:   8,
			KnockbackX:        260,
			KnockbackY:        220,
			InteractRadius:    48,
			StartX:            80,
		},
		Avatars: []AvatarConfig{
			{Name: "warden", HPMax: 110, SanityMax: 100, Speed: 210, Jump: 560},
			{Name: "drifter", HPMax: 85, SanityMax: 125, Speed: 245, Jump: 610},
			{Name: "brute", HPMax: 145, SanityMax: 80, Speed: 180, Jump: 500},
		},
		Revolver: WeaponConfig{
			Name:        "revolver",
			Cooldown:    0.28,
			Spread:      0.05,
			SanityCost:  0.35,
			Damage:      24,
			BulletSpeed: 760,
			BulletLife:  1.1,
			BulletSize:  6,
		},
		Beam: BeamConfig{
			Name:        "lantern",
			DPS:         58,
			SanityDrain: 6,
			Range:       440,
			Width:       16,
			Step:        6,
		},
		Enemies: map[string]EnemyConfig{
			"angel": {HP: 40, Speed: 85, TouchDPS: 14, Width: 30, Height: 34, Floating: true,
				HoverHeight: 120, BobAmplitude: 18, BobFrequency: 2.2, DebuffRadius: 150, DebuffDuration: 1.6,
				Weight: 2, Score: 30},
			"fiend": {HP: 55, Speed: 120, TouchDPS: 22, Width: 30, Height: 40,
				ShotCooldown: 1.8, ShotSpeed: 320, ShotDamage: 10, Weight: 4, Score: 25},
			"golem":  {HP: 140, Speed: 55, TouchDPS: 34, Width: 48, Height: 60, Weight: 1.5, Score: 60},
			"crazy":  {HP: 45, Speed: 190, TouchDPS: 26, Width: 26, Height: 42, Weight: 2.5, Score: 35},
			"wailer": {HP: 35, Speed: 70, TouchDPS: 10, Width: 28, Height: 30, Floating: true,
				HoverHeight: 90, BobAmplitude: 26, BobFrequency: 1.4, DebuffRadius: 190, DebuffDuration: 2.2,
				Weight: 1.5, Score: 40},
		},
		Daughter: DaughterConfig{
			Width:        18,
			Height:       32,
			Position:     0.42,
			WanderSpeed:  55,
			WanderRange:  140,
			AvoidRadius:  170,
			FleeSpeed:    115,
			FollowRate:   4,
			FollowOffset: 38,
		},
		Comp: CompanionConfig{
			Cooldown:      0.65,
			BoostFactor:   0.4,
			BoostDuration: 10,
			Range:         380,
			Damage:        12,
			BulletSpeed:   640,
			OffsetX:       -34,
			OffsetY:       -46,
			FollowRate:    6,
		},
		Effects: EffectsConfig{
			SlowFactor:        0.55,
			GriefDrain:        2.5,
			ConfusionDuration: 3,
			WiggleDuration:    1.5,
			MemoryDuration:    6,
			LowSanityWiggle:   0.3,
		},
		Director: DirectorConfig{
			CalmHeat:            0.2,
			FreneticHeat:        0.85,
			HeatRate:            1.2,
			MercyRate:           0.7,
			LowHPFraction:       0.35,
			LowSanityFraction:   0.30,
			SpawnDistance:       700,
			MinSpawnDistance:    250,
			BandLength:          1400,
			FreneticShare:       0.6,
			UrgentTime:          25,
			RescueUrgency:       2400,
			BaseInterval:        2.6,
			MinInterval:         0.9,
			HeatIntervalGain:    1.2,
			MercyIntervalRelief: 1.4,
			BaseMaxEnemies:      7,
			MercyEnemyRelief:    3,
			EliteChance:         0.12,
			HeatEliteGain:       0.1,
			MercyEliteRelief:    0.2,
			WaveMax:             3,
			EliteMultiplier:     1.8,
			MercyDropThreshold:  0.6,
			MercyDropChance:     0.25,
			MercyDropCooldown:   8,
		},
		Drops: DropConfig{
			EnemyDeath: map[string]float64{
				"medkit": 0.07,
				"tonic":  0.08,
				"charm":  0.025,
			},
			MercyKinds: []WeightedDrop{
				{Name: "medkit", Weight: 3},
				{Name: "tonic", Weight: 2},
			},
		},
		Pickups: map[string]PickupConfig{
			"medkit":  {Amount: 35},
			"tonic":   {Amount: 30},
			"relic":   {Amount: 20},
			"charm":   {Duration: 10},
			"memento": {Amount: 15, Duration: 6},
		},
		Props: map[string][]WeightedDrop{
			"bin":    {{Name: "", Weight: 50}, {Name: "medkit", Weight: 25}, {Name: "tonic", Weight: 25}},
			"glass":  {{Name: "", Weight: 60}, {Name: "tonic", Weight: 30}, {Name: "memento", Weight: 10}},
			"potion": {{Name: "tonic", Weight: 60}, {Name: "medkit", Weight: 40}},
			"chest":  {{Name: "relic", Weight: 40}, {Name: "charm", Weight: 30}, {Name: "medkit", Weight: 30}},
		},
		Mission: MissionConfig{
			SurviveDuration: 150,
			ExitReach:       60,
		},
		Dialogue: DialogueConfig{
			Cooldown:    30,
			RetryDelay:  5,
			Chance:      0.4,
			MinProgress: 400,
		},
		Score: ScoreConfig{
			Max:         999999,
			DistanceDiv: 10,
			RescueBonus: 500,
			WinBonus:    1000,
		},
	}
}

// LoadTuning loads tuning from a YAML file on top of the defaults.
// A missing file yields the defaults.
func LoadTuning(path string) (*Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return t, nil
		}
		return nil, fmt.Errorf("failed to read tuning: %w", err)
	}

	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning: %w", err)
	}

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning %s: %w", path, err)
	}
	return t, nil
}

// Validate checks the invariants the simulation relies on
func (t *Tuning) Validate() error {
	if len(t.Avatars) == 0 {
		return errors.New("at least one avatar is required")
	}
	for _, a := range t.Avatars {
		if a.HPMax <= 0 || a.SanityMax <= 0 {
			return fmt.Errorf("avatar %q: hp_max and sanity_max must be positive", a.Name)
		}
	}
	if t.Physics.MaxDT <= 0 {
		return errors.New("physics.max_dt must be positive")
	}
	if t.World.Length <= t.World.StartClear+t.World.ExitMargin {
		return errors.New("world.length too short for start_clear and exit_margin")
	}
	if t.Director.MercyEnemyRelief < 1 {
		return errors.New("director.mercy_enemy_relief must be at least 1")
	}
	if t.Revolver.Cooldown <= 0 || t.Comp.Cooldown <= 0 {
		return errors.New("weapon cooldowns must be positive")
	}
	return nil
}

// Avatar returns the preset with the given name, or the first preset
func (t *Tuning) Avatar(name string) AvatarConfig {
	for _, a := range t.Avatars {
		if a.Name == name {
			return a
		}
	}
	return t.Avatars[0]
}

// Pickup returns the configuration for a pickup kind
func (t *Tuning) Pickup(kind string) PickupConfig {
	return t.Pickups[kind]
}
