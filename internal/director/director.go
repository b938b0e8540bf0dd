// Package director paces a run. It turns progress and the player's vitals
// into a calm/frenetic mode, a smoothed heat value and the spawn parameters
// the orchestrator uses for enemy waves.
package director

import (
	"math"
	"sort"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/dice"
	"chosenoffset.com/nightcorridor/internal/core/geom"
)

// Mode is the pacing state
type Mode int

const (
	Calm Mode = iota
	Frenetic
)

// String returns the HUD label of the mode
func (m Mode) String() string {
	if m == Frenetic {
		return "frenetic"
	}
	return "calm"
}

// Inputs is what the director reads each tick
type Inputs struct {
	Progress       float64 // Distance travelled from the start
	HPFraction     float64
	SanityFraction float64
	Timed          bool    // The mission has a countdown
	TimeLeft       float64 // Valid when Timed
	RescuePending  bool    // Rescue mission with the daughter still unsaved
}

// Params are the effective spawn parameters after heat and mercy
type Params struct {
	SpawnInterval float64
	MaxEnemies    int
	EliteChance   float64
}

// Member is one enemy of a wave
type Member struct {
	Kind  string
	Elite bool
}

// Wave is a group of enemies spawned together
type Wave struct {
	Members []Member
}

// Director holds the pacing state of a run
type Director struct {
	Heat          float64
	Mercy         float64
	Mode          Mode
	SpawnDistance float64

	sinceSpawn float64
	dropTimer  float64
	mix        []dice.Weighted
	cfg        config.DirectorConfig
}

// New creates a director. The enemy mix is built from the per-type spawn
// weights, ordered by name.
func New(cfg config.DirectorConfig, enemies map[string]config.EnemyConfig) *Director {
	names := make([]string, 0, len(enemies))
	for name := range enemies {
		names = append(names, name)
	}
	sort.Strings(names)

	mix := make([]dice.Weighted, 0, len(names))
	for _, name := range names {
		mix = append(mix, dice.Weighted{Name: name, Weight: enemies[name].Weight})
	}

	return &Director{
		Heat:          cfg.CalmHeat,
		Mode:          Calm,
		SpawnDistance: cfg.SpawnDistance,
		mix:           mix,
		cfg:           cfg,
	}
}

// SelectMode decides the pacing mode. Nothing spawns before the spawn
// distance; past it, mission urgency forces frenetic and otherwise the
// corridor alternates frenetic and calm bands.
func SelectMode(in Inputs, spawnDistance float64, cfg config.DirectorConfig) Mode {
	if in.Progress < spawnDistance {
		return Calm
	}
	if in.Timed && in.TimeLeft < cfg.UrgentTime {
		return Frenetic
	}
	if in.RescuePending && in.Progress > cfg.RescueUrgency {
		return Frenetic
	}
	if cfg.BandLength <= 0 {
		return Frenetic
	}
	phase := math.Mod(in.Progress-spawnDistance, cfg.BandLength)
	if phase < cfg.BandLength*cfg.FreneticShare {
		return Frenetic
	}
	return Calm
}

// Struggling reports whether the vitals call for mercy
func (d *Director) Struggling(in Inputs) bool {
	return in.HPFraction < d.cfg.LowHPFraction || in.SanityFraction < d.cfg.LowSanityFraction
}

// Update advances the director by one tick
func (d *Director) Update(dt float64, in Inputs) {
	d.Mode = SelectMode(in, d.SpawnDistance, d.cfg)

	target := d.cfg.CalmHeat
	if d.Mode == Frenetic {
		target = d.cfg.FreneticHeat
	}
	d.Heat = geom.Approach(d.Heat, target, d.cfg.HeatRate, dt)

	mercyTarget := 0.0
	if d.Struggling(in) {
		mercyTarget = 1
	}
	d.Mercy = geom.Approach(d.Mercy, mercyTarget, d.cfg.MercyRate, dt)

	d.sinceSpawn += dt
	d.dropTimer = math.Max(0, d.dropTimer-dt)
}

// Params returns the spawn parameters for the current heat and mercy. Mercy
// relaxes every parameter linearly.
func (d *Director) Params() Params {
	interval := d.cfg.BaseInterval - d.Heat*d.cfg.HeatIntervalGain + d.Mercy*d.cfg.MercyIntervalRelief
	maxEnemies := int(math.Floor(float64(d.cfg.BaseMaxEnemies) - d.Mercy*d.cfg.MercyEnemyRelief))
	elite := d.cfg.EliteChance + d.Heat*d.cfg.HeatEliteGain - d.Mercy*d.cfg.MercyEliteRelief

	return Params{
		SpawnInterval: math.Max(d.cfg.MinInterval, interval),
		MaxEnemies:    max(1, maxEnemies),
		EliteChance:   geom.Clamp(elite, 0, 1),
	}
}

// Wave rolls the next enemy wave. Waves only spawn in frenetic mode, once the
// spawn interval has elapsed, and never past the concurrent-enemy cap.
func (d *Director) Wave(r *dice.Roller, alive int) (Wave, bool) {
	if d.Mode != Frenetic {
		return Wave{}, false
	}
	p := d.Params()
	if d.sinceSpawn < p.SpawnInterval || alive >= p.MaxEnemies {
		return Wave{}, false
	}
	d.sinceSpawn = 0

	size := min(1+r.Intn(max(1, d.cfg.WaveMax)), p.MaxEnemies-alive)
	w := Wave{Members: make([]Member, 0, size)}
	for i := 0; i < size; i++ {
		w.Members = append(w.Members, Member{
			Kind:  r.Pick(d.mix),
			Elite: r.Chance(p.EliteChance),
		})
	}
	return w, true
}

// LowerSpawnDistance permanently brings the first spawns closer, down to the
// configured minimum
func (d *Director) LowerSpawnDistance(by float64) {
	d.SpawnDistance = math.Max(d.cfg.MinSpawnDistance, d.SpawnDistance-by)
}

// MercyDrop reports whether a bonus pickup should spawn this tick. It only
// fires while mercy is above the threshold, at most once per cooldown.
func (d *Director) MercyDrop(dt float64, r *dice.Roller) bool {
	if d.Mercy < d.cfg.MercyDropThreshold || d.dropTimer > 0 {
		return false
	}
	if !r.Chance(d.cfg.MercyDropChance * dt) {
		return false
	}
	d.dropTimer = d.cfg.MercyDropCooldown
	return true
}
