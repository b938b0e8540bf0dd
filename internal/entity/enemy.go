package entity

import (
	"math"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/geom"
	"chosenoffset.com/nightcorridor/internal/effects"
)

// EnemyType tags the fixed set of enemy kinds
type EnemyType int

const (
	Angel EnemyType = iota
	Fiend
	Golem
	Crazy
	Wailer
)

// EnemyTypes lists every enemy type in spawn-table order
var EnemyTypes = []EnemyType{Angel, Fiend, Golem, Crazy, Wailer}

// String returns the tuning and sprite name of the type
func (t EnemyType) String() string {
	switch t {
	case Angel:
		return "angel"
	case Fiend:
		return "fiend"
	case Golem:
		return "golem"
	case Crazy:
		return "crazy"
	case Wailer:
		return "wailer"
	default:
		return "unknown"
	}
}

// ParseEnemyType maps a name back to its type
func ParseEnemyType(name string) (EnemyType, bool) {
	for _, t := range EnemyTypes {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// EnemyStats are the per-instance constants fixed at construction
type EnemyStats struct {
	config.EnemyConfig
	Elite bool
}

// Enemy is a hostile actor driven by its type's Behavior
type Enemy struct {
	Body
	Type  EnemyType
	Stats EnemyStats

	behavior  Behavior
	phase     float64 // Per-instance offset for the time-based modulations
	baseY     float64 // Floating types hover around this height
	shotTimer float64
}

// NewEnemy creates an enemy of the given type standing (or hovering) at x.
// Elites have their HP and touch damage scaled by eliteMult.
func NewEnemy(t EnemyType, cfg config.EnemyConfig, elite bool, eliteMult, x, groundY, phase float64) *Enemy {
	stats := EnemyStats{EnemyConfig: cfg, Elite: elite}
	if elite {
		stats.HP *= eliteMult
		stats.TouchDPS *= eliteMult
		stats.Score *= 2
	}

	e := &Enemy{
		Body: Body{
			X:     x,
			W:     cfg.Width,
			H:     cfg.Height,
			HP:    stats.HP,
			HPMax: stats.HP,
			Alive: true,
		},
		Type:      t,
		Stats:     stats,
		behavior:  BehaviorFor(t),
		phase:     phase,
		shotTimer: cfg.ShotCooldown,
	}
	if cfg.Floating {
		e.baseY = groundY - cfg.HoverHeight - cfg.Height
		e.Y = e.baseY
	} else {
		e.Y = groundY - cfg.Height
	}
	return e
}

// Update moves the enemy and returns the touch damage it deals to the player
// this tick. Touch damage is continuous: DPS scaled by dt while overlapping.
func (e *Enemy) Update(dt, t float64, p *Player, gravity, maxFall float64, c Collider) float64 {
	if !e.Alive {
		return 0
	}
	e.Tick(dt)
	e.behavior.Move(e, dt, t, p)

	if e.Stats.Floating {
		e.X += e.VX * dt
	} else {
		e.Integrate(dt, gravity, maxFall, c)
	}

	if p == nil || !p.Alive || !e.Rect().Overlaps(p.Rect()) {
		return 0
	}
	e.behavior.Touch(e, p)
	return e.Stats.TouchDPS * dt
}

// Hurt applies damage and reports whether this hit killed the enemy
func (e *Enemy) Hurt(amount float64) bool {
	if !e.Alive || amount <= 0 {
		return false
	}
	e.HP -= amount
	if e.HP <= 0 {
		e.HP = 0
		e.Alive = false
		return true
	}
	return false
}

// TryShoot lets elites with a ranged attack fire at the player
func (e *Enemy) TryShoot(dt float64, p *Player) (FireRequest, bool) {
	if !e.Alive || !e.Stats.Elite || e.Stats.ShotCooldown <= 0 || p == nil {
		return FireRequest{}, false
	}
	e.shotTimer -= dt
	if e.shotTimer > 0 {
		return FireRequest{}, false
	}
	e.shotTimer = e.Stats.ShotCooldown

	origin := e.Center()
	return FireRequest{
		Weapon: Revolver,
		Owner:  OwnerEnemy,
		Origin: origin,
		Dir:    p.Center().Sub(origin).Norm(),
		Speed:  e.Stats.ShotSpeed,
		Damage: e.Stats.ShotDamage,
		Life:   2.5,
		Size:   8,
	}, true
}

// chase returns the sign of the player's X relative to the enemy
func (e *Enemy) chase(p *Player) float64 {
	if p == nil {
		return 0
	}
	return geom.Sign(p.Center().X - e.Center().X)
}

// Behavior is the per-type motion rule, selected once at construction
type Behavior interface {
	// Move sets the enemy's velocity (and position for floaters) for this tick
	Move(e *Enemy, dt, t float64, p *Player)
	// Touch applies contact side effects beyond damage
	Touch(e *Enemy, p *Player)
}

// BehaviorFor returns the strategy of an enemy type
func BehaviorFor(t EnemyType) Behavior {
	switch t {
	case Angel:
		return floater{debuff: effects.Slow}
	case Wailer:
		return floater{debuff: effects.Grief}
	case Fiend:
		return feint{}
	case Crazy:
		return charger{}
	default:
		return walker{}
	}
}

// floater hovers toward the player with a vertical bob and projects a debuff
// around itself
type floater struct {
	debuff effects.Kind
}

func (f floater) Move(e *Enemy, _, t float64, p *Player) {
	e.VX = e.chase(p) * e.Stats.Speed
	e.Y = e.baseY + math.Sin(t*e.Stats.BobFrequency+e.phase)*e.Stats.BobAmplitude

	if p != nil && geom.Distance(e.Center(), p.Center()) <= e.Stats.DebuffRadius {
		p.ApplyEffect(f.debuff, e.Stats.DebuffDuration)
	}
}

func (f floater) Touch(e *Enemy, p *Player) {
	if f.debuff == effects.Grief {
		p.ApplyEffect(effects.Wiggle, e.Stats.DebuffDuration)
	}
}

// walker advances at constant speed
type walker struct{}

func (walker) Move(e *Enemy, _, _ float64, p *Player) {
	e.VX = e.chase(p) * e.Stats.Speed
}

func (walker) Touch(*Enemy, *Player) {}

const feintFrequency = 3.1

// feint modulates its speed with a smooth sine between half and one and a
// half times the base speed
type feint struct{}

func (feint) Move(e *Enemy, _, t float64, p *Player) {
	mult := 1 + 0.5*math.Sin(t*feintFrequency+e.phase)
	e.VX = e.chase(p) * e.Stats.Speed * mult
}

func (feint) Touch(*Enemy, *Player) {}

const (
	chargeRate   = 1.6 // Buckets per second
	chargeSpan   = 240 // Position contribution to the bucket (px per bucket)
	windUpFactor = 0.08
)

// charger winds up (nearly halting) on every fourth phase bucket, where the
// bucket is derived from time and position
type charger struct{}

// WindingUp reports whether a charger at x is in its wind-up bucket at time t
func WindingUp(t, x float64) bool {
	bucket := int(math.Floor(t*chargeRate + x/chargeSpan))
	return ((bucket%4)+4)%4 == 0
}

func (charger) Move(e *Enemy, _, t float64, p *Player) {
	speed := e.Stats.Speed
	if WindingUp(t, e.X) {
		speed *= windUpFactor
	}
	e.VX = e.chase(p) * speed
}

func (charger) Touch(_ *Enemy, p *Player) {
	p.ApplyEffect(effects.Confusion, p.effectCfg.ConfusionDuration)
}
