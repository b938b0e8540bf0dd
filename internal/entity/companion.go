package entity

import (
	"math"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/geom"
)

const companionShotLife = 1.2

// Companion is the turret that floats behind the player once unlocked.
// It is not a Body: it cannot be hit and does not collide.
type Companion struct {
	X, Y     float64
	Anim     float64
	Target   *Enemy // Last acquired target, for drawing
	cooldown float64
	cfg      config.CompanionConfig
}

// NewCompanion creates a companion hovering at the player's shoulder
func NewCompanion(cfg config.CompanionConfig, p *Player) *Companion {
	c := &Companion{cfg: cfg}
	c.X, c.Y = c.anchor(p)
	return c
}

func (c *Companion) anchor(p *Player) (float64, float64) {
	return p.Center().X + float64(p.Facing)*c.cfg.OffsetX, p.Y + c.cfg.OffsetY
}

// Position returns the turret center
func (c *Companion) Position() geom.Vec {
	return geom.Vec{X: c.X, Y: c.Y}
}

// Update follows the player and fires at the nearest live enemy in range when
// the cooldown allows. A boosted player shortens the cooldown.
func (c *Companion) Update(dt float64, p *Player, enemies []*Enemy) (FireRequest, bool) {
	c.Anim += dt
	ax, ay := c.anchor(p)
	c.X = geom.Approach(c.X, ax, c.cfg.FollowRate, dt)
	c.Y = geom.Approach(c.Y, ay, c.cfg.FollowRate, dt)

	c.cooldown = math.Max(0, c.cooldown-dt)
	c.Target = c.acquire(enemies)
	if c.Target == nil || c.cooldown > 0 {
		return FireRequest{}, false
	}

	c.cooldown = c.cfg.Cooldown
	if p.BoostT > 0 {
		c.cooldown *= c.cfg.BoostFactor
	}
	origin := c.Position()
	return FireRequest{
		Weapon: Revolver,
		Owner:  OwnerCompanion,
		Origin: origin,
		Dir:    c.Target.Center().Sub(origin).Norm(),
		Speed:  c.cfg.BulletSpeed,
		Damage: c.cfg.Damage,
		Life:   companionShotLife,
		Size:   5,
	}, true
}

func (c *Companion) acquire(enemies []*Enemy) *Enemy {
	var nearest *Enemy
	best := c.cfg.Range
	for _, e := range enemies {
		if !e.Alive {
			continue
		}
		if d := geom.Distance(c.Position(), e.Center()); d <= best {
			best = d
			nearest = e
		}
	}
	return nearest
}
