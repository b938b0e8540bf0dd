// Package combat owns projectiles, pickups and the per-tick resolution pass
// that decides what every projectile hit.
package combat

import (
	"chosenoffset.com/nightcorridor/internal/core/geom"
	"chosenoffset.com/nightcorridor/internal/entity"
	"chosenoffset.com/nightcorridor/internal/world"
)

// Bullet is a discrete projectile. It is consumed by the first thing it hits.
type Bullet struct {
	Pos    geom.Vec // Center
	Vel    geom.Vec
	Damage float64
	Owner  entity.Owner
	Life   float64
	Size   float64
	Alive  bool
}

// NewBullet turns a projectile fire request into a live bullet
func NewBullet(req entity.FireRequest) *Bullet {
	return &Bullet{
		Pos:    req.Origin,
		Vel:    req.Dir.Scale(req.Speed),
		Damage: req.Damage,
		Owner:  req.Owner,
		Life:   req.Life,
		Size:   req.Size,
		Alive:  true,
	}
}

// Rect returns the bullet hitbox
func (b *Bullet) Rect() geom.Rect {
	return geom.Rect{X: b.Pos.X - b.Size/2, Y: b.Pos.Y - b.Size/2, W: b.Size, H: b.Size}
}

// UpdateBullets moves every live bullet and kills those that expired, left
// the corridor or struck the ground or an obstacle. Dead bullets stay in the
// slice until the caller compacts it.
func UpdateBullets(dt float64, bullets []*Bullet, w *world.World) {
	for _, b := range bullets {
		if !b.Alive {
			continue
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.Life -= dt
		if b.Life <= 0 {
			b.Alive = false
			continue
		}
		r := b.Rect()
		if w.OutOfBounds(r) || w.BulletBlocked(r) {
			b.Alive = false
		}
	}
}
