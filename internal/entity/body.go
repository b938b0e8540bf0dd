// Package entity provides the actors of the simulation: the player, the enemies,
// the rescuable daughter and the companion turret, together with the shared
// body integration they all use.
package entity

import (
	"math"

	"chosenoffset.com/nightcorridor/internal/core/geom"
)

// Body is the physical state shared by every actor
type Body struct {
	X, Y     float64 // Top-left corner in world space
	W, H     float64
	VX, VY   float64 // px/s
	Grounded bool

	HP    float64
	HPMax float64
	InvT  float64 // Remaining invulnerability (s)
	Anim  float64 // Animation phase, advanced with time
	Alive bool
}

// Collider resolves a body against static geometry
type Collider interface {
	ResolveEntityCollision(b *Body)
}

// Rect returns the body's hitbox
func (b *Body) Rect() geom.Rect {
	return geom.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Center returns the center of the hitbox
func (b *Body) Center() geom.Vec {
	return geom.Vec{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Bottom returns the y coordinate of the feet
func (b *Body) Bottom() float64 {
	return b.Y + b.H
}

// Integrate applies gravity and velocity for one step, then lets the collider
// push the body out of the ground and obstacles.
func (b *Body) Integrate(dt, gravity, maxFall float64, c Collider) {
	b.VY = math.Min(b.VY+gravity*dt, maxFall)
	b.X += b.VX * dt
	b.Y += b.VY * dt
	b.Grounded = false
	if c != nil {
		c.ResolveEntityCollision(b)
	}
}

// SetHP assigns HP clamped to [0, HPMax]
func (b *Body) SetHP(hp float64) {
	b.HP = geom.Clamp(hp, 0, b.HPMax)
}

// Tick advances the body's timers
func (b *Body) Tick(dt float64) {
	b.Anim += dt
	if b.InvT > 0 {
		b.InvT = math.Max(0, b.InvT-dt)
	}
}
