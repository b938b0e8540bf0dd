package game

import (
	"math"
	"slices"

	"chosenoffset.com/nightcorridor/internal/core/dice"
	"chosenoffset.com/nightcorridor/internal/core/geom"
)

// ParticleKind selects how a particle is drawn
type ParticleKind int

const (
	Blood ParticleKind = iota
	Shard
)

const (
	maxParticles    = 400
	bloodPerDamage  = 0.35 // Particles per point of damage
	maxBloodPerHit  = 24
	shardsPerProp   = 10
	particleGravity = 900.0
)

// Particle is a purely visual fragment
type Particle struct {
	Pos     geom.Vec
	Vel     geom.Vec
	Life    float64
	MaxLife float64
	Size    float64
	Kind    ParticleKind
}

// Alive reports whether the particle should still be drawn
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// bloodCount returns how many particles a hit of the given damage sprays
func bloodCount(damage float64) int {
	n := int(math.Ceil(damage * bloodPerDamage))
	return max(1, min(n, maxBloodPerHit))
}

// emit sprays n particles from at
func emit(ps []Particle, r *dice.Roller, kind ParticleKind, at geom.Vec, n int, speed float64) []Particle {
	for i := 0; i < n; i++ {
		angle := r.Range(-math.Pi, 0) // Upward half
		v := r.Range(speed*0.3, speed)
		life := r.Range(0.35, 0.9)
		ps = append(ps, Particle{
			Pos:     at,
			Vel:     geom.Vec{X: math.Cos(angle) * v, Y: math.Sin(angle) * v},
			Life:    life,
			MaxLife: life,
			Size:    r.Range(2, 4),
			Kind:    kind,
		})
	}
	return ps
}

// updateParticles moves every particle and lets them settle on the ground
func updateParticles(dt float64, ps []Particle, groundY float64) {
	for i := range ps {
		p := &ps[i]
		if !p.Alive() {
			continue
		}
		p.Life -= dt
		p.Vel.Y += particleGravity * dt
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		if p.Pos.Y > groundY {
			p.Pos.Y = groundY
			p.Vel = geom.Vec{}
		}
	}
}

// trimParticles drops dead particles and, past the cap, the oldest ones
func trimParticles(ps []Particle) []Particle {
	ps = slices.DeleteFunc(ps, func(p Particle) bool { return !p.Alive() })
	if over := len(ps) - maxParticles; over > 0 {
		ps = append(ps[:0], ps[over:]...)
	}
	return ps
}
