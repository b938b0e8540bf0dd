// Package world holds the corridor geometry of a run: the ground plane, the
// static obstacles, the destructible props and the camera scroll.
package world

import (
	"math"
	"math/rand"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/dice"
	"chosenoffset.com/nightcorridor/internal/core/geom"
	"chosenoffset.com/nightcorridor/internal/entity"
)

// verticalSlack is how far above the screen a projectile may travel before it
// counts as out of bounds
const verticalSlack = 600

// PropKind identifies a destructible prop
type PropKind int

const (
	Bin PropKind = iota
	Glass
	Potion
	Chest
	numPropKinds
)

// String returns the name used by drop tables and sprites
func (k PropKind) String() string {
	switch k {
	case Bin:
		return "bin"
	case Glass:
		return "glass"
	case Potion:
		return "potion"
	case Chest:
		return "chest"
	default:
		return "unknown"
	}
}

// Obstacle is a solid block resting on the ground
type Obstacle struct {
	geom.Rect
}

// Prop is destructible scenery. Props are not solid.
type Prop struct {
	geom.Rect
	Kind   PropKind
	Broken bool
	Seed   int64 // Drawn at generation time; fixes the drop roll
}

// Break marks the prop broken and rolls its drop table once.
// It returns broke=false when the prop was already broken, in which case the
// caller must not treat the hit as consuming anything. An empty drop name
// means the roll came up empty.
func (p *Prop) Break(table []dice.Weighted) (drop string, broke bool) {
	if p.Broken {
		return "", false
	}
	p.Broken = true
	roller := dice.NewRoller(rand.New(rand.NewSource(p.Seed)))
	return roller.Pick(table), true
}

// World is the generated corridor
type World struct {
	GroundY   float64
	Length    float64
	ExitX     float64
	CameraX   float64
	Obstacles []Obstacle
	Props     []*Prop
}

// Generate lays out obstacles and props at randomized spacing along the
// corridor. All randomness is drawn here so the layout is fixed for the run.
func Generate(cfg config.WorldConfig, r *dice.Roller) *World {
	w := &World{
		GroundY: cfg.GroundY,
		Length:  cfg.Length,
		ExitX:   cfg.Length - cfg.ExitMargin,
	}

	x := cfg.StartClear
	limit := w.ExitX - cfg.ObstacleMaxW
	for x < limit {
		ow := r.Range(cfg.ObstacleMinW, cfg.ObstacleMaxW)
		oh := r.Range(cfg.ObstacleMinH, cfg.ObstacleMaxH)
		w.Obstacles = append(w.Obstacles, Obstacle{geom.Rect{X: x, Y: cfg.GroundY - oh, W: ow, H: oh}})

		gap := r.Range(cfg.GapMin, cfg.GapMax)
		if gap > cfg.PropSize*3 && r.Chance(cfg.PropChance) {
			px := x + ow + r.Range(cfg.PropSize, gap-2*cfg.PropSize)
			if px+cfg.PropSize < w.ExitX {
				w.Props = append(w.Props, &Prop{
					Rect: geom.Rect{X: px, Y: cfg.GroundY - cfg.PropSize, W: cfg.PropSize, H: cfg.PropSize},
					Kind: PropKind(r.Intn(int(numPropKinds))),
					Seed: r.Int63(),
				})
			}
		}
		x += ow + gap
	}
	return w
}

// ResolveEntityCollision keeps a body inside the corridor, on or above the
// ground, and outside every obstacle. Each overlap is resolved along the axis
// of least penetration; the vertical axis is chosen only when its
// penetration is strictly smaller. Fast bodies can tunnel through thin
// obstacles.
func (w *World) ResolveEntityCollision(b *entity.Body) {
	if b.X < 0 {
		b.X = 0
		b.VX = 0
	} else if b.X+b.W > w.Length {
		b.X = w.Length - b.W
		b.VX = 0
	}

	if b.Bottom() >= w.GroundY {
		b.Y = w.GroundY - b.H
		if b.VY > 0 {
			b.VY = 0
		}
		b.Grounded = true
	}

	for _, o := range w.Obstacles {
		r := b.Rect()
		if !r.Overlaps(o.Rect) {
			continue
		}
		penX := math.Min(r.Right()-o.X, o.Right()-r.X)
		penY := math.Min(r.Bottom()-o.Y, o.Bottom()-r.Y)

		if penY < penX {
			if r.Center().Y < o.Center().Y {
				b.Y = o.Y - b.H
				b.Grounded = true
			} else {
				b.Y = o.Bottom()
			}
			b.VY = 0
		} else {
			if r.Center().X < o.Center().X {
				b.X = o.X - b.W
			} else {
				b.X = o.Right()
			}
			b.VX = 0
		}
	}
}

// BulletBlocked reports whether a projectile hitbox hits the ground or an obstacle
func (w *World) BulletBlocked(r geom.Rect) bool {
	if r.Bottom() >= w.GroundY {
		return true
	}
	for _, o := range w.Obstacles {
		if r.Overlaps(o.Rect) {
			return true
		}
	}
	return false
}

// OutOfBounds reports whether a rectangle has left the playable area
func (w *World) OutOfBounds(r geom.Rect) bool {
	return r.Right() < 0 || r.X > w.Length || r.Bottom() < -verticalSlack || r.Y > w.GroundY
}

// RayCast marches from origin along dir and returns the distance to the first
// ground or obstacle hit, or maxDist when nothing is hit
func (w *World) RayCast(origin, dir geom.Vec, maxDist, step float64) float64 {
	dir = dir.Norm()
	if step <= 0 || (dir.X == 0 && dir.Y == 0) {
		return maxDist
	}
	for d := 0.0; d < maxDist; d += step {
		p := origin.Add(dir.Scale(d))
		if p.Y >= w.GroundY || p.X < 0 || p.X > w.Length {
			return d
		}
		for _, o := range w.Obstacles {
			if o.Contains(p) {
				return d
			}
		}
	}
	return maxDist
}

// UpdateCamera scrolls so the player sits in the left third of the view,
// clamped to the corridor
func (w *World) UpdateCamera(playerX, viewWidth float64) {
	maxX := math.Max(0, w.Length-viewWidth)
	w.CameraX = geom.Clamp(playerX-viewWidth/3, 0, maxX)
}

// PropAt returns the first unbroken prop overlapping r
func (w *World) PropAt(r geom.Rect) *Prop {
	for _, p := range w.Props {
		if !p.Broken && p.Overlaps(r) {
			return p
		}
	}
	return nil
}
