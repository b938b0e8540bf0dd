package entity

import (
	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/geom"
)

// Daughter is the protected NPC. Before rescue she wanders around her home
// position and flees nearby enemies; after rescue she follows the player.
type Daughter struct {
	Body
	Saved bool

	homeX     float64
	wanderDir float64
	cfg       config.DaughterConfig
}

// NewDaughter places the daughter on the ground at x
func NewDaughter(cfg config.DaughterConfig, x, groundY float64) *Daughter {
	return &Daughter{
		Body: Body{
			X:     x,
			Y:     groundY - cfg.Height,
			W:     cfg.Width,
			H:     cfg.Height,
			HP:    1,
			HPMax: 1,
			Alive: true,
		},
		homeX:     x,
		wanderDir: 1,
		cfg:       cfg,
	}
}

// Rescue marks her saved. It returns false if she already was.
func (d *Daughter) Rescue() bool {
	if d.Saved {
		return false
	}
	d.Saved = true
	return true
}

// Update moves the daughter for one tick
func (d *Daughter) Update(dt float64, p *Player, enemies []*Enemy, gravity, maxFall float64, c Collider) {
	d.Tick(dt)

	if d.Saved && p != nil {
		targetX := p.X - float64(p.Facing)*d.cfg.FollowOffset
		d.X = geom.Approach(d.X, targetX, d.cfg.FollowRate, dt)
		d.VX = 0
	} else if threat := d.nearestThreat(enemies); threat != nil {
		away := geom.Sign(d.Center().X - threat.Center().X)
		if away == 0 {
			away = -d.wanderDir
		}
		d.VX = away * d.cfg.FleeSpeed
	} else {
		if d.X > d.homeX+d.cfg.WanderRange {
			d.wanderDir = -1
		} else if d.X < d.homeX-d.cfg.WanderRange {
			d.wanderDir = 1
		}
		d.VX = d.wanderDir * d.cfg.WanderSpeed
	}

	d.Integrate(dt, gravity, maxFall, c)
}

func (d *Daughter) nearestThreat(enemies []*Enemy) *Enemy {
	var nearest *Enemy
	best := d.cfg.AvoidRadius
	for _, e := range enemies {
		if !e.Alive {
			continue
		}
		if dist := geom.Distance(d.Center(), e.Center()); dist <= best {
			best = dist
			nearest = e
		}
	}
	return nearest
}
