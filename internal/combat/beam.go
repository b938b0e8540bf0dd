package combat

import (
	"math"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/geom"
	"chosenoffset.com/nightcorridor/internal/entity"
	"chosenoffset.com/nightcorridor/internal/world"
)

// BeamResult describes one tick of the continuous beam
type BeamResult struct {
	Origin geom.Vec
	End    geom.Vec
	Hits   []Hit
	Kills  []*entity.Enemy
}

// FireBeam ray-casts the beam against the world, then damages every live
// enemy whose center lies within reach of the beam segment. Damage is the
// beam's DPS scaled by dt.
func FireBeam(origin, dir geom.Vec, dt float64, cfg config.BeamConfig, w *world.World, enemies []*entity.Enemy) BeamResult {
	dir = dir.Norm()
	length := w.RayCast(origin, dir, cfg.Range, cfg.Step)
	res := BeamResult{Origin: origin, End: origin.Add(dir.Scale(length))}

	damage := cfg.DPS * dt
	for _, e := range enemies {
		if !e.Alive {
			continue
		}
		reach := cfg.Width + math.Max(e.W, e.H)/2
		if geom.PointSegmentDistance(e.Center(), res.Origin, res.End) > reach {
			continue
		}
		killed := e.Hurt(damage)
		res.Hits = append(res.Hits, Hit{Enemy: e, Damage: damage, Killed: killed, At: e.Center()})
		if killed {
			res.Kills = append(res.Kills, e)
		}
	}
	return res
}
