package game

import (
	"chosenoffset.com/nightcorridor/internal/combat"
	"chosenoffset.com/nightcorridor/internal/effects"
	"chosenoffset.com/nightcorridor/internal/entity"
)

// DrawKind identifies what a drawable represents
type DrawKind int

const (
	DrawObstacle DrawKind = iota
	DrawExit
	DrawProp
	DrawPickup
	DrawDaughter
	DrawEnemy
	DrawPlayer
	DrawCompanion
	DrawBullet
	DrawBeam
	DrawParticle
)

// Drawable is one entry of the draw list. Positions are in world space; the
// renderer subtracts Frame.CameraX.
type Drawable struct {
	Kind   DrawKind
	Name   string // Asset name, e.g. "fiend" or "chest"
	X, Y   float64
	W, H   float64
	Phase  float64 // Animation phase
	Facing int
	Alpha  float64
	Elite  bool
	Broken bool
	Owner  entity.Owner // Bullets
	X2, Y2 float64      // Beam end
}

// Frame returns the output of the last tick. The draw list is in back to
// front order. Per-tick events are empty until the next Update.
func (g *Game) Frame() Frame {
	r := g.run
	if r == nil {
		return Frame{}
	}
	return Frame{
		CameraX:   r.world.CameraX,
		Drawables: g.drawables(),
		Cues:      r.cues,
		HUD:       g.hud(),
		Dialogue:  r.events,
		Encounter: r.dialogue.Top(),
		Messages:  r.messages,
		End:       r.end,
	}
}

func (g *Game) drawables() []Drawable {
	r := g.run
	w := r.world
	view := g.tuning.World.ViewWidth
	left, right := w.CameraX-view/4, w.CameraX+view*1.25
	visible := func(x, width float64) bool { return x+width >= left && x <= right }

	list := make([]Drawable, 0, len(w.Obstacles)+len(r.enemies)+len(r.bullets)+len(r.particles)+8)
	for _, o := range w.Obstacles {
		if visible(o.X, o.W) {
			list = append(list, Drawable{Kind: DrawObstacle, Name: "crate", X: o.X, Y: o.Y, W: o.W, H: o.H, Alpha: 1})
		}
	}
	if visible(w.ExitX, 40) {
		list = append(list, Drawable{Kind: DrawExit, Name: "exit", X: w.ExitX, Y: w.GroundY - 96, W: 40, H: 96, Alpha: 1})
	}
	for _, p := range w.Props {
		if visible(p.X, p.W) {
			list = append(list, Drawable{Kind: DrawProp, Name: p.Kind.String(), X: p.X, Y: p.Y, W: p.W, H: p.H, Broken: p.Broken, Alpha: 1})
		}
	}
	for _, pk := range r.pickups {
		if !pk.Alive {
			continue
		}
		pos := pk.Position()
		half := float64(combat.PickupSize) / 2
		list = append(list, Drawable{Kind: DrawPickup, Name: pk.Kind.String(), X: pos.X - half, Y: pos.Y - half,
			W: combat.PickupSize, H: combat.PickupSize, Phase: pk.Phase, Alpha: 1})
	}

	d := r.daughter
	list = append(list, Drawable{Kind: DrawDaughter, Name: "daughter", X: d.X, Y: d.Y, W: d.W, H: d.H, Phase: d.Anim,
		Facing: facing(d.VX), Alpha: 1})

	for _, e := range r.enemies {
		if !e.Alive {
			continue
		}
		list = append(list, Drawable{Kind: DrawEnemy, Name: e.Type.String(), X: e.X, Y: e.Y, W: e.W, H: e.H, Phase: e.Anim,
			Facing: facing(e.VX), Elite: e.Stats.Elite, Alpha: 1})
	}

	p := r.player
	alpha := 1.0
	if p.InvT > 0 && int(p.InvT*20)%2 == 0 {
		alpha = 0.4
	}
	list = append(list, Drawable{Kind: DrawPlayer, Name: p.Avatar.Name, X: p.X, Y: p.Y, W: p.W, H: p.H, Phase: p.Anim,
		Facing: p.Facing, Alpha: alpha})

	if c := r.companion; c != nil {
		list = append(list, Drawable{Kind: DrawCompanion, Name: "companion", X: c.X - 8, Y: c.Y - 8, W: 16, H: 16,
			Phase: c.Anim, Alpha: 1})
	}
	for _, b := range r.bullets {
		if !b.Alive {
			continue
		}
		rect := b.Rect()
		list = append(list, Drawable{Kind: DrawBullet, Name: "bullet", X: rect.X, Y: rect.Y, W: rect.W, H: rect.H,
			Owner: b.Owner, Alpha: 1})
	}
	if b := r.beam; b != nil {
		list = append(list, Drawable{Kind: DrawBeam, Name: "beam", X: b.Origin.X, Y: b.Origin.Y, X2: b.End.X, Y2: b.End.Y,
			W: g.tuning.Beam.Width, Alpha: 0.8})
	}
	for _, pt := range r.particles {
		name := "blood"
		if pt.Kind == Shard {
			name = "shard"
		}
		list = append(list, Drawable{Kind: DrawParticle, Name: name, X: pt.Pos.X, Y: pt.Pos.Y, W: pt.Size, H: pt.Size,
			Alpha: pt.Life / pt.MaxLife})
	}
	return list
}

func (g *Game) hud() HUD {
	r := g.run
	p := r.player
	weapon := p.CurrentWeapon()
	return HUD{
		HP:             p.HPFraction(),
		Sanity:         p.SanityFraction(),
		Statuses:       p.Effects.Labels(),
		Mission:        r.mission.Title(),
		Timer:          r.mission.TimerText(),
		Mode:           r.director.Mode.String(),
		Weapon:         weapon.Name,
		Score:          g.liveScore(),
		Distance:       r.maxProgress,
		CompanionBoost: p.BoostT,
		CanRescue:      !r.ended && g.canRescue(),
		Wiggle:         p.Effects.Active(effects.Wiggle),
		Memory:         p.Effects.Active(effects.Memory),
	}
}

func facing(vx float64) int {
	if vx < 0 {
		return -1
	}
	return 1
}

func (g *Game) liveScore() int {
	if g.run.ended {
		return g.run.result.Score
	}
	return g.score(false)
}
