package combat

import (
	"sort"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/dice"
	"chosenoffset.com/nightcorridor/internal/core/geom"
	"chosenoffset.com/nightcorridor/internal/entity"
	"chosenoffset.com/nightcorridor/internal/world"
)

// Hit records damage dealt to an enemy or to the player
type Hit struct {
	Enemy  *entity.Enemy // Nil for hits on the player
	Damage float64
	Killed bool
	At     geom.Vec
}

// Outcome collects everything the resolution pass decided this tick
type Outcome struct {
	Hits         []Hit
	PlayerHits   []Hit
	Kills        []*entity.Enemy
	Broken       []*world.Prop
	Drops        []*Pickup
	MoralFailure bool
}

// Arena groups the actors a projectile can hit
type Arena struct {
	World    *world.World
	Player   *entity.Player
	Daughter *entity.Daughter
	Enemies  []*entity.Enemy
}

// Resolve runs one ordered pass over the live bullets. Each bullet is tested
// against, in order: unbroken props, the unsaved daughter, then enemies. The
// first match consumes the bullet. Enemy bullets skip props and enemies: they
// test the unsaved daughter, then the player. Any bullet striking the unsaved
// daughter sets MoralFailure and ends the pass.
func Resolve(bullets []*Bullet, a Arena, r *dice.Roller, t *config.Tuning) Outcome {
	var out Outcome
	for _, b := range bullets {
		if !b.Alive {
			continue
		}
		rect := b.Rect()

		if b.Owner == entity.OwnerEnemy {
			if hitsDaughter(rect, a.Daughter) {
				b.Alive = false
				out.MoralFailure = true
				return out
			}
			if a.Player != nil && a.Player.Alive && rect.Overlaps(a.Player.Rect()) {
				b.Alive = false
				if a.Player.TakeDamage(b.Damage, b.Pos.X) {
					out.PlayerHits = append(out.PlayerHits, Hit{Damage: b.Damage, At: b.Pos})
				}
			}
			continue
		}

		if prop := a.World.PropAt(rect); prop != nil {
			if drop, broke := prop.Break(t.Props[prop.Kind.String()]); broke {
				b.Alive = false
				out.Broken = append(out.Broken, prop)
				if kind, ok := ParsePickupKind(drop); ok {
					c := prop.Center()
					out.Drops = append(out.Drops, NewPickup(kind, c.X, a.World.GroundY))
				}
				continue
			}
		}

		if hitsDaughter(rect, a.Daughter) {
			b.Alive = false
			out.MoralFailure = true
			return out
		}

		for _, e := range a.Enemies {
			if !e.Alive || !rect.Overlaps(e.Rect()) {
				continue
			}
			b.Alive = false
			killed := e.Hurt(b.Damage)
			out.Hits = append(out.Hits, Hit{Enemy: e, Damage: b.Damage, Killed: killed, At: b.Pos})
			if killed {
				out.Kills = append(out.Kills, e)
				out.Drops = append(out.Drops, DeathDrops(r, t.Drops.EnemyDeath, e, a.World.GroundY)...)
			}
			break
		}
	}
	return out
}

func hitsDaughter(rect geom.Rect, d *entity.Daughter) bool {
	return d != nil && !d.Saved && rect.Overlaps(d.Rect())
}

// DeathDrops rolls each independent drop chance for a dead enemy. Kinds are
// rolled in name order so a seeded roller gives the same drops every time.
func DeathDrops(r *dice.Roller, chances map[string]float64, e *entity.Enemy, groundY float64) []*Pickup {
	names := make([]string, 0, len(chances))
	for name := range chances {
		names = append(names, name)
	}
	sort.Strings(names)

	var drops []*Pickup
	c := e.Center()
	for _, name := range names {
		kind, ok := ParsePickupKind(name)
		if !ok || !r.Chance(chances[name]) {
			continue
		}
		x := c.X + float64(len(drops))*PickupSize*1.5
		drops = append(drops, NewPickup(kind, x, groundY))
	}
	return drops
}

// MercyDrop spawns a bonus pickup just ahead of the player
func MercyDrop(r *dice.Roller, table []dice.Weighted, p *entity.Player, groundY float64) (*Pickup, bool) {
	kind, ok := ParsePickupKind(r.Pick(table))
	if !ok {
		return nil, false
	}
	x := p.Center().X + float64(p.Facing)*120
	return NewPickup(kind, x, groundY), true
}
