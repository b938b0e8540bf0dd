package game

import (
	"math"

	"chosenoffset.com/nightcorridor/internal/combat"
	"chosenoffset.com/nightcorridor/internal/core/geom"
	"chosenoffset.com/nightcorridor/internal/effects"
)

// effectTarget applies encounter effects to the current run
type effectTarget struct {
	g *Game
}

func (t effectTarget) Heal(amount float64) {
	t.g.run.player.Heal(amount)
}

// Hurt is not a hit: it bypasses invulnerability and causes no knockback
func (t effectTarget) Hurt(amount float64) {
	p := t.g.run.player
	p.SetHP(p.HP - math.Max(0, amount))
}

func (t effectTarget) RestoreSanity(amount float64) {
	t.g.run.player.RestoreSanity(amount)
}

func (t effectTarget) DrainSanity(amount float64) {
	t.g.run.player.DrainSanity(amount)
}

func (t effectTarget) ApplyStatus(kind effects.Kind, duration float64) {
	t.g.run.player.ApplyEffect(kind, duration)
}

func (t effectTarget) UnlockBeam() {
	t.g.run.player.UnlockBeam()
	t.g.message("The lantern catches.")
}

func (t effectTarget) UnlockCompanion() {
	if t.g.run.player.UnlockCompanion(t.g.tuning.Comp.BoostDuration) {
		t.g.message("Something small and loyal stirs beside you.")
	}
}

func (t effectTarget) LowerSpawnDistance(by float64) {
	t.g.run.director.LowerSpawnDistance(by)
}

// SpawnPickup drops a pickup on the ground just ahead of the player
func (t effectTarget) SpawnPickup(kind string) bool {
	k, ok := combat.ParsePickupKind(kind)
	if !ok {
		return false
	}
	r := t.g.run
	x := geom.Clamp(r.player.Center().X+float64(r.player.Facing)*pickupAhead, combat.PickupSize, r.world.Length-combat.PickupSize)
	r.pickups = append(r.pickups, combat.NewPickup(k, x, r.world.GroundY))
	return true
}
