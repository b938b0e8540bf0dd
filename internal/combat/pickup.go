package combat

import (
	"math"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/geom"
	"chosenoffset.com/nightcorridor/internal/effects"
	"chosenoffset.com/nightcorridor/internal/entity"
)

// PickupKind identifies what a pickup grants
type PickupKind int

const (
	Medkit  PickupKind = iota // HP
	Tonic                     // Sanity
	Relic                     // Unlocks the beam, sanity once unlocked
	Charm                     // Unlocks the companion, boosts it once unlocked
	Memento                   // Sanity plus the memory overlay
)

// PickupSize is the drawn and collected size of every pickup
const PickupSize = 16

const (
	bobSpeed  = 3.0
	bobHeight = 4.0
)

// String returns the tuning and sprite name of the kind
func (k PickupKind) String() string {
	switch k {
	case Medkit:
		return "medkit"
	case Tonic:
		return "tonic"
	case Relic:
		return "relic"
	case Charm:
		return "charm"
	case Memento:
		return "memento"
	default:
		return "unknown"
	}
}

// ParsePickupKind maps a drop-table name back to its kind
func ParsePickupKind(name string) (PickupKind, bool) {
	for _, k := range []PickupKind{Medkit, Tonic, Relic, Charm, Memento} {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Pickup is a collectible resting in the corridor
type Pickup struct {
	X, Y  float64 // Center at rest
	Kind  PickupKind
	Phase float64 // Bob animation
	Alive bool
}

// NewPickup creates a pickup resting on the ground at x
func NewPickup(kind PickupKind, x, groundY float64) *Pickup {
	return &Pickup{X: x, Y: groundY - PickupSize, Kind: kind, Alive: true}
}

// Position returns the current bobbing center
func (p *Pickup) Position() geom.Vec {
	return geom.Vec{X: p.X, Y: p.Y + math.Sin(p.Phase*bobSpeed)*bobHeight}
}

// UpdatePickups animates pickups and collects every live one within radius of
// the player, returning the collected kinds in slice order
func UpdatePickups(dt float64, pickups []*Pickup, p *entity.Player, radius float64) []PickupKind {
	var collected []PickupKind
	for _, pk := range pickups {
		if !pk.Alive {
			continue
		}
		pk.Phase += dt
		if p == nil || !p.Alive {
			continue
		}
		if geom.Distance(pk.Position(), p.Center()) <= radius {
			pk.Alive = false
			collected = append(collected, pk.Kind)
		}
	}
	return collected
}

// Apply gives the player the effect of a collected pickup
func Apply(kind PickupKind, p *entity.Player, t *config.Tuning) {
	cfg := t.Pickup(kind.String())
	switch kind {
	case Medkit:
		p.Heal(cfg.Amount)
	case Tonic:
		p.RestoreSanity(cfg.Amount)
	case Relic:
		if p.WeaponUnlocked(entity.Lantern) {
			p.RestoreSanity(cfg.Amount)
		} else {
			p.UnlockBeam()
		}
	case Charm:
		boost := cfg.Duration
		if boost <= 0 {
			boost = t.Comp.BoostDuration
		}
		p.UnlockCompanion(boost)
	case Memento:
		p.RestoreSanity(cfg.Amount)
		p.ApplyEffect(effects.Memory, cfg.Duration)
	}
}
