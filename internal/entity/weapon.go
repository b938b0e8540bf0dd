package entity

import (
	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/geom"
)

// Avatar preset names
const (
	Warden  = "warden"
	Drifter = "drifter"
	Brute   = "brute"
)

// WeaponKind distinguishes the discrete projectile weapon from the beam
type WeaponKind int

const (
	Revolver WeaponKind = iota
	Lantern
)

// String returns the HUD name of the weapon kind
func (k WeaponKind) String() string {
	switch k {
	case Revolver:
		return "revolver"
	case Lantern:
		return "lantern"
	default:
		return "unknown"
	}
}

// Weapon is one entry of the player's ordered weapon list
type Weapon struct {
	Kind       WeaponKind
	Name       string
	Projectile config.WeaponConfig // Set for Revolver
	Beam       config.BeamConfig   // Set for Lantern
}

// DefaultWeapons returns the ordered weapon list. Index 0 is always unlocked.
func DefaultWeapons(t *config.Tuning) []Weapon {
	return []Weapon{
		{Kind: Revolver, Name: t.Revolver.Name, Projectile: t.Revolver},
		{Kind: Lantern, Name: t.Beam.Name, Beam: t.Beam},
	}
}

// Owner tags who fired a shot
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
	OwnerCompanion
)

// FireRequest describes a shot an actor wants to make this tick. The combat
// layer turns projectile requests into bullets and resolves beam requests
// immediately.
type FireRequest struct {
	Weapon WeaponKind
	Owner  Owner
	Origin geom.Vec
	Dir    geom.Vec // Unit vector
	Speed  float64
	Damage float64
	Life   float64
	Size   float64
}
