package entity

import (
	"math"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/dice"
	"chosenoffset.com/nightcorridor/internal/core/geom"
	"chosenoffset.com/nightcorridor/internal/effects"
	"chosenoffset.com/nightcorridor/internal/input"
)

// knockStun is how long input is ignored after a knockback
const knockStun = 0.18

// Player is the input-driven protagonist
type Player struct {
	Body
	Avatar    config.AvatarConfig
	Sanity    float64
	SanityMax float64
	Facing    int // -1 or +1
	Effects   effects.Timers

	CompanionUnlocked bool
	BoostT            float64 // Remaining companion boost (s)
	Beaming           bool    // Beam held this tick

	weapons   []Weapon
	unlocked  []bool
	weaponIdx int
	cooldown  float64
	stunT     float64

	rules          config.PlayerConfig
	physics        config.PhysicsConfig
	effectCfg      config.EffectsConfig
	allowConfusion bool
}

// NewPlayer creates a player for the named avatar standing at the start of
// the corridor
func NewPlayer(t *config.Tuning, avatar string, allowConfusion bool) *Player {
	a := t.Avatar(avatar)
	weapons := DefaultWeapons(t)
	p := &Player{
		Body: Body{
			X:     t.Player.StartX,
			Y:     t.World.GroundY - t.Player.Height,
			W:     t.Player.Width,
			H:     t.Player.Height,
			HP:    a.HPMax,
			HPMax: a.HPMax,
			Alive: true,
		},
		Avatar:         a,
		Sanity:         a.SanityMax,
		SanityMax:      a.SanityMax,
		Facing:         1,
		weapons:        weapons,
		unlocked:       make([]bool, len(weapons)),
		rules:          t.Player,
		physics:        t.Physics,
		effectCfg:      t.Effects,
		allowConfusion: allowConfusion,
	}
	p.unlocked[0] = true
	return p
}

// Update applies one tick of input, movement and sanity decay. Status timers
// are not decremented here; the orchestrator ticks them at the end of the frame.
func (p *Player) Update(dt float64, in input.Snapshot, c Collider) {
	if !p.Alive {
		return
	}
	p.Tick(dt)
	p.stunT = math.Max(0, p.stunT-dt)
	p.cooldown = math.Max(0, p.cooldown-dt)
	p.BoostT = math.Max(0, p.BoostT-dt)

	dir := effects.ResolveDirection(in.Dir, &p.Effects, p.allowConfusion)
	if p.stunT == 0 {
		p.VX = float64(dir) * p.Avatar.Speed * p.Effects.SpeedFactor(p.effectCfg.SlowFactor)
		if dir != 0 {
			p.Facing = dir
		}
		if in.Jump && p.Grounded {
			p.VY = -p.Avatar.Jump
		}
	}
	if in.Swap {
		p.SwapWeapon()
	}

	p.Integrate(dt, p.physics.Gravity, p.physics.MaxFallSpeed, c)

	drain := p.rules.SanityDecay
	if p.Effects.Active(effects.Grief) {
		drain += p.effectCfg.GriefDrain
	}
	p.DrainSanity(drain * dt)

	if p.SanityFraction() < p.effectCfg.LowSanityWiggle {
		p.Effects.Apply(effects.Wiggle, p.effectCfg.WiggleDuration)
	}
}

// TakeDamage applies a hit from a source at srcX. It returns false when the
// hit was rejected by the invulnerability window. Hits at or above the flinch
// threshold start that window and knock the player away from the source.
func (p *Player) TakeDamage(amount, srcX float64) bool {
	if !p.Alive || amount <= 0 || p.InvT > 0 {
		return false
	}
	p.SetHP(p.HP - amount)
	p.DrainSanity(amount * p.rules.DamageSanityRatio)

	if amount >= p.rules.FlinchThreshold {
		p.InvT = p.rules.InvulnTime
		away := geom.Sign(p.Center().X - srcX)
		if away == 0 {
			away = float64(-p.Facing)
		}
		p.VX = away * p.rules.KnockbackX
		p.VY = -p.rules.KnockbackY
		p.stunT = knockStun
	}
	return true
}

// Heal restores HP, clamped to the maximum
func (p *Player) Heal(amount float64) {
	p.SetHP(p.HP + amount)
}

// RestoreSanity adds sanity, clamped to the maximum
func (p *Player) RestoreSanity(amount float64) {
	p.Sanity = geom.Clamp(p.Sanity+amount, 0, p.SanityMax)
}

// DrainSanity removes sanity, clamped at zero
func (p *Player) DrainSanity(amount float64) {
	p.Sanity = geom.Clamp(p.Sanity-amount, 0, p.SanityMax)
}

// ApplyEffect starts a status effect. Confusion is ignored when the run
// does not allow it.
func (p *Player) ApplyEffect(k effects.Kind, duration float64) {
	if k == effects.Confusion && !p.allowConfusion {
		return
	}
	p.Effects.Apply(k, duration)
}

// HPFraction returns hp/hpMax
func (p *Player) HPFraction() float64 {
	if p.HPMax <= 0 {
		return 0
	}
	return p.HP / p.HPMax
}

// SanityFraction returns sanity/sanityMax
func (p *Player) SanityFraction() float64 {
	if p.SanityMax <= 0 {
		return 0
	}
	return p.Sanity / p.SanityMax
}

// Depleted reports whether HP or sanity has run out
func (p *Player) Depleted() bool {
	return p.HP <= 0 || p.Sanity <= 0
}

// CurrentWeapon returns the selected weapon. A locked selection snaps back to
// the default weapon.
func (p *Player) CurrentWeapon() Weapon {
	if p.weaponIdx < 0 || p.weaponIdx >= len(p.weapons) || !p.unlocked[p.weaponIdx] {
		p.weaponIdx = 0
	}
	return p.weapons[p.weaponIdx]
}

// SelectWeapon selects a weapon by index, falling back to the default when
// the index is out of range or locked
func (p *Player) SelectWeapon(i int) {
	p.weaponIdx = i
	p.CurrentWeapon()
}

// SwapWeapon cycles to the next weapon in the list
func (p *Player) SwapWeapon() {
	p.SelectWeapon((p.weaponIdx + 1) % len(p.weapons))
}

// WeaponUnlocked reports whether the weapon of the given kind can be used
func (p *Player) WeaponUnlocked(k WeaponKind) bool {
	for i, w := range p.weapons {
		if w.Kind == k {
			return p.unlocked[i]
		}
	}
	return false
}

// UnlockBeam makes the lantern beam selectable
func (p *Player) UnlockBeam() {
	for i, w := range p.weapons {
		if w.Kind == Lantern {
			p.unlocked[i] = true
		}
	}
}

// UnlockCompanion attaches the companion, or boosts it when already attached.
// It returns true when this call unlocked it.
func (p *Player) UnlockCompanion(boost float64) bool {
	if !p.CompanionUnlocked {
		p.CompanionUnlocked = true
		return true
	}
	p.BoostT = math.Max(p.BoostT, boost)
	return false
}

// Muzzle returns the point shots leave from
func (p *Player) Muzzle() geom.Vec {
	return geom.Vec{X: p.X + p.W/2 + float64(p.Facing)*p.W/2, Y: p.Y + p.H*0.35}
}

// TryFire turns a held trigger into a fire request when the selected weapon
// allows it. Revolver shots respect the cooldown and cost sanity per shot;
// the beam drains sanity per second while held.
func (p *Player) TryFire(dt float64, in input.Snapshot, r *dice.Roller) (FireRequest, bool) {
	p.Beaming = false
	if !p.Alive || !in.Fire {
		return FireRequest{}, false
	}

	if in.AimX < p.Center().X {
		p.Facing = -1
	} else {
		p.Facing = 1
	}
	origin := p.Muzzle()
	aim := geom.Vec{X: in.AimX, Y: in.AimY}.Sub(origin)
	if aim.Len() == 0 {
		aim = geom.Vec{X: float64(p.Facing)}
	}

	w := p.CurrentWeapon()
	switch w.Kind {
	case Lantern:
		p.Beaming = true
		p.DrainSanity(w.Beam.SanityDrain * dt)
		return FireRequest{Weapon: Lantern, Owner: OwnerPlayer, Origin: origin, Dir: aim.Norm()}, true
	default:
		if p.cooldown > 0 {
			return FireRequest{}, false
		}
		cfg := w.Projectile
		p.cooldown = cfg.Cooldown
		p.DrainSanity(cfg.SanityCost)

		angle := math.Atan2(aim.Y, aim.X)
		if r != nil && cfg.Spread > 0 {
			angle += r.Range(-cfg.Spread, cfg.Spread)
		}
		return FireRequest{
			Weapon: Revolver,
			Owner:  OwnerPlayer,
			Origin: origin,
			Dir:    geom.Vec{X: math.Cos(angle), Y: math.Sin(angle)},
			Speed:  cfg.BulletSpeed,
			Damage: cfg.Damage,
			Life:   cfg.BulletLife,
			Size:   cfg.BulletSize,
		}, true
	}
}
