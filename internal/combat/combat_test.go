package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/dice"
	"chosenoffset.com/nightcorridor/internal/core/geom"
	"chosenoffset.com/nightcorridor/internal/effects"
	"chosenoffset.com/nightcorridor/internal/entity"
	"chosenoffset.com/nightcorridor/internal/world"
)

const groundY = 460.0

func emptyWorld() *world.World {
	return &world.World{GroundY: groundY, Length: 4000, ExitX: 3760}
}

func bulletAt(x, y float64, owner entity.Owner) *Bullet {
	return &Bullet{Pos: geom.Vec{X: x, Y: y}, Damage: 24, Owner: owner, Life: 1, Size: 6, Alive: true}
}

func golemAt(t *config.Tuning, x float64) *entity.Enemy {
	return entity.NewEnemy(entity.Golem, t.Enemies["golem"], false, 1, x, groundY, 0)
}

func TestMoralFailureWinsOverOverlappingEnemy(t *testing.T) {
	tuning := config.DefaultTuning()
	d := entity.NewDaughter(tuning.Daughter, 500, groundY)
	e := golemAt(tuning, 490)
	hp := e.HP

	c := d.Center()
	b := bulletAt(c.X, c.Y, entity.OwnerPlayer)
	require.True(t, b.Rect().Overlaps(e.Rect()), "the bullet must overlap both")

	out := Resolve([]*Bullet{b}, Arena{World: emptyWorld(), Daughter: d, Enemies: []*entity.Enemy{e}}, dice.Seeded(1), tuning)

	assert.True(t, out.MoralFailure)
	assert.False(t, b.Alive)
	assert.Equal(t, hp, e.HP, "the enemy is never reached")
	assert.Empty(t, out.Hits)
}

func TestMoralFailureShortCircuitsRemainingBullets(t *testing.T) {
	tuning := config.DefaultTuning()
	d := entity.NewDaughter(tuning.Daughter, 500, groundY)
	e := golemAt(tuning, 1000)

	c := d.Center()
	first := bulletAt(c.X, c.Y, entity.OwnerCompanion)
	ec := e.Center()
	second := bulletAt(ec.X, ec.Y, entity.OwnerPlayer)

	out := Resolve([]*Bullet{first, second}, Arena{World: emptyWorld(), Daughter: d, Enemies: []*entity.Enemy{e}}, dice.Seeded(1), tuning)

	assert.True(t, out.MoralFailure)
	assert.True(t, second.Alive)
	assert.Equal(t, e.HPMax, e.HP)
}

func TestSavedDaughterIsNotATarget(t *testing.T) {
	tuning := config.DefaultTuning()
	d := entity.NewDaughter(tuning.Daughter, 500, groundY)
	d.Rescue()

	c := d.Center()
	b := bulletAt(c.X, c.Y, entity.OwnerPlayer)
	out := Resolve([]*Bullet{b}, Arena{World: emptyWorld(), Daughter: d}, dice.Seeded(1), tuning)

	assert.False(t, out.MoralFailure)
	assert.True(t, b.Alive)
}

func TestChestBreaksOnceAndConsumesOnlyTheFirstBullet(t *testing.T) {
	tuning := config.DefaultTuning()
	w := emptyWorld()
	chest := &world.Prop{Rect: geom.Rect{X: 300, Y: groundY - 28, W: 28, H: 28}, Kind: world.Chest, Seed: 99}
	w.Props = []*world.Prop{chest}

	e := golemAt(tuning, 290)
	c := chest.Center()
	first := bulletAt(c.X, c.Y, entity.OwnerPlayer)

	out := Resolve([]*Bullet{first}, Arena{World: w, Enemies: []*entity.Enemy{e}}, dice.Seeded(1), tuning)
	assert.True(t, chest.Broken)
	assert.False(t, first.Alive)
	require.Len(t, out.Drops, 1, "chest tables always drop")
	assert.Equal(t, e.HPMax, e.HP, "a bullet that broke a prop cannot also hurt an enemy")

	second := bulletAt(c.X, c.Y, entity.OwnerPlayer)
	out = Resolve([]*Bullet{second}, Arena{World: w}, dice.Seeded(1), tuning)
	assert.True(t, second.Alive, "broken props do not consume bullets")
	assert.Empty(t, out.Drops)
	assert.Empty(t, out.Broken)
}

func TestBulletHitsFirstOverlappingEnemyOnly(t *testing.T) {
	tuning := config.DefaultTuning()
	a := golemAt(tuning, 300)
	b := golemAt(tuning, 310)

	ac := a.Center()
	bullet := bulletAt(ac.X+5, ac.Y, entity.OwnerPlayer)
	out := Resolve([]*Bullet{bullet}, Arena{World: emptyWorld(), Enemies: []*entity.Enemy{a, b}}, dice.Seeded(1), tuning)

	require.Len(t, out.Hits, 1)
	assert.Same(t, a, out.Hits[0].Enemy)
	assert.Equal(t, a.HPMax-24, a.HP)
	assert.Equal(t, b.HPMax, b.HP)
}

func TestKillRollsDeathDrops(t *testing.T) {
	tuning := config.DefaultTuning()
	tuning.Drops.EnemyDeath = map[string]float64{"medkit": 1, "tonic": 1, "bogus": 1}
	e := golemAt(tuning, 300)
	e.HP = 1

	ec := e.Center()
	out := Resolve([]*Bullet{bulletAt(ec.X, ec.Y, entity.OwnerPlayer)}, Arena{World: emptyWorld(), Enemies: []*entity.Enemy{e}}, dice.Seeded(1), tuning)

	require.Len(t, out.Kills, 1)
	require.Len(t, out.Drops, 2)
	assert.Equal(t, Medkit, out.Drops[0].Kind)
	assert.Equal(t, Tonic, out.Drops[1].Kind)
}

func TestEnemyBulletsHitThePlayer(t *testing.T) {
	tuning := config.DefaultTuning()
	p := entity.NewPlayer(tuning, entity.Warden, true)
	d := entity.NewDaughter(tuning.Daughter, p.X+300, groundY)
	e := golemAt(tuning, p.X)

	pc := p.Center()
	b := bulletAt(pc.X, pc.Y, entity.OwnerEnemy)
	b.Damage = 12
	require.True(t, b.Rect().Overlaps(e.Rect()))

	out := Resolve([]*Bullet{b}, Arena{World: emptyWorld(), Player: p, Daughter: d, Enemies: []*entity.Enemy{e}}, dice.Seeded(1), tuning)
	assert.False(t, out.MoralFailure)
	require.Len(t, out.PlayerHits, 1)
	assert.Equal(t, p.HPMax-12, p.HP)
	assert.Equal(t, e.HPMax, e.HP, "enemy bullets pass through enemies")
	assert.False(t, b.Alive)
}

func TestEnemyBulletOnUnsavedDaughterIsMoralFailure(t *testing.T) {
	tuning := config.DefaultTuning()
	p := entity.NewPlayer(tuning, entity.Warden, true)
	d := entity.NewDaughter(tuning.Daughter, p.X+300, groundY)

	dc := d.Center()
	b := bulletAt(dc.X, dc.Y, entity.OwnerEnemy)
	out := Resolve([]*Bullet{b}, Arena{World: emptyWorld(), Player: p, Daughter: d}, dice.Seeded(1), tuning)
	assert.True(t, out.MoralFailure)
	assert.False(t, b.Alive)
	assert.Equal(t, p.HPMax, p.HP)

	d.Rescue()
	b = bulletAt(dc.X, dc.Y, entity.OwnerEnemy)
	out = Resolve([]*Bullet{b}, Arena{World: emptyWorld(), Player: p, Daughter: d}, dice.Seeded(1), tuning)
	assert.False(t, out.MoralFailure)
	assert.True(t, b.Alive)
}

func TestUpdateBullets(t *testing.T) {
	w := emptyWorld()
	w.Obstacles = []world.Obstacle{{Rect: geom.Rect{X: 200, Y: 300, W: 40, H: 160}}}

	flying := NewBullet(entity.FireRequest{Origin: geom.Vec{X: 100, Y: 100}, Dir: geom.Vec{X: 1}, Speed: 100, Life: 2, Size: 6})
	blocked := NewBullet(entity.FireRequest{Origin: geom.Vec{X: 190, Y: 350}, Dir: geom.Vec{X: 1}, Speed: 200, Life: 2, Size: 6})
	expiring := NewBullet(entity.FireRequest{Origin: geom.Vec{X: 100, Y: 100}, Dir: geom.Vec{X: 1}, Speed: 100, Life: 0.05, Size: 6})
	leaving := NewBullet(entity.FireRequest{Origin: geom.Vec{X: 5, Y: 100}, Dir: geom.Vec{X: -1}, Speed: 400, Life: 2, Size: 6})

	UpdateBullets(0.1, []*Bullet{flying, blocked, expiring, leaving}, w)

	assert.True(t, flying.Alive)
	assert.InDelta(t, 110, flying.Pos.X, 1e-9)
	assert.False(t, blocked.Alive)
	assert.False(t, expiring.Alive)
	assert.False(t, leaving.Alive)
}

func TestPickupsAreCollectedAndApplied(t *testing.T) {
	tuning := config.DefaultTuning()
	p := entity.NewPlayer(tuning, entity.Warden, true)
	pc := p.Center()

	near := NewPickup(Medkit, pc.X+10, groundY)
	far := NewPickup(Tonic, pc.X+400, groundY)
	got := UpdatePickups(0.016, []*Pickup{near, far}, p, tuning.Player.InteractRadius)

	assert.Equal(t, []PickupKind{Medkit}, got)
	assert.False(t, near.Alive)
	assert.True(t, far.Alive)

	p.TakeDamage(50, p.X)
	Apply(Medkit, p, tuning)
	assert.Equal(t, p.HPMax-50+tuning.Pickups["medkit"].Amount, p.HP)

	Apply(Relic, p, tuning)
	assert.True(t, p.WeaponUnlocked(entity.Lantern))

	Apply(Charm, p, tuning)
	assert.True(t, p.CompanionUnlocked)
	Apply(Charm, p, tuning)
	assert.Equal(t, tuning.Pickups["charm"].Duration, p.BoostT)

	Apply(Memento, p, tuning)
	assert.True(t, p.Effects.Active(effects.Memory))
}

func TestBeamStopsAtObstacles(t *testing.T) {
	tuning := config.DefaultTuning()
	w := emptyWorld()
	w.Obstacles = []world.Obstacle{{Rect: geom.Rect{X: 400, Y: 300, W: 40, H: 160}}}

	inFront := golemAt(tuning, 250)
	behind := golemAt(tuning, 500)
	origin := geom.Vec{X: 100, Y: groundY - 30}

	res := FireBeam(origin, geom.Vec{X: 1}, 0.5, tuning.Beam, w, []*entity.Enemy{inFront, behind})

	assert.InDelta(t, 400, res.End.X, tuning.Beam.Step)
	require.Len(t, res.Hits, 1)
	assert.Same(t, inFront, res.Hits[0].Enemy)
	assert.InDelta(t, inFront.HPMax-tuning.Beam.DPS*0.5, inFront.HP, 1e-9)
	assert.Equal(t, behind.HPMax, behind.HP)
}

func TestParsePickupKind(t *testing.T) {
	for _, name := range []string{"medkit", "tonic", "relic", "charm", "memento"} {
		k, ok := ParsePickupKind(name)
		assert.True(t, ok)
		assert.Equal(t, name, k.String())
	}
	_, ok := ParsePickupKind("")
	assert.False(t, ok)
}
