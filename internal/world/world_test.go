package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/dice"
	"chosenoffset.com/nightcorridor/internal/core/geom"
	"chosenoffset.com/nightcorridor/internal/entity"
)

func flatWorld(obstacles ...geom.Rect) *World {
	w := &World{GroundY: 400, Length: 2000, ExitX: 1800}
	for _, r := range obstacles {
		w.Obstacles = append(w.Obstacles, Obstacle{r})
	}
	return w
}

func TestGenerateIsStableForASeed(t *testing.T) {
	cfg := config.DefaultTuning().World

	a := Generate(cfg, dice.Seeded(42))
	b := Generate(cfg, dice.Seeded(42))
	assert.Equal(t, a, b)

	require.NotEmpty(t, a.Obstacles)
	assert.Equal(t, cfg.Length-cfg.ExitMargin, a.ExitX)
	for _, o := range a.Obstacles {
		assert.GreaterOrEqual(t, o.X, cfg.StartClear)
		assert.InDelta(t, cfg.GroundY, o.Bottom(), 1e-9, "obstacles rest on the ground")
		assert.Less(t, o.Right(), a.ExitX)
	}
	for _, p := range a.Props {
		assert.Less(t, p.Kind, numPropKinds)
		assert.Less(t, p.Right(), a.ExitX)
	}
}

func TestGroundClamp(t *testing.T) {
	w := flatWorld()
	b := &entity.Body{X: 100, Y: 380, W: 20, H: 40, VY: 300}

	w.ResolveEntityCollision(b)

	assert.Equal(t, 360.0, b.Y)
	assert.Equal(t, 0.0, b.VY)
	assert.True(t, b.Grounded)
}

func TestObstacleResolution(t *testing.T) {
	block := geom.Rect{X: 200, Y: 300, W: 100, H: 100}

	tests := []struct {
		name     string
		body     entity.Body
		wantX    float64
		wantY    float64
		wantVX   float64
		wantVY   float64
		grounded bool
	}{
		{
			name:     "landing on top",
			body:     entity.Body{X: 240, Y: 255, W: 20, H: 50, VX: 50, VY: 200},
			wantX:    240,
			wantY:    250,
			wantVX:   50,
			wantVY:   0,
			grounded: true,
		},
		{
			name:   "blocked from the left",
			body:   entity.Body{X: 185, Y: 340, W: 20, H: 50, VX: 120, VY: 0},
			wantX:  180,
			wantY:  340,
			wantVX: 0,
			wantVY: 0,
		},
		{
			name:   "blocked from the right",
			body:   entity.Body{X: 296, Y: 340, W: 20, H: 50, VX: -120, VY: 0},
			wantX:  300,
			wantY:  340,
			wantVX: 0,
			wantVY: 0,
		},
		{
			name:   "equal penetration resolves horizontally",
			body:   entity.Body{X: 190, Y: 260, W: 20, H: 50, VX: 10, VY: 10},
			wantX:  180,
			wantY:  260,
			wantVX: 0,
			wantVY: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := flatWorld(block)
			b := tt.body
			w.ResolveEntityCollision(&b)

			assert.InDelta(t, tt.wantX, b.X, 1e-9)
			assert.InDelta(t, tt.wantY, b.Y, 1e-9)
			assert.Equal(t, tt.wantVX, b.VX)
			assert.Equal(t, tt.wantVY, b.VY)
			assert.Equal(t, tt.grounded, b.Grounded)
		})
	}
}

func TestCorridorBounds(t *testing.T) {
	w := flatWorld()
	b := &entity.Body{X: -15, Y: 100, W: 20, H: 40, VX: -80}
	w.ResolveEntityCollision(b)
	assert.Equal(t, 0.0, b.X)
	assert.Equal(t, 0.0, b.VX)

	b = &entity.Body{X: 1995, Y: 100, W: 20, H: 40, VX: 80}
	w.ResolveEntityCollision(b)
	assert.Equal(t, 1980.0, b.X)
}

func TestPropBreaksOnce(t *testing.T) {
	p := &Prop{Rect: geom.Rect{X: 10, Y: 10, W: 20, H: 20}, Kind: Chest, Seed: 7}
	table := config.DefaultTuning().Props["chest"]

	drop, broke := p.Break(table)
	require.True(t, broke)
	assert.NotEmpty(t, drop, "chest tables always yield something")
	assert.True(t, p.Broken)

	drop, broke = p.Break(table)
	assert.False(t, broke)
	assert.Empty(t, drop)

	// The roll depends only on the seed
	twin := &Prop{Kind: Chest, Seed: 7}
	again, _ := twin.Break(table)
	first := &Prop{Kind: Chest, Seed: 7}
	want, _ := first.Break(table)
	assert.Equal(t, want, again)
}

func TestPropAtSkipsBroken(t *testing.T) {
	w := flatWorld()
	p := &Prop{Rect: geom.Rect{X: 100, Y: 372, W: 28, H: 28}, Kind: Bin}
	w.Props = []*Prop{p}

	hit := geom.Rect{X: 110, Y: 380, W: 6, H: 6}
	assert.Same(t, p, w.PropAt(hit))

	p.Broken = true
	assert.Nil(t, w.PropAt(hit))
}

func TestRayCastStopsAtObstacle(t *testing.T) {
	w := flatWorld(geom.Rect{X: 300, Y: 200, W: 50, H: 200})

	d := w.RayCast(geom.Vec{X: 100, Y: 250}, geom.Vec{X: 1}, 500, 5)
	assert.InDelta(t, 200, d, 5)

	d = w.RayCast(geom.Vec{X: 100, Y: 250}, geom.Vec{X: -1}, 50, 5)
	assert.Equal(t, 50.0, d, "nothing in range returns the max distance")

	d = w.RayCast(geom.Vec{X: 100, Y: 350}, geom.Vec{Y: 1}, 500, 5)
	assert.InDelta(t, 50, d, 5, "the ground stops the ray")
}

func TestBulletBlocked(t *testing.T) {
	w := flatWorld(geom.Rect{X: 300, Y: 300, W: 50, H: 100})

	assert.True(t, w.BulletBlocked(geom.Rect{X: 310, Y: 320, W: 6, H: 6}))
	assert.True(t, w.BulletBlocked(geom.Rect{X: 100, Y: 398, W: 6, H: 6}))
	assert.False(t, w.BulletBlocked(geom.Rect{X: 100, Y: 200, W: 6, H: 6}))

	assert.True(t, w.OutOfBounds(geom.Rect{X: -20, Y: 200, W: 6, H: 6}))
	assert.False(t, w.OutOfBounds(geom.Rect{X: 20, Y: 200, W: 6, H: 6}))
}

func TestUpdateCameraClamps(t *testing.T) {
	w := flatWorld()

	w.UpdateCamera(100, 960)
	assert.Equal(t, 0.0, w.CameraX)

	w.UpdateCamera(1000, 960)
	assert.Equal(t, 680.0, w.CameraX)

	w.UpdateCamera(1990, 960)
	assert.Equal(t, 1040.0, w.CameraX)
}
