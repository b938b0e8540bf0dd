package director

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/dice"
)

func newDirector() (*Director, config.DirectorConfig) {
	tuning := config.DefaultTuning()
	return New(tuning.Director, tuning.Enemies), tuning.Director
}

func healthy(progress float64) Inputs {
	return Inputs{Progress: progress, HPFraction: 1, SanityFraction: 1}
}

func TestSelectMode(t *testing.T) {
	cfg := config.DefaultTuning().Director
	sd := cfg.SpawnDistance

	tests := []struct {
		name string
		in   Inputs
		want Mode
	}{
		{"before spawn distance", healthy(sd - 1), Calm},
		{"start of a band", healthy(sd + 1), Frenetic},
		{"calm tail of a band", healthy(sd + cfg.BandLength*0.9), Calm},
		{"next band", healthy(sd + cfg.BandLength + 10), Frenetic},
		{"survive running out", Inputs{Progress: sd + cfg.BandLength*0.9, Timed: true, TimeLeft: cfg.UrgentTime - 1}, Frenetic},
		{"survive with time to spare", Inputs{Progress: sd + cfg.BandLength*0.9, Timed: true, TimeLeft: cfg.UrgentTime + 60}, Calm},
		{"urgency never beats the spawn distance", Inputs{Progress: sd - 1, Timed: true, TimeLeft: 1}, Calm},
		{"rescue overdue", Inputs{Progress: cfg.RescueUrgency + 1, RescuePending: true}, Frenetic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectMode(tt.in, sd, cfg))
		})
	}
}

func TestHeatApproachesModeTarget(t *testing.T) {
	d, cfg := newDirector()
	in := healthy(cfg.SpawnDistance + 10)

	prev := d.Heat
	for i := 0; i < 10; i++ {
		d.Update(0.05, in)
		assert.Equal(t, Frenetic, d.Mode)
		assert.Greater(t, d.Heat, prev, "heat rises smoothly")
		assert.Less(t, d.Heat, cfg.FreneticHeat, "no snapping to the target")
		prev = d.Heat
	}
}

func TestMercyRisesWhileStruggling(t *testing.T) {
	d, cfg := newDirector()

	lowHP := Inputs{Progress: 10, HPFraction: cfg.LowHPFraction - 0.01, SanityFraction: 1}
	prev := d.Mercy
	for i := 0; i < 40; i++ {
		d.Update(0.05, lowHP)
		assert.Greater(t, d.Mercy, prev)
		prev = d.Mercy
	}

	lowSanity := Inputs{Progress: 10, HPFraction: 1, SanityFraction: cfg.LowSanityFraction - 0.01}
	for i := 0; i < 40; i++ {
		d.Update(0.05, lowSanity)
		assert.Greater(t, d.Mercy, prev)
		prev = d.Mercy
	}

	for i := 0; i < 40; i++ {
		d.Update(0.05, healthy(10))
		assert.Less(t, d.Mercy, prev, "mercy decays once the player recovers")
		prev = d.Mercy
	}
}

func TestMercyRelaxesParams(t *testing.T) {
	d, _ := newDirector()
	d.Heat = 0.5

	d.Mercy = 0
	hard := d.Params()
	d.Mercy = 1
	soft := d.Params()

	assert.Less(t, soft.MaxEnemies, hard.MaxEnemies)
	assert.Greater(t, soft.SpawnInterval, hard.SpawnInterval)
	assert.Less(t, soft.EliteChance, hard.EliteChance)
}

func TestWavesOnlySpawnWhenFrenetic(t *testing.T) {
	d, cfg := newDirector()
	r := dice.Seeded(3)

	for i := 0; i < 200; i++ {
		d.Update(0.05, healthy(cfg.SpawnDistance-100))
		_, ok := d.Wave(r, 0)
		require.False(t, ok, "calm never spawns")
	}

	d.Update(0.05, healthy(cfg.SpawnDistance+10))
	w, ok := d.Wave(r, 0)
	require.True(t, ok, "the interval elapsed while calm")
	assert.NotEmpty(t, w.Members)
	assert.LessOrEqual(t, len(w.Members), cfg.WaveMax)
	for _, m := range w.Members {
		assert.Contains(t, []string{"angel", "fiend", "golem", "crazy", "wailer"}, m.Kind)
	}

	_, ok = d.Wave(r, 0)
	assert.False(t, ok, "the interval restarts after a wave")
}

func TestWaveRespectsEnemyCap(t *testing.T) {
	d, cfg := newDirector()
	r := dice.Seeded(4)
	for i := 0; i < 100; i++ {
		d.Update(0.05, healthy(cfg.SpawnDistance+10))
	}

	limit := d.Params().MaxEnemies
	_, ok := d.Wave(r, limit)
	assert.False(t, ok)

	w, ok := d.Wave(r, limit-1)
	require.True(t, ok)
	assert.Len(t, w.Members, 1)
}

func TestLowerSpawnDistanceIsFloored(t *testing.T) {
	d, cfg := newDirector()

	d.LowerSpawnDistance(100)
	assert.Equal(t, cfg.SpawnDistance-100, d.SpawnDistance)

	d.LowerSpawnDistance(1e6)
	assert.Equal(t, cfg.MinSpawnDistance, d.SpawnDistance)
}

func TestMercyDropNeedsHighMercy(t *testing.T) {
	d, cfg := newDirector()
	r := dice.Seeded(5)

	d.Mercy = 0
	assert.False(t, d.MercyDrop(100, r))

	d.Mercy = 1
	require.True(t, d.MercyDrop(1/cfg.MercyDropChance, r), "chance*dt of one always drops")
	assert.False(t, d.MercyDrop(1/cfg.MercyDropChance, r), "cooling down")
}
