package dialogue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/dice"
	"chosenoffset.com/nightcorridor/internal/effects"
)

type recorder struct {
	hp, sanity   float64
	statuses     map[effects.Kind]float64
	beam, comp   int
	spawnLowered float64
	pickups      []string
}

func newRecorder() *recorder {
	return &recorder{statuses: make(map[effects.Kind]float64)}
}

func (r *recorder) Heal(a float64)                        { r.hp += a }
func (r *recorder) Hurt(a float64)                        { r.hp -= a }
func (r *recorder) RestoreSanity(a float64)               { r.sanity += a }
func (r *recorder) DrainSanity(a float64)                 { r.sanity -= a }
func (r *recorder) ApplyStatus(k effects.Kind, d float64) { r.statuses[k] = d }
func (r *recorder) UnlockBeam()                           { r.beam++ }
func (r *recorder) UnlockCompanion()                      { r.comp++ }
func (r *recorder) LowerSpawnDistance(by float64)         { r.spawnLowered += by }

func (r *recorder) SpawnPickup(kind string) bool {
	if kind == "" {
		return false
	}
	r.pickups = append(r.pickups, kind)
	return true
}

func TestChoiceRunsEffectsOnceAndPops(t *testing.T) {
	lib := DefaultLibrary()
	enc, ok := lib.Get("weeping_nurse")
	require.True(t, ok)

	var s Stack
	s.Push(enc)
	require.True(t, s.Active())

	rec := newRecorder()
	choice, err := s.Choose(0, rec, lib)
	require.NoError(t, err)
	assert.Equal(t, "Comfort her", choice.Label)
	assert.Equal(t, 25.0, rec.hp)
	assert.Equal(t, 6.0, rec.statuses[effects.Grief])
	assert.False(t, s.Active())

	_, err = s.Choose(0, rec, lib)
	assert.ErrorIs(t, err, ErrNoEncounter)
	assert.Equal(t, 25.0, rec.hp, "effects ran exactly once")
}

func TestInvalidChoiceKeepsEncounterOpen(t *testing.T) {
	lib := DefaultLibrary()
	enc, _ := lib.Get("stray_dog")

	var s Stack
	s.Push(enc)
	_, err := s.Choose(5, newRecorder(), lib)
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Same(t, enc, s.Top())
}

func TestOnlyTopIsInteractiveAndNestedOpens(t *testing.T) {
	lib := DefaultLibrary()
	door, _ := lib.Get("whispering_door")
	dog, _ := lib.Get("stray_dog")

	var s Stack
	s.Push(dog)
	s.Push(door)
	assert.Same(t, door, s.Top())

	rec := newRecorder()
	_, err := s.Choose(0, rec, lib)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, "behind_the_door", s.Top().ID)
	assert.Zero(t, rec.comp, "the encounter underneath was not touched")

	_, err = s.Choose(0, rec, lib)
	require.NoError(t, err)
	assert.Equal(t, []string{"relic"}, rec.pickups)
	assert.Equal(t, -15.0, rec.hp)
	assert.Same(t, dog, s.Top())
}

func TestDispatchUnknownKind(t *testing.T) {
	err := Dispatch(Effect{Kind: "summon"}, &Context{Target: newRecorder()})
	assert.Error(t, err)

	err = Dispatch(Effect{Kind: Status, Name: "on fire"}, &Context{Target: newRecorder()})
	assert.Error(t, err)
}

func TestRegisterEffectExtendsDispatcher(t *testing.T) {
	const kind EffectKind = "test_double_heal"
	RegisterEffect(kind, func(e Effect, ctx *Context) error {
		ctx.Target.Heal(e.Amount * 2)
		return nil
	})
	defer delete(effectRegistry, kind)

	rec := newRecorder()
	require.NoError(t, Dispatch(Effect{Kind: kind, Amount: 5}, &Context{Target: rec}))
	assert.Equal(t, 10.0, rec.hp)
}

func TestLibraryValidation(t *testing.T) {
	_, err := NewLibrary([]Encounter{{ID: "a"}})
	assert.Error(t, err, "no choices")

	_, err = NewLibrary([]Encounter{{ID: "a", Choices: []Choice{{Effects: []Effect{{Kind: Open, Name: "b"}}}}}})
	assert.Error(t, err, "opens a missing encounter")

	_, err = NewLibrary([]Encounter{
		{ID: "a", Choices: []Choice{{Label: "x"}}},
		{ID: "a", Choices: []Choice{{Label: "y"}}},
	})
	assert.Error(t, err, "duplicate ids")
}

func TestLoadLibrary(t *testing.T) {
	lib, err := LoadLibrary(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLibrary().IDs(), lib.IDs())

	path := filepath.Join(t.TempDir(), "encounters.yaml")
	data := `
encounters:
  - id: candle
    title: A Candle
    body: It is still warm.
    choices:
      - label: Take it
        hint: +sanity
        effects:
          - kind: soothe
            amount: 10
          - kind: status
            name: slowed
            duration: 2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	lib, err = LoadLibrary(path)
	require.NoError(t, err)
	enc, ok := lib.Get("candle")
	require.True(t, ok)
	require.Len(t, enc.Choices[0].Effects, 2)
	assert.Equal(t, Soothe, enc.Choices[0].Effects[0].Kind)
	assert.Equal(t, "slowed", enc.Choices[0].Effects[1].Name)
}

func TestRandomSkipsNestedAndLast(t *testing.T) {
	lib := DefaultLibrary()
	r := dice.Seeded(9)
	for i := 0; i < 50; i++ {
		enc, ok := lib.Random(r, "music_box")
		require.True(t, ok)
		assert.False(t, enc.Nested)
		assert.NotEqual(t, "music_box", enc.ID)
	}
}

func TestTriggerGates(t *testing.T) {
	cfg := config.DialogueConfig{Cooldown: 10, RetryDelay: 2, Chance: 1, MinProgress: 100}
	r := dice.Seeded(1)

	tr := NewTrigger(cfg)
	assert.False(t, tr.Update(5, true, 0, 500, r), "cooldown pending")
	assert.False(t, tr.Update(5, false, 0, 500, r), "frenetic")
	assert.False(t, tr.Update(1, true, 2, 500, r), "enemies present")
	assert.False(t, tr.Update(1, true, 0, 50, r), "too early in the corridor")
	assert.True(t, tr.Update(1, true, 0, 500, r))
	assert.Equal(t, cfg.Cooldown, tr.Remaining())

	cfg.Chance = 0
	never := NewTrigger(cfg)
	assert.False(t, never.Update(10, true, 0, 500, r))
	assert.Equal(t, cfg.RetryDelay, never.Remaining(), "failed rolls wait the retry delay")
}
