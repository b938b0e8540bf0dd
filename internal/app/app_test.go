package app

import (
	"context"
	"os"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/game"
	"chosenoffset.com/nightcorridor/internal/logger"
	"chosenoffset.com/nightcorridor/internal/render"
	"chosenoffset.com/nightcorridor/internal/render/rendertest"
	"chosenoffset.com/nightcorridor/internal/score"
)

func TestMain(m *testing.M) {
	logger.Discard()
	os.Exit(m.Run())
}

type fakeStore struct {
	mu    sync.Mutex
	subs  []score.Submission
	reads int
}

func (f *fakeStore) Submit(_ context.Context, s score.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, s)
	return nil
}

func (f *fakeStore) Top(_ context.Context, n int) ([]score.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.subs[:min(n, len(f.subs))], nil
}

func (f *fakeStore) submitted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *fakeStore) first() score.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs[0]
}

type harness struct {
	app   *App
	in    *rendertest.Input
	r     *rendertest.Renderer
	audio *rendertest.Audio
	store *fakeStore
	clock time.Time
}

func newHarness(t *testing.T, mutate func(*config.Settings)) *harness {
	t.Helper()
	s := config.DefaultSettings()
	s.AllowImages = false
	s.PlayerID = "install-1"
	s.PlayerName = "Ada"
	if mutate != nil {
		mutate(s)
	}

	h := &harness{
		in:    rendertest.NewInput(),
		r:     &rendertest.Renderer{},
		audio: &rendertest.Audio{},
		store: &fakeStore{},
		clock: time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC),
	}
	async := score.NewAsync(h.store, 4)
	t.Cleanup(async.Close)

	h.app = New(Options{
		Settings:    s,
		Renderer:    h.r,
		Input:       h.in,
		Audio:       h.audio,
		Scores:      async,
		Leaderboard: h.store,
		Now:         func() time.Time { return h.clock },
	})
	return h
}

// tick advances the clock by 1/60 s, taps keys for this frame and updates
func (h *harness) tick(t *testing.T, keys ...render.Key) {
	t.Helper()
	for _, k := range keys {
		h.in.Tap(k)
	}
	h.clock = h.clock.Add(time.Second / 60)
	require.NoError(t, h.app.Update())
	h.in.EndFrame()
	for _, k := range keys {
		delete(h.in.Pressed, k)
	}
}

func TestMenuStartsRun(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, StateMenu, h.app.State)
	assert.Equal(t, 1, h.store.reads, "the menu loads the leaderboard")

	h.tick(t, render.KeyEnter)
	require.Equal(t, StatePlaying, h.app.State)
	assert.True(t, h.app.Game().Running())
	assert.Equal(t, "warden", h.app.Game().Config().Avatar)

	for range 30 {
		h.tick(t)
	}
	h.app.Draw(&rendertest.Image{W: 960, H: 540})
	assert.Positive(t, h.r.Shapes)
	assert.Contains(t, h.r.Texts, "Survive until dawn")
}

func TestEscapeAbandonsAndSubmits(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(t, render.KeyEnter)
	h.tick(t)

	h.tick(t, render.KeyEscape)
	require.Equal(t, StateResult, h.app.State)
	end, ok := h.app.Game().Result()
	require.True(t, ok)
	assert.Equal(t, game.TagAbandon, end.Tag)

	require.Eventually(t, func() bool { return h.store.submitted() == 1 }, time.Second, 5*time.Millisecond)
	sub := h.store.first()
	assert.Equal(t, end.RunID, sub.RunID)
	assert.Equal(t, "install-1", sub.PlayerID)
	assert.Equal(t, "Ada", sub.Name)
	assert.Equal(t, game.TagAbandon, sub.Result)

	// Enter is ignored until the screen has been up for a moment
	h.tick(t, render.KeyEnter)
	assert.Equal(t, StateResult, h.app.State)

	h.clock = h.clock.Add(time.Second)
	recorded := false
	for i := 0; i < 200 && !recorded; i++ {
		h.r.Texts = nil
		h.tick(t)
		h.app.Draw(&rendertest.Image{W: 960, H: 540})
		if recorded = contains(h.r.Texts, "Score recorded"); !recorded {
			time.Sleep(5 * time.Millisecond)
		}
	}
	assert.True(t, recorded)

	h.tick(t, render.KeyEnter)
	assert.Equal(t, StateMenu, h.app.State)
	assert.Equal(t, 2, h.store.reads)
}

func TestInvalidNameIsReportedNotSent(t *testing.T) {
	h := newHarness(t, func(s *config.Settings) { s.PlayerName = "  " })
	h.tick(t, render.KeyEnter)
	h.tick(t, render.KeyEscape)
	require.Equal(t, StateResult, h.app.State)

	h.app.Draw(&rendertest.Image{W: 960, H: 540})
	assert.True(t, contains(h.r.Texts, "Score not sent: invalid display name"))
	assert.Zero(t, h.store.submitted())
}

func TestPlayCuesMapsKinds(t *testing.T) {
	a := &rendertest.Audio{}
	playCues(a, []game.Cue{{Kind: game.CueShoot, Amplitude: 0.5}, {Kind: game.CueLaser, Amplitude: 1}})
	require.Len(t, a.Played, 2)
	assert.True(t, a.Played[0].Tone.Noise)
	assert.Equal(t, 0.5, a.Played[0].Volume)
	assert.Equal(t, cueTones[game.CueLaser], a.Played[1].Tone)

	playCues(nil, []game.Cue{{Kind: game.CueHit}})
}

func TestSceneFallsBackToShapes(t *testing.T) {
	h := newHarness(t, nil)
	h.tick(t, render.KeyEnter)
	h.tick(t)

	f := h.app.Game().Frame()
	require.NotEmpty(t, f.Drawables)
	before := h.r.Shapes
	h.app.scene.Draw(&rendertest.Image{W: 960, H: 540}, f, 460)
	assert.GreaterOrEqual(t, h.r.Shapes-before, len(f.Drawables))
}

func contains(list []string, s string) bool {
	return slices.Contains(list, s)
}
