// Package app is the windowed front end. It switches between the start menu,
// a running game and the result screen, feeds wall-clock time and sampled
// input to the simulation, and draws what each tick produced.
package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/dialogue"
	"chosenoffset.com/nightcorridor/internal/game"
	"chosenoffset.com/nightcorridor/internal/input"
	"chosenoffset.com/nightcorridor/internal/logger"
	"chosenoffset.com/nightcorridor/internal/render"
	"chosenoffset.com/nightcorridor/internal/render/assets"
	"chosenoffset.com/nightcorridor/internal/render/lighting"
	"chosenoffset.com/nightcorridor/internal/score"
	"chosenoffset.com/nightcorridor/internal/ui/dialog"
	"chosenoffset.com/nightcorridor/internal/ui/hud"
	"chosenoffset.com/nightcorridor/internal/ui/menu"
)

// State is the current screen
type State int

const (
	StateMenu State = iota
	StatePlaying
	StateResult
)

const (
	leaderboardSize    = 5
	leaderboardTimeout = time.Second
	calmAmbient        = 0.18
	freneticAmbient    = 0.08
	muzzleFlashTime    = 0.08
)

var muzzleFlash = lighting.LightSource{Radius: 140, Intensity: 0.6}

// Leaderboard reads the best scores for the menu
type Leaderboard interface {
	Top(ctx context.Context, n int) ([]score.Submission, error)
}

// Options wires the app to its collaborators. Scores, Leaderboard and Audio
// may be nil.
type Options struct {
	Settings    *config.Settings
	Tuning      *config.Tuning
	Library     *dialogue.Library
	Renderer    render.Renderer
	Input       render.InputManager
	Loader      render.ResourceLoader
	Audio       render.AudioPlayer
	Scores      *score.Async
	Leaderboard Leaderboard
	Now         func() time.Time
}

// App implements render.Game
type App struct {
	ScreenWidth  int
	ScreenHeight int
	State        State

	settings *config.Settings
	tuning   *config.Tuning
	renderer render.Renderer
	input    render.InputManager
	sampler  *input.Sampler
	audio    render.AudioPlayer
	scores   *score.Async
	board    Leaderboard
	now      func() time.Time
	last     time.Time

	game   *game.Game
	frame  game.Frame
	menu   *menu.MainMenu
	result *menu.ResultScreen
	hud    *hud.HUD
	dialog *dialog.Panel
	lights *lighting.Manager
	scene  *Scene
}

// New creates the app showing the start menu
func New(opts Options) *App {
	s := opts.Settings
	if s == nil {
		s = config.DefaultSettings()
	}
	t := opts.Tuning
	if t == nil {
		t = config.DefaultTuning()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	avatars := make([]string, 0, len(t.Avatars))
	for _, a := range t.Avatars {
		avatars = append(avatars, a.Name)
	}

	lights := lighting.NewManager()
	sprites := assets.Load(opts.Loader, s.AssetDir, s.AllowImages)

	a := &App{
		ScreenWidth:  s.ScreenWidth,
		ScreenHeight: s.ScreenHeight,
		State:        StateMenu,
		settings:     s,
		tuning:       t,
		renderer:     opts.Renderer,
		input:        opts.Input,
		sampler:      input.NewSampler(opts.Input),
		audio:        opts.Audio,
		scores:       opts.Scores,
		board:        opts.Leaderboard,
		now:          now,
		last:         now(),
		game:         game.New(t, opts.Library),
		menu:         menu.NewMainMenu(avatars, s.PlayerName),
		hud:          hud.New(opts.Renderer, s.ScreenWidth, s.ScreenHeight),
		dialog:       dialog.NewPanel(s.ScreenWidth, s.ScreenHeight),
		lights:       lights,
		scene:        NewScene(opts.Renderer, sprites, lights),
	}
	a.refreshLeaderboard()
	return a
}

// Update advances the current screen by the wall-clock time since the last
// call
func (a *App) Update() error {
	now := a.now()
	dt := now.Sub(a.last).Seconds()
	a.last = now

	a.pollNotices()

	switch a.State {
	case StateMenu:
		if sel, ok := a.menu.Update(a.input); ok {
			a.startRun(sel)
		}
	case StatePlaying:
		a.updatePlaying(dt)
	case StateResult:
		if a.result.Update(dt, a.input) {
			a.State = StateMenu
			a.refreshLeaderboard()
		}
	}
	return nil
}

func (a *App) startRun(sel menu.Selection) {
	a.lights.Reset()
	a.lights.SetAmbientLight(calmAmbient)
	a.dialog.Show(nil)
	a.game.Start(game.RunConfig{
		AllowImages:    a.settings.AllowImages,
		AllowConfusion: a.settings.AllowConfusion,
		HardAudio:      a.settings.HardAudio,
		Avatar:         sel.Avatar,
		Mission:        sel.Mission,
	})
	a.frame = a.game.Frame()
	a.State = StatePlaying
}

func (a *App) updatePlaying(dt float64) {
	if a.input.IsKeyJustPressed(render.KeyEscape) {
		a.game.End(game.Loss)
	} else {
		snap := a.sampler.Sample(a.frame.CameraX, 0)
		if a.dialog.Visible() && snap.Choice == input.NoChoice {
			if i, ok := a.dialog.Update(a.input); ok {
				snap.Choice = i
			}
		}
		a.game.Update(dt, snap)
	}

	f := a.game.Frame()
	a.frame = f
	a.dialog.Show(f.Encounter)
	a.hud.Advance(dt)
	a.syncLights(dt, f)
	playCues(a.audio, f.Cues)

	if f.End != nil {
		a.finishRun(*f.End)
	}
}

// syncLights follows the player, the exit and muzzle flashes
func (a *App) syncLights(dt float64, f game.Frame) {
	a.lights.Update(dt)
	if f.HUD.Mode == "frenetic" {
		a.lights.SetAmbientLight(freneticAmbient)
	} else {
		a.lights.SetAmbientLight(calmAmbient)
	}

	a.lights.RemoveLight("exit")
	for _, d := range f.Drawables {
		cx, cy := d.X+d.W/2, d.Y+d.H/2
		switch d.Kind {
		case game.DrawPlayer:
			a.lights.UpdatePlayerLightPosition(cx, cy)
			for _, c := range f.Cues {
				if c.Kind == game.CueShoot {
					flash := muzzleFlash
					flash.X, flash.Y = cx+float64(d.Facing)*d.W, cy
					a.lights.Flash(flash, muzzleFlashTime)
					break
				}
			}
		case game.DrawExit:
			a.lights.SetLight("exit", lighting.LightSource{X: cx, Y: cy, Radius: 180, Intensity: 0.5})
		}
	}
}

// finishRun hands the result to the leaderboard and shows the result screen
func (a *App) finishRun(end game.RunEnd) {
	a.result = menu.NewResultScreen(end)
	a.State = StateResult
	a.dialog.Show(nil)

	log := logger.WithRun(end.RunID)
	sub, err := score.NewSubmission(end.RunID, a.settings.PlayerID, a.settings.PlayerName, end.Score,
		a.tuning.Score.Max, end.Mission.String(), end.Tag, a.now())
	switch {
	case err != nil:
		log.WithError(err).Warn("Score not submitted")
		a.result.SetNotice("Score not sent: " + err.Error())
	case a.scores == nil:
		a.result.SetNotice("Leaderboard disabled")
	case !a.scores.Submit(sub):
		log.Warn("Score submission dropped")
		a.result.SetNotice("Leaderboard unavailable")
	default:
		log.WithFields(logrus.Fields{"score": sub.Score}).Debug("Score queued")
	}
}

// pollNotices shows the outcome of background submissions
func (a *App) pollNotices() {
	if a.scores == nil {
		return
	}
	for {
		n, ok := a.scores.Poll()
		if !ok {
			return
		}
		if a.result != nil {
			a.result.SetNotice(n.Text)
		}
		if n.Err != nil {
			a.menu.SetNotice(n.Text)
		} else {
			a.menu.SetNotice("")
		}
	}
}

func (a *App) refreshLeaderboard() {
	if a.board == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), leaderboardTimeout)
	defer cancel()
	top, err := a.board.Top(ctx, leaderboardSize)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to read leaderboard")
		a.menu.SetNotice("Leaderboard unavailable")
		return
	}
	a.menu.SetLeaderboard(top)
}

// Draw draws the current screen
func (a *App) Draw(screen render.Image) {
	switch a.State {
	case StateMenu:
		a.menu.Draw(a.renderer, screen)
	case StatePlaying:
		a.scene.Draw(screen, a.frame, a.tuning.World.GroundY)
		a.hud.Draw(screen, a.frame.HUD, a.frame.Messages)
		a.dialog.Draw(a.renderer, screen)
	case StateResult:
		a.result.Draw(a.renderer, screen)
	}
}

// Layout keeps the logical screen at the configured size
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.ScreenWidth, a.ScreenHeight
}

// Game returns the simulation, for tests and tooling
func (a *App) Game() *game.Game {
	return a.game
}
