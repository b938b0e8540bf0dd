// Package game owns a run: it builds the world and actors, steps them through
// the fixed per-frame pipeline and reports what the presentation layer needs.
package game

import (
	"errors"
	"math"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/nightcorridor/internal/combat"
	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/dice"
	"chosenoffset.com/nightcorridor/internal/core/geom"
	"chosenoffset.com/nightcorridor/internal/dialogue"
	"chosenoffset.com/nightcorridor/internal/director"
	"chosenoffset.com/nightcorridor/internal/entity"
	"chosenoffset.com/nightcorridor/internal/input"
	"chosenoffset.com/nightcorridor/internal/logger"
	"chosenoffset.com/nightcorridor/internal/mission"
	"chosenoffset.com/nightcorridor/internal/world"
)

const (
	messageTime      = 3.0
	laserCueInterval = 0.25
	hardAudioGain    = 1.4
	spawnMargin      = 40.0 // Enemies appear this far outside the view
	spawnSpacing     = 56.0 // Between members of one wave
	rearSpawnChance  = 0.25 // Chance a wave comes from behind
	pickupAhead      = 90.0 // Encounter pickups land this far ahead
	hitAmplitudeRef  = 40.0 // Damage that plays a full-volume hit
	maxFrameDT       = 0.25 // Used when the tuning has no bound
	bloodSpeed       = 220.0
	shardSpeed       = 260.0
)

// Game is the run orchestrator. The zero value is not usable; create one with
// New and begin a run with Start.
type Game struct {
	tuning  *config.Tuning
	library *dialogue.Library
	run     *run
}

// run holds everything owned by a single run. Start replaces it wholesale.
type run struct {
	id  string
	cfg RunConfig
	log *logrus.Entry
	rng *dice.Roller // Simulation randomness
	fx  *dice.Roller // Cosmetic randomness, kept apart so effects never shift gameplay rolls

	world     *world.World
	player    *entity.Player
	daughter  *entity.Daughter
	companion *entity.Companion
	enemies   []*entity.Enemy
	bullets   []*combat.Bullet
	pickups   []*combat.Pickup
	particles []Particle
	director  *director.Director
	mission   *mission.Mission
	dialogue  dialogue.Stack
	trigger   *dialogue.Trigger
	messages  []Message
	beam      *combat.BeamResult // Last tick's beam, for drawing

	elapsed       float64
	maxProgress   float64
	kills         int
	killScore     int
	laserT        float64
	lastEncounter string
	ended         bool
	result        RunEnd

	// Per-tick output, reset by every Update
	cues   []Cue
	events []DialogueEvent
	end    *RunEnd
}

// New creates an orchestrator with the given tuning and encounter library
func New(t *config.Tuning, lib *dialogue.Library) *Game {
	if t == nil {
		t = config.DefaultTuning()
	}
	if lib == nil {
		lib = dialogue.DefaultLibrary()
	}
	return &Game{tuning: t, library: lib}
}

// Tuning returns the tuning the game was created with
func (g *Game) Tuning() *config.Tuning {
	return g.tuning
}

// Start begins a new run. Nothing carries over from a previous run.
func (g *Game) Start(cfg RunConfig) {
	t := g.tuning
	id := uuid.NewString()
	rng := dice.Seeded(cfg.Seed)

	r := &run{
		id:  id,
		cfg: cfg,
		log: logger.WithRun(id),
		rng: rng,
		fx:  dice.Seeded(rng.Int63()),
	}
	r.world = world.Generate(t.World, rng)
	r.player = entity.NewPlayer(t, cfg.Avatar, cfg.AllowConfusion)
	r.daughter = entity.NewDaughter(t.Daughter, t.World.Length*t.Daughter.Position, t.World.GroundY)
	r.director = director.New(t.Director, t.Enemies)
	r.mission = mission.New(cfg.Mission, t.Mission)
	r.trigger = dialogue.NewTrigger(t.Dialogue)
	r.world.UpdateCamera(r.player.X, t.World.ViewWidth)

	g.run = r

	r.log.WithFields(logrus.Fields{
		"avatar":    r.player.Avatar.Name,
		"mission":   cfg.Mission.String(),
		"seed":      cfg.Seed,
		"obstacles": len(r.world.Obstacles),
		"props":     len(r.world.Props),
	}).Info("Run started")
}

// Running reports whether a run is in progress
func (g *Game) Running() bool {
	return g.run != nil && !g.run.ended
}

// Result returns the end of the last run, if it has ended
func (g *Game) Result() (RunEnd, bool) {
	if g.run == nil || !g.run.ended {
		return RunEnd{}, false
	}
	return g.run.result, true
}

// Config returns the configuration of the current run
func (g *Game) Config() RunConfig {
	if g.run == nil {
		return RunConfig{}
	}
	return g.run.cfg
}

// Update advances the run by one frame. While an encounter is open the world
// is frozen and only the snapshot's choice is handled. After the run ends
// Update has no effect.
func (g *Game) Update(dt float64, in input.Snapshot) {
	r := g.run
	if r == nil {
		return
	}
	r.cues, r.events, r.end = nil, nil, nil
	if r.ended {
		return
	}

	limit := g.tuning.Physics.MaxDT
	if limit <= 0 {
		limit = maxFrameDT
	}
	dt = geom.Clamp(dt, 0, limit)

	if r.dialogue.Active() {
		if in.Choice != input.NoChoice {
			_ = g.Choose(in.Choice)
		}
		return
	}
	g.step(dt, in)
}

// step runs the fixed-order frame pipeline
func (g *Game) step(dt float64, in input.Snapshot) {
	r, t := g.run, g.tuning
	r.elapsed += dt

	// Camera
	r.world.UpdateCamera(r.player.X, t.World.ViewWidth)

	// Director
	r.director.Update(dt, g.directorInputs())
	g.spawnWave()
	if r.director.MercyDrop(dt, r.rng) {
		if pk, ok := combat.MercyDrop(r.rng, t.Drops.MercyKinds, r.player, r.world.GroundY); ok {
			r.pickups = append(r.pickups, pk)
			r.log.WithField("kind", pk.Kind.String()).Debug("Mercy drop")
		}
	}

	// Mission
	r.mission.Tick(dt)

	// Player
	g.updatePlayer(dt, in)

	// Companion and daughter
	if r.player.CompanionUnlocked {
		if r.companion == nil {
			r.companion = entity.NewCompanion(t.Comp, r.player)
		}
		if req, ok := r.companion.Update(dt, r.player, r.enemies); ok {
			r.bullets = append(r.bullets, combat.NewBullet(req))
			g.cue(CueShoot, 0.45)
		}
	}
	r.daughter.Update(dt, r.player, r.enemies, t.Physics.Gravity, t.Physics.MaxFallSpeed, r.world)

	// Enemies
	for _, e := range r.enemies {
		touch := e.Update(dt, r.elapsed, r.player, t.Physics.Gravity, t.Physics.MaxFallSpeed, r.world)
		if touch > 0 && r.player.TakeDamage(touch, e.Center().X) && touch >= t.Player.FlinchThreshold {
			g.cue(CueHit, touch/hitAmplitudeRef)
		}
		if req, ok := e.TryShoot(dt, r.player); ok {
			r.bullets = append(r.bullets, combat.NewBullet(req))
			g.cue(CueShoot, 0.6)
		}
	}

	// Projectiles and pickups
	combat.UpdateBullets(dt, r.bullets, r.world)
	for _, kind := range combat.UpdatePickups(dt, r.pickups, r.player, t.Player.InteractRadius) {
		combat.Apply(kind, r.player, t)
		g.message(pickupMessage(kind))
	}

	// Trims
	updateParticles(dt, r.particles, r.world.GroundY)
	g.compact()

	// Combat resolution
	out := combat.Resolve(r.bullets, combat.Arena{
		World:    r.world,
		Player:   r.player,
		Daughter: r.daughter,
		Enemies:  r.enemies,
	}, r.rng, t)
	if out.MoralFailure {
		r.mission.Fail()
		g.finish(Moral, TagMoral, MsgMoral)
		return
	}
	g.applyOutcome(out)

	// Win or loss
	res, ended := r.mission.Evaluate(mission.State{
		PlayerX:       r.player.X,
		ExitX:         r.world.ExitX,
		DaughterSaved: r.daughter.Saved,
		PlayerDead:    r.player.HP <= 0,
		PlayerBroken:  r.player.Sanity <= 0,
	})
	if ended {
		outcome := Loss
		if res.Won {
			outcome = Win
		}
		g.finish(outcome, res.Tag, res.Message)
		return
	}

	// Effects
	r.player.Effects.Tick(dt)
	g.tickMessages(dt)

	// Encounters
	if r.trigger.Update(dt, r.director.Mode == director.Calm, aliveCount(r.enemies), g.progress(), r.rng) {
		g.offerEncounter()
	}
}

func (g *Game) directorInputs() director.Inputs {
	r := g.run
	return director.Inputs{
		Progress:       g.progress(),
		HPFraction:     r.player.HPFraction(),
		SanityFraction: r.player.SanityFraction(),
		Timed:          r.mission.Timed(),
		TimeLeft:       r.mission.TimeLeft,
		RescuePending:  r.mission.ID == mission.Rescue && !r.daughter.Saved,
	}
}

// progress is the distance travelled from the start line
func (g *Game) progress() float64 {
	return math.Max(0, g.run.player.X-g.tuning.Player.StartX)
}

// spawnWave places a director wave just outside the view
func (g *Game) spawnWave() {
	r, t := g.run, g.tuning
	wave, ok := r.director.Wave(r.rng, aliveCount(r.enemies))
	if !ok {
		return
	}

	side := 1.0
	if r.world.CameraX > 0 && r.rng.Chance(rearSpawnChance) {
		side = -1
	}
	for i, m := range wave.Members {
		kind, ok := entity.ParseEnemyType(m.Kind)
		if !ok {
			continue
		}
		cfg := t.Enemies[m.Kind]
		var x float64
		if side > 0 {
			x = r.world.CameraX + t.World.ViewWidth + spawnMargin + float64(i)*spawnSpacing
		} else {
			x = r.world.CameraX - spawnMargin - cfg.Width - float64(i)*spawnSpacing
		}
		x = geom.Clamp(x, 0, r.world.Length-cfg.Width)
		e := entity.NewEnemy(kind, cfg, m.Elite, t.Director.EliteMultiplier, x, r.world.GroundY, r.rng.Range(0, 2*math.Pi))
		r.enemies = append(r.enemies, e)
	}
	r.log.WithFields(logrus.Fields{
		"size": len(wave.Members),
		"heat": r.director.Heat,
	}).Debug("Wave spawned")
}

func (g *Game) updatePlayer(dt float64, in input.Snapshot) {
	r, t := g.run, g.tuning
	p := r.player
	p.Update(dt, in, r.world)
	if p.X-t.Player.StartX > r.maxProgress {
		r.maxProgress = p.X - t.Player.StartX
	}

	if in.Interact && g.canRescue() && r.daughter.Rescue() {
		g.message("She takes your hand.")
		r.log.WithField("at", p.X).Info("Daughter rescued")
	}

	r.beam = nil
	req, ok := p.TryFire(dt, in, r.rng)
	if !ok {
		r.laserT = 0
		return
	}
	if req.Weapon == entity.Lantern {
		res := combat.FireBeam(req.Origin, req.Dir, dt, t.Beam, r.world, r.enemies)
		r.beam = &res
		r.laserT -= dt
		if r.laserT <= 0 {
			g.cue(CueLaser, 0.6)
			r.laserT = laserCueInterval
		}
		for _, h := range res.Hits {
			g.bleed(h)
		}
		for _, e := range res.Kills {
			g.killed(e)
			r.pickups = append(r.pickups, combat.DeathDrops(r.rng, t.Drops.EnemyDeath, e, r.world.GroundY)...)
		}
		return
	}
	r.bullets = append(r.bullets, combat.NewBullet(req))
	g.cue(CueShoot, 1)
}

// canRescue reports whether the player stands close enough to the unsaved
// daughter to take her hand
func (g *Game) canRescue() bool {
	r := g.run
	if r.daughter.Saved {
		return false
	}
	return geom.Distance(r.player.Center(), r.daughter.Center()) <= g.tuning.Player.InteractRadius
}

// applyOutcome turns the resolution pass into particles, cues and drops
func (g *Game) applyOutcome(out combat.Outcome) {
	r := g.run
	for _, h := range out.Hits {
		g.bleed(h)
		g.cue(CueHit, h.Damage/hitAmplitudeRef)
	}
	for _, h := range out.PlayerHits {
		r.particles = emit(r.particles, r.fx, Blood, h.At, bloodCount(h.Damage), bloodSpeed)
		g.cue(CueHit, h.Damage/hitAmplitudeRef)
	}
	for _, e := range out.Kills {
		g.killed(e)
	}
	for _, prop := range out.Broken {
		r.particles = emit(r.particles, r.fx, Shard, prop.Center(), shardsPerProp, shardSpeed)
	}
	r.pickups = append(r.pickups, out.Drops...)
}

func (g *Game) bleed(h combat.Hit) {
	r := g.run
	r.particles = emit(r.particles, r.fx, Blood, h.At, bloodCount(h.Damage), bloodSpeed)
}

func (g *Game) killed(e *entity.Enemy) {
	r := g.run
	r.kills++
	r.killScore += e.Stats.Score
}

// compact removes everything that died this tick. It runs once per tick,
// after every per-entity update.
func (g *Game) compact() {
	r := g.run
	r.enemies = slices.DeleteFunc(r.enemies, func(e *entity.Enemy) bool { return !e.Alive })
	r.bullets = slices.DeleteFunc(r.bullets, func(b *combat.Bullet) bool { return !b.Alive })
	r.pickups = slices.DeleteFunc(r.pickups, func(p *combat.Pickup) bool { return !p.Alive })
	r.particles = trimParticles(r.particles)
	if r.companion != nil && r.companion.Target != nil && !r.companion.Target.Alive {
		r.companion.Target = nil
	}
}

func (g *Game) offerEncounter() {
	r := g.run
	enc, ok := g.library.Random(r.rng, r.lastEncounter)
	if !ok {
		return
	}
	r.lastEncounter = enc.ID
	r.dialogue.Push(enc)
	r.events = append(r.events, DialogueEvent{Kind: DialogueOpen, Encounter: enc})
	r.log.WithField("encounter", enc.ID).Info("Encounter opened")
}

// Choose selects a choice of the open encounter. An invalid index leaves the
// encounter open. Effects that fail are logged; the encounter still closes.
func (g *Game) Choose(i int) error {
	r := g.run
	if r == nil || r.ended {
		return dialogue.ErrNoEncounter
	}
	top := r.dialogue.Top()
	choice, err := r.dialogue.Choose(i, effectTarget{g}, g.library)
	if errors.Is(err, dialogue.ErrNoEncounter) || errors.Is(err, dialogue.ErrInvalidChoice) {
		return err
	}
	if err != nil {
		r.log.WithError(err).Warn("Encounter effect failed")
	}
	r.log.WithFields(logrus.Fields{
		"encounter": top.ID,
		"choice":    choice.Label,
	}).Info("Encounter choice")

	if next := r.dialogue.Top(); next != nil {
		r.events = append(r.events, DialogueEvent{Kind: DialogueOpen, Encounter: next})
	} else {
		r.events = append(r.events, DialogueEvent{Kind: DialogueClose})
	}
	return err
}

// End ends the run from outside, e.g. when the player quits. It returns false
// when the run had already ended.
func (g *Game) End(o Outcome) bool {
	r := g.run
	if r == nil || r.ended {
		return false
	}
	switch o {
	case Moral:
		r.mission.Fail()
		g.finish(o, TagMoral, MsgMoral)
	case Win:
		r.mission.Done = true
		g.finish(o, TagEnded, MsgEnded)
	default:
		r.mission.Fail()
		g.finish(Loss, TagAbandon, MsgAbandon)
	}
	return true
}

// finish is the single path to the terminal state
func (g *Game) finish(o Outcome, tag, msg string) {
	r := g.run
	if r.ended {
		return
	}
	r.ended = true
	if o != Win {
		r.player.Alive = false
	}
	if r.dialogue.Active() {
		r.dialogue.Clear()
		r.events = append(r.events, DialogueEvent{Kind: DialogueClose})
	}

	r.result = RunEnd{
		RunID:    r.id,
		Outcome:  o,
		Tag:      tag,
		Message:  msg,
		Score:    g.score(o == Win),
		Mission:  r.mission.ID,
		Avatar:   r.player.Avatar.Name,
		Distance: r.maxProgress,
		Kills:    r.kills,
		Elapsed:  r.elapsed,
	}
	end := r.result
	r.end = &end

	r.log.WithFields(logrus.Fields{
		"outcome": o.String(),
		"result":  tag,
		"score":   r.result.Score,
		"kills":   r.kills,
		"elapsed": math.Round(r.elapsed*10) / 10,
	}).Info("Run ended")
}

// score is distance plus kill values plus bonuses, capped
func (g *Game) score(won bool) int {
	r, sc := g.run, g.tuning.Score
	s := r.killScore
	if sc.DistanceDiv > 0 {
		s += int(r.maxProgress / sc.DistanceDiv)
	}
	if r.daughter.Saved {
		s += sc.RescueBonus
	}
	if won {
		s += sc.WinBonus
	}
	if sc.Max > 0 {
		s = min(s, sc.Max)
	}
	return max(0, s)
}

func (g *Game) cue(kind CueKind, amplitude float64) {
	r := g.run
	if r.cfg.HardAudio {
		amplitude *= hardAudioGain
	}
	r.cues = append(r.cues, Cue{Kind: kind, Amplitude: geom.Clamp(amplitude, 0.05, 1)})
}

func (g *Game) message(text string) {
	if text == "" {
		return
	}
	g.run.messages = append(g.run.messages, Message{Text: text, TimeLeft: messageTime, MaxTime: messageTime})
}

func (g *Game) tickMessages(dt float64) {
	r := g.run
	for i := range r.messages {
		r.messages[i].TimeLeft -= dt
	}
	r.messages = slices.DeleteFunc(r.messages, func(m Message) bool { return m.TimeLeft <= 0 })
}

func pickupMessage(kind combat.PickupKind) string {
	switch kind {
	case combat.Medkit:
		return "Bandages. The bleeding slows."
	case combat.Tonic:
		return "A bitter tonic steadies your hands."
	case combat.Relic:
		return "The relic hums with a cold light."
	case combat.Charm:
		return "Something small and loyal stirs beside you."
	case combat.Memento:
		return "You remember her laugh."
	default:
		return ""
	}
}

func aliveCount(enemies []*entity.Enemy) int {
	n := 0
	for _, e := range enemies {
		if e.Alive {
			n++
		}
	}
	return n
}
