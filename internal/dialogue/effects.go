package dialogue

import (
	"fmt"

	"chosenoffset.com/nightcorridor/internal/effects"
)

// EffectKind tags what an effect descriptor does
type EffectKind string

const (
	Heal            EffectKind = "heal"
	Hurt            EffectKind = "hurt"
	Soothe          EffectKind = "soothe" // Restore sanity
	Drain           EffectKind = "drain"  // Drain sanity
	Status          EffectKind = "status"
	UnlockBeam      EffectKind = "unlock_beam"
	UnlockCompanion EffectKind = "unlock_companion"
	LowerSpawn      EffectKind = "lower_spawn"
	SpawnPickup     EffectKind = "spawn_pickup"
	Open            EffectKind = "open" // Push another encounter
	Nothing         EffectKind = "nothing"
)

// Effect is a data-only description of a choice consequence
type Effect struct {
	Kind     EffectKind `yaml:"kind"`
	Amount   float64    `yaml:"amount"`
	Duration float64    `yaml:"duration"`
	Name     string     `yaml:"name"` // Status label, pickup kind or encounter ID
}

// Target is the game state effects are applied to
type Target interface {
	Heal(amount float64)
	Hurt(amount float64)
	RestoreSanity(amount float64)
	DrainSanity(amount float64)
	ApplyStatus(kind effects.Kind, duration float64)
	UnlockBeam()
	UnlockCompanion()
	LowerSpawnDistance(by float64)
	SpawnPickup(kind string) bool
}

// Context is passed to every executor
type Context struct {
	Target  Target
	Stack   *Stack
	Library *Library
}

// EffectExecutor applies one effect kind
type EffectExecutor func(e Effect, ctx *Context) error

// effectRegistry maps effect kinds to executors
var effectRegistry = map[EffectKind]EffectExecutor{}

// RegisterEffect registers the executor for an effect kind
func RegisterEffect(kind EffectKind, executor EffectExecutor) {
	effectRegistry[kind] = executor
}

// Known reports whether an effect kind has an executor
func Known(kind EffectKind) bool {
	_, ok := effectRegistry[kind]
	return ok
}

// Dispatch applies a single effect
func Dispatch(e Effect, ctx *Context) error {
	executor, ok := effectRegistry[e.Kind]
	if !ok {
		return fmt.Errorf("unknown effect kind: %s", e.Kind)
	}
	return executor(e, ctx)
}

// DispatchAll applies effects in order, stopping at the first error
func DispatchAll(list []Effect, ctx *Context) error {
	for i, e := range list {
		if err := Dispatch(e, ctx); err != nil {
			return fmt.Errorf("effect %d (%s): %w", i, e.Kind, err)
		}
	}
	return nil
}

func init() {
	RegisterEffect(Heal, func(e Effect, ctx *Context) error {
		ctx.Target.Heal(e.Amount)
		return nil
	})

	RegisterEffect(Hurt, func(e Effect, ctx *Context) error {
		ctx.Target.Hurt(e.Amount)
		return nil
	})

	RegisterEffect(Soothe, func(e Effect, ctx *Context) error {
		ctx.Target.RestoreSanity(e.Amount)
		return nil
	})

	RegisterEffect(Drain, func(e Effect, ctx *Context) error {
		ctx.Target.DrainSanity(e.Amount)
		return nil
	})

	// status: {kind: status, name: slowed, duration: 4}
	RegisterEffect(Status, func(e Effect, ctx *Context) error {
		k, ok := effects.ParseKind(e.Name)
		if !ok {
			return fmt.Errorf("unknown status %q", e.Name)
		}
		ctx.Target.ApplyStatus(k, e.Duration)
		return nil
	})

	RegisterEffect(UnlockBeam, func(_ Effect, ctx *Context) error {
		ctx.Target.UnlockBeam()
		return nil
	})

	RegisterEffect(UnlockCompanion, func(_ Effect, ctx *Context) error {
		ctx.Target.UnlockCompanion()
		return nil
	})

	RegisterEffect(LowerSpawn, func(e Effect, ctx *Context) error {
		ctx.Target.LowerSpawnDistance(e.Amount)
		return nil
	})

	// spawn_pickup: {kind: spawn_pickup, name: relic}
	RegisterEffect(SpawnPickup, func(e Effect, ctx *Context) error {
		if !ctx.Target.SpawnPickup(e.Name) {
			return fmt.Errorf("unknown pickup %q", e.Name)
		}
		return nil
	})

	// open: {kind: open, name: behind_the_door}
	RegisterEffect(Open, func(e Effect, ctx *Context) error {
		if ctx.Library == nil || ctx.Stack == nil {
			return fmt.Errorf("cannot open %q without a library", e.Name)
		}
		enc, ok := ctx.Library.Get(e.Name)
		if !ok {
			return fmt.Errorf("unknown encounter %q", e.Name)
		}
		ctx.Stack.Push(enc)
		return nil
	})

	RegisterEffect(Nothing, func(Effect, *Context) error {
		return nil
	})
}
