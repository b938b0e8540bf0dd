// Package effects implements the timed status effects carried by the player.
//
// Every effect is an independent countdown. Timers only ever count down while
// active; re-applying an effect keeps the longer of the two durations.
package effects

import "sort"

// Kind identifies a status effect
type Kind int

const (
	Slow Kind = iota
	Grief
	Wiggle
	Memory
	Confusion
	numKinds
)

// String returns the HUD label of the effect
func (k Kind) String() string {
	switch k {
	case Slow:
		return "slowed"
	case Grief:
		return "grief"
	case Wiggle:
		return "dizzy"
	case Memory:
		return "memory"
	case Confusion:
		return "confused"
	default:
		return "unknown"
	}
}

// Kinds returns all effect kinds in display order
func Kinds() []Kind {
	return []Kind{Slow, Grief, Wiggle, Memory, Confusion}
}

// ParseKind maps a HUD label back to its kind
func ParseKind(label string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.String() == label {
			return k, true
		}
	}
	return 0, false
}

// Timers holds the remaining duration of every effect
type Timers struct {
	remaining [numKinds]float64
}

// Apply starts or extends an effect. An effect that is already active is only
// extended when the new duration exceeds what remains.
func (t *Timers) Apply(k Kind, duration float64) {
	if k < 0 || k >= numKinds || duration <= 0 {
		return
	}
	if duration > t.remaining[k] {
		t.remaining[k] = duration
	}
}

// Active reports whether the effect has time remaining
func (t *Timers) Active(k Kind) bool {
	return t.Remaining(k) > 0
}

// Remaining returns the time left on an effect
func (t *Timers) Remaining(k Kind) float64 {
	if k < 0 || k >= numKinds {
		return 0
	}
	return t.remaining[k]
}

// Tick counts every active effect down by dt, stopping at zero
func (t *Timers) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	for i := range t.remaining {
		if t.remaining[i] <= 0 {
			continue
		}
		t.remaining[i] -= dt
		if t.remaining[i] < 0 {
			t.remaining[i] = 0
		}
	}
}

// Clear removes every effect
func (t *Timers) Clear() {
	t.remaining = [numKinds]float64{}
}

// Labels returns the sorted HUD labels of the active effects
func (t *Timers) Labels() []string {
	var labels []string
	for _, k := range Kinds() {
		if t.Active(k) {
			labels = append(labels, k.String())
		}
	}
	sort.Strings(labels)
	return labels
}

// ResolveDirection applies the confusion transform to a raw horizontal input.
// While confusion is active (and allowed) left and right are swapped for the
// whole duration; there is no per-frame randomness.
func ResolveDirection(base int, t *Timers, confusionAllowed bool) int {
	if confusionAllowed && t != nil && t.Active(Confusion) {
		return -base
	}
	return base
}

// SpeedFactor returns the movement multiplier given the slow factor
func (t *Timers) SpeedFactor(slowFactor float64) float64 {
	if t.Active(Slow) {
		return slowFactor
	}
	return 1
}
