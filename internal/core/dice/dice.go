// Package dice provides the random rolls used by generation, drops and spawning.
// All rolls go through a Roller so a run can be replayed from its seed.
package dice

import (
	"math/rand"
	"time"
)

// Weighted is one entry of a weighted table. An empty Name is a valid
// outcome meaning "nothing".
type Weighted struct {
	Name   string  `yaml:"kind"`
	Weight float64 `yaml:"weight"`
}

// Roller handles rolls with a configurable random source
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a new Roller with the given random source
func NewRoller(rng *rand.Rand) *Roller {
	return &Roller{rng: rng}
}

// Seeded creates a Roller from a seed. A zero seed uses the current time.
func Seeded(seed int64) *Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewRoller(rand.New(rand.NewSource(seed)))
}

// Chance returns true with probability p
func (r *Roller) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.rng.Float64() < p
}

// Range returns a uniform value in [lo, hi)
func (r *Roller) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Float64()*(hi-lo)
}

// Intn returns a uniform int in [0, n). n <= 0 yields 0.
func (r *Roller) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// Int63 returns a non-negative 63-bit value, used to derive child seeds
func (r *Roller) Int63() int64 {
	return r.rng.Int63()
}

// Pick rolls a weighted table and returns the chosen name.
// Entries with non-positive weight are never chosen; an empty table yields "".
func (r *Roller) Pick(table []Weighted) string {
	total := 0.0
	for _, e := range table {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return ""
	}

	roll := r.rng.Float64() * total
	for _, e := range table {
		if e.Weight <= 0 {
			continue
		}
		if roll < e.Weight {
			return e.Name
		}
		roll -= e.Weight
	}
	// Float rounding: fall back to the last positive entry
	for i := len(table) - 1; i >= 0; i-- {
		if table[i].Weight > 0 {
			return table[i].Name
		}
	}
	return ""
}
