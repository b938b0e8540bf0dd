package dialogue

import (
	"math"

	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/core/dice"
)

// Trigger gates how often encounters are offered
type Trigger struct {
	cooldown float64
	cfg      config.DialogueConfig
}

// NewTrigger creates a trigger whose first offer waits a full cooldown
func NewTrigger(cfg config.DialogueConfig) *Trigger {
	return &Trigger{cooldown: cfg.Cooldown, cfg: cfg}
}

// Remaining returns the time until the next offer may be rolled
func (t *Trigger) Remaining() float64 {
	return t.cooldown
}

// Update counts the cooldown down and decides whether to offer an encounter
// now. Offers are only rolled while calm, with no enemies alive and past the
// minimum progress. A failed roll waits the short retry delay.
func (t *Trigger) Update(dt float64, calm bool, enemies int, progress float64, r *dice.Roller) bool {
	t.cooldown = math.Max(0, t.cooldown-dt)
	if !calm || enemies > 0 || t.cooldown > 0 || progress < t.cfg.MinProgress {
		return false
	}
	if r.Chance(t.cfg.Chance) {
		t.cooldown = t.cfg.Cooldown
		return true
	}
	t.cooldown = t.cfg.RetryDelay
	return false
}
