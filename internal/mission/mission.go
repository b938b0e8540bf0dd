// Package mission tracks the objective of a run. A mission ends exactly once,
// either done or failed, and never changes state afterwards.
package mission

import (
	"fmt"
	"math"

	"chosenoffset.com/nightcorridor/internal/config"
)

// ID identifies a mission
type ID int

const (
	Survive ID = iota
	Rescue
	Exit
)

// IDs lists the missions in menu order
var IDs = []ID{Survive, Rescue, Exit}

// String returns the tag used in score submissions
func (id ID) String() string {
	switch id {
	case Survive:
		return "survive"
	case Rescue:
		return "rescue"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// ParseID maps a tag back to its mission
func ParseID(tag string) (ID, bool) {
	for _, id := range IDs {
		if id.String() == tag {
			return id, true
		}
	}
	return 0, false
}

// Result messages emitted when a mission ends
const (
	MsgSurvived = "You outlasted the night."
	MsgRescued  = "She is safe with you now."
	MsgEscaped  = "The exit door gives way to cold morning air."
	MsgFallen   = "The corridor claims another soul."
	MsgBroken   = "Your mind gives way to the dark."
)

// State is what the mission reads each tick
type State struct {
	PlayerX       float64
	ExitX         float64
	DaughterSaved bool
	PlayerDead    bool // HP depleted
	PlayerBroken  bool // Sanity depleted
}

// Result tags, stable across versions for score submissions
const (
	TagSurvived = "survived"
	TagRescued  = "rescued"
	TagEscaped  = "escaped"
	TagFallen   = "fallen"
	TagBroken   = "broken"
)

// Result is emitted once when the mission ends
type Result struct {
	Won     bool
	Tag     string
	Message string
}

// Mission is the objective state machine
type Mission struct {
	ID       ID
	Done     bool
	Failed   bool
	TimeLeft float64 // Survive only

	exitReach float64
}

// New creates an active mission
func New(id ID, cfg config.MissionConfig) *Mission {
	m := &Mission{ID: id, exitReach: cfg.ExitReach}
	if id == Survive {
		m.TimeLeft = cfg.SurviveDuration
	}
	return m
}

// Active reports whether the mission is still running
func (m *Mission) Active() bool {
	return !m.Done && !m.Failed
}

// Timed reports whether the mission has a countdown
func (m *Mission) Timed() bool {
	return m.ID == Survive
}

// Update advances the mission and returns its result on the tick it ends
func (m *Mission) Update(dt float64, s State) (Result, bool) {
	m.Tick(dt)
	return m.Evaluate(s)
}

// Tick counts the survival timer down. It does not end the mission.
func (m *Mission) Tick(dt float64) {
	if m.Active() && m.Timed() {
		m.TimeLeft = math.Max(0, m.TimeLeft-dt)
	}
}

// Evaluate checks the end conditions against the current state and returns
// the result on the call that ends the mission. Failure is checked before
// success so a player who dies on the exit line still loses.
func (m *Mission) Evaluate(s State) (Result, bool) {
	if !m.Active() {
		return Result{}, false
	}

	switch {
	case s.PlayerDead:
		m.Failed = true
		return Result{Tag: TagFallen, Message: MsgFallen}, true
	case s.PlayerBroken:
		m.Failed = true
		return Result{Tag: TagBroken, Message: MsgBroken}, true
	}

	switch m.ID {
	case Survive:
		if m.TimeLeft <= 0 {
			m.Done = true
			return Result{Won: true, Tag: TagSurvived, Message: MsgSurvived}, true
		}
	case Rescue:
		if s.DaughterSaved {
			m.Done = true
			return Result{Won: true, Tag: TagRescued, Message: MsgRescued}, true
		}
	case Exit:
		if s.PlayerX >= s.ExitX-m.exitReach {
			m.Done = true
			return Result{Won: true, Tag: TagEscaped, Message: MsgEscaped}, true
		}
	}
	return Result{}, false
}

// Fail ends the mission from outside, used for the moral failure
func (m *Mission) Fail() bool {
	if !m.Active() {
		return false
	}
	m.Failed = true
	return true
}

// Title returns the HUD objective line
func (m *Mission) Title() string {
	return m.ID.Title()
}

// Title returns the objective line of a mission
func (id ID) Title() string {
	switch id {
	case Survive:
		return "Survive until dawn"
	case Rescue:
		return "Find your daughter"
	case Exit:
		return "Reach the exit"
	default:
		return ""
	}
}

// TimerText returns the countdown as m:ss, or an empty string for untimed
// missions
func (m *Mission) TimerText() string {
	if !m.Timed() {
		return ""
	}
	secs := int(math.Ceil(m.TimeLeft))
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
