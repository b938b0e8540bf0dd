package game

import (
	"chosenoffset.com/nightcorridor/internal/dialogue"
	"chosenoffset.com/nightcorridor/internal/mission"
)

// RunConfig is the read-only configuration of a single run
type RunConfig struct {
	AllowImages    bool // Sprite art instead of primitives; presentation only
	AllowConfusion bool // Confusion debuff may be applied
	HardAudio      bool // Louder, harsher cues
	Avatar         string
	Mission        mission.ID
	Seed           int64 // Zero seeds from the clock
}

// Outcome is how a run ended
type Outcome int

const (
	Win Outcome = iota
	Loss
	Moral // The daughter was struck before being rescued
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	case Moral:
		return "moral"
	default:
		return "unknown"
	}
}

// Results of runs that end outside the mission
const (
	TagMoral   = "moral"
	MsgMoral   = "The shot echoes. She does not get up."
	TagAbandon = "abandoned"
	MsgAbandon = "You turn back into the dark."
	TagEnded   = "ended"
	MsgEnded   = "The night ends early."
)

// RunEnd is emitted exactly once when a run ends
type RunEnd struct {
	RunID    string
	Outcome  Outcome
	Tag      string
	Message  string
	Score    int
	Mission  mission.ID
	Avatar   string
	Distance float64
	Kills    int
	Elapsed  float64
}

// CueKind identifies an audio cue
type CueKind int

const (
	CueShoot CueKind = iota
	CueHit
	CueLaser
)

func (k CueKind) String() string {
	switch k {
	case CueShoot:
		return "shoot"
	case CueHit:
		return "hit"
	case CueLaser:
		return "laser"
	default:
		return "unknown"
	}
}

// Cue asks the audio layer to play a sound
type Cue struct {
	Kind      CueKind
	Amplitude float64 // 0..1
}

// DialogueEventKind tells the presentation layer to show or hide the panel
type DialogueEventKind int

const (
	DialogueOpen DialogueEventKind = iota
	DialogueClose
)

// DialogueEvent reports a change of the interactive encounter
type DialogueEvent struct {
	Kind      DialogueEventKind
	Encounter *dialogue.Encounter // Set on open
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// HUD is the overlay state of one frame
type HUD struct {
	HP             float64 // Fraction 0..1
	Sanity         float64 // Fraction 0..1
	Statuses       []string
	Mission        string
	Timer          string
	Mode           string
	Weapon         string
	Score          int
	Distance       float64
	CompanionBoost float64
	CanRescue      bool
	Wiggle         bool
	Memory         bool
}

// Frame is everything the presentation layer needs after a tick
type Frame struct {
	CameraX   float64
	Drawables []Drawable
	Cues      []Cue
	HUD       HUD
	Dialogue  []DialogueEvent
	Encounter *dialogue.Encounter // Interactive encounter, nil when none
	Messages  []Message
	End       *RunEnd // Set only on the tick the run ended
}
