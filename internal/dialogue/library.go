package dialogue

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/nightcorridor/internal/core/dice"
)

// Library holds the encounters a run can offer
type Library struct {
	encounters map[string]*Encounter
}

// NewLibrary creates a library from a list of encounters
func NewLibrary(list []Encounter) (*Library, error) {
	lib := &Library{encounters: make(map[string]*Encounter, len(list))}
	for i := range list {
		enc := list[i]
		if enc.ID == "" {
			return nil, fmt.Errorf("encounter %d has no id", i)
		}
		if _, dup := lib.encounters[enc.ID]; dup {
			return nil, fmt.Errorf("duplicate encounter id %q", enc.ID)
		}
		lib.encounters[enc.ID] = &enc
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

// LoadLibrary reads encounters from a YAML file. A missing file yields the
// built-in library.
func LoadLibrary(path string) (*Library, error) {
	if path == "" {
		return DefaultLibrary(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultLibrary(), nil
		}
		return nil, fmt.Errorf("failed to read encounters: %w", err)
	}

	var file struct {
		Encounters []Encounter `yaml:"encounters"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse encounters: %w", err)
	}
	lib, err := NewLibrary(file.Encounters)
	if err != nil {
		return nil, fmt.Errorf("invalid encounters %s: %w", path, err)
	}
	return lib, nil
}

// Validate checks that every encounter is usable: it has choices, every
// effect kind is known and every opened encounter exists
func (l *Library) Validate() error {
	for _, id := range l.IDs() {
		enc := l.encounters[id]
		if len(enc.Choices) == 0 {
			return fmt.Errorf("encounter %q has no choices", id)
		}
		for ci, c := range enc.Choices {
			for _, e := range c.Effects {
				if !Known(e.Kind) {
					return fmt.Errorf("encounter %q choice %d: unknown effect kind %q", id, ci, e.Kind)
				}
				if e.Kind == Open {
					if _, ok := l.encounters[e.Name]; !ok {
						return fmt.Errorf("encounter %q choice %d opens unknown %q", id, ci, e.Name)
					}
				}
			}
		}
	}
	return nil
}

// Get returns an encounter by ID
func (l *Library) Get(id string) (*Encounter, bool) {
	enc, ok := l.encounters[id]
	return enc, ok
}

// IDs returns every encounter ID in sorted order
func (l *Library) IDs() []string {
	ids := make([]string, 0, len(l.encounters))
	for id := range l.encounters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Random picks a top-level encounter, avoiding the one offered last when
// there is a choice
func (l *Library) Random(r *dice.Roller, last string) (*Encounter, bool) {
	var pool []*Encounter
	for _, id := range l.IDs() {
		enc := l.encounters[id]
		if enc.Nested {
			continue
		}
		pool = append(pool, enc)
	}
	if len(pool) == 0 {
		return nil, false
	}
	if len(pool) > 1 && last != "" {
		filtered := pool[:0:0]
		for _, enc := range pool {
			if enc.ID != last {
				filtered = append(filtered, enc)
			}
		}
		pool = filtered
	}
	return pool[r.Intn(len(pool))], true
}

// DefaultLibrary returns the built-in encounters
func DefaultLibrary() *Library {
	lib, err := NewLibrary(builtin)
	if err != nil {
		panic(fmt.Sprintf("built-in encounters are invalid: %v", err))
	}
	return lib
}

var builtin = []Encounter{
	{
		ID:    "weeping_nurse",
		Title: "A Nurse, Weeping",
		Body:  "A nurse sits against the wall, her lamp guttering. She does not look up.",
		Choices: []Choice{
			{Label: "Comfort her", Hint: "+HP, grief", Effects: []Effect{
				{Kind: Heal, Amount: 25},
				{Kind: Status, Name: "grief", Duration: 6},
			}},
			{Label: "Take her lamp oil", Hint: "lantern, -sanity", Effects: []Effect{
				{Kind: UnlockBeam},
				{Kind: Drain, Amount: 15},
			}},
			{Label: "Walk past", Hint: "nothing", Effects: []Effect{{Kind: Nothing}}},
		},
	},
	{
		ID:    "whispering_door",
		Title: "The Whispering Door",
		Body:  "Behind a door with no handle, something is saying your name.",
		Choices: []Choice{
			{Label: "Listen closer", Hint: "?", Effects: []Effect{
				{Kind: Open, Name: "behind_the_door"},
			}},
			{Label: "Bar it shut", Hint: "+sanity, they come sooner", Effects: []Effect{
				{Kind: Soothe, Amount: 15},
				{Kind: LowerSpawn, Amount: 150},
			}},
		},
	},
	{
		ID:     "behind_the_door",
		Title:  "Through the Keyhole",
		Body:   "A small hand presses something cold through the keyhole.",
		Nested: true,
		Choices: []Choice{
			{Label: "Take it", Hint: "relic, -HP", Effects: []Effect{
				{Kind: SpawnPickup, Name: "relic"},
				{Kind: Hurt, Amount: 15},
			}},
			{Label: "Pull away", Hint: "confusion", Effects: []Effect{
				{Kind: Status, Name: "confused", Duration: 4},
			}},
		},
	},
	{
		ID:    "music_box",
		Title: "A Music Box",
		Body:  "It plays the lullaby you sang to her every night.",
		Choices: []Choice{
			{Label: "Wind it", Hint: "+sanity, memories", Effects: []Effect{
				{Kind: Soothe, Amount: 25},
				{Kind: Status, Name: "memory", Duration: 6},
			}},
			{Label: "Smash it", Hint: "charm, -sanity", Effects: []Effect{
				{Kind: SpawnPickup, Name: "charm"},
				{Kind: Drain, Amount: 10},
			}},
		},
	},
	{
		ID:    "stray_dog",
		Title: "A Stray",
		Body:  "A thin dog with clouded eyes watches you from the dark.",
		Choices: []Choice{
			{Label: "Let it follow", Hint: "companion", Effects: []Effect{{Kind: UnlockCompanion}}},
			{Label: "Shoo it away", Hint: "+sanity", Effects: []Effect{{Kind: Soothe, Amount: 5}}},
		},
	},
	{
		ID:    "old_photograph",
		Title: "An Old Photograph",
		Body:  "Two faces smile from a burned photograph. One of them is yours.",
		Choices: []Choice{
			{Label: "Keep it", Hint: "memento", Effects: []Effect{{Kind: SpawnPickup, Name: "memento"}}},
			{Label: "Burn the rest", Hint: "+HP, dizzy", Effects: []Effect{
				{Kind: Heal, Amount: 15},
				{Kind: Status, Name: "dizzy", Duration: 3},
			}},
		},
	},
}
