// Package dialogue implements the modal encounters that pause a run.
//
// An encounter offers a few choices; each choice carries a list of effect
// descriptors that a fixed dispatcher applies to the game. Encounters stack:
// only the top one is interactive, and a choice may open another encounter.
package dialogue

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEncounter is returned when choosing with nothing open
	ErrNoEncounter = errors.New("no encounter open")
	// ErrInvalidChoice is returned for an out-of-range choice index
	ErrInvalidChoice = errors.New("invalid choice")
)

// Choice is one option of an encounter
type Choice struct {
	Label   string   `yaml:"label"`
	Hint    string   `yaml:"hint"`
	Effects []Effect `yaml:"effects"`
}

// Encounter is a modal dialogue
type Encounter struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Body    string   `yaml:"body"`
	Nested  bool     `yaml:"nested"` // Only reachable from another encounter
	Choices []Choice `yaml:"choices"`
}

// Stack holds the open encounters; the last entry is the interactive one
type Stack struct {
	entries []*Encounter
}

// Push opens an encounter on top of the stack
func (s *Stack) Push(e *Encounter) {
	if e == nil {
		return
	}
	s.entries = append(s.entries, e)
}

// Top returns the interactive encounter, or nil
func (s *Stack) Top() *Encounter {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

// Active reports whether any encounter is open
func (s *Stack) Active() bool {
	return len(s.entries) > 0
}

// Len returns the number of open encounters
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear closes every encounter
func (s *Stack) Clear() {
	s.entries = nil
}

// Choose selects choice i of the top encounter. The encounter is popped
// before its effects run, so an effect that opens another encounter puts it
// on top. An invalid index leaves the stack untouched.
func (s *Stack) Choose(i int, t Target, lib *Library) (Choice, error) {
	top := s.Top()
	if top == nil {
		return Choice{}, ErrNoEncounter
	}
	if i < 0 || i >= len(top.Choices) {
		return Choice{}, fmt.Errorf("%w: %d of %d", ErrInvalidChoice, i, len(top.Choices))
	}

	s.entries = s.entries[:len(s.entries)-1]
	choice := top.Choices[i]
	ctx := &Context{Target: t, Stack: s, Library: lib}
	if err := DispatchAll(choice.Effects, ctx); err != nil {
		return choice, fmt.Errorf("encounter %s: %w", top.ID, err)
	}
	return choice, nil
}
