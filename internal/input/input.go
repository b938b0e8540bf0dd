// Package input turns live device state into the immutable per-tick snapshot
// consumed by the simulation. The simulation never reads devices directly.
package input

import "chosenoffset.com/nightcorridor/internal/render"

// NoChoice marks a snapshot without a dialogue selection
const NoChoice = -1

// Snapshot is the input for one tick
type Snapshot struct {
	Dir      int     // Raw horizontal direction: -1, 0 or +1
	Jump     bool    // Edge-triggered
	Interact bool    // Edge-triggered
	Swap     bool    // Edge-triggered
	AimX     float64 // World-space aim target
	AimY     float64
	Fire     bool // Held
	Choice   int  // Dialogue choice index, NoChoice if none
}

// Idle returns a snapshot with no input
func Idle() Snapshot {
	return Snapshot{Choice: NoChoice}
}

// Sampler builds snapshots from a render.InputManager
type Sampler struct {
	input render.InputManager
}

// NewSampler creates a sampler for the given input manager
func NewSampler(in render.InputManager) *Sampler {
	return &Sampler{input: in}
}

// Sample reads the current device state. cameraX/cameraY convert the cursor
// from screen to world coordinates.
func (s *Sampler) Sample(cameraX, cameraY float64) Snapshot {
	in := s.input
	snap := Idle()

	left := in.IsKeyPressed(render.KeyA) || in.IsKeyPressed(render.KeyLeft)
	right := in.IsKeyPressed(render.KeyD) || in.IsKeyPressed(render.KeyRight)
	switch {
	case left && !right:
		snap.Dir = -1
	case right && !left:
		snap.Dir = 1
	}

	snap.Jump = in.IsKeyJustPressed(render.KeyW) ||
		in.IsKeyJustPressed(render.KeyUp) ||
		in.IsKeyJustPressed(render.KeySpace)
	snap.Interact = in.IsKeyJustPressed(render.KeyE)
	snap.Swap = in.IsKeyJustPressed(render.KeyQ)

	cx, cy := in.GetCursorPosition()
	snap.AimX = float64(cx) + cameraX
	snap.AimY = float64(cy) + cameraY
	snap.Fire = in.IsMouseButtonPressed(render.MouseButtonLeft)

	for i, key := range []render.Key{render.Key1, render.Key2, render.Key3, render.Key4} {
		if in.IsKeyJustPressed(key) {
			snap.Choice = i
			break
		}
	}

	return snap
}
