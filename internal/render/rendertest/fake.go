// Package rendertest provides in-memory implementations of the render
// interfaces for tests that must not open a window.
package rendertest

import (
	"errors"
	"image/color"

	"chosenoffset.com/nightcorridor/internal/render"
)

var (
	_ render.InputManager   = (*Input)(nil)
	_ render.Image          = (*Image)(nil)
	_ render.Renderer       = (*Renderer)(nil)
	_ render.ResourceLoader = (*Loader)(nil)
	_ render.AudioPlayer    = (*Audio)(nil)
)

// Input is a scriptable render.InputManager
type Input struct {
	Pressed     map[render.Key]bool
	JustPressed map[render.Key]bool
	CursorX     int
	CursorY     int
	Mouse       map[render.MouseButton]bool
}

// NewInput creates an Input with nothing pressed
func NewInput() *Input {
	return &Input{
		Pressed:     make(map[render.Key]bool),
		JustPressed: make(map[render.Key]bool),
		Mouse:       make(map[render.MouseButton]bool),
	}
}

// Tap marks a key as pressed on this frame
func (in *Input) Tap(key render.Key) {
	in.Pressed[key] = true
	in.JustPressed[key] = true
}

// EndFrame clears the edge-triggered state
func (in *Input) EndFrame() {
	in.JustPressed = make(map[render.Key]bool)
}

// IsKeyPressed implements render.InputManager
func (in *Input) IsKeyPressed(key render.Key) bool { return in.Pressed[key] }

// IsKeyJustPressed implements render.InputManager
func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.JustPressed[key] }

// GetCursorPosition implements render.InputManager
func (in *Input) GetCursorPosition() (int, int) { return in.CursorX, in.CursorY }

// IsMouseButtonPressed implements render.InputManager
func (in *Input) IsMouseButtonPressed(b render.MouseButton) bool { return in.Mouse[b] }

// Image is an inert render.Image of a fixed size
type Image struct {
	W, H  int
	Draws int
}

// Size implements render.Image
func (i *Image) Size() (int, int) { return i.W, i.H }

// Fill implements render.Image
func (i *Image) Fill(color.Color) {}

// DrawImage implements render.Image
func (i *Image) DrawImage(render.Image, *render.DrawImageOptions) { i.Draws++ }

// Renderer records what was drawn
type Renderer struct {
	Shapes int
	Texts  []string
}

// FillCircle implements render.Renderer
func (r *Renderer) FillCircle(render.Image, float32, float32, float32, color.Color) { r.Shapes++ }

// FillRect implements render.Renderer
func (r *Renderer) FillRect(render.Image, float32, float32, float32, float32, color.Color) {
	r.Shapes++
}

// StrokeRect implements render.Renderer
func (r *Renderer) StrokeRect(render.Image, float32, float32, float32, float32, float32, color.Color) {
	r.Shapes++
}

// StrokeLine implements render.Renderer
func (r *Renderer) StrokeLine(render.Image, float32, float32, float32, float32, float32, color.Color) {
	r.Shapes++
}

// DrawText implements render.Renderer
func (r *Renderer) DrawText(_ render.Image, text string, _, _ int, _ color.Color, _ float64) {
	r.Texts = append(r.Texts, text)
}

// MeasureText implements render.Renderer using a 7x14 cell per rune
func (r *Renderer) MeasureText(text string, scale float64) (int, int) {
	return int(float64(len([]rune(text))) * 7 * scale), int(14 * scale)
}

// Loader is a render.ResourceLoader backed by a map; missing names fail
type Loader struct {
	Images map[string]render.Image
	Err    error
}

// LoadImage implements render.ResourceLoader
func (l *Loader) LoadImage(path string) (render.Image, error) {
	if img, ok := l.Images[path]; ok {
		return img, nil
	}
	if l.Err != nil {
		return nil, l.Err
	}
	return nil, errors.New("image not found: " + path)
}

// Played is one recorded AudioPlayer call
type Played struct {
	Tone   render.Tone
	Volume float64
}

// Audio records what was played
type Audio struct {
	Played []Played
}

// Play implements render.AudioPlayer
func (a *Audio) Play(t render.Tone, volume float64) {
	a.Played = append(a.Played, Played{Tone: t, Volume: volume})
}
