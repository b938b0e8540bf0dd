// Package dialog draws the modal encounter panel and lets the player pick a
// choice with the arrow keys and Enter. Number keys are read by the input
// sampler.
package dialog

import (
	"fmt"

	"chosenoffset.com/nightcorridor/internal/dialogue"
	"chosenoffset.com/nightcorridor/internal/render"
	"chosenoffset.com/nightcorridor/internal/ui"
)

const (
	lineHeight = 18
	padding    = 14
)

// Panel is the encounter UI
type Panel struct {
	X, Y          int
	Width, Height int

	encounter *dialogue.Encounter
	body      []string
	selected  int
}

// NewPanel creates a panel centered on a screen of the given size
func NewPanel(screenWidth, screenHeight int) *Panel {
	p := &Panel{}
	p.Resize(screenWidth, screenHeight)
	return p
}

// Resize recenters the panel
func (p *Panel) Resize(screenWidth, screenHeight int) {
	p.Width = min(560, screenWidth-40)
	p.Height = min(320, screenHeight-40)
	p.X = (screenWidth - p.Width) / 2
	p.Y = (screenHeight - p.Height) / 2
	p.body = nil
}

// Show sets the encounter on display. A different encounter resets the
// selection; nil hides the panel.
func (p *Panel) Show(e *dialogue.Encounter) {
	if e != p.encounter {
		p.selected = 0
		p.body = nil
	}
	p.encounter = e
}

// Visible reports whether an encounter is on display
func (p *Panel) Visible() bool {
	return p.encounter != nil
}

// Selected returns the highlighted choice index
func (p *Panel) Selected() int {
	return p.selected
}

// Update handles navigation and returns the confirmed choice, if any
func (p *Panel) Update(in render.InputManager) (int, bool) {
	if p.encounter == nil || len(p.encounter.Choices) == 0 {
		return 0, false
	}
	n := len(p.encounter.Choices)
	if in.IsKeyJustPressed(render.KeyUp) || in.IsKeyJustPressed(render.KeyW) {
		p.selected = (p.selected - 1 + n) % n
	}
	if in.IsKeyJustPressed(render.KeyDown) || in.IsKeyJustPressed(render.KeyS) {
		p.selected = (p.selected + 1) % n
	}
	if in.IsKeyJustPressed(render.KeyEnter) {
		return p.selected, true
	}
	return 0, false
}

// Draw renders the panel when visible
func (p *Panel) Draw(r render.Renderer, dst render.Image) {
	e := p.encounter
	if e == nil {
		return
	}
	if p.body == nil {
		p.body = ui.Wrap(r, e.Body, p.Width-padding*2, 1)
	}

	sw, sh := dst.Size()
	r.FillRect(dst, 0, 0, float32(sw), float32(sh), ui.Fade(ui.Background, 0.6))
	ui.Panel(r, dst, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height))

	x, y := p.X+padding, p.Y+padding
	r.DrawText(dst, e.Title, x, y, ui.Highlight, 1.3)
	y += lineHeight * 2
	for _, line := range p.body {
		r.DrawText(dst, line, x, y, ui.Text, 1)
		y += lineHeight
	}
	y += lineHeight / 2
	r.StrokeLine(dst, float32(x), float32(y), float32(p.X+p.Width-padding), float32(y), 1, ui.Border)
	y += lineHeight / 2

	for i, c := range e.Choices {
		prefix := "  "
		clr := ui.Text
		if i == p.selected {
			prefix = "> "
			clr = ui.Highlight
		}
		r.DrawText(dst, fmt.Sprintf("%s[%d] %s", prefix, i+1, c.Label), x, y, clr, 1)
		y += lineHeight
		if c.Hint != "" {
			r.DrawText(dst, "      "+c.Hint, x, y, ui.Dim, 0.85)
			y += lineHeight
		}
	}
}
