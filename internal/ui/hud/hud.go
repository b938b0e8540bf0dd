// Package hud draws the in-run overlay: vitals, objective, weapon, score,
// active status effects and the fading message feed.
package hud

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"chosenoffset.com/nightcorridor/internal/game"
	"chosenoffset.com/nightcorridor/internal/render"
	"chosenoffset.com/nightcorridor/internal/ui"
)

const (
	panelWidth  = 220
	barHeight   = 10
	lineHeight  = 18
	padding     = 8
	maxMessages = 4
)

// HUD draws game.HUD snapshots
type HUD struct {
	r            render.Renderer
	screenWidth  int
	screenHeight int
	clock        float64 // Drives the overlay animations only
}

// New creates a HUD for the given screen size
func New(r render.Renderer, screenWidth, screenHeight int) *HUD {
	return &HUD{r: r, screenWidth: screenWidth, screenHeight: screenHeight}
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
}

// Advance moves the overlay animation clock
func (h *HUD) Advance(dt float64) {
	h.clock += dt
}

// Draw renders the overlay for one frame
func (h *HUD) Draw(dst render.Image, s game.HUD, messages []game.Message) {
	h.drawOverlays(dst, s)

	x, y := padding, padding
	height := 6*lineHeight + 2*(barHeight+6) + padding*2
	if s.Timer != "" {
		height += lineHeight
	}
	ui.Panel(h.r, dst, float32(x), float32(y), panelWidth, float32(height))

	x += padding
	y += padding
	y = h.drawBar(dst, x, y, "HP", s.HP, ui.Health)
	y = h.drawBar(dst, x, y, "Sanity", s.Sanity, ui.Sanity)

	h.text(dst, s.Mission, x, y, ui.Highlight)
	y += lineHeight
	if s.Timer != "" {
		h.text(dst, "Time "+s.Timer, x, y, ui.Text)
		y += lineHeight
	}
	h.text(dst, "Weapon: "+s.Weapon, x, y, ui.Text)
	y += lineHeight
	h.text(dst, fmt.Sprintf("Score %d   %dm", s.Score, int(s.Distance/10)), x, y, ui.Text)
	y += lineHeight
	h.text(dst, "Night: "+s.Mode, x, y, ui.Dim)
	y += lineHeight
	if s.CompanionBoost > 0 {
		h.text(dst, fmt.Sprintf("Companion %.1fs", s.CompanionBoost), x, y, ui.Warning)
	}
	y += lineHeight
	if len(s.Statuses) > 0 {
		h.text(dst, strings.Join(s.Statuses, "  "), x, y, ui.Warning)
	}

	if s.CanRescue {
		prompt := "E  take her hand"
		w, _ := h.r.MeasureText(prompt, 1)
		h.text(dst, prompt, (h.screenWidth-w)/2, h.screenHeight/2-60, ui.Highlight)
	}

	h.drawMessages(dst, messages)
}

func (h *HUD) drawBar(dst render.Image, x, y int, label string, frac float64, clr color.Color) int {
	frac = max(0, min(1, frac))
	h.text(dst, label, x, y, ui.Text)
	barX := float32(x + 56)
	barW := float32(panelWidth - 56 - padding*2)
	h.r.FillRect(dst, barX, float32(y+3), barW, barHeight, ui.Border)
	h.r.FillRect(dst, barX, float32(y+3), barW*float32(frac), barHeight, clr)
	return y + barHeight + 6 + padding/2
}

// drawMessages stacks the newest messages at the bottom of the screen
func (h *HUD) drawMessages(dst render.Image, messages []game.Message) {
	if len(messages) > maxMessages {
		messages = messages[len(messages)-maxMessages:]
	}
	y := h.screenHeight - padding - lineHeight*len(messages)
	for _, m := range messages {
		alpha := 1.0
		if m.MaxTime > 0 && m.TimeLeft < 1 {
			alpha = m.TimeLeft
		}
		w, _ := h.r.MeasureText(m.Text, 1)
		h.text(dst, m.Text, (h.screenWidth-w)/2, y, ui.Fade(ui.Text, alpha))
		y += lineHeight
	}
}

// drawOverlays tints the screen for the perception debuffs. They are
// cosmetic; the simulation already accounts for their effects.
func (h *HUD) drawOverlays(dst render.Image, s game.HUD) {
	w, ht := float32(h.screenWidth), float32(h.screenHeight)
	if s.Memory {
		pulse := 0.5 + 0.5*math.Sin(h.clock*3)
		h.r.FillRect(dst, 0, 0, w, ht, ui.Fade(color.RGBA{40, 10, 50, 255}, 0.25+0.15*pulse))
	}
	if s.Wiggle {
		for i := 0; i < 6; i++ {
			y := float32(math.Mod(h.clock*90+float64(i)*float64(ht)/6, float64(ht)))
			dx := float32(6 * math.Sin(h.clock*7+float64(i)))
			h.r.StrokeLine(dst, dx, y, w+dx, y+8, 2, ui.Fade(color.RGBA{120, 200, 120, 255}, 0.35))
		}
	}
}

func (h *HUD) text(dst render.Image, s string, x, y int, clr color.Color) {
	h.r.DrawText(dst, s, x, y, clr, 1)
}
