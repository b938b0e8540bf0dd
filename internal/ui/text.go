// Package ui holds what the HUD, dialogue panel and menus share: the palette
// and text layout through a render.Renderer.
package ui

import (
	"image/color"
	"strings"

	"chosenoffset.com/nightcorridor/internal/render"
)

// Palette
var (
	Background = color.RGBA{12, 10, 16, 255}
	PanelFill  = color.RGBA{20, 20, 30, 230}
	Border     = color.RGBA{60, 60, 80, 255}
	Text       = color.RGBA{200, 200, 200, 255}
	Dim        = color.RGBA{120, 120, 120, 255}
	Highlight  = color.RGBA{255, 255, 150, 255}
	Health     = color.RGBA{190, 40, 48, 255}
	Sanity     = color.RGBA{90, 110, 220, 255}
	Warning    = color.RGBA{255, 200, 100, 255}
)

// Wrap breaks text into lines no wider than maxWidth pixels. A single word
// wider than the limit gets a line of its own.
func Wrap(r render.Renderer, text string, maxWidth int, scale float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if width, _ := r.MeasureText(candidate, scale); width > maxWidth {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// Fade returns c with its alpha scaled by a in [0, 1]
func Fade(c color.RGBA, a float64) color.RGBA {
	a = max(0, min(1, a))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// Panel draws a bordered panel background
func Panel(r render.Renderer, dst render.Image, x, y, w, h float32) {
	r.FillRect(dst, x, y, w, h, PanelFill)
	r.StrokeRect(dst, x, y, w, h, 1, Border)
}
