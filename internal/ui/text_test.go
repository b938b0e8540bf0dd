package ui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"chosenoffset.com/nightcorridor/internal/render/rendertest"
)

func TestWrapRespectsWidth(t *testing.T) {
	r := &rendertest.Renderer{}

	lines := Wrap(r, "the lamp gutters and the hallway leans closer", 70, 1)
	for _, l := range lines {
		w, _ := r.MeasureText(l, 1)
		assert.LessOrEqual(t, w, 70, l)
	}
	assert.Equal(t, "the lamp", lines[0])

	lines = Wrap(r, "unbreakablewordthatistoolong ok", 70, 1)
	assert.Equal(t, []string{"unbreakablewordthatistoolong", "ok"}, lines)

	assert.Equal(t, []string{"one", "", "two"}, Wrap(r, "one\n\ntwo", 200, 1))
}

func TestFadeScalesPremultiplied(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}
	assert.Equal(t, color.RGBA{}, Fade(c, -1))
	assert.Equal(t, c, Fade(c, 2))
	assert.Equal(t, color.RGBA{100, 50, 25, 127}, Fade(c, 0.5))
}
