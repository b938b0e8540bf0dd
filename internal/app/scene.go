package app

import (
	"image/color"
	"math"

	"chosenoffset.com/nightcorridor/internal/entity"
	"chosenoffset.com/nightcorridor/internal/game"
	"chosenoffset.com/nightcorridor/internal/render"
	"chosenoffset.com/nightcorridor/internal/render/assets"
	"chosenoffset.com/nightcorridor/internal/render/lighting"
	"chosenoffset.com/nightcorridor/internal/ui"
)

// Procedural colors for names without a sprite
var shapeColors = map[string]color.RGBA{
	"crate":     {58, 52, 48, 255},
	"exit":      {90, 200, 140, 255},
	"bin":       {70, 80, 70, 255},
	"glass":     {150, 190, 210, 255},
	"potion":    {170, 60, 170, 255},
	"chest":     {150, 110, 50, 255},
	"medkit":    {220, 60, 60, 255},
	"tonic":     {90, 120, 230, 255},
	"relic":     {230, 200, 80, 255},
	"charm":     {240, 150, 200, 255},
	"memento":   {200, 200, 200, 255},
	"daughter":  {240, 220, 160, 255},
	"player":    {200, 200, 210, 255},
	"companion": {150, 230, 255, 255},
	"angel":     {235, 235, 255, 255},
	"fiend":     {170, 40, 40, 255},
	"golem":     {110, 100, 90, 255},
	"crazy":     {200, 120, 60, 255},
	"wailer":    {120, 160, 120, 255},
	"blood":     {120, 0, 10, 255},
	"shard":     {180, 200, 210, 255},
}

var (
	groundColor   = color.RGBA{24, 20, 26, 255}
	eliteOutline  = color.RGBA{255, 90, 40, 255}
	playerBullet  = color.RGBA{255, 230, 150, 255}
	enemyBullet   = color.RGBA{255, 80, 80, 255}
	companionShot = color.RGBA{150, 230, 255, 255}
	beamColor     = color.RGBA{255, 240, 190, 255}
	fallbackColor = color.RGBA{255, 0, 255, 255}
)

const minSpriteAlpha = 0.01

// Scene draws a frame's draw list. Sprites come from the asset library when
// available; everything else is a procedural shape.
type Scene struct {
	r      render.Renderer
	sprite *assets.Library
	lights *lighting.Manager
}

// NewScene creates a scene drawer
func NewScene(r render.Renderer, sprites *assets.Library, lights *lighting.Manager) *Scene {
	return &Scene{r: r, sprite: sprites, lights: lights}
}

// Draw renders the world part of a frame
func (s *Scene) Draw(dst render.Image, f game.Frame, groundY float64) {
	w, h := dst.Size()
	dst.Fill(ui.Background)
	s.r.FillRect(dst, 0, float32(groundY), float32(w), float32(float64(h)-groundY), groundColor)

	for _, d := range f.Drawables {
		x := d.X - f.CameraX
		light := s.lights.Brightness(d.X+d.W/2, d.Y+d.H/2)
		// Actors and projectiles stay readable in the dark
		if d.Kind >= game.DrawDaughter {
			light = math.Max(light, 0.45)
		}
		alpha := d.Alpha * light

		switch d.Kind {
		case game.DrawBeam:
			s.r.StrokeLine(dst, float32(x), float32(d.Y), float32(d.X2-f.CameraX), float32(d.Y2),
				float32(d.W), ui.Fade(beamColor, d.Alpha))
		case game.DrawBullet:
			s.r.FillRect(dst, float32(x), float32(d.Y), float32(d.W), float32(d.H), ui.Fade(bulletColor(d.Owner), d.Alpha))
		case game.DrawParticle:
			s.r.FillRect(dst, float32(x), float32(d.Y), float32(d.W), float32(d.H), ui.Fade(colorFor(d.Name), alpha))
		case game.DrawPickup:
			bob := 3 * math.Sin(d.Phase*4)
			s.r.FillCircle(dst, float32(x+d.W/2), float32(d.Y+d.H/2+bob), float32(d.W/2), ui.Fade(colorFor(d.Name), alpha))
		case game.DrawProp:
			if d.Broken {
				s.r.StrokeRect(dst, float32(x), float32(d.Y+d.H/2), float32(d.W), float32(d.H/2), 1,
					ui.Fade(colorFor(d.Name), alpha*0.5))
				continue
			}
			s.drawBody(dst, d, x, alpha)
		default:
			s.drawBody(dst, d, x, alpha)
		}
	}
}

// drawBody draws a sprite scaled to the drawable's box, or a rectangle
func (s *Scene) drawBody(dst render.Image, d game.Drawable, x, alpha float64) {
	img, ok := s.lookup(d)
	if ok && render.NewGeoM != nil {
		iw, ih := img.Size()
		if iw > 0 && ih > 0 {
			geo := render.NewGeoM()
			sx, sy := d.W/float64(iw), d.H/float64(ih)
			if d.Facing < 0 {
				geo.Scale(-sx, sy)
				geo.Translate(x+d.W, d.Y)
			} else {
				geo.Scale(sx, sy)
				geo.Translate(x, d.Y)
			}
			dst.DrawImage(img, &render.DrawImageOptions{GeoM: geo, Alpha: float32(math.Max(alpha, minSpriteAlpha))})
			s.outline(dst, d, x)
			return
		}
	}

	name := d.Name
	if d.Kind == game.DrawPlayer {
		name = "player"
	}
	s.r.FillRect(dst, float32(x), float32(d.Y), float32(d.W), float32(d.H), ui.Fade(colorFor(name), alpha))
	if d.Kind == game.DrawPlayer || d.Kind == game.DrawEnemy {
		// Eye on the facing side
		ex := x + d.W*0.7
		if d.Facing < 0 {
			ex = x + d.W*0.3
		}
		s.r.FillCircle(dst, float32(ex), float32(d.Y+d.H*0.25), 2.5, ui.Fade(color.RGBA{255, 255, 255, 255}, alpha))
	}
	s.outline(dst, d, x)
}

func (s *Scene) outline(dst render.Image, d game.Drawable, x float64) {
	if d.Elite {
		s.r.StrokeRect(dst, float32(x-2), float32(d.Y-2), float32(d.W+4), float32(d.H+4), 2, eliteOutline)
	}
}

func (s *Scene) lookup(d game.Drawable) (render.Image, bool) {
	if img, ok := s.sprite.Lookup(d.Name); ok {
		return img, true
	}
	if d.Kind == game.DrawPlayer {
		return s.sprite.Lookup("player")
	}
	return nil, false
}

func colorFor(name string) color.RGBA {
	if c, ok := shapeColors[name]; ok {
		return c
	}
	return fallbackColor
}

func bulletColor(o entity.Owner) color.RGBA {
	switch o {
	case entity.OwnerEnemy:
		return enemyBullet
	case entity.OwnerCompanion:
		return companionShot
	default:
		return playerBullet
	}
}
