// Package placeholders draws stand-in sprites for every logical asset name so
// the image path of the renderer can be exercised before real art exists.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/nightcorridor/internal/logger"
)

// SpriteSize is the edge of every placeholder sprite; the renderer scales
// sprites to the entity box
const SpriteSize = 32

// Shape is how a placeholder is drawn
type Shape int

const (
	Box Shape = iota
	Figure
	Orb
)

// Spec describes one placeholder
type Spec struct {
	Shape   Shape
	Fill    color.RGBA
	Outline color.RGBA
}

var outline = color.RGBA{20, 18, 24, 255}

// Specs maps asset names to their placeholder
var Specs = map[string]Spec{
	"player":    {Figure, color.RGBA{200, 200, 210, 255}, outline},
	"daughter":  {Figure, color.RGBA{240, 220, 160, 255}, outline},
	"companion": {Orb, color.RGBA{150, 230, 255, 255}, outline},
	"angel":     {Orb, color.RGBA{235, 235, 255, 255}, outline},
	"fiend":     {Figure, color.RGBA{170, 40, 40, 255}, outline},
	"golem":     {Box, color.RGBA{110, 100, 90, 255}, outline},
	"crazy":     {Figure, color.RGBA{200, 120, 60, 255}, outline},
	"wailer":    {Orb, color.RGBA{120, 160, 120, 255}, outline},
	"bin":       {Box, color.RGBA{70, 80, 70, 255}, outline},
	"glass":     {Box, color.RGBA{150, 190, 210, 255}, outline},
	"potion":    {Orb, color.RGBA{170, 60, 170, 255}, outline},
	"chest":     {Box, color.RGBA{150, 110, 50, 255}, outline},
	"medkit":    {Box, color.RGBA{220, 60, 60, 255}, color.RGBA{255, 255, 255, 255}},
	"tonic":     {Orb, color.RGBA{90, 120, 230, 255}, outline},
	"relic":     {Orb, color.RGBA{230, 200, 80, 255}, outline},
	"charm":     {Orb, color.RGBA{240, 150, 200, 255}, outline},
	"memento":   {Box, color.RGBA{200, 200, 200, 255}, outline},
	"exit":      {Box, color.RGBA{90, 200, 140, 255}, outline},
}

// CreateBox creates a filled square with a border
func CreateBox(fill, border color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{border}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(2, 2, SpriteSize-2, SpriteSize-2), &image.Uniform{fill}, image.Point{}, draw.Src)
	return img
}

// CreateOrb creates an outlined circle on a transparent background
func CreateOrb(fill, border color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))
	center := SpriteSize / 2
	radius := SpriteSize/2 - 2

	for y := 0; y < SpriteSize; y++ {
		for x := 0; x < SpriteSize; x++ {
			dx, dy := x-center, y-center
			distSq := dx*dx + dy*dy
			if distSq <= radius*radius {
				img.Set(x, y, fill)
			} else if distSq <= (radius+1)*(radius+1) {
				img.Set(x, y, border)
			}
		}
	}
	return img
}

// CreateFigure creates a head-and-body silhouette facing right
func CreateFigure(fill, border color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))
	head := CreateOrb(fill, border)
	draw.Draw(img, image.Rect(8, 0, 24, 16), scaleDown(head, 2), image.Point{}, draw.Over)

	body := image.Rect(9, 14, 23, SpriteSize)
	draw.Draw(img, body, &image.Uniform{border}, image.Point{}, draw.Src)
	draw.Draw(img, body.Inset(1), &image.Uniform{fill}, image.Point{}, draw.Src)

	// Eye on the facing side
	img.Set(19, 6, border)
	img.Set(20, 6, border)
	return img
}

// scaleDown shrinks a sprite by an integer factor using nearest sampling
func scaleDown(src *image.RGBA, factor int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()/factor, b.Dy()/factor))
	for y := 0; y < dst.Bounds().Dy(); y++ {
		for x := 0; x < dst.Bounds().Dx(); x++ {
			dst.Set(x, y, src.At(x*factor, y*factor))
		}
	}
	return dst
}

// Create draws the placeholder for a spec
func Create(s Spec) *image.RGBA {
	switch s.Shape {
	case Figure:
		return CreateFigure(s.Fill, s.Outline)
	case Orb:
		return CreateOrb(s.Fill, s.Outline)
	default:
		return CreateBox(s.Fill, s.Outline)
	}
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Generate writes <dir>/<name>.png for each name. Existing files are kept
// unless overwrite is set. It returns the paths written.
func Generate(dir string, names []string, overwrite bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory: %w", err)
	}

	var written []string
	for _, name := range names {
		spec, ok := Specs[name]
		if !ok {
			logger.Log.WithFields(logrus.Fields{"asset": name}).Warn("No placeholder defined")
			continue
		}
		path := filepath.Join(dir, name+".png")
		if !overwrite {
			if _, err := os.Stat(path); err == nil {
				continue
			}
		}
		if err := SavePNG(Create(spec), path); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
