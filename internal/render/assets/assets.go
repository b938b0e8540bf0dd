// Package assets provides the optional sprite lookup used by the drawing layer.
// A missing or disabled asset is never an error: callers fall back to the
// procedural shape for that logical name.
package assets

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/nightcorridor/internal/logger"
	"chosenoffset.com/nightcorridor/internal/render"
)

// Names lists every logical sprite the game knows how to draw
var Names = []string{
	"player", "daughter", "companion",
	"angel", "fiend", "golem", "crazy", "wailer",
	"bin", "glass", "potion", "chest",
	"medkit", "tonic", "relic", "charm", "memento",
	"exit",
}

// Library maps logical sprite names to loaded images
type Library struct {
	images  map[string]render.Image
	enabled bool
}

// Load tries to load <dir>/<name>.png for every known name.
// When enabled is false nothing is loaded and every lookup reports absent.
func Load(loader render.ResourceLoader, dir string, enabled bool) *Library {
	lib := &Library{
		images:  make(map[string]render.Image),
		enabled: enabled,
	}
	if !enabled || loader == nil {
		return lib
	}

	missing := 0
	for _, name := range Names {
		img, err := loader.LoadImage(filepath.Join(dir, name+".png"))
		if err != nil {
			missing++
			logger.Log.WithFields(logrus.Fields{"asset": name}).Debugf("Asset unavailable: %v", err)
			continue
		}
		lib.images[name] = img
	}

	logger.Log.WithFields(logrus.Fields{
		"loaded":  len(lib.images),
		"missing": missing,
	}).Info("Sprite assets scanned")
	return lib
}

// Lookup returns the image for a logical name, or false when absent
func (l *Library) Lookup(name string) (render.Image, bool) {
	if l == nil || !l.enabled {
		return nil, false
	}
	img, ok := l.images[name]
	return img, ok
}

// Register adds or replaces an image by name
func (l *Library) Register(name string, img render.Image) error {
	if name == "" {
		return fmt.Errorf("asset name cannot be empty")
	}
	if img == nil {
		return fmt.Errorf("asset %s: nil image", name)
	}
	l.images[name] = img
	return nil
}
