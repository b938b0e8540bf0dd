package assets

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/nightcorridor/internal/logger"
	"chosenoffset.com/nightcorridor/internal/render"
	"chosenoffset.com/nightcorridor/internal/render/rendertest"
)

func TestLoadFallsBackForMissingAssets(t *testing.T) {
	logger.Discard()

	golem := &rendertest.Image{W: 48, H: 60}
	loader := &rendertest.Loader{Images: map[string]render.Image{
		filepath.Join("assets", "golem.png"): golem,
	}}

	lib := Load(loader, "assets", true)

	img, ok := lib.Lookup("golem")
	require.True(t, ok)
	assert.Same(t, golem, img)

	_, ok = lib.Lookup("angel")
	assert.False(t, ok, "missing files are reported as absent, not as errors")
}

func TestDisabledLibraryReportsEverythingAbsent(t *testing.T) {
	loader := &rendertest.Loader{Images: map[string]render.Image{
		filepath.Join("assets", "player.png"): &rendertest.Image{W: 1, H: 1},
	}}

	lib := Load(loader, "assets", false)
	_, ok := lib.Lookup("player")
	assert.False(t, ok)

	var nilLib *Library
	_, ok = nilLib.Lookup("player")
	assert.False(t, ok)
}

func TestRegisterValidates(t *testing.T) {
	lib := Load(nil, "", true)
	assert.Error(t, lib.Register("", &rendertest.Image{}))
	assert.Error(t, lib.Register("exit", nil))
	require.NoError(t, lib.Register("exit", &rendertest.Image{W: 4, H: 4}))

	_, ok := lib.Lookup("exit")
	assert.True(t, ok)
}
