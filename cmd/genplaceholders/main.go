package main

import (
	"flag"
	"os"

	"chosenoffset.com/nightcorridor/internal/logger"
	"chosenoffset.com/nightcorridor/internal/placeholders"
	"chosenoffset.com/nightcorridor/internal/render/assets"
)

func main() {
	dir := flag.String("dir", "assets", "directory to write sprites into")
	overwrite := flag.Bool("overwrite", false, "replace existing sprites")
	flag.Parse()

	logger.Init("info", "text", os.Stdout)

	written, err := placeholders.Generate(*dir, assets.Names, *overwrite)
	if err != nil {
		logger.Log.Fatalf("Failed to generate placeholders: %v", err)
	}
	logger.Log.WithField("count", len(written)).Info("Placeholder sprites ready")
}
