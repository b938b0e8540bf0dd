package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/nightcorridor/internal/app"
	"chosenoffset.com/nightcorridor/internal/config"
	"chosenoffset.com/nightcorridor/internal/dialogue"
	"chosenoffset.com/nightcorridor/internal/logger"
	ebitenrender "chosenoffset.com/nightcorridor/internal/render/ebiten"
	"chosenoffset.com/nightcorridor/internal/score"
)

const submitQueue = 8

func main() {
	settingsPath := flag.String("settings", "data/settings.yaml", "path to the settings file")
	name := flag.String("name", "", "display name for the leaderboard")
	noImages := flag.Bool("no-images", false, "draw primitives instead of sprite art")
	noConfusion := flag.Bool("no-confusion", false, "never apply the confusion debuff")
	hardAudio := flag.Bool("hard-audio", false, "louder, harsher sound cues")
	dbPath := flag.String("db", "", "leaderboard database path")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	flag.Parse()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		logger.Log.Fatalf("Failed to load settings: %v", err)
	}

	// Flags override the file for this process only
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			settings.PlayerName = *name
		case "no-images":
			settings.AllowImages = !*noImages
		case "no-confusion":
			settings.AllowConfusion = !*noConfusion
		case "hard-audio":
			settings.HardAudio = *hardAudio
		case "db":
			settings.DatabasePath = *dbPath
		case "log-level":
			settings.LogLevel = *logLevel
		}
	})

	logger.Init(settings.LogLevel, settings.LogFormat, os.Stdout)
	log := logger.Log

	if settings.EnsurePlayerID() {
		// Persist a copy without the flag overrides so the ID survives restarts
		stored, err := config.LoadSettings(*settingsPath)
		if err == nil {
			stored.PlayerID = settings.PlayerID
			err = stored.Save(*settingsPath)
		}
		if err != nil {
			log.WithError(err).Warn("Failed to save player identity")
		}
	}

	tuning, err := config.LoadTuning(settings.TuningPath)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}
	library, err := dialogue.LoadLibrary(settings.EncounterPath)
	if err != nil {
		log.Fatalf("Failed to load encounters: %v", err)
	}

	renderer, err := ebitenrender.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	inputMgr := ebitenrender.NewInputManager()
	loader := ebitenrender.NewResourceLoader()
	engine := ebitenrender.NewEngine()

	opts := app.Options{
		Settings: settings,
		Tuning:   tuning,
		Library:  library,
		Renderer: renderer,
		Input:    inputMgr,
		Loader:   loader,
		Audio:    ebitenrender.NewAudio(),
	}

	// The leaderboard is optional; the game runs without it
	store, err := score.OpenSQLite(settings.DatabasePath)
	if err != nil {
		log.WithError(err).Warn("Leaderboard disabled")
	} else {
		defer store.Close()
		scores := score.NewAsync(store, submitQueue)
		defer scores.Close()
		opts.Scores = scores
		opts.Leaderboard = store
	}

	game := app.New(opts)

	engine.SetWindowSize(settings.ScreenWidth, settings.ScreenHeight)
	engine.SetWindowTitle("Night Corridor")
	engine.SetWindowResizable(true)

	log.WithFields(logrus.Fields{
		"player":    settings.PlayerName,
		"images":    settings.AllowImages,
		"confusion": settings.AllowConfusion,
		"hardAudio": settings.HardAudio,
	}).Info("Starting game")
	if err := engine.RunGame(game); err != nil {
		log.WithError(err).Error("Game loop ended with an error")
	}
}
