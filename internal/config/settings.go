package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Settings holds the process-wide toggles. They are read once at startup and
// never change while a run is in progress.
type Settings struct {
	AllowImages    bool   `yaml:"allow_images"`
	AllowConfusion bool   `yaml:"allow_confusion"`
	HardAudio      bool   `yaml:"hard_audio"`
	PlayerName     string `yaml:"player_name"`
	PlayerID       string `yaml:"player_id"`
	DatabasePath   string `yaml:"database_path"`
	AssetDir       string `yaml:"asset_dir"`
	TuningPath     string `yaml:"tuning_path"`
	EncounterPath  string `yaml:"encounter_path"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	ScreenWidth    int    `yaml:"screen_width"`
	ScreenHeight   int    `yaml:"screen_height"`
}

// DefaultSettings returns the settings used when no file is present
func DefaultSettings() *Settings {
	return &Settings{
		AllowImages:    true,
		AllowConfusion: true,
		HardAudio:      false,
		PlayerName:     "anonymous",
		DatabasePath:   "data/scores.db",
		AssetDir:       "assets",
		TuningPath:     "data/tuning.yaml",
		EncounterPath:  "data/encounters.yaml",
		LogLevel:       "info",
		LogFormat:      "text",
		ScreenWidth:    960,
		ScreenHeight:   540,
	}
}

// LoadSettings reads settings from a YAML file on top of the defaults.
// A missing file yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return s, nil
}

// EnsurePlayerID assigns a stable player identity on first launch. It
// reports whether the settings changed and should be saved.
func (s *Settings) EnsurePlayerID() bool {
	if s.PlayerID != "" {
		return false
	}
	s.PlayerID = uuid.NewString()
	return true
}

// Save writes the settings back to disk
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
