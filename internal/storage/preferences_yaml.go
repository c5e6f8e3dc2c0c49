package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
	"gopkg.in/yaml.v3"
)

const preferencesFileName = "preferences.yaml"

// yamlPreferences is the on-disk shape. Missing keys keep their defaults.
type yamlPreferences struct {
	IntervalMinutes      *uint64 `yaml:"interval_minutes"`
	ActivityDetection    *bool   `yaml:"activity_detection"`
	IdleThresholdMinutes *uint64 `yaml:"idle_threshold_minutes"`
	SoundEnabled         *bool   `yaml:"sound_enabled"`
	AutostartEnabled     *bool   `yaml:"autostart_enabled"`
	Theme                *string `yaml:"theme"`
}

// PreferencesStore keeps user preferences in a YAML file.
type PreferencesStore struct {
	path string
}

// NewPreferencesStore returns a store backed by path.
func NewPreferencesStore(path string) *PreferencesStore {
	return &PreferencesStore{path: path}
}

// DefaultPreferencesPath returns <config dir>/<appName>/preferences.yaml.
func DefaultPreferencesPath(configDir, appName string) string {
	return filepath.Join(configDir, appName, preferencesFileName)
}

// Path returns the backing file.
func (store *PreferencesStore) Path() string {
	return store.path
}

// Load reads preferences from disk. A missing file yields defaults. A file
// that cannot be parsed is moved aside and replaced with defaults; only a
// failed read is reported as an error.
func (store *PreferencesStore) Load() (model.Preferences, error) {
	prefs := model.DefaultPreferences()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("read preferences file: %w", err)
	}

	var fileData yamlPreferences
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		log.Printf("preferences: %s was invalid (%v); restoring defaults", store.path, err)
		store.backupCorrupt()
		if err := store.Save(prefs); err != nil {
			log.Printf("preferences: write defaults: %v", err)
		}
		return prefs, nil
	}

	applyYamlPreferences(&prefs, fileData)
	return prefs.Normalize(), nil
}

// Save writes preferences to disk, creating the directory if needed.
func (store *PreferencesStore) Save(prefs model.Preferences) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	theme := string(prefs.Theme)
	fileData := yamlPreferences{
		IntervalMinutes:      &prefs.IntervalMinutes,
		ActivityDetection:    &prefs.ActivityDetection,
		IdleThresholdMinutes: &prefs.IdleThresholdMinutes,
		SoundEnabled:         &prefs.SoundEnabled,
		AutostartEnabled:     &prefs.AutostartEnabled,
		Theme:                &theme,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal preferences yaml: %w", err)
	}

	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}
	return nil
}

// backupCorrupt renames the file to .corrupt, or .corrupt.N when taken.
// If the rename fails the file is removed.
func (store *PreferencesStore) backupCorrupt() {
	backupPath := store.path + ".corrupt"
	for counter := 1; fileExists(backupPath); counter++ {
		backupPath = fmt.Sprintf("%s.corrupt.%d", store.path, counter)
	}

	if err := os.Rename(store.path, backupPath); err != nil {
		log.Printf("preferences: backup corrupt file (%v); removing it", err)
		_ = os.Remove(store.path)
		return
	}
	log.Printf("preferences: moved corrupt file to %s", backupPath)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func applyYamlPreferences(prefs *model.Preferences, fileData yamlPreferences) {
	if fileData.IntervalMinutes != nil {
		prefs.IntervalMinutes = *fileData.IntervalMinutes
	}
	if fileData.ActivityDetection != nil {
		prefs.ActivityDetection = *fileData.ActivityDetection
	}
	if fileData.IdleThresholdMinutes != nil {
		prefs.IdleThresholdMinutes = *fileData.IdleThresholdMinutes
	}
	if fileData.SoundEnabled != nil {
		prefs.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.AutostartEnabled != nil {
		prefs.AutostartEnabled = *fileData.AutostartEnabled
	}
	if fileData.Theme != nil {
		prefs.Theme = model.Theme(*fileData.Theme)
	}
}
