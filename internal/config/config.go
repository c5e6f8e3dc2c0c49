// Package config resolves runtime options for the desktop app and its CLI.
// User preferences live in the storage package; this covers where things go
// and how the engine runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/KayraNafi/TouchGrass/internal/journal"
)

const (
	// AppName names the config directory, the autostart entry and the
	// single-instance port.
	AppName = "TouchGrass"
	// AppID is the fyne application identifier.
	AppID = "com.touchgrass.app"

	envFileName = "touchgrass.env"

	DefaultIdlePollInterval = 20 * time.Second
	minIdlePollInterval     = time.Second
	maxIdlePollInterval     = 10 * time.Minute
)

// Environment variables read by Load.
const (
	EnvConfigDir = "TOUCHGRASS_CONFIG_DIR"
	EnvIdlePoll  = "TOUCHGRASS_IDLE_POLL"
	EnvJournal   = "TOUCHGRASS_JOURNAL"
	EnvAppName   = "TOUCHGRASS_APP_NAME"
)

// Options holds process-level configuration.
type Options struct {
	AppName          string
	ConfigDir        string
	IdlePollInterval time.Duration
	JournalEnabled   bool
	// Autostart is set when the OS launched the app at login.
	Autostart bool
}

// Default returns options rooted at the user's config directory.
func Default() *Options {
	configDir, err := os.UserConfigDir()
	if err != nil {
		if home, homeErr := os.UserHomeDir(); homeErr == nil {
			configDir = filepath.Join(home, ".config")
		}
	}
	return &Options{
		AppName:          AppName,
		ConfigDir:        configDir,
		IdlePollInterval: DefaultIdlePollInterval,
		JournalEnabled:   true,
	}
}

// Load applies, in order, the defaults, the optional touchgrass.env file in
// the app directory and the process environment.
func Load() (*Options, error) {
	options := Default()
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		options.ConfigDir = dir
	}

	values, err := godotenv.Read(options.EnvFilePath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", options.EnvFilePath(), err)
	}
	if values == nil {
		values = map[string]string{}
	}
	for _, key := range []string{EnvIdlePoll, EnvJournal, EnvAppName} {
		if value := os.Getenv(key); value != "" {
			values[key] = value
		}
	}

	if err := options.apply(values); err != nil {
		return nil, err
	}
	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return options, nil
}

func (options *Options) apply(values map[string]string) error {
	if name := strings.TrimSpace(values[EnvAppName]); name != "" {
		options.AppName = name
	}
	if raw := values[EnvIdlePoll]; raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvIdlePoll, err)
		}
		options.IdlePollInterval = interval
	}
	if raw := values[EnvJournal]; raw != "" {
		enabled, err := parseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvJournal, err)
		}
		options.JournalEnabled = enabled
	}
	return nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// Validate checks that the options can be used.
func (options *Options) Validate() error {
	if strings.TrimSpace(options.AppName) == "" {
		return errors.New("app name is required")
	}
	if options.ConfigDir == "" {
		return errors.New("config directory could not be determined")
	}
	if options.IdlePollInterval < minIdlePollInterval || options.IdlePollInterval > maxIdlePollInterval {
		return fmt.Errorf("idle poll interval %v outside [%v, %v]", options.IdlePollInterval, minIdlePollInterval, maxIdlePollInterval)
	}
	return nil
}

// AppDir is the per-app directory holding every file the app writes.
func (options *Options) AppDir() string {
	return filepath.Join(options.ConfigDir, options.AppName)
}

// EnvFilePath is the optional dotenv file read by Load.
func (options *Options) EnvFilePath() string {
	return filepath.Join(options.AppDir(), envFileName)
}

// JournalPath is the SQLite reminder journal.
func (options *Options) JournalPath() string {
	return filepath.Join(options.AppDir(), journal.FileName)
}
