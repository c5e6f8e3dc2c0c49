package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KayraNafi/TouchGrass/internal/journal"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvIdlePoll, "")
	t.Setenv(EnvJournal, "")
	t.Setenv(EnvAppName, "")

	options, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if options.AppName != AppName {
		t.Errorf("AppName = %q, want %q", options.AppName, AppName)
	}
	if options.IdlePollInterval != DefaultIdlePollInterval {
		t.Errorf("IdlePollInterval = %v, want %v", options.IdlePollInterval, DefaultIdlePollInterval)
	}
	if !options.JournalEnabled {
		t.Error("expected journal enabled by default")
	}
	if want := filepath.Join(dir, AppName, journal.FileName); options.JournalPath() != want {
		t.Errorf("JournalPath() = %q, want %q", options.JournalPath(), want)
	}
}

func TestLoadEnvFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvAppName, "")
	t.Setenv(EnvJournal, "")

	envFile := filepath.Join(dir, AppName, envFileName)
	if err := os.MkdirAll(filepath.Dir(envFile), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "TOUCHGRASS_IDLE_POLL=5s\nTOUCHGRASS_JOURNAL=off\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// The process environment wins over the file.
	t.Setenv(EnvIdlePoll, "45s")

	options, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if options.IdlePollInterval != 45*time.Second {
		t.Errorf("IdlePollInterval = %v, want 45s", options.IdlePollInterval)
	}
	if options.JournalEnabled {
		t.Error("expected journal disabled by env file")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{name: "bad duration", key: EnvIdlePoll, value: "soon", want: EnvIdlePoll},
		{name: "too fast", key: EnvIdlePoll, value: "10ms", want: "idle poll interval"},
		{name: "bad bool", key: EnvJournal, value: "maybe", want: EnvJournal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConfigDir, t.TempDir())
			t.Setenv(EnvIdlePoll, "")
			t.Setenv(EnvJournal, "")
			t.Setenv(EnvAppName, "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	options := Default()
	options.ConfigDir = t.TempDir()
	if err := options.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	options.AppName = " "
	if err := options.Validate(); err == nil {
		t.Error("expected error for blank app name")
	}
}
