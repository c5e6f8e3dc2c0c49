//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetAutostartWritesAndRemovesDesktopEntry(t *testing.T) {
	home := t.TempDir()
	service := &platformService{homeDir: home}
	entry := AutostartEntry{Name: "TouchGrass", ExecPath: "/usr/bin/touchgrass", Args: []string{AutostartFlag}}
	path := filepath.Join(home, ".config", "autostart", "touchgrass.desktop")

	if err := service.SetAutostart(entry, true); err != nil {
		t.Fatalf("SetAutostart(true) error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("desktop entry not written: %v", err)
	}
	enabled, err := service.AutostartEnabled(entry)
	if err != nil || !enabled {
		t.Errorf("AutostartEnabled() = %v, %v; want true, nil", enabled, err)
	}

	if err := service.SetAutostart(entry, false); err != nil {
		t.Fatalf("SetAutostart(false) error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("desktop entry still present: %v", err)
	}

	// Disabling twice is not an error.
	if err := service.SetAutostart(entry, false); err != nil {
		t.Errorf("second SetAutostart(false) error = %v", err)
	}
}
