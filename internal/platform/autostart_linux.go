//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

func (service *platformService) desktopFilePath(entry AutostartEntry) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", desktopFileName(entry)), nil
}

func (service *platformService) enableAutostart(entry AutostartEntry) error {
	path, err := service.desktopFilePath(entry)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create autostart dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(buildDesktopEntry(entry)), 0o644); err != nil {
		return fmt.Errorf("write desktop entry: %w", err)
	}
	return nil
}

func (service *platformService) disableAutostart(entry AutostartEntry) error {
	path, err := service.desktopFilePath(entry)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove desktop entry: %w", err)
	}
	return nil
}

// AutostartEnabled reports whether the desktop entry exists.
func (service *platformService) AutostartEnabled(entry AutostartEntry) (bool, error) {
	path, err := service.desktopFilePath(entry)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat desktop entry: %w", err)
	}
	return true, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}
