//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

func (service *platformService) plistPath(entry AutostartEntry) (string, error) {
	homeDir, err := service.home()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(entry)+".plist"), nil
}

func (service *platformService) enableAutostart(entry AutostartEntry) error {
	path, err := service.plistPath(entry)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create LaunchAgents dir: %w", err)
	}
	content := buildLaunchAgentPlist(launchAgentLabel(entry), entry)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write plist: %w", err)
	}
	return nil
}

func (service *platformService) disableAutostart(entry AutostartEntry) error {
	path, err := service.plistPath(entry)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove plist: %w", err)
	}
	return nil
}

// AutostartEnabled reports whether the launch agent exists.
func (service *platformService) AutostartEnabled(entry AutostartEntry) (bool, error) {
	path, err := service.plistPath(entry)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat plist: %w", err)
	}
	return true, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}
