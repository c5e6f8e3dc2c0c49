//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) enableAutostart(entry AutostartEntry) error {
	output, err := exec.Command(
		"reg", "add", registryRunKey,
		"/v", entry.Name,
		"/t", "REG_SZ",
		"/d", windowsRunCommand(entry),
		"/f",
	).CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (service *platformService) disableAutostart(entry AutostartEntry) error {
	enabled, err := service.AutostartEnabled(entry)
	if err != nil || !enabled {
		return err
	}
	output, err := exec.Command("reg", "delete", registryRunKey, "/v", entry.Name, "/f").CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg delete failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// AutostartEnabled reports whether the Run value exists.
func (service *platformService) AutostartEnabled(entry AutostartEntry) (bool, error) {
	err := exec.Command("reg", "query", registryRunKey, "/v", entry.Name).Run()
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*exec.ExitError); ok {
		return false, nil
	}
	return false, fmt.Errorf("reg query failed: %w", err)
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}
