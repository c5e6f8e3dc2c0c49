package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// AutostartFlag is appended to the login command so the app starts hidden.
const AutostartFlag = "--autostart"

var errEmptyAutostartName = errors.New("app name is empty")

// AutostartEntry describes how the app is launched at login.
type AutostartEntry struct {
	Name     string
	ExecPath string
	Args     []string
}

// NewAutostartEntry builds the login entry for the running executable.
func NewAutostartEntry(name string) (AutostartEntry, error) {
	execPath, err := os.Executable()
	if err != nil {
		return AutostartEntry{}, fmt.Errorf("resolve executable: %w", err)
	}
	return AutostartEntry{Name: name, ExecPath: execPath, Args: []string{AutostartFlag}}, nil
}

func (entry AutostartEntry) validate() error {
	if strings.TrimSpace(entry.Name) == "" {
		return errEmptyAutostartName
	}
	if entry.ExecPath == "" {
		return errors.New("exec path is empty")
	}
	return nil
}

// slug lowercases the name and replaces spaces with dashes.
func (entry AutostartEntry) slug() string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(entry.Name)), " ", "-")
}

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	SetAutostart(entry AutostartEntry, enabled bool) error
	AutostartEnabled(entry AutostartEntry) (bool, error)
}

type platformService struct {
	// homeDir overrides the user's home directory in tests.
	homeDir string
}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

func (service *platformService) home() (string, error) {
	if service.homeDir != "" {
		return service.homeDir, nil
	}
	return os.UserHomeDir()
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	if service.homeDir == "" {
		configDir, err := os.UserConfigDir()
		if err == nil && configDir != "" {
			return configDir, nil
		}
	}

	homeDir, err := service.home()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return fallbackConfigDir(homeDir), nil
}

// SetAutostart registers or removes the login entry.
func (service *platformService) SetAutostart(entry AutostartEntry, enabled bool) error {
	if err := entry.validate(); err != nil {
		return fmt.Errorf("set autostart: %w", err)
	}
	if enabled {
		if err := service.enableAutostart(entry); err != nil {
			return fmt.Errorf("enable autostart: %w", err)
		}
		return nil
	}
	if err := service.disableAutostart(entry); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}
