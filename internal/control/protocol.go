// Package control lets a second process drive the running instance over the
// single-instance socket. Requests and responses are one JSON object per line.
package control

import (
	"errors"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

// Command names accepted by the server.
const (
	CommandStatus      = "status"
	CommandPreferences = "preferences"
	CommandPause       = "pause"
	CommandResume      = "resume"
	CommandSnooze      = "snooze"
	CommandClearSnooze = "clear-snooze"
	CommandSkip        = "skip"
	CommandTrigger     = "trigger"
	CommandSet         = "set"
	CommandShow        = "show"
)

// ErrNotRunning is returned by Dial when no instance is listening.
var ErrNotRunning = errors.New("touchgrass is not running")

// Request is one control message.
type Request struct {
	Command string                   `json:"command"`
	Minutes uint64                   `json:"minutes,omitempty"`
	Update  *model.PreferencesUpdate `json:"update,omitempty"`
}

// Response answers a Request. Status and Preferences reflect the engine after
// the request was handled.
type Response struct {
	OK          bool               `json:"ok"`
	Error       string             `json:"error,omitempty"`
	Status      *model.Status      `json:"status,omitempty"`
	Preferences *model.Preferences `json:"preferences,omitempty"`
}

// Err converts a failed response into an error.
func (response Response) Err() error {
	if response.OK {
		return nil
	}
	if response.Error == "" {
		return errors.New("request failed")
	}
	return errors.New(response.Error)
}
