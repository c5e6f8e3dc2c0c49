package timekeeper

import (
	"time"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStatus     EventType = "status"
	EventReminder   EventType = "reminder"
	EventSuppressed EventType = "suppressed"
	EventCommand    EventType = "command"
	EventIdleError  EventType = "idle_error"
)

// SuppressReason explains why a deadline firing did not notify.
type SuppressReason string

const (
	SuppressPaused  SuppressReason = "paused"
	SuppressSnoozed SuppressReason = "snoozed"
	SuppressIdle    SuppressReason = "idle"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type    EventType
	Status  model.Status
	Reason  SuppressReason
	Command string
	Message string
	At      time.Time
}

// command is a control request consumed once by the loop, in arrival order.
type command interface {
	name() string
}

// preferencesReplaced carries the change to apply to the preferences the
// loop holds, so partial updates never start from a stale copy.
type preferencesReplaced struct {
	change func(model.Preferences) model.Preferences
	reply  chan model.Preferences
}

type setPaused struct {
	paused bool
}

type snooze struct {
	duration time.Duration
}

type clearSnooze struct{}

type skipCurrent struct{}

type triggerNow struct{}

// barrier is answered once every earlier command has been handled.
type barrier struct {
	reply chan struct{}
}

func (preferencesReplaced) name() string { return "preferences" }

func (cmd setPaused) name() string {
	if cmd.paused {
		return "pause"
	}
	return "resume"
}

func (snooze) name() string      { return "snooze" }
func (clearSnooze) name() string { return "clear_snooze" }
func (skipCurrent) name() string { return "skip" }
func (triggerNow) name() string  { return "trigger" }
func (barrier) name() string     { return "sync" }
