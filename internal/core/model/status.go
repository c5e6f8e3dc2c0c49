package model

import "time"

// Status is the externally visible scheduling state.
// It is rebuilt from engine state on every transition and never patched by consumers.
type Status struct {
	Paused             bool       `json:"paused"`
	SnoozedUntil       *time.Time `json:"snoozedUntil"`
	NextTriggerAt      *time.Time `json:"nextTriggerAt"`
	LastNotificationAt *time.Time `json:"lastNotificationAt"`
	IdleSeconds        *uint64    `json:"idleSeconds"`
}

// Snoozed reports whether a snooze expiry lies after now.
func (status Status) Snoozed(now time.Time) bool {
	return status.SnoozedUntil != nil && status.SnoozedUntil.After(now)
}

// Equal compares two snapshots field by field.
func (status Status) Equal(other Status) bool {
	return status.Paused == other.Paused &&
		timePtrEqual(status.SnoozedUntil, other.SnoozedUntil) &&
		timePtrEqual(status.NextTriggerAt, other.NextTriggerAt) &&
		timePtrEqual(status.LastNotificationAt, other.LastNotificationAt) &&
		uintPtrEqual(status.IdleSeconds, other.IdleSeconds)
}

func timePtrEqual(left, right *time.Time) bool {
	if left == nil || right == nil {
		return left == right
	}
	return left.Equal(*right)
}

func uintPtrEqual(left, right *uint64) bool {
	if left == nil || right == nil {
		return left == right
	}
	return *left == *right
}
