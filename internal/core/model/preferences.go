package model

import "time"

const (
	DefaultIntervalMinutes      uint64 = 30
	DefaultIdleThresholdMinutes uint64 = 2

	MinIdleThresholdMinutes uint64 = 1
	MaxIdleThresholdMinutes uint64 = 30

	// MinIntervalMinutes and MaxIntervalMinutes bound user-committed updates.
	// The engine itself only enforces a one minute floor.
	MinIntervalMinutes uint64 = 2
	MaxIntervalMinutes uint64 = 240
)

// Theme is the UI color scheme. The engine passes it through untouched.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Valid reports whether theme is a known value.
func (theme Theme) Valid() bool {
	return theme == ThemeDark || theme == ThemeLight
}

// Preferences is the user-editable reminder configuration.
type Preferences struct {
	IntervalMinutes      uint64 `json:"intervalMinutes"`
	ActivityDetection    bool   `json:"activityDetection"`
	IdleThresholdMinutes uint64 `json:"idleThresholdMinutes"`
	SoundEnabled         bool   `json:"soundEnabled"`
	AutostartEnabled     bool   `json:"autostartEnabled"`
	Theme                Theme  `json:"theme"`
}

// DefaultPreferences returns the preferences used on first launch.
func DefaultPreferences() Preferences {
	return Preferences{
		IntervalMinutes:      DefaultIntervalMinutes,
		ActivityDetection:    true,
		IdleThresholdMinutes: DefaultIdleThresholdMinutes,
		SoundEnabled:         true,
		AutostartEnabled:     true,
		Theme:                ThemeDark,
	}
}

// Interval returns the reminder cadence, never shorter than one minute.
func (prefs Preferences) Interval() time.Duration {
	minutes := prefs.IntervalMinutes
	if minutes < 1 {
		minutes = 1
	}
	return time.Duration(minutes) * time.Minute
}

// IdleThreshold returns the clamped inactivity threshold.
func (prefs Preferences) IdleThreshold() time.Duration {
	return time.Duration(ClampIdleThresholdMinutes(prefs.IdleThresholdMinutes)) * time.Minute
}

// IdleThresholdSeconds returns the clamped threshold in seconds, always in [60, 1800].
func (prefs Preferences) IdleThresholdSeconds() uint64 {
	return ClampIdleThresholdMinutes(prefs.IdleThresholdMinutes) * 60
}

// Normalize clamps stored values into their valid ranges.
func (prefs Preferences) Normalize() Preferences {
	if prefs.IntervalMinutes < 1 {
		prefs.IntervalMinutes = DefaultIntervalMinutes
	}
	prefs.IdleThresholdMinutes = ClampIdleThresholdMinutes(prefs.IdleThresholdMinutes)
	if !prefs.Theme.Valid() {
		prefs.Theme = ThemeDark
	}
	return prefs
}

// ClampIdleThresholdMinutes bounds minutes to [1, 30].
func ClampIdleThresholdMinutes(minutes uint64) uint64 {
	return clamp(minutes, MinIdleThresholdMinutes, MaxIdleThresholdMinutes)
}

// ClampIntervalMinutes bounds minutes to [2, 240].
func ClampIntervalMinutes(minutes uint64) uint64 {
	return clamp(minutes, MinIntervalMinutes, MaxIntervalMinutes)
}

func clamp(value, low, high uint64) uint64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// PreferencesUpdate is a partial change committed by the user. Nil fields are kept.
type PreferencesUpdate struct {
	IntervalMinutes      *uint64 `json:"intervalMinutes,omitempty"`
	ActivityDetection    *bool   `json:"activityDetection,omitempty"`
	IdleThresholdMinutes *uint64 `json:"idleThresholdMinutes,omitempty"`
	SoundEnabled         *bool   `json:"soundEnabled,omitempty"`
	AutostartEnabled     *bool   `json:"autostartEnabled,omitempty"`
	Theme                *Theme  `json:"theme,omitempty"`
}

// Apply returns prefs with the update applied and clamped.
func (update PreferencesUpdate) Apply(prefs Preferences) Preferences {
	if update.IntervalMinutes != nil {
		prefs.IntervalMinutes = ClampIntervalMinutes(*update.IntervalMinutes)
	}
	if update.ActivityDetection != nil {
		prefs.ActivityDetection = *update.ActivityDetection
	}
	if update.IdleThresholdMinutes != nil {
		prefs.IdleThresholdMinutes = ClampIdleThresholdMinutes(*update.IdleThresholdMinutes)
	}
	if update.SoundEnabled != nil {
		prefs.SoundEnabled = *update.SoundEnabled
	}
	if update.AutostartEnabled != nil {
		prefs.AutostartEnabled = *update.AutostartEnabled
	}
	if update.Theme != nil && update.Theme.Valid() {
		prefs.Theme = *update.Theme
	}
	return prefs
}

// IsEmpty reports whether the update changes nothing.
func (update PreferencesUpdate) IsEmpty() bool {
	return update.IntervalMinutes == nil &&
		update.ActivityDetection == nil &&
		update.IdleThresholdMinutes == nil &&
		update.SoundEnabled == nil &&
		update.AutostartEnabled == nil &&
		update.Theme == nil
}
