package preferences

import (
	"strconv"
	"strings"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

const (
	themeDarkLabel  = "Dark"
	themeLightLabel = "Light"
)

// formValues is what the widgets hold when the user presses Save.
type formValues struct {
	interval   string
	activity   bool
	threshold  float64
	sound      bool
	autostart  bool
	themeLabel string
}

func valuesFromPreferences(prefs model.Preferences) formValues {
	return formValues{
		interval:   strconv.FormatUint(prefs.IntervalMinutes, 10),
		activity:   prefs.ActivityDetection,
		threshold:  float64(model.ClampIdleThresholdMinutes(prefs.IdleThresholdMinutes)),
		sound:      prefs.SoundEnabled,
		autostart:  prefs.AutostartEnabled,
		themeLabel: themeLabel(prefs.Theme),
	}
}

// buildUpdate turns the form into an update. An interval that does not
// parse as a positive number is left unchanged.
func buildUpdate(values formValues) model.PreferencesUpdate {
	update := model.PreferencesUpdate{
		ActivityDetection: &values.activity,
		SoundEnabled:      &values.sound,
		AutostartEnabled:  &values.autostart,
	}

	if minutes, ok := parsePositiveUint(values.interval); ok {
		update.IntervalMinutes = &minutes
	}
	if values.threshold >= 1 {
		threshold := uint64(values.threshold + 0.5)
		update.IdleThresholdMinutes = &threshold
	}
	if theme, ok := themeFromLabel(values.themeLabel); ok {
		update.Theme = &theme
	}
	return update
}

func parsePositiveUint(value string) (uint64, bool) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return parsed, true
}

func themeLabel(theme model.Theme) string {
	if theme == model.ThemeLight {
		return themeLightLabel
	}
	return themeDarkLabel
}

func themeFromLabel(label string) (model.Theme, bool) {
	switch label {
	case themeDarkLabel:
		return model.ThemeDark, true
	case themeLightLabel:
		return model.ThemeLight, true
	}
	return "", false
}
