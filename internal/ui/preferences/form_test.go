package preferences

import (
	"testing"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

func TestFormRoundTripKeepsPreferences(t *testing.T) {
	prefs := model.Preferences{
		IntervalMinutes:      45,
		ActivityDetection:    true,
		IdleThresholdMinutes: 7,
		SoundEnabled:         false,
		AutostartEnabled:     true,
		Theme:                model.ThemeLight,
	}

	got := buildUpdate(valuesFromPreferences(prefs)).Apply(model.DefaultPreferences())
	if got != prefs {
		t.Errorf("round trip = %+v, want %+v", got, prefs)
	}
}

func TestBuildUpdate(t *testing.T) {
	tests := []struct {
		name          string
		values        formValues
		wantInterval  *uint64
		wantThreshold uint64
		wantTheme     *model.Theme
	}{
		{
			name:          "valid",
			values:        formValues{interval: " 20 ", threshold: 4.6, themeLabel: themeDarkLabel},
			wantInterval:  ptr(uint64(20)),
			wantThreshold: 5,
			wantTheme:     ptr(model.ThemeDark),
		},
		{
			name:          "invalid interval left alone",
			values:        formValues{interval: "soon", threshold: 1, themeLabel: "Neon"},
			wantThreshold: 1,
		},
		{
			name:          "zero interval left alone",
			values:        formValues{interval: "0", threshold: 30},
			wantThreshold: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update := buildUpdate(tt.values)
			if (update.IntervalMinutes == nil) != (tt.wantInterval == nil) ||
				(update.IntervalMinutes != nil && *update.IntervalMinutes != *tt.wantInterval) {
				t.Errorf("IntervalMinutes = %v, want %v", update.IntervalMinutes, tt.wantInterval)
			}
			if update.IdleThresholdMinutes == nil || *update.IdleThresholdMinutes != tt.wantThreshold {
				t.Errorf("IdleThresholdMinutes = %v, want %d", update.IdleThresholdMinutes, tt.wantThreshold)
			}
			if (update.Theme == nil) != (tt.wantTheme == nil) ||
				(update.Theme != nil && *update.Theme != *tt.wantTheme) {
				t.Errorf("Theme = %v, want %v", update.Theme, tt.wantTheme)
			}
		})
	}
}

func ptr[T any](value T) *T {
	return &value
}
