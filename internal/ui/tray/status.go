package tray

import (
	"fmt"
	"time"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

// StatusLine renders the disabled first tray item.
func StatusLine(status model.Status, now time.Time) string {
	switch {
	case status.Paused:
		return "Reminders paused"
	case status.Snoozed(now):
		return fmt.Sprintf("Snoozed until %s", clock(*status.SnoozedUntil))
	case status.NextTriggerAt != nil:
		line := fmt.Sprintf("Next break at %s", clock(*status.NextTriggerAt))
		if status.IdleSeconds != nil && *status.IdleSeconds >= 60 {
			line += fmt.Sprintf(" (away %s)", humanMinutes(*status.IdleSeconds))
		}
		return line
	default:
		return "Waiting for schedule"
	}
}

func clock(at time.Time) string {
	return at.Local().Format("15:04")
}

func humanMinutes(seconds uint64) string {
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
