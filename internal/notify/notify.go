// Package notify delivers reminders to the desktop.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

// DefaultTitle is the summary line of every reminder.
const DefaultTitle = "TouchGrass"

// RemindLaterMinutes is the snooze applied by the "remind me in five" action.
const RemindLaterMinutes = 5

// Notifier shows a reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, reminder model.Reminder) error
}

// Actions receives the notification buttons a user presses. Nil callbacks
// are ignored.
type Actions struct {
	Snooze func(minutes uint64)
	Skip   func()
}

func (actions Actions) snooze(minutes uint64) {
	if actions.Snooze != nil {
		actions.Snooze(minutes)
	}
}

func (actions Actions) skip() {
	if actions.Skip != nil {
		actions.Skip()
	}
}

// Chain tries each notifier in order and stops at the first success.
type Chain []Notifier

// Notify returns the joined errors when every notifier fails.
func (chain Chain) Notify(ctx context.Context, reminder model.Reminder) error {
	var errs []error
	for _, notifier := range chain {
		if notifier == nil {
			continue
		}
		err := notifier.Notify(ctx, reminder)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return errors.New("no notifier configured")
	}
	return fmt.Errorf("notify: %w", errors.Join(errs...))
}
