package notify

import (
	"context"

	"fyne.io/fyne/v2"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

// FyneNotifier posts reminders through the fyne app. It carries no action
// buttons and no sound control.
type FyneNotifier struct {
	app   fyne.App
	title string
}

// NewFyneNotifier wraps app.
func NewFyneNotifier(app fyne.App) *FyneNotifier {
	return &FyneNotifier{app: app, title: DefaultTitle}
}

func (notifier *FyneNotifier) Notify(ctx context.Context, reminder model.Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	notification := fyne.NewNotification(notifier.title, reminder.Message)
	fyne.Do(func() {
		notifier.app.SendNotification(notification)
	})
	return nil
}
