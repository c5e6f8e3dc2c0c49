package tray

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnOpen      func()
	OnSetPaused func(paused bool)
	OnSnooze    func(minutes uint64)
	OnSkip      func()
	OnRemindNow func()
	OnQuit      func()
}

// Icons are the tray images for each state.
type Icons struct {
	Active  fyne.Resource
	Paused  fyne.Resource
	Snoozed fyne.Resource
}

// Manager keeps the tray menu and icon in step with the engine status.
// Its methods must run on the fyne main goroutine.
type Manager struct {
	app        desktop.App
	title      string
	icons      Icons
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	menu       *fyne.Menu
	paused     bool
	icon       fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Starting...", nil)
	manager.statusItem.Disabled = true

	open := fyne.NewMenuItem("Open "+title, func() {
		if manager.callbacks.OnOpen != nil {
			manager.callbacks.OnOpen()
		}
	})

	manager.pauseItem = fyne.NewMenuItem(pauseLabel(false), func() {
		if manager.callbacks.OnSetPaused != nil {
			manager.callbacks.OnSetPaused(!manager.paused)
		}
	})

	snooze := func(minutes uint64) func() {
		return func() {
			if manager.callbacks.OnSnooze != nil {
				manager.callbacks.OnSnooze(minutes)
			}
		}
	}

	skip := fyne.NewMenuItem("Skip current break", func() {
		if manager.callbacks.OnSkip != nil {
			manager.callbacks.OnSkip()
		}
	})
	remindNow := fyne.NewMenuItem("Remind me now", func() {
		if manager.callbacks.OnRemindNow != nil {
			manager.callbacks.OnRemindNow()
		}
	})

	// fyne adds its own Quit item to tray menus; reuse it.
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(title,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		open,
		manager.pauseItem,
		fyne.NewMenuItem("Snooze 5 minutes", snooze(5)),
		fyne.NewMenuItem("Snooze 15 minutes", snooze(15)),
		skip,
		remindNow,
		fyne.NewMenuItemSeparator(),
		quit,
	)
	app.SetSystemTrayMenu(manager.menu)
	manager.setIcon(icons.Active)

	return manager
}

// SyncStatus refreshes the menu labels and icon from a status snapshot.
func (manager *Manager) SyncStatus(status model.Status, now time.Time) {
	manager.paused = status.Paused
	manager.pauseItem.Label = pauseLabel(status.Paused)
	manager.statusItem.Label = StatusLine(status, now)
	manager.menu.Refresh()

	switch {
	case status.Paused:
		manager.setIcon(manager.icons.Paused)
	case status.Snoozed(now):
		manager.setIcon(manager.icons.Snoozed)
	default:
		manager.setIcon(manager.icons.Active)
	}
}

func (manager *Manager) setIcon(icon fyne.Resource) {
	if icon == nil || icon == manager.icon {
		return
	}
	manager.icon = icon
	manager.app.SetSystemTrayIcon(icon)
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume reminders"
	}
	return "Pause reminders"
}
