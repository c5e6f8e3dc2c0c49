// Package app wires the engine, platform services and fyne UI into the
// running desktop application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/KayraNafi/TouchGrass/internal/config"
	"github.com/KayraNafi/TouchGrass/internal/control"
	"github.com/KayraNafi/TouchGrass/internal/core/model"
	"github.com/KayraNafi/TouchGrass/internal/core/timekeeper"
	"github.com/KayraNafi/TouchGrass/internal/journal"
	"github.com/KayraNafi/TouchGrass/internal/notify"
	"github.com/KayraNafi/TouchGrass/internal/platform"
	"github.com/KayraNafi/TouchGrass/internal/storage"
	"github.com/KayraNafi/TouchGrass/internal/ui/preferences"
	"github.com/KayraNafi/TouchGrass/internal/ui/tray"
	"github.com/KayraNafi/TouchGrass/resources"
)

// ErrTrayUnsupported is returned when the platform has no system tray.
var ErrTrayUnsupported = errors.New("system tray unsupported on this platform")

// Run starts the desktop app and blocks until the user quits. When another
// instance is already running it is asked to show its window instead.
func Run(options *config.Options) error {
	guard, err := platform.AcquireSingleInstance(options.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			return showRunningInstance(options)
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := storage.NewPreferencesStore(storage.DefaultPreferencesPath(options.ConfigDir, options.AppName))
	prefs, err := store.Load()
	if err != nil {
		log.Printf("preferences: %v; using defaults", err)
	}

	fyneApp := fyneapp.NewWithID(config.AppID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconApp))
	preferences.ApplyTheme(fyneApp, prefs.Theme)
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return ErrTrayUnsupported
	}

	keeper := timekeeper.New(prefs, timekeeper.Config{
		IdlePollInterval: options.IdlePollInterval,
		Message:          notify.ChooseMessage,
	})
	sampler := platform.NewIdleSampler(prefs.IdleThreshold())
	log.Printf("idle detection: %s backend", sampler.Backend())
	keeper.SetIdleSampler(sampler)
	keeper.SetNotifier(newNotifier(options, fyneApp, keeper))

	if options.JournalEnabled {
		entries, err := journal.Open(options.JournalPath())
		if err != nil {
			log.Printf("journal: %v", err)
		} else {
			defer entries.Close()
			recorder := journal.NewRecorder(entries, keeper.Subscribe(64))
			go recorder.Run(ctx)
		}
	}

	service := platform.NewService()
	entry, err := platform.NewAutostartEntry(options.AppName)
	if err != nil {
		log.Printf("autostart: %v", err)
	}

	ctrl := &controller{
		TimeKeeper: keeper,
		store:      store,
		autostart:  service,
		entry:      entry,
	}

	prefsWindow := preferences.New(fyneApp, options.AppName, prefs, func(update model.PreferencesUpdate) {
		go func() {
			if _, err := ctrl.UpdatePreferences(ctx, update); err != nil {
				log.Printf("preferences: %v", err)
			}
		}()
	})
	ctrl.onShow = func() {
		fyne.Do(prefsWindow.Show)
	}
	ctrl.onApplied = func(applied model.Preferences) {
		fyne.Do(func() {
			preferences.ApplyTheme(fyneApp, applied.Theme)
			prefsWindow.SetPreferences(applied)
		})
	}

	trayManager := tray.New(desktopApp, options.AppName, tray.Icons{
		Active:  resources.MustIcon(resources.IconActive),
		Paused:  resources.MustIcon(resources.IconPaused),
		Snoozed: resources.MustIcon(resources.IconSnoozed),
	}, tray.Callbacks{
		OnOpen:      prefsWindow.Show,
		OnSetPaused: keeper.SetPaused,
		OnSnooze:    keeper.Snooze,
		OnSkip:      keeper.SkipCurrent,
		OnRemindNow: keeper.TriggerNow,
		OnQuit:      fyneApp.Quit,
	})

	keeper.OnStatus(func(status model.Status) {
		fyne.Do(func() {
			now := time.Now()
			trayManager.SyncStatus(status, now)
			prefsWindow.SetStatus(tray.StatusLine(status, now))
		})
	})

	ctrl.syncAutostart(prefs.AutostartEnabled)

	server := control.NewServer(guard.Listener(), ctrl)
	go func() {
		if err := server.Serve(ctx); err != nil {
			log.Printf("control: %v", err)
		}
	}()

	go keeper.Run(ctx)

	if !options.Autostart {
		prefsWindow.Show()
	}
	fyneApp.Run()

	cancel()
	select {
	case <-keeper.Done():
	case <-time.After(2 * time.Second):
		log.Printf("timekeeper did not stop in time")
	}
	return nil
}

// newNotifier prefers desktop notifications with action buttons and falls
// back to plain fyne notifications.
func newNotifier(options *config.Options, fyneApp fyne.App, keeper *timekeeper.TimeKeeper) notify.Notifier {
	fallback := notify.NewFyneNotifier(fyneApp)

	actions := notify.Actions{Snooze: keeper.Snooze, Skip: keeper.SkipCurrent}
	dbusNotifier, err := notify.NewDBusNotifier(options.AppName, notificationIcon(options), actions)
	if err != nil {
		log.Printf("notifications: %v; using fallback", err)
		return fallback
	}
	return notify.Chain{dbusNotifier, fallback}
}

// notificationIcon writes the embedded app icon where the notification
// server can read it. An empty result lets the server pick its default.
func notificationIcon(options *config.Options) string {
	data, err := resources.IconBytes(resources.IconApp)
	if err != nil {
		log.Printf("notification icon: %v", err)
		return ""
	}
	path := filepath.Join(options.AppDir(), "icon.png")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("notification icon: %v", err)
		return ""
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("notification icon: %v", err)
		return ""
	}
	return path
}

func showRunningInstance(options *config.Options) error {
	if options.Autostart {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := control.Dial(ctx, platform.InstanceAddress(options.AppName))
	if err != nil {
		return fmt.Errorf("reach running instance: %w", err)
	}
	defer client.Close()

	if _, err := client.Do(ctx, control.Request{Command: control.CommandShow}); err != nil {
		return fmt.Errorf("show running instance: %w", err)
	}
	return nil
}
