package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
	"github.com/KayraNafi/TouchGrass/internal/core/timekeeper"
	"github.com/KayraNafi/TouchGrass/internal/platform"
)

// preferencesSaver persists preferences.
type preferencesSaver interface {
	Save(prefs model.Preferences) error
}

// autostarter registers the login entry.
type autostarter interface {
	SetAutostart(entry platform.AutostartEntry, enabled bool) error
}

// controller is the command surface shared by the tray, the preferences
// window and the control socket. Preference changes go through the engine
// first, then get saved and applied to the OS.
type controller struct {
	*timekeeper.TimeKeeper

	// updates serializes preference changes so saves land in engine order.
	updates sync.Mutex

	store     preferencesSaver
	autostart autostarter
	entry     platform.AutostartEntry

	// onApplied runs after a preference change has been adopted.
	onApplied func(model.Preferences)
	// onShow brings the main window forward.
	onShow func()
}

// UpdatePreferences applies update, persists the result and syncs autostart.
// Save and autostart failures are logged; the engine keeps the new values.
func (ctrl *controller) UpdatePreferences(ctx context.Context, update model.PreferencesUpdate) (model.Preferences, error) {
	ctrl.updates.Lock()
	defer ctrl.updates.Unlock()

	previous := ctrl.Preferences()
	effective, err := ctrl.TimeKeeper.UpdatePreferences(ctx, update)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("update preferences: %w", err)
	}

	if ctrl.store != nil {
		if err := ctrl.store.Save(effective); err != nil {
			log.Printf("preferences: save: %v", err)
		}
	}
	if effective.AutostartEnabled != previous.AutostartEnabled {
		ctrl.syncAutostart(effective.AutostartEnabled)
	}
	if ctrl.onApplied != nil {
		ctrl.onApplied(effective)
	}
	return effective, nil
}

func (ctrl *controller) syncAutostart(enabled bool) {
	if ctrl.autostart == nil || ctrl.entry.ExecPath == "" {
		return
	}
	if err := ctrl.autostart.SetAutostart(ctrl.entry, enabled); err != nil {
		log.Printf("autostart: %v", err)
	}
}

// ShowWindow brings the main window forward.
func (ctrl *controller) ShowWindow() {
	if ctrl.onShow != nil {
		ctrl.onShow()
	}
}
