package notify

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

const (
	notificationsService   = "org.freedesktop.Notifications"
	notificationsInterface = "org.freedesktop.Notifications"
	notificationsPath      = dbus.ObjectPath("/org/freedesktop/Notifications")

	actionRemindLater = "touchgrass.remind_in_5"
	actionSkipBreak   = "touchgrass.skip_break"

	reminderSound = "message-new-instant"
)

// pendingActions remembers the button wording shown on one notification.
type pendingActions struct {
	remind ActionVariant
	skip   ActionVariant
}

// DBusNotifier sends freedesktop notifications with "remind me in five" and
// "skip" buttons, and dispatches presses to Actions.
type DBusNotifier struct {
	appName string
	icon    string
	actions Actions

	conn    *dbus.Conn
	object  dbus.BusObject
	signals chan *dbus.Signal

	mu      sync.Mutex
	pending map[uint32]pendingActions
}

// NewDBusNotifier connects to the session bus and starts listening for
// action invocations.
func NewDBusNotifier(appName, icon string, actions Actions) (*DBusNotifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	for _, member := range []string{"ActionInvoked", "NotificationClosed"} {
		err := conn.AddMatchSignal(
			dbus.WithMatchObjectPath(notificationsPath),
			dbus.WithMatchInterface(notificationsInterface),
			dbus.WithMatchMember(member),
		)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("subscribe to %s: %w", member, err)
		}
	}

	notifier := newDBusNotifier(appName, icon, actions)
	notifier.conn = conn
	notifier.object = conn.Object(notificationsService, notificationsPath)
	conn.Signal(notifier.signals)
	go notifier.listen()
	return notifier, nil
}

func newDBusNotifier(appName, icon string, actions Actions) *DBusNotifier {
	return &DBusNotifier{
		appName: appName,
		icon:    icon,
		actions: actions,
		signals: make(chan *dbus.Signal, 16),
		pending: make(map[uint32]pendingActions),
	}
}

// Notify shows reminder and returns once the server has accepted it.
func (notifier *DBusNotifier) Notify(ctx context.Context, reminder model.Reminder) error {
	choice := pendingActions{remind: ChooseRemindVariant(), skip: ChooseSkipVariant()}
	actions := []string{
		actionRemindLater, choice.remind.Label,
		actionSkipBreak, choice.skip.Label,
	}

	var id uint32
	call := notifier.object.CallWithContext(ctx, notificationsInterface+".Notify", 0,
		notifier.appName,
		uint32(0),
		notifier.icon,
		DefaultTitle,
		reminder.Message,
		actions,
		soundHints(reminder.SoundEnabled),
		int32(-1),
	)
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	notifier.mu.Lock()
	notifier.pending[id] = choice
	notifier.mu.Unlock()
	return nil
}

// Close drops the bus connection, which also ends the listener.
func (notifier *DBusNotifier) Close() error {
	if notifier.conn == nil {
		return nil
	}
	return notifier.conn.Close()
}

func soundHints(enabled bool) map[string]dbus.Variant {
	if enabled {
		return map[string]dbus.Variant{"sound-name": dbus.MakeVariant(reminderSound)}
	}
	return map[string]dbus.Variant{"suppress-sound": dbus.MakeVariant(true)}
}

func (notifier *DBusNotifier) listen() {
	for signal := range notifier.signals {
		notifier.handleSignal(signal)
	}
}

func (notifier *DBusNotifier) handleSignal(signal *dbus.Signal) {
	if len(signal.Body) == 0 {
		return
	}
	id, ok := signal.Body[0].(uint32)
	if !ok {
		return
	}

	switch signal.Name {
	case notificationsInterface + ".ActionInvoked":
		if len(signal.Body) < 2 {
			return
		}
		key, _ := signal.Body[1].(string)
		if choice, ok := notifier.take(id); ok {
			notifier.dispatch(key, choice)
		}
	case notificationsInterface + ".NotificationClosed":
		notifier.take(id)
	}
}

// take removes and returns the button wording recorded for id.
func (notifier *DBusNotifier) take(id uint32) (pendingActions, bool) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	choice, ok := notifier.pending[id]
	delete(notifier.pending, id)
	return choice, ok
}

func (notifier *DBusNotifier) dispatch(key string, choice pendingActions) {
	switch key {
	case actionRemindLater:
		log.Printf("notification action: %s", choice.remind.LogLine)
		notifier.actions.snooze(RemindLaterMinutes)
	case actionSkipBreak:
		log.Printf("notification action: %s", choice.skip.LogLine)
		notifier.actions.skip()
	}
}
