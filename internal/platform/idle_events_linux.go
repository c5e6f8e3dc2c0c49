package platform

import (
	"fmt"
	"log"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	mutterIdleService   = "org.gnome.Mutter.IdleMonitor"
	mutterIdleInterface = "org.gnome.Mutter.IdleMonitor"
	mutterIdlePath      = dbus.ObjectPath("/org/gnome/Mutter/IdleMonitor/Core")
)

// idleMonitorBus is the subset of the Mutter IdleMonitor interface in use.
type idleMonitorBus interface {
	AddIdleWatch(threshold time.Duration) (uint32, error)
	AddUserActiveWatch() (uint32, error)
	RemoveWatch(id uint32) error
	IdleTime() (time.Duration, error)
}

// mutterBus calls the IdleMonitor object on the session bus.
type mutterBus struct {
	object dbus.BusObject
}

func (bus mutterBus) AddIdleWatch(threshold time.Duration) (uint32, error) {
	var id uint32
	err := bus.object.Call(mutterIdleInterface+".AddIdleWatch", 0, uint64(threshold.Milliseconds())).Store(&id)
	return id, err
}

func (bus mutterBus) AddUserActiveWatch() (uint32, error) {
	var id uint32
	err := bus.object.Call(mutterIdleInterface+".AddUserActiveWatch", 0).Store(&id)
	return id, err
}

func (bus mutterBus) RemoveWatch(id uint32) error {
	return bus.object.Call(mutterIdleInterface+".RemoveWatch", 0, id).Err
}

func (bus mutterBus) IdleTime() (time.Duration, error) {
	var millis uint64
	if err := bus.object.Call(mutterIdleInterface+".GetIdletime", 0).Store(&millis); err != nil {
		return 0, err
	}
	return time.Duration(millis) * time.Millisecond, nil
}

// mutterIdleMonitor turns Mutter's idle and user-active watches into
// idleWatch updates. One goroutine owns both watch ids.
type mutterIdleMonitor struct {
	bus      idleMonitorBus
	watch    *idleWatch
	signals  chan *dbus.Signal
	idleID   uint32
	activeID uint32
}

func subscribeIdleWatch(threshold time.Duration) (*idleWatch, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchObjectPath(mutterIdlePath),
		dbus.WithMatchInterface(mutterIdleInterface),
		dbus.WithMatchMember("WatchFired"),
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("subscribe to idle monitor: %w", err)
	}

	monitor := newMutterIdleMonitor(mutterBus{object: conn.Object(mutterIdleService, mutterIdlePath)}, threshold)
	conn.Signal(monitor.signals)
	if err := monitor.start(threshold, time.Now()); err != nil {
		_ = conn.Close()
		return nil, err
	}
	go monitor.run()
	return monitor.watch, nil
}

func newMutterIdleMonitor(bus idleMonitorBus, threshold time.Duration) *mutterIdleMonitor {
	return &mutterIdleMonitor{
		bus:     bus,
		watch:   newIdleWatch(threshold),
		signals: make(chan *dbus.Signal, 16),
	}
}

func (monitor *mutterIdleMonitor) start(threshold time.Duration, now time.Time) error {
	if err := monitor.addIdleWatch(threshold); err != nil {
		return err
	}

	// A session that is already past the threshold will not fire the new
	// watch until the user returns and goes idle again.
	idle, err := monitor.bus.IdleTime()
	if err != nil {
		return fmt.Errorf("read idle time: %w", err)
	}
	if idle >= threshold {
		monitor.watch.markIdleSince(now.Add(-idle))
		monitor.addActiveWatch()
	}
	return nil
}

func (monitor *mutterIdleMonitor) addIdleWatch(threshold time.Duration) error {
	id, err := monitor.bus.AddIdleWatch(threshold)
	if err != nil {
		return fmt.Errorf("add idle watch: %w", err)
	}
	monitor.idleID = id
	monitor.watch.setThreshold(threshold)
	return nil
}

func (monitor *mutterIdleMonitor) addActiveWatch() {
	if monitor.activeID != 0 {
		return
	}
	id, err := monitor.bus.AddUserActiveWatch()
	if err != nil {
		log.Printf("idle monitor: add active watch: %v", err)
		return
	}
	monitor.activeID = id
}

func (monitor *mutterIdleMonitor) run() {
	for {
		select {
		case signal, ok := <-monitor.signals:
			if !ok {
				log.Printf("idle monitor: session bus closed")
				monitor.watch.markActive()
				return
			}
			monitor.handleSignal(signal, time.Now())
		case threshold := <-monitor.watch.requests:
			monitor.rekey(threshold)
		}
	}
}

// rekey replaces the idle watch with one for threshold.
func (monitor *mutterIdleMonitor) rekey(threshold time.Duration) {
	if monitor.idleID != 0 {
		if err := monitor.bus.RemoveWatch(monitor.idleID); err != nil {
			log.Printf("idle monitor: remove watch %d: %v", monitor.idleID, err)
		}
		monitor.idleID = 0
	}
	if err := monitor.addIdleWatch(threshold); err != nil {
		log.Printf("idle monitor: %v", err)
	}
}

func (monitor *mutterIdleMonitor) handleSignal(signal *dbus.Signal, now time.Time) {
	if signal.Name != mutterIdleInterface+".WatchFired" || len(signal.Body) != 1 {
		return
	}
	id, ok := signal.Body[0].(uint32)
	if !ok || id == 0 {
		return
	}
	switch id {
	case monitor.idleID:
		monitor.watch.markIdle(now)
		monitor.addActiveWatch()
	case monitor.activeID:
		// User-active watches are one-shot on the Mutter side.
		monitor.activeID = 0
		monitor.watch.markActive()
	}
}
