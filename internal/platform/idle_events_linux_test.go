package platform

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
)

type fakeIdleMonitorBus struct {
	mu          sync.Mutex
	nextID      uint32
	idle        time.Duration
	idleErr     error
	activeErr   error
	idleWatches []time.Duration
	activeAdds  int
	removed     []uint32
}

func (bus *fakeIdleMonitorBus) AddIdleWatch(threshold time.Duration) (uint32, error) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.nextID++
	bus.idleWatches = append(bus.idleWatches, threshold)
	return bus.nextID, nil
}

func (bus *fakeIdleMonitorBus) AddUserActiveWatch() (uint32, error) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if bus.activeErr != nil {
		return 0, bus.activeErr
	}
	bus.nextID++
	bus.activeAdds++
	return bus.nextID, nil
}

func (bus *fakeIdleMonitorBus) RemoveWatch(id uint32) error {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.removed = append(bus.removed, id)
	return nil
}

func (bus *fakeIdleMonitorBus) IdleTime() (time.Duration, error) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	return bus.idle, bus.idleErr
}

func watchFired(id interface{}) *dbus.Signal {
	return &dbus.Signal{
		Path: mutterIdlePath,
		Name: mutterIdleInterface + ".WatchFired",
		Body: []interface{}{id},
	}
}

func startedMonitor(t *testing.T, bus *fakeIdleMonitorBus, threshold time.Duration, now time.Time) *mutterIdleMonitor {
	t.Helper()
	monitor := newMutterIdleMonitor(bus, threshold)
	if err := monitor.start(threshold, now); err != nil {
		t.Fatalf("start() error = %v", err)
	}
	return monitor
}

func TestMutterStartSeedsIdleSession(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	bus := &fakeIdleMonitorBus{idle: 5 * time.Minute}
	monitor := startedMonitor(t, bus, 2*time.Minute, now)

	if got := monitor.watch.idleSeconds(now); got != 300 {
		t.Errorf("idleSeconds = %d, want 300", got)
	}
	if monitor.idleID == 0 || monitor.activeID == 0 {
		t.Errorf("watch ids = (%d, %d), want both armed", monitor.idleID, monitor.activeID)
	}
	if len(bus.idleWatches) != 1 || bus.idleWatches[0] != 2*time.Minute {
		t.Errorf("idle watches = %v, want [2m]", bus.idleWatches)
	}
}

func TestMutterStartFailsWithoutIdleTime(t *testing.T) {
	bus := &fakeIdleMonitorBus{idleErr: errors.New("no such method")}
	monitor := newMutterIdleMonitor(bus, time.Minute)
	if err := monitor.start(time.Minute, time.Now()); err == nil {
		t.Fatal("start() error = nil, want failure")
	}
}

func TestMutterHandleSignal(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	bus := &fakeIdleMonitorBus{}
	monitor := startedMonitor(t, bus, 2*time.Minute, now)
	idleID := monitor.idleID

	ignored := []*dbus.Signal{
		{Name: "org.example.Other.WatchFired", Body: []interface{}{idleID}},
		{Name: mutterIdleInterface + ".WatchFired"},
		watchFired("not-an-id"),
		watchFired(uint32(0)),
		watchFired(uint32(999)),
	}
	for _, signal := range ignored {
		monitor.handleSignal(signal, now)
	}
	if got := monitor.watch.idleSeconds(now); got != 0 || monitor.activeID != 0 {
		t.Fatalf("after foreign signals idle = %d activeID = %d, want untouched", got, monitor.activeID)
	}

	monitor.handleSignal(watchFired(idleID), now)
	if got := monitor.watch.idleSeconds(now); got != 120 {
		t.Errorf("idleSeconds after idle watch = %d, want 120", got)
	}
	activeID := monitor.activeID
	if activeID == 0 || bus.activeAdds != 1 {
		t.Fatalf("active watch = %d (adds %d), want one armed", activeID, bus.activeAdds)
	}

	monitor.handleSignal(watchFired(idleID), now.Add(time.Minute))
	if bus.activeAdds != 1 {
		t.Errorf("active adds = %d, want the armed watch reused", bus.activeAdds)
	}

	monitor.handleSignal(watchFired(activeID), now.Add(2*time.Minute))
	if got := monitor.watch.idleSeconds(now.Add(2 * time.Minute)); got != 0 {
		t.Errorf("idleSeconds after active watch = %d, want 0", got)
	}
	if monitor.activeID != 0 {
		t.Errorf("activeID = %d, want reset", monitor.activeID)
	}
}

func TestMutterActiveWatchFailureKeepsIdle(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	bus := &fakeIdleMonitorBus{activeErr: errors.New("bus gone")}
	monitor := startedMonitor(t, bus, time.Minute, now)

	monitor.handleSignal(watchFired(monitor.idleID), now)
	if got := monitor.watch.idleSeconds(now); got != 60 {
		t.Errorf("idleSeconds = %d, want 60", got)
	}
	if monitor.activeID != 0 {
		t.Errorf("activeID = %d, want 0", monitor.activeID)
	}
}

func TestMutterRekeyReplacesIdleWatch(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	bus := &fakeIdleMonitorBus{}
	monitor := startedMonitor(t, bus, 2*time.Minute, now)
	oldID := monitor.idleID

	monitor.rekey(10 * time.Minute)

	if len(bus.removed) != 1 || bus.removed[0] != oldID {
		t.Errorf("removed = %v, want [%d]", bus.removed, oldID)
	}
	if monitor.idleID == oldID || monitor.idleID == 0 {
		t.Errorf("idleID = %d, want a fresh watch", monitor.idleID)
	}
	if got := bus.idleWatches[len(bus.idleWatches)-1]; got != 10*time.Minute {
		t.Errorf("last idle watch = %v, want 10m", got)
	}

	monitor.handleSignal(watchFired(monitor.idleID), now)
	if got := monitor.watch.idleSeconds(now); got != 600 {
		t.Errorf("idleSeconds = %d, want the new threshold 600", got)
	}
	monitor.handleSignal(watchFired(oldID), now)
	if bus.activeAdds != 1 {
		t.Errorf("active adds = %d, want the stale id ignored", bus.activeAdds)
	}
}

func TestMutterRunAppliesThresholdRequests(t *testing.T) {
	bus := &fakeIdleMonitorBus{}
	monitor := startedMonitor(t, bus, time.Minute, time.Now())
	done := make(chan struct{})
	go func() {
		monitor.run()
		close(done)
	}()

	monitor.watch.requestThreshold(5 * time.Minute)
	deadline := time.Now().Add(2 * time.Second)
	for {
		bus.mu.Lock()
		count := len(bus.idleWatches)
		bus.mu.Unlock()
		if count == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("threshold request not applied")
		}
		time.Sleep(5 * time.Millisecond)
	}

	close(monitor.signals)
	<-done
	if got := monitor.watch.idleSeconds(time.Now()); got != 0 {
		t.Errorf("idleSeconds after bus close = %d, want 0", got)
	}
}
