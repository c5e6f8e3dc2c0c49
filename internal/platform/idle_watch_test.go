package platform

import (
	"testing"
	"time"
)

func TestIdleWatchReportsAtLeastThreshold(t *testing.T) {
	watch := newIdleWatch(2 * time.Minute)
	now := time.Unix(1_700_000_000, 0)

	if got := watch.idleSeconds(now); got != 0 {
		t.Fatalf("idleSeconds before any signal = %d, want 0", got)
	}

	watch.markIdle(now)
	if got := watch.idleSeconds(now); got != 120 {
		t.Errorf("idleSeconds at signal = %d, want 120", got)
	}
	if got := watch.idleSeconds(now.Add(45 * time.Second)); got != 165 {
		t.Errorf("idleSeconds 45s later = %d, want 165", got)
	}

	// A clock that steps backwards never reports less than the threshold.
	if got := watch.idleSeconds(now.Add(-time.Hour)); got != 120 {
		t.Errorf("idleSeconds with clock skew = %d, want 120", got)
	}

	watch.markActive()
	if got := watch.idleSeconds(now.Add(time.Minute)); got != 0 {
		t.Errorf("idleSeconds after activity = %d, want 0", got)
	}
}

func TestIdleWatchMarkIdleSince(t *testing.T) {
	watch := newIdleWatch(time.Minute)
	now := time.Unix(1_700_000_000, 0)

	watch.markIdleSince(now.Add(-10 * time.Minute))
	if got := watch.idleSeconds(now); got != 600 {
		t.Errorf("idleSeconds = %d, want 600", got)
	}
}

func TestIdleWatchRequestThresholdKeepsLatest(t *testing.T) {
	watch := newIdleWatch(time.Minute)

	watch.requestThreshold(5 * time.Minute)
	watch.requestThreshold(7 * time.Minute)

	select {
	case got := <-watch.requests:
		if got != 7*time.Minute {
			t.Errorf("request = %v, want 7m", got)
		}
	default:
		t.Fatal("expected a pending threshold request")
	}
	select {
	case extra := <-watch.requests:
		t.Errorf("unexpected extra request %v", extra)
	default:
	}

	watch.setThreshold(7 * time.Minute)
	now := time.Unix(1_700_000_000, 0)
	watch.markIdle(now)
	if got := watch.idleSeconds(now); got != 420 {
		t.Errorf("idleSeconds = %d, want 420", got)
	}
}
