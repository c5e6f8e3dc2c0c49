package platform

import (
	"sync/atomic"
	"time"
)

// idleWatch is the state shared between an event-driven idle listener and
// the sampler. The listener writes, the sampler reads; nothing blocks.
type idleWatch struct {
	idle      atomic.Bool
	idleSince atomic.Int64 // unix seconds
	threshold atomic.Int64 // seconds
	requests  chan time.Duration
}

func newIdleWatch(threshold time.Duration) *idleWatch {
	watch := &idleWatch{requests: make(chan time.Duration, 1)}
	watch.threshold.Store(int64(threshold / time.Second))
	return watch
}

// markIdle records a "became idle" notification. The session only reports
// idleness once the threshold has elapsed, so idle time starts there.
func (watch *idleWatch) markIdle(now time.Time) {
	watch.markIdleSince(now.Add(-time.Duration(watch.threshold.Load()) * time.Second))
}

func (watch *idleWatch) markIdleSince(since time.Time) {
	watch.idleSince.Store(since.Unix())
	watch.idle.Store(true)
}

func (watch *idleWatch) markActive() {
	watch.idle.Store(false)
	watch.idleSince.Store(0)
}

func (watch *idleWatch) idleSeconds(now time.Time) uint64 {
	if !watch.idle.Load() {
		return 0
	}
	threshold := watch.threshold.Load()
	elapsed := now.Unix() - watch.idleSince.Load()
	if elapsed < threshold {
		elapsed = threshold
	}
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed)
}

// requestThreshold hands a new threshold to the listener, replacing any
// request it has not picked up yet.
func (watch *idleWatch) requestThreshold(threshold time.Duration) {
	for {
		select {
		case watch.requests <- threshold:
			return
		default:
		}
		select {
		case <-watch.requests:
		default:
		}
	}
}

func (watch *idleWatch) setThreshold(threshold time.Duration) {
	watch.threshold.Store(int64(threshold / time.Second))
}
