package timekeeper

import (
	"time"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

// machine holds the scheduling state. Every transition takes an explicit now
// and touches nothing outside the struct except the injected sampler.
type machine struct {
	prefs            model.Preferences
	paused           bool
	snoozedUntil     time.Time
	deadline         time.Time
	wasIdle          bool
	idleKnown        bool
	idleSeconds      uint64
	lastNotification time.Time
}

// fireOutcome is the decision taken when the deadline elapses.
type fireOutcome struct {
	notify  bool
	reason  SuppressReason
	idleErr error
}

func newMachine(prefs model.Preferences, now time.Time) *machine {
	m := &machine{prefs: prefs}
	m.rearm(now)
	return m
}

func (m *machine) rearm(now time.Time) {
	m.deadline = now.Add(m.prefs.Interval())
}

func (m *machine) snoozeActive(now time.Time) bool {
	return !m.snoozedUntil.IsZero() && now.Before(m.snoozedUntil)
}

// expireSnooze lazily drops a snooze whose expiry has passed.
func (m *machine) expireSnooze(now time.Time) {
	if !m.snoozedUntil.IsZero() && !now.Before(m.snoozedUntil) {
		m.snoozedUntil = time.Time{}
	}
}

func (m *machine) recordIdle(seconds uint64) {
	m.idleKnown = true
	m.idleSeconds = seconds
}

func (m *machine) forgetIdle() {
	m.idleKnown = false
	m.idleSeconds = 0
	m.wasIdle = false
}

// fire decides whether the elapsed deadline should notify. The caller rearms
// afterwards regardless of the outcome.
func (m *machine) fire(now time.Time, sampler IdleSampler) fireOutcome {
	var outcome fireOutcome

	switch {
	case m.paused:
		outcome.reason = SuppressPaused
	case m.snoozeActive(now):
		outcome.reason = SuppressSnoozed
	default:
		m.expireSnooze(now)
		outcome.notify = true
		if m.prefs.ActivityDetection && sampler != nil {
			seconds, err := sampler.IdleSeconds()
			if err != nil {
				outcome.idleErr = err
				break
			}
			m.recordIdle(seconds)
			if seconds >= m.prefs.IdleThresholdSeconds() {
				m.wasIdle = true
				outcome.notify = false
				outcome.reason = SuppressIdle
			} else {
				m.wasIdle = false
			}
		}
	}

	if !m.prefs.ActivityDetection {
		m.forgetIdle()
	}
	if outcome.notify {
		m.lastNotification = now
	}
	return outcome
}

// pollIdle samples activity on the fixed poll cadence. changed reports whether
// the snapshot needs republishing; rearmed whether the deadline moved.
func (m *machine) pollIdle(now time.Time, sampler IdleSampler) (changed, rearmed bool, err error) {
	if !m.prefs.ActivityDetection {
		if m.idleKnown || m.wasIdle {
			m.forgetIdle()
			return true, false, nil
		}
		return false, false, nil
	}
	if sampler == nil {
		return false, false, nil
	}

	seconds, err := sampler.IdleSeconds()
	if err != nil {
		return false, false, err
	}
	m.recordIdle(seconds)

	if seconds >= m.prefs.IdleThresholdSeconds() {
		m.wasIdle = true
		return true, false, nil
	}
	if m.wasIdle {
		m.wasIdle = false
		if !m.paused {
			m.expireSnooze(now)
			if !m.snoozeActive(now) {
				m.rearm(now)
				rearmed = true
			}
		}
	}
	return true, rearmed, nil
}

func (m *machine) replacePreferences(now time.Time, prefs model.Preferences) {
	m.prefs = prefs
	if !prefs.ActivityDetection {
		m.forgetIdle()
	}
	if m.snoozeActive(now) {
		m.deadline = m.snoozedUntil
		return
	}
	m.snoozedUntil = time.Time{}
	m.rearm(now)
}

func (m *machine) setPaused(now time.Time, paused bool) {
	wasPaused := m.paused
	m.paused = paused
	if wasPaused && !paused {
		m.rearm(now)
	}
}

func (m *machine) snooze(now time.Time, duration time.Duration) {
	m.snoozedUntil = now.Add(duration)
	m.deadline = m.snoozedUntil
}

// clearSnooze also serves SkipCurrent: both use up the current cycle.
func (m *machine) clearSnooze(now time.Time) {
	m.snoozedUntil = time.Time{}
	if !m.paused {
		m.rearm(now)
	}
}

func (m *machine) triggerNow(now time.Time) {
	m.lastNotification = now
}

func (m *machine) snapshot() model.Status {
	status := model.Status{Paused: m.paused}
	if !m.snoozedUntil.IsZero() {
		status.SnoozedUntil = timePtr(m.snoozedUntil)
	}
	if !m.paused {
		status.NextTriggerAt = timePtr(m.deadline)
	}
	if !m.lastNotification.IsZero() {
		status.LastNotificationAt = timePtr(m.lastNotification)
	}
	if m.prefs.ActivityDetection && m.idleKnown {
		seconds := m.idleSeconds
		status.IdleSeconds = &seconds
	}
	return status
}

func timePtr(value time.Time) *time.Time {
	// Strip the monotonic reading so snapshots compare and serialize as wall time.
	wall := value.Round(0)
	return &wall
}
