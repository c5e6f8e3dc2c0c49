package platform

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KayraNafi/TouchGrass/internal/core/timekeeper"
)

// IdleBackend names the strategy an IdleSampler settled on.
type IdleBackend string

const (
	IdleBackendEvent   IdleBackend = "event"
	IdleBackendPolling IdleBackend = "polling"
)

// IdleProvider returns the duration since last user input.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// NewIdleProvider returns a platform-specific polling idle provider.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}

// IdleSampler answers how long the user has been inactive. The backend is
// chosen once at construction and never changes.
type IdleSampler struct {
	backend IdleBackend
	watch   *idleWatch
	poller  IdleProvider
}

var _ timekeeper.IdleSampler = (*IdleSampler)(nil)
var _ timekeeper.ThresholdSetter = (*IdleSampler)(nil)

// NewIdleSampler prefers the session's idle notifications and falls back to
// polling the system idle counter when subscribing fails.
func NewIdleSampler(threshold time.Duration) *IdleSampler {
	watch, err := subscribeIdleWatch(threshold)
	if err == nil {
		return &IdleSampler{backend: IdleBackendEvent, watch: watch}
	}
	if !errors.Is(err, timekeeper.ErrIdleUnsupported) {
		log.Printf("idle notifications unavailable, polling instead: %v", err)
	}
	return newPollingSampler(NewIdleProvider())
}

func newPollingSampler(poller IdleProvider) *IdleSampler {
	return &IdleSampler{backend: IdleBackendPolling, poller: poller}
}

// Backend reports which strategy is in use.
func (sampler *IdleSampler) Backend() IdleBackend {
	return sampler.backend
}

// IdleSeconds returns the current idle time in whole seconds.
func (sampler *IdleSampler) IdleSeconds() (uint64, error) {
	if sampler.watch != nil {
		return sampler.watch.idleSeconds(time.Now()), nil
	}
	idle, err := sampler.poller.IdleDuration()
	if err != nil {
		return 0, fmt.Errorf("sample idle time: %w", err)
	}
	if idle < 0 {
		idle = 0
	}
	return uint64(idle / time.Second), nil
}

// SetThreshold re-keys the event subscription. Polling ignores it.
func (sampler *IdleSampler) SetThreshold(threshold time.Duration) {
	if sampler.watch != nil {
		sampler.watch.requestThreshold(threshold)
	}
}
