package timekeeper

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/KayraNafi/TouchGrass/internal/core/model"
)

// ErrIdleUnsupported indicates idle detection is not available on this system.
var ErrIdleUnsupported = errors.New("idle detection unsupported")

// ErrEngineStopped is returned by blocking requests once the loop has exited.
var ErrEngineStopped = errors.New("timekeeper stopped")

const (
	defaultIdlePollInterval = 20 * time.Second
	defaultCommandBuffer    = 16
	defaultMessage          = "Time for a quick break."
)

// IdleSampler reports how many seconds the user has been inactive.
// Implementations must answer quickly; the loop calls it inline.
type IdleSampler interface {
	IdleSeconds() (uint64, error)
}

// ThresholdSetter is implemented by samplers whose backend is keyed to the
// idle threshold. SetThreshold must not block.
type ThresholdSetter interface {
	SetThreshold(threshold time.Duration)
}

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, reminder model.Reminder) error
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	IdlePollInterval time.Duration
	CommandBuffer    int
	// Message picks the reminder text. Defaults to a fixed line.
	Message          func() string
}

// TimeKeeper owns the reminder schedule. All state lives in the goroutine
// running Run; other goroutines talk to it through commands and read
// published snapshots.
type TimeKeeper struct {
	options  Config
	initial  model.Preferences
	sampler  IdleSampler
	notifier Notifier

	commands chan command
	done     chan struct{}
	started  atomic.Bool

	status atomic.Pointer[model.Status]
	prefs  atomic.Pointer[model.Preferences]

	mu       sync.Mutex
	events   []chan Event
	onStatus []func(model.Status)
}

// New creates a TimeKeeper with the provided preferences.
func New(prefs model.Preferences, options Config) *TimeKeeper {
	if options.IdlePollInterval <= 0 {
		options.IdlePollInterval = defaultIdlePollInterval
	}
	if options.CommandBuffer <= 0 {
		options.CommandBuffer = defaultCommandBuffer
	}
	if options.Message == nil {
		options.Message = func() string { return defaultMessage }
	}

	keeper := &TimeKeeper{
		options:  options,
		initial:  prefs,
		commands: make(chan command, options.CommandBuffer),
		done:     make(chan struct{}),
	}
	keeper.prefs.Store(&prefs)
	keeper.status.Store(&model.Status{})
	return keeper
}

// SetIdleSampler injects the idle sampler. Call before Run.
func (keeper *TimeKeeper) SetIdleSampler(sampler IdleSampler) {
	keeper.sampler = sampler
}

// SetNotifier injects the reminder notifier. Call before Run.
func (keeper *TimeKeeper) SetNotifier(notifier Notifier) {
	keeper.notifier = notifier
}

// OnStatus registers a hook invoked synchronously after every publish.
// Hooks must be cheap; they run on the loop goroutine.
func (keeper *TimeKeeper) OnStatus(hook func(model.Status)) {
	keeper.mu.Lock()
	keeper.onStatus = append(keeper.onStatus, hook)
	keeper.mu.Unlock()
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Status returns the most recently published snapshot.
func (keeper *TimeKeeper) Status() model.Status {
	return *keeper.status.Load()
}

// Preferences returns the preferences the engine is currently using.
func (keeper *TimeKeeper) Preferences() model.Preferences {
	return *keeper.prefs.Load()
}

// Done is closed when Run returns.
func (keeper *TimeKeeper) Done() <-chan struct{} {
	return keeper.done
}

// SetPaused pauses or resumes reminders.
func (keeper *TimeKeeper) SetPaused(paused bool) {
	keeper.send(setPaused{paused: paused})
}

// Snooze suppresses reminders for the given number of minutes (at least one).
func (keeper *TimeKeeper) Snooze(minutes uint64) {
	if minutes < 1 {
		minutes = 1
	}
	keeper.send(snooze{duration: time.Duration(minutes) * time.Minute})
}

// ClearSnooze drops any active snooze and starts a fresh interval.
func (keeper *TimeKeeper) ClearSnooze() {
	keeper.send(clearSnooze{})
}

// SkipCurrent gives up the current cycle and starts a fresh interval.
func (keeper *TimeKeeper) SkipCurrent() {
	keeper.send(skipCurrent{})
}

// TriggerNow sends a reminder immediately, ignoring pause, snooze and idle state.
func (keeper *TimeKeeper) TriggerNow() {
	keeper.send(triggerNow{})
}

// ReplacePreferences hands new preferences to the engine and waits for the
// effective value it adopted.
func (keeper *TimeKeeper) ReplacePreferences(ctx context.Context, prefs model.Preferences) (model.Preferences, error) {
	prefs = prefs.Normalize()
	return keeper.changePreferences(ctx, func(model.Preferences) model.Preferences { return prefs })
}

// UpdatePreferences applies a partial update on top of the preferences the
// engine holds when it handles the request, so concurrent updates compose.
func (keeper *TimeKeeper) UpdatePreferences(ctx context.Context, update model.PreferencesUpdate) (model.Preferences, error) {
	return keeper.changePreferences(ctx, update.Apply)
}

func (keeper *TimeKeeper) changePreferences(ctx context.Context, change func(model.Preferences) model.Preferences) (model.Preferences, error) {
	reply := make(chan model.Preferences, 1)
	select {
	case keeper.commands <- preferencesReplaced{change: change, reply: reply}:
	case <-keeper.done:
		return model.Preferences{}, ErrEngineStopped
	case <-ctx.Done():
		return model.Preferences{}, ctx.Err()
	}

	select {
	case effective := <-reply:
		return effective, nil
	case <-keeper.done:
		return model.Preferences{}, ErrEngineStopped
	case <-ctx.Done():
		return model.Preferences{}, ctx.Err()
	}
}

// Sync returns once every command sent before it has been handled, so a
// following Status reflects them.
func (keeper *TimeKeeper) Sync(ctx context.Context) error {
	reply := make(chan struct{}, 1)
	select {
	case keeper.commands <- barrier{reply: reply}:
	case <-keeper.done:
		return ErrEngineStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-reply:
		return nil
	case <-keeper.done:
		return ErrEngineStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// send delivers a fire-and-forget command. Commands sent after the loop
// exits are dropped.
func (keeper *TimeKeeper) send(cmd command) {
	select {
	case keeper.commands <- cmd:
	case <-keeper.done:
	}
}

// Run processes deadlines, idle polls and commands until ctx is cancelled.
// It may only be called once.
func (keeper *TimeKeeper) Run(ctx context.Context) {
	if !keeper.started.CompareAndSwap(false, true) {
		return
	}
	defer keeper.shutdown()

	now := time.Now()
	m := newMachine(keeper.initial, now)
	keeper.publish(m, now)

	deadline := time.NewTimer(untilDeadline(m, now))
	defer deadline.Stop()
	poll := time.NewTicker(keeper.options.IdlePollInterval)
	defer poll.Stop()

	idleFailing := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			keeper.handleDeadline(ctx, m, &idleFailing)
		case <-poll.C:
			keeper.handlePoll(m, &idleFailing)
		case cmd := <-keeper.commands:
			keeper.handleCommand(ctx, m, cmd)
		}
		deadline.Reset(untilDeadline(m, time.Now()))
	}
}

func untilDeadline(m *machine, now time.Time) time.Duration {
	wait := m.deadline.Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

func (keeper *TimeKeeper) handleDeadline(ctx context.Context, m *machine, idleFailing *bool) {
	now := time.Now()
	outcome := m.fire(now, keeper.sampler)
	keeper.noteIdleError(outcome.idleErr, idleFailing, now)

	if outcome.notify {
		keeper.deliver(ctx, m.prefs)
	} else {
		keeper.emit(Event{Type: EventSuppressed, Reason: outcome.reason, Status: m.snapshot(), At: now})
	}
	keeper.publish(m, now)

	m.rearm(time.Now())
	keeper.publish(m, now)
}

func (keeper *TimeKeeper) handlePoll(m *machine, idleFailing *bool) {
	now := time.Now()
	changed, _, err := m.pollIdle(now, keeper.sampler)
	keeper.noteIdleError(err, idleFailing, now)
	if changed {
		keeper.publish(m, now)
	}
}

func (keeper *TimeKeeper) handleCommand(ctx context.Context, m *machine, cmd command) {
	if cmd, ok := cmd.(barrier); ok {
		cmd.reply <- struct{}{}
		return
	}

	now := time.Now()
	switch cmd := cmd.(type) {
	case preferencesReplaced:
		previous := m.prefs
		next := cmd.change(previous)
		m.replacePreferences(now, next)
		keeper.prefs.Store(&next)
		if setter, ok := keeper.sampler.(ThresholdSetter); ok && previous.IdleThreshold() != next.IdleThreshold() {
			setter.SetThreshold(next.IdleThreshold())
		}
		cmd.reply <- next
	case setPaused:
		m.setPaused(now, cmd.paused)
	case snooze:
		m.snooze(now, cmd.duration)
	case clearSnooze, skipCurrent:
		m.clearSnooze(now)
	case triggerNow:
		m.triggerNow(now)
		keeper.deliver(ctx, m.prefs)
		keeper.publish(m, now)
		m.rearm(now)
	}
	keeper.emit(Event{Type: EventCommand, Command: cmd.name(), Status: m.snapshot(), At: now})
	keeper.publish(m, now)
}

func (keeper *TimeKeeper) noteIdleError(err error, failing *bool, now time.Time) {
	if err == nil {
		*failing = false
		return
	}
	if !*failing {
		log.Printf("idle sampler: %v", err)
	}
	*failing = true
	keeper.emit(Event{Type: EventIdleError, Message: err.Error(), At: now})
}

// deliver hands the reminder to the notifier without blocking the loop.
func (keeper *TimeKeeper) deliver(ctx context.Context, prefs model.Preferences) {
	reminder := model.Reminder{
		Message:      keeper.options.Message(),
		SoundEnabled: prefs.SoundEnabled,
	}
	keeper.emit(Event{Type: EventReminder, Message: reminder.Message, At: time.Now()})
	if keeper.notifier == nil {
		return
	}
	notifier := keeper.notifier
	go func() {
		if err := notifier.Notify(ctx, reminder); err != nil {
			log.Printf("notify: %v", err)
		}
	}()
}

func (keeper *TimeKeeper) publish(m *machine, now time.Time) {
	status := m.snapshot()
	keeper.status.Store(&status)

	keeper.mu.Lock()
	hooks := append([]func(model.Status){}, keeper.onStatus...)
	keeper.mu.Unlock()
	for _, hook := range hooks {
		hook(status)
	}

	keeper.emit(Event{Type: EventStatus, Status: status, At: now})
}

func (keeper *TimeKeeper) emit(event Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// shutdown closes observers once the loop exits.
func (keeper *TimeKeeper) shutdown() {
	close(keeper.done)
	keeper.mu.Lock()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}
