package journal

import (
	"context"
	"log"
	"time"

	"github.com/KayraNafi/TouchGrass/internal/core/timekeeper"
)

// Recorder writes engine events to the journal. It runs on its own
// goroutine so a slow disk never stalls the engine.
type Recorder struct {
	store  *Store
	events <-chan timekeeper.Event
}

// NewRecorder consumes events until the channel closes.
func NewRecorder(store *Store, events <-chan timekeeper.Event) *Recorder {
	return &Recorder{store: store, events: events}
}

// Run records events until ctx is cancelled or the channel closes.
func (recorder *Recorder) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-recorder.events:
			if !ok {
				return
			}
			entry, keep := entryForEvent(event)
			if !keep {
				continue
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if _, err := recorder.store.Record(writeCtx, entry); err != nil {
				log.Printf("journal: %v", err)
			}
			cancel()
		}
	}
}

func entryForEvent(event timekeeper.Event) (Entry, bool) {
	switch event.Type {
	case timekeeper.EventReminder:
		return Entry{Kind: KindReminder, Detail: event.Message, At: event.At}, true
	case timekeeper.EventSuppressed:
		return Entry{Kind: KindSuppressed, Detail: string(event.Reason), At: event.At}, true
	case timekeeper.EventCommand:
		return Entry{Kind: KindCommand, Detail: event.Command, At: event.At}, true
	default:
		return Entry{}, false
	}
}
