package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/KayraNafi/TouchGrass/internal/core/timekeeper"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, kind := range []Kind{KindReminder, KindCommand, KindSuppressed} {
		entry, err := store.Record(ctx, Entry{Kind: kind, Detail: string(kind), At: base.Add(time.Duration(i) * time.Minute)})
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		if entry.ID == "" {
			t.Error("expected generated ID")
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Kind != KindSuppressed || entries[1].Kind != KindCommand {
		t.Errorf("unexpected order: %+v", entries)
	}
	if !entries[0].At.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("At = %v, want %v", entries[0].At, base.Add(2*time.Minute))
	}
}

func TestRecentOrdersSubSecondTimes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 5, 0, time.UTC)

	store.Record(ctx, Entry{Kind: KindReminder, Detail: "whole", At: base})
	store.Record(ctx, Entry{Kind: KindReminder, Detail: "fraction", At: base.Add(100 * time.Millisecond)})

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 || entries[0].Detail != "fraction" {
		t.Errorf("expected fractional entry first, got %+v", entries)
	}
}

func TestCountSince(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	store.Record(ctx, Entry{Kind: KindReminder, At: base.Add(-time.Hour)})
	store.Record(ctx, Entry{Kind: KindReminder, At: base})
	store.Record(ctx, Entry{Kind: KindReminder, At: base.Add(time.Hour)})
	store.Record(ctx, Entry{Kind: KindCommand, At: base.Add(time.Hour)})

	count, err := store.CountSince(ctx, KindReminder, base)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 reminders, got %d", count)
	}
}

func TestEntryForEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		event  timekeeper.Event
		want   Entry
		record bool
	}{
		{
			name:   "reminder",
			event:  timekeeper.Event{Type: timekeeper.EventReminder, Message: "stretch", At: at},
			want:   Entry{Kind: KindReminder, Detail: "stretch", At: at},
			record: true,
		},
		{
			name:   "suppressed",
			event:  timekeeper.Event{Type: timekeeper.EventSuppressed, Reason: timekeeper.SuppressIdle, At: at},
			want:   Entry{Kind: KindSuppressed, Detail: string(timekeeper.SuppressIdle), At: at},
			record: true,
		},
		{
			name:   "command",
			event:  timekeeper.Event{Type: timekeeper.EventCommand, Command: "pause", At: at},
			want:   Entry{Kind: KindCommand, Detail: "pause", At: at},
			record: true,
		},
		{
			name:  "status",
			event: timekeeper.Event{Type: timekeeper.EventStatus, At: at},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, record := entryForEvent(tt.event)
			if record != tt.record {
				t.Fatalf("record = %v, want %v", record, tt.record)
			}
			if record && got != tt.want {
				t.Errorf("entry = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecorderDrainsEvents(t *testing.T) {
	store := newTestStore(t)
	events := make(chan timekeeper.Event, 4)
	events <- timekeeper.Event{Type: timekeeper.EventReminder, Message: "walk", At: time.Now()}
	events <- timekeeper.Event{Type: timekeeper.EventStatus, At: time.Now()}
	events <- timekeeper.Event{Type: timekeeper.EventCommand, Command: "skip", At: time.Now()}
	close(events)

	NewRecorder(store, events).Run(context.Background())

	entries, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
}
