// Package journal keeps a local history of reminders and user actions.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// FileName is the journal database name inside the config directory.
const FileName = "journal.db"

// timeLayout is fixed width so text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Kind classifies a journal entry.
type Kind string

const (
	KindReminder   Kind = "reminder"
	KindSuppressed Kind = "suppressed"
	KindCommand    Kind = "command"
)

// Entry is one journal row.
type Entry struct {
	ID     string    `json:"id"`
	Kind   Kind      `json:"kind"`
	Detail string    `json:"detail"`
	At     time.Time `json:"at"`
}

// Store is a SQLite-backed journal.
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

// Open opens or creates the journal at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	store := &Store{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return store, nil
}

func (store *Store) migrate() error {
	_, err := store.db.Exec(`
	CREATE TABLE IF NOT EXISTS entries (
		id     TEXT PRIMARY KEY,
		kind   TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		at     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_at ON entries(at DESC);
	CREATE INDEX IF NOT EXISTS idx_entries_kind_at ON entries(kind, at);
	`)
	return err
}

func (store *Store) newID(at time.Time) string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(at), store.entropy).String()
}

// Close closes the database.
func (store *Store) Close() error {
	return store.db.Close()
}

// Record inserts entry, filling in ID and At when empty.
func (store *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	entry.At = entry.At.UTC()
	if entry.ID == "" {
		entry.ID = store.newID(entry.At)
	}

	_, err := store.db.ExecContext(ctx,
		`INSERT INTO entries (id, kind, detail, at) VALUES (?, ?, ?, ?)`,
		entry.ID, string(entry.Kind), entry.Detail, entry.At.Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record %s: %w", entry.Kind, err)
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first.
func (store *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := store.db.QueryContext(ctx,
		`SELECT id, kind, detail, at FROM entries ORDER BY at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry Entry
			kind  string
			at    string
		)
		if err := rows.Scan(&entry.ID, &kind, &entry.Detail, &at); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry.Kind = Kind(kind)
		entry.At, err = time.Parse(timeLayout, at)
		if err != nil {
			return nil, fmt.Errorf("parse entry time %q: %w", at, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CountSince counts entries of kind recorded at or after since.
func (store *Store) CountSince(ctx context.Context, kind Kind, since time.Time) (int, error) {
	var count int
	err := store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE kind = ? AND at >= ?`,
		string(kind), since.UTC().Format(timeLayout),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s entries: %w", kind, err)
	}
	return count, nil
}
