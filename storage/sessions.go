package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rdmitr/agentchat/internal/chat"
)

// Store persists the entire session collection as keyed records, one row per
// session with its message history serialized inline. The collection is always
// replaced wholesale: SaveAll clears and rewrites every record inside a single
// transaction, so a failed write leaves the previous snapshot intact.
type Store struct {
	db *sqlx.DB
}

type sessionRecord struct {
	ID        int64  `db:"id"`
	Title     string `db:"title"`
	CreatedAt string `db:"created_at"`
	ColorTag  string `db:"color"`
	Messages  string `db:"messages"`
}

// NewStore creates a new Store and its schema if absent
func NewStore(db *sqlx.DB) (*Store, error) {
	createSessionsTable := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		created_at TEXT NOT NULL,
		color TEXT NOT NULL,
		messages TEXT NOT NULL
	)
	`
	if _, err := db.Exec(createSessionsTable); err != nil {
		return nil, &chat.PersistenceError{Op: "open", Err: fmt.Errorf("failed to create sessions table: %w", err)}
	}

	return &Store{db: db}, nil
}

// Open connects to the sqlite file and prepares the schema.
func Open(file string) (*Store, error) {
	db, err := NewSqliteDB(file)
	if err != nil {
		return nil, &chat.PersistenceError{Op: "open", Err: fmt.Errorf("failed to open sqlite db %s: %w", file, err)}
	}
	return NewStore(db)
}

// SaveAll replaces the stored collection with the given snapshot. The clear
// and every insert run in one transaction; on any failure the transaction is
// rolled back and the previous snapshot remains.
func (s *Store) SaveAll(ctx context.Context, sessions []chat.Session) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return &chat.PersistenceError{Op: "save", Err: fmt.Errorf("failed to begin transaction: %w", err)}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return &chat.PersistenceError{Op: "save", Err: fmt.Errorf("failed to clear sessions: %w", err)}
	}

	insertQuery := "INSERT INTO sessions (id, title, created_at, color, messages) VALUES (?, ?, ?, ?, ?)"
	for _, sess := range sessions {
		msgs, err := json.Marshal(sess.Messages)
		if err != nil {
			return &chat.PersistenceError{Op: "save", Err: fmt.Errorf("failed to encode messages for session %d: %w", sess.ID, err)}
		}
		created := sess.CreatedAt.UTC().Format(time.RFC3339Nano)
		if _, err := tx.ExecContext(ctx, insertQuery, sess.ID, sess.Title, created, sess.ColorTag, string(msgs)); err != nil {
			return &chat.PersistenceError{Op: "save", Err: fmt.Errorf("failed to insert session %d: %w", sess.ID, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &chat.PersistenceError{Op: "save", Err: fmt.Errorf("failed to commit snapshot: %w", err)}
	}

	slog.Debug("saved session snapshot",
		slog.Int("count", len(sessions)),
	)
	return nil
}

// LoadAll returns every stored session. Row order is not meaningful; each
// session's own message order is preserved inside its record.
func (s *Store) LoadAll(ctx context.Context) ([]chat.Session, error) {
	var records []sessionRecord
	err := s.db.SelectContext(ctx, &records, "SELECT id, title, created_at, color, messages FROM sessions")
	if err != nil {
		return nil, &chat.PersistenceError{Op: "load", Err: fmt.Errorf("failed to get sessions: %w", err)}
	}

	sessions := make([]chat.Session, 0, len(records))
	for _, rec := range records {
		var msgs []chat.Message
		if err := json.Unmarshal([]byte(rec.Messages), &msgs); err != nil {
			return nil, &chat.PersistenceError{Op: "load", Err: fmt.Errorf("failed to decode messages for session %d: %w", rec.ID, err)}
		}
		created, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
		if err != nil {
			return nil, &chat.PersistenceError{Op: "load", Err: fmt.Errorf("failed to parse timestamp for session %d: %w", rec.ID, err)}
		}
		sessions = append(sessions, chat.Session{
			ID:        rec.ID,
			Title:     rec.Title,
			CreatedAt: created,
			ColorTag:  rec.ColorTag,
			Messages:  msgs,
		})
	}

	slog.Debug("loaded sessions",
		slog.Int("count", len(sessions)),
	)
	return sessions, nil
}

// DeleteSession deletes the given session by id from the storage
func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id); err != nil {
		return &chat.PersistenceError{Op: "delete", Err: fmt.Errorf("failed to delete session by id %d: %w", id, err)}
	}

	slog.Debug("session deleted from storage",
		slog.Int64("id", id),
	)
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
