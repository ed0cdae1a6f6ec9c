package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/zephyrtronium/calc"
)

// Store is a history kept in an SQLite database, shared by any number of
// sessions. Each session's entries are kept apart by its ID.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

const schema = `CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session TEXT NOT NULL,
	expr TEXT NOT NULL,
	result TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_session ON history(session, id);`

// Open opens the SQLite database at path, creating the history table if
// needed.
func Open(ctx context.Context, path string, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}
	log.Debug().Str("path", path).Msg("history database ready")
	return &Store{db: db, log: log}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records an entry for a session.
func (s *Store) Add(ctx context.Context, session uuid.UUID, expr, result string) (int64, error) {
	r, err := s.db.ExecContext(ctx,
		`INSERT INTO history (session, expr, result, created_at) VALUES (?, ?, ?, ?)`,
		session.String(), expr, result, time.Now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to record history: %w", err)
	}
	return r.LastInsertId()
}

// Entries returns a session's entries in the order they were added.
func (s *Store) Entries(ctx context.Context, session uuid.UUID) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expr, result, created_at FROM history WHERE session = ? ORDER BY id`,
		session.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()
	var r []Entry
	for rows.Next() {
		e := Entry{Session: session}
		var ns int64
		if err := rows.Scan(&e.ID, &e.Expr, &e.Result, &ns); err != nil {
			return nil, fmt.Errorf("failed to read history: %w", err)
		}
		e.Time = time.Unix(0, ns)
		r = append(r, e)
	}
	return r, rows.Err()
}

// Sessions returns the IDs of sessions that have entries, oldest first.
func (s *Store) Sessions(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session FROM history GROUP BY session ORDER BY MIN(id)`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()
	var r []uuid.UUID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to read session: %w", err)
		}
		u, err := uuid.Parse(id)
		if err != nil {
			s.log.Warn().Str("session", id).Msg("skipping malformed session id")
			continue
		}
		r = append(r, u)
	}
	return r, rows.Err()
}

// Clear removes a session's entries.
func (s *Store) Clear(ctx context.Context, session uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE session = ?`, session.String()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Session returns the history of a new session with a random ID.
func (s *Store) Session() *SessionHistory {
	return s.Resume(uuid.New())
}

// Resume returns the history of an existing session.
func (s *Store) Resume(id uuid.UUID) *SessionHistory {
	return &SessionHistory{store: s, id: id}
}

// SessionHistory is one session's view of a Store. It implements calc.History.
type SessionHistory struct {
	store *Store
	id    uuid.UUID
}

var _ calc.History = (*SessionHistory)(nil)

// ID returns the session ID.
func (h *SessionHistory) ID() uuid.UUID {
	return h.id
}

// Append records an entry.
func (h *SessionHistory) Append(expr, result string) error {
	_, err := h.store.Add(context.Background(), h.id, expr, result)
	return err
}

// Entries returns the session's entries.
func (h *SessionHistory) Entries(ctx context.Context) ([]Entry, error) {
	return h.store.Entries(ctx, h.id)
}

// Clear removes the session's entries.
func (h *SessionHistory) Clear(ctx context.Context) error {
	return h.store.Clear(ctx, h.id)
}
