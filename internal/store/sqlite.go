package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"solohub/internal/logging"
	"solohub/internal/types"
)

// SQLiteSessionStore persists chat sessions in a single SQLite table, one
// JSON document per session. It implements types.SessionStorage so the AI
// hub survives process restarts when config selects the sqlite backend.
type SQLiteSessionStore struct {
	mu sync.Mutex
	db *sql.DB
}

const sessionSchema = `
CREATE TABLE IF NOT EXISTS chat_sessions (
	id         TEXT PRIMARY KEY,
	updated_at INTEGER NOT NULL,
	data       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_sessions_updated ON chat_sessions(updated_at DESC);
`

// NewSQLiteSessionStore opens (or creates) the database at path and ensures
// the schema exists.
func NewSQLiteSessionStore(path string) (*SQLiteSessionStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db %s: %w", path, err)
	}
	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session schema: %w", err)
	}

	logging.Get(logging.CategoryStore).Infow("session db opened", "path", path)
	return &SQLiteSessionStore{db: db}, nil
}

// Save upserts the session as handed over, keyed by its id.
func (s *SQLiteSessionStore) Save(ctx context.Context, session *types.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO chat_sessions (id, updated_at, data) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at, data = excluded.data`,
		session.ID, session.UpdatedAt.UnixMilli(), string(data),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}

	logging.Get(logging.CategoryStore).Debugw("session saved",
		"id", session.ID, "messages", len(session.Messages))
	return nil
}

// Get returns the session or types.ErrNotFound.
func (s *SQLiteSessionStore) Get(ctx context.Context, id string) (*types.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM chat_sessions WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %q: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var session types.ChatSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// GetAll returns every session, newest-touched first.
func (s *SQLiteSessionStore) GetAll(ctx context.Context) ([]*types.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM chat_sessions ORDER BY updated_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []*types.ChatSession
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		var session types.ChatSession
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			return nil, fmt.Errorf("decode session row: %w", err)
		}
		out = append(out, &session)
	}
	return out, rows.Err()
}

// Delete removes the session. types.ErrNotFound when the id is unknown.
func (s *SQLiteSessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %q: %w", id, types.ErrNotFound)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteSessionStore) Close() error {
	return s.db.Close()
}
