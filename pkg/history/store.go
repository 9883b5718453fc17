// Package history persists an audit trail of tool invocations.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/toolbus/toolbus/pkg/tooldispatch"
)

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	correlation_id TEXT NOT NULL,
	call_name TEXT NOT NULL,
	tool TEXT NOT NULL,
	args TEXT,
	output TEXT,
	error TEXT,
	duration_ms INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invocations_created_at ON invocations(created_at);
`

// Entry is one stored invocation.
type Entry struct {
	ID            int64     `json:"id"`
	CorrelationID string    `json:"correlation_id"`
	CallName      string    `json:"call_name"`
	Tool          string    `json:"tool"`
	Args          string    `json:"args,omitempty"`
	Output        string    `json:"output,omitempty"`
	Error         string    `json:"error,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store is a sqlite-backed invocation log. It implements
// tooldispatch.Recorder.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the store at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history store: %w", err)
	}

	log.Info().Str("path", path).Msg("Invocation history store opened")

	return &Store{db: db}, nil
}

// Record implements tooldispatch.Recorder.
func (s *Store) Record(ctx context.Context, rec tooldispatch.Record) error {
	args, err := marshalField(rec.Args)
	if err != nil {
		return fmt.Errorf("failed to encode args: %w", err)
	}
	output, err := marshalField(rec.Output)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO invocations (correlation_id, call_name, tool, args, output, error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CorrelationID, rec.CallName, rec.Tool, args, output, rec.Error,
		rec.Duration.Milliseconds(), rec.At.UTC())
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, correlation_id, call_name, tool, args, output, error, duration_ms, created_at
		 FROM invocations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CorrelationID, &e.CallName, &e.Tool,
			&e.Args, &e.Output, &e.Error, &e.DurationMs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of stored invocations.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invocations`).Scan(&count)
	return count, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func marshalField(value interface{}) (string, error) {
	if value == nil {
		return "", nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
