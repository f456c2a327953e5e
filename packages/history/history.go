// Package history records past test runs in a local SQLite database so
// a run (browser set, seed, file list size, outcome) can be inspected
// and reproduced later.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// Record is one completed test run.
type Record struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Mode      string
	Browsers  []string
	Seed      int64
	FileCount int
	Passed    int
	Failed    int
	Skipped   int
	ExitCode  int
}

// Store persists run records.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	mode        TEXT NOT NULL,
	browsers    TEXT NOT NULL,
	seed        INTEGER NOT NULL,
	file_count  INTEGER NOT NULL,
	passed      INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	exit_code   INTEGER NOT NULL
);
`

// Open opens (and if needed creates) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Insert stores a record. A missing ID is filled with a new UUID; the
// assigned ID is returned.
func (s *Store) Insert(rec *Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, duration_ms, mode, browsers, seed, file_count, passed, failed, skipped, exit_code)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UnixMilli(),
		rec.Duration.Milliseconds(),
		rec.Mode,
		strings.Join(rec.Browsers, ","),
		rec.Seed,
		rec.FileCount,
		rec.Passed,
		rec.Failed,
		rec.Skipped,
		rec.ExitCode,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run record: %w", err)
	}

	return rec.ID, nil
}

// Recent returns the latest limit runs, newest first.
func (s *Store) Recent(limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, duration_ms, mode, browsers, seed, file_count, passed, failed, skipped, exit_code
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			rec        Record
			startedAt  int64
			durationMs int64
			browsers   string
		)
		if err := rows.Scan(&rec.ID, &startedAt, &durationMs, &rec.Mode, &browsers,
			&rec.Seed, &rec.FileCount, &rec.Passed, &rec.Failed, &rec.Skipped, &rec.ExitCode); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		rec.StartedAt = time.UnixMilli(startedAt)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		if browsers != "" {
			rec.Browsers = strings.Split(browsers, ",")
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}
