// Package repository persists score records in SQLite.
//
// The shame table is append-only for the lifetime of a run: rows are never
// updated or deleted, and the table is dropped and recreated at every
// startup so a run's leaderboard is bounded by its own observation window.
// Writer (persister) and reader (reporter) run on independent loops; the
// driver's transaction isolation is the only coordination between them.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver registration

	"github.com/twrightsman/wall-of-shame/internal/domain/model"
)

const defaultBusyTimeout = 5 * time.Second

// Store provides access to the historical score records.
type Store interface {
	// Reset destroys any previous schema and recreates the empty table.
	Reset(ctx context.Context) error

	// InsertBatch writes every record as one row inside one transaction.
	InsertBatch(ctx context.Context, records []model.Record) error

	// All returns every historical record, in insertion order.
	All(ctx context.Context) ([]model.Record, error)

	// Close releases the underlying database handle.
	Close() error
}

// SQLiteStore implements Store on a single SQLite database file.
type SQLiteStore struct {
	db          *sql.DB
	path        string
	busyTimeout time.Duration
}

// NewSQLiteStore opens (or creates) the database file at path.
func NewSQLiteStore(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{
		path:        path,
		busyTimeout: defaultBusyTimeout,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d", s.path, s.busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}

	s.db = db
	return s, nil
}

// Reset drops and recreates the shame table.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DROP TABLE IF EXISTS shame`); err != nil {
		return fmt.Errorf("drop shame table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE shame (timestamp INTEGER, username TEXT, shame INTEGER)`); err != nil {
		return fmt.Errorf("create shame table: %w", err)
	}
	return nil
}

// InsertBatch writes the batch atomically: either every record becomes a
// row or none do, so a failed cycle can re-enqueue the batch without risk
// of duplication.
func (s *SQLiteStore) InsertBatch(ctx context.Context, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO shame (timestamp, username, shame) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Timestamp, r.Username, r.Shame); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert record for %s: %w", r.Username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// All reads the full history. The reporter aggregates across every row, so
// no filtering happens here.
func (s *SQLiteStore) All(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT timestamp, username, shame FROM shame`)
	if err != nil {
		return nil, fmt.Errorf("query shame table: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.Timestamp, &r.Username, &r.Shame); err != nil {
			return nil, fmt.Errorf("scan shame row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shame rows: %w", err)
	}
	return records, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
