// Package store persists a ledger of completed conversions, backing the
// download endpoint and batch listings.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a conversion id has no ledger entry.
var ErrNotFound = errors.New("conversion not found")

// Record is one completed conversion.
type Record struct {
	ID               string
	OriginalFilename string
	OutputPath       string
	TableCount       int
	RowCount         int
	ColumnCount      int
	Accuracy         float64
	CreatedAt        time.Time
}

// Store is a sqlite-backed conversion ledger.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id                TEXT PRIMARY KEY,
	original_filename TEXT NOT NULL,
	output_path       TEXT NOT NULL,
	table_count       INTEGER NOT NULL,
	row_count         INTEGER NOT NULL,
	column_count      INTEGER NOT NULL,
	accuracy          REAL NOT NULL,
	created_at        TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at);
`

// Open opens (creating if needed) the ledger database at path. Use
// ":memory:" for an ephemeral ledger.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	// sqlite allows one writer; serializing through a single connection
	// avoids SQLITE_BUSY under concurrent batch inserts.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert adds one conversion record. A zero CreatedAt is stamped with the
// current time.
func (s *Store) Insert(ctx context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions
			(id, original_filename, output_path, table_count, row_count, column_count, accuracy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OriginalFilename, rec.OutputPath,
		rec.TableCount, rec.RowCount, rec.ColumnCount,
		rec.Accuracy, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting conversion %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the record for one conversion id.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, original_filename, output_path, table_count, row_count, column_count, accuracy, created_at
		FROM conversions WHERE id = ?`, id)

	var rec Record
	err := row.Scan(&rec.ID, &rec.OriginalFilename, &rec.OutputPath,
		&rec.TableCount, &rec.RowCount, &rec.ColumnCount,
		&rec.Accuracy, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("loading conversion %s: %w", id, err)
	}
	return rec, nil
}

// List returns the most recent records, newest first, capped at limit.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, original_filename, output_path, table_count, row_count, column_count, accuracy, created_at
		FROM conversions ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.OriginalFilename, &rec.OutputPath,
			&rec.TableCount, &rec.RowCount, &rec.ColumnCount,
			&rec.Accuracy, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteOlderThan removes records created before cutoff and returns how
// many were deleted. Callers clean up the output files themselves.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM conversions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning conversions: %w", err)
	}
	return res.RowsAffected()
}
