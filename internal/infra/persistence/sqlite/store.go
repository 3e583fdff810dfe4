// Package sqlite persists report records in a single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"contentbuild/internal/reports/core"
)

// Store is a RecordStore on SQLite. started_at is kept as unix nanoseconds.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (creating when needed) the database at path.
func New(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "contentbuild-reports.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS crawl_reports (
		id TEXT PRIMARY KEY,
		base_url TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create crawl_reports table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Driver reports core.DriverSQLite.
func (s *Store) Driver() core.Driver { return core.DriverSQLite }

// Put upserts rec inside a transaction.
func (s *Store) Put(ctx context.Context, rec core.Record) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO crawl_reports(id, base_url, started_at, payload) VALUES(?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET base_url=excluded.base_url, started_at=excluded.started_at, payload=excluded.payload`,
		rec.ID, rec.BaseURL, rec.StartedAt.UnixNano(), rec.Payload); err != nil {
		return fmt.Errorf("upsert report %s: %w", rec.ID, err)
	}
	return tx.Commit()
}

// Get returns the record with id.
func (s *Store) Get(ctx context.Context, id string) (core.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, base_url, started_at, payload FROM crawl_reports WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Record{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	if err != nil {
		return core.Record{}, fmt.Errorf("select report %s: %w", id, err)
	}
	return rec, nil
}

// List returns every record, newest first.
func (s *Store) List(ctx context.Context) ([]core.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, base_url, started_at, payload FROM crawl_reports ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("select reports: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (core.Record, error) {
	var (
		rec     core.Record
		started int64
	)
	if err := sc.Scan(&rec.ID, &rec.BaseURL, &started, &rec.Payload); err != nil {
		return core.Record{}, err
	}
	rec.StartedAt = time.Unix(0, started).UTC()
	return rec, nil
}
