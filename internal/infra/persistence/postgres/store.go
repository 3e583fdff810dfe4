// Package postgres persists report records in Postgres through the pgx
// database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"contentbuild/internal/reports/core"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/contentbuild?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store is a RecordStore on Postgres. Payloads are stored as JSONB.
type Store struct {
	db *sql.DB
}

// New opens dsn (defaultDSN when empty), pings it and ensures the table.
func New(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureTable(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS crawl_reports (
		id TEXT PRIMARY KEY,
		base_url TEXT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		payload JSONB NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure crawl_reports table: %w", err)
	}
	return nil
}

// Driver reports core.DriverPostgres.
func (s *Store) Driver() core.Driver { return core.DriverPostgres }

// Put upserts rec inside a transaction.
func (s *Store) Put(ctx context.Context, rec core.Record) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO crawl_reports(id, base_url, started_at, payload) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET base_url = EXCLUDED.base_url, started_at = EXCLUDED.started_at, payload = EXCLUDED.payload`,
		rec.ID, rec.BaseURL, rec.StartedAt.UTC(), rec.Payload); err != nil {
		return fmt.Errorf("upsert report %s: %w", rec.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the record with id.
func (s *Store) Get(ctx context.Context, id string) (core.Record, error) {
	var rec core.Record
	err := s.db.QueryRowContext(ctx,
		`SELECT id, base_url, started_at, payload FROM crawl_reports WHERE id = $1`, id).
		Scan(&rec.ID, &rec.BaseURL, &rec.StartedAt, &rec.Payload)
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
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, base_url, started_at, payload FROM crawl_reports ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("select reports: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []core.Record
	for rows.Next() {
		var rec core.Record
		if err := rows.Scan(&rec.ID, &rec.BaseURL, &rec.StartedAt, &rec.Payload); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }
