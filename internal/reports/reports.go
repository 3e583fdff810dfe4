// Package reports persists crawl reports through a driver-selected record
// store.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"contentbuild/internal/a11y"
	"contentbuild/internal/config"
	"contentbuild/internal/infra/persistence/memory"
	"contentbuild/internal/infra/persistence/postgres"
	"contentbuild/internal/infra/persistence/sqlite"
	"contentbuild/internal/reports/core"
)

// Driver aliases core.Driver.
type Driver = core.Driver

// Driver names.
const (
	DriverMemory   = core.DriverMemory
	DriverSQLite   = core.DriverSQLite
	DriverPostgres = core.DriverPostgres
)

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = core.ErrNotFound

// Summary is the listing view of a report.
type Summary struct {
	ID         uuid.UUID `json:"id"`
	BaseURL    string    `json:"baseUrl"`
	StartedAt  time.Time `json:"startedAt"`
	Pages      int       `json:"pages"`
	Failures   int       `json:"failures"`
	Violations int       `json:"violations"`
}

// Store saves and loads crawl reports.
type Store struct {
	records core.RecordStore
}

// New wraps a record store.
func New(records core.RecordStore) *Store {
	return &Store{records: records}
}

// Open selects the record store named by cfg.Driver (memory when empty).
func Open(ctx context.Context, cfg config.Reports) (*Store, error) {
	var (
		records core.RecordStore
		err     error
	)
	switch Driver(cfg.Driver) {
	case "", DriverMemory:
		records = memory.New()
	case DriverSQLite:
		records, err = sqlite.New(ctx, cfg.DSN)
	case DriverPostgres:
		records, err = postgres.New(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown report store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return New(records), nil
}

// Driver reports the backing driver.
func (s *Store) Driver() Driver { return s.records.Driver() }

// Save stores r, replacing any report with the same id.
func (s *Store) Save(ctx context.Context, r a11y.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", r.ID, err)
	}
	return s.records.Put(ctx, core.Record{
		ID:        r.ID.String(),
		BaseURL:   r.BaseURL,
		StartedAt: r.StartedAt,
		Payload:   payload,
	})
}

// Get loads the report with id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (a11y.Report, error) {
	rec, err := s.records.Get(ctx, id.String())
	if err != nil {
		return a11y.Report{}, err
	}
	return decode(rec)
}

// List summarises every stored report, newest first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	recs, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(recs))
	for _, rec := range recs {
		r, err := decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{
			ID:         r.ID,
			BaseURL:    r.BaseURL,
			StartedAt:  r.StartedAt,
			Pages:      len(r.Results),
			Failures:   len(r.Failures()),
			Violations: r.ViolationCount(),
		})
	}
	return out, nil
}

// Close releases the backing store.
func (s *Store) Close() error { return s.records.Close() }

func decode(rec core.Record) (a11y.Report, error) {
	var r a11y.Report
	if err := json.Unmarshal(rec.Payload, &r); err != nil {
		return a11y.Report{}, fmt.Errorf("decode report %s: %w", rec.ID, err)
	}
	return r, nil
}
