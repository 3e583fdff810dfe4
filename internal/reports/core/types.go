// Package core defines the record contract shared by report store drivers.
package core

import (
	"context"
	"errors"
	"time"
)

// Driver names a report store backend.
type Driver string

// Supported drivers.
const (
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ErrNotFound is returned when no report has the requested id.
var ErrNotFound = errors.New("report not found")

// Record is a stored report: indexed columns plus the JSON document.
type Record struct {
	ID        string
	BaseURL   string
	StartedAt time.Time
	Payload   []byte
}

// RecordStore persists records keyed by ID. Put replaces an existing record
// with the same ID. List returns newest first.
type RecordStore interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Close() error
	Driver() Driver
}
