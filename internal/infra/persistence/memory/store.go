// Package memory keeps report records in process memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"contentbuild/internal/reports/core"
)

// Store is a concurrency-safe in-memory RecordStore.
type Store struct {
	mu      sync.RWMutex
	records map[string]core.Record
}

// New returns an empty store.
func New() *Store {
	return &Store{records: make(map[string]core.Record)}
}

// Driver reports core.DriverMemory.
func (s *Store) Driver() core.Driver { return core.DriverMemory }

// Put stores a copy of rec.
func (s *Store) Put(_ context.Context, rec core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = clone(rec)
	return nil
}

// Get returns the record with id.
func (s *Store) Get(_ context.Context, id string) (core.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return core.Record{}, fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return clone(rec), nil
}

// List returns every record, newest first.
func (s *Store) List(_ context.Context) ([]core.Record, error) {
	s.mu.RLock()
	out := make([]core.Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, clone(rec))
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func clone(rec core.Record) core.Record {
	rec.Payload = append([]byte(nil), rec.Payload...)
	return rec
}
