package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentbuild/internal/reports/core"
)

func TestStoreRoundTripAndReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "reports.db")
	s, err := New(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
	assert.Equal(t, core.DriverSQLite, s.Driver())

	older := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	require.NoError(t, s.Put(ctx, core.Record{ID: "a", BaseURL: "http://localhost:3001", StartedAt: older, Payload: []byte(`{"id":"a"}`)}))
	require.NoError(t, s.Put(ctx, core.Record{ID: "b", BaseURL: "http://localhost:3001", StartedAt: newer, Payload: []byte(`{"id":"b"}`)}))
	require.NoError(t, s.Put(ctx, core.Record{ID: "a", BaseURL: "https://staging.va.gov", StartedAt: older, Payload: []byte(`{"id":"a","v":2}`)}))
	require.NoError(t, s.Close())

	s, err = New(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "https://staging.va.gov", got.BaseURL)
	assert.Equal(t, `{"id":"a","v":2}`, string(got.Payload))
	assert.True(t, older.Equal(got.StartedAt))

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)

	_, err = s.Get(ctx, "zzz")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestPutAfterCloseFails(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, filepath.Join(t.TempDir(), "r.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Error(t, s.Put(ctx, core.Record{ID: "x"}))
}
