package filters

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2019, time.May, 20, 0, 0, 0, 0, time.UTC)

// newTestSet returns a Set reading zone-less values in UTC with a fixed clock,
// plus the observed log entries.
func newTestSet(t *testing.T, flags map[string]bool) (*Set, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return New(Options{
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
		CMSFlags: flags,
		Logger:   zap.New(core),
	}), logs
}

// generic decodes a JSON literal into maps and slices, the shape templates
// hand to filters.
func generic(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}
