// Package filters implements the template filters used when rendering CMS
// content into pages: date and timezone formatting, breadcrumb derivation,
// menu link-tree search, facility helpers and assorted text formatting.
//
// Filters are methods on Set so that they share a clock, a default location,
// the CMS feature flags and a logger. Funcs exposes them by template name.
package filters

import (
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
)

// DefaultTimezone is used whenever a filter is handed a missing or unknown
// IANA zone name.
const DefaultTimezone = "America/New_York"

// CMS feature flags consulted by filters.
const (
	FlagSingleValueFieldLink = "FEATURE_SINGLE_VALUE_FIELD_LINK"
)

// Options configures a Set.
type Options struct {
	// Location is used by filters that format timestamps without an explicit
	// zone. Defaults to DefaultTimezone.
	Location *time.Location
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
	// CMSFlags holds the CMS-side feature flags (see FlagSingleValueFieldLink).
	CMSFlags map[string]bool
	Logger   *zap.Logger
}

// Set holds the shared state of the filter functions.
type Set struct {
	loc      *time.Location
	fallback *time.Location
	now      func() time.Time
	cmsFlags map[string]bool
	log      *zap.Logger
}

// New builds a filter Set.
func New(opts Options) *Set {
	fallback, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		fallback = time.UTC
	}
	s := &Set{
		loc:      opts.Location,
		fallback: fallback,
		now:      opts.Now,
		cmsFlags: make(map[string]bool, len(opts.CMSFlags)),
		log:      opts.Logger,
	}
	if s.loc == nil {
		s.loc = fallback
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	for k, v := range opts.CMSFlags {
		s.cmsFlags[k] = v
	}
	return s
}

// Location returns the default location used for zone-less timestamps.
func (s *Set) Location() *time.Location { return s.loc }

func (s *Set) loadZone(name string) (*time.Location, bool) {
	if name == "" {
		return nil, false
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, false
	}
	return loc, true
}
