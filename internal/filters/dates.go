package filters

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"contentbuild/internal/cms"

	"go.uber.org/zap"
)

// HumanizeDate renders a YYYY-MM-DD date as "January 2, 2006".
func (s *Set) HumanizeDate(dt string) string {
	t, ok := parseDateOnly(dt, s.loc)
	if !ok {
		s.log.Debug("humanizeDate: unparsable date", zap.String("value", dt))
		return ""
	}
	return formatMoment(t, "MMMM D, YYYY")
}

// HumanizeTime renders the clock time of dt as "3:04 PM".
func (s *Set) HumanizeTime(dt any) string {
	t, ok := parseTime(dt, s.loc)
	if !ok {
		return ""
	}
	return formatMoment(t.In(s.loc), "LT")
}

// HumanizeTimestamp renders a unix timestamp (seconds) as "January 2, 2006".
func (s *Set) HumanizeTimestamp(dt any) string {
	t, ok := parseUnix(dt)
	if !ok {
		return ""
	}
	return formatMoment(t.In(s.loc), "MMMM D, YYYY")
}

// TimeZone formats dt as wall-clock time in the zone tz. When either argument
// is empty dt is returned untouched.
func (s *Set) TimeZone(dt any, tz, format string) any {
	if !truthy(dt) || tz == "" {
		return dt
	}
	loc, ok := s.loadZone(tz)
	if !ok {
		s.log.Warn("timeZone: invalid time zone", zap.String("timezone", tz))
		return dt
	}
	t, ok := parseTime(dt, time.UTC)
	if !ok {
		return dt
	}
	return meridiemReplacer.Replace(formatMoment(t.In(loc), format))
}

// FormatDate formats dt in UTC.
func (s *Set) FormatDate(dt any, format string) string {
	t, ok := parseTime(dt, time.UTC)
	if !ok {
		return ""
	}
	return meridiemReplacer.Replace(formatMoment(t.UTC(), format))
}

// DateFromUnix formats a unix timestamp (seconds) in the zone tz. An empty
// timestamp yields nil; a missing or unknown zone falls back to
// DefaultTimezone.
func (s *Set) DateFromUnix(dt any, format string, tz any) any {
	if !truthy(dt) {
		return nil
	}
	t, ok := parseUnix(dt)
	if !ok {
		return nil
	}
	loc := s.fallback
	if name, isString := tz.(string); isString && name != "" {
		if zone, valid := s.loadZone(name); valid {
			loc = zone
		} else {
			s.log.Warn("Invalid timezone passed to dateFromUnix filter. Using default instead.",
				zap.String("timezone", name))
		}
	}
	return meridiemReplacer.Replace(formatMoment(t.In(loc), format))
}

// UnixFromDate returns the milliseconds since the epoch for a date string.
// Date-only values are read as UTC midnight, other zone-less values in the
// default location. Unparsable input yields 0.
func (s *Set) UnixFromDate(data any) int64 {
	if str, ok := data.(string); ok && len(strings.TrimSpace(str)) == len("2006-01-02") {
		if t, ok := parseDateOnly(str, time.UTC); ok {
			return t.UnixMilli()
		}
	}
	t, ok := parseTime(data, s.loc)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

// CurrentTimeInSeconds returns the current unix time. The argument is the
// piped template value and is ignored.
func (s *Set) CurrentTimeInSeconds(_ any) int64 {
	return s.now().Unix()
}

// TimezoneAbbrev returns the abbreviation of timezone at the instant
// timestamp (milliseconds), e.g. "PST". Missing or unknown zones yield "ET".
func (s *Set) TimezoneAbbrev(timezone string, timestamp any) string {
	if timezone == "" || !truthy(timestamp) {
		return "ET"
	}
	loc, ok := s.loadZone(timezone)
	if !ok {
		s.log.Warn("Invalid time zone", zap.String("timezone", timezone))
		return "ET"
	}
	ms, ok := toInt(timestamp)
	if !ok {
		return "ET"
	}
	name, _ := time.UnixMilli(ms).In(loc).Zone()
	return name
}

// IsPastDate returns the number of whole days between contentDate and now;
// positive values are in the past.
func (s *Set) IsPastDate(contentDate any) int64 {
	t, ok := parseTime(contentDate, s.loc)
	if !ok {
		return 0
	}
	days := s.now().Sub(t).Hours() / 24
	return int64(math.Trunc(days))
}

// IsLaterThan reports whether the date part of timestamp1 is after the date
// part of timestamp2.
func (s *Set) IsLaterThan(timestamp1, timestamp2 string) bool {
	a, okA := parseDateOnly(timestamp1, s.loc)
	b, okB := parseDateOnly(timestamp2, s.loc)
	if !okA || !okB {
		return false
	}
	return a.After(b)
}

// FormatSeconds renders a duration in seconds as "H:M:S unit" where zero
// components are dropped and the unit names the largest component present,
// e.g. 90 becomes "1:30 minutes".
func (s *Set) FormatSeconds(rawSeconds any) string {
	secs, ok := toInt(rawSeconds)
	if !ok {
		return ""
	}
	t := time.Unix(secs, 0).UTC()
	parts := make([]string, 0, 3)
	text := ""
	if t.Second() != 0 {
		text = " seconds"
	}
	if t.Minute() != 0 {
		text = " minutes"
	}
	if t.Hour() != 0 {
		text = " hours"
	}
	for _, v := range []int{t.Hour(), t.Minute(), t.Second()} {
		if v != 0 {
			parts = append(parts, strconv.Itoa(v))
		}
	}
	return strings.Join(parts, ":") + text
}

// EventSorter orders event nodes by fieldDatetimeRangeTimezone.startTime,
// earliest first. Events without a start time sort last.
func (s *Set) EventSorter(items any) any {
	list, ok := cms.Slice(items)
	if !ok || list == nil {
		return items
	}
	out := append([]any(nil), list...)
	start := func(v any) (time.Time, bool) {
		raw, found := cms.Lookup(v, "fieldDatetimeRangeTimezone.startTime")
		if !found {
			return time.Time{}, false
		}
		if _, isNum := toNumber(raw); isNum {
			return parseUnix(raw)
		}
		return parseTime(raw, s.loc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, okA := start(out[i])
		b, okB := start(out[j])
		switch {
		case okA && okB:
			return a.Before(b)
		case okA:
			return true
		}
		return false
	})
	return out
}
