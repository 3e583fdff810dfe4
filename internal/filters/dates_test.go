package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanizeFilters(t *testing.T) {
	s, _ := newTestSet(t, nil)

	assert.Equal(t, "May 15, 2019", s.HumanizeDate("2019-05-15"))
	assert.Equal(t, "", s.HumanizeDate("not a date"))
	assert.Equal(t, "2:30 PM", s.HumanizeTime("2019-05-15T14:30:00Z"))
	assert.Equal(t, "May 15, 2019", s.HumanizeTimestamp(1557930600))
}

func TestTimeZone(t *testing.T) {
	s, logs := newTestSet(t, nil)

	assert.Equal(t, "", s.TimeZone("", "America/Denver", "h:mm A"))
	assert.Equal(t, "2019-05-15T14:30:00Z", s.TimeZone("2019-05-15T14:30:00Z", "", "h:mm A"))
	assert.Equal(t, "7:30 a.m. PDT", s.TimeZone("2019-05-15T14:30:00Z", "America/Los_Angeles", "h:mm A z"))

	assert.Equal(t, "x", s.TimeZone("x", "Mars/Olympus", "h:mm A"))
	assert.Equal(t, 1, logs.FilterMessage("timeZone: invalid time zone").Len())
}

func TestFormatDateUsesUTC(t *testing.T) {
	s := New(Options{})
	assert.Equal(t, "May 15th, 2019 2:30 p.m.", s.FormatDate("2019-05-15T14:30:00Z", "MMMM Do, YYYY h:mm A"))
	assert.Equal(t, "Wed [05/15]", s.FormatDate("2019-05-15T14:30:00Z", "ddd [[]MM/DD]"))
}

func TestDateFromUnix(t *testing.T) {
	s, logs := newTestSet(t, nil)

	assert.Nil(t, s.DateFromUnix(nil, "LL", nil))
	assert.Nil(t, s.DateFromUnix(0, "LL", "America/Chicago"))
	assert.Equal(t, "May 15, 2019 9:30 a.m.", s.DateFromUnix(1557930600, "MMMM D, YYYY h:mm A", "America/Chicago"))

	assert.Equal(t, "May 15, 2019 10:30 a.m.", s.DateFromUnix(1557930600, "MMMM D, YYYY h:mm A", ""))
	assert.Equal(t, 0, logs.Len())

	assert.Equal(t, "May 15, 2019 10:30 a.m.", s.DateFromUnix("1557930600", "MMMM D, YYYY h:mm A", "Not/AZone"))
	warned := logs.FilterMessage("Invalid timezone passed to dateFromUnix filter. Using default instead.").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "Not/AZone", warned[0].ContextMap()["timezone"])
}

func TestUnixFromDateAndCurrentTime(t *testing.T) {
	s, _ := newTestSet(t, nil)

	assert.Equal(t, int64(1557878400000), s.UnixFromDate("2019-05-15"))
	assert.Equal(t, int64(1557930600000), s.UnixFromDate("2019-05-15T14:30:00Z"))
	assert.Equal(t, int64(0), s.UnixFromDate("garbage"))
	assert.Equal(t, fixedNow.Unix(), s.CurrentTimeInSeconds(nil))
}

func TestTimezoneAbbrev(t *testing.T) {
	s, logs := newTestSet(t, nil)
	summer := time.Date(2019, time.July, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	winter := time.Date(2019, time.January, 1, 12, 0, 0, 0, time.UTC).UnixMilli()

	assert.Equal(t, "PDT", s.TimezoneAbbrev("America/Los_Angeles", summer))
	assert.Equal(t, "PST", s.TimezoneAbbrev("America/Los_Angeles", winter))
	assert.Equal(t, "ET", s.TimezoneAbbrev("", summer))
	assert.Equal(t, "ET", s.TimezoneAbbrev("America/Denver", nil))
	assert.Equal(t, 0, logs.Len())

	assert.Equal(t, "ET", s.TimezoneAbbrev("Nowhere/Special", summer))
	assert.Equal(t, 1, logs.FilterMessage("Invalid time zone").Len())
}

func TestPastAndLaterDates(t *testing.T) {
	s, _ := newTestSet(t, nil)

	assert.Equal(t, int64(5), s.IsPastDate("2019-05-15"))
	assert.Equal(t, int64(-2), s.IsPastDate("2019-05-22"))
	assert.True(t, s.IsLaterThan("2019-05-16T01:00:00", "2019-05-15"))
	assert.False(t, s.IsLaterThan("2019-05-15T23:00:00", "2019-05-15T01:00:00"))
	assert.False(t, s.IsLaterThan("", "2019-05-15"))
}

func TestFormatSeconds(t *testing.T) {
	s := New(Options{})
	cases := map[int]string{
		45:   "45 seconds",
		90:   "1:30 minutes",
		120:  "2 minutes",
		3600: "1 hours",
		3661: "1:1:1 hours",
		0:    "",
	}
	for in, want := range cases {
		if got := s.FormatSeconds(in); got != want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestEventSorter(t *testing.T) {
	s, _ := newTestSet(t, nil)
	events := generic(t, `[
		{"title": "c", "fieldDatetimeRangeTimezone": {"startTime": 1557930600}},
		{"title": "none"},
		{"title": "a", "fieldDatetimeRangeTimezone": {"startTime": 1557000000}},
		{"title": "b", "fieldDatetimeRangeTimezone": {"startTime": 1557500000}}
	]`)

	sorted, ok := s.EventSorter(events).([]any)
	require.True(t, ok)
	var titles []string
	for _, e := range sorted {
		titles = append(titles, e.(map[string]any)["title"].(string))
	}
	assert.Equal(t, []string{"a", "b", "c", "none"}, titles)
	assert.Equal(t, "c", events.([]any)[0].(map[string]any)["title"], "input must not be reordered")
	assert.Nil(t, s.EventSorter(nil))
}
