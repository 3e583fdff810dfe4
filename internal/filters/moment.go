package filters

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Templates describe output formats with moment.js tokens ("MMMM D, YYYY",
// "h:mm A", ...). formatMoment translates those tokens against a time.Time.
// Text inside square brackets is copied verbatim.

var momentTokens = []string{
	"LLLL", "LLL", "LTS", "LL", "LT", "L",
	"YYYY", "YY",
	"MMMM", "MMM", "MM", "M",
	"Do", "DD", "D",
	"dddd", "ddd", "d",
	"HH", "H", "hh", "h",
	"mm", "m", "ss", "s",
	"A", "a",
	"ZZ", "Z", "z",
	"X", "x",
}

var momentLocalized = map[string]string{
	"LT":   "h:mm A",
	"LTS":  "h:mm:ss A",
	"L":    "MM/DD/YYYY",
	"LL":   "MMMM D, YYYY",
	"LLL":  "MMMM D, YYYY h:mm A",
	"LLLL": "dddd, MMMM D, YYYY h:mm A",
}

func formatMoment(t time.Time, layout string) string {
	var b strings.Builder
	for i := 0; i < len(layout); {
		if layout[i] == '[' {
			end := strings.IndexByte(layout[i:], ']')
			if end > 0 {
				b.WriteString(layout[i+1 : i+end])
				i += end + 1
				continue
			}
		}
		tok := matchToken(layout[i:])
		if tok == "" {
			b.WriteByte(layout[i])
			i++
			continue
		}
		if expanded, ok := momentLocalized[tok]; ok {
			b.WriteString(formatMoment(t, expanded))
		} else {
			b.WriteString(renderToken(t, tok))
		}
		i += len(tok)
	}
	return b.String()
}

func matchToken(s string) string {
	for _, tok := range momentTokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func renderToken(t time.Time, tok string) string {
	switch tok {
	case "YYYY":
		return fmt.Sprintf("%04d", t.Year())
	case "YY":
		return fmt.Sprintf("%02d", t.Year()%100)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return fmt.Sprintf("%02d", int(t.Month()))
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "Do":
		return ordinal(t.Day())
	case "DD":
		return fmt.Sprintf("%02d", t.Day())
	case "D":
		return strconv.Itoa(t.Day())
	case "dddd":
		return t.Weekday().String()
	case "ddd":
		return t.Weekday().String()[:3]
	case "d":
		return strconv.Itoa(int(t.Weekday()))
	case "HH":
		return fmt.Sprintf("%02d", t.Hour())
	case "H":
		return strconv.Itoa(t.Hour())
	case "hh":
		return fmt.Sprintf("%02d", hour12(t))
	case "h":
		return strconv.Itoa(hour12(t))
	case "mm":
		return fmt.Sprintf("%02d", t.Minute())
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return fmt.Sprintf("%02d", t.Second())
	case "s":
		return strconv.Itoa(t.Second())
	case "A":
		if t.Hour() < 12 {
			return "AM"
		}
		return "PM"
	case "a":
		if t.Hour() < 12 {
			return "am"
		}
		return "pm"
	case "ZZ":
		return t.Format("-0700")
	case "Z":
		return t.Format("-07:00")
	case "z":
		name, _ := t.Zone()
		return name
	case "X":
		return strconv.FormatInt(t.Unix(), 10)
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10)
	}
	return tok
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}

// meridiemReplacer spells AM and PM the way the site style guide wants.
var meridiemReplacer = strings.NewReplacer("AM", "a.m.", "PM", "p.m.")

// zonedLayouts are tried in order when a string carries its own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.000-0700",
	time.RFC1123Z,
	time.RFC1123,
}

// localLayouts are interpreted in the location passed to parseTime.
var localLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"1/2/2006, 3:04:05 PM",
	"January 2, 2006",
}

// parseTime accepts time.Time values, numbers (milliseconds since the epoch)
// and the string shapes the CMS emits. Strings without an offset are read in
// loc.
func parseTime(v any, loc *time.Location) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		return parseTimeString(strings.TrimSpace(t), loc)
	}
	if ms, ok := toInt(v); ok {
		return time.UnixMilli(ms).In(loc), true
	}
	return time.Time{}, false
}

func parseTimeString(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDateOnly reads the leading YYYY-MM-DD of s, ignoring anything after it.
func parseDateOnly(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len("2006-01-02") {
		s = s[:len("2006-01-02")]
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseUnix reads seconds since the epoch from numbers or numeric strings.
func parseUnix(v any) (time.Time, bool) {
	secs, ok := toFloat(v)
	if !ok {
		return time.Time{}, false
	}
	whole := int64(secs)
	frac := secs - float64(whole)
	return time.Unix(whole, int64(frac*float64(time.Second))), true
}
