package filters

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"contentbuild/internal/cms"
)

// truthy mirrors the template engine's loose notion of truth for CMS values:
// nil, false, zero, NaN and the empty string are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0 && !math.IsNaN(t)
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	}
	return true
}

// isEmpty reports whether v has no elements (collections) or is nil.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case string:
		return t == ""
	}
	return true
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, !math.IsNaN(t)
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func toInt(v any) (int64, bool) {
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// compareValues orders values the way sortBy does: numbers numerically,
// everything else by string form, missing values last.
func compareValues(a, b any, aok, bok bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}
	af, aNum := toNumber(a)
	bf, bNum := toNumber(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	return strings.Compare(toString(a), toString(b))
}

// toNumber only accepts values that are numbers already; numeric strings stay
// strings for ordering purposes.
func toNumber(v any) (float64, bool) {
	switch v.(type) {
	case string, nil:
		return 0, false
	}
	return toFloat(v)
}

// genericList returns v as a list of generic values. Typed lists are
// converted first so both shapes are walked the same way.
func genericList(v any) ([]any, error) {
	if list, ok := cms.Slice(v); ok {
		return list, nil
	}
	g, err := cms.ToGeneric(v)
	if err != nil {
		return nil, err
	}
	list, ok := cms.Slice(g)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list, got %T", ErrInvalidArgument, v)
	}
	return list, nil
}
