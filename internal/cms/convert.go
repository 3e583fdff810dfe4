package cms

import (
	"encoding/json"
	"fmt"
)

// Decode converts a generic value (maps, slices and scalars as produced by
// encoding/json or the template engine) into T.
func Decode[T any](v any) (T, error) {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("encode %T: %w", v, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode into %T: %w", out, err)
	}
	return out, nil
}

// ToGeneric converts a typed value back into maps and slices so that templates
// can index it by field name.
func ToGeneric(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode generic: %w", err)
	}
	return out, nil
}

// Slice returns v as a []any when it is any kind of slice of generic values.
func Slice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	case nil:
		return nil, true
	default:
		return nil, false
	}
}
