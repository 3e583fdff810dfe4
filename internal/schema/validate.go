package schema

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Violation is a single schema failure within a document.
type Violation struct {
	InstanceLocation string
	Message          string
}

// ViolationError reports why a document does not match its output schema.
type ViolationError struct {
	ContentModelType string
	Source           string
	Violations       []Violation
}

func (e *ViolationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		loc := v.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		parts[i] = loc + ": " + v.Message
	}
	prefix := e.ContentModelType
	if e.Source != "" {
		prefix = e.Source + " (" + e.ContentModelType + ")"
	}
	return fmt.Sprintf("%s: %d schema violation(s): %s", prefix, len(e.Violations), strings.Join(parts, "; "))
}

// Validate checks doc, a value decoded from JSON, against the output schema
// for contentModelType.
func (r *Registry) Validate(contentModelType string, doc any) error {
	s, ok := r.schemas[contentModelType]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSchema, contentModelType)
	}
	err := s.Validate(doc)
	if r.recorder != nil {
		r.recorder.ExportValidated(contentModelType, err == nil)
	}
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate %s: %w", contentModelType, err)
	}
	return &ViolationError{ContentModelType: contentModelType, Violations: leaves(ve)}
}

// leaves flattens a validation error tree into its most specific causes.
func leaves(ve *jsonschema.ValidationError) []Violation {
	var out []Violation
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, Violation{InstanceLocation: e.InstanceLocation, Message: e.Message})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	sort.SliceStable(out, func(i, j int) bool { return out[i].InstanceLocation < out[j].InstanceLocation })
	return out
}

// ValidateExport validates a raw export document using the content model type
// it declares in contentModelType.
func (r *Registry) ValidateExport(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode export: %w", err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return fmt.Errorf("decode export: expected an object, got %T", doc)
	}
	cmt, _ := obj["contentModelType"].(string)
	if cmt == "" {
		return fmt.Errorf("%w: export has no contentModelType", ErrUnknownSchema)
	}
	return r.Validate(cmt, doc)
}

// ValidateFiles validates every export file in paths and returns all failures
// combined; multierr.Errors splits them again. Cancelling ctx stops before the
// next file.
func (r *Registry) ValidateFiles(ctx context.Context, paths []string) error {
	var errs error
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		raw, err := os.ReadFile(p)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read %s: %w", p, err))
			continue
		}
		if err := r.ValidateExport(raw); err != nil {
			var ve *ViolationError
			if errors.As(err, &ve) {
				ve.Source = p
			} else {
				err = fmt.Errorf("%s: %w", p, err)
			}
			r.log.Warn("export failed validation", zap.String("path", p), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		r.log.Debug("export valid", zap.String("path", p))
	}
	return errs
}
