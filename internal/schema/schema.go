// Package schema validates CMS export documents against the output schemas of
// their content model type. Schemas are embedded JSON Schema (draft 7)
// documents; a bare $ref such as "MetaTags" or
// "output/node-health_care_region_page" names another embedded schema.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

//go:embed output/*.json defs/*.json
var declarations embed.FS

// baseURL anchors the embedded schemas. Names resolve relative to its root.
const baseURL = "https://schemas.contentbuild.local"

// ErrUnknownSchema is returned when no output schema exists for a content
// model type.
var ErrUnknownSchema = errors.New("unknown content model type")

// Recorder receives the outcome of every export validation.
type Recorder interface {
	ExportValidated(contentModelType string, ok bool)
}

// Options configures a Registry.
type Options struct {
	Logger   *zap.Logger
	Recorder Recorder
}

// Registry holds the compiled output schemas keyed by content model type.
type Registry struct {
	schemas  map[string]*jsonschema.Schema
	log      *zap.Logger
	recorder Recorder
}

// NewRegistry compiles every embedded output schema.
func NewRegistry(opts Options) (*Registry, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	var outputs []string
	err := fs.WalkDir(declarations, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := declarations.ReadFile(p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(p, path.Ext(p))
		if dir, file := path.Split(name); dir == "defs/" {
			name = file
		} else {
			outputs = append(outputs, name)
		}
		doc, err := normalizeRefs(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		return compiler.AddResource(resourceURL(name), bytes.NewReader(doc))
	})
	if err != nil {
		return nil, fmt.Errorf("load schemas: %w", err)
	}

	r := &Registry{
		schemas:  make(map[string]*jsonschema.Schema, len(outputs)),
		log:      opts.Logger,
		recorder: opts.Recorder,
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	for _, name := range outputs {
		s, err := compiler.Compile(resourceURL(name))
		if err != nil {
			return nil, fmt.Errorf("compile %s: %w", name, err)
		}
		r.schemas[strings.TrimPrefix(name, "output/")] = s
	}
	return r, nil
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Default returns a lazily compiled registry without logging or metrics.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = NewRegistry(Options{})
	})
	return defaultReg, defaultErr
}

func resourceURL(name string) string { return baseURL + "/" + name }

// normalizeRefs rewrites bare schema names in $ref to root-relative
// references so they resolve the same from every schema.
func normalizeRefs(raw []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	rewriteRefs(doc)
	return json.Marshal(doc)
}

func rewriteRefs(v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if ref, ok := child.(string); ok && k == "$ref" {
				if !strings.HasPrefix(ref, "#") && !strings.HasPrefix(ref, "/") && !strings.Contains(ref, "://") {
					t[k] = "/" + ref
				}
				continue
			}
			rewriteRefs(child)
		}
	case []any:
		for _, child := range t {
			rewriteRefs(child)
		}
	}
}

// Types lists the content model types with an output schema, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
