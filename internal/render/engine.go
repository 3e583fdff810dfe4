// Package render binds the content filters to a Liquid template engine.
package render

import (
	"fmt"
	"reflect"

	"contentbuild/internal/cms"
	"contentbuild/internal/filters"

	"github.com/osteele/liquid"
	"go.uber.org/zap"
)

// Engine renders Liquid templates with every content filter registered.
type Engine struct {
	liquid *liquid.Engine
	log    *zap.Logger
}

// NewEngine registers the filters of set on a fresh Liquid engine.
func NewEngine(set *filters.Set, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := liquid.NewEngine()
	for name, fn := range set.Funcs() {
		e.RegisterFilter(name, templateFilter(fn))
	}
	return &Engine{liquid: e, log: log}
}

// Render parses and renders tpl against bindings.
func (e *Engine) Render(tpl string, bindings map[string]any) (string, error) {
	out, err := e.liquid.ParseAndRenderString(tpl, bindings)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	e.log.Debug("rendered template", zap.Int("bytes", len(out)))
	return out, nil
}

var (
	anyType   = reflect.TypeOf((*any)(nil)).Elem()
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// templateFilter wraps fn so that typed results (structs, typed slices) reach
// templates as generic maps and slices whose keys follow the JSON field names.
func templateFilter(fn any) any {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if !needsGeneric(t.Out(0)) {
		return fn
	}
	in := make([]reflect.Type, t.NumIn())
	for i := range in {
		in[i] = t.In(i)
	}
	wrappedType := reflect.FuncOf(in, []reflect.Type{anyType, errorType}, false)
	wrapped := reflect.MakeFunc(wrappedType, func(args []reflect.Value) []reflect.Value {
		res := v.Call(args)
		if len(res) == 2 && !res[1].IsNil() {
			return []reflect.Value{reflect.Zero(anyType), res[1]}
		}
		out, err := cms.ToGeneric(res[0].Interface())
		errVal := reflect.Zero(errorType)
		if err != nil {
			errVal = reflect.ValueOf(&err).Elem()
		}
		outVal := reflect.Zero(anyType)
		if out != nil {
			outVal = reflect.ValueOf(&out).Elem()
		}
		return []reflect.Value{outVal, errVal}
	})
	return wrapped.Interface()
}

func needsGeneric(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct, reflect.Ptr:
		return true
	case reflect.Slice, reflect.Array:
		return t.Elem().Kind() != reflect.Interface
	}
	return false
}
