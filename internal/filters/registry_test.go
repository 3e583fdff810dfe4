package filters

import (
	"reflect"
	"testing"
)

func TestFuncsCoversEveryFilter(t *testing.T) {
	s := New(Options{})
	funcs := s.Funcs()

	for name, fn := range funcs {
		v := reflect.ValueOf(fn)
		if v.Kind() != reflect.Func {
			t.Fatalf("%s is %T, not a function", name, fn)
		}
		if v.Type().NumOut() == 0 || v.Type().NumOut() > 2 {
			t.Errorf("%s must return a value and optionally an error", name)
		}
	}
	typ := reflect.TypeOf(s)
	nonFilters := map[string]bool{"Funcs": true, "Location": true}
	filters := 0
	for i := 0; i < typ.NumMethod(); i++ {
		if !nonFilters[typ.Method(i).Name] {
			filters++
		}
	}
	if filters != len(funcs) {
		t.Fatalf("Set has %d filter methods but Funcs registers %d", filters, len(funcs))
	}
}
