// Package graphql assembles the GraphQL documents sent to the CMS: reusable
// fragments, the selections that spread them and the page queries built from
// both.
package graphql

import (
	"errors"
	"strings"
)

// ErrFragmentUndefined is reported when a document spreads a fragment it does
// not define.
var ErrFragmentUndefined = errors.New("fragment spread without definition")

// ErrDuplicateFragment is reported when a document defines a fragment twice.
var ErrDuplicateFragment = errors.New("duplicate fragment definition")

// Fragment is a named GraphQL fragment. Requires lists the fragments spread
// inside Selection so that documents carry their definitions along.
type Fragment struct {
	Name      string
	On        string
	Selection string
	Requires  []*Fragment
}

// Spread returns the spread syntax for f, "...name".
func (f *Fragment) Spread() string { return "..." + f.Name }

// Definition returns the fragment definition of f alone.
func (f *Fragment) Definition() string {
	return "fragment " + f.Name + " on " + f.On + " {\n" + indent(strings.TrimSpace(f.Selection), "  ") + "\n}\n"
}

// Document returns the definitions of everything f requires, depth first and
// each once, followed by f itself.
func (f *Fragment) Document() string {
	var b strings.Builder
	writeDefinitions(&b, []*Fragment{f}, map[string]bool{})
	return b.String()
}

func writeDefinitions(b *strings.Builder, frags []*Fragment, seen map[string]bool) {
	for _, f := range frags {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		writeDefinitions(b, f.Requires, seen)
		b.WriteString(f.Definition())
		b.WriteString("\n")
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = prefix + strings.TrimRight(l, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
