package graphql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Validate parses doc and checks that every fragment spread has exactly one
// definition. It does not check the document against the CMS schema.
func Validate(doc string) error {
	parsed, err := parser.ParseQuery(&ast.Source{Name: "document", Input: doc})
	if err != nil {
		return fmt.Errorf("parse graphql document: %w", err)
	}

	defined := make(map[string]int, len(parsed.Fragments))
	for _, f := range parsed.Fragments {
		defined[f.Name]++
	}
	var errs []string
	for name, n := range defined {
		if n > 1 {
			errs = append(errs, fmt.Sprintf("fragment %s defined %d times", name, n))
		}
	}

	spreads := map[string]bool{}
	for _, op := range parsed.Operations {
		collectSpreads(op.SelectionSet, spreads)
	}
	for _, f := range parsed.Fragments {
		collectSpreads(f.SelectionSet, spreads)
	}
	var missing []string
	for name := range spreads {
		if defined[name] == 0 {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	sort.Strings(errs)
	if len(missing) > 0 {
		msg := strings.Join(missing, ", ")
		if len(errs) > 0 {
			msg += "; " + strings.Join(errs, "; ")
		}
		return fmt.Errorf("%w: %s", ErrFragmentUndefined, msg)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateFragment, strings.Join(errs, "; "))
	}
	return nil
}

func collectSpreads(set ast.SelectionSet, into map[string]bool) {
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			collectSpreads(s.SelectionSet, into)
		case *ast.InlineFragment:
			collectSpreads(s.SelectionSet, into)
		case *ast.FragmentSpread:
			into[s.Name] = true
		}
	}
}
