// Command filter-registry-check fails when an exported method of the filter
// set is not exposed to templates through its registry method. It loads the
// package with go/packages and inspects the registry method's body for
// method values.
package main

import (
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"go/types"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

var exitFunc = os.Exit

// main runs cli with the program arguments and exits with its status code.
func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("filter-registry-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dir      string
		pkg      string
		typeName string
		registry string
		ignore   string
	)
	fs.StringVar(&dir, "dir", "", "directory to load packages from (default: working directory)")
	fs.StringVar(&pkg, "pkg", "contentbuild/internal/filters", "package holding the filter set")
	fs.StringVar(&typeName, "type", "Set", "filter set type name")
	fs.StringVar(&registry, "registry", "Funcs", "method returning the name-to-filter table")
	fs.StringVar(&ignore, "ignore", "Location", "comma separated exported methods that are not filters")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	missing, err := check(dir, pkg, typeName, registry, splitList(ignore))
	if err != nil {
		fmt.Fprintf(stderr, "Filter registry check failed: %v\n", err)
		return 1
	}
	if len(missing) > 0 {
		fmt.Fprintf(stderr, "Filter registry check failed: %d unregistered filter(s):\n", len(missing))
		for _, m := range missing {
			fmt.Fprintf(stderr, "  %s.%s\n", typeName, m)
		}
		return 1
	}
	fmt.Fprintln(stdout, "Filter registry check passed.")
	return 0
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// check returns the exported methods of *typeName in pattern that are
// neither referenced inside the registry method nor ignored, sorted.
func check(dir, pattern, typeName, registry string, ignore []string) ([]string, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", pattern, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %s matched %d packages, want 1", pattern, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		msgs := make([]string, len(pkg.Errors))
		for i, e := range pkg.Errors {
			msgs[i] = e.Error()
		}
		return nil, errors.New(strings.Join(msgs, "; "))
	}

	obj := pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		return nil, fmt.Errorf("type %s not found in %s", typeName, pkg.PkgPath)
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%s is not a named type", typeName)
	}

	skip := map[string]bool{registry: true}
	for _, name := range ignore {
		skip[name] = true
	}
	exported := map[string]bool{}
	mset := types.NewMethodSet(types.NewPointer(named))
	for i := 0; i < mset.Len(); i++ {
		name := mset.At(i).Obj().Name()
		if ast.IsExported(name) && !skip[name] {
			exported[name] = true
		}
	}

	body := findMethod(pkg, named, registry)
	if body == nil {
		return nil, fmt.Errorf("method %s.%s not found", typeName, registry)
	}
	registered := map[string]bool{}
	ast.Inspect(body, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if s, ok := pkg.TypesInfo.Selections[sel]; ok && s.Kind() == types.MethodVal {
			if recvNamed(s.Recv()) == named {
				registered[sel.Sel.Name] = true
			}
		}
		return true
	})

	var missing []string
	for name := range exported {
		if !registered[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing, nil
}

func findMethod(pkg *packages.Package, named *types.Named, name string) *ast.BlockStmt {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Recv == nil || fn.Name.Name != name || fn.Body == nil {
				continue
			}
			if obj, ok := pkg.TypesInfo.Defs[fn.Name].(*types.Func); ok {
				if sig, ok := obj.Type().(*types.Signature); ok && recvNamed(sig.Recv().Type()) == named {
					return fn.Body
				}
			}
		}
	}
	return nil
}

func recvNamed(t types.Type) *types.Named {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	n, _ := t.(*types.Named)
	return n
}
