package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type recordingT struct {
	msgs []string
}

func (r *recordingT) Fatalf(format string, args ...any) {
	r.msgs = append(r.msgs, fmt.Sprintf(format, args...))
}

func TestPredicates(t *testing.T) {
	cases := map[string]bool{
		"contentbuild/internal/blob":                 true,
		"contentbuild/internal/infra/blob/s3":        true,
		"contentbuild/internal/reports/core":         true,
		"contentbuild/internal/filters":              false,
		"contentbuild/internal/blobby":               false,
		"github.com/aws/aws-sdk-go-v2/service/s3":    false,
		"contentbuild/internal/cli":                  true,
		"contentbuild/internal/publishing-something": false,
	}
	for path, want := range cases {
		if got := StorageImportForbidden(path); got != want {
			t.Errorf("StorageImportForbidden(%q) = %v, want %v", path, got, want)
		}
	}
	if !BrowserImportForbidden("github.com/go-rod/rod/lib/proto") || BrowserImportForbidden("github.com/osteele/liquid") {
		t.Fatal("browser predicate mismatch")
	}
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	src := "package p\n\nimport (\n\t\"fmt\"\n\t\"contentbuild/internal/blob\"\n)\n\nvar _ = fmt.Sprint\n"
	if err := os.WriteFile(filepath.Join(dir, "p.go"), []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "p_test.go"), []byte("package p\n\nimport _ \"contentbuild/internal/cli\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	viols, err := directImportViolations(dir, StorageImportForbidden)
	if err != nil {
		t.Fatal(err)
	}
	if len(viols) != 1 || viols[0] != "contentbuild/internal/blob (in p.go)" {
		t.Fatalf("unexpected violations: %v", viols)
	}
}

func TestTransitiveViolationsUseGoList(t *testing.T) {
	old := goListDeps
	defer func() { goListDeps = old }()
	goListDeps = func(string) ([]byte, error) {
		return []byte("fmt\ngithub.com/go-rod/rod\n\ncontentbuild/internal/filters\n"), nil
	}
	viols, _, err := transitiveDependencyViolations("./...", BrowserImportForbidden)
	if err != nil {
		t.Fatal(err)
	}
	if len(viols) != 1 || viols[0] != "github.com/go-rod/rod" {
		t.Fatalf("unexpected violations: %v", viols)
	}

	goListDeps = func(string) ([]byte, error) { return []byte("boom"), errors.New("exit 1") }
	if _, out, err := transitiveDependencyViolations(".", BrowserImportForbidden); err == nil || string(out) != "boom" {
		t.Fatalf("expected go list failure, got %v %q", err, out)
	}
}

func TestFailIfViolations(t *testing.T) {
	r := &recordingT{}
	failIfViolations(r, "direct imports", "reason", nil)
	if len(r.msgs) != 0 {
		t.Fatalf("unexpected failure: %v", r.msgs)
	}
	failIfViolations(r, "direct imports", "reason", []string{"a", "b"})
	if len(r.msgs) != 1 {
		t.Fatalf("expected one failure, got %v", r.msgs)
	}
}
