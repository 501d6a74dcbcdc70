package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	pkgmodel "github.com/goliatone/go-vuemigrate/pkg/model"
	"github.com/goliatone/go-vuemigrate/pkg/sfc"
)

// LoadDocument reads a fixture and builds an sfc.Document using a file source.
// Testing helpers fail the test on error to keep contract tests concise.
func LoadDocument(t *testing.T, path string) sfc.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (sfc.Document, error) {
	if path == "" {
		return sfc.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sfc.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := sfc.NewDocument(sfc.SourceFromFile(path), data)
	if err != nil {
		return sfc.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MarshalComponent renders a component as YAML, the same shape the scan
// command prints. Goldens of this form keep model diffs readable.
func MarshalComponent(t *testing.T, component pkgmodel.Component) []byte {
	t.Helper()

	payload, err := yaml.Marshal(component)
	if err != nil {
		t.Fatalf("marshal component: %v", err)
	}
	return payload
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}
