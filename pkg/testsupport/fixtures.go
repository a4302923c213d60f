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

	"github.com/goliatone/go-formbind/pkg/formfile"
	"github.com/goliatone/go-formbind/pkg/variable"
)

// MustLoadFormFile reads a form file fixture. Testing helpers fail the test on
// error to keep contract tests concise.
func MustLoadFormFile(t *testing.T, path string) *formfile.Document {
	t.Helper()

	doc, err := LoadFormFile(path)
	if err != nil {
		t.Fatalf("load form file: %v", err)
	}
	return doc
}

// LoadFormFile returns a Document without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadFormFile(path string) (*formfile.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: form file path is required")
	}
	doc, err := formfile.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: %w", err)
	}
	return doc, nil
}

// StoreYAML renders the store as a YAML mapping in declaration order, the
// shape golden variable snapshots are stored in.
func StoreYAML(t *testing.T, store *variable.Store) []byte {
	t.Helper()

	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range store.Names() {
		v, _ := store.Get(name)
		var value yaml.Node
		if err := value.Encode(v.Value()); err != nil {
			t.Fatalf("encode %s: %v", name, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&value,
		)
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		t.Fatalf("marshal store: %v", err)
	}
	return out
}

// CompareGolden decodes both YAML payloads and returns a diff string if the
// values differ. Formatting differences are ignored.
func CompareGolden(t *testing.T, want, got []byte) string {
	t.Helper()

	var wantValue, gotValue any
	if err := yaml.Unmarshal(want, &wantValue); err != nil {
		t.Fatalf("decode golden: %v", err)
	}
	if err := yaml.Unmarshal(got, &gotValue); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	return cmp.Diff(wantValue, gotValue)
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
