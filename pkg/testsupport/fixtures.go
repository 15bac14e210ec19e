package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagegen/pkg/document"
)

// LoadDocument reads a JSON or YAML page fixture. Testing helpers fail the
// test on error to keep table tests concise.
func LoadDocument(t *testing.T, path string) document.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (document.Document, error) {
	if path == "" {
		return document.Document{}, errors.New("testsupport: document path is required")
	}
	doc, err := document.LoadFile(path)
	if err != nil {
		return document.Document{}, fmt.Errorf("testsupport: %w", err)
	}
	return doc, nil
}

// MustLoadElement reads a single element fixture.
func MustLoadElement(t *testing.T, path string) document.Element {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read element: %v", err)
	}
	el, err := document.ParseElement(data, path)
	if err != nil {
		t.Fatalf("parse element: %v", err)
	}
	return el
}

// Normalise converts value into the generic tree produced by decoding its JSON
// encoding, so typed structs, Values and decoded fixtures compare equal.
func Normalise(t *testing.T, value any) any {
	t.Helper()

	payload, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal value: %v", err)
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	return out
}

// AssertGolden compares value against the JSON golden at path. With
// UPDATE_GOLDENS set the golden is rewritten instead.
func AssertGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") != "" {
		WriteGolden(t, path, value)
		return
	}

	var want any
	if err := json.Unmarshal(MustReadGolden(t, path), &want); err != nil {
		t.Fatalf("unmarshal golden %s: %v", path, err)
	}
	got := Normalise(t, value)
	if diff := CompareGolden(want, got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s\ngot:\n%s", path, diff, spew.Sdump(got))
	}
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	WriteMaybeGolden(t, path, append(payload, '\n'))
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
