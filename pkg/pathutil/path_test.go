package pathutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetReturnsDefaultForMissingRoots(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"", "a", "a.b.c", "0"} {
		if got := Get(nil, path, "D"); got != "D" {
			t.Fatalf("Get(nil, %q) = %v, want D", path, got)
		}
	}
	if got := Get(map[string]any{}, "", "D"); got != "D" {
		t.Fatalf("blank path should return default, got %v", got)
	}
	if got := Get(map[string]any{"a": 1}, "   ", "D"); got != "D" {
		t.Fatalf("whitespace path should return default, got %v", got)
	}
	var typedNil map[string]any
	if got := Get(typedNil, "a", "D"); got != "D" {
		t.Fatalf("typed nil root should return default, got %v", got)
	}
}

func TestGetIndexesIntoSequences(t *testing.T) {
	t.Parallel()

	root := map[string]any{
		"a": []any{
			map[string]any{"b": 1},
			map[string]any{"b": 2},
		},
	}
	if got := Get(root, "a.1.b", nil); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
	if got := Get(root, "a.5.b", "missing"); got != "missing" {
		t.Fatalf("out of range index should return default, got %v", got)
	}
	if got := Get(root, "a.first", "missing"); got != "missing" {
		t.Fatalf("non-numeric segment on a sequence should return default, got %v", got)
	}
}

func TestGetTypedContainers(t *testing.T) {
	t.Parallel()

	type named map[string]any
	root := named{
		"tags":   []string{"go", "pages"},
		"labels": map[string]string{"title": "Hello"},
	}
	if got := Get(root, "tags.1", nil); got != "pages" {
		t.Fatalf("expected pages, got %v", got)
	}
	if got := Get(root, "labels.title", nil); got != "Hello" {
		t.Fatalf("expected Hello, got %v", got)
	}
}

func TestGetNilLeafReturnsDefault(t *testing.T) {
	t.Parallel()

	root := map[string]any{"user": map[string]any{"name": nil}}
	if got := Get(root, "user.name", "anon"); got != "anon" {
		t.Fatalf("expected default for nil leaf, got %v", got)
	}
	if got := Get(root, "user.name.first", "anon"); got != "anon" {
		t.Fatalf("expected default when walking through nil, got %v", got)
	}
	falsy := map[string]any{"count": 0, "flag": false, "text": ""}
	if got := Get(falsy, "count", 9); got != 0 {
		t.Fatalf("zero values must not fall back to the default, got %v", got)
	}
	if got := Get(falsy, "flag", true); got != false {
		t.Fatalf("false must not fall back to the default, got %v", got)
	}
}

func TestSetCopiesOnlyThePath(t *testing.T) {
	t.Parallel()

	shared := map[string]any{"keep": true}
	root := map[string]any{
		"user":   map[string]any{"name": "Ada", "role": "admin"},
		"shared": shared,
	}

	updated := Set(root, "user.name", "Grace")

	if got := Get(root, "user.name", nil); got != "Ada" {
		t.Fatalf("original tree mutated: %v", got)
	}
	if got := Get(updated, "user.name", nil); got != "Grace" {
		t.Fatalf("expected Grace, got %v", got)
	}
	if got := Get(updated, "user.role", nil); got != "admin" {
		t.Fatalf("sibling lost: %v", got)
	}
	sharedOut, _ := updated["shared"].(map[string]any)
	sharedOut["marker"] = 1
	if _, ok := shared["marker"]; !ok {
		t.Fatalf("expected untouched branch to be shared with the original")
	}
}

func TestSetCreatesIntermediateObjects(t *testing.T) {
	t.Parallel()

	updated := Set(nil, "a.b.c", 3)
	want := map[string]any{"a": map[string]any{"b": map[string]any{"c": 3}}}
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestSetSequenceIndex(t *testing.T) {
	t.Parallel()

	root := map[string]any{"items": []any{"a", "b"}}
	updated := Set(root, "items.1", "B")
	if diff := cmp.Diff([]any{"a", "B"}, updated["items"]); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{"a", "b"}, root["items"]); diff != "" {
		t.Fatalf("original items mutated (-want +got):\n%s", diff)
	}

	grown := Set(root, "items.3", "D")
	if diff := cmp.Diff([]any{"a", "b", nil, "D"}, grown["items"]); diff != "" {
		t.Fatalf("unexpected grown items (-want +got):\n%s", diff)
	}
}

func TestSetBoundsSequenceGrowth(t *testing.T) {
	t.Parallel()

	root := map[string]any{"items": []any{1}}

	for _, path := range []string{"items.9223372036854775807", "items.1025", "items.1025.name"} {
		updated := Set(root, path, "x")
		if diff := cmp.Diff([]any{1}, updated["items"]); diff != "" {
			t.Fatalf("%s: expected items unchanged (-want +got):\n%s", path, diff)
		}
	}

	edge := Set(root, "items.1024", "x")
	items, _ := edge["items"].([]any)
	if len(items) != 1025 || items[1024] != "x" {
		t.Fatalf("expected growth up to the bound, got len %d", len(items))
	}
}
