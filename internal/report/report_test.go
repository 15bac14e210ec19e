package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagegen/pkg/migrate"
	"github.com/goliatone/go-pagegen/pkg/validation"
	"github.com/goliatone/go-pagegen/pkg/visibility"
)

func TestValidationText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printer := New(&buf, "text")
	result := validation.Result{
		Valid:    false,
		Errors:   []validation.Issue{{Path: "zones[0]", Message: `image requires a "src"`}},
		Warnings: []validation.Issue{{Message: "image has no alt text"}},
	}
	if err := printer.Validation("page.json", result); err != nil {
		t.Fatalf("Validation returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"validate",
		"page.json",
		`✗ zones[0]: image requires a "src"`,
		"! image has no alt text",
		"invalid (1 error, 1 warning)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "&quot;") {
		t.Fatalf("output must not be HTML escaped:\n%s", out)
	}
}

func TestValidationJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printer := New(&buf, "json")
	if printer.Format() != "json" {
		t.Fatalf("expected json format, got %q", printer.Format())
	}
	result := validation.Result{Valid: true, Warnings: []validation.Issue{{Path: "p", Message: "w"}}}
	if err := printer.Validation("page.yaml", result); err != nil {
		t.Fatalf("Validation returned error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]any{
		"source":   "page.yaml",
		"valid":    true,
		"warnings": []any{map[string]any{"path": "p", "message": "w"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestMigrationText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	stats := migrate.Stats{
		TotalElements: 3,
		Migrated:      2,
		Errors:        []string{`elements[2]: unknown element type "carousel"`},
	}
	if err := New(&buf, "").Migration("legacy.json", "out.json", stats); err != nil {
		t.Fatalf("Migration returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"migrate", "legacy.json", `✗ elements[2]: unknown element type "carousel"`, "migrated 2 of 3 elements", "-> out.json"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMigrationJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := New(&buf, "json").Migration("in.json", "", migrate.Stats{TotalElements: 1, Migrated: 1}); err != nil {
		t.Fatalf("Migration returned error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]any{"source": "in.json", "totalElements": float64(1), "migrated": float64(1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := New(&buf, "text").Value(math.Inf(1)); err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if buf.String() != "Infinity\n" {
		t.Fatalf("unexpected text value %q", buf.String())
	}

	buf.Reset()
	if err := New(&buf, "json").Value(map[string]any{"count": 2}); err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if !strings.Contains(buf.String(), `"count": 2`) {
		t.Fatalf("unexpected json value %q", buf.String())
	}
}

func TestVisibilityText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	outcomes := []visibility.Outcome{
		{Path: "a", Rule: "open", Visible: true},
		{Path: "b", Rule: "closed"},
		{Path: "c", Rule: "x >", Error: "unexpected end"},
	}
	if err := New(&buf, "text").Visibility("page.yaml", outcomes); err != nil {
		t.Fatalf("Visibility returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"visibility",
		"✓ a: visible (open)",
		"- b: hidden (closed)",
		"✗ c: hidden, unexpected end",
		"1 visible, 2 hidden",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVisibilityJSONWithoutRules(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := New(&buf, "json").Visibility("page.yaml", nil); err != nil {
		t.Fatalf("Visibility returned error: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	want := map[string]any{"source": "page.yaml", "elements": []any{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
}
