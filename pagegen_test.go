package pagegen_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagegen"
	"github.com/goliatone/go-pagegen/pkg/document"
)

func TestLoadMigrateValidate(t *testing.T) {
	t.Parallel()

	doc, err := pagegen.LoadDocument("testdata/legacy.yaml")
	if err != nil {
		t.Fatalf("LoadDocument returned error: %v", err)
	}

	legacy := pagegen.ValidatePage(doc)
	if legacy.Valid {
		t.Fatalf("expected legacy document to be invalid")
	}

	migrated, stats := pagegen.MigratePage(doc)
	if stats.TotalElements != 2 || stats.Migrated != 2 || !stats.OK() {
		t.Fatalf("unexpected stats %+v", stats)
	}

	result := pagegen.ValidatePage(migrated)
	if !result.Valid {
		t.Fatalf("expected migrated document to be valid, got %v", result.ErrorMessages())
	}

	title := migrated.Zones[0].Rows[0].Columns[0].Elements[0]
	if got := pagegen.ValidateElement(title); !got.Valid || len(got.Warnings) != 0 {
		t.Fatalf("unexpected element result %+v", got)
	}
}

func TestMigrateElement(t *testing.T) {
	t.Parallel()

	el, stats := pagegen.MigrateElement(pagegen.Element{
		Type:     "display",
		Settings: document.Values{"iconName": "star"},
	})
	if el.Type != "markup" || stats.Migrated != 1 {
		t.Fatalf("unexpected migration %+v %+v", el, stats)
	}
	if got := el.Settings.Map("markup").String("markupType"); got != "icon" {
		t.Fatalf("expected icon markup, got %q", got)
	}
}

func TestResolveAndPaths(t *testing.T) {
	t.Parallel()

	providers := pagegen.Providers{
		User: map[string]any{"name": "Ada", "tags": []any{"admin", "ops"}},
	}
	b := pagegen.Binding{Mode: "direct", Source: "user", Path: "tags.1"}
	if got := pagegen.Resolve(b, providers); got != "ops" {
		t.Fatalf("expected ops, got %#v", got)
	}

	updated := pagegen.SetPath(providers.User, "profile.city", "London")
	if got := pagegen.GetPath(updated, "profile.city", nil); got != "London" {
		t.Fatalf("expected London, got %#v", got)
	}
	if _, ok := providers.User["profile"]; ok {
		t.Fatalf("SetPath must not mutate its input")
	}

	got, err := pagegen.Evaluate("user.name + '!'", map[string]any{"user": providers.User})
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if diff := cmp.Diff("Ada!", got); diff != "" {
		t.Fatalf("Evaluate mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateElementChecksChildren(t *testing.T) {
	t.Parallel()

	el := pagegen.Element{
		Type:     "structure",
		Settings: document.Values{"structure": map[string]any{"structureType": "div"}},
		Elements: []pagegen.Element{{Type: "field"}},
	}

	result := pagegen.ValidateElement(el)
	if result.Valid {
		t.Fatalf("expected child field without a field type to invalidate the element")
	}
	want := []string{"elements[0]: depth 1: missing field type (settings.field.fieldType)"}
	if diff := cmp.Diff(want, result.ErrorMessages()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestVisible(t *testing.T) {
	t.Parallel()

	providers := pagegen.Providers{User: map[string]any{"role": "admin"}}
	drawer := pagegen.Element{
		ID:   "admin-tools",
		Type: "structure",
		Settings: document.Values{"structure": map[string]any{
			"structureType":  "drawer",
			"visibilityRule": `user.role == "admin"`,
		}},
	}

	visible, err := pagegen.Visible(drawer, providers)
	if err != nil || !visible {
		t.Fatalf("expected drawer to be visible, got %v, %v", visible, err)
	}

	visible, err = pagegen.Visible(drawer, pagegen.Providers{})
	if err != nil || visible {
		t.Fatalf("expected drawer hidden without a user, got %v, %v", visible, err)
	}

	if visible, err := pagegen.Visible(pagegen.Element{Type: "markup"}, providers); err != nil || !visible {
		t.Fatalf("expected element without a rule to be visible, got %v, %v", visible, err)
	}

	drawer.Settings = document.Values{"structure": map[string]any{"visibilityRule": "user.role =="}}
	if _, err := pagegen.Visible(drawer, providers); err == nil {
		t.Fatalf("expected malformed rule to fail")
	}
}
