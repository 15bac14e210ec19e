package validation

import (
	"strings"
	"testing"

	"github.com/goliatone/go-pagegen/pkg/document"
)

func containsMessage(issues []Issue, fragment string) bool {
	for _, issue := range issues {
		if strings.Contains(issue.Message, fragment) {
			return true
		}
	}
	return false
}

func settings(kind string, values map[string]any) document.Values {
	return document.Values{kind: values}
}

func TestValidateElementMissingType(t *testing.T) {
	t.Parallel()

	result := ValidateElement(document.Element{}, Context{})
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	if len(result.Errors) != 1 || len(result.Warnings) != 0 {
		t.Fatalf("expected a single error, got %#v", result)
	}

	result = ValidateElement(document.Element{Type: "display"}, Context{})
	if result.Valid || !containsMessage(result.Errors, "must be migrated") {
		t.Fatalf("expected legacy type error, got %#v", result.Errors)
	}

	result = ValidateElement(document.Element{Type: "widget"}, Context{})
	if result.Valid || !containsMessage(result.Errors, "unknown element type") {
		t.Fatalf("expected unknown type error, got %#v", result.Errors)
	}
}

func TestValidateFieldMissingFieldType(t *testing.T) {
	t.Parallel()

	result := ValidateElement(document.Element{Type: document.KindField}, Context{})
	if result.Valid {
		t.Fatalf("expected invalid result")
	}
	if !containsMessage(result.Errors, "missing field type") {
		t.Fatalf("expected missing field type error, got %#v", result.Errors)
	}
	if !containsMessage(result.Warnings, "no label") {
		t.Fatalf("expected label warning, got %#v", result.Warnings)
	}
}

func TestValidateFieldRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		field map[string]any
		error string
	}{
		{"invalid type", map[string]any{"fieldType": "color", "label": "C"}, "invalid field type"},
		{"select without options", map[string]any{"fieldType": "select", "label": "S"}, "non-empty options"},
		{"radio empty options", map[string]any{"fieldType": "radio", "label": "R", "options": []any{}}, "non-empty options"},
		{"email bad pattern", map[string]any{"fieldType": "email", "label": "E", "pattern": "[a-z"}, "invalid email pattern"},
		{"email bad nested pattern", map[string]any{
			"fieldType": "email", "label": "E",
			"validation": map[string]any{"pattern": "(unclosed"},
		}, "invalid email pattern"},
		{"number min above max", map[string]any{"fieldType": "number", "label": "N", "min": 10, "max": 1}, "greater than max"},
		{"file accept type", map[string]any{"fieldType": "file", "label": "F", "accept": 12}, "accept must be a string"},
		{"file maxSize type", map[string]any{"fieldType": "file", "label": "F", "maxSize": "big"}, "maxSize must be a number"},
	}

	for _, tc := range cases {
		result := ValidateElement(document.Element{Type: document.KindField, Settings: settings("field", tc.field)}, Context{})
		if result.Valid {
			t.Fatalf("%s: expected invalid result", tc.name)
		}
		if !containsMessage(result.Errors, tc.error) {
			t.Fatalf("%s: expected error containing %q, got %#v", tc.name, tc.error, result.Errors)
		}
	}

	result := ValidateElement(document.Element{Type: document.KindField, Settings: settings("field", map[string]any{
		"fieldType": "email",
		"label":     "Email",
		"pattern":   `^[^@]+@[^@]+$`,
	})}, Context{})
	if !result.Valid || len(result.Warnings) != 0 {
		t.Fatalf("expected clean email field, got %#v", result)
	}
}

func TestValidateRecord(t *testing.T) {
	t.Parallel()

	result := ValidateElement(document.Element{
		Type:     document.KindRecord,
		Settings: settings("record", map[string]any{"recordType": "table"}),
	}, Context{})
	if !result.Valid {
		t.Fatalf("expected warnings only, got %#v", result.Errors)
	}
	if !containsMessage(result.Warnings, "no data binding") || !containsMessage(result.Warnings, "no fields") {
		t.Fatalf("expected binding and fields warnings, got %#v", result.Warnings)
	}

	cases := []struct {
		name    string
		binding any
		error   string
	}{
		{"string binding", "user.name", "must be an object"},
		{"bad mode", map[string]any{"mode": "graphql"}, "invalid binding mode"},
		{"api without endpoint", map[string]any{"mode": "api"}, "requires an endpoint"},
		{"store without key", map[string]any{"mode": "store"}, "store binding requires a key"},
	}
	for _, tc := range cases {
		result := ValidateElement(document.Element{
			Type: document.KindRecord,
			Data: document.Values{"binding": tc.binding},
		}, Context{})
		if result.Valid || !containsMessage(result.Errors, tc.error) {
			t.Fatalf("%s: expected error containing %q, got %#v", tc.name, tc.error, result.Errors)
		}
	}

	result = ValidateElement(document.Element{
		Type:     document.KindRecord,
		Settings: settings("record", map[string]any{"recordType": "gallery"}),
		Data:     document.Values{"binding": map[string]any{"mode": "direct", "path": "user"}},
	}, Context{})
	if result.Valid || !containsMessage(result.Errors, "invalid record type") {
		t.Fatalf("expected record type error, got %#v", result.Errors)
	}
}

func TestValidateRecordTypedBinding(t *testing.T) {
	t.Parallel()

	bindings := []any{
		document.Binding{Mode: "direct", Path: "x"},
		&document.Binding{Mode: "direct", Path: "x"},
	}
	for _, binding := range bindings {
		result := ValidateElement(document.Element{
			Type:     document.KindRecord,
			Settings: settings("record", map[string]any{"recordType": "table"}),
			Data:     document.Values{"binding": binding},
		}, Context{})
		if !result.Valid {
			t.Fatalf("expected %T binding to be valid, got %v", binding, result.ErrorMessages())
		}
	}

	result := ValidateElement(document.Element{
		Type: document.KindRecord,
		Data: document.Values{"binding": document.Binding{Mode: "store"}},
	}, Context{})
	if result.Valid || !containsMessage(result.Errors, "store binding requires a key") {
		t.Fatalf("expected store key error, got %#v", result.Errors)
	}
}

type staticCatalog map[string]bool

func (c staticCatalog) Has(endpoint string) bool { return c[endpoint] }

func TestValidateRecordBindingAdvisories(t *testing.T) {
	t.Parallel()

	validator := New(WithCatalog(staticCatalog{"listOrders": true}))

	result := validator.ValidateElement(document.Element{
		Type: document.KindRecord,
		Data: document.Values{"binding": map[string]any{"mode": "api", "endpoint": "listInvoices"}},
	}, Context{})
	if !result.Valid || !containsMessage(result.Warnings, `"listInvoices" is not declared`) {
		t.Fatalf("expected catalogue warning, got %#v", result)
	}

	result = validator.ValidateElement(document.Element{
		Type: document.KindRecord,
		Data: document.Values{"binding": map[string]any{"mode": "api", "endpoint": "listOrders"}},
	}, Context{})
	if !result.Valid || len(result.Warnings) != 0 {
		t.Fatalf("expected known endpoint to pass, got %#v", result)
	}

	result = validator.ValidateElement(document.Element{
		Type: document.KindRecord,
		Data: document.Values{"binding": map[string]any{"mode": "expression", "expression": "page.total +"}},
	}, Context{})
	if !result.Valid || !containsMessage(result.Warnings, "does not compile") {
		t.Fatalf("expected expression warning, got %#v", result)
	}
}

func TestValidateMarkup(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		markup  map[string]any
		content string
		error   string
		warning string
	}{
		{name: "missing type", markup: map[string]any{}, content: "x", error: "missing markup type"},
		{name: "invalid type", markup: map[string]any{"markupType": "marquee"}, content: "x", error: "invalid markup type"},
		{name: "empty paragraph", markup: map[string]any{"markupType": "paragraph"}, warning: "content is empty"},
		{name: "button without action", markup: map[string]any{"markupType": "button"}, content: "Go", warning: "has no action"},
		{name: "button bad action", markup: map[string]any{"markupType": "button", "action": "launch"}, content: "Go", error: "invalid button action"},
		{name: "link navigate without href", markup: map[string]any{"markupType": "link", "action": "navigate"}, content: "Docs", error: "requires an href"},
		{name: "icon without name", markup: map[string]any{"markupType": "icon"}, content: "star", error: "requires an iconName"},
		{name: "unsafe content", markup: map[string]any{"markupType": "paragraph"}, content: `<script>alert(1)</script>Hi`, warning: "sanitisation"},
	}

	for _, tc := range cases {
		el := document.Element{Type: document.KindMarkup, Settings: settings("markup", tc.markup)}
		if tc.content != "" {
			el.Data = document.Values{"content": tc.content}
		}
		result := ValidateElement(el, Context{})
		if tc.error != "" && (result.Valid || !containsMessage(result.Errors, tc.error)) {
			t.Fatalf("%s: expected error containing %q, got %#v", tc.name, tc.error, result.Errors)
		}
		if tc.warning != "" && !containsMessage(result.Warnings, tc.warning) {
			t.Fatalf("%s: expected warning containing %q, got %#v", tc.name, tc.warning, result.Warnings)
		}
	}

	divider := ValidateElement(document.Element{
		Type:     document.KindMarkup,
		Settings: settings("markup", map[string]any{"markupType": "divider"}),
	}, Context{})
	if !divider.Valid || len(divider.Warnings) != 0 {
		t.Fatalf("expected divider without content to be clean, got %#v", divider)
	}

	escaped := ValidateElement(document.Element{
		Type:     document.KindMarkup,
		Settings: settings("markup", map[string]any{"markupType": "paragraph"}),
		Data:     document.Values{"content": `Tom & Jerry's <b>show</b>`},
	}, Context{})
	if len(escaped.Warnings) != 0 {
		t.Fatalf("expected safe content to pass, got %#v", escaped.Warnings)
	}

	unchecked := New(WithSanitizer(nil)).ValidateElement(document.Element{
		Type:     document.KindMarkup,
		Settings: settings("markup", map[string]any{"markupType": "paragraph"}),
		Data:     document.Values{"content": `<script>x</script>`},
	}, Context{})
	if len(unchecked.Warnings) != 0 {
		t.Fatalf("expected sanitisation check to be disabled, got %#v", unchecked.Warnings)
	}
}

func TestValidateStructureDepth(t *testing.T) {
	t.Parallel()

	el := document.Element{
		Type:     document.KindStructure,
		Settings: settings("structure", map[string]any{"structureType": "div"}),
		Elements: []document.Element{{
			Type:     document.KindMarkup,
			Settings: settings("markup", map[string]any{"markupType": "paragraph"}),
			Data:     document.Values{"content": "hi"},
		}},
	}

	result := ValidateElement(el, Context{Depth: 4})
	if result.Valid {
		t.Fatalf("expected depth overrun to be invalid")
	}
	if !containsMessage(result.Errors, "exceeds maximum of 3") {
		t.Fatalf("expected depth error, got %#v", result.Errors)
	}

	if result := ValidateElement(el, Context{Depth: 3}); !result.Valid {
		t.Fatalf("expected depth 3 without nested structures to be valid, got %#v", result.Errors)
	}

	el.Elements = append(el.Elements, document.Element{
		Type:     document.KindStructure,
		Settings: settings("structure", map[string]any{"structureType": "stack"}),
	})
	result = ValidateElement(el, Context{Depth: 3})
	if result.Valid || !containsMessage(result.Errors, "cannot contain nested structures") {
		t.Fatalf("expected nested structure error at the limit, got %#v", result.Errors)
	}
}

func TestValidateStructureTypes(t *testing.T) {
	t.Parallel()

	tabs := ValidateElement(document.Element{
		Type:     document.KindStructure,
		Settings: settings("structure", map[string]any{"structureType": "tabs"}),
		Elements: []document.Element{
			{Type: document.KindMarkup, Settings: document.Values{"label": "First"}},
			{Type: document.KindMarkup},
			{Type: document.KindMarkup},
		},
	}, Context{})
	if !tabs.Valid || !containsMessage(tabs.Warnings, "2 tabs item(s) have no label") {
		t.Fatalf("expected unlabeled count warning, got %#v", tabs)
	}

	accordion := ValidateElement(document.Element{
		Type:     document.KindStructure,
		Settings: settings("structure", map[string]any{"structureType": "accordion"}),
	}, Context{})
	if !containsMessage(accordion.Warnings, "accordion has no items") {
		t.Fatalf("expected empty accordion warning, got %#v", accordion.Warnings)
	}

	grid := ValidateElement(document.Element{
		Type:     document.KindStructure,
		Settings: settings("structure", map[string]any{"structureType": "grid"}),
	}, Context{})
	if !containsMessage(grid.Warnings, "no columns") {
		t.Fatalf("expected grid warning, got %#v", grid.Warnings)
	}

	flex := ValidateElement(document.Element{
		Type:     document.KindStructure,
		Settings: settings("structure", map[string]any{"structureType": "flex", "direction": "diagonal"}),
	}, Context{})
	if flex.Valid || !containsMessage(flex.Errors, "invalid flex direction") {
		t.Fatalf("expected flex direction error, got %#v", flex.Errors)
	}

	modal := ValidateElement(document.Element{
		Type:     document.KindStructure,
		Settings: settings("structure", map[string]any{"structureType": "modal"}),
	}, Context{})
	if !modal.Valid || !containsMessage(modal.Warnings, "no visibility rule") {
		t.Fatalf("expected modal warning, got %#v", modal)
	}

	drawer := ValidateElement(document.Element{
		Type:     document.KindStructure,
		Settings: settings("structure", map[string]any{"structureType": "drawer", "visibilityRule": "open =="}),
	}, Context{})
	if !drawer.Valid || !containsMessage(drawer.Warnings, "does not compile") {
		t.Fatalf("expected drawer rule warning, got %#v", drawer)
	}

	missing := ValidateElement(document.Element{Type: document.KindStructure}, Context{})
	if missing.Valid || !containsMessage(missing.Errors, "missing structure type") {
		t.Fatalf("expected missing structure type error, got %#v", missing.Errors)
	}
}

func TestIssuePrefixes(t *testing.T) {
	t.Parallel()

	result := ValidateElement(document.Element{Type: document.KindField}, Context{Depth: 2, Path: "zones[0].rows[0].columns[0].elements[0].elements[1]"})
	if len(result.Errors) == 0 {
		t.Fatalf("expected errors")
	}
	issue := result.Errors[0]
	if !strings.HasPrefix(issue.Message, "depth 2: ") {
		t.Fatalf("expected depth prefix, got %q", issue.Message)
	}
	if !strings.HasPrefix(issue.String(), "zones[0].rows[0].columns[0].elements[0].elements[1]: ") {
		t.Fatalf("expected position prefix, got %q", issue.String())
	}
}
