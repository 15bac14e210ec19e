package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// generic round-trips through JSON so YAML integers and JSON floats compare
// equal.
func generic(t *testing.T, value any) any {
	t.Helper()
	payload, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestLoadFileYAMLMatchesJSON(t *testing.T) {
	t.Parallel()

	fromYAML, err := LoadFile(filepath.Join("testdata", "page.yaml"))
	if err != nil {
		t.Fatalf("LoadFile yaml returned error: %v", err)
	}
	fromJSON, err := LoadFile(filepath.Join("testdata", "page.json"))
	if err != nil {
		t.Fatalf("LoadFile json returned error: %v", err)
	}

	if diff := cmp.Diff(generic(t, fromJSON), generic(t, fromYAML)); diff != "" {
		t.Fatalf("yaml/json mismatch (-json +yaml):\n%s", diff)
	}

	nested := fromYAML.Zones[0].Rows[0].Columns[0].Elements[1].Elements[0]
	binding, ok := nested.Data["binding"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested YAML objects to decode as map[string]any, got %T", nested.Data["binding"])
	}
	if binding["path"] != "user.name" {
		t.Fatalf("unexpected binding %#v", binding)
	}
	if fromYAML.ElementCount() != 3 {
		t.Fatalf("expected 3 elements, got %d", fromYAML.ElementCount())
	}
}

func TestLoadFSAndErrors(t *testing.T) {
	t.Parallel()

	doc, err := LoadFS(os.DirFS("testdata"), "page.json")
	if err != nil {
		t.Fatalf("LoadFS returned error: %v", err)
	}
	if doc.ID != "home" {
		t.Fatalf("unexpected id %q", doc.ID)
	}

	if _, err := Parse([]byte("   "), "blank.json"); err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty error, got %v", err)
	}
	if _, err := Parse([]byte("zones: [unclosed"), "bad.yaml"); err == nil || !strings.Contains(err.Error(), "invalid JSON or YAML") {
		t.Fatalf("expected parse error, got %v", err)
	}
	if _, err := LoadFile(filepath.Join("testdata", "missing.json")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := LoadFile(filepath.Join("testdata", "page.json"))
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	for _, format := range []Format{FormatJSON, FormatYAML} {
		payload, err := Marshal(doc, format)
		if err != nil {
			t.Fatalf("Marshal %s returned error: %v", format, err)
		}
		back, err := Parse(payload, "roundtrip."+string(format))
		if err != nil {
			t.Fatalf("Parse %s returned error: %v", format, err)
		}
		if diff := cmp.Diff(generic(t, doc), generic(t, back)); diff != "" {
			t.Fatalf("%s round trip mismatch (-want +got):\n%s", format, diff)
		}
	}

	if _, err := Marshal(doc, Format("toml")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
	if FormatFromPath("page.YML") != FormatYAML || FormatFromPath("page") != FormatJSON {
		t.Fatalf("unexpected format inference")
	}
}

func TestParseElementAndValues(t *testing.T) {
	t.Parallel()

	el, err := ParseElement([]byte("type: display\nsettings:\n  display:\n    iconName: star\n"), "el.yaml")
	if err != nil {
		t.Fatalf("ParseElement returned error: %v", err)
	}
	if el.Type != KindLegacyDisplay || el.Settings.Map("display").String("iconName") != "star" {
		t.Fatalf("unexpected element %#v", el)
	}

	values, err := ParseValues([]byte(`{"page": {"title": "x"}}`), "providers.json")
	if err != nil {
		t.Fatalf("ParseValues returned error: %v", err)
	}
	if values.Map("page").String("title") != "x" {
		t.Fatalf("unexpected values %#v", values)
	}
}
