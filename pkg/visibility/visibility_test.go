package visibility_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pagegen/pkg/document"
	"github.com/goliatone/go-pagegen/pkg/testsupport"
	"github.com/goliatone/go-pagegen/pkg/visibility"
	"github.com/goliatone/go-pagegen/pkg/visibility/expr"
)

func TestRuleOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		el   document.Element
		want string
	}{
		{"none", document.Element{Type: document.KindStructure}, ""},
		{
			"variant rule",
			document.Element{Type: document.KindStructure, Settings: document.Values{
				"structure":  map[string]any{"visibilityRule": "open", "visibility": "closed"},
				"visibility": "top",
			}},
			"open",
		},
		{
			"variant visibility",
			document.Element{Type: " structure", Settings: document.Values{
				"structure": map[string]any{"visibility": "closed"},
			}},
			"closed",
		},
		{
			"top-level fallback",
			document.Element{Type: document.KindMarkup, Settings: document.Values{"visibility": "top"}},
			"top",
		},
	}
	for _, tc := range cases {
		if got := visibility.RuleOf(tc.el); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestEvaluateElementUsesEvaluatorFunc(t *testing.T) {
	t.Parallel()

	var seen []string
	eval := visibility.EvaluatorFunc(func(elementPath, rule string, ctx visibility.Context) (bool, error) {
		seen = append(seen, elementPath+"|"+rule)
		return ctx.Extras["preview"] == true, nil
	})

	el := document.Element{Type: document.KindMarkup, Settings: document.Values{"visibility": "extras.preview"}}
	visible, err := visibility.EvaluateElement(eval, "hero", el, visibility.Context{Extras: map[string]any{"preview": true}})
	if err != nil {
		t.Fatalf("EvaluateElement returned error: %v", err)
	}
	if !visible {
		t.Fatalf("expected element to be visible")
	}
	if diff := cmp.Diff([]string{"hero|extras.preview"}, seen); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluatePageWalksStructureChildren(t *testing.T) {
	t.Parallel()

	modal := testsupport.MustLoadElement(t, "testdata/checkout.yaml")
	doc := document.Document{Zones: []document.Zone{{Rows: []document.Row{{Columns: []document.Column{{
		Elements: []document.Element{{Type: document.KindMarkup}, modal},
	}}}}}}}

	outcomes := visibility.EvaluatePage(expr.New(), doc, visibility.Context{
		Values: map[string]any{
			"page": map[string]any{"cart": map[string]any{"count": 2}},
			"user": map[string]any{"role": "member"},
		},
	})

	const base = "zones[0].rows[0].columns[0].elements[1]"
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %#v", outcomes)
	}
	want := []visibility.Outcome{
		{Path: base, Rule: `page.cart.count > 0 && user.role != "guest"`, Visible: true},
		{Path: base + ".elements[0]", Rule: "extras.preview", Visible: false},
	}
	if diff := cmp.Diff(want, outcomes[:2]); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
	broken := outcomes[2]
	if broken.Path != base+".elements[1]" || broken.Visible || broken.Error == "" {
		t.Fatalf("expected failing rule to hide its element, got %#v", broken)
	}
}

func TestEvaluatePagePropagatesEvaluatorErrors(t *testing.T) {
	t.Parallel()

	failure := errors.New("rules offline")
	eval := visibility.EvaluatorFunc(func(string, string, visibility.Context) (bool, error) {
		return true, failure
	})
	doc := document.Document{Zones: []document.Zone{{Rows: []document.Row{{Columns: []document.Column{{
		Elements: []document.Element{{Type: document.KindMarkup, Settings: document.Values{"visibility": "on"}}},
	}}}}}}}

	outcomes := visibility.EvaluatePage(eval, doc, visibility.Context{})
	want := []visibility.Outcome{{
		Path:  "zones[0].rows[0].columns[0].elements[0]",
		Rule:  "on",
		Error: "rules offline",
	}}
	if diff := cmp.Diff(want, outcomes); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
}
