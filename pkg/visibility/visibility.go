package visibility

import (
	"fmt"

	"github.com/goliatone/go-pagegen/pkg/document"
)

// Evaluator decides whether an element is shown, given a rule string and the
// values currently bound to the page.
type Evaluator interface {
	Eval(elementPath, rule string, ctx Context) (bool, error)
}

// Validator is implemented by evaluators that can check a rule without
// evaluating it. Page validation uses it to report malformed rules.
type Validator interface {
	Validate(rule string) error
}

// Context provides inputs to an Evaluator. Values usually holds the page data
// provider while Extras carries caller supplied context such as user roles or
// feature flags, exposed to rules as `extras`.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(elementPath, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(elementPath, rule string, ctx Context) (bool, error) {
	return fn(elementPath, rule, ctx)
}

// RuleOf returns the visibility rule declared on el. The variant settings win
// over the top-level settings, and `visibilityRule` wins over `visibility`.
func RuleOf(el document.Element) string {
	for _, values := range []document.Values{el.Variant(), el.Settings} {
		if rule := values.String("visibilityRule"); rule != "" {
			return rule
		}
		if rule := values.String("visibility"); rule != "" {
			return rule
		}
	}
	return ""
}

// Outcome is the evaluated visibility of one element that declares a rule.
type Outcome struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Visible bool   `json:"visible"`
	Error   string `json:"error,omitempty"`
}

// EvaluateElement evaluates the rule on el. Elements without a rule are
// visible.
func EvaluateElement(e Evaluator, elementPath string, el document.Element, ctx Context) (bool, error) {
	return e.Eval(elementPath, RuleOf(el), ctx)
}

// EvaluatePage evaluates every element of doc that declares a rule, structure
// children included, in document order. A failing rule hides its element and
// is reported in the outcome.
func EvaluatePage(e Evaluator, doc document.Document, ctx Context) []Outcome {
	var out []Outcome
	for z, zone := range doc.Zones {
		for r, row := range zone.Rows {
			for c, column := range row.Columns {
				for i, el := range column.Elements {
					path := fmt.Sprintf("zones[%d].rows[%d].columns[%d].elements[%d]", z, r, c, i)
					out = evaluateTree(e, path, el, ctx, out)
				}
			}
		}
	}
	return out
}

func evaluateTree(e Evaluator, path string, el document.Element, ctx Context, out []Outcome) []Outcome {
	if rule := RuleOf(el); rule != "" {
		outcome := Outcome{Path: path, Rule: rule}
		visible, err := e.Eval(path, rule, ctx)
		if err != nil {
			outcome.Error = err.Error()
		} else {
			outcome.Visible = visible
		}
		out = append(out, outcome)
	}
	if el.Type.Normalised() != document.KindStructure {
		return out
	}
	for i, child := range el.Elements {
		out = evaluateTree(e, fmt.Sprintf("%s.elements[%d]", path, i), child, ctx, out)
	}
	return out
}
