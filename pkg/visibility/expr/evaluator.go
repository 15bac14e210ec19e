package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-pagegen/pkg/expression"
	"github.com/goliatone/go-pagegen/pkg/pathutil"
	"github.com/goliatone/go-pagegen/pkg/visibility"
)

// Evaluator runs visibility rules through the safe expression engine.
//
// Any expression the engine accepts is a valid rule, for example:
//   - boolean checks: `enabled`, `!archived`
//   - comparisons: `field == true`, `role != "guest"`, `count >= 3`
//   - composition: `a == true && (b || extras.preview)`
//
// Values are read from visibility.Context.Values. Flattened keys such as
// "cta.headline" are expanded so `cta.headline` resolves either way. Extras
// are available under the `extras` identifier. Unknown identifiers evaluate
// to null, so a rule over a missing value hides the element instead of
// failing.
type Evaluator struct {
	engine *expression.Engine
}

// New constructs an Evaluator.
func New() *Evaluator {
	return &Evaluator{engine: expression.New(expression.WithUndefinedIdentifiers())}
}

// Eval reports whether the element at elementPath is visible. A blank rule is
// always visible.
func (e *Evaluator) Eval(elementPath, rule string, ctx visibility.Context) (bool, error) {
	if strings.TrimSpace(rule) == "" {
		return true, nil
	}
	value, err := e.engine.Evaluate(rule, variables(ctx))
	if err != nil {
		if elementPath != "" {
			return false, fmt.Errorf("visibility/expr: %s: %w", elementPath, err)
		}
		return false, fmt.Errorf("visibility/expr: %w", err)
	}
	return expression.Truthy(value), nil
}

// Validate compiles rule without evaluating it.
func (e *Evaluator) Validate(rule string) error {
	if strings.TrimSpace(rule) == "" {
		return nil
	}
	if _, err := e.engine.Compile(rule); err != nil {
		return fmt.Errorf("visibility/expr: %w", err)
	}
	return nil
}

func variables(ctx visibility.Context) expression.Vars {
	vars := make(map[string]any, len(ctx.Values)+1)

	var dotted []string
	for key, value := range ctx.Values {
		if strings.Contains(key, ".") {
			dotted = append(dotted, key)
			continue
		}
		vars[key] = value
	}

	sort.Strings(dotted)
	for _, key := range dotted {
		if _, exists := pathutil.Lookup(vars, key); exists {
			continue
		}
		vars = pathutil.Set(vars, key, ctx.Values[key])
	}

	if _, ok := vars["extras"]; !ok {
		extras := ctx.Extras
		if extras == nil {
			extras = map[string]any{}
		}
		vars["extras"] = extras
	}
	return expression.Vars(vars)
}
