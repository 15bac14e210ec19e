package expression

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-pagegen/pkg/document"
)

type function func(args []any) (any, error)

// functions is the complete allow-list of callable helpers.
var functions = map[string]function{
	"len":        fnLen,
	"upper":      stringFn(strings.ToUpper),
	"lower":      stringFn(strings.ToLower),
	"trim":       stringFn(strings.TrimSpace),
	"concat":     fnConcat,
	"contains":   fnContains,
	"startsWith": fnStartsWith,
	"endsWith":   fnEndsWith,
	"join":       fnJoin,
	"round":      numberFn(math.Round),
	"floor":      numberFn(math.Floor),
	"ceil":       numberFn(math.Ceil),
	"abs":        numberFn(math.Abs),
	"min":        extremumFn(math.Min),
	"max":        extremumFn(math.Max),
	"number":     fnNumber,
	"string":     fnString,
	"bool":       fnBool,
	"coalesce":   fnCoalesce,
}

// Functions lists the names callable from expressions.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	return names
}

func arity(args []any, want int) error {
	if len(args) != want {
		return fmt.Errorf("expected %d argument(s), got %d", want, len(args))
	}
	return nil
}

func fnLen(args []any) (any, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}
	switch typed := args[0].(type) {
	case nil:
		return float64(0), nil
	case string:
		return float64(utf8.RuneCountInString(typed)), nil
	}
	if values, ok := document.AsValues(args[0]); ok {
		return float64(len(values)), nil
	}
	if items, ok := document.AsSlice(args[0]); ok {
		return float64(len(items)), nil
	}
	return nil, fmt.Errorf("unsupported argument %T", args[0])
}

func stringFn(fn func(string) string) function {
	return func(args []any) (any, error) {
		if err := arity(args, 1); err != nil {
			return nil, err
		}
		return fn(ToString(args[0])), nil
	}
}

func numberFn(fn func(float64) float64) function {
	return func(args []any) (any, error) {
		if err := arity(args, 1); err != nil {
			return nil, err
		}
		return fn(numeric(args[0])), nil
	}
}

func extremumFn(pick func(a, b float64) float64) function {
	return func(args []any) (any, error) {
		if len(args) == 0 {
			return nil, errors.New("expected at least one argument")
		}
		if len(args) == 1 {
			if items, ok := document.AsSlice(args[0]); ok {
				args = items
			}
		}
		if len(args) == 0 {
			return nil, errors.New("expected at least one value")
		}
		result := numeric(args[0])
		for _, arg := range args[1:] {
			result = pick(result, numeric(arg))
		}
		return result, nil
	}
}

func fnConcat(args []any) (any, error) {
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(ToString(arg))
	}
	return b.String(), nil
}

func fnContains(args []any) (any, error) {
	if err := arity(args, 2); err != nil {
		return nil, err
	}
	if items, ok := document.AsSlice(args[0]); ok {
		for _, item := range items {
			if StrictEqual(item, args[1]) {
				return true, nil
			}
		}
		return false, nil
	}
	if values, ok := document.AsValues(args[0]); ok {
		_, found := values[ToString(args[1])]
		return found, nil
	}
	return strings.Contains(ToString(args[0]), ToString(args[1])), nil
}

func fnStartsWith(args []any) (any, error) {
	if err := arity(args, 2); err != nil {
		return nil, err
	}
	return strings.HasPrefix(ToString(args[0]), ToString(args[1])), nil
}

func fnEndsWith(args []any) (any, error) {
	if err := arity(args, 2); err != nil {
		return nil, err
	}
	return strings.HasSuffix(ToString(args[0]), ToString(args[1])), nil
}

func fnJoin(args []any) (any, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("expected 1 or 2 arguments, got %d", len(args))
	}
	items, ok := document.AsSlice(args[0])
	if !ok {
		return nil, fmt.Errorf("first argument must be a list, got %T", args[0])
	}
	sep := ","
	if len(args) == 2 {
		sep = ToString(args[1])
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = ToString(item)
	}
	return strings.Join(parts, sep), nil
}

func fnNumber(args []any) (any, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}
	return numeric(args[0]), nil
}

func fnString(args []any) (any, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}
	return ToString(args[0]), nil
}

func fnBool(args []any) (any, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}
	return Truthy(args[0]), nil
}

func fnCoalesce(args []any) (any, error) {
	for _, arg := range args {
		if arg != nil {
			return arg, nil
		}
	}
	return nil, nil
}
