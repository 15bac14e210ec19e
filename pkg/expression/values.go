package expression

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/goliatone/go-pagegen/pkg/document"
)

// ToString renders a value the way it is displayed on a page. nil renders as
// an empty string, integral floats drop their fraction, objects and sequences
// render as JSON.
func ToString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case []byte:
		return string(typed)
	case fmt.Stringer:
		return typed.String()
	}
	if number, ok := document.AsNumber(value); ok {
		return formatNumber(number)
	}
	if _, ok := document.AsValues(value); ok {
		return jsonString(value)
	}
	if _, ok := document.AsSlice(value); ok {
		return jsonString(value)
	}
	return fmt.Sprint(value)
}

func formatNumber(number float64) string {
	switch {
	case math.IsNaN(number):
		return "NaN"
	case math.IsInf(number, 1):
		return "Infinity"
	case math.IsInf(number, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(number, 'f', -1, 64)
}

func jsonString(value any) string {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(payload)
}

// ToNumber converts numbers, numeric strings and booleans into a float64. It
// reports false for nil, blank or non-numeric strings and containers.
func ToNumber(value any) (float64, bool) {
	if number, ok := document.AsNumber(value); ok {
		return number, true
	}
	switch typed := value.(type) {
	case bool:
		if typed {
			return 1, true
		}
		return 0, true
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, false
		}
		switch trimmed {
		case "Infinity", "+Infinity":
			return math.Inf(1), true
		case "-Infinity":
			return math.Inf(-1), true
		}
		number, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return number, true
	}
	return 0, false
}

// numeric is the arithmetic coercion: nil and blank strings are 0, anything
// unconvertible is NaN.
func numeric(value any) float64 {
	if value == nil {
		return 0
	}
	if text, ok := value.(string); ok && strings.TrimSpace(text) == "" {
		return 0
	}
	if number, ok := ToNumber(value); ok {
		return number
	}
	return math.NaN()
}

// Truthy follows page-scripting truthiness: nil, false, 0, NaN and "" are
// false; every object and sequence (even empty) is true.
func Truthy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	}
	if number, ok := document.AsNumber(value); ok {
		return number != 0 && !math.IsNaN(number)
	}
	return true
}

// StrictEqual compares values without type coercion, except that all numeric
// kinds compare by value.
func StrictEqual(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if l, ok := document.AsNumber(left); ok {
		r, ok := document.AsNumber(right)
		return ok && l == r
	}
	if isScalar(left) && isScalar(right) {
		return left == right
	}
	return reflect.DeepEqual(left, right)
}

// LooseEqual extends StrictEqual with number/string/bool coercion, so
// `count == "3"` and `enabled == "true"` hold.
func LooseEqual(left, right any) bool {
	if StrictEqual(left, right) {
		return true
	}
	if left == nil || right == nil {
		return false
	}
	if lb, ok := left.(bool); ok {
		return boolEquals(lb, right)
	}
	if rb, ok := right.(bool); ok {
		return boolEquals(rb, left)
	}
	if isScalar(left) && isScalar(right) {
		l, lok := ToNumber(left)
		r, rok := ToNumber(right)
		return lok && rok && l == r
	}
	return false
}

func boolEquals(flag bool, other any) bool {
	if text, ok := other.(string); ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(text))
		return err == nil && parsed == flag
	}
	if number, ok := document.AsNumber(other); ok {
		return (number != 0) == flag
	}
	return false
}

func isString(value any) bool {
	_, ok := value.(string)
	return ok
}

func isScalar(value any) bool {
	switch value.(type) {
	case nil, bool, string:
		return true
	}
	_, ok := document.AsNumber(value)
	return ok
}
