package document

import (
	"fmt"
	"reflect"
	"strings"
)

// Values is a plain nested record as decoded from JSON or YAML. Nested objects
// are stored as map[string]any so both formats yield identical trees.
type Values map[string]any

// Get returns the raw value stored under key.
func (v Values) Get(key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	value, ok := v[key]
	return value, ok
}

// Has reports whether key holds a non-nil value.
func (v Values) Has(key string) bool {
	value, ok := v.Get(key)
	return ok && value != nil
}

// String returns the trimmed string stored under key, or "" when the value is
// missing or not a string.
func (v Values) String(key string) string {
	value, _ := v.Get(key)
	text, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

// Bool returns the boolean stored under key. Missing or non-boolean values
// report false.
func (v Values) Bool(key string) bool {
	value, _ := v.Get(key)
	flag, ok := value.(bool)
	return ok && flag
}

// Map returns the nested object stored under key, or nil.
func (v Values) Map(key string) Values {
	value, _ := v.Get(key)
	nested, _ := AsValues(value)
	return nested
}

// Clone returns a deep copy. Nested objects are copied as map[string]any and
// sequences as []any.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = CloneValue(value)
	}
	return out
}

// Without returns a shallow copy with the supplied keys removed.
func (v Values) Without(keys ...string) Values {
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	for _, key := range keys {
		delete(out, key)
	}
	return out
}

// CloneValue deep-copies maps and slices inside a decoded value tree. Scalars
// are returned as-is.
func CloneValue(value any) any {
	switch typed := value.(type) {
	case nil:
		return nil
	case Values:
		return map[string]any(typed.Clone())
	case map[string]any:
		return map[string]any(Values(typed).Clone())
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, nested := range typed {
			out[keyString(key)] = CloneValue(nested)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, nested := range typed {
			out[i] = CloneValue(nested)
		}
		return out
	default:
		return value
	}
}

// AsValues converts an object-shaped value into Values without copying.
func AsValues(value any) (Values, bool) {
	switch typed := value.(type) {
	case Values:
		return typed, typed != nil
	case map[string]any:
		return Values(typed), typed != nil
	case map[any]any:
		out := make(Values, len(typed))
		for key, nested := range typed {
			out[keyString(key)] = nested
		}
		return out, true
	default:
		return nil, false
	}
}

// AsSlice converts a sequence-shaped value into []any. Typed slices are
// converted through reflection.
func AsSlice(value any) ([]any, bool) {
	switch typed := value.(type) {
	case nil:
		return nil, false
	case []any:
		return typed, true
	case []string:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// AsNumber reports the numeric value of Go numeric kinds. Strings are not
// coerced.
func AsNumber(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int8:
		return float64(typed), true
	case int16:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case uint:
		return float64(typed), true
	case uint8:
		return float64(typed), true
	case uint16:
		return float64(typed), true
	case uint32:
		return float64(typed), true
	case uint64:
		return float64(typed), true
	default:
		return 0, false
	}
}

// IsBlank reports whether value is nil, an empty/whitespace string or an empty
// sequence.
func IsBlank(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	}
	if items, ok := AsSlice(value); ok {
		return len(items) == 0
	}
	return false
}

func keyString(key any) string {
	if text, ok := key.(string); ok {
		return text
	}
	return fmt.Sprint(key)
}
