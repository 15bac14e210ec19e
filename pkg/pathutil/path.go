// Package pathutil reads and writes nested values addressed by dot-notation
// paths such as "user.addresses.0.city". Integer segments index into
// sequences; every other segment is an object key.
package pathutil

import (
	"reflect"
	"strconv"
	"strings"
)

// MaxSequenceGrowth bounds how far past its end Set extends a sequence.
const MaxSequenceGrowth = 1024

// Split breaks a dot path into trimmed segments. A blank path yields nil.
func Split(path string) []string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, ".")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// Get walks root along path and returns the value found there. def is
// returned when root is nil, the path is blank, an intermediate node is
// missing or nil, or the final value is nil.
func Get(root any, path string, def any) any {
	segments := Split(path)
	if isNil(root) || len(segments) == 0 {
		return def
	}

	current := root
	for _, segment := range segments {
		if isNil(current) {
			return def
		}
		next, ok := step(current, segment)
		if !ok {
			return def
		}
		current = next
	}
	if isNil(current) {
		return def
	}
	return current
}

// Lookup is Get without a default: it reports whether a non-nil value exists
// at path.
func Lookup(root any, path string) (any, bool) {
	value := Get(root, path, nil)
	return value, value != nil
}

// Set returns a copy of root with value stored at path. Only the objects and
// sequences along the path are copied; everything else is shared with root.
// Missing intermediate segments are created as objects. A sequence index more
// than MaxSequenceGrowth past the end leaves that sequence unchanged.
func Set(root map[string]any, path string, value any) map[string]any {
	segments := Split(path)
	if len(segments) == 0 {
		out := make(map[string]any, len(root))
		for key, v := range root {
			out[key] = v
		}
		return out
	}
	if root == nil {
		root = map[string]any{}
	}
	updated, _ := setIn(root, segments, value).(map[string]any)
	return updated
}

func setIn(node any, segments []string, value any) any {
	if len(segments) == 0 {
		return value
	}
	segment := segments[0]

	switch typed := node.(type) {
	case []any:
		if idx, err := strconv.Atoi(segment); err == nil && idx >= 0 {
			size := len(typed)
			if idx >= size {
				if idx-size >= MaxSequenceGrowth {
					return append([]any(nil), typed...)
				}
				size = idx + 1
			}
			out := make([]any, size)
			copy(out, typed)
			out[idx] = setIn(out[idx], segments[1:], value)
			return out
		}
	case map[string]any:
		out := make(map[string]any, len(typed)+1)
		for key, v := range typed {
			out[key] = v
		}
		out[segment] = setIn(typed[segment], segments[1:], value)
		return out
	}

	if rv := reflect.ValueOf(node); rv.IsValid() && rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len()+1)
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		out[segment] = setIn(out[segment], segments[1:], value)
		return out
	}

	return map[string]any{segment: setIn(nil, segments[1:], value)}
}

func step(node any, segment string) (any, bool) {
	switch typed := node.(type) {
	case map[string]any:
		value, ok := typed[segment]
		return value, ok
	case map[string]string:
		value, ok := typed[segment]
		return value, ok
	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= len(typed) {
			return nil, false
		}
		return typed[idx], true
	}

	rv := reflect.ValueOf(node)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		value := rv.MapIndex(reflect.ValueOf(segment).Convert(rv.Type().Key()))
		if !value.IsValid() {
			return nil, false
		}
		return value.Interface(), true
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	default:
		return nil, false
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
