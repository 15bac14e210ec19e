package document

import (
	"errors"
	"fmt"
)

// Binding mode identifiers.
const (
	ModeStatic     = "static"
	ModeDirect     = "direct"
	ModeExpression = "expression"
	ModeContext    = "context"
	ModeAPI        = "api"
	ModeStore      = "store"
)

// Binding declares where a displayed value comes from. It is immutable data;
// resolving it is idempotent for identical providers. A nil Value or
// DefaultValue means "undefined".
type Binding struct {
	Mode         string     `json:"mode" yaml:"mode"`
	Value        any        `json:"value,omitempty" yaml:"value,omitempty"`
	Source       string     `json:"source,omitempty" yaml:"source,omitempty"`
	Path         string     `json:"path,omitempty" yaml:"path,omitempty"`
	Expression   string     `json:"expression,omitempty" yaml:"expression,omitempty"`
	Endpoint     string     `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	DefaultValue any        `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Transform    *Transform `json:"transform,omitempty" yaml:"transform,omitempty"`
}

// Transform is the formatting pipeline applied to a resolved value: format,
// then prefix, then suffix, then DefaultValue when the value is still nil.
type Transform struct {
	Format       string `json:"format,omitempty" yaml:"format,omitempty"`
	Prefix       string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix       string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	DefaultValue any    `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Locale       string `json:"locale,omitempty" yaml:"locale,omitempty"`
	Currency     string `json:"currency,omitempty" yaml:"currency,omitempty"`
}

// ErrBindingShape reports a binding payload that is not an object.
var ErrBindingShape = errors.New("document: binding must be an object")

// DecodeBinding converts a raw `data.binding` payload into a Binding. Typed
// bindings pass through; objects are read field by field; anything else
// returns ErrBindingShape.
func DecodeBinding(raw any) (Binding, error) {
	switch typed := raw.(type) {
	case Binding:
		return typed, nil
	case *Binding:
		if typed == nil {
			return Binding{}, ErrBindingShape
		}
		return *typed, nil
	}

	values, ok := AsValues(raw)
	if !ok {
		return Binding{}, fmt.Errorf("%w (got %T)", ErrBindingShape, raw)
	}

	binding := Binding{
		Mode:         values.String("mode"),
		Value:        values["value"],
		Source:       values.String("source"),
		Path:         values.String("path"),
		Expression:   values.String("expression"),
		Endpoint:     values.String("endpoint"),
		DefaultValue: values["defaultValue"],
	}
	if transform := values.Map("transform"); transform != nil {
		binding.Transform = &Transform{
			Format:       transform.String("format"),
			Prefix:       stringOrEmpty(transform["prefix"]),
			Suffix:       stringOrEmpty(transform["suffix"]),
			DefaultValue: transform["defaultValue"],
			Locale:       transform.String("locale"),
			Currency:     transform.String("currency"),
		}
	}
	return binding, nil
}

// ToValues renders the binding as a plain record, omitting unset fields.
func (b Binding) ToValues() map[string]any {
	out := map[string]any{"mode": b.Mode}
	if b.Value != nil {
		out["value"] = CloneValue(b.Value)
	}
	if b.Source != "" {
		out["source"] = b.Source
	}
	if b.Path != "" {
		out["path"] = b.Path
	}
	if b.Expression != "" {
		out["expression"] = b.Expression
	}
	if b.Endpoint != "" {
		out["endpoint"] = b.Endpoint
	}
	if b.DefaultValue != nil {
		out["defaultValue"] = CloneValue(b.DefaultValue)
	}
	if b.Transform != nil {
		out["transform"] = b.Transform.ToValues()
	}
	return out
}

// ToValues renders the transform as a plain record, omitting unset fields.
func (t Transform) ToValues() map[string]any {
	out := map[string]any{}
	if t.Format != "" {
		out["format"] = t.Format
	}
	if t.Prefix != "" {
		out["prefix"] = t.Prefix
	}
	if t.Suffix != "" {
		out["suffix"] = t.Suffix
	}
	if t.DefaultValue != nil {
		out["defaultValue"] = CloneValue(t.DefaultValue)
	}
	if t.Locale != "" {
		out["locale"] = t.Locale
	}
	if t.Currency != "" {
		out["currency"] = t.Currency
	}
	return out
}

// prefixes and suffixes keep surrounding whitespace.
func stringOrEmpty(value any) string {
	text, _ := value.(string)
	return text
}
