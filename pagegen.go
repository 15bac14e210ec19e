// Package pagegen is the entry point for working with page documents: loading,
// migrating legacy element types, validating and resolving data bindings.
// The subpackages under pkg/ expose the full option surface; the helpers here
// cover the common calls with default settings.
package pagegen

import (
	"github.com/goliatone/go-pagegen/pkg/binding"
	"github.com/goliatone/go-pagegen/pkg/document"
	"github.com/goliatone/go-pagegen/pkg/expression"
	"github.com/goliatone/go-pagegen/pkg/migrate"
	"github.com/goliatone/go-pagegen/pkg/pathutil"
	"github.com/goliatone/go-pagegen/pkg/validation"
	"github.com/goliatone/go-pagegen/pkg/visibility"
	visibilityexpr "github.com/goliatone/go-pagegen/pkg/visibility/expr"
)

// Document is a page: zones of rows of columns of elements.
type Document = document.Document

// Element is a node in the page tree.
type Element = document.Element

// Binding declares where a displayed value comes from.
type Binding = document.Binding

// Providers is the bundle of data sources bindings read from.
type Providers = binding.Providers

// ValidationResult aliases validation.Result.
type ValidationResult = validation.Result

// MigrationStats aliases migrate.Stats.
type MigrationStats = migrate.Stats

// LoadDocument reads a JSON or YAML page document from disk.
func LoadDocument(path string) (Document, error) {
	return document.LoadFile(path)
}

// ParseDocument decodes a JSON or YAML page document.
func ParseDocument(data []byte, source string) (Document, error) {
	return document.Parse(data, source)
}

// Resolve returns the value b produces against providers. It never fails;
// problems degrade to the binding's default value.
func Resolve(b Binding, providers Providers) any {
	return binding.Resolve(b, providers)
}

// Evaluate runs a sandboxed expression against vars.
func Evaluate(expr string, vars map[string]any) (any, error) {
	return expression.Evaluate(expr, vars)
}

// GetPath reads a dot path such as `user.tags.0` from root, returning def when
// any segment is missing.
func GetPath(root any, path string, def any) any {
	return pathutil.Get(root, path, def)
}

// SetPath returns a copy of root with value stored at path.
func SetPath(root map[string]any, path string, value any) map[string]any {
	return pathutil.Set(root, path, value)
}

// ValidateElement validates a top-level element and its nested structures.
func ValidateElement(el Element) ValidationResult {
	return validation.ValidateTree(el, validation.Context{})
}

// ValidatePage validates the document structure and every element.
func ValidatePage(doc Document) ValidationResult {
	return validation.ValidatePage(doc)
}

// MigrateElement upgrades one legacy element.
func MigrateElement(el Element) (Element, MigrationStats) {
	return migrate.MigrateElement(el, migrate.Context{})
}

// MigratePage upgrades every element of doc, preserving its layout.
func MigratePage(doc Document) (Document, MigrationStats) {
	return migrate.MigratePage(doc)
}

// Visible reports whether the visibility rule on el passes against providers.
// Elements without a rule are visible.
func Visible(el Element, providers Providers) (bool, error) {
	return visibility.EvaluateElement(visibilityexpr.New(), el.ID, el, visibility.Context{Values: providers.Vars()})
}
