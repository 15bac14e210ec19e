// Package validation checks page documents and individual elements.
//
// Validation never fails with an error: every rule contributes to a Result
// listing hard errors (the affected subtree must not be accepted) and
// warnings (usability or accessibility concerns). Sibling elements are
// always validated independently.
package validation

import (
	"github.com/goliatone/go-pagegen/pkg/document"
	"github.com/goliatone/go-pagegen/pkg/expression"
	"github.com/goliatone/go-pagegen/pkg/visibility"
	visibilityexpr "github.com/goliatone/go-pagegen/pkg/visibility/expr"
)

// Catalog reports whether an API endpoint is known. apicatalog.Catalog
// satisfies it.
type Catalog interface {
	Has(endpoint string) bool
}

// Sanitizer cleans markup content. *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(content string) string
}

// Option configures a Validator.
type Option func(*Validator)

// WithCatalog enables warnings for api bindings whose endpoint the catalog
// does not know.
func WithCatalog(catalog Catalog) Option {
	return func(v *Validator) {
		v.catalog = catalog
	}
}

// WithSanitizer replaces the markup content sanitizer. nil disables the
// content check.
func WithSanitizer(sanitizer Sanitizer) Option {
	return func(v *Validator) {
		v.sanitizer = sanitizer
	}
}

// WithRuleValidator replaces the checker used for modal and drawer
// visibility rules.
func WithRuleValidator(rules visibility.Validator) Option {
	return func(v *Validator) {
		if rules != nil {
			v.rules = rules
		}
	}
}

// Validator validates elements and pages. It is immutable after construction
// and safe for concurrent use.
type Validator struct {
	catalog   Catalog
	sanitizer Sanitizer
	rules     visibility.Validator
	engine    *expression.Engine
}

// New constructs a Validator. Markup content is checked against the UGC
// sanitisation policy unless WithSanitizer(nil) is passed.
func New(options ...Option) *Validator {
	v := &Validator{
		sanitizer: contentPolicy(),
		rules:     visibilityexpr.New(),
		engine:    expression.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

var defaultValidator = New()

// ValidateElement validates a single element with the default validator.
func ValidateElement(el document.Element, ctx Context) Result {
	return defaultValidator.ValidateElement(el, ctx)
}

// ValidateTree validates el and its structure descendants with the default
// validator.
func ValidateTree(el document.Element, ctx Context) Result {
	return defaultValidator.ValidateTree(el, ctx)
}

// ValidatePage validates a whole document with the default validator.
func ValidatePage(doc document.Document) Result {
	return defaultValidator.ValidatePage(doc)
}
