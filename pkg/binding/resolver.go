// Package binding resolves declarative bindings against a provider bundle.
//
// A binding names where a displayed value comes from (a literal, a path into
// one of the providers, an expression, an API cache entry or the store) and
// an optional transform pipeline. Resolution never fails: every error path
// degrades to the binding's default value.
package binding

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-pagegen/pkg/document"
	"github.com/goliatone/go-pagegen/pkg/expression"
	"github.com/goliatone/go-pagegen/pkg/pathutil"
)

const (
	DefaultLocale   = "en-US"
	DefaultCurrency = "USD"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger overrides the logger used for unknown modes and failed
// expressions. A nil logger discards output.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) {
		if logger == nil {
			logger = log.New(io.Discard)
		}
		r.logger = logger
	}
}

// WithEvaluator overrides the expression engine.
func WithEvaluator(engine *expression.Engine) Option {
	return func(r *Resolver) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithLocale sets the fallback locale for currency and date formats.
func WithLocale(locale string) Option {
	return func(r *Resolver) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			r.locale = trimmed
		}
	}
}

// WithCurrency sets the fallback ISO 4217 currency code.
func WithCurrency(code string) Option {
	return func(r *Resolver) {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			r.currency = strings.ToUpper(trimmed)
		}
	}
}

// Resolver resolves bindings. It is immutable after construction and safe for
// concurrent use.
type Resolver struct {
	logger   *log.Logger
	engine   *expression.Engine
	locale   string
	currency string
}

// New constructs a Resolver.
func New(options ...Option) *Resolver {
	r := &Resolver{
		logger:   log.WithPrefix("pagegen/binding"),
		engine:   expression.New(),
		locale:   DefaultLocale,
		currency: DefaultCurrency,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

var defaultResolver = New()

// Resolve resolves b with the default resolver.
func Resolve(b document.Binding, providers Providers) any {
	return defaultResolver.Resolve(b, providers)
}

// Resolve returns the value b points at in providers, passed through the
// binding's transform when one is set.
func (r *Resolver) Resolve(b document.Binding, providers Providers) any {
	value := r.lookup(b, providers)
	if b.Transform != nil {
		value = r.transform(value, *b.Transform)
	}
	return value
}

// ResolveRaw decodes a raw `data.binding` payload and resolves it. Payloads
// that are not objects resolve to nil.
func (r *Resolver) ResolveRaw(raw any, providers Providers) any {
	b, err := document.DecodeBinding(raw)
	if err != nil {
		r.logger.Warn("ignoring malformed binding", "err", err)
		return nil
	}
	return r.Resolve(b, providers)
}

// ResolveAll resolves a named set of bindings against the same providers.
func (r *Resolver) ResolveAll(bindings map[string]document.Binding, providers Providers) map[string]any {
	out := make(map[string]any, len(bindings))
	for name, b := range bindings {
		out[name] = r.Resolve(b, providers)
	}
	return out
}

func (r *Resolver) lookup(b document.Binding, providers Providers) any {
	switch strings.TrimSpace(b.Mode) {
	case document.ModeStatic:
		if b.Value == nil {
			return b.DefaultValue
		}
		return b.Value

	case document.ModeDirect:
		provider, ok := providers.Lookup(sourceOrPage(b.Source))
		if !ok {
			return b.DefaultValue
		}
		return pathutil.Get(provider, b.Path, b.DefaultValue)

	case document.ModeContext:
		provider, ok := providers.Lookup(sourceOrPage(b.Source))
		if !ok {
			return b.DefaultValue
		}
		if strings.TrimSpace(b.Path) == "" {
			if provider == nil {
				return b.DefaultValue
			}
			return provider
		}
		return pathutil.Get(provider, b.Path, b.DefaultValue)

	case document.ModeExpression:
		value, err := r.engine.Evaluate(b.Expression, providers.Vars())
		if err != nil {
			r.logger.Debug("expression binding failed", "expression", b.Expression, "err", err)
			return b.DefaultValue
		}
		return value

	case document.ModeAPI:
		key := strings.TrimSpace(b.Endpoint)
		if key == "" {
			key = strings.TrimSpace(b.Source)
		}
		value, ok := providers.API[key]
		if !ok || value == nil {
			return b.DefaultValue
		}
		return value

	case document.ModeStore:
		return pathutil.Get(providers.Store, b.Path, b.DefaultValue)

	default:
		r.logger.Warn("unknown binding mode", "mode", b.Mode)
		return b.DefaultValue
	}
}

func sourceOrPage(source string) string {
	if strings.TrimSpace(source) == "" {
		return SourcePage
	}
	return source
}
