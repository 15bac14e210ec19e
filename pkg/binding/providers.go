package binding

import (
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-pagegen/pkg/document"
	"github.com/goliatone/go-pagegen/pkg/expression"
)

// Provider names addressable from a binding `source`.
const (
	SourcePage   = "page"
	SourceUser   = "user"
	SourceSystem = "system"
	SourceAPI    = "api"
	SourceStore  = "store"
)

// Providers is the fixed set of data sources a binding may read from. The
// caller owns and refreshes every tree; resolution only reads a snapshot.
type Providers struct {
	Page   map[string]any `json:"page,omitempty" yaml:"page,omitempty"`
	User   map[string]any `json:"user,omitempty" yaml:"user,omitempty"`
	System map[string]any `json:"system,omitempty" yaml:"system,omitempty"`
	// API is keyed by endpoint.
	API   map[string]any `json:"api,omitempty" yaml:"api,omitempty"`
	Store map[string]any `json:"store,omitempty" yaml:"store,omitempty"`
}

// Lookup returns the provider registered under name. Unknown names report
// false.
func (p Providers) Lookup(name string) (map[string]any, bool) {
	switch strings.TrimSpace(name) {
	case SourcePage:
		return p.Page, true
	case SourceUser:
		return p.User, true
	case SourceSystem:
		return p.System, true
	case SourceAPI:
		return p.API, true
	case SourceStore:
		return p.Store, true
	default:
		return nil, false
	}
}

// Vars exposes the providers as expression variables. Missing providers are
// empty objects so `user.name` evaluates to null instead of failing.
func (p Providers) Vars() expression.Vars {
	return expression.Vars{
		SourcePage:   orEmpty(p.Page),
		SourceUser:   orEmpty(p.User),
		SourceSystem: orEmpty(p.System),
		SourceAPI:    orEmpty(p.API),
		SourceStore:  orEmpty(p.Store),
	}
}

func orEmpty(values map[string]any) map[string]any {
	if values == nil {
		return map[string]any{}
	}
	return values
}

// ProvidersFromValues reads a provider bundle from a plain record with the
// keys page, user, system, api and store. Other keys are ignored.
func ProvidersFromValues(values map[string]any) Providers {
	bundle := document.Values(values)
	return Providers{
		Page:   plain(bundle.Map(SourcePage)),
		User:   plain(bundle.Map(SourceUser)),
		System: plain(bundle.Map(SourceSystem)),
		API:    plain(bundle.Map(SourceAPI)),
		Store:  plain(bundle.Map(SourceStore)),
	}
}

func plain(values document.Values) map[string]any {
	if values == nil {
		return nil
	}
	return map[string]any(values)
}

// ParseProviders decodes a JSON or YAML provider bundle.
func ParseProviders(data []byte, source string) (Providers, error) {
	values, err := document.ParseValues(data, source)
	if err != nil {
		return Providers{}, fmt.Errorf("binding: providers: %w", err)
	}
	return ProvidersFromValues(values), nil
}

// LoadProviders reads a provider bundle from disk.
func LoadProviders(path string) (Providers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Providers{}, fmt.Errorf("binding: read providers %s: %w", path, err)
	}
	return ParseProviders(data, path)
}

// WithSystem returns a copy of p with extra merged into the system provider.
// Existing system keys win.
func (p Providers) WithSystem(extra map[string]any) Providers {
	if len(extra) == 0 {
		return p
	}
	merged := make(map[string]any, len(p.System)+len(extra))
	for key, value := range extra {
		merged[key] = value
	}
	for key, value := range p.System {
		merged[key] = value
	}
	p.System = merged
	return p
}
