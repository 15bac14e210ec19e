// Package apicatalog lists the API endpoints a page may bind to. The
// catalogue is read from an OpenAPI 3 document; api bindings reference an
// endpoint by operation id, by "METHOD /path" or by bare path.
package apicatalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Endpoint describes one API operation.
type Endpoint struct {
	OperationID string `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Method      string `json:"method" yaml:"method"`
	Path        string `json:"path" yaml:"path"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Key returns the "METHOD /path" form of the endpoint.
func (e Endpoint) Key() string {
	return strings.ToUpper(e.Method) + " " + e.Path
}

// Options configures loading.
type Options struct {
	// Validate runs the OpenAPI document validation before collecting
	// operations.
	Validate bool
	// AllowEmpty accepts documents without operations.
	AllowEmpty bool
}

// Catalog is an immutable set of endpoints.
type Catalog struct {
	endpoints []Endpoint
	index     map[string]int
}

// FromEndpoints builds a catalogue from a fixed list.
func FromEndpoints(endpoints ...Endpoint) *Catalog {
	c := &Catalog{index: make(map[string]int, len(endpoints)*3)}
	for _, endpoint := range endpoints {
		endpoint.Method = strings.ToUpper(strings.TrimSpace(endpoint.Method))
		c.endpoints = append(c.endpoints, endpoint)
	}
	sort.SliceStable(c.endpoints, func(i, j int) bool {
		if c.endpoints[i].Path != c.endpoints[j].Path {
			return c.endpoints[i].Path < c.endpoints[j].Path
		}
		return c.endpoints[i].Method < c.endpoints[j].Method
	})
	for i, endpoint := range c.endpoints {
		if endpoint.OperationID != "" {
			c.index[endpoint.OperationID] = i
		}
		c.index[endpoint.Key()] = i
		if _, exists := c.index[endpoint.Path]; !exists {
			c.index[endpoint.Path] = i
		}
	}
	return c
}

// Load reads an OpenAPI 3 document from JSON or YAML data.
func Load(ctx context.Context, data []byte, opts Options) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("apicatalog: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("apicatalog: load document: %w", err)
	}
	if opts.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("apicatalog: validate: %w", err)
		}
	}

	var endpoints []Endpoint
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, operation := range item.Operations() {
				if operation == nil {
					continue
				}
				endpoints = append(endpoints, Endpoint{
					OperationID: operation.OperationID,
					Method:      method,
					Path:        path,
					Summary:     operation.Summary,
				})
			}
		}
	}
	if len(endpoints) == 0 && !opts.AllowEmpty {
		return nil, errors.New("apicatalog: document does not contain any operations")
	}
	return FromEndpoints(endpoints...), nil
}

// LoadFile reads an OpenAPI 3 document from disk.
func LoadFile(ctx context.Context, path string, opts Options) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("apicatalog: read %s: %w", path, err)
	}
	return Load(ctx, data, opts)
}

// Has reports whether key names a known endpoint.
func (c *Catalog) Has(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

// Lookup resolves an operation id, "METHOD /path" or bare path.
func (c *Catalog) Lookup(key string) (Endpoint, bool) {
	if c == nil {
		return Endpoint{}, false
	}
	key = strings.TrimSpace(key)
	if method, path, found := strings.Cut(key, " "); found {
		key = strings.ToUpper(method) + " " + strings.TrimSpace(path)
	}
	i, ok := c.index[key]
	if !ok {
		return Endpoint{}, false
	}
	return c.endpoints[i], true
}

// Endpoints returns the endpoints ordered by path then method.
func (c *Catalog) Endpoints() []Endpoint {
	if c == nil {
		return nil
	}
	out := make([]Endpoint, len(c.endpoints))
	copy(out, c.endpoints)
	return out
}

// Len returns the number of endpoints.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.endpoints)
}
