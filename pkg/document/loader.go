package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a serialization format for documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a document from JSON, falling back to YAML. source is only
// used in error messages.
func Parse(data []byte, source string) (Document, error) {
	var doc Document
	if err := decode(data, source, &doc); err != nil {
		return Document{}, err
	}
	normaliseDocument(&doc)
	return doc, nil
}

// ParseElement decodes a single element from JSON or YAML.
func ParseElement(data []byte, source string) (Element, error) {
	var el Element
	if err := decode(data, source, &el); err != nil {
		return Element{}, err
	}
	elements := []Element{el}
	normaliseElements(elements)
	return elements[0], nil
}

// ParseValues decodes an arbitrary object from JSON or YAML.
func ParseValues(data []byte, source string) (Values, error) {
	var out Values
	if err := decode(data, source, &out); err != nil {
		return nil, err
	}
	return normaliseValues(out), nil
}

// LoadFile reads and parses a document from disk.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("document: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses a document from the provided filesystem.
func LoadFS(fsys fs.FS, path string) (Document, error) {
	if fsys == nil {
		return Document{}, fmt.Errorf("document: filesystem is nil (reading %s)", path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Document{}, fmt.Errorf("document: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Marshal serializes a document in the requested format.
func Marshal(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("document: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("document: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON, "":
		payload, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("document: encode json: %w", err)
		}
		return append(payload, '\n'), nil
	default:
		return nil, fmt.Errorf("document: unsupported format %q", format)
	}
}

func decode(data []byte, source string, target any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("document: file %s is empty", source)
	}
	if err := json.Unmarshal(data, target); err == nil {
		return nil
	}
	if err := yaml.Unmarshal(data, target); err == nil {
		return nil
	}
	return fmt.Errorf("document: parse %s: invalid JSON or YAML", source)
}

func normaliseDocument(doc *Document) {
	doc.Metadata = normaliseValues(doc.Metadata)
	for z := range doc.Zones {
		for r := range doc.Zones[z].Rows {
			for c := range doc.Zones[z].Rows[r].Columns {
				normaliseElements(doc.Zones[z].Rows[r].Columns[c].Elements)
			}
		}
	}
}

func normaliseElements(elements []Element) {
	for i := range elements {
		elements[i].Settings = normaliseValues(elements[i].Settings)
		elements[i].Data = normaliseValues(elements[i].Data)
		normaliseElements(elements[i].Elements)
	}
}

// normaliseValues rewrites YAML's map[any]any nodes into map[string]any.
func normaliseValues(values Values) Values {
	if values == nil {
		return nil
	}
	for key, value := range values {
		values[key] = normaliseValue(value)
	}
	return values
}

func normaliseValue(value any) any {
	switch typed := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, nested := range typed {
			out[keyString(key)] = normaliseValue(nested)
		}
		return out
	case map[string]any:
		for key, nested := range typed {
			typed[key] = normaliseValue(nested)
		}
		return typed
	case []any:
		for i, nested := range typed {
			typed[i] = normaliseValue(nested)
		}
		return typed
	default:
		return value
	}
}
