package document

import "strings"

// Kind discriminates element variants.
type Kind string

const (
	KindField     Kind = "field"
	KindRecord    Kind = "record"
	KindMarkup    Kind = "markup"
	KindStructure Kind = "structure"

	// Legacy categories understood by the migrator. "structure" is shared by
	// both type systems.
	KindLegacyDisplay Kind = "display"
	KindLegacyInput   Kind = "input"
)

// Normalised returns k without surrounding whitespace.
func (k Kind) Normalised() Kind {
	return Kind(strings.TrimSpace(string(k)))
}

// Current reports whether the kind belongs to the current 4-category system.
func (k Kind) Current() bool {
	switch k {
	case KindField, KindRecord, KindMarkup, KindStructure:
		return true
	default:
		return false
	}
}

// Legacy reports whether the kind belongs to the legacy 3-category system.
func (k Kind) Legacy() bool {
	switch k {
	case KindLegacyDisplay, KindLegacyInput, KindStructure:
		return true
	default:
		return false
	}
}

// Enum is an ordered set of accepted string values.
type Enum []string

// Contains reports whether value is a member of the enumeration.
func (e Enum) Contains(value string) bool {
	for _, candidate := range e {
		if candidate == value {
			return true
		}
	}
	return false
}

// String joins the members for use in messages.
func (e Enum) String() string {
	return strings.Join(e, ", ")
}

var (
	FieldTypes = Enum{
		"text", "email", "password", "number", "tel", "url", "textarea",
		"select", "checkbox", "radio", "date", "time", "datetime", "file",
	}
	RecordTypes = Enum{"display", "card", "table", "list"}
	MarkupTypes = Enum{
		"title", "heading", "paragraph", "button", "link", "image", "icon",
		"nav-item", "divider",
	}
	StructureTypes = Enum{
		"div", "stack", "grid", "flex", "card", "panel", "tabs", "accordion",
		"modal", "drawer", "carousel", "canvas",
	}
	BindingModes   = Enum{"static", "direct", "expression", "context", "api", "store"}
	MarkupActions  = Enum{"navigate", "submit", "custom", "download"}
	FlexDirections = Enum{"row", "column", "row-reverse", "column-reverse"}
)
