package document

// MaxStructureDepth is the deepest Structure-in-Structure level a page may
// contain. Depth 0 is a structure placed directly in a column.
const MaxStructureDepth = 3

// Document is the root of a page definition.
type Document struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	Zones    []Zone `json:"zones" yaml:"zones"`
	Metadata Values `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Zone is a named region of the page. Header/body/footer semantics belong to
// the caller.
type Zone struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Rows []Row  `json:"rows" yaml:"rows"`
}

// Row groups columns horizontally.
type Row struct {
	ID      string   `json:"id,omitempty" yaml:"id,omitempty"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// Column holds the elements rendered in a single cell of a row.
type Column struct {
	ID       string    `json:"id,omitempty" yaml:"id,omitempty"`
	Width    int       `json:"width,omitempty" yaml:"width,omitempty"`
	Elements []Element `json:"elements" yaml:"elements"`
}

// Element is one node of the document tree. Settings and Data hold the
// variant-specific configuration; Elements holds the children of a Structure.
type Element struct {
	ID       string    `json:"id,omitempty" yaml:"id,omitempty"`
	Type     Kind      `json:"type" yaml:"type"`
	Settings Values    `json:"settings,omitempty" yaml:"settings,omitempty"`
	Data     Values    `json:"data,omitempty" yaml:"data,omitempty"`
	Elements []Element `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// Variant returns the variant settings object (`settings.<type>`), or nil when
// it is absent or not an object.
func (e Element) Variant() Values {
	kind := e.Type.Normalised()
	if kind == "" {
		return nil
	}
	return e.Settings.Map(string(kind))
}

// Content returns the textual content carried in `data.content`.
func (e Element) Content() string {
	return e.Data.String("content")
}

// Label returns the first non-blank label found on the element, looking at
// the variant settings, the top-level settings and the data record.
func (e Element) Label() string {
	if label := e.Variant().String("label"); label != "" {
		return label
	}
	if label := e.Settings.String("label"); label != "" {
		return label
	}
	if label := e.Data.String("label"); label != "" {
		return label
	}
	return e.Data.String("title")
}

// Clone returns a deep copy of the element and its children.
func (e Element) Clone() Element {
	out := Element{
		ID:       e.ID,
		Type:     e.Type,
		Settings: e.Settings.Clone(),
		Data:     e.Data.Clone(),
	}
	if e.Elements != nil {
		out.Elements = make([]Element, len(e.Elements))
		for i, child := range e.Elements {
			out.Elements[i] = child.Clone()
		}
	}
	return out
}

// StructureDepth reports the length of the longest Structure-in-Structure
// chain below (and including) the element. Non-structure elements report 0,
// a structure without nested structures reports 1.
func (e Element) StructureDepth() int {
	if e.Type.Normalised() != KindStructure {
		return 0
	}
	deepest := 0
	for _, child := range e.Elements {
		if d := child.StructureDepth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// ElementCount returns the number of elements in the document, including
// nested structure children.
func (d Document) ElementCount() int {
	total := 0
	for _, zone := range d.Zones {
		for _, row := range zone.Rows {
			for _, column := range row.Columns {
				total += countElements(column.Elements)
			}
		}
	}
	return total
}

func countElements(elements []Element) int {
	total := len(elements)
	for _, el := range elements {
		total += countElements(el.Elements)
	}
	return total
}
