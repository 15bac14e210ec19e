package validation

import (
	"fmt"

	"github.com/goliatone/go-pagegen/pkg/document"
)

// ValidatePage walks zones, rows, columns and elements. A document without
// zones yields a single error. Rows and columns are required; a column
// without elements is only a warning. Structure children are validated one
// depth level deeper than their parent.
func (v *Validator) ValidatePage(doc document.Document) Result {
	if doc.Zones == nil {
		return Result{Errors: []Issue{{Message: "page has no zones"}}}
	}

	result := valid()
	for z, zone := range doc.Zones {
		result = result.Merge(v.validateZone(z, zone))
	}
	return result
}

func (v *Validator) validateZone(z int, zone document.Zone) Result {
	if zone.Rows == nil {
		return Result{Errors: []Issue{{Path: fmt.Sprintf("zones[%d]", z), Message: "zone has no rows"}}}
	}

	result := valid()
	for r, row := range zone.Rows {
		if row.Columns == nil {
			result = result.Merge(Result{Errors: []Issue{{
				Path:    fmt.Sprintf("zones[%d].rows[%d]", z, r),
				Message: "row has no columns",
			}}})
			continue
		}
		for c, column := range row.Columns {
			if column.Elements == nil {
				result = result.Merge(Result{Valid: true, Warnings: []Issue{{
					Path:    fmt.Sprintf("zones[%d].rows[%d].columns[%d]", z, r, c),
					Message: "column has no elements",
				}}})
				continue
			}
			for e, el := range column.Elements {
				result = result.Merge(v.ValidateTree(el, Context{Path: ElementPath(z, r, c, e)}))
			}
		}
	}
	return result
}

// ValidateTree validates el and, for structures, every descendant one depth
// level deeper than its parent.
func (v *Validator) ValidateTree(el document.Element, ctx Context) Result {
	result := v.ValidateElement(el, ctx)
	if el.Type.Normalised() != document.KindStructure {
		return result
	}
	for i, child := range el.Elements {
		result = result.Merge(v.ValidateTree(child, ctx.Child(i)))
	}
	return result
}
