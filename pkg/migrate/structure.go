package migrate

import (
	"github.com/goliatone/go-pagegen/pkg/document"
)

// containerTypes maps legacy container types to structure types.
var containerTypes = map[string]string{
	"container": "div",
	"section":   "div",
	"header":    "div",
	"footer":    "div",
	"hero":      "card",
	"nav":       "stack",
}

// migrateStructure normalises structure settings and migrates the children.
// The returned stats cover the children and any warning about the element
// itself, but not the element's own count.
func (m *Migrator) migrateStructure(el document.Element, ctx Context) (document.Element, Stats) {
	var stats Stats

	settings := el.Settings.Clone()
	if settings == nil {
		settings = document.Values{}
	}
	structure := settings.Map("structure").Clone()
	if structure == nil {
		structure = document.Values{}
	}

	containerType := settings.String("containerType")
	if containerType == "" {
		containerType = structure.String("containerType")
	}

	switch {
	case containerType != "":
		mapped, ok := containerTypes[containerType]
		switch {
		case ok:
		case document.StructureTypes.Contains(containerType):
			mapped = containerType
		default:
			mapped = "div"
			stats.Warnings = append(stats.Warnings, ctx.message("unknown container type %q mapped to div", containerType))
		}
		structure["structureType"] = mapped
	case structure.String("structureType") == "":
		structure["structureType"] = "div"
		stats.Warnings = append(stats.Warnings, ctx.message("structure has no type, defaulted to div"))
	}

	delete(settings, "containerType")
	delete(structure, "containerType")
	settings["structure"] = map[string]any(structure)

	out := document.Element{
		ID:       el.ID,
		Type:     document.KindStructure,
		Settings: settings,
		Data:     el.Data.Clone(),
	}
	if el.Elements != nil {
		out.Elements = make([]document.Element, len(el.Elements))
		for i, child := range el.Elements {
			var childStats Stats
			out.Elements[i], childStats = m.MigrateElement(child, ctx.child(i))
			stats = stats.Merge(childStats)
		}
	}
	return out, stats
}
