package migrate

import (
	"github.com/goliatone/go-pagegen/pkg/document"
)

// legacyInputKeys are consumed by the input migration and dropped from the
// flat settings.
var legacyInputKeys = []string{"inputType", "label", "placeholder", "required", "validation", "input", "field"}

// migrateInput turns a legacy input into a field. The field settings are
// built from the carried over label, placeholder and required flags, then the
// legacy validation object, then any existing field object.
func migrateInput(el document.Element) document.Element {
	legacy := el.Settings.Clone()
	if nested := legacy.Map("input"); nested != nil {
		for key, value := range nested {
			if _, exists := legacy[key]; !exists {
				legacy[key] = value
			}
		}
	}

	field := document.Values{}
	for _, key := range []string{"label", "placeholder", "required"} {
		if value, ok := legacy[key]; ok {
			field[key] = value
		}
	}
	for key, value := range legacy.Map("validation") {
		field[key] = value
	}
	for key, value := range legacy.Map("field") {
		field[key] = value
	}

	fieldType := legacy.String("inputType")
	if fieldType == "" {
		fieldType = field.String("fieldType")
	}
	if fieldType == "" {
		fieldType = "text"
	}
	field["fieldType"] = fieldType
	delete(field, "inputType")

	settings := legacy.Without(legacyInputKeys...)
	settings["field"] = map[string]any(field)

	return document.Element{
		ID:       el.ID,
		Type:     document.KindField,
		Settings: settings,
		Data:     el.Data.Clone(),
	}
}
