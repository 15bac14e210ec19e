package validation

import (
	"regexp"

	"github.com/goliatone/go-pagegen/pkg/document"
	"github.com/goliatone/go-pagegen/pkg/expression"
	"github.com/goliatone/go-pagegen/pkg/visibility"
)

// ValidateElement validates el on its own. Structure children are not
// visited; ValidatePage walks them.
func (v *Validator) ValidateElement(el document.Element, ctx Context) Result {
	r := &report{ctx: ctx}

	kind := el.Type.Normalised()
	switch {
	case kind == "":
		r.errorf("element is missing or has no type")
		return r.result()
	case kind == document.KindField:
		v.validateField(r, el)
	case kind == document.KindRecord:
		v.validateRecord(r, el)
	case kind == document.KindMarkup:
		v.validateMarkup(r, el)
	case kind == document.KindStructure:
		v.validateStructure(r, el)
	case kind.Legacy():
		r.errorf("legacy element type %q must be migrated", kind)
	default:
		r.errorf("unknown element type %q (expected one of: field, record, markup, structure)", kind)
	}
	return r.result()
}

func (v *Validator) validateField(r *report, el document.Element) {
	field := el.Settings.Map("field")

	fieldType := field.String("fieldType")
	switch {
	case fieldType == "":
		r.errorf("missing field type (settings.field.fieldType)")
	case !document.FieldTypes.Contains(fieldType):
		r.errorf("invalid field type %q (expected one of: %s)", fieldType, document.FieldTypes)
	}

	if field.String("label") == "" {
		r.warnf("field has no label")
	}

	switch fieldType {
	case "select", "radio":
		options, ok := document.AsSlice(field["options"])
		if !ok || len(options) == 0 {
			r.errorf("%s field requires a non-empty options list", fieldType)
		}

	case "email":
		if raw, ok := emailPattern(field); ok {
			pattern, isString := raw.(string)
			if !isString {
				r.errorf("email pattern must be a string, got %T", raw)
			} else if _, err := regexp.Compile(pattern); err != nil {
				r.errorf("invalid email pattern %q: %v", pattern, err)
			}
		}

	case "number":
		lo, hasMin := expression.ToNumber(field["min"])
		hi, hasMax := expression.ToNumber(field["max"])
		if hasMin && hasMax && lo > hi {
			r.errorf("number field min (%v) is greater than max (%v)", field["min"], field["max"])
		}

	case "file":
		if accept, ok := field["accept"]; ok && accept != nil {
			if _, isString := accept.(string); !isString {
				r.errorf("file accept must be a string, got %T", accept)
			}
		}
		if maxSize, ok := field["maxSize"]; ok && maxSize != nil {
			if _, isNumber := document.AsNumber(maxSize); !isNumber {
				r.errorf("file maxSize must be a number, got %T", maxSize)
			}
		}
	}
}

func emailPattern(field document.Values) (any, bool) {
	if raw, ok := field["pattern"]; ok && raw != nil {
		return raw, true
	}
	if raw, ok := field.Map("validation")["pattern"]; ok && raw != nil {
		return raw, true
	}
	return nil, false
}

func (v *Validator) validateRecord(r *report, el document.Element) {
	record := el.Settings.Map("record")

	recordType := record.String("recordType")
	if recordType != "" && !document.RecordTypes.Contains(recordType) {
		r.errorf("invalid record type %q (expected one of: %s)", recordType, document.RecordTypes)
	}

	raw, hasBinding := el.Data.Get("binding")
	if !hasBinding || raw == nil {
		r.warnf("record has no data binding")
	} else {
		v.validateBinding(r, raw)
	}

	if recordType == "table" || recordType == "list" {
		if _, ok := record["fields"]; !ok {
			r.warnf("%s record has no fields", recordType)
		}
	}
}

func (v *Validator) validateBinding(r *report, raw any) {
	switch typed := raw.(type) {
	case document.Binding:
		raw = typed.ToValues()
	case *document.Binding:
		if typed != nil {
			raw = typed.ToValues()
		}
	}
	values, ok := document.AsValues(raw)
	if !ok {
		r.errorf("record binding must be an object, got %T", raw)
		return
	}

	mode := values.String("mode")
	if !document.BindingModes.Contains(mode) {
		r.errorf("invalid binding mode %q (expected one of: %s)", mode, document.BindingModes)
		return
	}

	switch mode {
	case document.ModeAPI:
		endpoint := values.String("endpoint")
		if endpoint == "" {
			endpoint = values.String("source")
		}
		if endpoint == "" {
			r.errorf("api binding requires an endpoint or source")
			return
		}
		if v.catalog != nil && !v.catalog.Has(endpoint) {
			r.warnf("api binding endpoint %q is not declared in the API catalogue", endpoint)
		}

	case document.ModeStore:
		if values.String("path") == "" && values.String("key") == "" {
			r.errorf("store binding requires a key (path)")
		}

	case document.ModeExpression:
		text := values.String("expression")
		if text == "" {
			r.warnf("expression binding has no expression")
			return
		}
		if _, err := v.engine.Compile(text); err != nil {
			r.warnf("expression binding does not compile: %v", err)
		}
	}
}

func (v *Validator) validateMarkup(r *report, el document.Element) {
	markup := el.Settings.Map("markup")

	markupType := markup.String("markupType")
	switch {
	case markupType == "":
		r.errorf("missing markup type (settings.markup.markupType)")
	case !document.MarkupTypes.Contains(markupType):
		r.errorf("invalid markup type %q (expected one of: %s)", markupType, document.MarkupTypes)
	}

	content := el.Content()
	if content == "" && markupType != "divider" {
		r.warnf("markup content is empty")
	}
	if content != "" && v.sanitizer != nil && altered(v.sanitizer, content) {
		r.warnf("markup content contains HTML that will be removed by sanitisation")
	}

	switch markupType {
	case "button", "link":
		action := markup.String("action")
		switch {
		case action == "":
			r.warnf("%s has no action", markupType)
		case !document.MarkupActions.Contains(action):
			r.errorf("invalid %s action %q (expected one of: %s)", markupType, action, document.MarkupActions)
		case action == "navigate" && markup.String("href") == "":
			r.errorf("%s with navigate action requires an href", markupType)
		}

	case "image":
		if markup.String("src") == "" {
			r.errorf("image requires a src")
		}
		if markup.String("alt") == "" {
			r.warnf("image has no alt text")
		}

	case "icon":
		if markup.String("iconName") == "" {
			r.errorf("icon requires an iconName")
		}
	}
}

func (v *Validator) validateStructure(r *report, el document.Element) {
	structure := el.Settings.Map("structure")

	structureType := structure.String("structureType")
	switch {
	case structureType == "":
		r.errorf("missing structure type (settings.structure.structureType)")
	case !document.StructureTypes.Contains(structureType):
		r.errorf("invalid structure type %q (expected one of: %s)", structureType, document.StructureTypes)
	}

	depth := r.ctx.Depth
	if depth > document.MaxStructureDepth {
		r.errorf("structure nesting depth %d exceeds maximum of %d", depth, document.MaxStructureDepth)
	}
	if depth >= document.MaxStructureDepth && hasStructureChild(el) {
		r.errorf("structure at maximum depth %d cannot contain nested structures", document.MaxStructureDepth)
	}

	switch structureType {
	case "tabs", "accordion":
		if len(el.Elements) == 0 {
			r.warnf("%s has no items", structureType)
			break
		}
		unlabeled := 0
		for _, child := range el.Elements {
			if child.Label() == "" {
				unlabeled++
			}
		}
		if unlabeled > 0 {
			r.warnf("%d %s item(s) have no label", unlabeled, structureType)
		}

	case "grid":
		if _, ok := structure["columns"]; !ok {
			r.warnf("grid has no columns setting")
		}

	case "flex":
		direction := structure.String("direction")
		if _, set := structure["direction"]; set && !document.FlexDirections.Contains(direction) {
			r.errorf("invalid flex direction %q (expected one of: %s)", direction, document.FlexDirections)
		}

	case "modal", "drawer":
		rule := visibility.RuleOf(el)
		if rule == "" {
			r.warnf("%s has no visibility rule", structureType)
		} else if err := v.rules.Validate(rule); err != nil {
			r.warnf("%s visibility rule does not compile: %v", structureType, err)
		}
	}
}

func hasStructureChild(el document.Element) bool {
	for _, child := range el.Elements {
		if child.Type.Normalised() == document.KindStructure {
			return true
		}
	}
	return false
}
