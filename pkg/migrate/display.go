package migrate

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-pagegen/pkg/document"
)

// legacyDisplay is the typed view of a legacy display element's settings.
// Properties are read from `settings.display` first, then from the flat
// settings object.
type legacyDisplay struct {
	displayType string
	fields      any
	hasFields   bool

	isButton  bool
	isLink    bool
	action    string
	href      string
	src       string
	alt       string
	iconName  string
	isDivider bool
	level     int
	hasLevel  bool
	heading   bool
	content   string
}

// legacyDisplayKeys are consumed by the display migration.
var legacyDisplayKeys = []string{
	"display", "displayType", "fields", "dataBinding",
	"isButton", "isLink", "action", "href", "src", "alt", "iconName",
	"isDivider", "level", "heading",
}

func readLegacyDisplay(el document.Element) legacyDisplay {
	settings := el.Settings.Without()
	for key, value := range el.Settings.Map("display") {
		settings[key] = value
	}

	d := legacyDisplay{
		displayType: settings.String("displayType"),
		isButton:    settings.Bool("isButton"),
		isLink:      settings.Bool("isLink"),
		action:      settings.String("action"),
		href:        settings.String("href"),
		src:         settings.String("src"),
		alt:         settings.String("alt"),
		iconName:    settings.String("iconName"),
		isDivider:   settings.Bool("isDivider"),
		content:     el.Content(),
	}
	d.fields, d.hasFields = settings["fields"]

	if number, ok := document.AsNumber(settings["level"]); ok {
		d.level, d.hasLevel = int(number), true
	}
	switch heading := settings["heading"].(type) {
	case bool:
		d.heading = heading
	case string:
		d.heading = strings.TrimSpace(heading) != ""
	case nil:
	default:
		if number, ok := document.AsNumber(heading); ok {
			d.heading = true
			if !d.hasLevel {
				d.level, d.hasLevel = int(number), true
			}
		}
	}
	return d
}

// markupRule infers a markup type. Rules are checked in order and the first
// match wins.
type markupRule struct {
	markupType string
	match      func(d legacyDisplay) bool
}

var markupRules = []markupRule{
	{"button", func(d legacyDisplay) bool { return d.isButton }},
	{"link", func(d legacyDisplay) bool { return d.isLink }},
	{"button", func(d legacyDisplay) bool { return d.action != "" }},
	{"image", func(d legacyDisplay) bool { return d.src != "" || containsImage(d.content) }},
	{"icon", func(d legacyDisplay) bool { return d.iconName != "" }},
	{"divider", func(d legacyDisplay) bool { return d.isDivider }},
	{"title", func(d legacyDisplay) bool { return (d.hasLevel || d.heading) && d.level == 1 }},
	{"heading", func(d legacyDisplay) bool { return d.hasLevel || d.heading }},
}

func inferMarkupType(d legacyDisplay) string {
	for _, rule := range markupRules {
		if rule.match(d) {
			return rule.markupType
		}
	}
	return "paragraph"
}

// bindingIndicator returns the legacy binding payload, looking at
// `data.binding`, `settings.dataBinding` and `data.source` in that order.
func bindingIndicator(el document.Element) (any, bool) {
	if el.Data.Has("binding") {
		return el.Data["binding"], true
	}
	if el.Settings.Has("dataBinding") {
		return el.Settings["dataBinding"], true
	}
	if el.Settings.Map("display").Has("dataBinding") {
		return el.Settings.Map("display")["dataBinding"], true
	}
	if el.Data.Has("source") {
		return el.Data["source"], true
	}
	return nil, false
}

func (m *Migrator) migrateDisplay(el document.Element) document.Element {
	d := readLegacyDisplay(el)
	settings := el.Settings.Without(legacyDisplayKeys...)

	if raw, ok := bindingIndicator(el); ok {
		return migrateRecord(el, d, settings, raw)
	}
	return migrateMarkup(el, d, settings)
}

func migrateRecord(el document.Element, d legacyDisplay, settings document.Values, raw any) document.Element {
	record := settings.Map("record").Clone()
	if record == nil {
		record = document.Values{}
	}
	recordType := d.displayType
	if recordType == "" {
		recordType = record.String("recordType")
	}
	if recordType == "" {
		recordType = "display"
	}
	record["recordType"] = recordType
	if d.hasFields {
		record["fields"] = document.CloneValue(d.fields)
	}
	settings["record"] = map[string]any(record)

	data := el.Data.Clone().Without("source")
	data["binding"] = normaliseBinding(raw)

	return document.Element{
		ID:       el.ID,
		Type:     document.KindRecord,
		Settings: settings.Clone(),
		Data:     data,
	}
}

// normaliseBinding converts a legacy binding into the current shape. String
// bindings are page paths; objects default to direct page lookups. Other
// payloads are kept as-is for validation to report.
func normaliseBinding(raw any) any {
	if path, ok := raw.(string); ok {
		return document.Binding{
			Mode:   document.ModeDirect,
			Source: "page",
			Path:   strings.TrimSpace(path),
		}.ToValues()
	}
	if _, ok := document.AsValues(raw); !ok {
		return document.CloneValue(raw)
	}

	b, err := document.DecodeBinding(raw)
	if err != nil {
		return document.CloneValue(raw)
	}
	if b.Mode == "" {
		b.Mode = document.ModeDirect
	}
	if b.Source == "" && (b.Mode == document.ModeDirect || b.Mode == document.ModeContext) {
		b.Source = "page"
	}
	return b.ToValues()
}

func migrateMarkup(el document.Element, d legacyDisplay, settings document.Values) document.Element {
	markupType := inferMarkupType(d)

	markup := settings.Map("markup").Clone()
	if markup == nil {
		markup = document.Values{}
	}
	markup["markupType"] = markupType

	switch markupType {
	case "button", "link":
		if d.action != "" {
			markup["action"] = d.action
		} else if d.href != "" {
			markup["action"] = "navigate"
		}
		if d.href != "" {
			markup["href"] = d.href
		}
	case "image":
		src, alt := d.src, d.alt
		if src == "" || alt == "" {
			imgSrc, imgAlt := imageAttributes(d.content)
			if src == "" {
				src = imgSrc
			}
			if alt == "" {
				alt = imgAlt
			}
		}
		if src != "" {
			markup["src"] = src
		}
		if alt != "" {
			markup["alt"] = alt
		}
	case "icon":
		markup["iconName"] = d.iconName
	case "title", "heading":
		if d.hasLevel {
			markup["level"] = d.level
		}
	}
	settings["markup"] = map[string]any(markup)

	return document.Element{
		ID:       el.ID,
		Type:     document.KindMarkup,
		Settings: settings.Clone(),
		Data:     el.Data.Clone(),
	}
}

func containsImage(content string) bool {
	return strings.Contains(strings.ToLower(content), "<img")
}

// imageAttributes returns the src and alt of the first <img> tag in content.
func imageAttributes(content string) (src, alt string) {
	if !containsImage(content) {
		return "", ""
	}
	tokenizer := html.NewTokenizer(strings.NewReader(content))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return "", ""
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "img" {
				continue
			}
			for _, attr := range token.Attr {
				switch attr.Key {
				case "src":
					src = strings.TrimSpace(attr.Val)
				case "alt":
					alt = strings.TrimSpace(attr.Val)
				}
			}
			return src, alt
		}
	}
}
