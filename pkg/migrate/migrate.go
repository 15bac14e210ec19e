// Package migrate converts legacy page documents to the current element
// model.
//
// Legacy documents use three categories: display, input and structure.
// display becomes a record when it carries a data binding and markup
// otherwise; input becomes field; structure keeps its category but its
// settings are normalised. Elements already in the current model pass
// through with a warning. Unknown categories are reported as errors and
// returned unchanged so no data is lost.
package migrate

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/goliatone/go-pagegen/pkg/document"
)

// Context positions an element being migrated. Path prefixes every warning
// and error.
type Context struct {
	Path string
}

func (c Context) child(index int) Context {
	path := fmt.Sprintf("elements[%d]", index)
	if c.Path != "" {
		path = c.Path + "." + path
	}
	return Context{Path: path}
}

func (c Context) message(format string, args ...any) string {
	message := fmt.Sprintf(format, args...)
	if c.Path == "" {
		return message
	}
	return c.Path + ": " + message
}

// Option configures a Migrator.
type Option func(*Migrator)

// WithIDGenerator assigns ids produced by next to migrated elements that have
// none.
func WithIDGenerator(next func() string) Option {
	return func(m *Migrator) {
		m.newID = next
	}
}

// WithUUIDs assigns random UUIDs to migrated elements that have no id.
func WithUUIDs() Option {
	return WithIDGenerator(uuid.NewString)
}

// WithLogger sets the logger used for per-element debug output.
func WithLogger(logger *log.Logger) Option {
	return func(m *Migrator) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Migrator migrates elements and pages. It holds no per-run state and is safe
// for concurrent use.
type Migrator struct {
	newID  func() string
	logger *log.Logger
}

// New constructs a Migrator.
func New(options ...Option) *Migrator {
	m := &Migrator{logger: log.New(io.Discard)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

var defaultMigrator = New()

// MigrateElement migrates el with the default migrator.
func MigrateElement(el document.Element, ctx Context) (document.Element, Stats) {
	return defaultMigrator.MigrateElement(el, ctx)
}

// MigratePage migrates doc with the default migrator.
func MigratePage(doc document.Document) (document.Document, Stats) {
	return defaultMigrator.MigratePage(doc)
}

// MigrateElement converts el to the current model. The input is never
// modified. Structure children are migrated recursively and counted in the
// returned stats.
func (m *Migrator) MigrateElement(el document.Element, ctx Context) (document.Element, Stats) {
	stats := Stats{TotalElements: 1}

	var out document.Element
	switch el.Type.Normalised() {
	case document.KindLegacyDisplay:
		out = m.migrateDisplay(el)
	case document.KindLegacyInput:
		out = migrateInput(el)
	case document.KindStructure:
		var nested Stats
		out, nested = m.migrateStructure(el, ctx)
		stats = stats.Merge(nested)
	case document.KindField, document.KindRecord, document.KindMarkup:
		stats.Migrated++
		stats.Warnings = append(stats.Warnings, ctx.message("element of type %q is already migrated", el.Type))
		return el.Clone(), stats
	default:
		stats.Errors = append(stats.Errors, ctx.message("unknown element type %q", el.Type))
		m.logger.Warn("cannot migrate element", "path", ctx.Path, "type", el.Type)
		return el, stats
	}

	if out.ID == "" && m.newID != nil {
		out.ID = m.newID()
	}
	stats.Migrated++
	m.logger.Debug("migrated element", "path", ctx.Path, "from", el.Type, "to", out.Type)
	return out, stats
}

// MigratePage migrates every element of doc. The zone, row and column shape is
// preserved.
func (m *Migrator) MigratePage(doc document.Document) (document.Document, Stats) {
	out := document.Document{
		ID:       doc.ID,
		Title:    doc.Title,
		Metadata: doc.Metadata.Clone(),
	}
	stats := Stats{}
	if doc.Zones == nil {
		return out, stats
	}

	out.Zones = make([]document.Zone, len(doc.Zones))
	for z, zone := range doc.Zones {
		out.Zones[z] = document.Zone{ID: zone.ID, Name: zone.Name}
		if zone.Rows == nil {
			continue
		}
		out.Zones[z].Rows = make([]document.Row, len(zone.Rows))
		for r, row := range zone.Rows {
			out.Zones[z].Rows[r] = document.Row{ID: row.ID}
			if row.Columns == nil {
				continue
			}
			out.Zones[z].Rows[r].Columns = make([]document.Column, len(row.Columns))
			for c, column := range row.Columns {
				migrated := document.Column{ID: column.ID, Width: column.Width}
				if column.Elements != nil {
					migrated.Elements = make([]document.Element, len(column.Elements))
					for e, el := range column.Elements {
						ctx := Context{Path: fmt.Sprintf("zones[%d].rows[%d].columns[%d].elements[%d]", z, r, c, e)}
						var elementStats Stats
						migrated.Elements[e], elementStats = m.MigrateElement(el, ctx)
						stats = stats.Merge(elementStats)
					}
				}
				out.Zones[z].Rows[r].Columns[c] = migrated
			}
		}
	}
	return out, stats
}
