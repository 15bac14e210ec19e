// Package report prints command results either as styled text or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-pagegen/internal/config"
	"github.com/goliatone/go-pagegen/pkg/expression"
	"github.com/goliatone/go-pagegen/pkg/migrate"
	"github.com/goliatone/go-pagegen/pkg/validation"
	"github.com/goliatone/go-pagegen/pkg/visibility"
)

const (
	errorMark   = "✗"
	warningMark = "!"
	visibleMark = "✓"
	hiddenMark  = "-"
)

// Every text report is a heading, zero or more issue lines and a summary.
var summaryTemplate = pongo2.Must(pongo2.FromString(`{{ heading|safe }}
{% for line in lines %}  {{ line|safe }}
{% endfor %}{{ summary|safe }}
`))

// Printer writes reports to an output stream.
type Printer struct {
	w      io.Writer
	format string
	styles styles
}

// New returns a Printer for w. Unknown formats fall back to text.
func New(w io.Writer, format string) *Printer {
	if format != config.FormatJSON {
		format = config.FormatText
	}
	return &Printer{w: w, format: format, styles: newStyles(w)}
}

// Format reports the active output format.
func (p *Printer) Format() string {
	return p.format
}

type validationReport struct {
	Source string `json:"source,omitempty"`
	validation.Result
}

// Validation prints a validation result for source.
func (p *Printer) Validation(source string, result validation.Result) error {
	if p.format == config.FormatJSON {
		return p.json(validationReport{Source: source, Result: result})
	}

	lines := make([]string, 0, len(result.Errors)+len(result.Warnings))
	for _, issue := range result.Errors {
		lines = append(lines, p.styles.failure.Render(errorMark)+" "+issue.String())
	}
	for _, issue := range result.Warnings {
		lines = append(lines, p.styles.warning.Render(warningMark)+" "+issue.String())
	}

	counts := fmt.Sprintf("(%s, %s)", plural(len(result.Errors), "error"), plural(len(result.Warnings), "warning"))
	summary := p.styles.success.Render("valid") + " " + counts
	if !result.Valid {
		summary = p.styles.failure.Render("invalid") + " " + counts
	}
	return p.text("validate", source, lines, summary)
}

type migrationReport struct {
	Source string `json:"source,omitempty"`
	Output string `json:"output,omitempty"`
	migrate.Stats
}

// Migration prints migration statistics. output is the file written, if any.
func (p *Printer) Migration(source, output string, stats migrate.Stats) error {
	if p.format == config.FormatJSON {
		return p.json(migrationReport{Source: source, Output: output, Stats: stats})
	}

	lines := make([]string, 0, len(stats.Errors)+len(stats.Warnings))
	for _, msg := range stats.Errors {
		lines = append(lines, p.styles.failure.Render(errorMark)+" "+msg)
	}
	for _, msg := range stats.Warnings {
		lines = append(lines, p.styles.warning.Render(warningMark)+" "+msg)
	}

	summary := fmt.Sprintf("migrated %d of %s", stats.Migrated, plural(stats.TotalElements, "element"))
	if stats.OK() {
		summary = p.styles.success.Render(summary)
	} else {
		summary = p.styles.failure.Render(summary)
	}
	if output != "" {
		summary += p.styles.muted.Render(" -> " + output)
	}
	return p.text("migrate", source, lines, summary)
}

type visibilityReport struct {
	Source   string               `json:"source,omitempty"`
	Elements []visibility.Outcome `json:"elements"`
}

// Visibility prints the evaluated visibility rules of a document.
func (p *Printer) Visibility(source string, outcomes []visibility.Outcome) error {
	if p.format == config.FormatJSON {
		if outcomes == nil {
			outcomes = []visibility.Outcome{}
		}
		return p.json(visibilityReport{Source: source, Elements: outcomes})
	}

	lines := make([]string, 0, len(outcomes))
	visible := 0
	for _, outcome := range outcomes {
		switch {
		case outcome.Error != "":
			lines = append(lines, fmt.Sprintf("%s %s: hidden, %s", p.styles.failure.Render(errorMark), outcome.Path, outcome.Error))
		case outcome.Visible:
			visible++
			lines = append(lines, fmt.Sprintf("%s %s: visible %s", p.styles.success.Render(visibleMark), outcome.Path, p.styles.muted.Render("("+outcome.Rule+")")))
		default:
			lines = append(lines, fmt.Sprintf("%s %s: hidden %s", p.styles.muted.Render(hiddenMark), outcome.Path, p.styles.muted.Render("("+outcome.Rule+")")))
		}
	}

	summary := fmt.Sprintf("%d visible, %d hidden", visible, len(outcomes)-visible)
	return p.text("visibility", source, lines, summary)
}

// Value prints a resolved binding value. Text output uses display
// conversion; JSON output encodes the value as is, with non-finite numbers
// rendered as strings.
func (p *Printer) Value(value any) error {
	if p.format == config.FormatJSON {
		if n, ok := value.(float64); ok && (math.IsInf(n, 0) || math.IsNaN(n)) {
			value = expression.ToString(n)
		}
		return p.json(map[string]any{"value": value})
	}
	_, err := fmt.Fprintln(p.w, expression.ToString(value))
	return err
}

func (p *Printer) text(command, source string, lines []string, summary string) error {
	heading := p.styles.title.Render(command)
	if source != "" {
		heading += " " + p.styles.muted.Render(source)
	}
	out, err := summaryTemplate.Execute(pongo2.Context{
		"heading": heading,
		"lines":   lines,
		"summary": summary,
	})
	if err != nil {
		return fmt.Errorf("report: render %s: %w", command, err)
	}
	_, err = io.WriteString(p.w, out)
	return err
}

func (p *Printer) json(value any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
