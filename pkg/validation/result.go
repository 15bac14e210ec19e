package validation

import "fmt"

// Issue is a single validation error or warning. Path is the positional
// location of the element, e.g. `zones[0].rows[1].columns[0].elements[2]`.
type Issue struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// String renders the issue prefixed with its position.
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Result captures validation outcomes. Errors make a result invalid; warnings
// never do.
type Result struct {
	Valid    bool    `json:"valid" yaml:"valid"`
	Errors   []Issue `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Merge folds other into r and returns the combined result.
func (r Result) Merge(other Result) Result {
	out := Result{
		Errors:   make([]Issue, 0, len(r.Errors)+len(other.Errors)),
		Warnings: make([]Issue, 0, len(r.Warnings)+len(other.Warnings)),
	}
	out.Errors = append(append(out.Errors, r.Errors...), other.Errors...)
	out.Warnings = append(append(out.Warnings, r.Warnings...), other.Warnings...)
	out.Valid = len(out.Errors) == 0
	if len(out.Errors) == 0 {
		out.Errors = nil
	}
	if len(out.Warnings) == 0 {
		out.Warnings = nil
	}
	return out
}

// ErrorMessages returns the errors rendered with their positions.
func (r Result) ErrorMessages() []string {
	return messages(r.Errors)
}

// WarningMessages returns the warnings rendered with their positions.
func (r Result) WarningMessages() []string {
	return messages(r.Warnings)
}

func messages(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.String()
	}
	return out
}

// valid returns an empty, valid result.
func valid() Result {
	return Result{Valid: true}
}

// report collects issues for one element under a fixed context.
type report struct {
	ctx      Context
	errors   []Issue
	warnings []Issue
}

func (r *report) errorf(format string, args ...any) {
	r.errors = append(r.errors, r.issue(format, args...))
}

func (r *report) warnf(format string, args ...any) {
	r.warnings = append(r.warnings, r.issue(format, args...))
}

func (r *report) issue(format string, args ...any) Issue {
	message := fmt.Sprintf(format, args...)
	if r.ctx.Depth > 0 {
		message = fmt.Sprintf("depth %d: %s", r.ctx.Depth, message)
	}
	return Issue{Path: r.ctx.Path, Message: message}
}

func (r *report) result() Result {
	return Result{Valid: len(r.errors) == 0, Errors: r.errors, Warnings: r.warnings}
}

// Context positions an element inside a page.
type Context struct {
	// Depth is the Structure nesting level; 0 for elements placed directly in
	// a column.
	Depth int
	// Path is the positional location used to prefix every issue.
	Path string
}

// Child returns the context for the index-th child of the element at c.
func (c Context) Child(index int) Context {
	path := fmt.Sprintf("elements[%d]", index)
	if c.Path != "" {
		path = c.Path + "." + path
	}
	return Context{Depth: c.Depth + 1, Path: path}
}

// ElementPath builds the positional path of a top-level element.
func ElementPath(zone, row, column, element int) string {
	return fmt.Sprintf("zones[%d].rows[%d].columns[%d].elements[%d]", zone, row, column, element)
}
