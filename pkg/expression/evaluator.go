// Package expression evaluates small, side-effect free expressions against a
// fixed set of named variables. It replaces executing caller-supplied code:
// the grammar is parsed into an AST and only the constructs listed below can
// run.
//
// Supported syntax:
//   - literals: numbers, 'single' or "double" quoted strings, true, false,
//     null, undefined and list literals `[1, 2]`
//   - variables from Vars, member access `a.b`, optional access `a?.b`,
//     indexing `a[0]` / `a["key"]`
//   - unary `!`, `-`, `+`; arithmetic `* / % + -` (`+` concatenates when
//     either side is a string); comparisons `< <= > >=`; equality
//     `== != === !==`; logical `&& || ??`; ternary `c ? a : b`
//   - calls to the allow-listed helpers returned by Functions
//
// Arithmetic is float64: `1/0` is +Inf rather than an error. Reading a
// property of null is an error.
package expression

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

const (
	defaultMaxLength = 4096
	defaultMaxSteps  = 10000
	defaultCacheSize = 512
)

// Vars is the variable set an expression is evaluated against.
type Vars map[string]any

// Error is returned for any compile or evaluation failure. It carries the
// original expression text.
type Error struct {
	Expression string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("expression: %s (in %q)", e.Message, e.Expression)
}

// IsError reports whether err is an expression Error.
func IsError(err error) bool {
	var target *Error
	return errors.As(err, &target)
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxLength bounds the expression text length. Zero disables the check.
func WithMaxLength(n int) Option {
	return func(e *Engine) {
		e.maxLength = n
	}
}

// WithMaxSteps bounds the number of AST nodes visited by one evaluation. Zero
// disables the check.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithUndefinedIdentifiers makes unknown identifiers evaluate to null and
// property reads on null return null instead of failing. Visibility rules use
// this so a missing field simply hides an element.
func WithUndefinedIdentifiers() Option {
	return func(e *Engine) {
		e.lenient = true
	}
}

// WithCacheSize bounds the number of compiled programs kept by the engine.
// Zero disables caching.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		e.cacheSize = n
	}
}

// Engine compiles and evaluates expressions. It is safe for concurrent use;
// compiled programs are cached by text.
type Engine struct {
	maxLength int
	maxSteps  int
	lenient   bool
	cacheSize int

	mu    sync.RWMutex
	cache map[string]*Program
}

// New constructs an Engine with the default limits.
func New(options ...Option) *Engine {
	e := &Engine{
		maxLength: defaultMaxLength,
		maxSteps:  defaultMaxSteps,
		cacheSize: defaultCacheSize,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Evaluate compiles and runs text with the default engine.
func Evaluate(text string, vars Vars) (any, error) {
	return defaultEngine.Evaluate(text, vars)
}

// Compile parses text with the default engine.
func Compile(text string) (*Program, error) {
	return defaultEngine.Compile(text)
}

// Program is a compiled expression. It is immutable and safe for concurrent
// evaluation.
type Program struct {
	text     string
	root     node
	lenient  bool
	maxSteps int
}

// Text returns the source expression.
func (p *Program) Text() string { return p.text }

// Eval runs the program against vars.
func (p *Program) Eval(vars Vars) (any, error) {
	s := &state{vars: vars, lenient: p.lenient, stepLimit: p.maxSteps}
	value, err := p.root.eval(s)
	if err != nil {
		return nil, &Error{Expression: p.text, Message: err.Error()}
	}
	return value, nil
}

// Compile parses text into a Program.
func (e *Engine) Compile(text string) (*Program, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &Error{Expression: text, Message: "empty expression"}
	}
	if e.maxLength > 0 && len(trimmed) > e.maxLength {
		return nil, &Error{Expression: text, Message: fmt.Sprintf("expression exceeds %d characters", e.maxLength)}
	}

	if program, ok := e.cached(trimmed); ok {
		return program, nil
	}

	root, err := parse(trimmed)
	if err != nil {
		return nil, &Error{Expression: text, Message: err.Error()}
	}
	program := &Program{text: trimmed, root: root, lenient: e.lenient, maxSteps: e.maxSteps}
	e.store(trimmed, program)
	return program, nil
}

// Evaluate compiles (or reuses) text and runs it against vars.
func (e *Engine) Evaluate(text string, vars Vars) (any, error) {
	program, err := e.Compile(text)
	if err != nil {
		return nil, err
	}
	return program.Eval(vars)
}

func (e *Engine) cached(text string) (*Program, bool) {
	if e.cacheSize <= 0 {
		return nil, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	program, ok := e.cache[text]
	return program, ok
}

func (e *Engine) store(text string, program *Program) {
	if e.cacheSize <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cache == nil || len(e.cache) >= e.cacheSize {
		e.cache = make(map[string]*Program, e.cacheSize)
	}
	e.cache[text] = program
}
