package expression

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/goliatone/go-pagegen/pkg/document"
)

var errStepBudget = errors.New("evaluation step budget exceeded")

type state struct {
	vars      Vars
	lenient   bool
	steps     int
	stepLimit int
}

func (s *state) tick() error {
	s.steps++
	if s.stepLimit > 0 && s.steps > s.stepLimit {
		return errStepBudget
	}
	return nil
}

type node interface {
	eval(s *state) (any, error)
}

type literalNode struct {
	value any
}

func (n literalNode) eval(s *state) (any, error) {
	if err := s.tick(); err != nil {
		return nil, err
	}
	return n.value, nil
}

type identifierNode struct {
	name string
}

func (n identifierNode) eval(s *state) (any, error) {
	if err := s.tick(); err != nil {
		return nil, err
	}
	value, ok := s.vars[n.name]
	if !ok && !s.lenient {
		return nil, fmt.Errorf("%s is not defined", n.name)
	}
	return value, nil
}

type arrayNode struct {
	items []node
}

func (n arrayNode) eval(s *state) (any, error) {
	if err := s.tick(); err != nil {
		return nil, err
	}
	out := make([]any, len(n.items))
	for i, item := range n.items {
		value, err := item.eval(s)
		if err != nil {
			return nil, err
		}
		out[i] = value
	}
	return out, nil
}

type memberNode struct {
	target   node
	key      node
	optional bool
}

func (n memberNode) eval(s *state) (any, error) {
	if err := s.tick(); err != nil {
		return nil, err
	}
	target, err := n.target.eval(s)
	if err != nil {
		return nil, err
	}
	key, err := n.key.eval(s)
	if err != nil {
		return nil, err
	}
	if target == nil {
		if n.optional || s.lenient {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read property %q of null", ToString(key))
	}
	return property(target, key), nil
}

func property(target, key any) any {
	name := ToString(key)

	if values, ok := document.AsValues(target); ok {
		return values[name]
	}
	switch typed := target.(type) {
	case map[string]string:
		if value, ok := typed[name]; ok {
			return value
		}
		return nil
	case string:
		if name == "length" {
			return float64(utf8.RuneCountInString(typed))
		}
		return nil
	}

	if items, ok := document.AsSlice(target); ok {
		if name == "length" {
			return float64(len(items))
		}
		idx, ok := index(key)
		if !ok || idx < 0 || idx >= len(items) {
			return nil
		}
		return items[idx]
	}

	rv := reflect.ValueOf(target)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		value := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if value.IsValid() {
			return value.Interface()
		}
	}
	return nil
}

func index(key any) (int, bool) {
	if number, ok := document.AsNumber(key); ok {
		if number != math.Trunc(number) {
			return 0, false
		}
		return int(number), true
	}
	if text, ok := key.(string); ok {
		idx, err := strconv.Atoi(text)
		return idx, err == nil
	}
	return 0, false
}

type callNode struct {
	name string
	fn   function
	args []node
}

func (n callNode) eval(s *state) (any, error) {
	if err := s.tick(); err != nil {
		return nil, err
	}
	args := make([]any, len(n.args))
	for i, arg := range n.args {
		value, err := arg.eval(s)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	value, err := n.fn(args)
	if err != nil {
		return nil, fmt.Errorf("%s(): %w", n.name, err)
	}
	return value, nil
}

type unaryNode struct {
	op      string
	operand node
}

func (n unaryNode) eval(s *state) (any, error) {
	if err := s.tick(); err != nil {
		return nil, err
	}
	value, err := n.operand.eval(s)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "!":
		return !Truthy(value), nil
	case "-":
		return -numeric(value), nil
	default:
		return numeric(value), nil
	}
}

type logicalNode struct {
	op          string
	left, right node
}

func (n logicalNode) eval(s *state) (any, error) {
	if err := s.tick(); err != nil {
		return nil, err
	}
	left, err := n.left.eval(s)
	if err != nil {
		return nil, err
	}
	switch n.op {
	case "&&":
		if !Truthy(left) {
			return left, nil
		}
	case "||":
		if Truthy(left) {
			return left, nil
		}
	case "??":
		if left != nil {
			return left, nil
		}
	}
	return n.right.eval(s)
}

type conditionalNode struct {
	cond, then, otherwise node
}

func (n conditionalNode) eval(s *state) (any, error) {
	if err := s.tick(); err != nil {
		return nil, err
	}
	cond, err := n.cond.eval(s)
	if err != nil {
		return nil, err
	}
	if Truthy(cond) {
		return n.then.eval(s)
	}
	return n.otherwise.eval(s)
}

type binaryNode struct {
	op          string
	left, right node
}

func (n binaryNode) eval(s *state) (any, error) {
	if err := s.tick(); err != nil {
		return nil, err
	}
	left, err := n.left.eval(s)
	if err != nil {
		return nil, err
	}
	right, err := n.right.eval(s)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case "+":
		if isString(left) || isString(right) {
			return ToString(left) + ToString(right), nil
		}
		if !isScalar(left) || !isScalar(right) {
			return nil, fmt.Errorf("invalid operands for '+': %T and %T", left, right)
		}
		return numeric(left) + numeric(right), nil
	case "-":
		return numeric(left) - numeric(right), nil
	case "*":
		return numeric(left) * numeric(right), nil
	case "/":
		return numeric(left) / numeric(right), nil
	case "%":
		return math.Mod(numeric(left), numeric(right)), nil
	case "<", "<=", ">", ">=":
		return compare(n.op, left, right), nil
	case "===":
		return StrictEqual(left, right), nil
	case "!==":
		return !StrictEqual(left, right), nil
	case "==":
		return LooseEqual(left, right), nil
	case "!=":
		return !LooseEqual(left, right), nil
	default:
		return nil, fmt.Errorf("unsupported operator %q", n.op)
	}
}

func compare(op string, left, right any) bool {
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			switch op {
			case "<":
				return ls < rs
			case "<=":
				return ls <= rs
			case ">":
				return ls > rs
			default:
				return ls >= rs
			}
		}
	}
	l, r := numeric(left), numeric(right)
	switch op {
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	default:
		return l >= r
	}
}
