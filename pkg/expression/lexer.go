package expression

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdentifier
	tokenNumber
	tokenString
	tokenOperator
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
	tokenComma
	tokenDot
	tokenOptionalDot
	tokenQuestion
	tokenColon
)

type token struct {
	kind tokenKind
	raw  string
	pos  int
}

// operators ordered longest first so the scanner is greedy.
var operators = []string{
	"===", "!==",
	"==", "!=", "<=", ">=", "&&", "||", "??",
	"<", ">", "+", "-", "*", "/", "%", "!",
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	for i < len(input) {
		ch := input[i]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}

		switch {
		case ch == '(':
			tokens = append(tokens, token{kind: tokenLParen, raw: "(", pos: i})
			i++
			continue
		case ch == ')':
			tokens = append(tokens, token{kind: tokenRParen, raw: ")", pos: i})
			i++
			continue
		case ch == '[':
			tokens = append(tokens, token{kind: tokenLBracket, raw: "[", pos: i})
			i++
			continue
		case ch == ']':
			tokens = append(tokens, token{kind: tokenRBracket, raw: "]", pos: i})
			i++
			continue
		case ch == ',':
			tokens = append(tokens, token{kind: tokenComma, raw: ",", pos: i})
			i++
			continue
		case ch == ':':
			tokens = append(tokens, token{kind: tokenColon, raw: ":", pos: i})
			i++
			continue
		case ch == '?' && strings.HasPrefix(input[i:], "?.") && !isDigitAt(input, i+2):
			tokens = append(tokens, token{kind: tokenOptionalDot, raw: "?.", pos: i})
			i += 2
			continue
		case ch == '?' && !strings.HasPrefix(input[i:], "??"):
			tokens = append(tokens, token{kind: tokenQuestion, raw: "?", pos: i})
			i++
			continue
		case ch == '.' && !isDigitAt(input, i+1):
			tokens = append(tokens, token{kind: tokenDot, raw: ".", pos: i})
			i++
			continue
		case ch == '"' || ch == '\'':
			value, next, err := scanString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, raw: value, pos: i})
			i = next
			continue
		case isDigit(ch) || ch == '.':
			start := i
			i = scanNumber(input, i)
			tokens = append(tokens, token{kind: tokenNumber, raw: input[start:i], pos: start})
			continue
		case isIdentStart(ch):
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdentifier, raw: input[start:i], pos: start})
			continue
		}

		matched := false
		for _, op := range operators {
			if strings.HasPrefix(input[i:], op) {
				tokens = append(tokens, token{kind: tokenOperator, raw: op, pos: i})
				i += len(op)
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("unexpected character %q at offset %d", ch, i)
		}
	}

	tokens = append(tokens, token{kind: tokenEOF, pos: len(input)})
	return tokens, nil
}

func scanString(input string, start int) (string, int, error) {
	quote := input[start]
	var b strings.Builder
	i := start + 1
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == quote:
			return b.String(), i + 1, nil
		case ch == '\\':
			if i+1 >= len(input) {
				return "", 0, fmt.Errorf("unterminated string literal at offset %d", start)
			}
			switch esc := input[i+1]; esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(esc)
			}
			i += 2
		default:
			b.WriteByte(ch)
			i++
		}
	}
	return "", 0, fmt.Errorf("unterminated string literal at offset %d", start)
}

func scanNumber(input string, i int) int {
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	if i < len(input) && input[i] == '.' {
		i++
		for i < len(input) && isDigit(input[i]) {
			i++
		}
	}
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			j++
		}
		if j < len(input) && isDigit(input[j]) {
			i = j
			for i < len(input) && isDigit(input[i]) {
				i++
			}
		}
	}
	return i
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isDigitAt(input string, i int) bool { return i < len(input) && isDigit(input[i]) }

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '$' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }
