package expression

import (
	"fmt"
	"strconv"
)

type parser struct {
	tokens []token
	pos    int
	// chain is set while parsing a postfix chain that contains `?.`.
	chain bool
}

func parse(input string) (node, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 1 {
		return nil, fmt.Errorf("empty expression")
	}
	p := &parser{tokens: tokens}
	root, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, fmt.Errorf("unexpected token %q at offset %d", tok.raw, tok.pos)
	}
	return root, nil
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) matchKind(kind tokenKind) bool {
	if p.peek().kind != kind {
		return false
	}
	p.pos++
	return true
}

func (p *parser) matchOperator(ops ...string) (string, bool) {
	tok := p.peek()
	if tok.kind != tokenOperator {
		return "", false
	}
	for _, op := range ops {
		if tok.raw == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

func (p *parser) expect(kind tokenKind, what string) error {
	tok := p.peek()
	if tok.kind != kind {
		if tok.kind == tokenEOF {
			return fmt.Errorf("expected %s, got end of expression", what)
		}
		return fmt.Errorf("expected %s, got %q at offset %d", what, tok.raw, tok.pos)
	}
	p.pos++
	return nil
}

func (p *parser) parseTernary() (node, error) {
	cond, err := p.parseCoalesce()
	if err != nil {
		return nil, err
	}
	if !p.matchKind(tokenQuestion) {
		return cond, nil
	}
	then, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokenColon, "':'"); err != nil {
		return nil, err
	}
	otherwise, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return conditionalNode{cond: cond, then: then, otherwise: otherwise}, nil
}

func (p *parser) parseCoalesce() (node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.matchOperator("??"); !ok {
			return left, nil
		}
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = logicalNode{op: "??", left: left, right: right}
	}
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.matchOperator("||"); !ok {
			return left, nil
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = logicalNode{op: "||", left: left, right: right}
	}
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.matchOperator("&&"); !ok {
			return left, nil
		}
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = logicalNode{op: "&&", left: left, right: right}
	}
}

func (p *parser) parseEquality() (node, error) {
	return p.parseBinaryLevel(p.parseRelational, "===", "!==", "==", "!=")
}

func (p *parser) parseRelational() (node, error) {
	return p.parseBinaryLevel(p.parseAdditive, "<=", ">=", "<", ">")
}

func (p *parser) parseAdditive() (node, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, "+", "-")
}

func (p *parser) parseMultiplicative() (node, error) {
	return p.parseBinaryLevel(p.parseUnary, "*", "/", "%")
}

func (p *parser) parseBinaryLevel(operand func() (node, error), ops ...string) (node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOperator(ops...)
		if !ok {
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	if op, ok := p.matchOperator("!", "-", "+"); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: op, operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (node, error) {
	target, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	outer := p.chain
	p.chain = false
	defer func() { p.chain = outer }()

	for {
		switch p.peek().kind {
		case tokenDot, tokenOptionalDot:
			optional := p.next().kind == tokenOptionalDot
			if optional {
				p.chain = true
			}
			name := p.peek()
			if name.kind != tokenIdentifier {
				return nil, fmt.Errorf("expected property name at offset %d", name.pos)
			}
			p.pos++
			target = memberNode{target: target, key: literalNode{value: name.raw}, optional: p.chain}
		case tokenLBracket:
			p.pos++
			key, err := p.parseTernary()
			if err != nil {
				return nil, err
			}
			if err := p.expect(tokenRBracket, "']'"); err != nil {
				return nil, err
			}
			target = memberNode{target: target, key: key, optional: p.chain}
		case tokenLParen:
			ident, ok := target.(identifierNode)
			if !ok {
				return nil, fmt.Errorf("only allow-listed functions can be called")
			}
			fn, ok := functions[ident.name]
			if !ok {
				return nil, fmt.Errorf("function %q is not allowed", ident.name)
			}
			p.pos++
			args, err := p.parseArguments(tokenRParen, "')'")
			if err != nil {
				return nil, err
			}
			target = callNode{name: ident.name, fn: fn, args: args}
		default:
			return target, nil
		}
	}
}

func (p *parser) parseArguments(closing tokenKind, what string) ([]node, error) {
	var args []node
	if p.matchKind(closing) {
		return args, nil
	}
	for {
		arg, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.matchKind(tokenComma) {
			continue
		}
		if err := p.expect(closing, what); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNumber:
		value, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number literal %q", tok.raw)
		}
		return literalNode{value: value}, nil
	case tokenString:
		return literalNode{value: tok.raw}, nil
	case tokenIdentifier:
		switch tok.raw {
		case "true":
			return literalNode{value: true}, nil
		case "false":
			return literalNode{value: false}, nil
		case "null", "undefined":
			return literalNode{value: nil}, nil
		}
		return identifierNode{name: tok.raw}, nil
	case tokenLParen:
		inner, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokenLBracket:
		items, err := p.parseArguments(tokenRBracket, "']'")
		if err != nil {
			return nil, err
		}
		return arrayNode{items: items}, nil
	case tokenEOF:
		return nil, fmt.Errorf("unexpected end of expression")
	default:
		return nil, fmt.Errorf("unexpected token %q at offset %d", tok.raw, tok.pos)
	}
}
