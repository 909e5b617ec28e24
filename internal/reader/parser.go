package reader

import (
	"fmt"

	"github.com/dekarrin/zil/internal/zilast"
)

// ParseError is a parse-time error: an unmatched bracket or an unexpected
// token. The reader does not attempt recovery.
type ParseError struct {
	Line, Col int
	Msg       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, col %d: %s", e.Line, e.Col, e.Msg)
}

type parser struct {
	toks []token
	pos  int
}

func newParser(toks []token) *parser {
	return &parser{toks: toks}
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) atEOF() bool { return p.cur().kind == tokEOF }
func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// parseTopLevel consumes every top-level datum until EOF.
func (p *parser) parseTopLevel() ([]zilast.Node, error) {
	var nodes []zilast.Node
	for !p.atEOF() {
		n, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// parseDatum parses exactly one datum, the value a caller can use. A
// ";<form>" elision token causes the following form to be parsed and
// discarded before the next real datum is parsed and returned in its place.
func (p *parser) parseDatum() (zilast.Node, error) {
	t := p.cur()
	switch t.kind {
	case tokElide:
		p.next()
		if _, err := p.parseDatum(); err != nil {
			return nil, err
		}
		return p.parseDatum()
	case tokEOF:
		return nil, &ParseError{t.line, t.col, "unexpected end of input"}
	case tokLAngle:
		return p.parseForm()
	case tokLParen:
		return p.parseList()
	case tokRAngle, tokRParen:
		return nil, &ParseError{t.line, t.col, "unmatched closing bracket"}
	case tokAtom:
		p.next()
		return &zilast.AtomNode{Name: zilast.Intern(t.text)}, nil
	case tokNumber:
		p.next()
		var n int
		fmt.Sscanf(t.text, "%d", &n)
		return &zilast.NumberNode{Value: n}, nil
	case tokString:
		p.next()
		return &zilast.StringNode{Value: t.text}, nil
	case tokDot:
		p.next()
		name, err := p.expectAtomText()
		if err != nil {
			return nil, err
		}
		return &zilast.LocalRef{Name: zilast.Intern(name)}, nil
	case tokComma:
		p.next()
		name, err := p.expectAtomText()
		if err != nil {
			return nil, err
		}
		return &zilast.GlobalRef{Name: zilast.Intern(name)}, nil
	case tokQuote:
		p.next()
		inner, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		if a, ok := inner.(*zilast.AtomNode); ok {
			return &zilast.QuotedAtom{Name: a.Name}, nil
		}
		// quoting anything other than a bare atom is semantically inert.
		return inner, nil
	case tokBang:
		p.next()
		form, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		return &zilast.Splice{Form: form}, nil
	case tokBackslashChar:
		p.next()
		return &zilast.CharLiteral{Char: t.char}, nil
	case tokPercent:
		p.next()
		form, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		return &zilast.PercentEval{Form: form}, nil
	case tokHash:
		p.next()
		tagText, err := p.expectAtomText()
		if err != nil {
			return nil, err
		}
		val, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		var values []zilast.Node
		if lst, ok := val.(*zilast.List); ok {
			values = lst.Elements
		} else {
			values = []zilast.Node{val}
		}
		return &zilast.HashExpr{Tag: zilast.Intern(tagText), Values: values}, nil
	default:
		return nil, &ParseError{t.line, t.col, "unexpected token"}
	}
}

func (p *parser) expectAtomText() (string, error) {
	t := p.cur()
	if t.kind != tokAtom {
		return "", &ParseError{t.line, t.col, "expected atom"}
	}
	p.next()
	return t.text, nil
}

// parseForm parses `<op arg...>`, including the canonical empty false
// literal `<>`.
func (p *parser) parseForm() (zilast.Node, error) {
	open := p.cur()
	p.next() // consume '<'

	if p.cur().kind == tokRAngle {
		p.next()
		return &zilast.Form{}, nil
	}

	op, err := p.parseDatum()
	if err != nil {
		return nil, err
	}

	var args []zilast.Node
	for {
		if p.atEOF() {
			return nil, &ParseError{open.line, open.col, "unterminated form, missing '>'"}
		}
		if p.cur().kind == tokRAngle {
			p.next()
			break
		}
		arg, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	return &zilast.Form{Operator: op, Args: args}, nil
}

// parseList parses `(x...)`.
func (p *parser) parseList() (zilast.Node, error) {
	open := p.cur()
	p.next() // consume '('

	var elems []zilast.Node
	for {
		if p.atEOF() {
			return nil, &ParseError{open.line, open.col, "unterminated list, missing ')'"}
		}
		if p.cur().kind == tokRParen {
			p.next()
			break
		}
		d, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		elems = append(elems, d)
	}

	return &zilast.List{Elements: elems}, nil
}
