package tptpclause

import (
	"regexp"

	"github.com/pkg/errors"
)

// variablePattern names this format's variable convention: a bare
// identifier (no argument list) matching a single letter from
// {u,v,w,x,y,z} with an optional trailing digit string denotes a
// universally-quantified variable, following the common
// mathematical-notation convention ("x·y = e → i(x) = y"). Every
// other bare identifier is a 0-arity constant.
var variablePattern = regexp.MustCompile(`^[uvwxyz][0-9]*$`)

// rawTerm is the pre-interning parse tree: a name plus argument list.
// Whether it denotes a function or a predicate is decided by its
// position in the literal (head of a bare atom vs. inside an
// equation or nested argument), not by anything in the syntax itself.
type rawTerm struct {
	name string
	args []rawTerm
}

func (t rawTerm) isVariable() bool {
	return len(t.args) == 0 && variablePattern.MatchString(t.name)
}

// rawLiteral is one parsed literal: either an equation (lhs = rhs /
// lhs ~= rhs) or a plain atom, always with a polarity.
type rawLiteral struct {
	negated  bool
	equality bool
	lhs, rhs rawTerm // rhs unused when !equality; lhs holds the atom
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token  { return p.toks[p.pos] }
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(k tokenKind) (token, error) {
	t := p.peek()
	if t.kind != k {
		return token{}, errors.Errorf("tptpclause: unexpected token %q", t.text)
	}
	return p.advance(), nil
}

// parseClauseLine parses one non-empty, non-comment line into its
// literals.
func parseClauseLine(line string) ([]rawLiteral, error) {
	toks, err := tokenize(stripComment(line))
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	var lits []rawLiteral
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)
		if p.peek().kind == tokPipe {
			p.advance()
			continue
		}
		break
	}
	if p.peek().kind != tokEOF {
		return nil, errors.Errorf("tptpclause: trailing input %q", p.peek().text)
	}
	return lits, nil
}

func (p *parser) parseLiteral() (rawLiteral, error) {
	negated := false
	if p.peek().kind == tokTilde {
		p.advance()
		negated = true
	}

	lhs, err := p.parseTerm()
	if err != nil {
		return rawLiteral{}, err
	}

	switch p.peek().kind {
	case tokEq:
		p.advance()
		rhs, err := p.parseTerm()
		if err != nil {
			return rawLiteral{}, err
		}
		return rawLiteral{negated: negated, equality: true, lhs: lhs, rhs: rhs}, nil
	case tokNeq:
		p.advance()
		rhs, err := p.parseTerm()
		if err != nil {
			return rawLiteral{}, err
		}
		return rawLiteral{negated: !negated, equality: true, lhs: lhs, rhs: rhs}, nil
	default:
		return rawLiteral{negated: negated, equality: false, lhs: lhs}, nil
	}
}

// parseTerm parses a left-associative chain of `*`/`+` infix
// applications over parseFactor, e.g. `(x*y)*z` or `x+0`.
func (p *parser) parseTerm() (rawTerm, error) {
	lhs, err := p.parseFactor()
	if err != nil {
		return rawTerm{}, err
	}
	for {
		var op string
		switch p.peek().kind {
		case tokStar:
			op = "*"
		case tokPlus:
			op = "+"
		default:
			return lhs, nil
		}
		p.advance()
		rhs, err := p.parseFactor()
		if err != nil {
			return rawTerm{}, err
		}
		lhs = rawTerm{name: op, args: []rawTerm{lhs, rhs}}
	}
}

func (p *parser) parseFactor() (rawTerm, error) {
	if p.peek().kind == tokLParen {
		p.advance()
		t, err := p.parseTerm()
		if err != nil {
			return rawTerm{}, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return rawTerm{}, err
		}
		return t, nil
	}

	name, err := p.expect(tokIdent)
	if err != nil {
		return rawTerm{}, err
	}
	t := rawTerm{name: name.text}
	if p.peek().kind == tokLParen {
		p.advance()
		for {
			arg, err := p.parseTerm()
			if err != nil {
				return rawTerm{}, err
			}
			t.args = append(t.args, arg)
			if p.peek().kind == tokComma {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(tokRParen); err != nil {
			return rawTerm{}, err
		}
	}
	return t, nil
}
