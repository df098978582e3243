// Package tptpclause implements a minimal clause text format: one
// clause per line, literals separated by `|`, `~` for negation, `=`
// infix for equality, e.g. `e*x=x` or `~p(x) | r(x)`. This is
// deliberately not TPTP or SMT-LIB syntax — just enough surface to
// load clause sets for tests and the CLI without pulling in a full
// external parser.
package tptpclause

import (
	"strings"

	"github.com/pkg/errors"
)

type tokenKind uint8

const (
	tokIdent tokenKind = iota
	tokLParen
	tokRParen
	tokComma
	tokPipe
	tokTilde
	tokEq
	tokNeq
	tokStar
	tokPlus
	tokEOF
)

type token struct {
	kind tokenKind
	text string
}

// lexer splits one clause line into tokens. Identifiers are maximal
// runs of letters, digits, underscores and apostrophes; each of
// `( ) , | * + ~ =` is its own single-character token, the
// two-character `~=` and `!=` are accepted as disequality shorthands,
// and any other non-space character is an error.
type lexer struct {
	input []rune
	pos   int
}

func newLexer(line string) *lexer {
	return &lexer{input: []rune(line)}
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '\'' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func (l *lexer) next() (token, error) {
	for {
		r, ok := l.peekRune()
		if !ok {
			return token{kind: tokEOF}, nil
		}
		if r == ' ' || r == '\t' {
			l.pos++
			continue
		}
		break
	}

	r, _ := l.peekRune()
	switch r {
	case '(':
		l.pos++
		return token{kind: tokLParen}, nil
	case ')':
		l.pos++
		return token{kind: tokRParen}, nil
	case ',':
		l.pos++
		return token{kind: tokComma}, nil
	case '|':
		l.pos++
		return token{kind: tokPipe}, nil
	case '*':
		l.pos++
		return token{kind: tokStar}, nil
	case '+':
		l.pos++
		return token{kind: tokPlus}, nil
	case '~':
		l.pos++
		if r2, ok := l.peekRune(); ok && r2 == '=' {
			l.pos++
			return token{kind: tokNeq}, nil
		}
		return token{kind: tokTilde}, nil
	case '!':
		l.pos++
		if r2, ok := l.peekRune(); ok && r2 == '=' {
			l.pos++
			return token{kind: tokNeq}, nil
		}
		return token{}, errors.Errorf("tptpclause: unexpected '!' at position %d", l.pos)
	case '=':
		l.pos++
		return token{kind: tokEq}, nil
	}

	if isIdentRune(r) {
		start := l.pos
		for {
			r, ok := l.peekRune()
			if !ok || !isIdentRune(r) {
				break
			}
			l.pos++
		}
		return token{kind: tokIdent, text: string(l.input[start:l.pos])}, nil
	}

	return token{}, errors.Errorf("tptpclause: unexpected character %q at position %d", r, l.pos)
}

// tokenize returns every token on line, EOF-terminated.
func tokenize(line string) ([]token, error) {
	l := newLexer(line)
	var out []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if t.kind == tokEOF {
			return out, nil
		}
	}
}

// stripComment drops a `%`-introduced trailing comment, TPTP's own
// comment marker, reused here since it never collides with this
// format's token set.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '%'); i >= 0 {
		return line[:i]
	}
	return line
}
