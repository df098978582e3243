package tptpclause

import (
	"github.com/superpose/superpose/internal/term"
)

// compiler interns rawTerms against one shared term.Store/Signature,
// tracking the per-clause variable-name -> id mapping (reset for
// each clause line: variables do not carry across lines).
type compiler struct {
	store *term.Store
	vars  map[string]uint32
}

func newCompiler(store *term.Store) *compiler {
	return &compiler{store: store, vars: make(map[string]uint32)}
}

func (c *compiler) resetVars() { c.vars = make(map[string]uint32) }

func (c *compiler) variable(name string) *term.Term {
	id, ok := c.vars[name]
	if !ok {
		id = uint32(len(c.vars))
		c.vars[name] = id
	}
	return c.store.Variable(id)
}

// term compiles rt as an ordinary function/constant term (never a
// predicate): every nested argument and every equation side goes
// through this path.
func (c *compiler) term(rt rawTerm) (*term.Term, error) {
	if rt.isVariable() {
		return c.variable(rt.name), nil
	}
	args := make([]*term.Term, len(rt.args))
	for i, a := range rt.args {
		t, err := c.term(a)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	functor := c.store.Signature().Intern(rt.name, len(rt.args), false, nil, term.Default)
	return c.store.InternTerm(functor, args)
}

// predicateAtom compiles rt as a predicate atom: its head functor is
// registered as a predicate, but its arguments are ordinary terms.
func (c *compiler) predicateAtom(rt rawTerm) (*term.Term, error) {
	args := make([]*term.Term, len(rt.args))
	for i, a := range rt.args {
		t, err := c.term(a)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	functor := c.store.Signature().Intern(rt.name, len(rt.args), true, nil, term.Bool)
	return c.store.InternTerm(functor, args)
}

// literal compiles one rawLiteral into a term.Literal.
func (c *compiler) literal(rl rawLiteral) (term.Literal, error) {
	if rl.equality {
		lhs, err := c.term(rl.lhs)
		if err != nil {
			return term.Literal{}, err
		}
		rhs, err := c.term(rl.rhs)
		if err != nil {
			return term.Literal{}, err
		}
		atom, err := c.store.InternTerm(c.store.Signature().EqualityID(), []*term.Term{lhs, rhs})
		if err != nil {
			return term.Literal{}, err
		}
		return term.NewLiteral(atom, !rl.negated, true), nil
	}

	atom, err := c.predicateAtom(rl.lhs)
	if err != nil {
		return term.Literal{}, err
	}
	return term.NewLiteral(atom, !rl.negated, false), nil
}
