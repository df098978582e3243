package codetree

import "github.com/superpose/superpose/internal/term"

// Rebuild reconstructs the *term.Term a flattened span denotes,
// interning through store so the result rejoins the shared-term arena
//. It is the inverse of Flatten, used by demodulation
// to recover the query subterm bound to a pattern variable so the
// rewriter can splice it into the replacement's right-hand side.
func Rebuild(store *term.Store, span []Tok) *term.Term {
	t, _ := rebuild(store, span, 0)
	return t
}

func rebuild(store *term.Store, span []Tok, i int) (*term.Term, int) {
	tok := span[i]
	if tok.IsVar {
		return store.Variable(tok.VarID), i + 1
	}
	args := make([]*term.Term, tok.Arity)
	pos := i + 1
	for k := 0; k < tok.Arity; k++ {
		var a *term.Term
		a, pos = rebuild(store, span, pos)
		args[k] = a
	}
	return store.MustInternTerm(tok.Functor, args), pos
}
