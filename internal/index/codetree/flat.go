// Package codetree implements the code-tree index: a
// sequential bytecode matcher optimized for one-sided matching of
// many patterns against a query, used by forward demodulation and the
// conditional-redundancy handler.
package codetree

import "github.com/superpose/superpose/internal/term"

// Tok is one token of a flat (preorder-with-arity) term traversal.
type Tok struct {
	IsVar   bool
	VarID   uint32
	Functor term.FunctorID
	Arity   int
}

// Flatten expands t into its preorder token sequence.
func Flatten(t *term.Term) []Tok {
	var out []Tok
	var walk func(*term.Term)
	walk = func(n *term.Term) {
		if n.IsVar() || n.IsSpecialVar() {
			out = append(out, Tok{IsVar: true, VarID: n.VarID()})
			return
		}
		out = append(out, Tok{Functor: n.Functor(), Arity: n.Arity()})
		for _, a := range n.Args() {
			walk(a)
		}
	}
	walk(t)
	return out
}
