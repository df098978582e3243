// Package fingerprint implements the fingerprint index: a coarse,
// cheap pre-filter mapping terms to bucket ids via a fixed-length
// top-of-term signature, used to cut down the candidate set before an
// expensive substitution-tree unification walk.
package fingerprint

import "github.com/superpose/superpose/internal/term"

// Code is one fingerprint component: either a functor id, or one of
// three special codes marking a variable, a position unreachable
// because an ancestor was a variable, or a position that does not
// exist at all.
type Code int64

const (
	// Nonexistent marks a position that does not exist in the term
	// because an ancestor functor's arity is too small to reach it.
	Nonexistent Code = -1
	// Variable marks a position occupied by a variable.
	Variable Code = -2
	// BelowVariable marks a position unreachable because an ancestor
	// along the path was itself a variable.
	BelowVariable Code = -3
)

func functorCode(id term.FunctorID) Code { return Code(id) }

// positions are the fixed argument-index paths sampled from the root
// to build a Fingerprint: the root symbol, its first argument, that
// argument's own first argument, and the root's second argument. Two
// of these four positions (root, first argument) mirror the classical
// fingerprint index's own sampling; the two extra positions are this
// package's own extension, trading a slightly larger fixed tuple for
// a tighter pre-filter — they keep the same soundness contract, since
// compatible() stays permissive at every position.
var positions = [][]int{
	{},
	{0},
	{0, 0},
	{1},
}

// Length is the number of components in every Fingerprint.
func Length() int { return len(positions) }

// Fingerprint is a fixed-length tuple of Codes.
type Fingerprint []Code

func codeAt(t *term.Term, path []int) Code {
	cur := t
	for _, idx := range path {
		if cur.IsVar() || cur.IsSpecialVar() {
			return BelowVariable
		}
		if idx >= cur.Arity() {
			return Nonexistent
		}
		cur = cur.Args()[idx]
	}
	if cur.IsVar() || cur.IsSpecialVar() {
		return Variable
	}
	return functorCode(cur.Functor())
}

// Compute builds t's fingerprint. Alpha-variants of t produce the
// same fingerprint, since every component
// either names a functor or one of the three variable-shaped special
// codes — no component ever names a specific variable id.
func Compute(t *term.Term) Fingerprint {
	fp := make(Fingerprint, len(positions))
	for i, p := range positions {
		fp[i] = codeAt(t, p)
	}
	return fp
}

// compatible decides, at one fingerprint position, whether a query
// code and an indexed code could still belong to unifiable terms. It
// is deliberately permissive: returning true when in doubt preserves
// the "false positives allowed, false negatives not allowed"
// soundness contract.
func compatible(query, indexed Code) bool {
	switch {
	case query == indexed:
		return true
	case query == BelowVariable || indexed == BelowVariable:
		return true
	case query == Variable:
		return indexed != Nonexistent
	case indexed == Variable:
		return query != Nonexistent
	default:
		return false
	}
}
