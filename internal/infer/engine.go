package infer

import (
	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/subst"
	"github.com/superpose/superpose/internal/term"
)

// Generator is the contract every generating inference engine
// satisfies. Laziness is simplified to an eagerly-built slice,
// matching the convention already established by
// internal/index/substtree.Iterator.
type Generator interface {
	Generate(given *clause.Clause) []*clause.Clause
}

// ForwardSimplifier is the contract a forward-simplifying engine
// satisfies.
type ForwardSimplifier interface {
	ForwardSimplify(c *clause.Clause) (replacement *clause.Clause, premises []*clause.Clause, ok bool)
}

// BackwardSimplifier is the contract a backward-simplifying engine
// satisfies.
type BackwardSimplifier interface {
	BackwardSimplify(c *clause.Clause) []Rewrite
}

// applyLiteral fully substitutes lit's atom via eng, read in bank,
// preserving polarity/commutative flags.
func applyLiteral(eng *subst.Engine, lit term.Literal, bank subst.Bank) term.Literal {
	return term.NewLiteral(eng.Apply(lit.Atom(), bank), lit.Polarity(), lit.Commutative())
}
