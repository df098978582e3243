package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/term"
)

// TestResolutionBinaryResolvesComplementaryUnitClauses exercises the
// textbook case: p(a) and ~p(X) resolve on the unifier X := a,
// yielding the empty clause.
func TestResolutionBinaryResolvesComplementaryUnitClauses(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	ord := order.NewKBO(sig)
	cs := clause.NewStore()
	indices := NewIndices(store, ord)

	pPred := sig.Intern("p", 1, true, nil, term.Bool)
	aConst := sig.Intern("a", 0, false, nil, term.Default)

	a := store.MustInternTerm(aConst, nil)
	pa := store.MustInternTerm(pPred, []*term.Term{a})

	posClause := cs.NewInput([]term.Literal{term.NewLiteral(pa, true, false)}, clause.Transparent, clause.InputAxiom)
	require.NoError(t, clause.ApplySelection(posClause, clause.SelectTotal, ord))
	indices.RegisterActive(posClause)

	x := store.FreshVariable()
	px := store.MustInternTerm(pPred, []*term.Term{x})
	negClause := cs.NewInput([]term.Literal{term.NewLiteral(px, false, false)}, clause.Transparent, clause.InputAxiom)
	require.NoError(t, clause.ApplySelection(negClause, clause.SelectTotal, ord))

	res := NewResolution(store, cs, ord, indices, nil)
	out := res.Generate(negClause)

	require.Len(t, out, 1, "exactly one resolvent expected")
	assert.True(t, out[0].IsEmpty(), "resolving p(a) against ~p(X) must yield the empty clause")
	assert.Equal(t, clause.RuleResolution, out[0].Inference().Rule)
}

// TestResolutionSkipsEqualityLiterals confirms equality literals are
// never fed to ordinary binary resolution — they belong to
// superposition/equality-factoring instead.
func TestResolutionSkipsEqualityLiterals(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	ord := order.NewKBO(sig)
	cs := clause.NewStore()
	indices := NewIndices(store, ord)

	aConst := sig.Intern("a", 0, false, nil, term.Default)
	bConst := sig.Intern("b", 0, false, nil, term.Default)
	a := store.MustInternTerm(aConst, nil)
	b := store.MustInternTerm(bConst, nil)

	eqLit := term.NewLiteral(store.MustInternTerm(sig.EqualityID(), []*term.Term{a, b}), false, true)
	given := cs.NewInput([]term.Literal{eqLit}, clause.Transparent, clause.InputAxiom)
	require.NoError(t, clause.ApplySelection(given, clause.SelectTotal, ord))

	res := NewResolution(store, cs, ord, indices, nil)
	out := res.Generate(given)
	assert.Empty(t, out)
}
