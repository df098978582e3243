package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/term"
)

// TestEqualityResolutionDischargesGroundReflexiveDisequation exercises
// the unit-clause case a≠a, which equality resolution must reduce to
// the empty clause (σ = mgu(a,a) is trivial, C is empty).
func TestEqualityResolutionDischargesGroundReflexiveDisequation(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	ord := order.NewKBO(sig)
	cs := clause.NewStore()

	aConst := sig.Intern("a", 0, false, nil, term.Default)
	a := store.MustInternTerm(aConst, nil)

	lit := term.NewLiteral(store.MustInternTerm(sig.EqualityID(), []*term.Term{a, a}), false, true)
	given := cs.NewInput([]term.Literal{lit}, clause.Transparent, clause.InputAxiom)
	require.NoError(t, clause.ApplySelection(given, clause.SelectTotal, ord))

	er := NewEqualityResolution(store, cs)
	out := er.Generate(given)

	require.Len(t, out, 1)
	concl := out[0]
	assert.True(t, concl.IsEmpty(), "a≠a with no other literals must resolve to the empty clause")
	assert.Equal(t, clause.RuleEqualityResolution, concl.Inference().Rule)
	assert.Equal(t, []clause.ID{given.ID()}, concl.Inference().Parents)
}

// TestEqualityResolutionUnifiesVariableDisequation exercises x≠a ∨
// p(x): σ = mgu(x,a) = {x↦a}, so the conclusion must be p(a).
func TestEqualityResolutionUnifiesVariableDisequation(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	ord := order.NewKBO(sig)
	cs := clause.NewStore()

	pPred := sig.Intern("p", 1, true, nil, term.Bool)
	aConst := sig.Intern("a", 0, false, nil, term.Default)
	a := store.MustInternTerm(aConst, nil)
	x := store.Variable(0)
	px := store.MustInternTerm(pPred, []*term.Term{x})

	eqLit := term.NewLiteral(store.MustInternTerm(sig.EqualityID(), []*term.Term{x, a}), false, true)
	predLit := term.NewLiteral(px, true, false)
	given := cs.NewInput([]term.Literal{eqLit, predLit}, clause.Transparent, clause.InputAxiom)
	require.NoError(t, clause.ApplySelection(given, clause.SelectComplete, ord))

	er := NewEqualityResolution(store, cs)
	out := er.Generate(given)

	require.Len(t, out, 1)
	concl := out[0]
	require.Len(t, concl.Literals(), 1)
	pa := store.MustInternTerm(pPred, []*term.Term{a})
	assert.Equal(t, pa, concl.Literals()[0].Atom())
	assert.True(t, concl.Literals()[0].Polarity())
}

// TestEqualityResolutionSkipsUnselectedAndPositiveLiterals confirms a
// negative equality literal that lost selection, and a positive
// equality literal, never serve as the premise.
func TestEqualityResolutionSkipsUnselectedAndPositiveLiterals(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	ord := order.NewKBO(sig)
	cs := clause.NewStore()

	pPred := sig.Intern("p", 1, true, nil, term.Bool)
	aConst := sig.Intern("a", 0, false, nil, term.Default)
	a := store.MustInternTerm(aConst, nil)
	x := store.Variable(0)
	pa := store.MustInternTerm(pPred, []*term.Term{a})

	posEq := term.NewLiteral(store.MustInternTerm(sig.EqualityID(), []*term.Term{a, a}), true, true)
	negEq := term.NewLiteral(store.MustInternTerm(sig.EqualityID(), []*term.Term{x, a}), false, true)
	predLit := term.NewLiteral(pa, true, false)
	given := cs.NewInput([]term.Literal{posEq, negEq, predLit}, clause.Transparent, clause.InputAxiom)
	// Select only the positive equation, so negEq (which would
	// otherwise unify trivially) is excluded from the selected prefix
	// and must not fire equality resolution.
	require.NoError(t, clause.ApplySelection(given, func([]term.Literal, clause.LiteralOrder) []int { return []int{0} }, ord))

	er := NewEqualityResolution(store, cs)
	out := er.Generate(given)
	assert.Empty(t, out, "a selected positive equation and an unselected disequation both yield nothing")
}
