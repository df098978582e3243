package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/term"
)

// TestEqualityFactoringProducesEquationAndDisequation exercises the
// two-equation-in-one-clause case f(a)=c ∨ f(a)=d. d is registered
// after c and so has the higher precedence, making f(a)=d the single
// selected literal; equality factoring must reduce the clause to
// f(a)=c ∨ d≠c, with the selected premise literal dropped and its
// right-hand side carried over into a disequation.
func TestEqualityFactoringProducesEquationAndDisequation(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	ord := order.NewKBO(sig)
	cs := clause.NewStore()

	fFn := sig.Intern("f", 1, false, nil, term.Default)
	aConst := sig.Intern("a", 0, false, nil, term.Default)
	cConst := sig.Intern("c", 0, false, nil, term.Default)
	dConst := sig.Intern("d", 0, false, nil, term.Default)

	a := store.MustInternTerm(aConst, nil)
	c := store.MustInternTerm(cConst, nil)
	d := store.MustInternTerm(dConst, nil)
	fa := store.MustInternTerm(fFn, []*term.Term{a})

	lit1 := term.NewLiteral(store.MustInternTerm(sig.EqualityID(), []*term.Term{fa, c}), true, true)
	lit2 := term.NewLiteral(store.MustInternTerm(sig.EqualityID(), []*term.Term{fa, d}), true, true)
	given := cs.NewInput([]term.Literal{lit1, lit2}, clause.Transparent, clause.InputAxiom)
	require.NoError(t, clause.ApplySelection(given, clause.SelectTotal, ord))
	require.Equal(t, 1, given.SelectedCount(), "exactly one of the two equal-weight equations must be selected")

	ef := NewEqualityFactoring(store, cs, ord)
	out := ef.Generate(given)

	require.Len(t, out, 1, "exactly one factoring conclusion from the single selected literal")
	concl := out[0]
	assert.Len(t, concl.Literals(), 2)
	assert.Equal(t, clause.RuleEqualityFactoring, concl.Inference().Rule)
	assert.Equal(t, []clause.ID{given.ID()}, concl.Inference().Parents)
}

// TestEqualityFactoringNeedsASecondEquation confirms that a clause
// whose only positive equation is the selected a=a (it outweighs p(a))
// yields no factoring conclusion, since there is no second equation to
// pair it with.
func TestEqualityFactoringNeedsASecondEquation(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	ord := order.NewKBO(sig)
	cs := clause.NewStore()

	pPred := sig.Intern("p", 1, true, nil, term.Bool)
	aConst := sig.Intern("a", 0, false, nil, term.Default)
	a := store.MustInternTerm(aConst, nil)
	pa := store.MustInternTerm(pPred, []*term.Term{a})

	eqLit := term.NewLiteral(store.MustInternTerm(sig.EqualityID(), []*term.Term{a, a}), true, true)
	predLit := term.NewLiteral(pa, true, false)
	given := cs.NewInput([]term.Literal{eqLit, predLit}, clause.Transparent, clause.InputAxiom)
	require.NoError(t, clause.ApplySelection(given, clause.SelectTotal, ord))

	ef := NewEqualityFactoring(store, cs, ord)
	out := ef.Generate(given)
	assert.Empty(t, out, "a reflexive equation with no second equation in the clause cannot factor")
}
