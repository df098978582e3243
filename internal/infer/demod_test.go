package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/term"
)

// TestForwardDemodulationRewritesOwnLiteral registers an active unit
// equation f(a) = b and checks that ForwardSimplify rewrites a clause
// p(f(a)) to p(b).
func TestForwardDemodulationRewritesOwnLiteral(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	ord := order.NewKBO(sig)
	cs := clause.NewStore()
	indices := NewIndices(store, ord)

	fFn := sig.Intern("f", 1, false, nil, term.Default)
	aConst := sig.Intern("a", 0, false, nil, term.Default)
	bConst := sig.Intern("b", 0, false, nil, term.Default)
	pPred := sig.Intern("p", 1, true, nil, term.Bool)

	a := store.MustInternTerm(aConst, nil)
	b := store.MustInternTerm(bConst, nil)
	fa := store.MustInternTerm(fFn, []*term.Term{a})

	eqLit := term.NewLiteral(store.MustInternTerm(sig.EqualityID(), []*term.Term{fa, b}), true, true)
	eqClause := cs.NewInput([]term.Literal{eqLit}, clause.Transparent, clause.InputAxiom)
	require.NoError(t, clause.ApplySelection(eqClause, clause.SelectTotal, ord))
	indices.RegisterActive(eqClause)

	pfa := store.MustInternTerm(pPred, []*term.Term{fa})
	target := cs.NewInput([]term.Literal{term.NewLiteral(pfa, true, false)}, clause.Transparent, clause.InputAxiom)

	fd := NewForwardDemodulation(store, cs, ord, indices)
	replacement, premises, ok := fd.ForwardSimplify(target)
	require.True(t, ok, "p(f(a)) must simplify via the f(a)->b demodulator")
	require.Len(t, premises, 1)
	assert.Same(t, eqClause, premises[0])
	require.Len(t, replacement.Literals(), 1)
	assert.Same(t, b, replacement.Literals()[0].Atom().Args()[0])
	assert.Equal(t, clause.RuleForwardDemodulation, replacement.Inference().Rule)
}

// TestForwardDemodulationNoOpWhenNothingMatches confirms a clause with
// no rewritable subterm is reported unchanged.
func TestForwardDemodulationNoOpWhenNothingMatches(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	ord := order.NewKBO(sig)
	cs := clause.NewStore()
	indices := NewIndices(store, ord)

	pPred := sig.Intern("p", 1, true, nil, term.Bool)
	aConst := sig.Intern("a", 0, false, nil, term.Default)
	a := store.MustInternTerm(aConst, nil)
	pa := store.MustInternTerm(pPred, []*term.Term{a})
	target := cs.NewInput([]term.Literal{term.NewLiteral(pa, true, false)}, clause.Transparent, clause.InputAxiom)

	fd := NewForwardDemodulation(store, cs, ord, indices)
	_, _, ok := fd.ForwardSimplify(target)
	assert.False(t, ok)
}

// TestBackwardDemodulationRewritesActiveVictim registers p(f(a)) as an
// already-active clause, then activates the equation f(a) = b and
// checks BackwardSimplify produces a Rewrite retracting the old victim
// in favor of p(b).
func TestBackwardDemodulationRewritesActiveVictim(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	ord := order.NewKBO(sig)
	cs := clause.NewStore()
	indices := NewIndices(store, ord)

	fFn := sig.Intern("f", 1, false, nil, term.Default)
	aConst := sig.Intern("a", 0, false, nil, term.Default)
	bConst := sig.Intern("b", 0, false, nil, term.Default)
	pPred := sig.Intern("p", 1, true, nil, term.Bool)

	a := store.MustInternTerm(aConst, nil)
	b := store.MustInternTerm(bConst, nil)
	fa := store.MustInternTerm(fFn, []*term.Term{a})
	pfa := store.MustInternTerm(pPred, []*term.Term{fa})

	victim := cs.NewInput([]term.Literal{term.NewLiteral(pfa, true, false)}, clause.Transparent, clause.InputAxiom)
	require.NoError(t, clause.ApplySelection(victim, clause.SelectTotal, ord))
	indices.RegisterActive(victim)

	eqLit := term.NewLiteral(store.MustInternTerm(sig.EqualityID(), []*term.Term{fa, b}), true, true)
	eqClause := cs.NewInput([]term.Literal{eqLit}, clause.Transparent, clause.InputAxiom)
	require.NoError(t, clause.ApplySelection(eqClause, clause.SelectTotal, ord))

	bd := NewBackwardDemodulation(store, cs, ord, indices)
	rewrites := bd.BackwardSimplify(eqClause)

	require.Len(t, rewrites, 1)
	assert.Same(t, victim, rewrites[0].Victim)
	require.Len(t, rewrites[0].Replacement.Literals(), 1)
	assert.Same(t, b, rewrites[0].Replacement.Literals()[0].Atom().Args()[0])
	assert.Equal(t, clause.RuleBackwardDemodulation, rewrites[0].Replacement.Inference().Rule)
}
