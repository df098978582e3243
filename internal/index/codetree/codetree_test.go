package codetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superpose/superpose/internal/term"
)

func TestMatchOwnFlatFormSucceedsOnce(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	f := sig.Intern("f", 2, false, nil, term.Default)
	g := sig.Intern("g", 1, false, nil, term.Default)

	x := store.FreshVariable()
	gx, err := store.InternTerm(g, []*term.Term{x})
	require.NoError(t, err)
	pattern, err := store.InternTerm(f, []*term.Term{x, gx})
	require.NoError(t, err)

	tr := New()
	tr.Insert(pattern, "data")

	hits := tr.MatchTerm(pattern)
	require.Len(t, hits, 1)
	assert.Equal(t, "data", hits[0].Data)
}

func TestCheckVarRequiresRepeatedSubtermEquality(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	f := sig.Intern("f", 2, false, nil, term.Default)
	a := sig.Intern("a", 0, false, nil, term.Default)
	b := sig.Intern("b", 0, false, nil, term.Default)

	x := store.FreshVariable()
	pattern, err := store.InternTerm(f, []*term.Term{x, x})
	require.NoError(t, err)

	tr := New()
	tr.Insert(pattern, "xx")

	ta, err := store.InternTerm(a, nil)
	require.NoError(t, err)
	same, err := store.InternTerm(f, []*term.Term{ta, ta})
	require.NoError(t, err)
	assert.Len(t, tr.MatchTerm(same), 1, "f(a,a) matches f(X,X)")

	tb, err := store.InternTerm(b, nil)
	require.NoError(t, err)
	diff, err := store.InternTerm(f, []*term.Term{ta, tb})
	require.NoError(t, err)
	assert.Empty(t, tr.MatchTerm(diff), "f(a,b) must not match f(X,X)")
}

func TestRemoveMarksPatternDeadAndCompacts(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	a := sig.Intern("a", 0, false, nil, term.Default)
	ta, err := store.InternTerm(a, nil)
	require.NoError(t, err)

	tr := New()
	tr.Insert(ta, "d1")
	require.Len(t, tr.MatchTerm(ta), 1)

	tr.Remove("d1")
	assert.Empty(t, tr.MatchTerm(ta))
}

func TestRebuildIsInverseOfFlatten(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	f := sig.Intern("f", 2, false, nil, term.Default)
	g := sig.Intern("g", 1, false, nil, term.Default)
	x := store.FreshVariable()
	gx, err := store.InternTerm(g, []*term.Term{x})
	require.NoError(t, err)
	orig, err := store.InternTerm(f, []*term.Term{x, gx})
	require.NoError(t, err)

	toks := Flatten(orig)
	rebuilt := Rebuild(store, toks)
	assert.Same(t, orig, rebuilt)
}
