package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superpose/superpose/internal/term"
)

func TestCompareGroundByWeight(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	a := sig.Intern("a", 0, false, nil, term.Default)
	f := sig.Intern("f", 1, false, []term.Sort{term.Default}, term.Default)

	k := NewKBO(sig)
	ca, err := store.InternTerm(a, nil)
	require.NoError(t, err)
	fa, err := store.InternTerm(f, []*term.Term{ca})
	require.NoError(t, err)

	assert.Equal(t, Greater, k.Compare(fa, ca))
	assert.Equal(t, Less, k.Compare(ca, fa))
	assert.Equal(t, Equal, k.Compare(ca, ca))
}

// TestStableUnderSubstitution checks that the ordering is stable
// under substitution: if s is greater than t, applying any
// substitution to both sides can never flip the result to Less.
func TestStableUnderSubstitution(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	f := sig.Intern("f", 1, false, []term.Sort{term.Default}, term.Default)
	a := sig.Intern("a", 0, false, nil, term.Default)

	x := store.FreshVariable()
	fx, err := store.InternTerm(f, []*term.Term{x})
	require.NoError(t, err)

	k := NewKBO(sig)
	require.Equal(t, Greater, k.Compare(fx, x))

	ca, err := store.InternTerm(a, nil)
	require.NoError(t, err)
	applier := groundSubst{x: x, to: ca}
	fa := applier.Apply(fx)
	got := k.Compare(fa, applier.Apply(x))
	assert.Contains(t, []Comparison{Greater, Equal}, got)
}

type groundSubst struct {
	x, to *term.Term
}

func (g groundSubst) Apply(t *term.Term) *term.Term {
	if t == g.x {
		return g.to
	}
	return t
}

func TestComparatorMemoizedAndEvaluatesLikeCompare(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	f := sig.Intern("f", 1, false, []term.Sort{term.Default}, term.Default)
	a := sig.Intern("a", 0, false, nil, term.Default)

	x := store.FreshVariable()
	fx, err := store.InternTerm(f, []*term.Term{x})
	require.NoError(t, err)
	ca, err := store.InternTerm(a, nil)
	require.NoError(t, err)

	k := NewKBO(sig)
	c1 := k.Precompile(fx, x)
	c2 := k.Precompile(fx, x)
	assert.Same(t, c1, c2, "Precompile must memoize by term id pair")

	applier := groundSubst{x: x, to: ca}
	assert.Equal(t, k.Compare(applier.Apply(fx), applier.Apply(x)), c1.Evaluate(applier))
}
