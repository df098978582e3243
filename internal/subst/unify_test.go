package subst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superpose/superpose/internal/term"
)

const (
	bankQuery  Bank = 0
	bankResult Bank = 1
)

func setup(t *testing.T) (*term.Store, *term.Signature, term.FunctorID, term.FunctorID) {
	t.Helper()
	sig := term.NewSignature()
	store := term.NewStore(sig)
	f := sig.Intern("f", 2, false, []term.Sort{term.Default, term.Default}, term.Default)
	a := sig.Intern("a", 0, false, nil, term.Default)
	return store, sig, f, a
}

// TestUnifySoundness checks the defining invariant of a unifier: for
// the substitution σ it produces, applying σ to both sides yields
// structurally identical terms.
func TestUnifySoundness(t *testing.T) {
	store, _, f, a := setup(t)
	ca, err := store.InternTerm(a, nil)
	require.NoError(t, err)

	x := store.FreshVariable()
	y := store.FreshVariable()
	// f(x, a) in bank 0, f(a, y) in bank 1.
	s, err := store.InternTerm(f, []*term.Term{x, ca})
	require.NoError(t, err)
	u, err := store.InternTerm(f, []*term.Term{ca, y})
	require.NoError(t, err)

	e := NewEngine(store)
	ok := e.Unify(s, bankQuery, u, bankResult)
	require.True(t, ok)

	as := e.Apply(s, bankQuery)
	au := e.Apply(u, bankResult)
	assert.Same(t, as, au, "unifier must make both sides structurally identical")
}

func TestUnifyFailsOnFunctorClash(t *testing.T) {
	store, sig, f, a := setup(t)
	g := sig.Intern("g", 0, false, nil, term.Default)
	ca, err := store.InternTerm(a, nil)
	require.NoError(t, err)
	cg, err := store.InternTerm(g, nil)
	require.NoError(t, err)

	x := store.FreshVariable()
	s, err := store.InternTerm(f, []*term.Term{x, ca})
	require.NoError(t, err)
	t2, err := store.InternTerm(f, []*term.Term{cg, ca})
	require.NoError(t, err)
	_ = t2

	e := NewEngine(store)
	// g and a both nullary: unify x with g(constant) style clash via
	// mismatched functors at depth 2.
	u, err := store.InternTerm(f, []*term.Term{x, cg})
	require.NoError(t, err)
	assert.False(t, e.Unify(s, bankQuery, u, bankResult))
}

func TestOccursCheckPreventsCyclicBinding(t *testing.T) {
	store, _, f, _ := setup(t)
	x := store.FreshVariable()
	y := store.FreshVariable()
	fxy, err := store.InternTerm(f, []*term.Term{x, y})
	require.NoError(t, err)

	e := NewEngine(store)
	// x =?= f(x, y) must fail the occurs check.
	assert.False(t, e.Unify(x, bankQuery, fxy, bankQuery))
}

// TestMatchSoundness checks that after a successful match(p,q), the
// pattern-side substitution σ turns p into q exactly.
func TestMatchSoundness(t *testing.T) {
	store, _, f, a := setup(t)
	ca, err := store.InternTerm(a, nil)
	require.NoError(t, err)
	x := store.FreshVariable()
	pattern, err := store.InternTerm(f, []*term.Term{x, ca})
	require.NoError(t, err)
	instance, err := store.InternTerm(f, []*term.Term{ca, ca})
	require.NoError(t, err)

	e := NewEngine(store)
	require.True(t, e.Match(pattern, bankQuery, instance, bankResult))
	assert.Same(t, instance, e.Apply(pattern, bankQuery))
}

func TestMatchRejectsSpecializingInstance(t *testing.T) {
	store, _, f, a := setup(t)
	ca, err := store.InternTerm(a, nil)
	require.NoError(t, err)
	x := store.FreshVariable()
	y := store.FreshVariable()
	pattern, err := store.InternTerm(f, []*term.Term{ca, ca})
	require.NoError(t, err)
	instance, err := store.InternTerm(f, []*term.Term{x, y})
	require.NoError(t, err)

	e := NewEngine(store)
	assert.False(t, e.Match(pattern, bankQuery, instance, bankResult))
}

func TestBacktrackUndoesBindings(t *testing.T) {
	store, _, f, a := setup(t)
	ca, err := store.InternTerm(a, nil)
	require.NoError(t, err)
	x := store.FreshVariable()
	s, err := store.InternTerm(f, []*term.Term{x, ca})
	require.NoError(t, err)
	u, err := store.InternTerm(f, []*term.Term{ca, ca})
	require.NoError(t, err)

	e := NewEngine(store)
	mark := e.Record()
	require.True(t, e.Unify(s, bankQuery, u, bankResult))
	applied := e.Apply(x, bankQuery)
	assert.Same(t, ca, applied)

	e.Backtrack(mark)
	repr, _ := e.Deref(x, bankQuery)
	assert.Same(t, x, repr, "after backtrack x must be unbound again")
}
