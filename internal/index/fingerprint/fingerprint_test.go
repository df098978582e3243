package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superpose/superpose/internal/term"
)

func mustTerm(t *testing.T, store *term.Store, sig *term.Signature, name string, args ...*term.Term) *term.Term {
	t.Helper()
	f := sig.Intern(name, len(args), false, nil, term.Default)
	tm, err := store.InternTerm(f, args)
	require.NoError(t, err)
	return tm
}

func TestFingerprintInvariantUnderAlphaVariants(t *testing.T) {
	sig := term.NewSignature()
	store1 := term.NewStore(sig)
	store2 := term.NewStore(sig)

	// f(g(X), Y) in one store, f(g(X'), Y') in another: alpha-variants.
	x1, y1 := store1.FreshVariable(), store1.FreshVariable()
	g1 := sig.Intern("g", 1, false, nil, term.Default)
	gx1, err := store1.InternTerm(g1, []*term.Term{x1})
	require.NoError(t, err)
	f := sig.Intern("f", 2, false, nil, term.Default)
	t1, err := store1.InternTerm(f, []*term.Term{gx1, y1})
	require.NoError(t, err)

	x2, y2 := store2.FreshVariable(), store2.FreshVariable()
	gx2, err := store2.InternTerm(g1, []*term.Term{x2})
	require.NoError(t, err)
	t2, err := store2.InternTerm(f, []*term.Term{gx2, y2})
	require.NoError(t, err)

	assert.Equal(t, Compute(t1), Compute(t2))
}

func TestFingerprintDistinguishesDifferentRootFunctors(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	a := mustTerm(t, store, sig, "a")
	b := mustTerm(t, store, sig, "b")
	assert.NotEqual(t, Compute(a), Compute(b))
}

func TestCodeAtNonexistentBeyondArity(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	a := mustTerm(t, store, sig, "a")
	f := sig.Intern("f", 1, false, nil, term.Default)
	fa, err := store.InternTerm(f, []*term.Term{a})
	require.NoError(t, err)

	// position {1} (second argument) does not exist on a unary f.
	assert.Equal(t, Nonexistent, codeAt(fa, []int{1}))
}

func TestCodeAtBelowVariable(t *testing.T) {
	store := term.NewStore(term.NewSignature())
	x := store.FreshVariable()
	assert.Equal(t, BelowVariable, codeAt(x, []int{0}))
	assert.Equal(t, Variable, codeAt(x, []int{}))
}

func TestIndexRoundTripFindsExactTerm(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	fx := mustTerm(t, store, sig, "f", store.FreshVariable())

	idx := New()
	bucket := idx.InsertTerm(fx)

	candidates := idx.QueryUnificationCandidates(fx)
	assert.Contains(t, candidates, bucket)
}

func TestIndexVariableQueryMatchesEverything(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	a := mustTerm(t, store, sig, "a")
	b := mustTerm(t, store, sig, "b")

	idx := New()
	bucketA := idx.InsertTerm(a)
	bucketB := idx.InsertTerm(b)

	query := store.FreshVariable()
	candidates := idx.QueryUnificationCandidates(query)
	assert.Contains(t, candidates, bucketA)
	assert.Contains(t, candidates, bucketB)
}

func TestIndexRemoveDropsBucket(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	a := mustTerm(t, store, sig, "a")

	idx := New()
	bucket := idx.InsertTerm(a)
	idx.Remove(a, bucket)

	candidates := idx.QueryUnificationCandidates(a)
	assert.NotContains(t, candidates, bucket)
}

func TestGeneralizationQueryExcludesNonMatchingFunctor(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	a := mustTerm(t, store, sig, "a")
	b := mustTerm(t, store, sig, "b")

	idx := New()
	bucketB := idx.InsertTerm(b)

	// a's fingerprint queried for generalizers of a must not pull in b.
	candidates := idx.QueryGeneralizationCandidates(a)
	assert.NotContains(t, candidates, bucketB)
}
