package redundancy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/term"
)

// TestIsCoveredMatchesRecordedInstance confirms the exact tuple
// recorded via Record is reported covered, and an unrelated tuple
// against the same clause is not.
func TestIsCoveredMatchesRecordedInstance(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	h := New(store)

	fFn := sig.Intern("f", 1, false, nil, term.Default)
	aConst := sig.Intern("a", 0, false, nil, term.Default)
	bConst := sig.Intern("b", 0, false, nil, term.Default)
	a := store.MustInternTerm(aConst, nil)
	b := store.MustInternTerm(bConst, nil)
	fa := store.MustInternTerm(fFn, []*term.Term{a})

	id := clause.ID(1)
	assert.False(t, h.IsCovered(id, fa, b, RelEqual), "nothing recorded yet")

	h.Record(id, fa, b, RelEqual)
	assert.True(t, h.IsCovered(id, fa, b, RelEqual))
	assert.False(t, h.IsCovered(id, b, fa, RelEqual), "argument order matters")
	assert.False(t, h.IsCovered(id, fa, b, RelGreater), "relation matters")
}

// TestForgetDropsTheClausesCoverTree confirms Forget makes a
// previously-covered tuple uncovered again, as happens when a clause
// leaves every container and index.
func TestForgetDropsTheClausesCoverTree(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	h := New(store)

	aConst := sig.Intern("a", 0, false, nil, term.Default)
	bConst := sig.Intern("b", 0, false, nil, term.Default)
	a := store.MustInternTerm(aConst, nil)
	b := store.MustInternTerm(bConst, nil)

	id := clause.ID(7)
	h.Record(id, a, b, RelEqual)
	assert.True(t, h.IsCovered(id, a, b, RelEqual))

	h.Forget(id)
	assert.False(t, h.IsCovered(id, a, b, RelEqual))
}
