package clause

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superpose/superpose/internal/term"
)

func literal(t *testing.T, store *term.Store, sig *term.Signature, name string, arity int) term.Literal {
	t.Helper()
	f := sig.Intern(name, arity, true, nil, term.Bool)
	args := make([]*term.Term, arity)
	for i := range args {
		args[i] = store.FreshVariable()
	}
	atom, err := store.InternTerm(f, args)
	require.NoError(t, err)
	return term.NewLiteral(atom, true, false)
}

func TestStateMachineForbidsSkippingStates(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	s := NewStore()
	p := literal(t, store, sig, "p", 1)

	c := s.NewInput([]term.Literal{p}, Transparent, InputAxiom)
	assert.Equal(t, Unprocessed, c.State())

	err := c.SetState(Active)
	var invalid InvalidTransition
	assert.ErrorAs(t, err, &invalid)

	require.NoError(t, c.SetState(Passive))
	require.NoError(t, c.SetState(Selected))
	require.NoError(t, c.SetState(Active))
	assert.Error(t, c.SetState(Passive))
}

func TestWeightIsSumOfLiteralWeightsAndCached(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	s := NewStore()
	p := literal(t, store, sig, "p", 1)
	q := literal(t, store, sig, "q", 2)

	c := s.NewInput([]term.Literal{p, q}, Transparent, InputAxiom)
	want := p.Weight() + q.Weight()
	assert.Equal(t, want, c.Weight())
	assert.Equal(t, want, c.Weight(), "second call must hit the cache, not recompute differently")
}

func TestSelectionPrefixSetOnce(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	s := NewStore()
	p := literal(t, store, sig, "p", 1)
	q := literal(t, store, sig, "q", 1)
	c := s.NewInput([]term.Literal{p, q}, Transparent, InputAxiom)

	require.NoError(t, c.SetSelection(1))
	assert.Equal(t, 1, c.SelectedCount())
	assert.Error(t, c.SetSelection(2), "selection may not be mutated after being set")
}

func TestDerivedClauseAgeIsMaxParentAgePlusOne(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	s := NewStore()
	p := literal(t, store, sig, "p", 1)

	parent1 := s.NewInput([]term.Literal{p}, Transparent, InputAxiom)
	parent2 := s.NewDerived([]term.Literal{p}, RuleResolution, []*Clause{parent1})
	child := s.NewDerived([]term.Literal{p}, RuleSuperposition, []*Clause{parent1, parent2})

	assert.Equal(t, uint32(0), parent1.Age())
	assert.Equal(t, uint32(1), parent2.Age())
	assert.Equal(t, uint32(2), child.Age())
}

func TestEmptyClauseIsRecognized(t *testing.T) {
	s := NewStore()
	c := s.NewInput(nil, Transparent, InputAxiom)
	assert.True(t, c.IsEmpty())
}

// TestInferenceRecordParentsAreExactParentIDs uses cmp.Diff rather
// than testify's assert.Equal for the structural slice comparison.
func TestInferenceRecordParentsAreExactParentIDs(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	s := NewStore()
	p := literal(t, store, sig, "p", 1)

	parent1 := s.NewInput([]term.Literal{p}, Transparent, InputAxiom)
	parent2 := s.NewInput([]term.Literal{p}, Transparent, InputAxiom)
	child := s.NewDerived([]term.Literal{p}, RuleSuperposition, []*Clause{parent1, parent2})

	want := []ID{parent1.ID(), parent2.ID()}
	if diff := cmp.Diff(want, child.Inference().Parents); diff != "" {
		t.Errorf("inference parents mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, RuleSuperposition, child.Inference().Rule)
}
