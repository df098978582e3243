package tptpclause

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/term"
)

func TestLoadProblemGroupAxioms(t *testing.T) {
	src := `
% group axioms
axiom: e*x=x
axiom: i(x)*x=e
axiom: (x*y)*z=x*(y*z)
conjecture: x*y=e
negated_conjecture: i(x)~=y
`
	sig := term.NewSignature()
	store := term.NewStore(sig)
	cs := clause.NewStore()

	p, err := LoadProblem(strings.NewReader(src), store, cs)
	require.NoError(t, err)
	require.Len(t, p.Clauses, 5)

	assert.Len(t, p.Axioms(), 3)
	assert.Len(t, p.Conjectures(), 2)

	last := p.Clauses[4]
	require.Len(t, last.Literals(), 1)
	lit := last.Literals()[0]
	assert.False(t, lit.Polarity(), "~= should compile to a negative equality literal")
	assert.True(t, lit.IsEquality(sig))
}

func TestLoadProblemPropositional(t *testing.T) {
	src := `
p | q
~p | r
~q | r
~r
`
	sig := term.NewSignature()
	store := term.NewStore(sig)
	cs := clause.NewStore()

	p, err := LoadProblem(strings.NewReader(src), store, cs)
	require.NoError(t, err)
	require.Len(t, p.Clauses, 4)
	assert.Equal(t, 2, p.Clauses[0].Len())
	assert.Equal(t, 1, p.Clauses[3].Len())
	assert.False(t, p.Clauses[3].Literals()[0].Polarity())
}

func TestLoadProblemArithmetic(t *testing.T) {
	src := `
axiom: x+0=x
axiom: 1+1=2
negated_conjecture: 1+1~=2
`
	sig := term.NewSignature()
	store := term.NewStore(sig)
	cs := clause.NewStore()

	p, err := LoadProblem(strings.NewReader(src), store, cs)
	require.NoError(t, err)
	require.Len(t, p.Clauses, 3)
}

func TestLoadProblemRejectsMalformedLine(t *testing.T) {
	sig := term.NewSignature()
	store := term.NewStore(sig)
	cs := clause.NewStore()

	_, err := LoadProblem(strings.NewReader("p(x"), store, cs)
	assert.Error(t, err)
}
