package infer

import (
	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/subst"
	"github.com/superpose/superpose/internal/term"
)

// EqualityResolution implements equality resolution: from a selected
// negative equality literal s≉t in a clause (s≉t ∨ C), with
// σ = mgu(s,t), derive Cσ. Without this rule no single-premise
// inference ever discharges a negative equality between unifiable
// sides, which breaks refutational completeness for FOL with
// equality (a ground s≠t that demodulates to t≠t would otherwise be
// inert forever instead of collapsing to the empty clause).
type EqualityResolution struct {
	store   *term.Store
	clauses *clause.Store
}

// NewEqualityResolution returns an equality-resolution engine.
func NewEqualityResolution(store *term.Store, clauses *clause.Store) *EqualityResolution {
	return &EqualityResolution{store: store, clauses: clauses}
}

var _ Generator = (*EqualityResolution)(nil)

// Generate implements Generator. Like equality factoring, this is an
// intra-clause inference: the sole premise is given itself, so no
// index lookup is needed, only a fresh single-bank unification
// attempt per selected negative equality literal.
func (er *EqualityResolution) Generate(given *clause.Clause) []*clause.Clause {
	sig := er.store.Signature()
	var out []*clause.Clause

	for i, lit := range given.Literals() {
		if !isSelected(given, i) || lit.Polarity() || !lit.IsEquality(sig) {
			continue
		}
		args := lit.Args()
		if len(args) != 2 {
			continue
		}
		s, t := args[0], args[1]

		eng := subst.NewEngine(er.store)
		if !eng.Unify(s, BankQuery, t, BankQuery) {
			eng.Reset()
			continue
		}

		newLits := make([]term.Literal, 0, len(given.Literals())-1)
		for j, l := range given.Literals() {
			if j == i {
				continue
			}
			newLits = append(newLits, applyLiteral(eng, l, BankQuery))
		}

		out = append(out, er.clauses.NewDerived(newLits, clause.RuleEqualityResolution, []*clause.Clause{given}))
		eng.Reset()
	}
	return out
}
