package infer

import (
	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/subst"
	"github.com/superpose/superpose/internal/term"
)

// EqualityFactoring implements equality factoring:
// given C = (l1≈r1 ∨ l2≈r2 ∨ C'), with l1≈r1 selected and l1σ the
// chosen side under some unifier σ = mgu(l1,l2), derive
// (l1≈r2 ∨ r1≉r2 ∨ C')σ, discarding the case r1σ ≻ l1σ.
type EqualityFactoring struct {
	store   *term.Store
	clauses *clause.Store
	ord     order.Ordering
}

// NewEqualityFactoring returns an equality-factoring engine.
func NewEqualityFactoring(store *term.Store, clauses *clause.Store, ord order.Ordering) *EqualityFactoring {
	return &EqualityFactoring{store: store, clauses: clauses, ord: ord}
}

var _ Generator = (*EqualityFactoring)(nil)

// Generate implements Generator. Unlike superposition and resolution,
// equality factoring is an intra-clause inference: both premise
// literals come from given, so no index lookup is needed, only a
// fresh single-bank unification attempt per ordered pair.
func (ef *EqualityFactoring) Generate(given *clause.Clause) []*clause.Clause {
	sig := ef.store.Signature()
	var out []*clause.Clause

	for i1, lit1 := range given.Literals() {
		if !isSelected(given, i1) || !lit1.Polarity() || !lit1.IsEquality(sig) {
			continue
		}
		l1, r1, ok := ef.ord.EqualityArgumentOrder(lit1)
		if !ok {
			continue
		}

		for j, lit2 := range given.Literals() {
			if j == i1 || !lit2.Polarity() || !lit2.IsEquality(sig) {
				continue
			}
			l2, r2, ok := ef.ord.EqualityArgumentOrder(lit2)
			if !ok {
				continue
			}

			eng := subst.NewEngine(ef.store)
			if !eng.Unify(l1, BankQuery, l2, BankQuery) {
				eng.Reset()
				continue
			}

			l1Image := eng.Apply(l1, BankQuery)
			r1Image := eng.Apply(r1, BankQuery)
			r2Image := eng.Apply(r2, BankQuery)
			if ef.ord.Compare(r1Image, l1Image) == order.Greater {
				eng.Reset()
				continue // r1*sigma must not exceed l1*sigma
			}

			newEq := term.NewLiteral(mustMakeEquality(ef.store, l1Image, r2Image), true, true)
			newIneq := term.NewLiteral(mustMakeEquality(ef.store, r1Image, r2Image), false, true)

			newLits := make([]term.Literal, 0, len(given.Literals()))
			newLits = append(newLits, newEq, newIneq)
			for i, l := range given.Literals() {
				if i == i1 || i == j {
					continue
				}
				newLits = append(newLits, applyLiteral(eng, l, BankQuery))
			}

			out = append(out, ef.clauses.NewDerived(newLits, clause.RuleEqualityFactoring, []*clause.Clause{given}))
			eng.Reset()
		}
	}
	return out
}

func mustMakeEquality(store *term.Store, a, b *term.Term) *term.Term {
	return store.MustInternTerm(store.Signature().EqualityID(), []*term.Term{a, b})
}
