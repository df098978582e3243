package infer

import (
	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/redundancy"
	"github.com/superpose/superpose/internal/term"
)

// Superposition is the main generating inference.
// Forward mode rewrites the given clause's selected literals with an
// active oriented equation; backward mode uses the given clause's own
// oriented equations to rewrite active clauses' subterms.
type Superposition struct {
	store      *term.Store
	clauses    *clause.Store
	ord        order.Ordering
	indices    *Indices
	redundancy *redundancy.Handler // nil disables the conditional-redundancy check
}

// NewSuperposition returns a superposition engine over indices.
// redundancy may be nil to disable the conditional-redundancy check.
func NewSuperposition(store *term.Store, clauses *clause.Store, ord order.Ordering, indices *Indices, redundancy *redundancy.Handler) *Superposition {
	return &Superposition{store: store, clauses: clauses, ord: ord, indices: indices, redundancy: redundancy}
}

var _ Generator = (*Superposition)(nil)

// Generate implements Generator.
func (sp *Superposition) Generate(given *clause.Clause) []*clause.Clause {
	out := sp.forward(given)
	out = append(out, sp.backward(given)...)
	return out
}

// forward rewrites given's selected literals using an active
// equation's left-hand side.
func (sp *Superposition) forward(given *clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	for gi, lgLit := range given.SelectedLiterals() {
		var subs []*term.Term
		nonVariableSubterms(lgLit.Atom(), &subs)
		for _, u := range subs {
			for _, hit := range sp.indices.QueryEqLHSUnifiers(u) {
				loc := hit.Data.(*Locator)
				if loc.Clause == given {
					continue
				}
				eqLit := loc.Clause.Literals()[loc.LitIdx]
				l, r, ok := sp.ord.EqualityArgumentOrder(eqLit)
				if !ok {
					continue
				}
				if !clause.Compatible(given.Color(), loc.Clause.Color()) {
					continue
				}

				eng := hit.Subst.Engine
				lImage := eng.Apply(l, BankResult)
				rImage := eng.Apply(r, BankResult)
				if sp.ord.Compare(rImage, lImage) == order.Greater {
					continue // equation must stay oriented under sigma
				}

				lgAtomImage := eng.Apply(lgLit.Atom(), BankQuery)
				uImage := eng.Apply(u, BankQuery)
				newAtom, did := replaceAll(sp.store, lgAtomImage, uImage, rImage)
				if !did {
					continue
				}
				if sp.ord.Compare(newAtom, lgAtomImage) == order.Greater {
					continue // rewritten literal must not increase
				}
				if sp.redundancy != nil && sp.redundancy.IsCovered(loc.Clause.ID(), lImage, rImage, redundancy.RelGreater) {
					continue
				}

				newLits := make([]term.Literal, 0, len(given.Literals())+len(loc.Clause.Literals())-1)
				newLits = append(newLits, term.NewLiteral(newAtom, lgLit.Polarity(), lgLit.Commutative()))
				for i, l2 := range given.Literals() {
					if i == gi {
						continue
					}
					newLits = append(newLits, applyLiteral(eng, l2, BankQuery))
				}
				for i, l2 := range loc.Clause.Literals() {
					if i == loc.LitIdx {
						continue
					}
					newLits = append(newLits, applyLiteral(eng, l2, BankResult))
				}

				out = append(out, sp.clauses.NewDerived(newLits, clause.RuleSuperposition, []*clause.Clause{given, loc.Clause}))
				if sp.redundancy != nil {
					sp.redundancy.Record(loc.Clause.ID(), lImage, rImage, redundancy.RelGreater)
				}
			}
		}
	}
	return out
}

// backward uses given's own oriented positive equalities to rewrite
// subterms of other active clauses.
func (sp *Superposition) backward(given *clause.Clause) []*clause.Clause {
	var out []*clause.Clause
	sig := sp.store.Signature()
	for gi, lit := range given.Literals() {
		if !lit.Polarity() || !lit.IsEquality(sig) {
			continue
		}
		l, r, ok := sp.ord.EqualityArgumentOrder(lit)
		if !ok {
			continue
		}
		for _, hit := range sp.indices.QuerySubtermUnifiers(l) {
			loc := hit.Data.(*Locator)
			if loc.Clause == given {
				continue
			}
			if !clause.Compatible(given.Color(), loc.Clause.Color()) {
				continue
			}

			eng := hit.Subst.Engine
			lImage := eng.Apply(l, BankQuery)
			rImage := eng.Apply(r, BankQuery)
			if sp.ord.Compare(rImage, lImage) == order.Greater {
				continue
			}

			victimLit := loc.Clause.Literals()[loc.LitIdx]
			victimAtomImage := eng.Apply(victimLit.Atom(), BankResult)
			newAtom, did := replaceAll(sp.store, victimAtomImage, lImage, rImage)
			if !did {
				continue
			}
			if sp.ord.Compare(newAtom, victimAtomImage) == order.Greater {
				continue
			}
			if sp.redundancy != nil && sp.redundancy.IsCovered(given.ID(), lImage, rImage, redundancy.RelGreater) {
				continue
			}

			newLits := make([]term.Literal, 0, len(given.Literals())+len(loc.Clause.Literals())-1)
			newLits = append(newLits, term.NewLiteral(newAtom, victimLit.Polarity(), victimLit.Commutative()))
			for i, l2 := range loc.Clause.Literals() {
				if i == loc.LitIdx {
					continue
				}
				newLits = append(newLits, applyLiteral(eng, l2, BankResult))
			}
			for i, l2 := range given.Literals() {
				if i == gi {
					continue
				}
				newLits = append(newLits, applyLiteral(eng, l2, BankQuery))
			}

			out = append(out, sp.clauses.NewDerived(newLits, clause.RuleSuperposition, []*clause.Clause{given, loc.Clause}))
			if sp.redundancy != nil {
				sp.redundancy.Record(given.ID(), lImage, rImage, redundancy.RelGreater)
			}
		}
	}
	return out
}
