package infer

import (
	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/redundancy"
	"github.com/superpose/superpose/internal/term"
)

// Resolution is ordinary binary resolution restricted to selected
// literals.
type Resolution struct {
	store      *term.Store
	clauses    *clause.Store
	ord        order.Ordering
	indices    *Indices
	redundancy *redundancy.Handler // nil disables the conditional-redundancy check
}

// NewResolution returns a binary-resolution engine over indices.
func NewResolution(store *term.Store, clauses *clause.Store, ord order.Ordering, indices *Indices, redundancy *redundancy.Handler) *Resolution {
	return &Resolution{store: store, clauses: clauses, ord: ord, indices: indices, redundancy: redundancy}
}

var _ Generator = (*Resolution)(nil)

// Generate implements Generator: every selected literal of given is
// unified against the opposite-polarity selected literal index, and
// each unifying partner yields a resolvent (the two clauses' remaining
// literals, substituted and merged).
func (r *Resolution) Generate(given *clause.Clause) []*clause.Clause {
	sig := r.store.Signature()
	var out []*clause.Clause

	for gi, lit := range given.SelectedLiterals() {
		if lit.IsEquality(sig) {
			continue
		}
		for _, hit := range r.indices.QueryLiteralUnifiers(lit.Polarity(), lit.Atom()) {
			loc, ok := hit.Data.(*Locator)
			if !ok || loc.Clause == given {
				continue
			}
			if !clause.Compatible(given.Color(), loc.Clause.Color()) {
				continue
			}

			eng := hit.Subst.Engine
			if r.redundancy != nil {
				lImage := eng.Apply(lit.Atom(), BankQuery)
				rImage := eng.Apply(loc.Clause.Literals()[loc.LitIdx].Atom(), BankResult)
				if r.redundancy.IsCovered(given.ID(), lImage, rImage, redundancy.RelEqual) {
					continue
				}
			}

			newLits := make([]term.Literal, 0, len(given.Literals())+len(loc.Clause.Literals())-2)
			for i, l := range given.Literals() {
				if i == gi {
					continue
				}
				newLits = append(newLits, applyLiteral(eng, l, BankQuery))
			}
			for i, l := range loc.Clause.Literals() {
				if i == loc.LitIdx {
					continue
				}
				newLits = append(newLits, applyLiteral(eng, l, BankResult))
			}

			out = append(out, r.clauses.NewDerived(newLits, clause.RuleResolution, []*clause.Clause{given, loc.Clause}))
			if r.redundancy != nil {
				lImage := eng.Apply(lit.Atom(), BankQuery)
				rImage := eng.Apply(loc.Clause.Literals()[loc.LitIdx].Atom(), BankResult)
				r.redundancy.Record(given.ID(), lImage, rImage, redundancy.RelEqual)
			}
		}
	}
	return out
}
