package infer

import (
	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/index/substtree"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/term"
)

// Rewrite is one backward-simplification step: victim is an active
// clause to remove, replacement is the clause that takes its place.
type Rewrite struct {
	Victim      *clause.Clause
	Replacement *clause.Clause
}

// BackwardDemodulation rewrites already-active clauses using a
// newly-activated oriented equation.
type BackwardDemodulation struct {
	store   *term.Store
	clauses *clause.Store
	ord     order.Ordering
	indices *Indices
}

// NewBackwardDemodulation returns a backward-demodulation simplifier
// over indices.
func NewBackwardDemodulation(store *term.Store, clauses *clause.Store, ord order.Ordering, indices *Indices) *BackwardDemodulation {
	return &BackwardDemodulation{store: store, clauses: clauses, ord: ord, indices: indices}
}

// BackwardSimplify finds every active literal whose subterm is an
// instance of one of c's oriented equality left-hand sides and
// rewrites it.
func (bd *BackwardDemodulation) BackwardSimplify(c *clause.Clause) []Rewrite {
	var out []Rewrite
	seen := make(map[clause.ID]bool)

	for _, lit := range c.Literals() {
		if !lit.Polarity() || !lit.IsEquality(bd.store.Signature()) {
			continue
		}
		greater, lesser, ok := bd.ord.EqualityArgumentOrder(lit)
		if !ok {
			continue
		}
		for _, hit := range bd.indices.queryInstances(greater) {
			loc, ok := hit.Data.(*Locator)
			if !ok || loc.Clause == c || seen[loc.Clause.ID()] {
				continue
			}
			victimLit := loc.Clause.Literals()[loc.LitIdx]
			lImage := hit.Subst.ApplyToQuery(greater)
			rImage := hit.Subst.ApplyToQuery(lesser)
			rewritten, did := replaceAll(bd.store, victimLit.Atom(), lImage, rImage)
			if !did {
				continue
			}
			seen[loc.Clause.ID()] = true
			newLits := append([]term.Literal(nil), loc.Clause.Literals()...)
			newLits[loc.LitIdx] = term.NewLiteral(rewritten, victimLit.Polarity(), victimLit.Commutative())
			replacement := bd.clauses.NewDerived(newLits, clause.RuleBackwardDemodulation, []*clause.Clause{loc.Clause, c})
			out = append(out, Rewrite{Victim: loc.Clause, Replacement: replacement})
		}
	}
	return out
}

// queryInstances is QueryEqLHSUnifiers's dual over the subterm index:
// stored subterms that are instances of query.
func (ix *Indices) queryInstances(query *term.Term) []substtree.Result {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if len(ix.subFP.QueryUnificationCandidates(query)) == 0 {
		return nil
	}
	it := ix.subterms.InstancesIter(ix.store, []*term.Term{query}, BankQuery, BankResult)
	return drain(it)
}

// replaceAll substitutes every occurrence of from within t by to.
func replaceAll(store *term.Store, t, from, to *term.Term) (*term.Term, bool) {
	if t == from {
		return to, true
	}
	if t.IsVar() || t.IsSpecialVar() {
		return t, false
	}
	args := t.Args()
	newArgs := make([]*term.Term, len(args))
	changed := false
	for i, a := range args {
		na, did := replaceAll(store, a, from, to)
		newArgs[i] = na
		if did {
			changed = true
		}
	}
	if !changed {
		return t, false
	}
	return store.MustInternTerm(t.Functor(), newArgs), true
}
