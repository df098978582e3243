package infer

import (
	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/index/codetree"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/term"
)

// ForwardDemodulation rewrites a given clause's literals using the
// code-tree index of active oriented equations.
type ForwardDemodulation struct {
	store    *term.Store
	clauses  *clause.Store
	ord      order.Ordering
	indices  *Indices
	// Encompassment, when true, rejects a rewrite whose matcher is a
	// proper instance of the demodulator's LHS, preserving
	// completeness for non-unit demodulators.
	Encompassment bool
}

// NewForwardDemodulation returns a forward-demodulation simplifier
// over indices.
func NewForwardDemodulation(store *term.Store, clauses *clause.Store, ord order.Ordering, indices *Indices) *ForwardDemodulation {
	return &ForwardDemodulation{store: store, clauses: clauses, ord: ord, indices: indices}
}

// ForwardSimplify implements the simplifying-engine contract: it
// returns a rewritten replacement clause and the demodulator clauses
// used as premises, or ok=false if no rewrite applies anywhere in c.
func (fd *ForwardDemodulation) ForwardSimplify(c *clause.Clause) (replacement *clause.Clause, premises []*clause.Clause, ok bool) {
	lits := c.Literals()
	newLits := make([]term.Literal, len(lits))
	copy(newLits, lits)
	changed := false
	var used []*clause.Clause

	for i, lit := range lits {
		rewritten, prem, didRewrite := fd.rewriteTerm(lit.Atom(), c)
		if didRewrite {
			newLits[i] = term.NewLiteral(rewritten, lit.Polarity(), lit.Commutative())
			changed = true
			used = append(used, prem)
		}
	}
	if !changed {
		return nil, nil, false
	}
	return fd.clauses.NewDerived(newLits, clause.RuleForwardDemodulation, append([]*clause.Clause{c}, used...)), used, true
}

// rewriteTerm attempts one rewrite step anywhere within t, returning
// the rewritten term and the demodulator clause used. It only applies
// a single rewrite per call; the driver's repeated ForwardSimplify
// invocations saturate the rewriting rather than this function
// looping internally.
func (fd *ForwardDemodulation) rewriteTerm(t *term.Term, owner *clause.Clause) (*term.Term, *clause.Clause, bool) {
	if !t.IsVar() && !t.IsSpecialVar() {
		for _, hit := range fd.indices.MatchDemodulators(t) {
			entry := hit.Data.(*demodEntry)
			if entry.clause == owner {
				continue // never self-rewrite
			}
			if fd.Encompassment && fd.isProperInstance(hit) {
				continue
			}
			rewritten := fd.buildRHS(entry, hit.Bindings)
			return rewritten, entry.clause, true
		}
		for i, a := range t.Args() {
			if rewritten, prem, ok := fd.rewriteTerm(a, owner); ok {
				args := append([]*term.Term(nil), t.Args()...)
				args[i] = rewritten
				return fd.store.MustInternTerm(t.Functor(), args), prem, true
			}
		}
	}
	return t, nil, false
}

// isProperInstance reports whether hit's bindings make the match a
// proper instance of the demodulator's LHS rather than a variable
// renaming: some pattern variable is bound to a non-variable subterm.
func (fd *ForwardDemodulation) isProperInstance(hit codetree.Success) bool {
	for _, span := range hit.Bindings {
		if len(span) != 1 || !span[0].IsVar {
			return true
		}
	}
	return false
}

// buildRHS reconstructs the demodulator's right-hand side with each
// pattern variable replaced by the query subterm span bound to it.
func (fd *ForwardDemodulation) buildRHS(entry *demodEntry, bindings map[int][]codetree.Tok) *term.Term {
	return substituteBySlot(fd.store, entry.rhs, entry.varSlots, bindings)
}

// substituteBySlot walks rhs and replaces every ordinary variable
// whose id appears in varSlots with the rebuilt term its bound
// token-span denotes.
func substituteBySlot(store *term.Store, rhs *term.Term, varSlots map[uint32]int, bindings map[int][]codetree.Tok) *term.Term {
	if rhs.IsVar() {
		if slot, ok := varSlots[rhs.VarID()]; ok {
			if span, ok := bindings[slot]; ok {
				return codetree.Rebuild(store, span)
			}
		}
		return rhs
	}
	args := rhs.Args()
	if len(args) == 0 {
		return rhs
	}
	newArgs := make([]*term.Term, len(args))
	changed := false
	for i, a := range args {
		newArgs[i] = substituteBySlot(store, a, varSlots, bindings)
		if newArgs[i] != a {
			changed = true
		}
	}
	if !changed {
		return rhs
	}
	return store.MustInternTerm(rhs.Functor(), newArgs)
}
