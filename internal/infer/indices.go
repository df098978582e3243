package infer

import (
	"sync"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/index/codetree"
	"github.com/superpose/superpose/internal/index/fingerprint"
	"github.com/superpose/superpose/internal/index/substtree"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/subst"
	"github.com/superpose/superpose/internal/term"
)

// Bank assignment convention followed by every engine in this
// package: the given/query clause's variables live in BankQuery, and
// whatever clause a retrieval hands back lives in BankResult. Both
// are fixed constants rather than per-call allocations since only one
// retrieval is ever in flight at a time.
const (
	BankQuery  subst.Bank = 0
	BankResult subst.Bank = 1
)

type demodEntry struct {
	clause   *clause.Clause
	litIdx   int
	rhs      *term.Term
	varSlots map[uint32]int
}

// Indices bundles the three indexing structures active clauses are
// registered into.
type Indices struct {
	store *term.Store
	ord   order.Ordering

	mu sync.Mutex

	eqLHS    *substtree.Tree
	eqLHSFP  *fingerprint.Index
	subterms *substtree.Tree
	subFP    *fingerprint.Index

	demodulators *codetree.Tree
	demodByKey   map[demodKey]*demodEntry

	// posLits/negLits index selected non-equality literal atoms by
	// polarity, for binary resolution partner retrieval.
	posLits, negLits     *substtree.Tree
	posLitsFP, negLitsFP *fingerprint.Index
}

type demodKey struct {
	clauseID clause.ID
	litIdx   int
}

// NewIndices returns an empty index bundle over store, ordered by ord.
func NewIndices(store *term.Store, ord order.Ordering) *Indices {
	return &Indices{
		store:        store,
		ord:          ord,
		eqLHS:        substtree.New(),
		eqLHSFP:      fingerprint.New(),
		subterms:     substtree.New(),
		subFP:        fingerprint.New(),
		demodulators: codetree.New(),
		demodByKey:   make(map[demodKey]*demodEntry),
		posLits:      substtree.New(),
		negLits:      substtree.New(),
		posLitsFP:    fingerprint.New(),
		negLitsFP:    fingerprint.New(),
	}
}

// nonVariableSubterms collects every non-variable subterm of t,
// including t itself.
func nonVariableSubterms(t *term.Term, out *[]*term.Term) {
	if t.IsVar() || t.IsSpecialVar() {
		return
	}
	*out = append(*out, t)
	for _, a := range t.Args() {
		nonVariableSubterms(a, out)
	}
}

// RegisterActive indexes every literal of c: its non-variable
// subterms into the subterm index (for backward superposition and
// backward demodulation), and, if the literal is a positive oriented
// equality, its greater side into the equation-LHS index and, if c is
// a unit clause (so the equation is a demodulator), into the code-tree
// demodulator index.
func (ix *Indices) RegisterActive(c *clause.Clause) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for i, lit := range c.Literals() {
		var subs []*term.Term
		nonVariableSubterms(lit.Atom(), &subs)
		for _, s := range subs {
			ix.subterms.Insert([]*term.Term{s}, &Locator{Clause: c, LitIdx: i})
			ix.subFP.InsertTerm(s)
		}

		if lit.IsEquality(ix.store.Signature()) {
			if !lit.Polarity() {
				continue
			}
			greater, lesser, ok := ix.ord.EqualityArgumentOrder(lit)
			if !ok {
				continue
			}
			ix.eqLHS.Insert([]*term.Term{greater}, &Locator{Clause: c, LitIdx: i})
			ix.eqLHSFP.InsertTerm(greater)

			if c.Len() == 1 {
				varSlots := codetree.VarSlots(greater)
				entry := &demodEntry{clause: c, litIdx: i, rhs: lesser, varSlots: varSlots}
				ix.demodulators.Insert(greater, entry)
				ix.demodByKey[demodKey{clauseID: c.ID(), litIdx: i}] = entry
			}
			continue
		}

		if !isSelected(c, i) {
			continue
		}
		if lit.Polarity() {
			ix.posLits.Insert([]*term.Term{lit.Atom()}, &Locator{Clause: c, LitIdx: i})
			ix.posLitsFP.InsertTerm(lit.Atom())
		} else {
			ix.negLits.Insert([]*term.Term{lit.Atom()}, &Locator{Clause: c, LitIdx: i})
			ix.negLitsFP.InsertTerm(lit.Atom())
		}
	}
}

// isSelected reports whether literal i of c is among c's selected
// literals.
func isSelected(c *clause.Clause, i int) bool {
	for _, sel := range c.SelectedLiterals() {
		if sel == c.Literals()[i] {
			return true
		}
	}
	return false
}

// RemoveActive removes every index entry RegisterActive installed for
// c.
func (ix *Indices) RemoveActive(c *clause.Clause) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for i, lit := range c.Literals() {
		var subs []*term.Term
		nonVariableSubterms(lit.Atom(), &subs)
		for _, s := range subs {
			ix.subterms.Remove([]*term.Term{s}, &Locator{Clause: c, LitIdx: i})
		}

		if lit.IsEquality(ix.store.Signature()) {
			if !lit.Polarity() {
				continue
			}
			greater, _, ok := ix.ord.EqualityArgumentOrder(lit)
			if !ok {
				continue
			}
			ix.eqLHS.Remove([]*term.Term{greater}, &Locator{Clause: c, LitIdx: i})

			key := demodKey{clauseID: c.ID(), litIdx: i}
			if entry, ok := ix.demodByKey[key]; ok {
				ix.demodulators.Remove(entry)
				delete(ix.demodByKey, key)
			}
			continue
		}

		if !isSelected(c, i) {
			continue
		}
		if lit.Polarity() {
			ix.posLits.Remove([]*term.Term{lit.Atom()}, &Locator{Clause: c, LitIdx: i})
		} else {
			ix.negLits.Remove([]*term.Term{lit.Atom()}, &Locator{Clause: c, LitIdx: i})
		}
	}
}

// QueryLiteralUnifiers returns every selected opposite-polarity literal
// atom registered against some active clause that unifies with atom.
func (ix *Indices) QueryLiteralUnifiers(polarity bool, atom *term.Term) []substtree.Result {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	tree, fp := ix.negLits, ix.negLitsFP
	if !polarity {
		tree, fp = ix.posLits, ix.posLitsFP
	}
	if len(fp.QueryUnificationCandidates(atom)) == 0 {
		return nil
	}
	it := tree.UnifiersIter(ix.store, []*term.Term{atom}, BankQuery, BankResult)
	return drain(it)
}

// QueryEqLHSUnifiers returns every (Locator, ResultSubstitution) whose
// registered equation left-hand side unifies with query, short-
// circuiting on the fingerprint pre-filter when it proves no
// candidate can exist.
func (ix *Indices) QueryEqLHSUnifiers(query *term.Term) []substtree.Result {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if len(ix.eqLHSFP.QueryUnificationCandidates(query)) == 0 {
		return nil
	}
	it := ix.eqLHS.UnifiersIter(ix.store, []*term.Term{query}, BankQuery, BankResult)
	return drain(it)
}

// QuerySubtermUnifiers returns every subterm-index hit unifiable with
// query.
func (ix *Indices) QuerySubtermUnifiers(query *term.Term) []substtree.Result {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if len(ix.subFP.QueryUnificationCandidates(query)) == 0 {
		return nil
	}
	it := ix.subterms.UnifiersIter(ix.store, []*term.Term{query}, BankQuery, BankResult)
	return drain(it)
}

// MatchDemodulators returns every live demodulator whose left-hand
// side matches (as a one-sided pattern) the given flattened subterm.
func (ix *Indices) MatchDemodulators(subterm *term.Term) []codetree.Success {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.demodulators.MatchTerm(subterm)
}

func drain(it *substtree.Iterator) []substtree.Result {
	var out []substtree.Result
	for {
		r, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}
