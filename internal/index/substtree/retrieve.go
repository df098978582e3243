package substtree

import (
	"github.com/superpose/superpose/internal/subst"
	"github.com/superpose/superpose/internal/term"
)

// mode selects which of the four retrieval relations a walk is performing.
type mode int

const (
	modeUnify mode = iota
	modeGeneralization
	modeInstance
	modeVariant
)

// candidate collects one leaf reached by a structurally-compatible
// walk; it still needs real unification/matching to confirm (walk
// only prunes by top-symbol shape, the same "false positives allowed"
// contract as the fingerprint index).
type candidate struct {
	entry Entry
}

// walk performs the depth-first traversal: at each intermediate node
// it either (a) picks the single child whose top symbol matches a
// bound value, or (b) enumerates all variable-topped children.
// Reaching a node with an empty remaining query queue yields every
// leaf stored there as a candidate.
func walk(node *treeNode, q queue, m mode, out *[]candidate) {
	if len(q) == 0 {
		for _, e := range node.leaves {
			*out = append(*out, candidate{entry: e})
		}
		return
	}
	head, rest := q[0], q[1:]

	switch m {
	case modeUnify:
		if head.IsVar() {
			node.funcChildren.each(func(key funcKey, child *treeNode) {
				absorb(child, key.arity, rest, m, out)
			})
			if node.varChild != nil {
				walk(node.varChild, rest, m, out)
			}
			return
		}
		if child, ok := node.funcChildren.get(funcKeyOf(head)); ok {
			walk(child, splice(head.Args(), rest), m, out)
		}
		if node.varChild != nil {
			walk(node.varChild, rest, m, out)
		}

	case modeGeneralization:
		// Retrieve stored g such that g generalizes the query (query is
		// an instance of g): a concrete query position can be matched by
		// either a same-shaped stored functor or a stored variable; a
		// query variable can only be generalized by a stored variable,
		// since a concrete stored pattern position cannot "ungeneralize"
		// to cover an unbound query variable.
		if head.IsVar() {
			if node.varChild != nil {
				walk(node.varChild, rest, m, out)
			}
			return
		}
		if child, ok := node.funcChildren.get(funcKeyOf(head)); ok {
			walk(child, splice(head.Args(), rest), m, out)
		}
		if node.varChild != nil {
			walk(node.varChild, rest, m, out)
		}

	case modeInstance:
		// Retrieve stored s such that s is an instance of the query
		// (query is the pattern): a query variable absorbs any stored
		// structure; a concrete query position demands the exact same
		// stored functor — a stored variable there would be more
		// general, not an instance.
		if head.IsVar() {
			node.funcChildren.each(func(key funcKey, child *treeNode) {
				absorb(child, key.arity, rest, m, out)
			})
			if node.varChild != nil {
				walk(node.varChild, rest, m, out)
			}
			return
		}
		if child, ok := node.funcChildren.get(funcKeyOf(head)); ok {
			walk(child, splice(head.Args(), rest), m, out)
		}

	case modeVariant:
		// Exact shape match at every position: variable only against
		// variable, functor only against the identical functor/arity.
		if head.IsVar() {
			if node.varChild != nil {
				walk(node.varChild, rest, m, out)
			}
			return
		}
		if child, ok := node.funcChildren.get(funcKeyOf(head)); ok {
			walk(child, splice(head.Args(), rest), m, out)
		}
	}
}

// absorb explores every trie path under node that constitutes exactly
// one remaining whole subtree (owed counts how many more term-slots
// must close before node's contribution to the absorbed subtree is
// finished), then resumes ordinary walk with rest. This realizes "a
// query variable swallows an arbitrarily deep stored subtree" without
// needing the stored side to be separately flattened: node itself
// accounts for one owed unit, a functor child reopens `arity` more.
func absorb(node *treeNode, owed int, rest queue, m mode, out *[]candidate) {
	if owed == 0 {
		walk(node, rest, m, out)
		return
	}
	if node.varChild != nil {
		absorb(node.varChild, owed-1, rest, m, out)
	}
	node.funcChildren.each(func(key funcKey, child *treeNode) {
		absorb(child, owed-1+key.arity, rest, m, out)
	})
}

// Result is one confirmed retrieval hit: the caller's leaf data, plus
// a real result substitution built by re-running the appropriate
// substitution-engine operation against the exact stored/query terms
// (walk only prunes by shape; Result is where soundness is actually
// established).
type Result struct {
	Data    interface{}
	Subst   *subst.ResultSubstitution
}

// Iterator is a cursor over already-collected Results. Full laziness
// is simplified here to an
// eagerly-collected slice behind a Next()-style cursor: the candidate
// DFS and per-candidate verification are cheap relative to a
// goroutine-based generator, and an eager collect sidesteps
// goroutine-lifetime bugs in code that is never run to verify.
type Iterator struct {
	results []Result
	pos     int
}

// Next returns the next confirmed result, or ok=false when exhausted.
func (it *Iterator) Next() (Result, bool) {
	if it.pos >= len(it.results) {
		return Result{}, false
	}
	r := it.results[it.pos]
	it.pos++
	return r, true
}

func verify(store *term.Store, query []*term.Term, cands []candidate, queryBank, storeBank subst.Bank, m mode) []Result {
	var results []Result
	for _, c := range cands {
		eng := subst.NewEngine(store)
		ok := true
		switch m {
		case modeUnify:
			for i := range query {
				if !eng.Unify(query[i], queryBank, c.entry.Key[i], storeBank) {
					ok = false
					break
				}
			}
		case modeGeneralization:
			for i := range query {
				if !eng.Match(c.entry.Key[i], storeBank, query[i], queryBank) {
					ok = false
					break
				}
			}
		case modeInstance:
			for i := range query {
				if !eng.Match(query[i], queryBank, c.entry.Key[i], storeBank) {
					ok = false
					break
				}
			}
		case modeVariant:
			for i := range query {
				if !isVariant(query[i], c.entry.Key[i]) {
					ok = false
					break
				}
			}
		}
		if !ok {
			continue
		}
		results = append(results, Result{
			Data:  c.entry.Data,
			Subst: subst.NewResultSubstitution(eng, queryBank, storeBank),
		})
	}
	return results
}

// UnifiersIter retrieves every stored key unifiable with query, each
// paired with a real unifying result substitution bound to
// (queryBank, storeBank).
func (t *Tree) UnifiersIter(store *term.Store, query []*term.Term, queryBank, storeBank subst.Bank) *Iterator {
	t.mu.Lock()
	var cands []candidate
	walk(t.root, queue(query), modeUnify, &cands)
	t.mu.Unlock()
	return &Iterator{results: verify(store, query, cands, queryBank, storeBank, modeUnify)}
}

// GeneralizationsIter retrieves every stored key that generalizes
// query.
func (t *Tree) GeneralizationsIter(store *term.Store, query []*term.Term, queryBank, storeBank subst.Bank) *Iterator {
	t.mu.Lock()
	var cands []candidate
	walk(t.root, queue(query), modeGeneralization, &cands)
	t.mu.Unlock()
	return &Iterator{results: verify(store, query, cands, queryBank, storeBank, modeGeneralization)}
}

// InstancesIter retrieves every stored key that is an instance of
// query.
func (t *Tree) InstancesIter(store *term.Store, query []*term.Term, queryBank, storeBank subst.Bank) *Iterator {
	t.mu.Lock()
	var cands []candidate
	walk(t.root, queue(query), modeInstance, &cands)
	t.mu.Unlock()
	return &Iterator{results: verify(store, query, cands, queryBank, storeBank, modeInstance)}
}

// VariantsIter retrieves every stored key that is an alpha-variant of
// query.
func (t *Tree) VariantsIter(store *term.Store, query []*term.Term, queryBank, storeBank subst.Bank) *Iterator {
	t.mu.Lock()
	var cands []candidate
	walk(t.root, queue(query), modeVariant, &cands)
	t.mu.Unlock()
	return &Iterator{results: verify(store, query, cands, queryBank, storeBank, modeVariant)}
}
