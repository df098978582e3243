package fingerprint

import (
	"sync"

	"github.com/superpose/superpose/internal/term"
)

// BucketID identifies one inserted term. Callers own the mapping from
// BucketID to their own payload (a clause id, a literal position, a
// subterm position, ...); the index only ever hands bucket ids back.
type BucketID uint64

type node struct {
	children map[Code]*node
	buckets  []BucketID
}

func newNode() *node { return &node{children: make(map[Code]*node)} }

// Index is the fingerprint trie: "a trie whose depth
// equals the fingerprint length; leaves hold bucket ids."
type Index struct {
	mu     sync.Mutex
	root   *node
	nextID BucketID
}

// New returns an empty fingerprint index.
func New() *Index {
	return &Index{root: newNode(), nextID: 1}
}

// InsertTerm computes t's fingerprint, walks/creates the trie path for
// it, and returns a freshly allocated BucketID recorded at the leaf.
func (idx *Index) InsertTerm(t *term.Term) BucketID {
	fp := Compute(t)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	cur := idx.root
	for _, code := range fp {
		child, ok := cur.children[code]
		if !ok {
			child = newNode()
			cur.children[code] = child
		}
		cur = child
	}
	id := idx.nextID
	idx.nextID++
	cur.buckets = append(cur.buckets, id)
	return id
}

// Remove drops bucket from the leaf its fingerprint would reach. It is
// a no-op if the fingerprint path or the bucket id within it is
// absent, matching the tolerant removal semantics used elsewhere in
// the indexing layer.
func (idx *Index) Remove(t *term.Term, bucket BucketID) {
	fp := Compute(t)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	cur := idx.root
	for _, code := range fp {
		child, ok := cur.children[code]
		if !ok {
			return
		}
		cur = child
	}
	for i, b := range cur.buckets {
		if b == bucket {
			cur.buckets = append(cur.buckets[:i], cur.buckets[i+1:]...)
			return
		}
	}
}

// QueryUnificationCandidates returns every bucket id whose fingerprint
// could not be ruled out as unifiable with t's. The result is a sound
// over-approximation: every true unifier is included, but some
// returned buckets may turn out, under full unification, not to
// unify.
func (idx *Index) QueryUnificationCandidates(t *term.Term) []BucketID {
	fp := Compute(t)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	var out []BucketID
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		if depth == len(fp) {
			out = append(out, n.buckets...)
			return
		}
		for code, child := range n.children {
			if compatible(fp[depth], code) {
				walk(child, depth+1)
			}
		}
	}
	walk(idx.root, 0)
	return out
}

// QueryGeneralizationCandidates returns bucket ids for terms that
// could generalize t (i.e. could match t as the query side of Match):
// same rule as unification at functor positions, but a query
// Variable only matches an indexed Variable, since a generalizing
// term's variable must remain a variable, not get instantiated to
// whatever concrete structure the query happens to have there.
func (idx *Index) QueryGeneralizationCandidates(t *term.Term) []BucketID {
	fp := Compute(t)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	var out []BucketID
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		if depth == len(fp) {
			out = append(out, n.buckets...)
			return
		}
		for code, child := range n.children {
			if generalizationCompatible(fp[depth], code) {
				walk(child, depth+1)
			}
		}
	}
	walk(idx.root, 0)
	return out
}

func generalizationCompatible(query, indexed Code) bool {
	switch {
	case query == indexed:
		return true
	case indexed == BelowVariable:
		return true
	case indexed == Variable:
		return query != Nonexistent
	default:
		return false
	}
}
