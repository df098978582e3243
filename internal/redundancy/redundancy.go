// Package redundancy implements the conditional-redundancy handler:
// a per-clause cover tree of substitution constraints under which a
// clause has already served as the premise of a sound-to-repeat
// simplification, consulted before superposition or resolution
// performs the same inference again.
package redundancy

import (
	"sync"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/index/codetree"
	"github.com/superpose/superpose/internal/term"
)

// Relation names the ordering relation a constraint tuple asserts
// between its two terms.
type Relation uint8

const (
	RelEqual Relation = iota
	RelGreater
	RelLess
)

// Handler tracks, per clause, the set of constraint tuples already
// covered. A tuple's key is its (lhs,rhs,relation) triple only; side
// literals are not part of the key.
type Handler struct {
	mu     sync.Mutex
	store  *term.Store
	relFn  map[Relation]term.FunctorID
	covers map[clause.ID]*codetree.Tree
}

// New returns an empty handler over store, registering the three
// internal marker functors it uses to encode constraint tuples as
// ordinary terms so the code-tree matcher can index them.
func New(store *term.Store) *Handler {
	sig := store.Signature()
	return &Handler{
		store: store,
		relFn: map[Relation]term.FunctorID{
			RelEqual:   sig.Intern("$cover_eq", 2, false, nil, term.Default),
			RelGreater: sig.Intern("$cover_gt", 2, false, nil, term.Default),
			RelLess:    sig.Intern("$cover_lt", 2, false, nil, term.Default),
		},
		covers: make(map[clause.ID]*codetree.Tree),
	}
}

func (h *Handler) key(lhs, rhs *term.Term, rel Relation) *term.Term {
	return h.store.MustInternTerm(h.relFn[rel], []*term.Term{lhs, rhs})
}

// IsCovered reports whether (lhs,rhs,rel) is an instance of some
// constraint already recorded against id.
func (h *Handler) IsCovered(id clause.ID, lhs, rhs *term.Term, rel Relation) bool {
	h.mu.Lock()
	tree := h.covers[id]
	h.mu.Unlock()
	if tree == nil {
		return false
	}
	return len(tree.MatchTerm(h.key(lhs, rhs, rel))) > 0
}

// Record extends id's cover tree with (lhs,rhs,rel).
func (h *Handler) Record(id clause.ID, lhs, rhs *term.Term, rel Relation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	tree := h.covers[id]
	if tree == nil {
		tree = codetree.New()
		h.covers[id] = tree
	}
	tree.Insert(h.key(lhs, rhs, rel), struct{}{})
}

// Forget drops id's cover tree entirely, called once a clause leaves
// every container and index.
func (h *Handler) Forget(id clause.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.covers, id)
}
