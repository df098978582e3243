package clause

import (
	"sync"

	"github.com/superpose/superpose/internal/term"
)

// Store is the clause arena for one run. It assigns monotonically
// increasing ids, used as the passive container's deterministic
// tie-breaker between otherwise-equal clauses, and keeps a by-id
// lookup table for reconstructing the final proof DAG.
type Store struct {
	mu      sync.Mutex
	byID    map[ID]*Clause
	nextID  ID
}

// NewStore returns an empty clause arena.
func NewStore() *Store {
	return &Store{byID: make(map[ID]*Clause), nextID: 1}
}

func (s *Store) allocID() ID {
	id := s.nextID
	s.nextID++
	return id
}

// NewInput registers a clause from the input problem.
func (s *Store) NewInput(lits []term.Literal, color Color, it InputType) *Clause {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := newClause(s.allocID(), lits, 0, color, EmptySplitSet, Inference{Rule: RuleInput}, it)
	s.byID[c.id] = c
	return c
}

// NewDerived registers a clause produced by an inference rule. Its
// age is one more than the maximum age of its parents, its color is
// the merge of its parents' colors, and its split set is the union of
// its parents' split sets.
func (s *Store) NewDerived(lits []term.Literal, rule Rule, parents []*Clause) *Clause {
	s.mu.Lock()
	defer s.mu.Unlock()

	var age uint32
	var color Color
	splits := EmptySplitSet
	parentIDs := make([]ID, len(parents))
	for i, p := range parents {
		if p.age+1 > age {
			age = p.age + 1
		}
		color = Merge(color, p.color)
		splits = splits.Union(p.splits)
		parentIDs[i] = p.id
	}

	c := newClause(s.allocID(), lits, age, color, splits, Inference{Rule: rule, Parents: parentIDs}, InputDerived)
	s.byID[c.id] = c
	return c
}

// Get looks up a clause by id, for reconstructing the proof DAG.
func (s *Store) Get(id ID) (*Clause, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	return c, ok
}

// GC drops the by-id entry for any clause whose state is None and
// whose reference count has reached zero. The
// clause value itself remains valid for any caller still holding a
// pointer to it (e.g. as a parent in another clause's Inference); GC
// only affects Store-internal bookkeeping.
func (s *Store) GC() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.byID {
		if c.state == None && c.refCount() <= 0 {
			delete(s.byID, id)
		}
	}
}

// Len returns the number of clauses still tracked by the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
