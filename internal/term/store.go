package term

import (
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// variableWeight is the KBO weight contributed by a bare variable
// occurrence.
const variableWeight = 1

// Store is the hash-consed term arena for one run.
// It owns a Signature and is the only mutable structure shared across
// the single-threaded saturation driver.
type Store struct {
	mu  sync.Mutex
	sig *Signature

	byFunctor map[FunctorID]map[string]*Term
	vars      map[uint32]*Term
	specials  map[uint32]*Term

	nextID    ID
	nextVar   uint32
	nextSpVar uint32
}

// NewStore returns an empty term store over sig.
func NewStore(sig *Signature) *Store {
	return &Store{
		sig:       sig,
		byFunctor: make(map[FunctorID]map[string]*Term),
		vars:      make(map[uint32]*Term),
		specials:  make(map[uint32]*Term),
		nextID:    1,
	}
}

// Signature returns the store's functor registry.
func (s *Store) Signature() *Signature { return s.sig }

func (s *Store) allocID() ID {
	id := s.nextID
	s.nextID++
	return id
}

// Variable returns the canonical shared node for ordinary variable
// id, creating it on first reference. Interning is idempotent.
func (s *Store) Variable(id uint32) *Term {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.variableLocked(id)
}

func (s *Store) variableLocked(id uint32) *Term {
	if t, ok := s.vars[id]; ok {
		return t
	}
	if id >= s.nextVar {
		s.nextVar = id + 1
	}
	t := &Term{
		id:     s.allocID(),
		kind:   KindVar,
		varID:  id,
		weight: variableWeight,
		ground: false,
	}
	t.vars = NewVarSet()
	t.vars.Add(id)
	s.vars[id] = t
	return t
}

// FreshVariable allocates and returns a never-before-used ordinary
// variable.
func (s *Store) FreshVariable() *Term {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextVar
	s.nextVar++
	return s.variableLocked(id)
}

// SpecialVariable returns the canonical shared node for special
// variable id.
func (s *Store) SpecialVariable(id uint32) *Term {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.specials[id]; ok {
		return t
	}
	t := &Term{
		id:     s.allocID(),
		kind:   KindSpecialVar,
		varID:  id,
		weight: variableWeight,
		ground: false,
	}
	s.specials[id] = t
	return t
}

// FreshSpecialVariable allocates a never-before-used special
// variable; used exclusively by the indexing packages.
func (s *Store) FreshSpecialVariable() *Term {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSpVar
	s.nextSpVar++
	t := &Term{
		id:     s.allocID(),
		kind:   KindSpecialVar,
		varID:  id,
		weight: variableWeight,
		ground: false,
	}
	s.specials[id] = t
	return t
}

// argKey builds the hash-consing key for an argument list: the
// concatenation of argument ids, which is sufficient because args
// are themselves already-canonicalized shared terms (pointer/ID
// equality coincide).
func argKey(args []*Term) string {
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(a.id), 36))
	}
	return b.String()
}

// InternTerm canonically inserts functor(args...), returning the
// unique shared node for that structure. Interning is
// idempotent: structurally identical calls return the same pointer.
func (s *Store) InternTerm(functor FunctorID, args []*Term) (*Term, error) {
	f, err := s.sig.Lookup(functor)
	if err != nil {
		return nil, errors.Wrap(err, "term: intern")
	}
	if f.Arity != len(args) {
		return nil, errors.Errorf("term: functor %s expects %d args, got %d", f.Name, f.Arity, len(args))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.byFunctor[functor]
	if !ok {
		bucket = make(map[string]*Term)
		s.byFunctor[functor] = bucket
	}
	key := argKey(args)
	if t, ok := bucket[key]; ok {
		return t, nil
	}

	weight := f.Weight
	ground := true
	vars := NewVarSet()
	for _, a := range args {
		weight += a.weight
		if !a.ground {
			ground = false
		}
		vars = vars.Union(a.vars)
	}

	t := &Term{
		id:      s.allocID(),
		kind:    KindApp,
		functor: functor,
		args:    args,
		weight:  weight,
		ground:  ground,
		vars:    vars,
	}
	bucket[key] = t
	return t, nil
}

// MustInternTerm is InternTerm but panics on error; reserved for call
// sites building terms from already-validated internal structure
// (e.g. rewriting a subterm with a known-compatible replacement),
// where an error indicates an invariant violation rather than bad
// input.
func (s *Store) MustInternTerm(functor FunctorID, args []*Term) *Term {
	t, err := s.InternTerm(functor, args)
	if err != nil {
		panic("term: invariant violation: " + err.Error())
	}
	return t
}
