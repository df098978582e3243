package term

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// FunctorID identifies a functor (function or predicate symbol)
// within a Signature. Zero is never a valid id.
type FunctorID uint32

// Sort is the declared domain/range type of a functor's arguments and
// result. The prover does not attempt sort inference beyond what the
// external collaborator that produced the clauses declares; an
// untyped problem uses the single sort Default for everything.
type Sort string

// Default is the sort used by problems that do not declare sorts.
const Default Sort = "$i"

// Bool is the sort of formulae/predicates.
const Bool Sort = "$o"

// Functor describes one function or predicate symbol: its arity,
// declared signature, and the weight/precedence it contributes to
// the term ordering.
type Functor struct {
	ID         FunctorID
	Name       string
	Arity      int
	Domain     []Sort
	Range      Sort
	Predicate  bool
	Weight     uint32
	Precedence int
}

// EqualityName is the reserved name of the built-in equality
// predicate; every Signature registers it automatically with the
// lowest possible precedence, ordering `=` below every user symbol.
const EqualityName = "="

// Signature is the process-wide registry of functors for one run. It
// is the only piece of the term store that grows after construction;
// all growth happens through Intern, guarded by a single writer lock.
type Signature struct {
	mu         sync.Mutex
	byNameAr   map[nameArity]FunctorID
	functors   []*Functor // index 0 unused, ids start at 1
	nextPrec   int
	equalityID FunctorID
}

type nameArity struct {
	name  string
	arity int
}

// NewSignature returns an empty signature with the built-in equality
// predicate already registered.
func NewSignature() *Signature {
	s := &Signature{
		byNameAr: make(map[nameArity]FunctorID),
		functors: make([]*Functor, 1),
	}
	s.equalityID = s.intern(EqualityName, 2, true, []Sort{Default, Default}, Bool)
	s.functors[s.equalityID].Precedence = -1
	return s
}

// EqualityID returns the id of the built-in equality predicate.
func (s *Signature) EqualityID() FunctorID { return s.equalityID }

// Intern registers (or looks up) a functor by name/arity, assigning
// it the next precedence slot and a default weight of 1 on first
// registration (precedence follows order of first occurrence; a later
// SetWeight call changes only the weight).
func (s *Signature) Intern(name string, arity int, predicate bool, domain []Sort, rng Sort) FunctorID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intern(name, arity, predicate, domain, rng)
}

func (s *Signature) intern(name string, arity int, predicate bool, domain []Sort, rng Sort) FunctorID {
	key := nameArity{name, arity}
	if id, ok := s.byNameAr[key]; ok {
		return id
	}
	id := FunctorID(len(s.functors))
	f := &Functor{
		ID:         id,
		Name:       name,
		Arity:      arity,
		Domain:     domain,
		Range:      rng,
		Predicate:  predicate,
		Weight:     1,
		Precedence: s.nextPrec,
	}
	s.nextPrec++
	s.functors = append(s.functors, f)
	s.byNameAr[key] = id
	return id
}

// SetWeight overrides the default weight of an already-registered
// functor; used by options that declare custom KBO symbol weights.
func (s *Signature) SetWeight(id FunctorID, weight uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.lookup(id)
	if err != nil {
		return err
	}
	f.Weight = weight
	return nil
}

// Lookup returns the Functor registered under id.
func (s *Signature) Lookup(id FunctorID) (*Functor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(id)
}

func (s *Signature) lookup(id FunctorID) (*Functor, error) {
	if int(id) <= 0 || int(id) >= len(s.functors) {
		return nil, errors.Errorf("term: unknown functor id %d", id)
	}
	return s.functors[id], nil
}

// MustLookup is Lookup but panics on an unknown id; reserved for
// internal call sites where an unknown functor id indicates an
// invariant violation, not user error.
func (s *Signature) MustLookup(id FunctorID) *Functor {
	f, err := s.Lookup(id)
	if err != nil {
		panic(fmt.Sprintf("term: invariant violation: %v", err))
	}
	return f
}

// Len returns the number of registered functors (excluding the unused
// index 0).
func (s *Signature) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.functors) - 1
}
