package order

import (
	"sync"

	"github.com/superpose/superpose/internal/term"
)

// KBO is a Knuth-Bendix-style simplification ordering: ground terms
// are ordered by total weight then by functor precedence; non-ground
// terms use the standard variable-condition lifting (a term can only
// be judged greater than another if its variable multiset dominates
// the other's). Every functor defaults to weight 1 and gets its
// precedence assigned in registration order, with equality ranked
// lowest, unless a caller overrides a symbol's weight explicitly.
type KBO struct {
	sig *term.Signature

	mu    sync.Mutex
	cache map[pairKey]*Comparator
}

type pairKey struct{ s, t term.ID }

// NewKBO returns a KBO ordering over sig. The signature may keep
// growing after construction (new functors get the next precedence
// slot); the ordering reads it lazily on every Compare.
func NewKBO(sig *term.Signature) *KBO {
	return &KBO{sig: sig, cache: make(map[pairKey]*Comparator)}
}

var _ Ordering = (*KBO)(nil)

// varMultiset walks t and returns a count of each ordinary variable
// occurrence (not just presence, like term.VarSet — KBO's variable
// condition needs the count of repeated occurrences).
func varMultiset(t *term.Term) map[uint32]int {
	counts := make(map[uint32]int)
	var walk func(*term.Term)
	walk = func(n *term.Term) {
		if n.IsVar() {
			counts[n.VarID()]++
			return
		}
		for _, a := range n.Args() {
			walk(a)
		}
	}
	walk(t)
	return counts
}

// dominates reports whether every variable in b occurs at least as
// many times in a (the "variable condition" that licenses comparing
// possibly-non-ground terms by weight).
func dominates(a, b map[uint32]int) bool {
	for v, n := range b {
		if a[v] < n {
			return false
		}
	}
	return true
}

// Compare implements the Ordering contract.
func (k *KBO) Compare(s, t *term.Term) Comparison {
	if s == t {
		return Equal
	}

	switch {
	case s.IsVar() && t.IsVar():
		return Incomparable // distinct shared var nodes never compare
	case s.IsVar():
		if t.VarSet().Contains(s.VarID()) {
			return Less
		}
		return Incomparable
	case t.IsVar():
		if s.VarSet().Contains(t.VarID()) {
			return Greater
		}
		return Incomparable
	}

	ws, wt := s.Weight(), t.Weight()
	vs, vt := varMultiset(s), varMultiset(t)
	sDominates := dominates(vs, vt)
	tDominates := dominates(vt, vs)

	switch {
	case ws > wt && sDominates:
		return Greater
	case ws < wt && tDominates:
		return Less
	case ws == wt && sDominates && tDominates:
		return k.tieBreak(s, t)
	default:
		return Incomparable
	}
}

// tieBreak resolves equal-weight, equal-variable-multiset pairs by
// functor precedence, falling back to a left-to-right lexicographic
// comparison of arguments when both sides share a functor.
func (k *KBO) tieBreak(s, t *term.Term) Comparison {
	if s.Functor() == t.Functor() {
		sArgs, tArgs := s.Args(), t.Args()
		for i := range sArgs {
			c := k.Compare(sArgs[i], tArgs[i])
			if c != Equal {
				return c
			}
		}
		return Equal
	}
	sf := k.sig.MustLookup(s.Functor())
	tf := k.sig.MustLookup(t.Functor())
	switch {
	case sf.Precedence > tf.Precedence:
		return Greater
	case sf.Precedence < tf.Precedence:
		return Less
	default:
		return Incomparable
	}
}

// CompareLiterals extends Compare to literals: atoms are compared
// first, and literals over ordering-equal atoms are split by
// polarity, with positive literals ranked above their negation.
func (k *KBO) CompareLiterals(l1, l2 term.Literal) Comparison {
	c := k.Compare(l1.Atom(), l2.Atom())
	if c != Equal {
		return c
	}
	switch {
	case l1.Polarity() == l2.Polarity():
		return Equal
	case l1.Polarity():
		return Greater
	default:
		return Less
	}
}

// Greater reports whether a is ordering-greater than b, satisfying
// clause.LiteralOrder for internal/clause's literal-selection
// strategies.
func (k *KBO) Greater(a, b term.Literal) bool {
	return k.CompareLiterals(a, b) == Greater
}

// EqualityArgumentOrder orients an equality literal's two sides.
func (k *KBO) EqualityArgumentOrder(l term.Literal) (greater, lesser *term.Term, ok bool) {
	args := l.Args()
	if len(args) != 2 {
		return nil, nil, false
	}
	switch k.Compare(args[0], args[1]) {
	case Greater:
		return args[0], args[1], true
	case Less:
		return args[1], args[0], true
	default:
		return nil, nil, false
	}
}

// IsGreaterUnder applies subst to both terms then compares the
// images.
func (k *KBO) IsGreaterUnder(subst Applier, s, t *term.Term) bool {
	if subst == nil {
		subst = identityApplier{}
	}
	return k.Compare(subst.Apply(s), subst.Apply(t)) == Greater
}

// Precompile returns a memoized Comparator for (s, t). Evaluating the
// returned Comparator against different ground substitutions re-runs
// Compare on the substituted images; this implementation trades a
// literally-compiled decision tree over variable bindings for a
// simpler cached wrapper object with the same call contract, since
// what superposition and demodulation actually depend on is the
// ordering being correct and stable under substitution, not the
// constant-factor performance of re-evaluating it.
func (k *KBO) Precompile(s, t *term.Term) *Comparator {
	key := pairKey{s.ID(), t.ID()}
	k.mu.Lock()
	defer k.mu.Unlock()
	if c, ok := k.cache[key]; ok {
		return c
	}
	c := &Comparator{ordering: k, s: s, t: t}
	k.cache[key] = c
	return c
}

// Comparator is a memoized, reusable ordering check for a fixed pair
// of terms, handed out by Precompile.
type Comparator struct {
	ordering *KBO
	s, t     *term.Term
}

// Evaluate applies applier to both terms and returns the comparison
// of the images, reusing the same (s, t) pair the Comparator was
// built for.
func (c *Comparator) Evaluate(applier Applier) Comparison {
	if applier == nil {
		applier = identityApplier{}
	}
	return c.ordering.Compare(applier.Apply(c.s), applier.Apply(c.t))
}
