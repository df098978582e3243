// Package order implements the simplification ordering
// consumed by superposition and demodulation: a KBO-style comparator
// on terms, lifted to literals, with an Applier-based "comparator"
// object for repeated ordering checks against many ground
// substitutions.
package order

import "github.com/superpose/superpose/internal/term"

// Comparison is the result of comparing two terms or literals under
// the ordering.
type Comparison int8

const (
	Incomparable Comparison = iota
	Less
	Equal
	Greater
)

func (c Comparison) String() string {
	switch c {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	default:
		return "Incomparable"
	}
}

// NotGreater reports whether c is anything other than Greater. Some
// ordering-check code paths in the original implementation explicitly
// do not distinguish Less from Incomparable, routing both to the
// "not-greater" branch; call sites that need that
// conflation should use this helper rather than hand-rolling the
// comparison, so the conflation stays confined to where it is
// intentional.
func NotGreater(c Comparison) bool { return c != Greater }

// Applier resolves a term to its image under some substitution
// (ground or not). It is satisfied by subst.ResultSubstitution; kept
// as a narrow interface here so this package does not need to import
// the substitution engine.
type Applier interface {
	Apply(t *term.Term) *term.Term
}

// identityApplier is used when a Comparator is evaluated with no
// substitution at all (the plain ground-term comparison path).
type identityApplier struct{}

func (identityApplier) Apply(t *term.Term) *term.Term { return t }

// Ordering is the public contract consumed by superposition and
// demodulation.
type Ordering interface {
	Compare(s, t *term.Term) Comparison
	CompareLiterals(l1, l2 term.Literal) Comparison
	// Greater reports whether a is ordering-greater than b: a
	// bool-narrowed CompareLiterals, the shape internal/clause.LiteralOrder
	// needs for literal selection without that package importing
	// internal/order.
	Greater(a, b term.Literal) bool
	// EqualityArgumentOrder returns the oriented (greater, lesser)
	// sides of an equality literal, or ok=false if the two sides are
	// not ordering-comparable (so the equation cannot be used as a
	// demodulator without further case-splitting).
	EqualityArgumentOrder(l term.Literal) (greater, lesser *term.Term, ok bool)
	// IsGreaterUnder applies subst to both terms and reports whether
	// the images compare Greater; used for fast in-line ordering
	// checks during inference.
	IsGreaterUnder(subst Applier, s, t *term.Term) bool
	// Precompile returns a reusable Comparator for the pair (s, t),
	// memoized so repeated calls with the same (s, t) return the same
	// object.
	Precompile(s, t *term.Term) *Comparator
}
