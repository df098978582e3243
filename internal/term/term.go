package term

import (
	"fmt"
	"strings"
)

// Kind discriminates the three term shapes: an ordinary variable, a
// special variable used only inside indexing, or an application of a
// functor to arguments.
type Kind uint8

const (
	KindVar Kind = iota
	KindSpecialVar
	KindApp
)

// ID is a stable numeric id assigned to every shared term at intern
// time.
type ID uint64

// Term is a hash-consed, immutable node. Pointer equality implies
// structural equality and vice versa, enforced by Store.Intern*.
// Never construct a Term directly outside this package: doing so
// bypasses sharing and breaks the pointer-equality contract relied
// on throughout indexing and ordering.
type Term struct {
	id      ID
	kind    Kind
	varID   uint32
	functor FunctorID
	args    []*Term

	weight uint32
	ground bool
	vars   VarSet
}

// ID returns the term's stable numeric id.
func (t *Term) ID() ID { return t.id }

// Kind returns the term's shape.
func (t *Term) Kind() Kind { return t.kind }

// VarID returns the variable index; only meaningful when Kind is
// KindVar or KindSpecialVar.
func (t *Term) VarID() uint32 { return t.varID }

// Functor returns the functor id at the root; only meaningful when
// Kind is KindApp.
func (t *Term) Functor() FunctorID { return t.functor }

// Args returns the argument list; empty (not nil-checked) for
// variables and nullary functors.
func (t *Term) Args() []*Term { return t.args }

// Arity returns len(Args()).
func (t *Term) Arity() int { return len(t.args) }

// Weight is the cached KBO weight: functor weight plus the weight of
// every argument, or 1 for a variable.
func (t *Term) Weight() uint32 { return t.weight }

// Ground reports whether the term contains no ordinary variable.
func (t *Term) Ground() bool { return t.ground }

// VarSet is the cached set of ordinary-variable ids occurring in t.
func (t *Term) VarSet() VarSet { return t.vars }

// IsVar reports whether t is an ordinary (non-special) variable.
func (t *Term) IsVar() bool { return t.kind == KindVar }

// IsSpecialVar reports whether t is an indexing-internal special
// variable.
func (t *Term) IsSpecialVar() bool { return t.kind == KindSpecialVar }

// IsApp reports whether t is a functor application.
func (t *Term) IsApp() bool { return t.kind == KindApp }

// String renders a debug form; proof pretty-printing for end users is
// left to an external tool.
func (t *Term) String(sig *Signature) string {
	switch t.kind {
	case KindVar:
		return fmt.Sprintf("X%d", t.varID)
	case KindSpecialVar:
		return fmt.Sprintf("S%d", t.varID)
	default:
		f := sig.MustLookup(t.functor)
		if len(t.args) == 0 {
			return f.Name
		}
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String(sig)
		}
		return fmt.Sprintf("%s(%s)", f.Name, strings.Join(parts, ","))
	}
}
