package substtree

import "github.com/superpose/superpose/internal/term"

// isVariant reports whether a and b are alpha-variants: identical
// shape with a bijective renaming between their variables. Unlike
// Unify/Match, this needs no substitution engine — it is a purely
// structural check, since a variant relation never actually
// instantiates anything.
func isVariant(a, b *term.Term) bool {
	aToB := make(map[uint32]uint32)
	bToA := make(map[uint32]uint32)
	return variantWalk(a, b, aToB, bToA)
}

func variantWalk(a, b *term.Term, aToB, bToA map[uint32]uint32) bool {
	aVar := a.IsVar() || a.IsSpecialVar()
	bVar := b.IsVar() || b.IsSpecialVar()
	if aVar != bVar {
		return false
	}
	if aVar {
		if a.Kind() != b.Kind() {
			return false
		}
		if mapped, ok := aToB[a.VarID()]; ok {
			return mapped == b.VarID()
		}
		if mapped, ok := bToA[b.VarID()]; ok {
			return mapped == a.VarID()
		}
		aToB[a.VarID()] = b.VarID()
		bToA[b.VarID()] = a.VarID()
		return true
	}
	if a.Functor() != b.Functor() || a.Arity() != b.Arity() {
		return false
	}
	for i, aa := range a.Args() {
		if !variantWalk(aa, b.Args()[i], aToB, bToA) {
			return false
		}
	}
	return true
}
