// Package subst implements the substitution engine: Robinson
// unification with backtracking, one-sided matching, and the
// result-substitution wrapper the indexing packages hand back to
// callers.
package subst

import "github.com/superpose/superpose/internal/term"

// Bank is a small integer tagging which "copy" of the variable space
// a term's variables live in, so the same numeric variable id from
// two different clauses (or a query vs. an indexed key) never
// collides.
type Bank uint8

// varKind distinguishes ordinary from special variables within a
// VarKey, since both use the same small numeric id space but must
// never be confused with each other.
type varKind uint8

const (
	kindOrdinary varKind = iota
	kindSpecial
)

// VarKey names one variable slot: its bank, its numeric id, and
// whether it is an ordinary or special variable.
type VarKey struct {
	Bank Bank
	ID   uint32
	kind varKind
}

func ordinaryKey(bank Bank, id uint32) VarKey { return VarKey{Bank: bank, ID: id, kind: kindOrdinary} }
func specialKey(bank Bank, id uint32) VarKey  { return VarKey{Bank: bank, ID: id, kind: kindSpecial} }

func keyOf(bank Bank, t *term.Term) VarKey {
	if t.IsSpecialVar() {
		return specialKey(bank, t.VarID())
	}
	return ordinaryKey(bank, t.VarID())
}

type binding struct {
	term *term.Term
	bank Bank
}

// trailEntry records one binding made, so Backtrack can undo it.
type trailEntry struct {
	key VarKey
}

// BacktrackPoint is a checkpoint returned by Record, to be passed to
// Done or Backtrack.
type BacktrackPoint int

// Engine is the substitution engine: a single set of variable
// bindings shared across one speculative unification/matching
// attempt, with union-find-style dereferencing and a
// trail for scoped undo.
type Engine struct {
	store    *term.Store
	bindings map[VarKey]binding
	trail    []trailEntry

	// renamed memoizes the fresh result variable allocated for each
	// still-unbound source variable, so repeated Apply calls for the
	// same attempt produce a consistent (not just fresh-every-time)
	// rename.
	renamed map[VarKey]*term.Term
}

// NewEngine returns an empty substitution engine backed by store.
func NewEngine(store *term.Store) *Engine {
	return &Engine{
		store:    store,
		bindings: make(map[VarKey]binding),
		renamed:  make(map[VarKey]*term.Term),
	}
}

// Record returns a checkpoint of the current trail length.
func (e *Engine) Record() BacktrackPoint { return BacktrackPoint(len(e.trail)) }

// Done discards a checkpoint, keeping whatever bindings were made
// since it was taken (the speculative work is committed).
func (e *Engine) Done(BacktrackPoint) {}

// Backtrack undoes every binding made since bp was taken.
func (e *Engine) Backtrack(bp BacktrackPoint) {
	for i := len(e.trail) - 1; i >= int(bp); i-- {
		delete(e.bindings, e.trail[i].key)
	}
	e.trail = e.trail[:bp]
}

// Reset clears all bindings and the rename cache, returning the
// engine to its initial state for reuse across unrelated attempts.
func (e *Engine) Reset() {
	e.bindings = make(map[VarKey]binding)
	e.trail = e.trail[:0]
	e.renamed = make(map[VarKey]*term.Term)
}

func (e *Engine) bind(key VarKey, t *term.Term, bank Bank) {
	e.bindings[key] = binding{term: t, bank: bank}
	e.trail = append(e.trail, trailEntry{key: key})
}

// BindSpecialVar binds a special variable directly; exposed for the
// indexing packages, which build substitution-tree keys out of
// special-variable bindings.
func (e *Engine) BindSpecialVar(id uint32, bank Bank, t *term.Term, tBank Bank) {
	e.bind(specialKey(bank, id), t, tBank)
}

// deref follows the binding chain for t (in bank) to its
// representative: either an unbound variable, returned as itself with
// isVar true, or a non-variable term in the bank it was ultimately
// bound in.
func (e *Engine) deref(t *term.Term, bank Bank) (repr *term.Term, reprBank Bank, isVar bool) {
	for {
		if !t.IsVar() && !t.IsSpecialVar() {
			return t, bank, false
		}
		b, ok := e.bindings[keyOf(bank, t)]
		if !ok {
			return t, bank, true
		}
		t, bank = b.term, b.bank
	}
}

// Deref is the public, one-step-collapsed form of deref: it follows a
// variable's binding chain and returns the resulting term or variable.
func (e *Engine) Deref(t *term.Term, bank Bank) (*term.Term, Bank) {
	repr, reprBank, _ := e.deref(t, bank)
	return repr, reprBank
}

// Apply fully substitutes t (read in bank), recursively resolving
// bound variables and renaming unbound ones to fresh store variables
// consistently within this engine's lifetime. Apply never returns a
// term containing a special variable: an
// unbound special variable reaching Apply indicates an invariant
// violation in the calling index, not user error.
func (e *Engine) Apply(t *term.Term, bank Bank) *term.Term {
	repr, reprBank, isVar := e.deref(t, bank)
	if isVar {
		if repr.IsSpecialVar() {
			panic("subst: invariant violation: unbound special variable reached Apply")
		}
		key := ordinaryKey(reprBank, repr.VarID())
		if fresh, ok := e.renamed[key]; ok {
			return fresh
		}
		fresh := e.store.FreshVariable()
		e.renamed[key] = fresh
		return fresh
	}
	if !repr.IsApp() {
		return repr
	}
	args := repr.Args()
	newArgs := make([]*term.Term, len(args))
	changed := false
	for i, a := range args {
		newArgs[i] = e.Apply(a, reprBank)
		if newArgs[i] != a {
			changed = true
		}
	}
	if !changed {
		return repr
	}
	return e.store.MustInternTerm(repr.Functor(), newArgs)
}
