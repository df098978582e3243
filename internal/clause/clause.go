package clause

import (
	"github.com/superpose/superpose/internal/term"
)

// ID identifies a clause within one run; also the tie-breaker for
// passive-container ordering.
type ID uint64

// InputType classifies an input clause.
type InputType uint8

const (
	InputAxiom InputType = iota
	InputConjecture
	InputNegatedConjecture
	InputDerived
)

// Clause is an ordered array of literals plus the metadata the
// saturation driver and indices need. Clauses
// are not shared: equality is identity, unlike terms.
type Clause struct {
	id   ID
	lits []term.Literal

	age       uint32
	weight    uint32
	weightSet bool

	selectedCount int
	selectionSet  bool

	color  Color
	splits SplitSet

	state State

	inference Inference
	inputType InputType

	refs int
}

// newClause is the shared constructor used by Store.NewInput and
// Store.NewDerived.
func newClause(id ID, lits []term.Literal, age uint32, color Color, splits SplitSet, inf Inference, it InputType) *Clause {
	return &Clause{
		id:        id,
		lits:      lits,
		age:       age,
		color:     color,
		splits:    splits,
		state:     Unprocessed,
		inference: inf,
		inputType: it,
	}
}

// ID returns the clause's stable numeric id.
func (c *Clause) ID() ID { return c.id }

// Literals returns the clause's literal array. Selected literals (if
// any) occupy the prefix of length SelectedCount.
func (c *Clause) Literals() []term.Literal { return c.lits }

// Len returns the number of literals.
func (c *Clause) Len() int { return len(c.lits) }

// IsEmpty reports whether this is the empty clause (a refutation).
func (c *Clause) IsEmpty() bool { return len(c.lits) == 0 }

// Age is the clause's derivation depth.
func (c *Clause) Age() uint32 { return c.age }

// Weight is the clause's weight, computed lazily on first access and
// cached thereafter.
func (c *Clause) Weight() uint32 {
	if !c.weightSet {
		var w uint32
		for _, l := range c.lits {
			w += l.Weight()
		}
		c.weight = w
		c.weightSet = true
	}
	return c.weight
}

// Color is the clause's symbol-elimination color.
func (c *Clause) Color() Color { return c.color }

// Splits is the clause's AVATAR split-component label set.
func (c *Clause) Splits() SplitSet { return c.splits }

// State returns the clause's current container-membership state.
func (c *Clause) State() State { return c.state }

// SetState validates and performs a state transition.
func (c *Clause) SetState(to State) error {
	if err := transition(c.state, to); err != nil {
		return err
	}
	c.state = to
	return nil
}

// SelectedCount returns the length of the selected-literal prefix, or
// 0 if selection has not yet been performed.
func (c *Clause) SelectedCount() int { return c.selectedCount }

// SetSelection installs the selected-literal prefix length. It may be
// called exactly once per clause.
func (c *Clause) SetSelection(count int) error {
	if c.selectionSet {
		return errSelectionAlreadySet{id: c.id}
	}
	if count < 0 || count > len(c.lits) {
		return errInvalidSelection{id: c.id, count: count, length: len(c.lits)}
	}
	c.selectedCount = count
	c.selectionSet = true
	return nil
}

// SelectedLiterals returns the selected prefix of the literal array.
func (c *Clause) SelectedLiterals() []term.Literal {
	if !c.selectionSet {
		return c.lits
	}
	return c.lits[:c.selectedCount]
}

// Inference returns the rule and parent clause ids that derived this
// clause.
func (c *Clause) Inference() Inference { return c.inference }

// InputType returns the clause's input classification (meaningful
// only for RuleInput clauses).
func (c *Clause) InputType() InputType { return c.inputType }

// Retain/Release implement the reference-counted lifecycle: a clause
// lives while referenced by a container or any index, and is logically
// dead once its reference count reaches zero. Go's garbage collector
// owns actual memory reclamation; these calls exist so Store.GC can
// assert the invariant and drop its own by-id lookup entry once
// nothing references the clause anymore.
func (c *Clause) Retain()  { c.refs++ }
func (c *Clause) Release() { c.refs-- }
func (c *Clause) refCount() int { return c.refs }
