package codetree

import (
	"sync"

	"github.com/superpose/superpose/internal/term"
)

// compactThreshold is the fraction of dead patterns above which the
// program is compacted at the end of a Match.
const compactThreshold = 0.5

// Tree is the code-tree index: one shared matching program built by
// appending each inserted pattern's compiled instruction sequence.
// Matching walks each live pattern's span in turn; this trades a
// fully shared failure-link automaton merging common prefixes across
// patterns for a simpler per-pattern scan, since the demodulator sets
// this index serves stay small enough that the asymptotic difference
// does not matter for correctness.
type Tree struct {
	mu       sync.Mutex
	patterns []*pattern
	dead     int
}

// New returns an empty code-tree index.
func New() *Tree {
	return &Tree{}
}

// Insert compiles t into a pattern bound to data and appends it to the
// shared program.
func (tr *Tree) Insert(t *term.Term, data interface{}) {
	tr.InsertVars(t, data)
}

// VarSlots returns the variable-id -> slot mapping t's pattern would
// be compiled with, without inserting anything. Callers that need to
// know the slot assignment before they have the Data value to attach
// (e.g. because Data itself embeds information about the match) call
// this first, then InsertVars once Data is ready.
func VarSlots(t *term.Term) map[uint32]int {
	p := compile(Flatten(t), nil)
	return p.varSlots
}

// InsertVars is Insert, additionally returning the pattern's own
// variable-id -> slot mapping, so a caller that needs to rebuild a
// companion term (e.g. a demodulator's right-hand side) from a
// Success's Bindings can translate its variable ids to slots.
func (tr *Tree) InsertVars(t *term.Term, data interface{}) map[uint32]int {
	toks := Flatten(t)
	tr.mu.Lock()
	defer tr.mu.Unlock()
	p := compile(toks, data)
	tr.patterns = append(tr.patterns, &p)
	return p.varSlots
}

// Remove marks the Success opcode carrying data as dead. It is a
// no-op if no live pattern carries that data. Dead patterns are
// skipped by Match; compact physically drops them.
func (tr *Tree) Remove(data interface{}) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	for _, p := range tr.patterns {
		for i := range p.instrs {
			if p.instrs[i].Op == OpSuccess && p.instrs[i].Data == data && !p.instrs[i].dead {
				p.instrs[i].dead = true
				tr.dead++
				return
			}
		}
	}
}

// compact drops dead patterns from the program. Caller must hold mu.
func (tr *Tree) compact() {
	live := tr.patterns[:0]
	for _, p := range tr.patterns {
		if !p.dead() {
			live = append(live, p)
		}
	}
	tr.patterns = live
	tr.dead = 0
}

// maybeCompact calls compact once the dead fraction crosses
// compactThreshold. Caller must hold mu.
func (tr *Tree) maybeCompact() {
	if len(tr.patterns) == 0 {
		return
	}
	if float64(tr.dead)/float64(len(tr.patterns)) > compactThreshold {
		tr.compact()
	}
}

// Success is one confirmed match: the data attached at Insert, and the
// variable-slot bindings captured as flat token spans.
type Success struct {
	Data     interface{}
	Bindings map[int][]Tok
}

// MatchTerm flattens query, runs it against every live pattern and
// returns every Success.
// Laziness is simplified to an eager slice, matching the convention
// already established by internal/index/substtree's Iterator.
func (tr *Tree) MatchTerm(query *term.Term) []Success {
	return tr.Match(Flatten(query))
}

// Match is the token-level form of MatchTerm, exposed for callers
// that already hold a flattened query (e.g. a subterm position
// reached mid-traversal of a larger flattened term).
func (tr *Tree) Match(query []Tok) []Success {
	tr.mu.Lock()
	patterns := make([]*pattern, len(tr.patterns))
	copy(patterns, tr.patterns)
	tr.mu.Unlock()

	var out []Success
	for _, p := range patterns {
		if p.dead() {
			continue
		}
		bindings := make(map[int][]Tok)
		data, ok := run(p.instrs, query, bindings)
		if ok {
			out = append(out, Success{Data: data, Bindings: bindings})
		}
	}
	tr.mu.Lock()
	tr.maybeCompact()
	tr.mu.Unlock()
	return out
}

// run executes one pattern's instruction sequence against query,
// consuming one pattern instruction per node and query-side subterm
// spans for variable slots.
func run(instrs []Instr, q []Tok, bindings map[int][]Tok) (interface{}, bool) {
	ii, qi := 0, 0
	for ii < len(instrs) {
		in := instrs[ii]
		switch in.Op {
		case OpCheckFun:
			if qi >= len(q) || q[qi].IsVar || uint32(q[qi].Functor) != in.Functor || q[qi].Arity != in.Arity {
				return nil, false
			}
			ii++
			qi++
		case OpAssignVar:
			w := subtermWidth(q, qi)
			bindings[in.Slot] = q[qi : qi+w]
			ii++
			qi += w
		case OpCheckVar:
			w := subtermWidth(q, qi)
			if !spanEqual(bindings[in.Slot], q[qi:qi+w]) {
				return nil, false
			}
			ii++
			qi += w
		case OpSuccess:
			return in.Data, true
		case OpFail:
			return nil, false
		}
	}
	return nil, false
}

// subtermWidth returns how many tokens, starting at i, the subterm
// rooted there occupies in q's preorder flattening.
func subtermWidth(q []Tok, i int) int {
	if i >= len(q) {
		return 0
	}
	if q[i].IsVar {
		return 1
	}
	w := 1
	pos := i + 1
	for k := 0; k < q[i].Arity; k++ {
		cw := subtermWidth(q, pos)
		w += cw
		pos += cw
	}
	return w
}

func spanEqual(a, b []Tok) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].IsVar != b[i].IsVar || a[i].Functor != b[i].Functor || a[i].Arity != b[i].Arity {
			return false
		}
		if a[i].IsVar && a[i].VarID != b[i].VarID {
			return false
		}
	}
	return true
}
