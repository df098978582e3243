// Package passive implements the passive-clause container: age/weight
// priority queues with a configurable alternation ratio, optional
// predicate-split layering, and LRS (limited-resource-strategy)
// simulation-based budget tightening.
package passive

import (
	"container/heap"
	"sync"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/options"
)

// Feature extracts the routing value a predicate-split layer cuts
// on.
type Feature func(c *clause.Clause) int

// LayerSpec configures one predicate-split layer: clauses whose
// Feature value is <= Cutoff are routed here, checked in the order
// layers were added. The container's implicit final layer (added
// automatically) has no cutoff and catches everything else.
type LayerSpec struct {
	Feature Feature
	Cutoff  int
}

// AWContainer is the age/weight passive container.
// Clauses are tracked once per layer in two lazily-deleted binary
// heaps (age-ordered and weight-ordered) sharing one membership set,
// so popping by age never leaves a weight-heap entry that still
// claims membership.
type AWContainer struct {
	mu      sync.Mutex
	ratio   options.AgeWeightRatio
	counter uint // alternation position, reset only at construction

	layers []*bucket

	limited               bool
	ageLimit, weightLimit uint32
}

type bucket struct {
	spec    LayerSpec // spec.Feature == nil for the catch-all layer
	age     ageHeap
	weight  weightHeap
	members map[clause.ID]*clause.Clause
}

func newBucket(spec LayerSpec) *bucket {
	return &bucket{spec: spec, members: make(map[clause.ID]*clause.Clause)}
}

// New returns an empty container alternating a:w between age and
// weight selection, with additional predicate-split layers checked
// in order before the implicit catch-all layer.
func New(ratio options.AgeWeightRatio, layers ...LayerSpec) *AWContainer {
	c := &AWContainer{ratio: ratio}
	for _, spec := range layers {
		c.layers = append(c.layers, newBucket(spec))
	}
	c.layers = append(c.layers, newBucket(LayerSpec{}))
	return c
}

func (c *AWContainer) bucketFor(cl *clause.Clause) *bucket {
	for _, b := range c.layers[:len(c.layers)-1] {
		if b.spec.Feature(cl) <= b.spec.Cutoff {
			return b
		}
	}
	return c.layers[len(c.layers)-1]
}

// Insert admits cl into whichever layer its feature routes it to,
// unless the current LRS limits reject it outright.
func (c *AWContainer) Insert(cl *clause.Clause) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limited && !c.admitLocked(cl) {
		return
	}
	b := c.bucketFor(cl)
	b.members[cl.ID()] = cl
	heap.Push(&b.age, cl)
	heap.Push(&b.weight, cl)
}

// Admit reports whether cl would currently survive the LRS early-
// abort pre-check, without inserting it.
func (c *AWContainer) Admit(cl *clause.Clause) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.limited || c.admitLocked(cl)
}

func (c *AWContainer) admitLocked(cl *clause.Clause) bool {
	return cl.Age() <= c.ageLimit || cl.Weight() <= c.weightLimit
}

// PopSelected removes and returns the next clause by the
// container's age/weight alternation policy, or ok=false if empty.
func (c *AWContainer) PopSelected() (*clause.Clause, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.popSelectedLocked()
}

// popSelectedLocked is PopSelected's body, factored out so
// Simulate can run the identical alternation policy against a cloned
// container without taking c.mu (the clone is never shared).
func (c *AWContainer) popSelectedLocked() (*clause.Clause, bool) {
	b := c.firstNonEmptyLocked()
	if b == nil {
		return nil, false
	}

	byAge := c.nextIsAgeLocked()
	c.counter++

	var cl *clause.Clause
	var ok bool
	if byAge {
		cl, ok = c.popLocked(b, true)
		if !ok {
			cl, ok = c.popLocked(b, false)
		}
	} else {
		cl, ok = c.popLocked(b, false)
		if !ok {
			cl, ok = c.popLocked(b, true)
		}
	}
	return cl, ok
}

// nextIsAgeLocked reports whether the current alternation position
// selects age over weight, cycling through a ratio.Age-then-
// ratio.Weight schedule of period ratio.Age+ratio.Weight.
func (c *AWContainer) nextIsAgeLocked() bool {
	period := c.ratio.Age + c.ratio.Weight
	if period == 0 {
		return true
	}
	return c.counter%period < c.ratio.Age
}

func (c *AWContainer) firstNonEmptyLocked() *bucket {
	for _, b := range c.layers {
		if len(b.members) > 0 {
			return b
		}
	}
	return nil
}

// popLocked pops the next live entry from b's age (byAge=true) or
// weight heap, skipping stale entries the sibling heap's prior pop
// already removed from members.
func (c *AWContainer) popLocked(b *bucket, byAge bool) (*clause.Clause, bool) {
	for {
		var cl *clause.Clause
		if byAge {
			if b.age.Len() == 0 {
				return nil, false
			}
			cl = heap.Pop(&b.age).(*clause.Clause)
		} else {
			if b.weight.Len() == 0 {
				return nil, false
			}
			cl = heap.Pop(&b.weight).(*clause.Clause)
		}
		if _, live := b.members[cl.ID()]; live {
			delete(b.members, cl.ID())
			return cl, true
		}
	}
}

// Len returns the total number of clauses currently held across all
// layers.
func (c *AWContainer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, b := range c.layers {
		n += len(b.members)
	}
	return n
}
