package passive

import "time"

// clone returns an independent copy of c's current state (ratio,
// counter, and every layer's heaps/membership), for Simulate to drain
// without disturbing the real container. Called with c.mu held.
func (c *AWContainer) clone() *AWContainer {
	out := &AWContainer{ratio: c.ratio, counter: c.counter, limited: c.limited, ageLimit: c.ageLimit, weightLimit: c.weightLimit}
	for _, b := range c.layers {
		nb := newBucket(b.spec)
		nb.age = append(ageHeap(nil), b.age...)
		nb.weight = append(weightHeap(nil), b.weight...)
		for id, cl := range b.members {
			nb.members[id] = cl
		}
		out.layers = append(out.layers, nb)
	}
	return out
}

// Simulate runs the container's real pop order against a clone for
// up to horizon clauses and returns the maximum age and weight
// encountered, without mutating the real container. ok is false if the
// container was empty.
func (c *AWContainer) Simulate(horizon int) (maxAge, maxWeight uint32, ok bool) {
	c.mu.Lock()
	clone := c.clone()
	c.mu.Unlock()

	seen := 0
	for seen < horizon {
		cl, popped := clone.popSelectedLocked()
		if !popped {
			break
		}
		if cl.Age() > maxAge {
			maxAge = cl.Age()
		}
		if cl.Weight() > maxWeight {
			maxWeight = cl.Weight()
		}
		seen++
		ok = true
	}
	return maxAge, maxWeight, ok
}

// EstimateHorizon converts a remaining time budget and an observed
// average per-given-clause processing duration into a clause-count
// horizon for Simulate, saturating to 0 when the budget has already
// run out.
func EstimateHorizon(remaining, perClause time.Duration) int {
	if remaining <= 0 || perClause <= 0 {
		return 0
	}
	return int(remaining / perClause)
}

// SetLimitsFromSimulation simulates a horizon-clause lookahead and
// tightens the container's age/weight admission limits to the
// extremes it observed, then evicts any already-resident clause that
// no longer qualifies.
// Limits only ever tighten: a call that would widen an existing limit
// is ignored for that dimension.
func (c *AWContainer) SetLimitsFromSimulation(horizon int) {
	maxAge, maxWeight, ok := c.Simulate(horizon)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.limited || maxAge < c.ageLimit {
		c.ageLimit = maxAge
	}
	if !c.limited || maxWeight < c.weightLimit {
		c.weightLimit = maxWeight
	}
	c.limited = true
	c.evictBeyondLimitsLocked()
}

// evictBeyondLimitsLocked drops every member of every layer whose
// age and weight both exceed the current limits (a clause survives
// if either dimension still qualifies it, matching admitLocked's
// "either" contract).
func (c *AWContainer) evictBeyondLimitsLocked() {
	for _, b := range c.layers {
		for id, cl := range b.members {
			if !c.admitLocked(cl) {
				delete(b.members, id)
			}
		}
	}
}
