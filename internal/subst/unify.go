package subst

import "github.com/superpose/superpose/internal/term"

type eq struct {
	s  *term.Term
	sb Bank
	t  *term.Term
	tb Bank
}

type seenKey struct {
	s, t term.ID
	sb, tb Bank
}

// Unify attempts to unify s (in bank sBank) with t (in bank tBank),
// binding variables on both sides as needed. On failure, bindings
// made during the attempt are left in place as last recorded; callers
// should bracket calls with Record/Backtrack if they need to retry.
func (e *Engine) Unify(s *term.Term, sBank Bank, t *term.Term, tBank Bank) bool {
	return e.solve(eq{s, sBank, t, tBank}, true, true)
}

// Match attempts one-sided matching of pattern (in pBank) against
// instance (in iBank): only pattern-side variables may be bound.
func (e *Engine) Match(pattern *term.Term, pBank Bank, instance *term.Term, iBank Bank) bool {
	return e.solve(eq{pattern, pBank, instance, iBank}, true, false)
}

// solve is the shared Robinson engine for both Unify and Match: an
// explicit worklist plus an encountered-pair cache to avoid repeated work
// on shared subterms.
func (e *Engine) solve(initial eq, bindS, bindT bool) bool {
	work := []eq{initial}
	seen := make(map[seenKey]bool)

	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		rs, rsb, sIsVar := e.deref(cur.s, cur.sb)
		rt, rtb, tIsVar := e.deref(cur.t, cur.tb)

		if rs == rt && rsb == rtb {
			continue
		}
		key := seenKey{rs.ID(), rt.ID(), rsb, rtb}
		if seen[key] {
			continue
		}

		switch {
		case sIsVar && bindS:
			if e.occurs(rs, rsb, rt, rtb) {
				return false
			}
			e.bind(keyOf(rsb, rs), rt, rtb)
		case tIsVar && bindT:
			if e.occurs(rt, rtb, rs, rsb) {
				return false
			}
			e.bind(keyOf(rtb, rt), rs, rsb)
		case sIsVar || tIsVar:
			// One side is an unbound variable but binding it is not
			// permitted in this direction (one-sided matching: the
			// instance side may not be specialized).
			return false
		case rs.IsApp() && rt.IsApp():
			if rs.Functor() != rt.Functor() {
				return false
			}
			seen[key] = true
			sArgs, tArgs := rs.Args(), rt.Args()
			for i := range sArgs {
				work = append(work, eq{sArgs[i], rsb, tArgs[i], rtb})
			}
		default:
			return false
		}
	}
	return true
}

// occurs reports whether the variable identified by (varTerm,
// varBank) appears (after dereferencing) anywhere within t (in
// bank), walking the dereferenced subterm DAG with a seen-set to
// avoid revisiting shared structure.
func (e *Engine) occurs(varTerm *term.Term, varBank Bank, t *term.Term, bank Bank) bool {
	target := keyOf(varBank, varTerm)
	visited := make(map[seenKey]bool)
	var walk func(*term.Term, Bank) bool
	walk = func(n *term.Term, b Bank) bool {
		r, rb, isVar := e.deref(n, b)
		if isVar {
			return keyOf(rb, r) == target
		}
		if !r.IsApp() {
			return false
		}
		vk := seenKey{r.ID(), r.ID(), rb, rb}
		if visited[vk] {
			return false
		}
		visited[vk] = true
		for _, a := range r.Args() {
			if walk(a, rb) {
				return true
			}
		}
		return false
	}
	return walk(t, bank)
}
