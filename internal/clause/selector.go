package clause

import "github.com/superpose/superpose/internal/term"

// LiteralOrder is the narrow slice of order.Ordering a selector needs
// (just literal comparison), kept local to avoid this package
// importing internal/order.
type LiteralOrder interface {
	// Greater reports whether a is ordering-greater than b.
	Greater(a, b term.Literal) bool
}

// Selector picks which literals of a clause become "selected" when it
// is activated. It returns the indices (into lits) of the
// literals to select.
type Selector func(lits []term.Literal, ord LiteralOrder) []int

func maximalIndices(lits []term.Literal, ord LiteralOrder) []int {
	var maximal []int
	for i, li := range lits {
		isMaximal := true
		for j, lj := range lits {
			if i == j {
				continue
			}
			if ord.Greater(lj, li) {
				isMaximal = false
				break
			}
		}
		if isMaximal {
			maximal = append(maximal, i)
		}
	}
	return maximal
}

// SelectTotal implements the "Total" literal-selection strategy: if
// there is a single maximal literal, select only it; if several
// literals are pairwise incomparable at the top, select all of them
// (none can be soundly dropped).
func SelectTotal(lits []term.Literal, ord LiteralOrder) []int {
	if len(lits) == 0 {
		return nil
	}
	maximal := maximalIndices(lits, ord)
	if len(maximal) == 0 {
		return []int{0}
	}
	return maximal
}

// SelectMaximalOnly selects every maximal literal.
func SelectMaximalOnly(lits []term.Literal, ord LiteralOrder) []int {
	return maximalIndices(lits, ord)
}

// SelectComplete selects every literal in the clause: the
// conservative, always-complete choice.
func SelectComplete(lits []term.Literal, ord LiteralOrder) []int {
	idx := make([]int, len(lits))
	for i := range lits {
		idx[i] = i
	}
	return idx
}

// ApplySelection reorders c's literals so the selected ones occupy
// the prefix, then installs the selection count.
// It must be called exactly once, when c becomes Active.
func ApplySelection(c *Clause, selector Selector, ord LiteralOrder) error {
	selectedIdx := selector(c.lits, ord)
	selected := make(map[int]bool, len(selectedIdx))
	for _, i := range selectedIdx {
		selected[i] = true
	}

	reordered := make([]term.Literal, 0, len(c.lits))
	for i, l := range c.lits {
		if selected[i] {
			reordered = append(reordered, l)
		}
	}
	for i, l := range c.lits {
		if !selected[i] {
			reordered = append(reordered, l)
		}
	}
	c.lits = reordered
	return c.SetSelection(len(selectedIdx))
}
