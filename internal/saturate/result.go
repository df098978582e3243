package saturate

import "github.com/superpose/superpose/internal/clause"

// TerminationReason is the outcome vocabulary for a completed run.
type TerminationReason uint8

const (
	// Refutation means the empty clause was derived: the input
	// problem is unsatisfiable.
	Refutation TerminationReason = iota
	// Satisfiable means both containers emptied without deriving the
	// empty clause: the problem saturated.
	Satisfiable
	// ResourceOut means a time limit, given-clause limit, or
	// cancellation ended the run before either of the above.
	ResourceOut
	// Inapplicable means the configured saturation algorithm is not
	// implemented by this driver.
	Inapplicable
	// Unknown means the run aborted on an invariant violation.
	Unknown
)

func (r TerminationReason) String() string {
	switch r {
	case Refutation:
		return "Refutation"
	case Satisfiable:
		return "Satisfiable"
	case ResourceOut:
		return "ResourceOut"
	case Inapplicable:
		return "Inapplicable"
	default:
		return "Unknown"
	}
}

// Result is the saturation driver's output: a termination reason
// plus, on Refutation, the DAG of clauses reachable from the derived
// empty clause, and the run's statistics.
type Result struct {
	Reason TerminationReason
	Proof  []*clause.Clause
	Stats  Stats
}
