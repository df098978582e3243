package prover

import (
	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/saturate"
)

// TerminationReason mirrors saturate.TerminationReason at the
// package boundary a host program consumes, so that callers of
// Env.Solve never need to import internal/saturate directly.
type TerminationReason = saturate.TerminationReason

// Re-exported for the same reason as TerminationReason above.
const (
	Refutation   = saturate.Refutation
	Satisfiable  = saturate.Satisfiable
	ResourceOut  = saturate.ResourceOut
	Inapplicable = saturate.Inapplicable
	Unknown      = saturate.Unknown
)

// Stats is the exported statistics record: counts of generated and
// simplified clauses per inference rule, plus a total of subsumed
// clauses.
type Stats = saturate.Stats

// Result is Env.Solve's return value: the termination outcome,
// plus the proof DAG on Refutation and the run's statistics.
type Result struct {
	Reason TerminationReason
	Proof  []*clause.Clause
	Stats  Stats
}

func fromDriverResult(r *saturate.Result) *Result {
	return &Result{Reason: r.Reason, Proof: r.Proof, Stats: r.Stats}
}
