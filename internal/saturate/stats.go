package saturate

// Stats is the run-local statistics record: counts of generated and
// simplified clauses per rule, plus a total of subsumed clauses. It mirrors
// internal/metrics's Prometheus counters but stays self-contained so
// a Result is meaningful without a scrape target.
type Stats struct {
	Generated  map[string]int
	Simplified map[string]int
	Subsumed   int

	GivenClauseIterations int
}

func newStats() Stats {
	return Stats{Generated: make(map[string]int), Simplified: make(map[string]int)}
}
