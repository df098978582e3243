// Package metrics exposes the saturation driver's statistics as
// Prometheus counters, following pkg/metrics/metrics.go's
// "package-level prometheus.New*, registered once, .Set/.Inc from a
// handler" idiom. prover.Stats already carries counts of generated,
// simplified, and subsumed clauses per rule in-process; this package
// is the optional ambient surface a host can scrape the same numbers
// through.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	clausesGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "superpose_clauses_generated_total",
			Help: "Clauses produced by each generating inference rule.",
		},
		[]string{"rule"},
	)

	clausesSimplified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "superpose_clauses_simplified_total",
			Help: "Clauses rewritten by each simplifying inference rule.",
		},
		[]string{"rule"},
	)

	clausesSubsumed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "superpose_clauses_subsumed_total",
			Help: "Clauses discarded as redundant during immediate simplification.",
		},
	)

	passiveSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "superpose_passive_size",
			Help: "Number of clauses currently held in the passive container.",
		},
	)

	activeSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "superpose_active_size",
			Help: "Number of clauses currently registered in the active indices.",
		},
	)

	givenClauseIterations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "superpose_given_clause_iterations_total",
			Help: "Number of given-clause loop iterations run by the saturation driver.",
		},
	)
)

// Register registers every collector with the default Prometheus
// registry. Safe to call once per process; a second call panics via
// prometheus.MustRegister, matching metrics.Register's contract.
func Register() {
	prometheus.MustRegister(clausesGenerated)
	prometheus.MustRegister(clausesSimplified)
	prometheus.MustRegister(clausesSubsumed)
	prometheus.MustRegister(passiveSize)
	prometheus.MustRegister(activeSize)
	prometheus.MustRegister(givenClauseIterations)
}

// ObserveGenerated increments the per-rule generated-clause counter.
func ObserveGenerated(rule string, n int) {
	if n <= 0 {
		return
	}
	clausesGenerated.WithLabelValues(rule).Add(float64(n))
}

// ObserveSimplified increments the per-rule simplified-clause counter.
func ObserveSimplified(rule string) {
	clausesSimplified.WithLabelValues(rule).Inc()
}

// ObserveSubsumed increments the subsumed-clause counter.
func ObserveSubsumed() {
	clausesSubsumed.Inc()
}

// SetPassiveSize reports the passive container's current size.
func SetPassiveSize(n int) {
	passiveSize.Set(float64(n))
}

// SetActiveSize reports the active-index registration count.
func SetActiveSize(n int) {
	activeSize.Set(float64(n))
}

// ObserveGivenClauseIteration increments the given-clause loop counter.
func ObserveGivenClauseIteration() {
	givenClauseIterations.Inc()
}
