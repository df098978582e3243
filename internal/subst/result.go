package subst

import "github.com/superpose/superpose/internal/term"

// ResultSubstitution pairs a concrete Engine with two designated
// banks and exposes the query/result application methods indexing
// retrieval hands back to callers.
type ResultSubstitution struct {
	Engine      *Engine
	QueryBank   Bank
	ResultBank  Bank
}

// NewResultSubstitution builds a ResultSubstitution over engine with
// the given query/result banks.
func NewResultSubstitution(engine *Engine, queryBank, resultBank Bank) *ResultSubstitution {
	return &ResultSubstitution{Engine: engine, QueryBank: queryBank, ResultBank: resultBank}
}

// ApplyToQuery fully substitutes t, read in the query bank.
func (r *ResultSubstitution) ApplyToQuery(t *term.Term) *term.Term {
	return r.Engine.Apply(t, r.QueryBank)
}

// ApplyToResult fully substitutes t, read in the result bank.
func (r *ResultSubstitution) ApplyToResult(t *term.Term) *term.Term {
	return r.Engine.Apply(t, r.ResultBank)
}

// Apply implements order.Applier by applying with respect to the
// query bank, the convention every inference rule in internal/infer
// uses when asking the ordering about a query-side term.
func (r *ResultSubstitution) Apply(t *term.Term) *term.Term {
	return r.ApplyToQuery(t)
}
