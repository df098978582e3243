// Package prover is the top-level run context: Env bundles the term
// store, signature, ordering, options, and stats a saturation run
// needs. It is the single entry point a host (cmd/superpose or any
// other embedder) calls to run one saturation to completion; every
// package under internal/ is wired together here exactly once per
// run, assembling the full dependency graph in a single constructor
// rather than through a global registry.
package prover

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/options"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/saturate"
	"github.com/superpose/superpose/internal/term"
)

// Env bundles the shared, run-scoped state threaded through every
// component rather than held in package globals: the term store (and
// its signature), the ordering built over that signature, the run's
// options, and a logger. A fresh Env must be created per solve() call.
type Env struct {
	Store     *term.Store
	Signature *term.Signature
	Clauses   *clause.Store
	Ordering  order.Ordering
	Options   options.Options
	Log       logrus.FieldLogger
}

// New returns an Env over a fresh term store and KBO ordering,
// following opts (or options.Default() if the zero value is passed
// with no algorithm set). log may be nil, in which case
// logrus.StandardLogger() is used, matching saturate.New's own
// nil-logger fallback.
func New(opts options.Options, log logrus.FieldLogger) *Env {
	if opts.SaturationAlgorithm == "" {
		opts = options.Default()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	sig := term.NewSignature()
	store := term.NewStore(sig)
	return &Env{
		Store:     store,
		Signature: sig,
		Clauses:   clause.NewStore(),
		Ordering:  order.NewKBO(sig),
		Options:   opts,
		Log:       log,
	}
}

// Solve runs the given-clause saturation loop over
// problem to completion, polling ctx for cancellation.
// problem's clauses must have been constructed against e.Store and
// e.Clauses (internal/tptpclause.LoadProblem takes both as
// parameters for exactly this reason) so that the driver's proof
// reconstruction can follow parent ids back into the same arena.
// Solve is the module's single exported "run one problem" entry
// point; cmd/superpose's solve subcommand and this package's
// end-to-end tests call through here rather than constructing a
// saturate.Driver directly, so that Env's wiring (store, signature,
// ordering, logger) stays in one place. internal/saturate's own tests
// build their Driver with saturate.New.
func (e *Env) Solve(ctx context.Context, problem *clause.Problem) (*Result, error) {
	driver, err := saturate.New(e.Store, e.Clauses, e.Ordering, e.Options, problem, e.Log)
	if err != nil {
		return nil, err
	}

	res := driver.Run(ctx)
	return fromDriverResult(res), nil
}
