// Package saturate implements the given-clause saturation loop: the
// main driver that alternates draining newly derived clauses into the
// passive container, selecting a given clause, simplifying and
// indexing it, and enqueuing the conclusions of every generating
// inference run against it.
package saturate

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/client-go/util/workqueue"

	"github.com/superpose/superpose/internal/clause"
	"github.com/superpose/superpose/internal/infer"
	"github.com/superpose/superpose/internal/metrics"
	"github.com/superpose/superpose/internal/options"
	"github.com/superpose/superpose/internal/order"
	"github.com/superpose/superpose/internal/passive"
	"github.com/superpose/superpose/internal/redundancy"
	"github.com/superpose/superpose/internal/term"
)

// Driver owns the three containers (unprocessed/passive/active, the
// last implicit in the indices) and every engine the main loop
// consults.
type Driver struct {
	store   *term.Store
	clauses *clause.Store
	ord     order.Ordering
	opts    options.Options
	log     logrus.FieldLogger

	passiveC   *passive.AWContainer
	indices    *infer.Indices
	redundancy *redundancy.Handler

	generators []infer.Generator
	forward    []infer.ForwardSimplifier
	backward   []infer.BackwardSimplifier

	selector clause.Selector

	queue   workqueue.TypedRateLimitingInterface[clause.ID]
	pending map[clause.ID]*clause.Clause

	stats      Stats
	activeSize int

	deadline     time.Time
	totalIterDur time.Duration
	iterCount    uint64
}

// New returns a Driver over problem, wired according to opts. ord and
// store/clauses are shared with the caller (prover.Env owns their
// lifetime).
func New(store *term.Store, clauses *clause.Store, ord order.Ordering, opts options.Options, problem *clause.Problem, log logrus.FieldLogger) (*Driver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	selector, err := selectorFor(opts.LiteralSelector)
	if err != nil {
		return nil, err
	}

	indices := infer.NewIndices(store, ord)

	var redundancyHandler *redundancy.Handler
	if opts.ConditionalRedundancyCheck {
		redundancyHandler = redundancy.New(store)
	}

	d := &Driver{
		store:      store,
		clauses:    clauses,
		ord:        ord,
		opts:       opts,
		log:        log.WithField("component", "saturate"),
		passiveC:   passive.New(opts.AgeWeightRatio),
		indices:    indices,
		redundancy: redundancyHandler,
		selector:   selector,
		queue: workqueue.NewTypedRateLimitingQueueWithConfig[clause.ID](
			workqueue.DefaultTypedControllerRateLimiter[clause.ID](),
			workqueue.TypedRateLimitingQueueConfig[clause.ID]{Name: "superpose_unprocessed"},
		),
		pending: make(map[clause.ID]*clause.Clause),
		stats:   newStats(),
	}

	d.generators = []infer.Generator{
		infer.NewSuperposition(store, clauses, ord, indices, redundancyHandler),
		infer.NewResolution(store, clauses, ord, indices, redundancyHandler),
		infer.NewEqualityFactoring(store, clauses, ord),
		infer.NewEqualityResolution(store, clauses),
	}
	if opts.ForwardDemodulation != options.DemodOff {
		fd := infer.NewForwardDemodulation(store, clauses, ord, indices)
		fd.Encompassment = opts.DemodulationRedundancyCheck == options.DemodRedundancyEncompass
		d.forward = append(d.forward, fd)
	}
	if opts.BackwardDemodulation != options.DemodOff {
		d.backward = append(d.backward, infer.NewBackwardDemodulation(store, clauses, ord, indices))
	}

	for _, c := range problem.Clauses {
		d.enqueue(c)
	}
	return d, nil
}

func selectorFor(sel options.LiteralSelector) (clause.Selector, error) {
	switch sel {
	case options.Total, "":
		return clause.SelectTotal, nil
	case options.MaximalOnly:
		return clause.SelectMaximalOnly, nil
	case options.CompleteSelection:
		return clause.SelectComplete, nil
	default:
		return nil, errUnknownSelector{sel}
	}
}

// Run executes the given-clause loop to completion, polling ctx
// between iterations. It never panics: an invariant
// violation is recovered and reported as
// TerminationReason Unknown.
func (d *Driver) Run(ctx context.Context) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			d.log.WithField("panic", r).Error("invariant violation, aborting run")
			result = &Result{Reason: Unknown, Stats: d.stats}
		}
	}()

	if d.opts.SaturationAlgorithm == options.InstGen {
		d.log.Warn("saturation_algorithm InstGen is not implemented by this driver")
		return &Result{Reason: Inapplicable, Stats: d.stats}
	}

	if tl := d.opts.TimeLimit(); tl > 0 {
		d.deadline = time.Now().Add(tl)
	}

	var iterations uint64
	for {
		if ctx.Err() != nil {
			d.log.Info("cancelled")
			return &Result{Reason: ResourceOut, Stats: d.stats}
		}
		if !d.deadline.IsZero() && time.Now().After(d.deadline) {
			d.log.Info("time limit exceeded")
			return &Result{Reason: ResourceOut, Stats: d.stats}
		}
		if d.opts.GivenClauseLimit > 0 && iterations >= d.opts.GivenClauseLimit {
			d.log.Info("given-clause limit exceeded")
			return &Result{Reason: ResourceOut, Stats: d.stats}
		}

		d.drainUnprocessed()

		if d.queue.Len() == 0 && d.passiveC.Len() == 0 {
			d.log.Info("saturated: every container empty")
			return &Result{Reason: Satisfiable, Stats: d.stats}
		}

		given, ok := d.passiveC.PopSelected()
		if !ok {
			continue
		}
		iterations++
		d.stats.GivenClauseIterations++
		metrics.ObserveGivenClauseIteration()
		iterStart := time.Now()

		d.log.WithField("given_clause", given.ID()).Debug("given-clause iteration")

		if given.IsEmpty() {
			d.log.Info("derived the empty clause")
			return &Result{Reason: Refutation, Proof: d.reconstructProof(given), Stats: d.stats}
		}

		// Passive -> Selected marks given as the clause currently
		// under consideration; it only becomes Active once it
		// survives forward simplification and literal selection
		// (clause.go's state machine forbids Passive -> Active
		// directly).
		if err := given.SetState(clause.Selected); err != nil {
			panic(err)
		}

		simplified, subsumed := d.forwardSimplifyFixpoint(given)
		if subsumed {
			d.stats.Subsumed++
			metrics.ObserveSubsumed()
			if err := setStateIfLegal(given, clause.None); err != nil {
				panic(err)
			}
			if err := setStateIfLegal(simplified, clause.None); err != nil {
				panic(err)
			}
			continue
		}
		if simplified != given {
			if err := setStateIfLegal(given, clause.None); err != nil {
				panic(err)
			}
			d.enqueue(simplified)
			d.recordIterationDuration(iterStart)
			continue
		}

		if err := clause.ApplySelection(given, d.selector, d.ord); err != nil {
			panic(err)
		}
		if err := given.SetState(clause.Active); err != nil {
			panic(err)
		}

		for _, bs := range d.backward {
			for _, rw := range bs.BackwardSimplify(given) {
				d.retractActive(rw.Victim)
				d.stats.Simplified[string(rw.Replacement.Inference().Rule)]++
				metrics.ObserveSimplified(string(rw.Replacement.Inference().Rule))
				d.enqueue(rw.Replacement)
			}
		}

		d.indices.RegisterActive(given)
		d.activeSize++
		metrics.SetActiveSize(d.activeSize)

		for _, gen := range d.generators {
			byRule := make(map[clause.Rule]int)
			for _, concl := range gen.Generate(given) {
				d.stats.Generated[string(concl.Inference().Rule)]++
				byRule[concl.Inference().Rule]++
				if concl.Color() == clause.Invalid {
					continue
				}
				d.enqueue(concl)
			}
			for rule, n := range byRule {
				metrics.ObserveGenerated(string(rule), n)
			}
		}
		d.recordIterationDuration(iterStart)
		metrics.SetPassiveSize(d.passiveC.Len())

		if d.opts.SimulationInterval > 0 && iterations%d.opts.SimulationInterval == 0 {
			horizon := passive.EstimateHorizon(d.remaining(), d.avgIterationDuration())
			d.passiveC.SetLimitsFromSimulation(horizon)
		}
	}
}

func setStateIfLegal(c *clause.Clause, to clause.State) error {
	if c.State() == to {
		return nil
	}
	return c.SetState(to)
}

// drainUnprocessed moves every clause currently queued into the
// passive container, forward-simplifying each one against the
// already-active clause set first.
func (d *Driver) drainUnprocessed() {
	for d.queue.Len() > 0 {
		id, quit := d.queue.Get()
		if quit {
			return
		}
		d.drainOne(id)
	}
}

// drainOne processes a single queued clause id, recovering from any
// panic raised while simplifying it and re-queuing with backoff
// rather than losing the clause.
func (d *Driver) drainOne(id clause.ID) {
	defer d.queue.Done(id)
	defer func() {
		if r := recover(); r != nil {
			d.log.WithField("clause", id).WithField("panic", r).Warn("immediate simplification failed, requeuing with backoff")
			d.queue.AddRateLimited(id)
		}
	}()

	c, ok := d.pending[id]
	if !ok {
		d.queue.Forget(id)
		return
	}

	simplified, subsumed := d.forwardSimplifyFixpoint(c)
	delete(d.pending, id)
	if subsumed || simplified.Color() == clause.Invalid {
		if subsumed {
			d.stats.Subsumed++
			metrics.ObserveSubsumed()
		}
		if simplified != c {
			if err := setStateIfLegal(c, clause.None); err != nil {
				panic(err)
			}
		}
		if err := setStateIfLegal(simplified, clause.None); err != nil {
			panic(err)
		}
		d.queue.Forget(id)
		return
	}
	if simplified != c {
		if err := setStateIfLegal(c, clause.None); err != nil {
			panic(err)
		}
	}

	if !d.passiveC.Admit(simplified) {
		// LRS early-abort: the clause would be evicted immediately
		// anyway, so never give it a Passive state.
		if err := setStateIfLegal(simplified, clause.None); err != nil {
			panic(err)
		}
		d.queue.Forget(id)
		return
	}

	if err := setStateIfLegal(simplified, clause.Passive); err != nil {
		panic(err)
	}
	d.passiveC.Insert(simplified)
	d.queue.Forget(id)
}

// enqueue registers a newly derived (or input) clause for the next
// drain cycle.
func (d *Driver) enqueue(c *clause.Clause) {
	d.pending[c.ID()] = c
	d.queue.Add(c.ID())
}

// retractActive removes victim from every index and the conditional-
// redundancy handler, and transitions it to None.
func (d *Driver) retractActive(victim *clause.Clause) {
	d.indices.RemoveActive(victim)
	if d.redundancy != nil {
		d.redundancy.Forget(victim.ID())
	}
	if err := setStateIfLegal(victim, clause.None); err != nil {
		panic(err)
	}
	d.activeSize--
	metrics.SetActiveSize(d.activeSize)
}

// forwardSimplifyFixpoint repeatedly applies every forward simplifier
// to c until none apply or the result is a tautology.
func (d *Driver) forwardSimplifyFixpoint(c *clause.Clause) (*clause.Clause, bool) {
	cur := c
	sig := d.store.Signature()
	for {
		if isTautology(cur, sig) {
			return cur, true
		}
		changed := false
		for _, fs := range d.forward {
			if repl, _, ok := fs.ForwardSimplify(cur); ok {
				d.stats.Simplified[string(repl.Inference().Rule)]++
				metrics.ObserveSimplified(string(repl.Inference().Rule))
				cur = repl
				changed = true
				break
			}
		}
		if !changed {
			return cur, false
		}
	}
}

// isTautology reports whether c contains a positive reflexive
// equality (t≈t) or a literal and its exact complement, either of
// which makes c valid and therefore useless to retain.
func isTautology(c *clause.Clause, sig *term.Signature) bool {
	var positives, negatives []*term.Term
	for _, lit := range c.Literals() {
		if lit.IsEquality(sig) && lit.Polarity() && len(lit.Args()) == 2 && lit.Args()[0] == lit.Args()[1] {
			return true
		}
		if lit.Polarity() {
			for _, n := range negatives {
				if n == lit.Atom() {
					return true
				}
			}
			positives = append(positives, lit.Atom())
		} else {
			for _, p := range positives {
				if p == lit.Atom() {
					return true
				}
			}
			negatives = append(negatives, lit.Atom())
		}
	}
	return false
}

// reconstructProof walks the Inference DAG back from empty, returning
// every ancestor clause exactly once.
func (d *Driver) reconstructProof(empty *clause.Clause) []*clause.Clause {
	seen := make(map[clause.ID]bool)
	var dag []*clause.Clause
	var visit func(c *clause.Clause)
	visit = func(c *clause.Clause) {
		if c == nil || seen[c.ID()] {
			return
		}
		seen[c.ID()] = true
		for _, pid := range c.Inference().Parents {
			if p, ok := d.clauses.Get(pid); ok {
				visit(p)
			}
		}
		dag = append(dag, c)
	}
	visit(empty)
	return dag
}

func (d *Driver) recordIterationDuration(start time.Time) {
	d.totalIterDur += time.Since(start)
	d.iterCount++
}

func (d *Driver) avgIterationDuration() time.Duration {
	if d.iterCount == 0 {
		return time.Millisecond
	}
	return d.totalIterDur / time.Duration(d.iterCount)
}

func (d *Driver) remaining() time.Duration {
	if d.deadline.IsZero() {
		return time.Hour
	}
	return time.Until(d.deadline)
}
