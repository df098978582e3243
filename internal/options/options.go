// Package options implements the run-configuration record consumed by
// the saturation driver: the saturation algorithm, age/weight ratio,
// literal selector, demodulation modes, and the various theory/
// resource knobs a run can be configured with. It is a plain struct
// populated either programmatically or from cmd/superpose's cobra
// flags, following cmd/catalog/start.go's options-struct-plus-
// defaults pattern rather than a functional-options constructor: the
// teacher uses that shape for a config struct that is mutated by flag
// binding, not built once by a caller composing options.
package options

import (
	"time"

	"github.com/pkg/errors"
)

// SaturationAlgorithm selects the given-clause loop's outer strategy.
type SaturationAlgorithm string

const (
	Otter    SaturationAlgorithm = "otter"
	Discount SaturationAlgorithm = "discount"
	LRS      SaturationAlgorithm = "lrs"
	InstGen  SaturationAlgorithm = "instgen"
)

// LiteralSelector names a clause.Selector strategy by its
// configuration-facing name.
type LiteralSelector string

const (
	Total             LiteralSelector = "total"
	MaximalOnly       LiteralSelector = "maximal_only"
	CompleteSelection LiteralSelector = "complete"
)

// DemodulationMode controls whether forward/backward demodulation
// runs, and whether it is restricted to preordered equations.
type DemodulationMode string

const (
	DemodOff        DemodulationMode = "off"
	DemodAll        DemodulationMode = "all"
	DemodPreordered DemodulationMode = "preordered"
)

// UnificationAbstraction names the unification-with-abstraction mode;
// none of these modes are implemented by internal/subst beyond plain
// Robinson unification, so every value other than Off is accepted but
// has no additional effect: the theory-aware unification variants
// these modes would select are left to an external collaborator.
type UnificationAbstraction string

const (
	AbstractionOff                  UnificationAbstraction = "off"
	AbstractionInterpreted          UnificationAbstraction = "interpreted"
	AbstractionOneSideInterpreted   UnificationAbstraction = "one_side_interpreted"
	AbstractionConstant             UnificationAbstraction = "constant"
	AbstractionAll                  UnificationAbstraction = "all"
	AbstractionGround               UnificationAbstraction = "ground"
)

// ReducibilityCheck names the reducibility-check mode.
type ReducibilityCheck string

const (
	ReducibilityOff              ReducibilityCheck = "off"
	ReducibilityLeftmostInnermost ReducibilityCheck = "leftmost_innermost"
	ReducibilitySmaller           ReducibilityCheck = "smaller"
	ReducibilitySmallerGround     ReducibilityCheck = "smaller_ground"
)

// DemodulationRedundancyCheck names the demodulation-redundancy-check
// mode; DemodRedundancyEncompass selects
// ForwardDemodulation.Encompassment.
type DemodulationRedundancyCheck string

const (
	DemodRedundancyOff        DemodulationRedundancyCheck = "off"
	DemodRedundancyEncompass  DemodulationRedundancyCheck = "encompass"
	DemodRedundancyOn         DemodulationRedundancyCheck = "on"
)

// AgeWeightRatio is the a:w alternation policy: the driver alternates
// between popping Age minimum-age clauses and Weight minimum-weight
// clauses from the passive container.
type AgeWeightRatio struct {
	Age, Weight uint
}

// Options bundles every run-configuration field a solve() call needs.
// Theory and induction feature flags are carried as opaque booleans:
// the inference engines that would consume them are external
// collaborators, so these fields exist only so a host
// embedding this module can record the intent and have it round-trip
// through Options without this package needing to understand it.
type Options struct {
	SaturationAlgorithm SaturationAlgorithm
	AgeWeightRatio      AgeWeightRatio
	TimeLimitDeciseconds uint64

	LiteralSelector LiteralSelector

	ForwardDemodulation  DemodulationMode
	BackwardDemodulation DemodulationMode

	UnificationWithAbstraction UnificationAbstraction
	ReducibilityCheck          ReducibilityCheck
	DemodulationRedundancyCheck DemodulationRedundancyCheck
	ConditionalRedundancyCheck  bool

	TheoryReasoning   bool
	InductionEnabled  bool

	// GivenClauseLimit bounds the number of given-clause iterations
	// the driver performs before reporting ResourceOut, independent
	// of TimeLimitDeciseconds (useful for deterministic tests that
	// want to bound a proof search to a fixed number of iterations).
	GivenClauseLimit uint64

	// SimulationInterval is how many given-clause iterations pass
	// between LRS simulation runs.
	SimulationInterval uint64
}

// Default returns the conservative option set: Discount algorithm,
// 1:1 age/weight alternation, Total literal selection, demodulation
// on for both directions, conditional redundancy checking enabled,
// no time or given-clause limit.
func Default() Options {
	return Options{
		SaturationAlgorithm:         Discount,
		AgeWeightRatio:              AgeWeightRatio{Age: 1, Weight: 1},
		LiteralSelector:             Total,
		ForwardDemodulation:         DemodAll,
		BackwardDemodulation:        DemodAll,
		UnificationWithAbstraction:  AbstractionOff,
		ReducibilityCheck:           ReducibilityOff,
		DemodulationRedundancyCheck: DemodRedundancyEncompass,
		ConditionalRedundancyCheck:  true,
		SimulationInterval:          100,
	}
}

// TimeLimit returns the configured time limit as a time.Duration, or
// 0 if unlimited.
func (o Options) TimeLimit() time.Duration {
	return time.Duration(o.TimeLimitDeciseconds) * 100 * time.Millisecond
}

// Validate rejects option combinations the driver cannot act on.
func (o Options) Validate() error {
	if o.AgeWeightRatio.Age == 0 && o.AgeWeightRatio.Weight == 0 {
		return errors.New("options: age/weight ratio must have at least one nonzero side")
	}
	switch o.SaturationAlgorithm {
	case Otter, Discount, LRS, InstGen:
	default:
		return errors.Errorf("options: unknown saturation algorithm %q", o.SaturationAlgorithm)
	}
	switch o.LiteralSelector {
	case Total, MaximalOnly, CompleteSelection:
	default:
		return errors.Errorf("options: unknown literal selector %q", o.LiteralSelector)
	}
	return nil
}
