package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/superpose/superpose/internal/metrics"
	"github.com/superpose/superpose/internal/options"
	"github.com/superpose/superpose/internal/signals"
	"github.com/superpose/superpose/internal/tptpclause"
	"github.com/superpose/superpose/prover"
)

// solveOptions is this command's flag-bound configuration struct,
// following cmd/catalog/start.go's "options struct populated by
// cmd.Flags().*Var" idiom rather than cobra's PersistentFlags-on-a-
// package-global pattern.
type solveOptions struct {
	inputPath string
	debug     bool

	algorithm       string
	ageRatio        uint
	weightRatio     uint
	timeLimit       time.Duration
	givenClauseCap  uint64
	literalSelector string
	forwardDemod    string
	backwardDemod   string
	metricsAddr     string
}

func newRootCmd() *cobra.Command {
	o := solveOptions{}

	cmd := &cobra.Command{
		Use:          "superpose",
		Short:        "Saturation-based first-order prover",
		SilenceUsage: true,
	}

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "Run the given-clause saturation loop over a clause-line problem file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			if o.debug {
				logger.SetLevel(logrus.DebugLevel)
			}
			return o.run(logger)
		},
	}

	solveCmd.Flags().StringVar(&o.inputPath, "input", "", "path to a clause-line problem file (- for stdin)")
	solveCmd.Flags().BoolVar(&o.debug, "debug", false, "use debug log level")
	solveCmd.Flags().StringVar(&o.algorithm, "saturation-algorithm", string(options.Discount), "saturation_algorithm: otter|discount|lrs|instgen")
	solveCmd.Flags().UintVar(&o.ageRatio, "age-ratio", 1, "age/weight ratio: age share")
	solveCmd.Flags().UintVar(&o.weightRatio, "weight-ratio", 1, "age/weight ratio: weight share")
	solveCmd.Flags().DurationVar(&o.timeLimit, "time-limit", 0, "wall-clock time limit, 0 for unlimited")
	solveCmd.Flags().Uint64Var(&o.givenClauseCap, "given-clause-limit", 0, "maximum given-clause iterations, 0 for unlimited")
	solveCmd.Flags().StringVar(&o.literalSelector, "literal-selector", string(options.Total), "literal_selector: total|maximal_only|complete")
	solveCmd.Flags().StringVar(&o.forwardDemod, "forward-demodulation", string(options.DemodAll), "forward_demodulation: off|all|preordered")
	solveCmd.Flags().StringVar(&o.backwardDemod, "backward-demodulation", string(options.DemodAll), "backward_demodulation: off|all|preordered")
	solveCmd.Flags().StringVar(&o.metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090) for the run's duration")

	cmd.AddCommand(solveCmd)
	return cmd
}

func (o *solveOptions) run(log logrus.FieldLogger) error {
	var r *os.File
	if o.inputPath == "" || o.inputPath == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(o.inputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	opts := options.Default()
	opts.SaturationAlgorithm = options.SaturationAlgorithm(o.algorithm)
	opts.AgeWeightRatio = options.AgeWeightRatio{Age: o.ageRatio, Weight: o.weightRatio}
	opts.TimeLimitDeciseconds = uint64(o.timeLimit / (100 * time.Millisecond))
	opts.GivenClauseLimit = o.givenClauseCap
	opts.LiteralSelector = options.LiteralSelector(o.literalSelector)
	opts.ForwardDemodulation = options.DemodulationMode(o.forwardDemod)
	opts.BackwardDemodulation = options.DemodulationMode(o.backwardDemod)

	env := prover.New(opts, log)

	problem, err := tptpclause.LoadProblem(r, env.Store, env.Clauses)
	if err != nil {
		return err
	}

	if o.metricsAddr != "" {
		metrics.Register()
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: o.metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
		defer srv.Close()
	}

	ctx, cancel := context.WithCancel(signals.Context())
	defer cancel()

	res, err := env.Solve(ctx, problem)
	if err != nil {
		return err
	}

	fmt.Printf("termination_reason: %s\n", res.Reason)
	fmt.Printf("given_clause_iterations: %d\n", res.Stats.GivenClauseIterations)
	fmt.Printf("subsumed: %d\n", res.Stats.Subsumed)
	for rule, n := range res.Stats.Generated {
		fmt.Printf("generated[%s]: %d\n", rule, n)
	}
	for rule, n := range res.Stats.Simplified {
		fmt.Printf("simplified[%s]: %d\n", rule, n)
	}
	if res.Reason == prover.Refutation {
		fmt.Printf("proof_clauses: %d\n", len(res.Proof))
		for _, c := range res.Proof {
			fmt.Printf("  clause %d: rule=%s parents=%v\n", c.ID(), c.Inference().Rule, c.Inference().Parents)
		}
	}
	return nil
}
