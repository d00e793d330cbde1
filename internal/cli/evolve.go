package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wsnlab/kcmc/pkg/dinic"
	"github.com/wsnlab/kcmc/pkg/genetic"
	"github.com/wsnlab/kcmc/pkg/instance"
	"github.com/wsnlab/kcmc/pkg/observability"
)

// evolveOpts holds the command-line flags for the evolve command.
type evolveOpts struct {
	k           int    // required coverage level
	m           int    // required connectivity level
	config      string // TOML config file path
	generations int    // override for the configured generation count
	population  int    // override for the configured population size
	seed        int64  // RNG seed (0 draws from the clock)
	watch       bool   // live progress TUI
	output      string
}

// newEvolveCmd creates the evolve command. It runs the genetic algorithm
// over an instance, shrinking the installed sensor set while keeping the
// (k, m) guarantees, and prints the best installation bitmap.
func newEvolveCmd() *cobra.Command {
	opts := evolveOpts{k: 1, m: 1}

	cmd := &cobra.Command{
		Use:   "evolve <instance>",
		Short: "Shrink a solution with the genetic algorithm",
		Long: `Evolve an installation bitmap that keeps the (k, m) guarantees with as
few sensors as possible.

The loop starts from the full installation, so a satisfiable instance
always ends with a valid solution. Settings come from an optional TOML
config file; flags override individual values.

Examples:
  kcmc evolve instance.txt -k 2 -m 2
  kcmc evolve instance.txt -k 1 -m 1 --config evolve.toml --watch
  kcmc evolve instance.txt --generations 2000 --seed 7 -o best.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvolve(cmd, args[0], &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.k, "coverage", "k", opts.k, "required coverage level")
	cmd.Flags().IntVarP(&opts.m, "connectivity", "m", opts.m, "required connectivity level")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML config file")
	cmd.Flags().IntVar(&opts.generations, "generations", 0, "override the configured generation count")
	cmd.Flags().IntVar(&opts.population, "population", 0, "override the configured population size")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "RNG seed (0 draws from the clock)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "show live progress")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "bitmap output file (stdout if empty)")

	return cmd
}

// runEvolve loads the instance and configuration, runs the loop, and prints
// the resulting solution.
func runEvolve(cmd *cobra.Command, arg string, opts *evolveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	in, err := loadInstance(arg)
	if err != nil {
		return err
	}

	cfg := genetic.DefaultConfig()
	if opts.config != "" {
		if cfg, err = genetic.LoadConfig(opts.config); err != nil {
			return err
		}
	}
	if opts.generations > 0 {
		cfg.Generations = opts.generations
	}
	if opts.population > 0 {
		cfg.PopulationSize = opts.population
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Infof("Evolving %s for K%dM%d (%d generations, population %d)",
		in.Key(), opts.k, opts.m, cfg.Generations, cfg.PopulationSize)
	observability.Engine().OnEvolveStart(ctx, in.Key(), opts.k, opts.m)
	start := time.Now()

	var result *genetic.Result
	if opts.watch {
		result, err = evolveWatched(ctx, in, opts, cfg, rng)
	} else {
		prog := newProgress(logger)
		result, err = genetic.Evolve(ctx, in, opts.k, opts.m, cfg, rng, func(g genetic.Generation) {
			observability.Engine().OnGeneration(ctx, in.Key(), g.Number, g.NumUsed)
			logger.Infof("Generation %d: %d sensors installed (fitness %.4f)",
				g.Number, g.NumUsed, g.Fitness)
		})
		if err == nil {
			prog.done(fmt.Sprintf("Evolved %d generations", result.Generations))
		}
	}
	numUsed := 0
	if result != nil {
		numUsed = result.NumUsed
	}
	observability.Engine().OnEvolveComplete(ctx, in.Key(), numUsed, time.Since(start), err)
	if err != nil {
		// A cancelled run still carries its best-so-far solution.
		if result == nil || !isCancelled(err) {
			return err
		}
		printWarning("Interrupted after %d generations, best solution so far:", result.Generations)
	}

	if dinic.IsValid(in, opts.k, opts.m, result.Unused) {
		printSuccess("Best solution installs %d of %d sensors", result.NumUsed, in.NumSensors())
	} else {
		printWarning("No valid solution found, best installs %d sensors", result.NumUsed)
	}
	printDetail("Instance: %s", in.Key())
	printDetail("Fitness: %.4f after %d generations (%s)",
		result.Fitness, result.Generations, result.Elapsed.Round(time.Millisecond))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := fmt.Fprintln(out, result.Best.String()); err != nil {
		return err
	}
	if opts.output != "" {
		logger.Infof("Wrote bitmap to %s", opts.output)
	}
	return nil
}

// isCancelled reports whether err stems from context cancellation.
func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// evolveWatched runs the loop under the live progress TUI. The loop runs in
// a goroutine and feeds generation reports into the bubbletea program; q or
// ctrl+c cancels the loop and keeps the best solution found so far.
func evolveWatched(ctx context.Context, in *instance.Instance, opts *evolveOpts, cfg genetic.Config, rng *rand.Rand) (*genetic.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newEvolveModel(in.Key(), opts.k, opts.m, cfg.Generations, cancel))
	go func() {
		result, err := genetic.Evolve(runCtx, in, opts.k, opts.m, cfg, rng, func(g genetic.Generation) {
			observability.Engine().OnGeneration(runCtx, in.Key(), g.Number, g.NumUsed)
			p.Send(generationMsg(g))
		})
		p.Send(evolveDoneMsg{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	model := final.(evolveModel)
	return model.result, model.err
}
