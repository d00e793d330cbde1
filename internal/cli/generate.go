package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wsnlab/kcmc/pkg/instance"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	pois          int   // number of points of interest
	sensors       int   // number of candidate sensor spots
	sinks         int   // number of sinks
	area          int   // side of the square placement area
	coverage      int   // coverage radius
	communication int   // communication radius
	seed          int64 // seed of the first instance
	count         int   // how many instances to emit (consecutive seeds)
	output        string
}

// newGenerateCmd creates the generate command. It draws random placements
// from the given geometry and prints one serialized instance per line;
// --count emits a batch with consecutive seeds.
func newGenerateCmd() *cobra.Command {
	opts := generateOpts{
		pois:          10,
		sensors:       100,
		sinks:         1,
		area:          1000,
		coverage:      100,
		communication: 125,
		count:         1,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random serialized instances",
		Long: `Generate random KCMC instances from geometry parameters.

Placements are drawn uniformly over a square area with the given seed, so
the same parameters always reproduce the same instance.

Examples:
  kcmc generate --pois 30 --sensors 300 --seed 7
  kcmc generate --count 100 -o instances.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.pois, "pois", "p", opts.pois, "number of points of interest")
	cmd.Flags().IntVarP(&opts.sensors, "sensors", "s", opts.sensors, "number of candidate sensor positions")
	cmd.Flags().IntVar(&opts.sinks, "sinks", opts.sinks, "number of sinks")
	cmd.Flags().IntVar(&opts.area, "area", opts.area, "side of the square placement area")
	cmd.Flags().IntVar(&opts.coverage, "coverage", opts.coverage, "coverage radius")
	cmd.Flags().IntVar(&opts.communication, "communication", opts.communication, "communication radius")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed of the first instance")
	cmd.Flags().IntVar(&opts.count, "count", opts.count, "number of instances (consecutive seeds)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runGenerate produces opts.count instances starting at opts.seed and writes
// their serializations to the output, one per line.
func runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	logger := loggerFromContext(cmd.Context())

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	prog := newProgress(logger)
	for i := 0; i < opts.count; i++ {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		in, err := instance.Generate(instance.Params{
			NumPOIs:             opts.pois,
			NumSensors:          opts.sensors,
			NumSinks:            opts.sinks,
			AreaSide:            opts.area,
			CoverageRadius:      opts.coverage,
			CommunicationRadius: opts.communication,
			Seed:                opts.seed + int64(i),
		})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, in.Serialize()); err != nil {
			return err
		}
		logger.Debugf("Generated instance %s", in.Key())
	}
	prog.done(fmt.Sprintf("Generated %d instances", opts.count))

	if opts.output != "" {
		logger.Infof("Wrote instances to %s", opts.output)
	}
	return nil
}
