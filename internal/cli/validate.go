package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wsnlab/kcmc/pkg/dinic"
)

// validateOpts holds the command-line flags for the validate command.
type validateOpts struct {
	k        int    // required coverage level
	m        int    // required connectivity level
	inactive string // comma-separated uninstalled sensor indices
}

// newValidateCmd creates the validate command. The instance argument is
// either a file or a serialized literal; --inactive names the sensors the
// candidate solution leaves uninstalled.
func newValidateCmd() *cobra.Command {
	opts := validateOpts{k: 1, m: 1}

	cmd := &cobra.Command{
		Use:   "validate <instance>",
		Short: "Check a candidate solution against (k, m) guarantees",
		Long: `Validate that every POI keeps k coverage and m node-disjoint sink paths
when the listed sensors are uninstalled.

Examples:
  kcmc validate instance.txt -k 2 -m 2
  kcmc validate "KCMC;1 3 1;10 5 5;1;..." --inactive 4,17,23`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], &opts)
		},
	}

	cmd.Flags().IntVarP(&opts.k, "coverage", "k", opts.k, "required coverage level")
	cmd.Flags().IntVarP(&opts.m, "connectivity", "m", opts.m, "required connectivity level")
	cmd.Flags().StringVar(&opts.inactive, "inactive", "", "comma-separated uninstalled sensor indices")

	return cmd
}

// runValidate loads the instance and reports whether the solution holds.
func runValidate(cmd *cobra.Command, arg string, opts *validateOpts) error {
	logger := loggerFromContext(cmd.Context())

	in, err := loadInstance(arg)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded instance %s", in.Key())

	inactive, err := parseIndexSet(opts.inactive, in.NumSensors())
	if err != nil {
		return err
	}

	if err := dinic.Validate(in, opts.k, opts.m, inactive); err != nil {
		printError("Invalid for K%dM%d: %v", opts.k, opts.m, err)
		return fmt.Errorf("solution does not satisfy K%dM%d", opts.k, opts.m)
	}

	printSuccess("Valid for K%dM%d", opts.k, opts.m)
	printDetail("Instance: %s", in.Key())
	printDetail("Installed: %d of %d sensors", in.NumSensors()-inactive.Len(), in.NumSensors())
	return nil
}
