package cli

import (
	"context"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wsnlab/kcmc/pkg/buildinfo"
	"github.com/wsnlab/kcmc/pkg/cache"
	"github.com/wsnlab/kcmc/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "kcmc"

// Execute runs the kcmc CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "kcmc preprocesses k-coverage m-connectivity sensor placements",
		Long:         `kcmc generates, validates, and optimizes wireless sensor network instances under k-coverage and m-connectivity guarantees.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newPreprocessCmd())
	root.AddCommand(newEvolveCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}

// newRunner creates a pipeline runner for CLI use.
func newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	c, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(c, nil, loggerFromContext(ctx)), nil
}

// newCache returns the report cache backend. A missing cache directory
// degrades to the null cache instead of failing the command.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/kcmc/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
