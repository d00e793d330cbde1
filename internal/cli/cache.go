package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wsnlab/kcmc/pkg/cache"
)

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the preprocessing report cache",
	}

	cmd.AddCommand(newCacheInfoCmd())
	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())

	return cmd
}

// newCacheInfoCmd creates the "cache info" subcommand.
func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache directory statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fileCache, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			defer fileCache.Close()

			stats, err := fileCache.Stats()
			if err != nil {
				return err
			}
			printKeyValue("Directory", stats.Dir)
			printKeyValue("Entries", fmt.Sprintf("%d", stats.Entries))
			printKeyValue("Size", fmt.Sprintf("%.1f KiB", float64(stats.Bytes)/1024))
			return nil
		},
	}
}

// newCacheClearCmd creates the "cache clear" subcommand.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached preprocessing reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fileCache, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			defer fileCache.Close()

			stats, err := fileCache.Stats()
			if err != nil {
				return err
			}
			if err := fileCache.Clear(); err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", stats.Entries)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// newCachePathCmd creates the "cache path" subcommand.
func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
