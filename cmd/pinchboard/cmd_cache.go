package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pinchbench/pinchboard/internal/cache"
)

func newCacheCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the submission cache",
		Long: `Manage the submission cache.

When enabled with cache.enabled in .pinchboard.yaml or PINCHBOARD_CACHE_DIR,
fetched submission details are stored locally so the heatmap and submission
views do not refetch them.`,
	}

	cmd.AddCommand(newCacheClearCommand(a))

	return cmd
}

func newCacheClearCommand(a *app) *cobra.Command {
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the submission cache",
		Long: `Clear all cached submissions.

The next heatmap or submission lookup fetches everything from the API again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cacheDir
			if dir == "" {
				dir = a.cfg.Cache.Dir
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving cache directory: %w", err)
			}

			store, err := cache.Open(cache.Driver(a.cfg.Cache.Driver), absDir)
			if err != nil {
				return fmt.Errorf("opening cache: %w", err)
			}
			defer store.Close() //nolint:errcheck

			if err := store.Clear(); err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared: %s\n", absDir) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Cache directory to clear (default from config)")

	return cmd
}
