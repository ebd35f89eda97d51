package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pinchbench/pinchboard/internal/api"
	"github.com/pinchbench/pinchboard/internal/reporting"
	"github.com/pinchbench/pinchboard/internal/webapi"
)

func newRunsCommand(a *app) *cobra.Command {
	var (
		limit   int
		offset  int
		version string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List individual benchmark runs",
		Long: `List individual benchmark runs, grouped by model and ordered by score
within each model.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 || offset < 0 {
				return errors.New("--limit and --offset must be non-negative")
			}
			if limit == 0 {
				limit = a.cfg.Defaults.Limit
			}
			if version == "" {
				version = a.cfg.Defaults.Version
			}

			svc, closeStore, err := a.openService()
			if err != nil {
				return err
			}
			defer closeStore()

			resp, err := withSpinner("Loading runs", func() (*webapi.RunsResponse, error) {
				return svc.Runs(cmd.Context(), api.SubmissionsQuery{Version: version, Limit: limit, Offset: offset})
			})
			if err != nil {
				return couldntLoad("runs", err)
			}

			if err := a.render(cmd, reporting.RunsTable(resp.Submissions, time.Now()), resp); err != nil {
				return err
			}
			if !a.tableOutput() {
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nShowing %s of %s runs", reporting.FormatCount(len(resp.Submissions)), reporting.FormatCount(resp.Total)) //nolint:errcheck
			if resp.HasMore {
				fmt.Fprintf(out, " (next page: --offset %d)", resp.Offset+len(resp.Submissions)) //nolint:errcheck
			}
			fmt.Fprintln(out) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of runs (default from config)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of runs to skip")
	cmd.Flags().StringVar(&version, "version", "", "Benchmark version (default from config, else current)")

	return cmd
}
