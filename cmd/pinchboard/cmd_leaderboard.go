package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pinchbench/pinchboard/internal/reporting"
	"github.com/pinchbench/pinchboard/internal/view"
	"github.com/pinchbench/pinchboard/internal/webapi"
)

type leaderboardOptions struct {
	state   stateFlags
	sortBy  string
	asc     bool
	showLow bool
}

func newLeaderboardCommand(a *app) *cobra.Command {
	opts := &leaderboardOptions{}
	cmd := &cobra.Command{
		Use:     "leaderboard",
		Aliases: []string{"lb"},
		Short:   "Show the ranked model leaderboard",
		Long: `Show the ranked model leaderboard.

Models are ranked by best score with ties sharing a rank. The success view
orders by score, the speed view by execution time and the cost view by cost.
Models scoring below 40% are hidden in the success view unless --all is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderboard(cmd, a, opts)
		},
	}

	opts.state.bind(cmd, false, true)
	cmd.Flags().StringVar(&opts.sortBy, "sort", "", "Re-sort the success view by score or date")
	cmd.Flags().BoolVar(&opts.asc, "asc", false, "Sort ascending with --sort")
	cmd.Flags().BoolVar(&opts.showLow, "all", false, "Include models below the low-score cutoff")

	return cmd
}

func runLeaderboard(cmd *cobra.Command, a *app, opts *leaderboardOptions) error {
	st, err := a.state(opts.state)
	if err != nil {
		return err
	}
	if opts.sortBy != "" && opts.sortBy != "score" && opts.sortBy != "date" {
		return fmt.Errorf("unsupported sort %q (want score or date)", opts.sortBy)
	}

	svc, closeStore, err := a.openService()
	if err != nil {
		return err
	}
	defer closeStore()

	resp, err := withSpinner("Loading leaderboard", func() (*webapi.LeaderboardResponse, error) {
		return svc.View(cmd.Context(), st)
	})
	if err != nil {
		return couldntLoad("leaderboard", err)
	}

	entries := resp.Entries
	hidden := 0
	if st.View == view.ModeSuccess {
		if opts.sortBy != "" {
			entries = view.SortTable(entries, view.TableSort{ByDate: opts.sortBy == "date", Asc: opts.asc})
		}
		if !opts.showLow {
			visible, low := view.SplitLowScores(entries, view.LowScoreCutoff)
			entries, hidden = visible, len(low)
		}
	}
	resp.Entries = entries

	if err := a.render(cmd, reporting.LeaderboardTable(entries, st.View, st.Score), resp); err != nil {
		return err
	}
	if !a.tableOutput() {
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s models, %s runs", reporting.FormatCount(len(entries)), reporting.FormatCount(resp.TotalRuns)) //nolint:errcheck
	if resp.LastUpdated != nil {
		fmt.Fprintf(out, ", last updated %s", resp.LastUpdated.Format("2006-01-02 15:04 MST")) //nolint:errcheck
	}
	fmt.Fprintln(out) //nolint:errcheck
	if hidden > 0 {
		fmt.Fprintf(out, "%s models below %d%% hidden (use --all to show)\n", reporting.FormatCount(hidden), view.LowScoreCutoff) //nolint:errcheck
	}
	return nil
}
