package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pinchbench/pinchboard/internal/charts"
	"github.com/pinchbench/pinchboard/internal/models"
	"github.com/pinchbench/pinchboard/internal/reporting"
	"github.com/pinchbench/pinchboard/internal/view"
	"github.com/pinchbench/pinchboard/internal/webapi"
)

func newGraphsCommand(a *app) *cobra.Command {
	state := &stateFlags{}
	cmd := &cobra.Command{
		Use:   "graphs",
		Short: "Compute leaderboard chart data",
		Long: `Compute the data behind the leaderboard graphs.

Each subcommand prints a table in the terminal, or the full chart model
(domains, label placement, colors) with --format json.`,
	}

	state.bind(cmd, true, false)

	cmd.AddCommand(newScatterCommand(a, state))
	cmd.AddCommand(newHeatmapCommand(a, state))
	cmd.AddCommand(newDistributionCommand(a, state))
	cmd.AddCommand(newRadarCommand(a, state))

	return cmd
}

func newScatterCommand(a *app, state *stateFlags) *cobra.Command {
	var (
		axis   string
		hidden []string
	)

	cmd := &cobra.Command{
		Use:   "scatter",
		Short: "Score against cost or speed",
		Long: `Plot score against cost or execution time.

Models in the cheap-or-fast, high-scoring quadrant are starred.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.state(*state)
			if err != nil {
				return err
			}
			if axis != string(charts.AxisCost) && axis != string(charts.AxisSpeed) {
				return fmt.Errorf("unsupported axis %q (want cost or speed)", axis)
			}
			hide := make(map[string]bool, len(hidden))
			for _, p := range hidden {
				hide[p] = true
			}

			svc, closeStore, err := a.openService()
			if err != nil {
				return err
			}
			defer closeStore()

			resp, err := withSpinner("Loading leaderboard", func() (*webapi.ScatterResponse, error) {
				return svc.Scatter(cmd.Context(), st, charts.ParseAxis(axis), hide)
			})
			if err != nil {
				return couldntLoad("leaderboard", err)
			}

			if !resp.Sufficient && a.tableOutput() {
				fmt.Fprintln(cmd.OutOrStdout(), resp.EmptyReason) //nolint:errcheck
				return nil
			}
			if err := a.render(cmd, reporting.ScatterTable(resp.Scatter), resp); err != nil {
				return err
			}
			if a.tableOutput() && resp.HiddenNote != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", resp.HiddenNote) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&axis, "axis", string(charts.AxisCost), "X axis: cost or speed")
	cmd.Flags().StringSliceVar(&hidden, "hide", nil, "Providers to hide (repeatable)")

	return cmd
}

func newHeatmapCommand(a *app, state *stateFlags) *cobra.Command {
	var order string

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Per-task scores of every model",
		Long: `Show each model's score on every task of its best submission.

Submissions are fetched in small concurrent batches and cached when the
submission cache is enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.state(*state)
			if err != nil {
				return err
			}
			if order != string(charts.HeatmapByScore) && order != string(charts.HeatmapByName) {
				return fmt.Errorf("unsupported sort %q (want score or name)", order)
			}

			svc, closeStore, err := a.openService()
			if err != nil {
				return err
			}
			defer closeStore()

			h, err := withSpinner("Loading task data", func() (*charts.Heatmap, error) {
				return svc.Heatmap(cmd.Context(), st, charts.ParseHeatmapSort(order))
			})
			if err != nil {
				return couldntLoad("task data", err)
			}

			if !h.Sufficient && a.tableOutput() {
				fmt.Fprintln(cmd.OutOrStdout(), h.EmptyReason) //nolint:errcheck
				return nil
			}
			return a.render(cmd, reporting.HeatmapTable(*h), h)
		},
	}

	cmd.Flags().StringVar(&order, "sort", string(charts.HeatmapByScore), "Row order: score or name")

	return cmd
}

func newDistributionCommand(a *app, state *stateFlags) *cobra.Command {
	var order string

	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Score spread across runs per model",
		Long: `Summarize each model's scores across its individual runs as a box plot
with a bootstrap confidence interval of the mean. Models need at least two
runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.state(*state)
			if err != nil {
				return err
			}
			switch charts.DistributionSort(order) {
			case charts.DistributionByMedian, charts.DistributionByBest, charts.DistributionBySpread:
			default:
				return fmt.Errorf("unsupported sort %q (want median, best or spread)", order)
			}

			svc, closeStore, err := a.openService()
			if err != nil {
				return err
			}
			defer closeStore()

			resp, err := withSpinner("Loading submissions", func() (*webapi.DistributionResponse, error) {
				return svc.Distribution(cmd.Context(), st, charts.ParseDistributionSort(order))
			})
			if err != nil {
				return couldntLoad("submissions", err)
			}

			if !resp.Sufficient && a.tableOutput() {
				fmt.Fprintln(cmd.OutOrStdout(), resp.EmptyReason) //nolint:errcheck
				return nil
			}
			return a.render(cmd, reporting.DistributionTable(resp.Plots), resp)
		},
	}

	cmd.Flags().StringVar(&order, "sort", string(charts.DistributionByMedian), "Order: median, best or spread")

	return cmd
}

// pickRadarModels is a test hook for replacing the interactive model picker.
var pickRadarModels = defaultPickRadarModels

func defaultPickRadarModels(in io.Reader, out io.Writer, entries []models.LeaderboardEntry) ([]string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, nil
	}

	ordered := charts.PickerOrder(entries, "", nil)
	options := make([]huh.Option[string], 0, len(ordered))
	for _, e := range ordered {
		label := fmt.Sprintf("%s (%s) %.1f%%", e.Model, e.Provider, e.Percentage)
		options = append(options, huh.NewOption(label, e.Model))
	}

	var selected []string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Models to compare").
				Description(fmt.Sprintf("Pick up to %d models", charts.MaxRadarModels)).
				Options(options...).
				Limit(charts.MaxRadarModels).
				Filterable(true).
				Value(&selected),
		),
	).WithInput(in).WithOutput(out).Run()
	if err != nil {
		return nil, fmt.Errorf("model picker failed: %w", err)
	}
	return selected, nil
}

func newRadarCommand(a *app, state *stateFlags) *cobra.Command {
	var selected []string

	cmd := &cobra.Command{
		Use:   "radar",
		Short: "Compare up to four models on four axes",
		Long: `Compare models on score, cost efficiency, speed and consistency, each
normalized to 0-100.

Without --model an interactive picker is shown when stdin is a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.state(*state)
			if err != nil {
				return err
			}
			if len(selected) > charts.MaxRadarModels {
				return fmt.Errorf("at most %d models can be compared", charts.MaxRadarModels)
			}

			svc, closeStore, err := a.openService()
			if err != nil {
				return err
			}
			defer closeStore()

			if len(selected) == 0 && a.tableOutput() {
				entries, err := withSpinner("Loading leaderboard", func() ([]models.LeaderboardEntry, error) {
					return svc.Leaderboard(cmd.Context(), st.Version)
				})
				if err != nil {
					return couldntLoad("leaderboard", err)
				}
				selected, err = pickRadarModels(cmd.InOrStdin(), cmd.ErrOrStderr(), view.FilterByProvider(entries, st.Provider))
				if err != nil {
					return err
				}
			}

			resp, err := withSpinner("Loading leaderboard", func() (*webapi.RadarResponse, error) {
				return svc.Radar(cmd.Context(), st, selected)
			})
			if err != nil {
				return couldntLoad("leaderboard", err)
			}

			if len(resp.Selected) == 0 && a.tableOutput() {
				fmt.Fprintf(cmd.OutOrStdout(), "No models selected. Pass up to %d --model flags.\n", charts.MaxRadarModels) //nolint:errcheck
				return nil
			}
			return a.render(cmd, reporting.RadarTable(resp.Series, resp.Selected), resp)
		},
	}

	cmd.Flags().StringArrayVar(&selected, "model", nil, "Model to compare (repeatable, up to 4)")

	return cmd
}
