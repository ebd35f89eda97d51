package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pinchbench/pinchboard/internal/api"
	"github.com/pinchbench/pinchboard/internal/reporting"
	"github.com/pinchbench/pinchboard/internal/webapi"
)

func newSubmissionCommand(a *app) *cobra.Command {
	var showNotes bool

	cmd := &cobra.Command{
		Use:   "submission <id>",
		Short: "Show per-task results of one submission",
		Long: `Show per-task results of one submission.

The header gives the model, provider and overall percentage. Use --notes to
print the grader notes of each task below the table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return errors.New("submission id is required")
			}

			svc, closeStore, err := a.openService()
			if err != nil {
				return err
			}
			defer closeStore()

			resp, err := withSpinner("Loading submission", func() (*webapi.SubmissionResponse, error) {
				return svc.SubmissionDetail(cmd.Context(), id)
			})
			if err != nil {
				if errors.Is(err, api.ErrNotFound) {
					return &UpstreamError{Message: fmt.Sprintf("submission %s not found", id)}
				}
				return couldntLoad("submission", err)
			}

			out := cmd.OutOrStdout()
			sub := resp.Submission
			if a.tableOutput() {
				fmt.Fprintf(out, "%s (%s)  %.1f%%  %s  openclaw %s\n\n", //nolint:errcheck
					sub.Model, sub.Provider, resp.Percentage, sub.Timestamp, sub.OpenClawVersion)
			}
			if err := a.render(cmd, reporting.SubmissionTable(sub), resp); err != nil {
				return err
			}
			if !showNotes || !a.tableOutput() {
				return nil
			}
			for _, t := range sub.TaskResults {
				if t.Notes == nil || strings.TrimSpace(*t.Notes) == "" {
					continue
				}
				fmt.Fprintf(out, "\n%s\n%s\n", t.TaskName, strings.TrimSpace(*t.Notes)) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showNotes, "notes", false, "Print task grader notes")

	return cmd
}
