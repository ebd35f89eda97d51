package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pinchbench/pinchboard/internal/reporting"
	"github.com/pinchbench/pinchboard/internal/webapi"
)

func newVersionsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List benchmark versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := a.openService()
			if err != nil {
				return err
			}
			defer closeStore()

			resp, err := withSpinner("Loading benchmark versions", func() (*webapi.VersionsResponse, error) {
				return svc.Versions(cmd.Context())
			})
			if err != nil {
				return couldntLoad("benchmark versions", err)
			}

			if err := a.render(cmd, reporting.VersionsTable(resp.Versions), resp); err != nil {
				return err
			}
			if a.tableOutput() && len(resp.Current) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\nCurrent: %s\n", strings.Join(resp.Current, ", ")) //nolint:errcheck
			}
			return nil
		},
	}
}
