package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"avsync/internal/deps"
)

func newDepsCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that required external tools are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				detail := status.Resolved
				if !status.Available {
					detail = status.Detail
				}
				rows = append(rows, []string{status.Name, yesNo(status.Available), detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderList(
				[]string{"Tool", "Found", "Location"},
				rows,
			))

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("%d required tool(s) missing", len(missing))
			}
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
