package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/docsort/docsort/internal/cli"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show the processing-run audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.GetRuns(ctx, limit)
			if err != nil {
				return err
			}
			cli.RenderRuns(os.Stdout, runs)
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "maximum number of runs to show")
	return cmd
}
