package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsort/docsort/internal/cli"
	"github.com/docsort/docsort/internal/common"
)

func overridesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overrides",
		Short: "Manage standing review overrides",
		Long: `Overrides pin documents to a chosen schedule by content digest. An
override applies to every future run and to every copy of the same
content, and survives until removed.`,
	}

	cmd.AddCommand(overridesListCmd())
	cmd.AddCommand(overridesSetCmd())
	cmd.AddCommand(overridesRemoveCmd())

	return cmd
}

func overridesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List standing overrides",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			overrides, err := store.GetOverrides(ctx)
			if err != nil {
				return err
			}
			cli.RenderOverrides(os.Stdout, overrides)
			return nil
		},
	}
}

func overridesSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <digest> <category>",
		Short: "Pin a content digest to a schedule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			digest, category := args[0], args[1]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cfg, err := store.GetScheduleConfig(ctx)
			if err != nil {
				return err
			}
			if !cfg.HasCategory(category) {
				return common.NewUserError(
					fmt.Sprintf("unknown schedule %q; run 'docsort rules show' to list them", category),
					common.ErrInvalidConfig)
			}

			if err := store.SetOverride(ctx, digest, category); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Override set: %s → %s", shortDigest(digest), category)))
			return nil
		},
	}
}

func overridesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <digest>",
		Short: "Remove a standing override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			digest := args[0]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.RemoveOverride(ctx, digest); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(
						fmt.Sprintf("no override exists for digest %s", shortDigest(digest)), err)
				}
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Override removed for %s", shortDigest(digest))))
			return nil
		},
	}
}

func shortDigest(digest string) string {
	if len(digest) > 16 {
		return digest[:16] + "…"
	}
	return digest
}
