package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docsort/docsort/internal/cli"
	"github.com/docsort/docsort/internal/model"
	"github.com/docsort/docsort/internal/schedule"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage the schedule rule set",
		Long: `Rules manages the editable classification rule set: the schedule
definitions with their weighted keywords, and the filename rules that
short-circuit scoring.`,
	}

	cmd.AddCommand(rulesShowCmd())
	cmd.AddCommand(rulesExportCmd())
	cmd.AddCommand(rulesImportCmd())
	cmd.AddCommand(rulesValidateCmd())
	cmd.AddCommand(rulesResetCmd())

	return cmd
}

func rulesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active rule set summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cfg, err := store.GetScheduleConfig(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Schedules"))
			for _, cat := range cfg.Categories {
				fmt.Printf("  %s  %s (%d keywords, %d small terms)\n",
					cat.ID, cli.StyleSubtle(cat.Label), len(cat.Keywords), len(cat.SmallTerms))
			}
			fmt.Println(cli.FormatTitle("Filename rules"))
			for _, rule := range cfg.FilenameRules {
				fmt.Printf("  %-30s → %s\n", rule.Pattern, rule.Category)
			}
			return nil
		},
	}
}

func rulesExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active rule set as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			outPath, _ := cmd.Flags().GetString("out")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			cfg, err := store.GetScheduleConfig(ctx)
			if err != nil {
				return err
			}

			data, err := schedule.MarshalYAML(cfg)
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(outPath, data, 0o600); err != nil {
				return fmt.Errorf("failed to write rules file: %w", err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Rules exported to %s", outPath)))
			return nil
		},
	}
	cmd.Flags().String("out", "", "write to this file instead of stdout")
	return cmd
}

func rulesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <rules.yaml>",
		Short: "Replace the active rule set from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, problems, err := loadRulesFile(args[0])
			if err != nil {
				return err
			}
			if len(problems) > 0 {
				printProblems(problems)
				return fmt.Errorf("rules file has %d problem(s)", len(problems))
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveScheduleConfig(ctx, cfg); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Imported %d schedules and %d filename rules",
				len(cfg.Categories), len(cfg.FilenameRules))))
			return nil
		},
	}
}

func rulesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <rules.yaml>",
		Short: "Check a rules file without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, problems, err := loadRulesFile(args[0])
			if err != nil {
				return err
			}
			if len(problems) > 0 {
				printProblems(problems)
				return fmt.Errorf("rules file has %d problem(s)", len(problems))
			}
			fmt.Println(cli.FormatSuccess("Rules file is valid"))
			return nil
		},
	}
}

func rulesResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in default rule set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ResetScheduleConfig(ctx); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Rule set reset to defaults"))
			return nil
		},
	}
}

func loadRulesFile(path string) (cfg model.ScheduleConfig, problems []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return schedule.ParseYAML(data)
}

func printProblems(problems []string) {
	for _, p := range problems {
		fmt.Println(cli.FormatError(p))
	}
}
