package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect stored validation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newReportListCommand(ctx))
	cmd.AddCommand(newReportShowCommand(ctx))
	cmd.AddCommand(newReportHistoryCommand(ctx))
	cmd.AddCommand(newReportPruneCommand(ctx))

	return cmd
}

func newReportListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, runs)
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.CreatedAt.Local().Format(time.RFC3339),
					fmt.Sprintf("%d", run.TotalPassed),
					fmt.Sprintf("%d", run.TotalFailed),
					fmt.Sprintf("%d", run.TotalDurationMs),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Created", "Passed", "Failed", "ms"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit run summaries as JSON")

	return cmd
}

func newReportShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show all reports from a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, result)
			}
			for _, report := range result.Reports {
				printReport(cmd, report)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d passed, %d failed in %dms\n",
				result.TotalPassed, result.TotalFailed, result.TotalDurationMs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the stored run as JSON")

	return cmd
}

func newReportHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history <video>",
		Short: "Show stored reports for a single video, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			reports, err := store.VideoHistory(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, reports)
			}

			rows := make([][]string, 0, len(reports))
			for _, report := range reports {
				verdict := "pass"
				if !report.Passed {
					verdict = "FAIL"
				}
				score := ""
				if report.Overall != nil {
					score = formatScore(report.Overall.Score)
				}
				rows = append(rows, []string{
					report.CreatedAt.Local().Format(time.RFC3339),
					verdict,
					score,
					report.Thresholds.Profile,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Created", "Result", "Score", "Profile"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum reports to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the reports as JSON")

	return cmd
}

func newReportPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s)\n", removed)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Remove runs older than this duration")

	return cmd
}
