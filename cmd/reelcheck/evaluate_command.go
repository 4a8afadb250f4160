package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelcheck/internal/evaluate"
)

func newEvaluateCommand(ctx *commandContext) *cobra.Command {
	var timestampsPath string
	var scriptPath string
	var profile string
	var asJSON bool
	var noStore bool

	cmd := &cobra.Command{
		Use:   "evaluate <video>",
		Short: "Run the validation checks against a video",
		Long: `Evaluate runs the configured quality checks against a single video and
prints a validation report. The command exits non-zero when the report
fails, so it can gate a pipeline directly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if profile == "" {
				profile = cfg.Checks.Profile
			}

			report := ctx.newEvaluator(cfg).EvaluateVideo(cmd.Context(), evaluate.Request{
				VideoPath:      args[0],
				TimestampsPath: timestampsPath,
				ScriptPath:     scriptPath,
				Profile:        profile,
				Checks:         checksFromConfig(cfg),
			})

			if !noStore {
				store, err := ctx.openStore(cfg)
				if err != nil {
					return err
				}
				if store != nil {
					defer store.Close()
					if _, err := store.SaveReport(cmd.Context(), report); err != nil {
						return err
					}
				}
			}

			if asJSON {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				printReport(cmd, report)
			}

			if !report.Passed {
				return fmt.Errorf("validation failed for %s", report.VideoPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&timestampsPath, "timestamps", "", "Timestamps/script JSON artifact path")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Script text path for semantic checks")
	cmd.Flags().StringVar(&profile, "profile", "", "Threshold profile (strict, default, lenient)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw ValidationReport as JSON")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Skip persisting the report")

	return cmd
}

func printReport(cmd *cobra.Command, report evaluate.ValidationReport) {
	out := cmd.OutOrStdout()

	verdict := "PASSED"
	if !report.Passed {
		verdict = "FAILED"
	}
	fmt.Fprintf(out, "%s: %s (%s profile, %dms)\n", verdict, report.VideoPath, report.Thresholds.Profile, report.TotalDurationMs)

	rows := make([][]string, 0, len(report.Checks))
	for _, check := range report.Checks {
		rows = append(rows, []string{
			string(check.CheckID),
			checkStatusText(check),
			check.Summary,
			fmt.Sprintf("%d", check.DurationMs),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Check", "Status", "Summary", "ms"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	))

	if overall := report.Overall; overall != nil {
		fmt.Fprintf(out, "Overall: %s (%s), confidence %s, method %s\n",
			formatScore(overall.Score), displayLabel(overall.Label),
			formatConfidence(overall.Confidence), overall.Method)
	}
}
