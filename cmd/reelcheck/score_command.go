package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelcheck/internal/features"
	"reelcheck/internal/scoring"
)

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var timestampsPath string
	var scriptPath string
	var explain bool
	var heuristic bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score <video>",
		Short: "Score a video's quality on the 0-100 scale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			vec, err := ctx.newBuilder(cfg).Build(cmd.Context(), features.BuildRequest{
				VideoPath:      args[0],
				TimestampsPath: timestampsPath,
				ScriptPath:     scriptPath,
			})
			if err != nil {
				return err
			}

			result := scoring.ScoreQuality(scoring.Options{
				Features:  vec,
				Heuristic: heuristic,
				Explain:   explain,
				ModelPath: cfg.ScoringModelPath(),
			})
			if asJSON {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Score:      %s (%s)\n", formatScore(result.Score), displayLabel(result.Label))
			fmt.Fprintf(out, "Confidence: %s\n", formatConfidence(result.Confidence))
			fmt.Fprintf(out, "Method:     %s (%s)\n", result.Method, result.ModelVersion)
			if len(result.Defects) > 0 {
				fmt.Fprintln(out, "Defects:")
				for _, defect := range result.Defects {
					fmt.Fprintf(out, "  - %s\n", defect)
				}
			}
			if len(result.TopFactors) > 0 {
				rows := make([][]string, 0, len(result.TopFactors))
				for _, factor := range result.TopFactors {
					rows = append(rows, []string{
						factor.Feature,
						factor.Direction,
						fmt.Sprintf("%.3f", factor.Impact),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Factor", "Direction", "Impact"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&timestampsPath, "timestamps", "", "Timestamps/script JSON artifact path")
	cmd.Flags().StringVar(&scriptPath, "script", "", "Script text path for semantic metrics")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show the top contributing factors")
	cmd.Flags().BoolVar(&heuristic, "heuristic", false, "Force the hand-tuned path even when a calibrator exists")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw ScoreResult as JSON")

	return cmd
}
