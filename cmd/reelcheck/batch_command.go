package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"reelcheck/internal/evaluate"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var timestampsDir string
	var profile string
	var concurrency int
	var asJSON bool
	var noStore bool

	cmd := &cobra.Command{
		Use:   "batch <video>...",
		Short: "Evaluate multiple videos with bounded concurrency",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if profile == "" {
				profile = cfg.Checks.Profile
			}

			requests := make([]evaluate.Request, 0, len(args))
			for _, video := range args {
				requests = append(requests, evaluate.Request{
					VideoPath:      video,
					TimestampsPath: findTimestamps(timestampsDir, video),
					Profile:        profile,
					Checks:         checksFromConfig(cfg),
				})
			}

			result := ctx.newBatchRunner(cfg, concurrency).EvaluateBatch(cmd.Context(), requests)

			var runID string
			if !noStore {
				store, err := ctx.openStore(cfg)
				if err != nil {
					return err
				}
				if store != nil {
					defer store.Close()
					runID, err = store.SaveBatch(cmd.Context(), result)
					if err != nil {
						return err
					}
				}
			}

			if asJSON {
				if err := writeJSON(cmd, result); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				rows := make([][]string, 0, len(result.Reports))
				for _, report := range result.Reports {
					verdict := "pass"
					if !report.Passed {
						verdict = "FAIL"
					}
					score := ""
					if report.Overall != nil {
						score = formatScore(report.Overall.Score)
					}
					rows = append(rows, []string{
						report.VideoPath,
						verdict,
						score,
						fmt.Sprintf("%d", report.TotalDurationMs),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Video", "Result", "Score", "ms"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
				))
				fmt.Fprintf(out, "%d passed, %d failed in %dms\n",
					result.TotalPassed, result.TotalFailed, result.TotalDurationMs)
				if runID != "" {
					fmt.Fprintf(out, "Run saved as %s\n", runID)
				}
			}

			if result.TotalFailed > 0 {
				return fmt.Errorf("%d of %d videos failed validation",
					result.TotalFailed, len(result.Reports))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&timestampsDir, "timestamps-dir", "", "Directory of per-video timestamps artifacts named <video>.json")
	cmd.Flags().StringVar(&profile, "profile", "", "Threshold profile (strict, default, lenient)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Concurrent evaluations (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw batch result as JSON")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Skip persisting the run")

	return cmd
}

// findTimestamps resolves the sidecar timestamps artifact for a video, if
// any: <dir>/<video-stem>.json.
func findTimestamps(dir, videoPath string) string {
	if dir == "" {
		return ""
	}
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	candidate := filepath.Join(dir, stem+".json")
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}
