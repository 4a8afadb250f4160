package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelcheck/internal/calibration"
)

func newCalibratorCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrator",
		Short: "Calibration artifact utilities",
	}

	cmd.AddCommand(newCalibratorInspectCommand(ctx))

	return cmd
}

func newCalibratorInspectCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect [path]",
		Short: "Show whether the calibration artifact is usable",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				path = cfg.Paths.CalibratorPath
			}

			out := cmd.OutOrStdout()
			if path == "" {
				fmt.Fprintln(out, "No calibrator configured; scoring uses the hand-tuned weights")
				return nil
			}

			artifact, ok := calibration.Load(path)
			if asJSON {
				return writeJSON(cmd, struct {
					Path     string               `json:"path"`
					Usable   bool                 `json:"usable"`
					Artifact calibration.Artifact `json:"artifact"`
				}{Path: path, Usable: ok, Artifact: artifact})
			}

			fmt.Fprintf(out, "Artifact:   %s\n", path)
			if !ok {
				fmt.Fprintln(out, "Status:     unusable; scoring falls back to the hand-tuned weights")
				return nil
			}
			fmt.Fprintln(out, "Status:     usable")
			fmt.Fprintf(out, "Weights:    %d\n", len(artifact.Weights))
			fmt.Fprintf(out, "Intercept:  %.4f\n", artifact.Intercept)
			fmt.Fprintf(out, "Accuracy:   %.2f over %d samples\n", artifact.Accuracy, artifact.TrainingSize)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the artifact details as JSON")

	return cmd
}
