package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelcheck/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration, tool availability, and preflight results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Scripts dir", statusInfo, cfg.Paths.ScriptsDir, colorize))
			fmt.Fprintln(out, renderStatusLine("Report dir", statusInfo, orNone(cfg.Paths.ReportDir), colorize))
			fmt.Fprintln(out, renderStatusLine("Calibrator", statusInfo, orNone(cfg.Paths.CalibratorPath), colorize))
			fmt.Fprintln(out, renderStatusLine("Profile", statusInfo, cfg.Checks.Profile, colorize))
			fmt.Fprintln(out, renderStatusLine("Store reports", statusInfo, yesNo(cfg.Batch.StoreReports), colorize))
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("System Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, status := range preflight.CheckSystemDeps(cfg) {
				kind := statusOK
				detail := status.Detail
				if !status.Available {
					kind = statusError
					if status.Optional {
						kind = statusWarn
					}
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, detail, colorize))
			}
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range preflight.RunAll(cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			return nil
		},
	}
}

func orNone(value string) string {
	if value == "" {
		return "(not set)"
	}
	return value
}
