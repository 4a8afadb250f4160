package preflight

import (
	"reelcheck/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is configured.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Analyzer scripts directory (always checked)
	results = append(results, CheckDirectoryAccess("Analyzer scripts", cfg.Paths.ScriptsDir))

	// Report store directory (when persistence is enabled)
	if cfg.Batch.StoreReports && cfg.Paths.ReportDir != "" {
		results = append(results, CheckDirectoryAccess("Report store", cfg.Paths.ReportDir))
	}

	// Calibrator artifact (optional; absence selects the hand-tuned path)
	if cfg.Paths.CalibratorPath != "" {
		results = append(results, CheckCalibratorArtifact(cfg.Paths.CalibratorPath))
	}

	return results
}
