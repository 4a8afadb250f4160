package main

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reelcheck/internal/config"
	"reelcheck/internal/evaluate"
	"reelcheck/internal/scoring"
)

var titleCaser = cases.Title(language.English)

// displayLabel turns a wire label like "below_average" into "Below Average".
func displayLabel(label scoring.Label) string {
	return titleCaser.String(strings.ReplaceAll(string(label), "_", " "))
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

func formatConfidence(confidence float64) string {
	return fmt.Sprintf("%.0f%%", confidence*100)
}

// checksFromConfig maps the config toggles onto the closed check set.
func checksFromConfig(cfg *config.Config) map[evaluate.CheckID]bool {
	return map[evaluate.CheckID]bool{
		evaluate.CheckValidate:         cfg.Checks.Validate,
		evaluate.CheckRate:             cfg.Checks.Rate,
		evaluate.CheckCaptionQuality:   cfg.Checks.CaptionQuality,
		evaluate.CheckScore:            cfg.Checks.Score,
		evaluate.CheckTemporalQuality:  cfg.Checks.TemporalQuality,
		evaluate.CheckAudioSignal:      cfg.Checks.AudioSignal,
		evaluate.CheckSemanticFidelity: cfg.Checks.SemanticFidelity,
		evaluate.CheckSafety:           cfg.Checks.Safety,
		evaluate.CheckFreeze:           cfg.Checks.Freeze,
		evaluate.CheckDNSMOS:           cfg.Checks.DNSMOS,
		evaluate.CheckFlowConsistency:  cfg.Checks.FlowConsistency,
	}
}

func checkStatusText(check evaluate.CheckResult) string {
	switch {
	case check.Skipped:
		return "skipped"
	case check.Passed:
		return "pass"
	default:
		return "FAIL"
	}
}
