package evaluate

import (
	"time"

	"reelcheck/internal/scoring"
)

// SchemaVersion tags serialized reports so consumers can detect drift.
const SchemaVersion = "1.0"

// CheckResult is the outcome of one named check run against a video.
// Skipped means the check contributed no verdict but still counts against
// confidence as unknown evidence.
type CheckResult struct {
	CheckID    CheckID `json:"checkId"`
	Passed     bool    `json:"passed"`
	Skipped    bool    `json:"skipped"`
	Summary    string  `json:"summary"`
	DurationMs int64   `json:"durationMs"`
}

// Overall is the aggregated score view of a report's check outcomes.
type Overall struct {
	Score              float64       `json:"score"`
	Label              scoring.Label `json:"label"`
	Confidence         float64       `json:"confidence"`
	Method             string        `json:"method"`
	CalibratorAccuracy float64       `json:"calibratorAccuracy,omitempty"`
}

// ValidationReport is the per-video evaluation result.
type ValidationReport struct {
	SchemaVersion   string        `json:"schemaVersion"`
	VideoPath       string        `json:"videoPath"`
	Passed          bool          `json:"passed"`
	Checks          []CheckResult `json:"checks"`
	Thresholds      Thresholds    `json:"thresholds"`
	Overall         *Overall      `json:"overall,omitempty"`
	TotalDurationMs int64         `json:"totalDurationMs"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// FailedReport builds a synthetic report for a video whose evaluation
// could not run at all. The failure is surfaced as a failed validate
// check so downstream consumers see a uniform shape.
func FailedReport(videoPath string, thresholds Thresholds, reason string) ValidationReport {
	return ValidationReport{
		SchemaVersion: SchemaVersion,
		VideoPath:     videoPath,
		Passed:        false,
		Checks: []CheckResult{{
			CheckID: CheckValidate,
			Passed:  false,
			Summary: reason,
		}},
		Thresholds: thresholds,
		CreatedAt:  time.Now().UTC(),
	}
}
