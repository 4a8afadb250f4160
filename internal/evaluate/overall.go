package evaluate

import (
	"reelcheck/internal/calibration"
	"reelcheck/internal/scoring"
)

// Aggregation methods for the overall score.
const (
	MethodCalibrated = "calibrated"
	MethodHandTuned  = "hand-tuned"
)

// checkScalar maps one check outcome onto the calibration scale. Skipped
// is neutral: absence of evidence, not evidence of failure.
func checkScalar(result CheckResult) float64 {
	switch {
	case result.Skipped:
		return 0.5
	case result.Passed:
		return 1
	default:
		return 0
	}
}

// applyCalibrator folds check outcomes into a single [0,1] score. A usable
// artifact gives the calibrated path with its stored accuracy; otherwise
// the hand-tuned weight table applies. Missing files never error.
func applyCalibrator(checks []CheckResult, calibratorPath string) Overall {
	byID := make(map[CheckID]CheckResult, len(checks))
	for _, check := range checks {
		byID[check.CheckID] = check
	}
	all := AllChecks()
	vector := make([]float64, len(all))
	for i, id := range all {
		if check, ok := byID[id]; ok {
			vector[i] = checkScalar(check)
		} else {
			vector[i] = 0.5
		}
	}

	if artifact, ok := calibration.Load(calibratorPath); ok {
		if score, ok := artifact.Score(vector); ok {
			return Overall{
				Score:              100 * score,
				Method:             MethodCalibrated,
				CalibratorAccuracy: artifact.Accuracy,
			}
		}
	}
	return Overall{
		Score:  100 * calibration.Blend(vector, handWeights()),
		Method: MethodHandTuned,
	}
}

// buildOverall finishes the aggregate with label bins and a confidence
// that grows with the number of active evidence sources.
func buildOverall(checks []CheckResult, calibratorPath string) *Overall {
	overall := applyCalibrator(checks, calibratorPath)
	overall.Label = scoring.LabelFor(overall.Score)

	active := 0
	for _, check := range checks {
		if !check.Skipped {
			active++
		}
	}
	overall.Confidence = float64(active) / float64(len(AllChecks()))
	return &overall
}
