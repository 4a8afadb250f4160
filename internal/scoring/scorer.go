package scoring

import (
	"sort"

	"reelcheck/internal/calibration"
	"reelcheck/internal/features"
)

// Scoring methods.
const (
	MethodHeuristic  = "heuristic"
	MethodCalibrated = "calibrated"
)

// Model version strings reported in ScoreResult for drift detection.
const (
	heuristicVersion  = "heuristic-1.0"
	calibratedVersion = "calibrated-1.0"
)

const topFactorCount = 3

// Options selects the evidence and scoring path for one ScoreQuality call.
type Options struct {
	Features features.FeatureVector
	// Heuristic forces the hand-tuned path even when a model artifact is
	// available, giving deterministic scores.
	Heuristic bool
	// Explain requests the top contributing factors in the result.
	Explain bool
	// ModelPath names an optional calibration artifact. Absence is normal.
	ModelPath string
}

// Factor describes one metric's contribution to the overall score.
type Factor struct {
	Feature   string  `json:"feature"`
	Impact    float64 `json:"impact"`
	Direction string  `json:"direction"`
}

// ScoreResult is the scored quality verdict for one feature vector.
type ScoreResult struct {
	Score        float64  `json:"score"`
	Label        Label    `json:"label"`
	Confidence   float64  `json:"confidence"`
	Method       string   `json:"method"`
	ModelVersion string   `json:"modelVersion"`
	TopFactors   []Factor `json:"topFactors,omitempty"`
	Defects      []string `json:"defects"`
}

// ScoreQuality maps a feature vector onto a 0-100 quality score. It never
// fails: an all-missing vector degrades to a metadata-only estimate with
// low confidence.
func ScoreQuality(opts Options) ScoreResult {
	vec := opts.Features
	defects := DetectDefects(vec)

	norms := map[features.Metric]float64{}
	var presentWeight, weightedSum, totalWeight float64
	for _, metric := range features.AllMetrics() {
		entry := weightTable[metric]
		totalWeight += entry.weight
		value, ok := vec.Get(metric)
		if !ok {
			continue
		}
		norm := entry.normalize(value)
		norms[metric] = norm
		presentWeight += entry.weight
		weightedSum += entry.weight * norm
	}

	if len(norms) == 0 {
		score := metadataScore(vec.Metadata)
		return ScoreResult{
			Score:        score,
			Label:        LabelFor(score),
			Confidence:   0.2,
			Method:       MethodHeuristic,
			ModelVersion: heuristicVersion,
			Defects:      defects,
		}
	}

	result := ScoreResult{
		Confidence:   presentWeight / totalWeight,
		Method:       MethodHeuristic,
		ModelVersion: heuristicVersion,
		Defects:      defects,
	}

	if !opts.Heuristic {
		if artifact, ok := calibration.Load(opts.ModelPath); ok {
			if calibrated, ok := artifact.Score(metricVector(norms)); ok {
				result.Score = 100 * calibrated
				result.Method = MethodCalibrated
				result.ModelVersion = calibratedVersion
			}
		}
	}
	if result.Method == MethodHeuristic {
		result.Score = 100 * weightedSum / presentWeight
	}
	result.Label = LabelFor(result.Score)

	if opts.Explain {
		result.TopFactors = topFactors(norms, result.Score/100)
	}
	return result
}

// metricVector lays normalized values out positionally over the full
// closed metric set, substituting the neutral 0.5 for missing evidence.
// The calibrator's weights are indexed against this fixed ordering.
func metricVector(norms map[features.Metric]float64) []float64 {
	all := features.AllMetrics()
	vector := make([]float64, len(all))
	for i, metric := range all {
		if norm, ok := norms[metric]; ok {
			vector[i] = norm
		} else {
			vector[i] = 0.5
		}
	}
	return vector
}

// topFactors ranks present metrics by how far their weighted normalized
// value pulls away from the overall score.
func topFactors(norms map[features.Metric]float64, overall float64) []Factor {
	factors := make([]Factor, 0, len(norms))
	for metric, norm := range norms {
		direction := "positive"
		if norm < overall {
			direction = "negative"
		}
		delta := norm - overall
		if delta < 0 {
			delta = -delta
		}
		factors = append(factors, Factor{
			Feature:   string(metric),
			Impact:    weightTable[metric].weight * delta,
			Direction: direction,
		})
	}
	sort.Slice(factors, func(i, j int) bool {
		if factors[i].Impact != factors[j].Impact {
			return factors[i].Impact > factors[j].Impact
		}
		return factors[i].Feature < factors[j].Feature
	})
	if len(factors) > topFactorCount {
		factors = factors[:topFactorCount]
	}
	return factors
}

// metadataScore estimates quality from video-intrinsic properties alone.
// It is the floor the scorer stands on when no analyzer produced evidence.
func metadataScore(meta features.Metadata) float64 {
	score := 50.0
	if meta.DurationS >= 15 && meta.DurationS <= 90 {
		score += 10
	}
	if meta.Height > meta.Width {
		score += 5
	}
	short := meta.Width
	if meta.Height < short {
		short = meta.Height
	}
	switch {
	case short >= 1080:
		score += 10
	case short >= 720:
		score += 5
	}
	if meta.FPS >= 24 {
		score += 5
	}
	if score < 30 {
		score = 30
	}
	if score > 100 {
		score = 100
	}
	return score
}
