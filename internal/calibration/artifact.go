package calibration

import (
	"encoding/json"
	"math"
	"os"
)

// Artifact is a trained logistic weighting produced out-of-band by the
// training pipeline. The engine only ever reads it.
type Artifact struct {
	Weights      []float64 `json:"weights"`
	Intercept    float64   `json:"intercept"`
	Accuracy     float64   `json:"accuracy"`
	TrainingSize int       `json:"trainingSize"`
}

// Load reads an artifact from path. The boolean reports usability; there
// is deliberately no error return because every failure mode selects the
// same fallback.
func Load(path string) (Artifact, bool) {
	if path == "" {
		return Artifact{}, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, false
	}
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return Artifact{}, false
	}
	if !artifact.valid() {
		return Artifact{}, false
	}
	return artifact, true
}

func (a Artifact) valid() bool {
	if len(a.Weights) == 0 {
		return false
	}
	for _, w := range a.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return false
		}
	}
	if math.IsNaN(a.Intercept) || math.IsInf(a.Intercept, 0) {
		return false
	}
	return a.Accuracy >= 0 && a.Accuracy <= 1
}

// Score combines a scalar evidence vector in [0,1] per element through the
// trained weights, returning a probability-like value in [0,1]. Artifacts
// trained with one extra trailing weight expect a neutral bias feature,
// which is appended here. A weight count that matches neither shape makes
// the artifact unusable for this vector.
func (a Artifact) Score(vector []float64) (float64, bool) {
	switch len(a.Weights) {
	case len(vector):
	case len(vector) + 1:
		vector = append(append([]float64(nil), vector...), 0.5)
	default:
		return 0, false
	}
	sum := a.Intercept
	for i, w := range a.Weights {
		sum += w * vector[i]
	}
	return sigmoid(sum), true
}

// Blend computes the hand-tuned weighted mean of the same evidence vector,
// the deterministic fallback when no artifact is usable. Weight and vector
// lengths must match; extra elements are ignored.
func Blend(vector, weights []float64) float64 {
	n := len(vector)
	if len(weights) < n {
		n = len(weights)
	}
	var sum, total float64
	for i := 0; i < n; i++ {
		sum += weights[i] * vector[i]
		total += weights[i]
	}
	if total == 0 {
		return 0.5
	}
	return clamp01(sum / total)
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
