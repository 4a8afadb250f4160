package features

import (
	"time"

	"reelcheck/internal/services"
)

// Version identifies the feature vector schema so downstream consumers can
// detect format drift.
const Version = "1.0"

// Metadata carries video-intrinsic properties. DurationS is mandatory;
// the rest is best-effort probe output.
type Metadata struct {
	DurationS float64 `json:"durationS"`
	Width     int     `json:"width,omitempty"`
	Height    int     `json:"height,omitempty"`
	FPS       float64 `json:"fps,omitempty"`
}

// FeatureVector is the canonical, versioned snapshot of all extracted
// quality metrics for one video.
type FeatureVector struct {
	VideoID       string             `json:"videoId"`
	ExtractedAt   time.Time          `json:"extractedAt"`
	Version       string             `json:"version"`
	RepoMetrics   map[Metric]float64 `json:"repoMetrics"`
	Metadata      Metadata           `json:"metadata"`
	ClipEmbedding []float64          `json:"clipEmbedding,omitempty"`
	TextEmbedding []float64          `json:"textEmbedding,omitempty"`
}

// NewVector constructs a vector with validated metadata and an empty
// metric map. A non-positive duration is rejected, never coerced.
func NewVector(videoID string, meta Metadata) (FeatureVector, error) {
	if meta.DurationS <= 0 {
		return FeatureVector{}, services.Wrap(services.ErrValidation, "features", "new vector", "duration must be positive", nil)
	}
	return FeatureVector{
		VideoID:     videoID,
		ExtractedAt: time.Now().UTC(),
		Version:     Version,
		RepoMetrics: map[Metric]float64{},
		Metadata:    meta,
	}, nil
}

// Set records a metric value after range validation.
func (v *FeatureVector) Set(metric Metric, value float64) error {
	if err := ValidateValue(metric, value); err != nil {
		return services.Wrap(services.ErrValidation, "features", "set metric", err.Error(), nil)
	}
	if v.RepoMetrics == nil {
		v.RepoMetrics = map[Metric]float64{}
	}
	v.RepoMetrics[metric] = value
	return nil
}

// Get returns the metric value and whether it is present. Absence is
// meaningful: it signals missing evidence, not zero.
func (v FeatureVector) Get(metric Metric) (float64, bool) {
	value, ok := v.RepoMetrics[metric]
	return value, ok
}

// MetricCount returns the number of present metrics.
func (v FeatureVector) MetricCount() int {
	return len(v.RepoMetrics)
}
