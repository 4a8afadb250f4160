package features

import (
	"encoding/json"
	"math"
	"os"
	"sort"

	"github.com/spf13/cast"

	"reelcheck/internal/services"
)

// segment is one narration/scene interval from a timestamps artifact.
type segment struct {
	start, end float64
}

// timestampsArtifact is the decoded auxiliary timestamps/script file.
// Producers are loose about numeric types (strings, ints, floats all
// appear in the wild), so decoding goes through cast.
type timestampsArtifact struct {
	segments    []segment
	scriptScore float64
	hasScript   bool
}

// loadTimestamps reads and validates a timestamps artifact. Malformed JSON
// or unusable segment bounds are rejected at this boundary; the caller
// treats rejection as missing evidence for the derived metrics.
func loadTimestamps(path string) (timestampsArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return timestampsArtifact{}, services.Wrap(services.ErrValidation, "features", "timestamps", "unreadable artifact", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return timestampsArtifact{}, services.Wrap(services.ErrValidation, "features", "timestamps", "malformed JSON", err)
	}

	entries, _ := raw["segments"].([]any)
	if entries == nil {
		entries, _ = raw["scenes"].([]any)
	}

	artifact := timestampsArtifact{}
	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			return timestampsArtifact{}, services.Wrap(services.ErrValidation, "features", "timestamps", "segment entry is not an object", nil)
		}
		start, errStart := cast.ToFloat64E(fields["start"])
		end, errEnd := cast.ToFloat64E(fields["end"])
		if errStart != nil || errEnd != nil {
			return timestampsArtifact{}, services.Wrap(services.ErrValidation, "features", "timestamps", "non-numeric segment bounds", nil)
		}
		if start < 0 || end <= start {
			return timestampsArtifact{}, services.Wrap(services.ErrValidation, "features", "timestamps", "segment bounds out of order", nil)
		}
		artifact.segments = append(artifact.segments, segment{start: start, end: end})
	}

	sort.Slice(artifact.segments, func(i, j int) bool {
		return artifact.segments[i].start < artifact.segments[j].start
	})

	if value, ok := raw["scriptScore"]; ok {
		if score, err := cast.ToFloat64E(value); err == nil && score >= 0 && score <= 100 {
			artifact.scriptScore = score
			artifact.hasScript = true
		}
	}

	return artifact, nil
}

// deriveTimingMetrics computes pacing, hook, and engagement metrics from
// segment timing. With no segments there is no evidence, so nothing is set.
func deriveTimingMetrics(vec *FeatureVector, artifact timestampsArtifact, durationS float64) {
	if artifact.hasScript {
		_ = vec.Set(MetricScriptScore, artifact.scriptScore)
	}
	if len(artifact.segments) == 0 || durationS <= 0 {
		return
	}

	durations := make([]float64, 0, len(artifact.segments))
	var covered float64
	for _, seg := range artifact.segments {
		length := seg.end - seg.start
		durations = append(durations, length)
		covered += length
	}

	// Pacing: short-form holds attention around 4s per cut; score decays
	// as the mean segment length drifts from that ideal.
	mean := covered / float64(len(durations))
	pacing := clamp01(1 - math.Abs(mean-4)/8)
	_ = vec.Set(MetricPacingScore, pacing)

	// Hook: the first cut should land inside the opening seconds.
	hook := 100.0
	if first := artifact.segments[0].end; first > 3 {
		hook = 100 * clamp01(1-(first-3)/12)
	}
	_ = vec.Set(MetricHookTiming, hook)

	// Engagement: cut-length variety keeps viewers watching; dead air
	// between segments loses them.
	variety := clamp01(stddev(durations) / 2)
	var gap float64
	for i := 1; i < len(artifact.segments); i++ {
		if pause := artifact.segments[i].start - artifact.segments[i-1].end; pause > 0 {
			gap += pause
		}
	}
	gapRatio := clamp01(gap / durationS)
	engagement := 100 * clamp01(0.5*pacing+0.3*variety+0.2*(1-gapRatio))
	_ = vec.Set(MetricEngagementScore, engagement)
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)-1))
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
