package features

import "fmt"

// Metric identifies one named quality signal. The set is closed: every
// metric the engine understands is declared below and carried in the
// metricRanges table.
type Metric string

const (
	// Ratio metrics in [0, 1].
	MetricCaptionOverall     Metric = "captionOverall"
	MetricPacingScore        Metric = "pacingScore"
	MetricDuplicateRatio     Metric = "temporalDuplicateRatio"
	MetricFreezeRatio        Metric = "freezeRatio"
	MetricBlackRatio         Metric = "blackRatio"
	MetricClippingRatio      Metric = "audioClippingRatio"
	MetricFlowWarpError      Metric = "flowWarpError"
	MetricSemanticSimilarity Metric = "semanticSimilarity"

	// 0-100 scale metrics.
	MetricSyncRating      Metric = "syncRating"
	MetricAudioScore      Metric = "audioScore"
	MetricEngagementScore Metric = "engagementScore"
	MetricHookTiming      Metric = "hookTiming"
	MetricScriptScore     Metric = "scriptScore"
	MetricBrisqueMean     Metric = "brisqueMean"

	// Signed dB-like metrics.
	MetricLoudnessLUFS Metric = "audioLoudnessLUFS"
	MetricSNRDB        Metric = "snrDB"

	// MOS metrics in [1, 5].
	MetricDNSMOS Metric = "dnsmosScore"

	// Integer counters, >= 0.
	MetricOverlapCount Metric = "audioOverlapCount"
)

type valueRange struct {
	min, max float64
}

// metricRanges is the exhaustive admissible-value table. A metric missing
// here is unknown to the engine and rejected at the vector boundary.
var metricRanges = map[Metric]valueRange{
	MetricCaptionOverall:     {0, 1},
	MetricPacingScore:        {0, 1},
	MetricDuplicateRatio:     {0, 1},
	MetricFreezeRatio:        {0, 1},
	MetricBlackRatio:         {0, 1},
	MetricClippingRatio:      {0, 1},
	MetricFlowWarpError:      {0, 1},
	MetricSemanticSimilarity: {-1, 1},
	MetricSyncRating:         {0, 100},
	MetricAudioScore:         {0, 100},
	MetricEngagementScore:    {0, 100},
	MetricHookTiming:         {0, 100},
	MetricScriptScore:        {0, 100},
	MetricBrisqueMean:        {0, 150},
	MetricLoudnessLUFS:       {-70, 5},
	MetricSNRDB:              {-20, 120},
	MetricDNSMOS:             {1, 5},
	MetricOverlapCount:       {0, 1000},
}

// AllMetrics returns every known metric in a stable order.
func AllMetrics() []Metric {
	return []Metric{
		MetricCaptionOverall,
		MetricPacingScore,
		MetricDuplicateRatio,
		MetricFreezeRatio,
		MetricBlackRatio,
		MetricClippingRatio,
		MetricFlowWarpError,
		MetricSemanticSimilarity,
		MetricSyncRating,
		MetricAudioScore,
		MetricEngagementScore,
		MetricHookTiming,
		MetricScriptScore,
		MetricBrisqueMean,
		MetricLoudnessLUFS,
		MetricSNRDB,
		MetricDNSMOS,
		MetricOverlapCount,
	}
}

// Known reports whether the metric is part of the closed set.
func Known(metric Metric) bool {
	_, ok := metricRanges[metric]
	return ok
}

// ValidateValue rejects values outside the metric's admissible range.
func ValidateValue(metric Metric, value float64) error {
	r, ok := metricRanges[metric]
	if !ok {
		return fmt.Errorf("unknown metric %q", metric)
	}
	if value < r.min || value > r.max {
		return fmt.Errorf("metric %s value %g outside [%g, %g]", metric, value, r.min, r.max)
	}
	return nil
}
