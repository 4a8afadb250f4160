package scoring

import "reelcheck/internal/features"

// Defect tags name specific observable problems. Multiple tags can fire
// for the same vector; each is tied to exactly one metric threshold.
const (
	DefectLowSyncRating       = "low_sync_rating"
	DefectAudioQualityPoor    = "audio_quality_poor"
	DefectAudioOverlap        = "audio_overlap_detected"
	DefectCaptionQualityPoor  = "caption_quality_poor"
	DefectPacingPoor          = "pacing_poor"
	DefectLowEngagement       = "low_engagement"
	DefectWeakHook            = "weak_hook"
	DefectHighDuplicateFrames = "high_duplicate_frames"
	DefectExcessiveFreeze     = "excessive_freeze"
)

type defectRule struct {
	metric features.Metric
	tag    string
	// fires reports whether the observed value crosses the threshold.
	fires func(float64) bool
}

var defectRules = []defectRule{
	{features.MetricSyncRating, DefectLowSyncRating, func(v float64) bool { return v < 30 }},
	{features.MetricAudioScore, DefectAudioQualityPoor, func(v float64) bool { return v < 20 }},
	{features.MetricOverlapCount, DefectAudioOverlap, func(v float64) bool { return v > 0 }},
	{features.MetricCaptionOverall, DefectCaptionQualityPoor, func(v float64) bool { return v < 0.15 }},
	{features.MetricPacingScore, DefectPacingPoor, func(v float64) bool { return v < 0.15 }},
	{features.MetricEngagementScore, DefectLowEngagement, func(v float64) bool { return v < 15 }},
	{features.MetricHookTiming, DefectWeakHook, func(v float64) bool { return v < 10 }},
	{features.MetricDuplicateRatio, DefectHighDuplicateFrames, func(v float64) bool { return v > 0.6 }},
	{features.MetricFreezeRatio, DefectExcessiveFreeze, func(v float64) bool { return v > 0.4 }},
}

// DetectDefects evaluates every rule against the present metrics. A metric
// with no evidence never fires its rule. The result is empty, never nil.
func DetectDefects(vec features.FeatureVector) []string {
	tags := []string{}
	for _, rule := range defectRules {
		value, ok := vec.Get(rule.metric)
		if !ok {
			continue
		}
		if rule.fires(value) {
			tags = append(tags, rule.tag)
		}
	}
	return tags
}
