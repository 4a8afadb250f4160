package scoring

import (
	"testing"

	"reelcheck/internal/features"
)

func TestDetectDefectsThresholds(t *testing.T) {
	cases := []struct {
		name   string
		metric features.Metric
		value  float64
		tag    string
		fires  bool
	}{
		{"low sync fires", features.MetricSyncRating, 20, DefectLowSyncRating, true},
		{"high sync clean", features.MetricSyncRating, 90, DefectLowSyncRating, false},
		{"poor audio fires", features.MetricAudioScore, 15, DefectAudioQualityPoor, true},
		{"any overlap fires", features.MetricOverlapCount, 1, DefectAudioOverlap, true},
		{"zero overlap clean", features.MetricOverlapCount, 0, DefectAudioOverlap, false},
		{"poor captions fire", features.MetricCaptionOverall, 0.1, DefectCaptionQualityPoor, true},
		{"poor pacing fires", features.MetricPacingScore, 0.1, DefectPacingPoor, true},
		{"low engagement fires", features.MetricEngagementScore, 10, DefectLowEngagement, true},
		{"weak hook fires", features.MetricHookTiming, 5, DefectWeakHook, true},
		{"duplicates fire", features.MetricDuplicateRatio, 0.7, DefectHighDuplicateFrames, true},
		{"freeze fires", features.MetricFreezeRatio, 0.5, DefectExcessiveFreeze, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tags := DetectDefects(newVector(t, map[features.Metric]float64{tc.metric: tc.value}))
			found := false
			for _, tag := range tags {
				if tag == tc.tag {
					found = true
				}
			}
			if found != tc.fires {
				t.Fatalf("%s=%g: tag %s fired=%v, want %v", tc.metric, tc.value, tc.tag, found, tc.fires)
			}
		})
	}
}

func TestDetectDefectsCoFire(t *testing.T) {
	tags := DetectDefects(newVector(t, map[features.Metric]float64{
		features.MetricSyncRating: 10,
		features.MetricAudioScore: 10,
		features.MetricHookTiming: 5,
	}))
	if len(tags) < 3 {
		t.Fatalf("expected at least 3 defects, got %v", tags)
	}
	seen := map[string]bool{}
	for _, tag := range tags {
		if seen[tag] {
			t.Fatalf("duplicate tag %s", tag)
		}
		seen[tag] = true
	}
}

func TestDetectDefectsMissingMetricNeverFires(t *testing.T) {
	tags := DetectDefects(newVector(t, nil))
	if len(tags) != 0 {
		t.Fatalf("defects fired without evidence: %v", tags)
	}
	if tags == nil {
		t.Fatal("result must be empty, not nil")
	}
}
