package features

import (
	"encoding/json"
	"errors"
	"testing"

	"reelcheck/internal/services"
)

func TestNewVectorRejectsNonPositiveDuration(t *testing.T) {
	for _, duration := range []float64{0, -3} {
		_, err := NewVector("clip", Metadata{DurationS: duration})
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("duration %g: expected validation error, got %v", duration, err)
		}
	}
}

func TestVectorSetAndGet(t *testing.T) {
	vec, err := NewVector("clip", Metadata{DurationS: 30})
	if err != nil {
		t.Fatalf("NewVector: %v", err)
	}

	if err := vec.Set(MetricSyncRating, 82); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok := vec.Get(MetricSyncRating)
	if !ok || value != 82 {
		t.Fatalf("Get returned (%g, %v), want (82, true)", value, ok)
	}

	if _, ok := vec.Get(MetricFreezeRatio); ok {
		t.Fatal("unset metric reported as present")
	}

	if err := vec.Set(MetricFreezeRatio, 1.5); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("out-of-range Set: expected validation error, got %v", err)
	}
	if _, ok := vec.Get(MetricFreezeRatio); ok {
		t.Fatal("rejected value must not be recorded")
	}
}

func TestVectorJSONRoundTrip(t *testing.T) {
	vec, err := NewVector("clip-42", Metadata{DurationS: 45.5, Width: 1080, Height: 1920, FPS: 30})
	if err != nil {
		t.Fatalf("NewVector: %v", err)
	}
	if err := vec.Set(MetricCaptionOverall, 0.74); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := vec.Set(MetricLoudnessLUFS, -14.2); err != nil {
		t.Fatalf("Set: %v", err)
	}
	vec.ClipEmbedding = []float64{0.1, -0.2, 0.3}

	data, err := json.Marshal(vec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored FeatureVector
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.VideoID != vec.VideoID || restored.Version != Version {
		t.Fatalf("identity fields not preserved: %+v", restored)
	}
	if restored.Metadata != vec.Metadata {
		t.Fatalf("metadata not preserved: got %+v want %+v", restored.Metadata, vec.Metadata)
	}
	if len(restored.RepoMetrics) != 2 {
		t.Fatalf("metric count %d, want 2", len(restored.RepoMetrics))
	}
	if value, _ := restored.Get(MetricLoudnessLUFS); value != -14.2 {
		t.Fatalf("loudness %g, want -14.2", value)
	}
	if len(restored.ClipEmbedding) != 3 {
		t.Fatalf("embedding not preserved: %v", restored.ClipEmbedding)
	}
}
