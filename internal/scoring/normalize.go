package scoring

import (
	"math"

	"reelcheck/internal/features"
)

// metricWeight pairs a blend weight with the normalization that maps the
// raw metric value onto a 0-1 goodness scale. The table is exhaustive over
// the closed metric set; a metric without an entry contributes nothing.
type metricWeight struct {
	weight    float64
	normalize func(float64) float64
}

var weightTable = map[features.Metric]metricWeight{
	features.MetricSyncRating:      {0.15, scale100},
	features.MetricCaptionOverall:  {0.14, identity01},
	features.MetricAudioScore:      {0.10, scale100},
	features.MetricPacingScore:     {0.10, identity01},
	features.MetricEngagementScore: {0.10, scale100},
	features.MetricDuplicateRatio:  {0.08, invert01},
	features.MetricFreezeRatio:     {0.07, invert01},
	features.MetricScriptScore:     {0.05, scale100},
	features.MetricHookTiming:      {0.05, scale100},
	features.MetricBlackRatio:      {0.05, invert01},
	features.MetricClippingRatio:   {0.05, invert01},
	features.MetricLoudnessLUFS:    {0.04, normalizeLoudness},
	features.MetricOverlapCount:    {0.02, normalizeOverlap},

	features.MetricSemanticSimilarity: {0.06, normalizeSimilarity},
	features.MetricBrisqueMean:        {0.06, normalizeBrisque},
	features.MetricDNSMOS:             {0.04, normalizeMOS},
	features.MetricSNRDB:              {0.03, normalizeSNR},
	features.MetricFlowWarpError:      {0.03, invert01},
}

func identity01(v float64) float64 { return clamp01(v) }

func invert01(v float64) float64 { return clamp01(1 - v) }

func scale100(v float64) float64 { return clamp01(v / 100) }

// normalizeLoudness scores distance from the -14 LUFS streaming delivery
// target. -14 is perfect; -28 or 0 both bottom out.
func normalizeLoudness(lufs float64) float64 {
	return math.Max(0, 1-math.Abs(lufs+14)/14)
}

// normalizeOverlap treats any caption/audio overlap as damage, with five
// or more overlaps scoring zero.
func normalizeOverlap(count float64) float64 {
	return math.Max(0, 1-count/5)
}

// normalizeSimilarity maps CLIP cosine similarity onto goodness. Raw CLIP
// scores for matching content cluster well below 1, so 0.35 already counts
// as a full match.
func normalizeSimilarity(sim float64) float64 {
	if sim <= 0 {
		return 0
	}
	return clamp01(sim / 0.35)
}

// normalizeBrisque inverts the no-reference distortion scale, where low
// BRISQUE means clean frames.
func normalizeBrisque(brisque float64) float64 {
	return clamp01(1 - brisque/100)
}

func normalizeMOS(mos float64) float64 {
	return clamp01((mos - 1) / 4)
}

// normalizeSNR saturates at 40 dB; beyond that more headroom buys nothing.
func normalizeSNR(snr float64) float64 {
	return clamp01((snr + 20) / 60)
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
