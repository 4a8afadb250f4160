package features

import "testing"

func TestAllMetricsCoveredByRangeTable(t *testing.T) {
	all := AllMetrics()
	if len(all) != len(metricRanges) {
		t.Fatalf("AllMetrics returned %d metrics, range table has %d", len(all), len(metricRanges))
	}
	for _, metric := range all {
		if !Known(metric) {
			t.Errorf("metric %s missing from range table", metric)
		}
	}
}

func TestValidateValue(t *testing.T) {
	cases := []struct {
		name    string
		metric  Metric
		value   float64
		wantErr bool
	}{
		{"ratio in range", MetricFreezeRatio, 0.5, false},
		{"ratio at lower bound", MetricFreezeRatio, 0, false},
		{"ratio above bound", MetricFreezeRatio, 1.2, true},
		{"negative similarity allowed", MetricSemanticSimilarity, -0.4, false},
		{"lufs typical", MetricLoudnessLUFS, -14, false},
		{"lufs too quiet", MetricLoudnessLUFS, -80, true},
		{"mos in range", MetricDNSMOS, 3.2, false},
		{"mos below scale", MetricDNSMOS, 0.5, true},
		{"unknown metric", Metric("bogus"), 0.5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateValue(tc.metric, tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("ValidateValue(%s, %g) expected error", tc.metric, tc.value)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("ValidateValue(%s, %g) unexpected error: %v", tc.metric, tc.value, err)
			}
		})
	}
}
