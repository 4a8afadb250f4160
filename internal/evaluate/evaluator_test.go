package evaluate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"reelcheck/internal/analyzers"
	"reelcheck/internal/features"
	"reelcheck/internal/media/ffprobe"
)

func writeAnalyzer(t *testing.T, dir, name, payload string) {
	t.Helper()
	body := "echo '" + payload + "'\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
}

func installPassingAnalyzers(t *testing.T, dir string) {
	t.Helper()
	writeAnalyzer(t, dir, "video_quality.py", `{"brisque": {"mean": 30, "min": 20, "max": 40}}`)
	writeAnalyzer(t, dir, "caption_quality.py", `{"overall": 0.8, "coverage": 0.9, "legibility": 0.9}`)
	writeAnalyzer(t, dir, "temporal_quality.py", `{"duplicateFrameRatio": 0.05}`)
	writeAnalyzer(t, dir, "audio_quality.py", `{"loudnessLUFS": -14, "clippingRatio": 0.0, "snrDB": 35}`)
	writeAnalyzer(t, dir, "freeze_detect.py", `{"freezeRatio": 0.02, "blackRatio": 0.01}`)
	writeAnalyzer(t, dir, "sync_rating.py", `{"rating": 90, "overlapCount": 0}`)
	writeAnalyzer(t, dir, "safety_check.py", `{"visualSafety": {"passed": true}, "textSafety": {"passed": true}}`)
	writeAnalyzer(t, dir, "dnsmos_score.py", `{"ovrl_mos": 3.5, "sig_mos": 3.6, "bak_mos": 4.0}`)
	writeAnalyzer(t, dir, "flow_warp_error.py", `{"meanWarpError": 0.1}`)
}

func stubProbe(context.Context, string, string) (ffprobe.Result, error) {
	return ffprobe.Result{
		Format: ffprobe.Format{Duration: "42.0"},
		Streams: []ffprobe.Stream{
			{CodecType: "video", Width: 1080, Height: 1920, AvgFrameRate: "30/1"},
			{CodecType: "audio"},
		},
	}, nil
}

func newTestEvaluator(t *testing.T, scriptsDir, calibratorPath string) *Evaluator {
	t.Helper()
	runner := analyzers.NewRunner(analyzers.Options{
		Python:     "sh",
		ScriptsDir: scriptsDir,
		Timeout:    5 * time.Second,
	})
	builder := features.NewBuilder(features.BuilderOptions{Runner: runner, Probe: stubProbe})
	return NewEvaluator(EvaluatorOptions{
		Runner:         runner,
		Builder:        builder,
		CalibratorPath: calibratorPath,
		Probe:          stubProbe,
	})
}

func TestEvaluateVideoAllChecksPass(t *testing.T) {
	dir := t.TempDir()
	installPassingAnalyzers(t, dir)

	report := newTestEvaluator(t, dir, "").EvaluateVideo(context.Background(), Request{VideoPath: "clip.mp4"})

	if !report.Passed {
		t.Fatalf("report failed: %+v", report.Checks)
	}
	if len(report.Checks) != len(AllChecks()) {
		t.Fatalf("check count %d, want %d", len(report.Checks), len(AllChecks()))
	}
	for i, check := range report.Checks {
		if check.CheckID != AllChecks()[i] {
			t.Fatalf("check order drifted at %d: %s", i, check.CheckID)
		}
	}
	if report.Overall == nil {
		t.Fatal("overall missing")
	}
	if report.Overall.Method != MethodHandTuned {
		t.Fatalf("method %q, want hand-tuned with no artifact", report.Overall.Method)
	}
	if report.Overall.Score < 0 || report.Overall.Score > 100 {
		t.Fatalf("overall score %g outside [0,100]", report.Overall.Score)
	}
}

func TestEvaluateVideoDefaultEnablementSkipsWarningChecks(t *testing.T) {
	dir := t.TempDir()
	installPassingAnalyzers(t, dir)

	report := newTestEvaluator(t, dir, "").EvaluateVideo(context.Background(), Request{VideoPath: "clip.mp4"})

	byID := map[CheckID]CheckResult{}
	for _, check := range report.Checks {
		byID[check.CheckID] = check
	}
	if !byID[CheckDNSMOS].Skipped || !byID[CheckFlowConsistency].Skipped {
		t.Fatal("warning-severity checks must default to skipped")
	}
	if !byID[CheckValidate].Passed {
		t.Fatalf("validate: %+v", byID[CheckValidate])
	}
	// No script means semantic fidelity has nothing to compare against.
	if !byID[CheckSemanticFidelity].Skipped {
		t.Fatalf("semanticFidelity: %+v", byID[CheckSemanticFidelity])
	}
}

func TestEvaluateVideoAnalyzerFailureIsIsolated(t *testing.T) {
	dir := t.TempDir()
	installPassingAnalyzers(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "caption_quality.py"), []byte("exit 7\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	report := newTestEvaluator(t, dir, "").EvaluateVideo(context.Background(), Request{VideoPath: "clip.mp4"})

	if report.Passed {
		t.Fatal("error-severity failure must fail the report")
	}
	var failed, passed int
	for _, check := range report.Checks {
		if check.Skipped {
			continue
		}
		if check.Passed {
			passed++
		} else {
			failed++
		}
	}
	if failed != 1 {
		t.Fatalf("failed checks %d, want 1", failed)
	}
	if passed == 0 {
		t.Fatal("other checks must still run")
	}
}

func TestEvaluateVideoWarningFailureDoesNotFailReport(t *testing.T) {
	dir := t.TempDir()
	installPassingAnalyzers(t, dir)
	writeAnalyzer(t, dir, "dnsmos_score.py", `{"ovrl_mos": 1.2, "sig_mos": 1.2, "bak_mos": 1.2}`)

	checks := map[CheckID]bool{}
	for _, id := range AllChecks() {
		checks[id] = true
	}
	report := newTestEvaluator(t, dir, "").EvaluateVideo(context.Background(), Request{
		VideoPath: "clip.mp4",
		Checks:    checks,
	})

	byID := map[CheckID]CheckResult{}
	for _, check := range report.Checks {
		byID[check.CheckID] = check
	}
	if byID[CheckDNSMOS].Passed || byID[CheckDNSMOS].Skipped {
		t.Fatalf("dnsmos should have failed: %+v", byID[CheckDNSMOS])
	}
	if !report.Passed {
		t.Fatal("warning-severity failure must not fail the report")
	}
}

func TestEvaluateVideoConfidenceGrowsWithActiveChecks(t *testing.T) {
	dir := t.TempDir()
	installPassingAnalyzers(t, dir)
	evaluator := newTestEvaluator(t, dir, "")

	one := evaluator.EvaluateVideo(context.Background(), Request{
		VideoPath: "clip.mp4",
		Checks:    map[CheckID]bool{CheckValidate: true},
	})
	five := evaluator.EvaluateVideo(context.Background(), Request{
		VideoPath: "clip.mp4",
		Checks: map[CheckID]bool{
			CheckValidate:        true,
			CheckRate:            true,
			CheckCaptionQuality:  true,
			CheckTemporalQuality: true,
			CheckAudioSignal:     true,
		},
	})
	if five.Overall.Confidence <= one.Overall.Confidence {
		t.Fatalf("confidence must grow with evidence: one=%g five=%g",
			one.Overall.Confidence, five.Overall.Confidence)
	}
}

func TestEvaluateVideoStrictProfileFailsMarginalVideo(t *testing.T) {
	dir := t.TempDir()
	installPassingAnalyzers(t, dir)
	// Marginal duplicates: fine for default, too high for strict.
	writeAnalyzer(t, dir, "temporal_quality.py", `{"duplicateFrameRatio": 0.4}`)
	evaluator := newTestEvaluator(t, dir, "")
	request := Request{VideoPath: "clip.mp4", Checks: map[CheckID]bool{CheckTemporalQuality: true}}

	request.Profile = ProfileDefault
	if report := evaluator.EvaluateVideo(context.Background(), request); !report.Passed {
		t.Fatal("default profile should accept 0.4 duplicate ratio")
	}
	request.Profile = ProfileStrict
	if report := evaluator.EvaluateVideo(context.Background(), request); report.Passed {
		t.Fatal("strict profile should reject 0.4 duplicate ratio")
	}
}

func TestApplyCalibratorWithArtifact(t *testing.T) {
	weights := make([]float64, len(AllChecks()))
	for i := range weights {
		weights[i] = 0.4
	}
	artifact := map[string]any{"weights": weights, "intercept": -2.0, "accuracy": 0.91, "trainingSize": 300}
	data, err := json.Marshal(artifact)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "calibrator.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	checks := []CheckResult{
		{CheckID: CheckValidate, Passed: true},
		{CheckID: CheckRate, Passed: false},
		{CheckID: CheckCaptionQuality, Skipped: true},
	}

	calibrated := applyCalibrator(checks, path)
	if calibrated.Method != MethodCalibrated {
		t.Fatalf("method %q, want calibrated", calibrated.Method)
	}
	if calibrated.CalibratorAccuracy != 0.91 {
		t.Fatalf("accuracy %g, want 0.91", calibrated.CalibratorAccuracy)
	}

	fallback := applyCalibrator(checks, filepath.Join(t.TempDir(), "missing.json"))
	if fallback.Method != MethodHandTuned {
		t.Fatalf("method %q, want hand-tuned", fallback.Method)
	}
	if fallback.Score < 0 || fallback.Score > 100 {
		t.Fatalf("score %g outside [0,100]", fallback.Score)
	}
}

func TestCheckScalarMapping(t *testing.T) {
	if checkScalar(CheckResult{Passed: true}) != 1 {
		t.Fatal("passed must map to 1")
	}
	if checkScalar(CheckResult{}) != 0 {
		t.Fatal("failed must map to 0")
	}
	if checkScalar(CheckResult{Skipped: true}) != 0.5 {
		t.Fatal("skipped must map to neutral 0.5")
	}
}

func TestValidationReportJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	installPassingAnalyzers(t, dir)
	report := newTestEvaluator(t, dir, "").EvaluateVideo(context.Background(), Request{VideoPath: "clip.mp4"})

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored ValidationReport
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if restored.Passed != report.Passed || len(restored.Checks) != len(report.Checks) {
		t.Fatalf("round trip drifted")
	}
	if restored.Overall == nil || restored.Overall.Score != report.Overall.Score {
		t.Fatal("overall drifted in round trip")
	}
	if restored.Thresholds != report.Thresholds {
		t.Fatal("thresholds drifted in round trip")
	}
}

func TestFailedReportShape(t *testing.T) {
	report := FailedReport("broken.mp4", ThresholdsFor(ProfileDefault), "probe exploded")
	if report.Passed {
		t.Fatal("synthetic report must be failed")
	}
	if len(report.Checks) != 1 || report.Checks[0].CheckID != CheckValidate {
		t.Fatalf("unexpected checks: %+v", report.Checks)
	}
	if report.Checks[0].Summary != "probe exploded" {
		t.Fatalf("summary %q", report.Checks[0].Summary)
	}
}

func TestNewEvaluatorModelPathResolution(t *testing.T) {
	base := EvaluatorOptions{
		Runner: analyzers.NewRunner(analyzers.Options{Python: "sh"}),
		Probe:  stubProbe,
	}

	withBoth := base
	withBoth.CalibratorPath = "/artifacts/calibrator.json"
	withBoth.ModelPath = "/artifacts/scorer.json"
	if e := NewEvaluator(withBoth); e.modelPath != "/artifacts/scorer.json" {
		t.Fatalf("modelPath = %q, want explicit scorer artifact", e.modelPath)
	}

	withCalibratorOnly := base
	withCalibratorOnly.CalibratorPath = "/artifacts/calibrator.json"
	if e := NewEvaluator(withCalibratorOnly); e.modelPath != "/artifacts/calibrator.json" {
		t.Fatalf("modelPath = %q, want calibrator fallback", e.modelPath)
	}
}
