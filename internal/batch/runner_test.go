package batch

import (
	"context"
	"encoding/json"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"reelcheck/internal/evaluate"
)

// fakeEvaluator scripts per-video outcomes by path prefix.
type fakeEvaluator struct {
	calls atomic.Int32
	delay time.Duration
}

func (f *fakeEvaluator) EvaluateVideo(_ context.Context, req evaluate.Request) evaluate.ValidationReport {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if strings.HasPrefix(req.VideoPath, "panic") {
		panic("analyzer exploded")
	}
	passed := !strings.HasPrefix(req.VideoPath, "bad")
	return evaluate.ValidationReport{
		SchemaVersion: evaluate.SchemaVersion,
		VideoPath:     req.VideoPath,
		Passed:        passed,
		Checks: []evaluate.CheckResult{{
			CheckID: evaluate.CheckValidate,
			Passed:  passed,
		}},
		Thresholds: evaluate.ThresholdsFor(req.Profile),
		CreatedAt:  time.Now().UTC(),
	}
}

func requests(paths ...string) []evaluate.Request {
	reqs := make([]evaluate.Request, len(paths))
	for i, path := range paths {
		reqs[i] = evaluate.Request{VideoPath: path}
	}
	return reqs
}

func TestEvaluateBatchEmpty(t *testing.T) {
	result := NewRunner(Options{Evaluator: &fakeEvaluator{}}).EvaluateBatch(context.Background(), nil)
	if result.TotalPassed != 0 || result.TotalFailed != 0 || len(result.Reports) != 0 {
		t.Fatalf("empty batch produced %+v", result)
	}
	if result.SchemaVersion != SchemaVersion {
		t.Fatalf("schema version %q", result.SchemaVersion)
	}
}

func TestEvaluateBatchPreservesOrderAndCounts(t *testing.T) {
	paths := []string{"a.mp4", "bad-b.mp4", "c.mp4", "bad-d.mp4", "e.mp4"}
	result := NewRunner(Options{Evaluator: &fakeEvaluator{}, Concurrency: 3}).
		EvaluateBatch(context.Background(), requests(paths...))

	if len(result.Reports) != len(paths) {
		t.Fatalf("report count %d, want %d", len(result.Reports), len(paths))
	}
	for i, report := range result.Reports {
		if report.VideoPath != paths[i] {
			t.Fatalf("order broken at %d: %s", i, report.VideoPath)
		}
	}
	if result.TotalPassed != 3 || result.TotalFailed != 2 {
		t.Fatalf("counts passed=%d failed=%d", result.TotalPassed, result.TotalFailed)
	}
	if result.TotalPassed+result.TotalFailed != len(paths) {
		t.Fatal("totals must account for every input")
	}
}

func TestEvaluateBatchIsolatesPanics(t *testing.T) {
	result := NewRunner(Options{Evaluator: &fakeEvaluator{}}).
		EvaluateBatch(context.Background(), requests("a.mp4", "panic.mp4", "c.mp4"))

	if len(result.Reports) != 3 {
		t.Fatalf("report count %d, want 3", len(result.Reports))
	}
	middle := result.Reports[1]
	if middle.Passed {
		t.Fatal("panicking item must produce a failed report")
	}
	if len(middle.Checks) != 1 || !strings.Contains(middle.Checks[0].Summary, "analyzer exploded") {
		t.Fatalf("synthetic check missing failure detail: %+v", middle.Checks)
	}
	if result.TotalPassed+result.TotalFailed != 3 {
		t.Fatalf("totals invariant broken: %d + %d", result.TotalPassed, result.TotalFailed)
	}
	if !result.Reports[0].Passed || !result.Reports[2].Passed {
		t.Fatal("neighbors of a failed item must be unaffected")
	}
}

func TestEvaluateBatchRunsAllItems(t *testing.T) {
	evaluator := &fakeEvaluator{delay: 10 * time.Millisecond}
	NewRunner(Options{Evaluator: evaluator, Concurrency: 4}).
		EvaluateBatch(context.Background(), requests("a", "b", "c", "d", "e", "f"))
	if got := evaluator.calls.Load(); got != 6 {
		t.Fatalf("evaluator called %d times, want 6", got)
	}
}

func TestBatchResultJSONRoundTrip(t *testing.T) {
	result := NewRunner(Options{Evaluator: &fakeEvaluator{}}).
		EvaluateBatch(context.Background(), requests("a.mp4", "bad-b.mp4"))

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored Result
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if restored.TotalPassed != result.TotalPassed || restored.TotalFailed != result.TotalFailed {
		t.Fatal("counters drifted in round trip")
	}
	if len(restored.Reports) != len(result.Reports) {
		t.Fatal("reports drifted in round trip")
	}
}
