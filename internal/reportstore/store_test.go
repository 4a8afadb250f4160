package reportstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"reelcheck/internal/batch"
	"reelcheck/internal/evaluate"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleReport(videoPath string, passed bool) evaluate.ValidationReport {
	return evaluate.ValidationReport{
		SchemaVersion: evaluate.SchemaVersion,
		VideoPath:     videoPath,
		Passed:        passed,
		Checks: []evaluate.CheckResult{
			{CheckID: evaluate.CheckValidate, Passed: passed, Summary: "container valid"},
		},
		Thresholds:      evaluate.ThresholdsFor(evaluate.ProfileDefault),
		TotalDurationMs: 1200,
		CreatedAt:       time.Now().UTC(),
	}
}

func TestSaveAndGetRun(t *testing.T) {
	store := openTestStore(t)
	result := batch.Result{
		SchemaVersion: batch.SchemaVersion,
		Reports: []evaluate.ValidationReport{
			sampleReport("a.mp4", true),
			sampleReport("b.mp4", false),
		},
		TotalPassed:     1,
		TotalFailed:     1,
		TotalDurationMs: 2400,
		CreatedAt:       time.Now().UTC(),
	}

	runID, err := store.SaveBatch(context.Background(), result)
	if err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	loaded, err := store.GetRun(context.Background(), runID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if loaded.TotalPassed != 1 || loaded.TotalFailed != 1 {
		t.Fatalf("counters drifted: %+v", loaded)
	}
	if len(loaded.Reports) != 2 {
		t.Fatalf("report count %d, want 2", len(loaded.Reports))
	}
	if loaded.Reports[0].VideoPath != "a.mp4" || loaded.Reports[1].VideoPath != "b.mp4" {
		t.Fatal("report order not preserved")
	}
	if len(loaded.Reports[0].Checks) != 1 {
		t.Fatal("check detail lost in round trip")
	}
}

func TestGetRunNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetRun(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveReportSingleRun(t *testing.T) {
	store := openTestStore(t)
	runID, err := store.SaveReport(context.Background(), sampleReport("clip.mp4", true))
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	loaded, err := store.GetRun(context.Background(), runID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if loaded.TotalPassed != 1 || loaded.TotalFailed != 0 || len(loaded.Reports) != 1 {
		t.Fatalf("unexpected run: %+v", loaded)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	first := batch.Result{Reports: []evaluate.ValidationReport{sampleReport("a.mp4", true)}, TotalPassed: 1, CreatedAt: time.Now().Add(-time.Hour).UTC()}
	second := batch.Result{Reports: []evaluate.ValidationReport{sampleReport("b.mp4", false)}, TotalFailed: 1, CreatedAt: time.Now().UTC()}

	if _, err := store.SaveBatch(context.Background(), first); err != nil {
		t.Fatal(err)
	}
	secondID, err := store.SaveBatch(context.Background(), second)
	if err != nil {
		t.Fatal(err)
	}

	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("run count %d, want 2", len(runs))
	}
	if runs[0].ID != secondID {
		t.Fatal("runs not ordered newest first")
	}
}

func TestVideoHistory(t *testing.T) {
	store := openTestStore(t)
	for _, passed := range []bool{true, false} {
		if _, err := store.SaveReport(context.Background(), sampleReport("clip.mp4", passed)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.SaveReport(context.Background(), sampleReport("other.mp4", true)); err != nil {
		t.Fatal(err)
	}

	history, err := store.VideoHistory(context.Background(), "clip.mp4", 10)
	if err != nil {
		t.Fatalf("VideoHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history count %d, want 2", len(history))
	}
	for _, report := range history {
		if report.VideoPath != "clip.mp4" {
			t.Fatalf("foreign report in history: %s", report.VideoPath)
		}
	}
}

func TestPrune(t *testing.T) {
	store := openTestStore(t)
	old := batch.Result{Reports: []evaluate.ValidationReport{sampleReport("old.mp4", true)}, TotalPassed: 1, CreatedAt: time.Now().Add(-48 * time.Hour).UTC()}
	fresh := batch.Result{Reports: []evaluate.ValidationReport{sampleReport("new.mp4", true)}, TotalPassed: 1, CreatedAt: time.Now().UTC()}
	if _, err := store.SaveBatch(context.Background(), old); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveBatch(context.Background(), fresh); err != nil {
		t.Fatal(err)
	}

	removed, err := store.Prune(context.Background(), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("pruned %d runs, want 1", removed)
	}
	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].TotalPassed != 1 {
		t.Fatalf("unexpected survivors: %+v", runs)
	}
}

func TestReopenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	runID, err := store.SaveReport(context.Background(), sampleReport("clip.mp4", true))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.GetRun(context.Background(), runID); err != nil {
		t.Fatalf("GetRun after reopen: %v", err)
	}
}
