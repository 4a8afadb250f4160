package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"reelcheck/internal/evaluate"
	"reelcheck/internal/logging"
)

// SchemaVersion tags serialized batch results.
const SchemaVersion = "1.0"

// Evaluator is the per-video evaluation dependency.
type Evaluator interface {
	EvaluateVideo(ctx context.Context, req evaluate.Request) evaluate.ValidationReport
}

// Result aggregates one batch run. reports order matches input order
// regardless of execution interleaving.
type Result struct {
	SchemaVersion   string                      `json:"schemaVersion"`
	Reports         []evaluate.ValidationReport `json:"reports"`
	TotalPassed     int                         `json:"totalPassed"`
	TotalFailed     int                         `json:"totalFailed"`
	TotalDurationMs int64                       `json:"totalDurationMs"`
	CreatedAt       time.Time                   `json:"createdAt"`
}

// Runner executes evaluations with a bounded concurrency limit.
type Runner struct {
	evaluator   Evaluator
	concurrency int
	logger      *slog.Logger
}

// Options configures a Runner.
type Options struct {
	Evaluator   Evaluator
	Concurrency int
	Logger      *slog.Logger
}

// NewRunner constructs a Runner.
func NewRunner(opts Options) *Runner {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		evaluator:   opts.Evaluator,
		concurrency: concurrency,
		logger:      logging.NewComponentLogger(opts.Logger, "batch"),
	}
}

// EvaluateBatch evaluates every request and collects all reports before
// computing the aggregate counters. A panicking evaluation is converted
// into a synthetic failed report for that item only.
func (r *Runner) EvaluateBatch(ctx context.Context, videos []evaluate.Request) Result {
	started := time.Now()
	reports := make([]evaluate.ValidationReport, len(videos))

	sem := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup
	for i, req := range videos {
		wg.Add(1)
		go func(i int, req evaluate.Request) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			reports[i] = r.evaluateOne(ctx, req)
		}(i, req)
	}
	wg.Wait()

	result := Result{
		SchemaVersion:   SchemaVersion,
		Reports:         reports,
		TotalDurationMs: time.Since(started).Milliseconds(),
		CreatedAt:       time.Now().UTC(),
	}
	for _, report := range reports {
		if report.Passed {
			result.TotalPassed++
		} else {
			result.TotalFailed++
		}
	}

	r.logger.Info("batch finished",
		logging.Int("videos", len(videos)),
		logging.Int("passed", result.TotalPassed),
		logging.Int("failed", result.TotalFailed),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result
}

// evaluateOne shields the batch from a single item blowing up.
func (r *Runner) evaluateOne(ctx context.Context, req evaluate.Request) (report evaluate.ValidationReport) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("evaluation panicked",
				logging.String(logging.FieldVideo, req.VideoPath),
				logging.Any("panic", rec),
			)
			report = evaluate.FailedReport(req.VideoPath, evaluate.ThresholdsFor(req.Profile),
				fmt.Sprintf("evaluation panicked: %v", rec))
		}
	}()
	return r.evaluator.EvaluateVideo(ctx, req)
}
