package evaluate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"reelcheck/internal/analyzers"
	"reelcheck/internal/features"
	"reelcheck/internal/logging"
	"reelcheck/internal/media/ffprobe"
	"reelcheck/internal/scoring"
)

// Evaluator orchestrates quality checks for single videos. Each enabled
// check delegates to its analyzer and owns its own timeout through the
// shared runner, so one hung signal degrades confidence instead of
// stalling the evaluation.
type Evaluator struct {
	runner         *analyzers.Runner
	builder        *features.Builder
	ffprobeBin     string
	sampleRate     int
	maxFrames      int
	calibratorPath string
	modelPath      string
	logger         *slog.Logger

	// probe is swappable for tests.
	probe func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// EvaluatorOptions configures an Evaluator.
type EvaluatorOptions struct {
	Runner         *analyzers.Runner
	Builder        *features.Builder
	FFprobeBin     string
	SampleRate     int
	MaxFrames      int
	CalibratorPath string
	// ModelPath names the scoring calibration artifact; empty falls back
	// to CalibratorPath.
	ModelPath string
	Logger    *slog.Logger
	// Probe overrides container inspection; nil means real ffprobe.
	Probe func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// NewEvaluator constructs an Evaluator.
func NewEvaluator(opts EvaluatorOptions) *Evaluator {
	sampleRate := opts.SampleRate
	if sampleRate < 1 {
		sampleRate = 1
	}
	maxFrames := opts.MaxFrames
	if maxFrames < 1 {
		maxFrames = 16
	}
	probe := opts.Probe
	if probe == nil {
		probe = ffprobe.Inspect
	}
	modelPath := opts.ModelPath
	if modelPath == "" {
		modelPath = opts.CalibratorPath
	}
	return &Evaluator{
		runner:         opts.Runner,
		builder:        opts.Builder,
		ffprobeBin:     opts.FFprobeBin,
		sampleRate:     sampleRate,
		maxFrames:      maxFrames,
		calibratorPath: opts.CalibratorPath,
		modelPath:      modelPath,
		logger:         logging.NewComponentLogger(opts.Logger, "evaluate"),
		probe:          probe,
	}
}

// Request describes one video evaluation.
type Request struct {
	VideoPath      string
	TimestampsPath string
	ScriptPath     string
	// Profile selects the threshold set when Thresholds is nil.
	Profile string
	// Thresholds overrides the profile lookup when non-nil.
	Thresholds *Thresholds
	// Checks enables or disables individual checks. A nil map enables the
	// error-severity checks and skips the warning-severity ones.
	Checks map[CheckID]bool
}

func (r Request) enabled(id CheckID) bool {
	if r.Checks == nil {
		return SeverityOf(id) == SeverityError
	}
	return r.Checks[id]
}

// outcome is the verdict of one check body. Errors and panics never
// escape the check goroutine; they become failed outcomes.
type outcome struct {
	passed  bool
	skipped bool
	summary string
}

type checkFunc func(ctx context.Context, e *Evaluator, req Request, th Thresholds) outcome

// checkBodies is exhaustive over the closed check set.
var checkBodies = map[CheckID]checkFunc{
	CheckValidate:         runValidate,
	CheckRate:             runRate,
	CheckCaptionQuality:   runCaptionQuality,
	CheckScore:            runScore,
	CheckTemporalQuality:  runTemporalQuality,
	CheckAudioSignal:      runAudioSignal,
	CheckSemanticFidelity: runSemanticFidelity,
	CheckSafety:           runSafety,
	CheckFreeze:           runFreeze,
	CheckDNSMOS:           runDNSMOS,
	CheckFlowConsistency:  runFlowConsistency,
}

// EvaluateVideo runs the enabled checks concurrently and assembles the
// validation report. It never returns an error: dependency failures are
// folded into failed check entries.
func (e *Evaluator) EvaluateVideo(ctx context.Context, req Request) ValidationReport {
	started := time.Now()
	thresholds := ThresholdsFor(req.Profile)
	if req.Thresholds != nil {
		thresholds = *req.Thresholds
	}

	all := AllChecks()
	results := make([]CheckResult, len(all))

	var wg sync.WaitGroup
	for i, id := range all {
		if !req.enabled(id) {
			results[i] = CheckResult{CheckID: id, Skipped: true, Summary: "check disabled"}
			continue
		}
		wg.Add(1)
		go func(i int, id CheckID) {
			defer wg.Done()
			results[i] = e.runCheck(ctx, id, req, thresholds)
		}(i, id)
	}
	wg.Wait()

	passed := true
	for _, result := range results {
		if result.Skipped || result.Passed {
			continue
		}
		if SeverityOf(result.CheckID) == SeverityError {
			passed = false
		}
	}

	report := ValidationReport{
		SchemaVersion:   SchemaVersion,
		VideoPath:       req.VideoPath,
		Passed:          passed,
		Checks:          results,
		Thresholds:      thresholds,
		Overall:         buildOverall(results, e.calibratorPath),
		TotalDurationMs: time.Since(started).Milliseconds(),
		CreatedAt:       time.Now().UTC(),
	}

	e.logger.Info("evaluation finished",
		logging.String(logging.FieldVideo, req.VideoPath),
		logging.Bool("passed", report.Passed),
		logging.Float64("overall", report.Overall.Score),
		logging.Duration("elapsed", time.Since(started)),
	)
	return report
}

// runCheck executes one check body with panic isolation and timing.
func (e *Evaluator) runCheck(ctx context.Context, id CheckID, req Request, th Thresholds) (result CheckResult) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = CheckResult{
				CheckID: id,
				Passed:  false,
				Summary: fmt.Sprintf("check panicked: %v", r),
			}
		}
		result.DurationMs = time.Since(started).Milliseconds()
		e.logger.Debug("check finished",
			logging.String(logging.FieldCheck, string(id)),
			logging.Bool("passed", result.Passed),
			logging.Bool("skipped", result.Skipped),
		)
	}()

	if ctx.Err() != nil {
		return CheckResult{CheckID: id, Skipped: true, Summary: "evaluation cancelled"}
	}

	out := checkBodies[id](ctx, e, req, th)
	return CheckResult{CheckID: id, Passed: out.passed, Skipped: out.skipped, Summary: out.summary}
}

func failf(format string, args ...any) outcome {
	return outcome{summary: fmt.Sprintf(format, args...)}
}

func passf(format string, args ...any) outcome {
	return outcome{passed: true, summary: fmt.Sprintf(format, args...)}
}

func runValidate(ctx context.Context, e *Evaluator, req Request, _ Thresholds) outcome {
	probed, err := e.probe(ctx, e.ffprobeBin, req.VideoPath)
	if err != nil {
		return failf("container unreadable: %v", err)
	}
	duration := probed.DurationSeconds()
	if duration <= 0 {
		return failf("container reports no duration")
	}
	if _, ok := probed.VideoStream(); !ok {
		return failf("no video stream present")
	}
	if probed.AudioStreamCount() == 0 {
		return failf("no audio stream present")
	}
	return passf("container valid, %.1fs", duration)
}

func runRate(ctx context.Context, e *Evaluator, req Request, th Thresholds) outcome {
	result, err := e.runner.VideoQuality(ctx, req.VideoPath, e.sampleRate)
	if err != nil {
		return failf("frame quality analyzer failed: %v", err)
	}
	if result.Brisque.Mean > th.MaxBrisqueMean {
		return failf("BRISQUE mean %.1f above limit %.1f", result.Brisque.Mean, th.MaxBrisqueMean)
	}
	return passf("BRISQUE mean %.1f", result.Brisque.Mean)
}

func runCaptionQuality(ctx context.Context, e *Evaluator, req Request, th Thresholds) outcome {
	result, err := e.runner.CaptionQuality(ctx, req.VideoPath)
	if err != nil {
		return failf("caption analyzer failed: %v", err)
	}
	if result.Overall < th.MinCaptionOverall {
		return failf("caption quality %.2f below minimum %.2f", result.Overall, th.MinCaptionOverall)
	}
	return passf("caption quality %.2f", result.Overall)
}

// runScore extracts its own feature vector, so the core analyzers it
// invokes also run under the sibling checks and an evaluation with score
// enabled pays those subprocesses twice.
// TODO: memoize analyzer invocations per evaluation so score reuses the
// sibling checks' results.
func runScore(ctx context.Context, e *Evaluator, req Request, th Thresholds) outcome {
	vec, err := e.builder.Build(ctx, features.BuildRequest{
		VideoPath:      req.VideoPath,
		TimestampsPath: req.TimestampsPath,
		ScriptPath:     req.ScriptPath,
	})
	if err != nil {
		return failf("feature extraction failed: %v", err)
	}
	result := scoring.ScoreQuality(scoring.Options{Features: vec, ModelPath: e.modelPath})
	if result.Score < th.MinScore {
		return failf("quality score %.1f (%s) below minimum %.1f", result.Score, result.Label, th.MinScore)
	}
	return passf("quality score %.1f (%s)", result.Score, result.Label)
}

func runTemporalQuality(ctx context.Context, e *Evaluator, req Request, th Thresholds) outcome {
	result, err := e.runner.TemporalQuality(ctx, req.VideoPath, e.sampleRate)
	if err != nil {
		return failf("temporal analyzer failed: %v", err)
	}
	if result.DuplicateFrameRatio > th.MaxDuplicateRatio {
		return failf("duplicate frame ratio %.2f above limit %.2f", result.DuplicateFrameRatio, th.MaxDuplicateRatio)
	}
	return passf("duplicate frame ratio %.2f", result.DuplicateFrameRatio)
}

func runAudioSignal(ctx context.Context, e *Evaluator, req Request, th Thresholds) outcome {
	result, err := e.runner.AudioQuality(ctx, req.VideoPath, "")
	if err != nil {
		return failf("audio analyzer failed: %v", err)
	}
	if result.ClippingRatio > th.MaxClippingRatio {
		return failf("clipping ratio %.3f above limit %.3f", result.ClippingRatio, th.MaxClippingRatio)
	}
	if result.LoudnessLUFS < th.MinLoudnessLUFS || result.LoudnessLUFS > th.MaxLoudnessLUFS {
		return failf("loudness %.1f LUFS outside [%.1f, %.1f]", result.LoudnessLUFS, th.MinLoudnessLUFS, th.MaxLoudnessLUFS)
	}
	return passf("loudness %.1f LUFS, clipping %.3f", result.LoudnessLUFS, result.ClippingRatio)
}

func runSemanticFidelity(ctx context.Context, e *Evaluator, req Request, th Thresholds) outcome {
	if req.ScriptPath == "" {
		return outcome{skipped: true, summary: "no script supplied"}
	}
	result, err := e.runner.SemanticSimilarity(ctx, req.VideoPath, req.ScriptPath, e.maxFrames)
	if err != nil {
		return failf("semantic analyzer failed: %v", err)
	}
	if result.ClipScore.Mean < th.MinSemanticSimilarity {
		return failf("frame/script similarity %.2f below minimum %.2f", result.ClipScore.Mean, th.MinSemanticSimilarity)
	}
	return passf("frame/script similarity %.2f", result.ClipScore.Mean)
}

func runSafety(ctx context.Context, e *Evaluator, req Request, _ Thresholds) outcome {
	result, err := e.runner.SafetyCheck(ctx, req.VideoPath, req.ScriptPath, e.maxFrames)
	if err != nil {
		return failf("safety analyzer failed: %v", err)
	}
	if !result.VisualSafety.Passed {
		return failf("visual safety flags: %v", result.VisualSafety.Flags)
	}
	if !result.TextSafety.Passed {
		return failf("text safety flags: %v", result.TextSafety.Flags)
	}
	return passf("no safety flags")
}

func runFreeze(ctx context.Context, e *Evaluator, req Request, th Thresholds) outcome {
	result, err := e.runner.FreezeDetect(ctx, req.VideoPath, e.sampleRate)
	if err != nil {
		return failf("freeze analyzer failed: %v", err)
	}
	if result.FreezeRatio > th.MaxFreezeRatio {
		return failf("freeze ratio %.2f above limit %.2f", result.FreezeRatio, th.MaxFreezeRatio)
	}
	if result.BlackRatio > th.MaxBlackRatio {
		return failf("black frame ratio %.2f above limit %.2f", result.BlackRatio, th.MaxBlackRatio)
	}
	return passf("freeze ratio %.2f, black ratio %.2f", result.FreezeRatio, result.BlackRatio)
}

func runDNSMOS(ctx context.Context, e *Evaluator, req Request, th Thresholds) outcome {
	result, err := e.runner.DNSMOS(ctx, req.VideoPath)
	if err != nil {
		return failf("DNSMOS analyzer failed: %v", err)
	}
	if result.OverallMOS < th.MinDNSMOS {
		return failf("speech MOS %.2f below minimum %.2f", result.OverallMOS, th.MinDNSMOS)
	}
	return passf("speech MOS %.2f", result.OverallMOS)
}

func runFlowConsistency(ctx context.Context, e *Evaluator, req Request, th Thresholds) outcome {
	result, err := e.runner.FlowWarpError(ctx, req.VideoPath, 30)
	if err != nil {
		return failf("flow analyzer failed: %v", err)
	}
	if result.MeanWarpError > th.MaxFlowWarpError {
		return failf("warp error %.2f above limit %.2f", result.MeanWarpError, th.MaxFlowWarpError)
	}
	return passf("warp error %.2f", result.MeanWarpError)
}
