package features

import (
	"context"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"reelcheck/internal/analyzers"
	"reelcheck/internal/logging"
	"reelcheck/internal/media/ffprobe"
	"reelcheck/internal/services"
)

// Builder assembles feature vectors by probing the container and fanning
// out to the external analyzers. A failing analyzer leaves its metrics
// unset; only an unreadable container aborts the build.
type Builder struct {
	runner       *analyzers.Runner
	ffprobeBin   string
	ffmpegBin    string
	sampleRate   int
	maxFrames    int
	maxFlowPairs int
	logger       *slog.Logger

	// probe is swappable for tests.
	probe func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	Runner       *analyzers.Runner
	FFprobeBin   string
	FFmpegBin    string
	SampleRate   int
	MaxFrames    int
	MaxFlowPairs int
	Logger       *slog.Logger
	// Probe overrides container inspection; nil means real ffprobe.
	Probe func(ctx context.Context, binary, path string) (ffprobe.Result, error)
}

// NewBuilder constructs a Builder.
func NewBuilder(opts BuilderOptions) *Builder {
	sampleRate := opts.SampleRate
	if sampleRate < 1 {
		sampleRate = 1
	}
	maxFrames := opts.MaxFrames
	if maxFrames < 1 {
		maxFrames = 16
	}
	maxFlowPairs := opts.MaxFlowPairs
	if maxFlowPairs < 1 {
		maxFlowPairs = 30
	}
	probe := opts.Probe
	if probe == nil {
		probe = ffprobe.Inspect
	}
	return &Builder{
		runner:       opts.Runner,
		ffprobeBin:   opts.FFprobeBin,
		ffmpegBin:    opts.FFmpegBin,
		sampleRate:   sampleRate,
		maxFrames:    maxFrames,
		maxFlowPairs: maxFlowPairs,
		logger:       logging.NewComponentLogger(opts.Logger, "features"),
		probe:        probe,
	}
}

// BuildRequest names the video and its optional auxiliary artifacts.
type BuildRequest struct {
	VideoPath      string
	TimestampsPath string
	ScriptPath     string
	// Extended additionally runs the heavyweight analyzers (DNSMOS,
	// optical flow) whose metrics most callers do not need.
	Extended bool
	// IncludeEmbeddings requests CLIP/text embedding extraction.
	IncludeEmbeddings bool
}

// Build produces one feature vector for the requested video.
func (b *Builder) Build(ctx context.Context, req BuildRequest) (FeatureVector, error) {
	videoPath := strings.TrimSpace(req.VideoPath)
	if videoPath == "" {
		return FeatureVector{}, services.Wrap(services.ErrValidation, "features", "build", "empty video path", nil)
	}

	probed, err := b.probe(ctx, b.ffprobeBin, videoPath)
	if err != nil {
		return FeatureVector{}, services.Wrap(services.ErrExternalTool, "features", "probe", "", err)
	}

	meta := Metadata{DurationS: probed.DurationSeconds(), FPS: probed.FrameRate()}
	if stream, ok := probed.VideoStream(); ok {
		meta.Width = stream.Width
		meta.Height = stream.Height
	}

	vec, err := NewVector(videoID(videoPath), meta)
	if err != nil {
		return FeatureVector{}, err
	}

	b.collectSync(ctx, &vec, videoPath, req.TimestampsPath)
	b.collectCaption(ctx, &vec, videoPath)
	b.collectTemporal(ctx, &vec, videoPath)
	b.collectFreeze(ctx, &vec, videoPath)
	b.collectAudio(ctx, &vec, videoPath)
	b.collectRating(ctx, &vec, videoPath)

	if req.TimestampsPath != "" {
		artifact, err := loadTimestamps(req.TimestampsPath)
		if err != nil {
			b.skip(err, "timestamps", MetricPacingScore, MetricHookTiming, MetricEngagementScore)
		} else {
			deriveTimingMetrics(&vec, artifact, meta.DurationS)
		}
	}

	if req.ScriptPath != "" {
		b.collectSemantic(ctx, &vec, videoPath, req.ScriptPath)
	}

	if req.Extended {
		b.collectDNSMOS(ctx, &vec, videoPath)
		b.collectFlow(ctx, &vec, videoPath)
	}

	if req.IncludeEmbeddings {
		b.collectEmbeddings(ctx, &vec, videoPath, req.ScriptPath)
	}

	return vec, nil
}

func (b *Builder) collectSync(ctx context.Context, vec *FeatureVector, video, timestamps string) {
	result, err := b.runner.SyncRating(ctx, video, timestamps)
	if err != nil {
		b.skip(err, "sync_rating", MetricSyncRating, MetricOverlapCount)
		return
	}
	_ = vec.Set(MetricSyncRating, clampRange(result.Rating, 0, 100))
	_ = vec.Set(MetricOverlapCount, clampRange(float64(result.OverlapCount), 0, 1000))
}

func (b *Builder) collectCaption(ctx context.Context, vec *FeatureVector, video string) {
	result, err := b.runner.CaptionQuality(ctx, video)
	if err != nil {
		b.skip(err, "caption_quality", MetricCaptionOverall)
		return
	}
	_ = vec.Set(MetricCaptionOverall, clamp01(result.Overall))
}

func (b *Builder) collectTemporal(ctx context.Context, vec *FeatureVector, video string) {
	result, err := b.runner.TemporalQuality(ctx, video, b.sampleRate)
	if err != nil {
		b.skip(err, "temporal_quality", MetricDuplicateRatio)
		return
	}
	_ = vec.Set(MetricDuplicateRatio, clamp01(result.DuplicateFrameRatio))
}

func (b *Builder) collectFreeze(ctx context.Context, vec *FeatureVector, video string) {
	result, err := b.runner.FreezeDetect(ctx, video, b.sampleRate)
	if err != nil {
		b.skip(err, "freeze_detect", MetricFreezeRatio, MetricBlackRatio)
		return
	}
	_ = vec.Set(MetricFreezeRatio, clamp01(result.FreezeRatio))
	_ = vec.Set(MetricBlackRatio, clamp01(result.BlackRatio))
}

func (b *Builder) collectAudio(ctx context.Context, vec *FeatureVector, video string) {
	result, err := b.runner.AudioQuality(ctx, video, b.ffmpegBin)
	if err != nil {
		b.skip(err, "audio_quality", MetricLoudnessLUFS, MetricClippingRatio, MetricSNRDB, MetricAudioScore)
		return
	}
	_ = vec.Set(MetricLoudnessLUFS, clampRange(result.LoudnessLUFS, -70, 5))
	_ = vec.Set(MetricClippingRatio, clamp01(result.ClippingRatio))
	_ = vec.Set(MetricSNRDB, clampRange(result.SNRDB, -20, 120))
	_ = vec.Set(MetricAudioScore, deriveAudioScore(result))
}

func (b *Builder) collectRating(ctx context.Context, vec *FeatureVector, video string) {
	result, err := b.runner.VideoQuality(ctx, video, b.sampleRate)
	if err != nil {
		b.skip(err, "video_quality", MetricBrisqueMean)
		return
	}
	_ = vec.Set(MetricBrisqueMean, clampRange(result.Brisque.Mean, 0, 150))
}

func (b *Builder) collectSemantic(ctx context.Context, vec *FeatureVector, video, script string) {
	result, err := b.runner.SemanticSimilarity(ctx, video, script, b.maxFrames)
	if err != nil {
		b.skip(err, "semantic_similarity", MetricSemanticSimilarity)
		return
	}
	_ = vec.Set(MetricSemanticSimilarity, clampRange(result.ClipScore.Mean, -1, 1))
}

func (b *Builder) collectDNSMOS(ctx context.Context, vec *FeatureVector, video string) {
	result, err := b.runner.DNSMOS(ctx, video)
	if err != nil {
		b.skip(err, "dnsmos_score", MetricDNSMOS)
		return
	}
	_ = vec.Set(MetricDNSMOS, clampRange(result.OverallMOS, 1, 5))
}

func (b *Builder) collectFlow(ctx context.Context, vec *FeatureVector, video string) {
	result, err := b.runner.FlowWarpError(ctx, video, b.maxFlowPairs)
	if err != nil {
		b.skip(err, "flow_warp_error", MetricFlowWarpError)
		return
	}
	_ = vec.Set(MetricFlowWarpError, clamp01(result.MeanWarpError))
}

func (b *Builder) collectEmbeddings(ctx context.Context, vec *FeatureVector, video, script string) {
	if clip, err := b.runner.ClipEmbedding(ctx, video, b.maxFrames); err != nil {
		b.skip(err, "clip_embeddings")
	} else {
		vec.ClipEmbedding = clip.Embedding
	}
	if script == "" {
		return
	}
	if text, err := b.runner.TextEmbedding(ctx, script); err != nil {
		b.skip(err, "text_embeddings")
	} else {
		vec.TextEmbedding = text.Embedding
	}
}

// skip records that an analyzer produced no evidence. The affected metrics
// stay unset so downstream confidence reflects the gap.
func (b *Builder) skip(err error, analyzer string, metrics ...Metric) {
	names := make([]string, 0, len(metrics))
	for _, m := range metrics {
		names = append(names, string(m))
	}
	b.logger.Warn("analyzer unavailable, metrics omitted",
		logging.String(logging.FieldAnalyzer, analyzer),
		logging.String("metrics", strings.Join(names, ",")),
		logging.Error(err),
		logging.String(logging.FieldImpact, "score confidence reduced"),
	)
}

// deriveAudioScore folds the raw audio measurements into the 0-100
// audioScore metric. Penalties stack: clipping is the worst offender,
// then loudness drift from the -14 LUFS delivery target, then noise.
func deriveAudioScore(result analyzers.AudioResult) float64 {
	score := 100.0
	score -= 200 * clamp01(result.ClippingRatio)
	score -= 2 * math.Abs(result.LoudnessLUFS-(-14))
	if result.SNRDB < 20 {
		score -= (20 - result.SNRDB)
	}
	return clampRange(score, 0, 100)
}

func clampRange(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func videoID(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
