package analyzers

import (
	"context"
	"strconv"
)

// Analyzer script names resolved under the configured scripts directory.
const (
	scriptTemporalQuality    = "temporal_quality.py"
	scriptFreezeDetect       = "freeze_detect.py"
	scriptAudioQuality       = "audio_quality.py"
	scriptVideoQuality       = "video_quality.py"
	scriptCaptionQuality     = "caption_quality.py"
	scriptSyncRating         = "sync_rating.py"
	scriptSemanticSimilarity = "semantic_similarity.py"
	scriptSafetyCheck        = "safety_check.py"
	scriptDNSMOS             = "dnsmos_score.py"
	scriptFlowWarpError      = "flow_warp_error.py"
	scriptClipEmbeddings     = "clip_embeddings.py"
	scriptTextEmbeddings     = "text_embeddings.py"
)

// TemporalQuality measures flicker and duplicate-frame ratio.
func (r *Runner) TemporalQuality(ctx context.Context, video string, sampleRate int) (TemporalResult, error) {
	var result TemporalResult
	err := r.run(ctx, scriptTemporalQuality, &result,
		"--video", video, "--sample-rate", strconv.Itoa(sampleRate))
	return result, err
}

// FreezeDetect measures freeze events and black frames.
func (r *Runner) FreezeDetect(ctx context.Context, video string, sampleRate int) (FreezeResult, error) {
	var result FreezeResult
	err := r.run(ctx, scriptFreezeDetect, &result,
		"--video", video, "--sample-rate", strconv.Itoa(sampleRate))
	return result, err
}

// AudioQuality measures loudness, clipping, and SNR via ffmpeg filters.
func (r *Runner) AudioQuality(ctx context.Context, video, ffmpeg string) (AudioResult, error) {
	var result AudioResult
	args := []string{"--media", video}
	if ffmpeg != "" {
		args = append(args, "--ffmpeg-path", ffmpeg)
	}
	err := r.run(ctx, scriptAudioQuality, &result, args...)
	return result, err
}

// VideoQuality measures no-reference frame quality (BRISQUE).
func (r *Runner) VideoQuality(ctx context.Context, video string, sampleRate int) (RatingResult, error) {
	var result RatingResult
	err := r.run(ctx, scriptVideoQuality, &result,
		"--video", video, "--sample-rate", strconv.Itoa(sampleRate))
	return result, err
}

// CaptionQuality measures caption coverage and legibility via OCR.
func (r *Runner) CaptionQuality(ctx context.Context, video string) (CaptionResult, error) {
	var result CaptionResult
	err := r.run(ctx, scriptCaptionQuality, &result, "--video", video)
	return result, err
}

// SyncRating measures audio/caption alignment drift.
func (r *Runner) SyncRating(ctx context.Context, video, timestamps string) (SyncResult, error) {
	var result SyncResult
	args := []string{"--video", video}
	if timestamps != "" {
		args = append(args, "--timestamps", timestamps)
	}
	err := r.run(ctx, scriptSyncRating, &result, args...)
	return result, err
}

// SemanticSimilarity measures CLIP similarity between frames and the script.
func (r *Runner) SemanticSimilarity(ctx context.Context, video, script string, maxFrames int) (SemanticResult, error) {
	var result SemanticResult
	err := r.run(ctx, scriptSemanticSimilarity, &result,
		"--video", video, "--script", script, "--max-frames", strconv.Itoa(maxFrames))
	return result, err
}

// SafetyCheck screens frames and script text for unsafe content.
func (r *Runner) SafetyCheck(ctx context.Context, video, script string, maxFrames int) (SafetyResult, error) {
	var result SafetyResult
	args := []string{"--video", video, "--max-frames", strconv.Itoa(maxFrames)}
	if script != "" {
		args = append(args, "--script", script)
	}
	err := r.run(ctx, scriptSafetyCheck, &result, args...)
	return result, err
}

// DNSMOS estimates perceptual speech quality.
func (r *Runner) DNSMOS(ctx context.Context, video string) (DNSMOSResult, error) {
	var result DNSMOSResult
	err := r.run(ctx, scriptDNSMOS, &result, "--video", video)
	return result, err
}

// FlowWarpError measures optical flow warp error across frame pairs.
func (r *Runner) FlowWarpError(ctx context.Context, video string, maxPairs int) (FlowResult, error) {
	var result FlowResult
	err := r.run(ctx, scriptFlowWarpError, &result,
		"--video", video, "--max-pairs", strconv.Itoa(maxPairs))
	return result, err
}

// ClipEmbedding extracts a pooled CLIP embedding for the video frames.
func (r *Runner) ClipEmbedding(ctx context.Context, video string, maxFrames int) (EmbeddingResult, error) {
	var result EmbeddingResult
	err := r.run(ctx, scriptClipEmbeddings, &result,
		"--video", video, "--max-frames", strconv.Itoa(maxFrames))
	return result, err
}

// TextEmbedding extracts a pooled text embedding for a transcript file.
func (r *Runner) TextEmbedding(ctx context.Context, file string) (EmbeddingResult, error) {
	var result EmbeddingResult
	err := r.run(ctx, scriptTextEmbeddings, &result, "--file", file)
	return result, err
}
