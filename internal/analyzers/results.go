package analyzers

// TemporalResult holds flicker and duplicate-frame measurements.
type TemporalResult struct {
	Flicker struct {
		Score    float64 `json:"score"`
		Variance float64 `json:"variance"`
		MeanDiff float64 `json:"meanDiff"`
	} `json:"flicker"`
	DuplicateFrameRatio float64 `json:"duplicateFrameRatio"`
	FramesAnalyzed      int     `json:"framesAnalyzed"`
}

// FreezeResult holds freeze-event and black-frame measurements.
type FreezeResult struct {
	FreezeEvents int     `json:"freezeEvents"`
	BlackFrames  int     `json:"blackFrames"`
	FreezeRatio  float64 `json:"freezeRatio"`
	BlackRatio   float64 `json:"blackRatio"`
	TotalFrames  int     `json:"totalFrames"`
}

// AudioResult holds loudness, clipping, and noise measurements.
type AudioResult struct {
	LoudnessLUFS  float64 `json:"loudnessLUFS"`
	TruePeakDBFS  float64 `json:"truePeakDBFS"`
	LoudnessRange float64 `json:"loudnessRange"`
	ClippingRatio float64 `json:"clippingRatio"`
	PeakLevelDB   float64 `json:"peakLevelDB"`
	SNRDB         float64 `json:"snrDB"`
}

// RatingResult holds per-frame BRISQUE aggregate quality ratings.
type RatingResult struct {
	Brisque struct {
		Mean float64 `json:"mean"`
		Min  float64 `json:"min"`
		Max  float64 `json:"max"`
	} `json:"brisque"`
	FramesAnalyzed int `json:"framesAnalyzed"`
}

// CaptionResult holds caption legibility and coverage scores.
type CaptionResult struct {
	Overall    float64 `json:"overall"`
	Coverage   float64 `json:"coverage"`
	Legibility float64 `json:"legibility"`
}

// SyncResult holds audio/caption sync measurements.
type SyncResult struct {
	Rating       float64 `json:"rating"`
	DriftMs      float64 `json:"driftMs"`
	OverlapCount int     `json:"overlapCount"`
}

// SemanticResult holds CLIP frame-to-script similarity scores.
type SemanticResult struct {
	ClipScore struct {
		Mean float64 `json:"mean"`
		Min  float64 `json:"min"`
		P10  float64 `json:"p10"`
	} `json:"clipScore"`
	ScenesEvaluated int `json:"scenesEvaluated"`
	FramesAnalyzed  int `json:"framesAnalyzed"`
}

// SafetyResult holds visual and textual safety screening outcomes.
type SafetyResult struct {
	VisualSafety struct {
		Passed bool     `json:"passed"`
		Flags  []string `json:"flags"`
		Method string   `json:"method"`
	} `json:"visualSafety"`
	TextSafety struct {
		Passed bool     `json:"passed"`
		Flags  []string `json:"flags"`
	} `json:"textSafety"`
}

// DNSMOSResult holds perceptual speech quality MOS estimates.
type DNSMOSResult struct {
	OverallMOS    float64 `json:"ovrl_mos"`
	SignalMOS     float64 `json:"sig_mos"`
	BackgroundMOS float64 `json:"bak_mos"`
}

// FlowResult holds optical flow warp error measurements.
type FlowResult struct {
	MeanWarpError  float64 `json:"meanWarpError"`
	MaxWarpError   float64 `json:"maxWarpError"`
	FramesAnalyzed int     `json:"framesAnalyzed"`
}

// EmbeddingResult holds a pooled embedding vector.
type EmbeddingResult struct {
	Embedding []float64 `json:"embedding"`
	Dim       int       `json:"dim"`
	Method    string    `json:"method"`
}
