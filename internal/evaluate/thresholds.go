package evaluate

// Thresholds holds the per-check acceptance limits for one profile.
type Thresholds struct {
	Profile               string  `json:"profile"`
	MinScore              float64 `json:"minScore"`
	MinCaptionOverall     float64 `json:"minCaptionOverall"`
	MaxBrisqueMean        float64 `json:"maxBrisqueMean"`
	MaxDuplicateRatio     float64 `json:"maxDuplicateRatio"`
	MaxFreezeRatio        float64 `json:"maxFreezeRatio"`
	MaxBlackRatio         float64 `json:"maxBlackRatio"`
	MaxClippingRatio      float64 `json:"maxClippingRatio"`
	MinLoudnessLUFS       float64 `json:"minLoudnessLUFS"`
	MaxLoudnessLUFS       float64 `json:"maxLoudnessLUFS"`
	MinSemanticSimilarity float64 `json:"minSemanticSimilarity"`
	MinDNSMOS             float64 `json:"minDNSMOS"`
	MaxFlowWarpError      float64 `json:"maxFlowWarpError"`
}

// Profile names understood by ThresholdsFor.
const (
	ProfileStrict  = "strict"
	ProfileDefault = "default"
	ProfileLenient = "lenient"
)

// ThresholdsFor resolves a profile name to its limits. Unknown names get
// the default profile; callers that need rejection validate earlier.
func ThresholdsFor(profile string) Thresholds {
	switch profile {
	case ProfileStrict:
		return Thresholds{
			Profile:               ProfileStrict,
			MinScore:              70,
			MinCaptionOverall:     0.4,
			MaxBrisqueMean:        45,
			MaxDuplicateRatio:     0.3,
			MaxFreezeRatio:        0.1,
			MaxBlackRatio:         0.05,
			MaxClippingRatio:      0.01,
			MinLoudnessLUFS:       -20,
			MaxLoudnessLUFS:       -9,
			MinSemanticSimilarity: 0.22,
			MinDNSMOS:             3.0,
			MaxFlowWarpError:      0.25,
		}
	case ProfileLenient:
		return Thresholds{
			Profile:               ProfileLenient,
			MinScore:              40,
			MinCaptionOverall:     0.15,
			MaxBrisqueMean:        80,
			MaxDuplicateRatio:     0.7,
			MaxFreezeRatio:        0.5,
			MaxBlackRatio:         0.3,
			MaxClippingRatio:      0.1,
			MinLoudnessLUFS:       -35,
			MaxLoudnessLUFS:       -5,
			MinSemanticSimilarity: 0.1,
			MinDNSMOS:             2.0,
			MaxFlowWarpError:      0.6,
		}
	default:
		return Thresholds{
			Profile:               ProfileDefault,
			MinScore:              55,
			MinCaptionOverall:     0.25,
			MaxBrisqueMean:        60,
			MaxDuplicateRatio:     0.5,
			MaxFreezeRatio:        0.25,
			MaxBlackRatio:         0.15,
			MaxClippingRatio:      0.03,
			MinLoudnessLUFS:       -26,
			MaxLoudnessLUFS:       -7,
			MinSemanticSimilarity: 0.18,
			MinDNSMOS:             2.5,
			MaxFlowWarpError:      0.4,
		}
	}
}
