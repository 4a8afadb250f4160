package evaluate

// CheckID names one quality check. The set is closed; the calibration
// vector is indexed positionally against AllChecks ordering, so the order
// below is part of the calibrator artifact contract and must not change.
type CheckID string

const (
	CheckValidate         CheckID = "validate"
	CheckRate             CheckID = "rate"
	CheckCaptionQuality   CheckID = "captionQuality"
	CheckScore            CheckID = "score"
	CheckTemporalQuality  CheckID = "temporalQuality"
	CheckAudioSignal      CheckID = "audioSignal"
	CheckSemanticFidelity CheckID = "semanticFidelity"
	CheckSafety           CheckID = "safety"
	CheckFreeze           CheckID = "freeze"
	CheckDNSMOS           CheckID = "dnsmos"
	CheckFlowConsistency  CheckID = "flowConsistency"
)

// AllChecks returns every check in calibration order.
func AllChecks() []CheckID {
	return []CheckID{
		CheckValidate,
		CheckRate,
		CheckCaptionQuality,
		CheckScore,
		CheckTemporalQuality,
		CheckAudioSignal,
		CheckSemanticFidelity,
		CheckSafety,
		CheckFreeze,
		CheckDNSMOS,
		CheckFlowConsistency,
	}
}

// Severity classifies how a check failure affects the report verdict.
type Severity int

const (
	// SeverityError failures flip the report to failed.
	SeverityError Severity = iota
	// SeverityWarning failures are reported but do not fail the video.
	SeverityWarning
)

type checkTraits struct {
	severity Severity
	// weight is the hand-tuned calibration fallback weight.
	weight float64
}

// traitsTable is exhaustive over the closed check set.
var traitsTable = map[CheckID]checkTraits{
	CheckValidate:         {SeverityError, 1.2},
	CheckRate:             {SeverityError, 1.0},
	CheckCaptionQuality:   {SeverityError, 1.0},
	CheckScore:            {SeverityError, 1.5},
	CheckTemporalQuality:  {SeverityError, 0.8},
	CheckAudioSignal:      {SeverityError, 0.8},
	CheckSemanticFidelity: {SeverityError, 0.7},
	CheckSafety:           {SeverityError, 1.5},
	CheckFreeze:           {SeverityError, 0.6},
	CheckDNSMOS:           {SeverityWarning, 0.4},
	CheckFlowConsistency:  {SeverityWarning, 0.4},
}

// KnownCheck reports whether id is part of the closed set.
func KnownCheck(id CheckID) bool {
	_, ok := traitsTable[id]
	return ok
}

// SeverityOf returns the failure severity for a check.
func SeverityOf(id CheckID) Severity {
	return traitsTable[id].severity
}

// handWeights returns the fallback calibration weights in AllChecks order.
func handWeights() []float64 {
	all := AllChecks()
	weights := make([]float64, len(all))
	for i, id := range all {
		weights[i] = traitsTable[id].weight
	}
	return weights
}
