package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldVideo is the standardized structured logging key for the video under evaluation.
	FieldVideo = "video"
	// FieldCheck is the standardized structured logging key for check identifiers.
	FieldCheck = "check"
	// FieldRunID is the standardized structured logging key for batch run identifiers.
	FieldRunID = "run_id"
	// FieldAnalyzer is the standardized structured logging key for external analyzer names.
	FieldAnalyzer = "analyzer"
	// FieldEventType is the standardized structured logging key for event classification.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized structured logging key for operator guidance.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for the user-facing consequence of a warning.
	FieldImpact = "impact"
)
