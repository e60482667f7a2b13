package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"

	// Time-tracking domain errors
	CodeInvalidState           = "INVALID_STATE"
	CodeInvalidInterval        = "INVALID_INTERVAL"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeMissingReferenceData   = "MISSING_REFERENCE_DATA"
	CodeSweepStepFailure       = "SWEEP_STEP_FAILURE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
