package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Calculator-specific error codes
const (
	// Calculation errors
	CodeInvalidInvestment Code = "INVALID_INVESTMENT"
	CodeInvalidRate       Code = "INVALID_RATE"
	CodeInvalidFee        Code = "INVALID_FEE"

	// Market data provider errors
	CodeProviderRequestFailed Code = "PROVIDER_REQUEST_FAILED"
	CodeProviderBadResponse   Code = "PROVIDER_BAD_RESPONSE"
	CodeProviderRateLimited   Code = "PROVIDER_RATE_LIMITED"
	CodeInvalidRates          Code = "INVALID_RATES"
	CodeInvalidOffers         Code = "INVALID_OFFERS"

	// History / state errors
	CodeHistoryEntryNotFound Code = "HISTORY_ENTRY_NOT_FOUND"
	CodeStateReadFailed      Code = "STATE_READ_FAILED"
	CodeStateWriteFailed     Code = "STATE_WRITE_FAILED"

	// Share errors
	CodeClipboardFailed Code = "CLIPBOARD_FAILED"

	// Circuit breaker errors
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
