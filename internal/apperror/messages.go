package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	// Calculation errors
	CodeInvalidInvestment: "Investment amount must be a positive number",
	CodeInvalidRate:       "Exchange rate must be a positive number",
	CodeInvalidFee:        "Fee percentage must be in the range [0, 100)",

	// Market data provider errors
	CodeProviderRequestFailed: "Market data request failed",
	CodeProviderBadResponse:   "Market data response could not be parsed",
	CodeProviderRateLimited:   "Market data provider rate limit exceeded",
	CodeInvalidRates:          "Provider returned non-positive rates",
	CodeInvalidOffers:         "Provider returned an invalid offer list",

	// History / state errors
	CodeHistoryEntryNotFound: "History entry not found",
	CodeStateReadFailed:      "Failed to read persisted state",
	CodeStateWriteFailed:     "Failed to write persisted state",

	// Share errors
	CodeClipboardFailed: "Failed to copy to clipboard",

	// Circuit breaker errors
	CodeCircuitOpen: "Circuit breaker is open",
}
