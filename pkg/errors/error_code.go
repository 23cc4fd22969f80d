package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidStrategy      ErrorCode = 102
	ErrCodeInvalidThreshold     ErrorCode = 103
	ErrCodeInvalidMarketData    ErrorCode = 104
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidInterval      ErrorCode = 110

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeMarketDataFetchFailed ErrorCode = 203
	ErrCodeBetaUnavailable       ErrorCode = 204

	// Computation errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300
	ErrCodeNonFiniteValue       ErrorCode = 302
	ErrCodeSeriesMisaligned     ErrorCode = 303
	ErrCodeZeroVariance         ErrorCode = 304

	// Backtest errors (600-699)
	ErrCodeBacktestStageFailed ErrorCode = 600
	ErrCodePersistenceFailed   ErrorCode = 601
	ErrCodeReportFailed        ErrorCode = 602
)

// Category groups error codes into the failure kinds callers react to.
type Category string

const (
	CategoryInvalidParameters Category = "invalid_parameters"
	CategoryInsufficientData  Category = "insufficient_data"
	CategoryDataUnavailable   Category = "data_unavailable"
	CategoryComputation       Category = "computation_error"
	CategoryUnknown           Category = "unknown"
)

// Category returns the category the code belongs to.
func (c ErrorCode) Category() Category {
	switch {
	case c == ErrCodeInsufficientData:
		return CategoryInsufficientData
	case c >= 100 && c < 200:
		return CategoryInvalidParameters
	case c >= 200 && c < 300:
		return CategoryDataUnavailable
	case c >= 300 && c < 400:
		return CategoryComputation
	default:
		return CategoryUnknown
	}
}
