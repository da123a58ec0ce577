package errors

import "fmt"

// Error codes
const (
	CodeTransport         = "TRANSPORT_ERROR"
	CodeParse             = "PARSE_ERROR"
	CodeDetailUnavailable = "DETAIL_UNAVAILABLE"
	CodeValidation        = "VALIDATION_ERROR"
	CodeCache             = "CACHE_ERROR"
)

type DexError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *DexError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DexError) Unwrap() error {
	return e.Cause
}

// TransportError covers network failures and non-success upstream statuses.
// StatusCode is zero when no response was received.
type TransportError struct {
	*DexError
	URL string
}

func NewTransportError(message, url string, statusCode int, cause error) *TransportError {
	return &TransportError{
		DexError: &DexError{
			Message:    message,
			Code:       CodeTransport,
			StatusCode: statusCode,
			Context: map[string]any{
				"url": url,
			},
			Cause: cause,
		},
		URL: url,
	}
}

type ParseError struct {
	*DexError
	URL string
}

func NewParseError(message, url string, cause error) *ParseError {
	return &ParseError{
		DexError: &DexError{
			Message:    message,
			Code:       CodeParse,
			StatusCode: 502,
			Context: map[string]any{
				"url": url,
			},
			Cause: cause,
		},
		URL: url,
	}
}

// DetailUnavailableError is returned when the primary record for an id could
// not be fetched. The underlying transport or parse failure is kept as Cause.
type DetailUnavailableError struct {
	*DexError
	ID int
}

func NewDetailUnavailableError(id int, cause error) *DetailUnavailableError {
	return &DetailUnavailableError{
		DexError: &DexError{
			Message:    fmt.Sprintf("detail unavailable for #%d", id),
			Code:       CodeDetailUnavailable,
			StatusCode: 502,
			Context: map[string]any{
				"id": id,
			},
			Cause: cause,
		},
		ID: id,
	}
}

type ValidationError struct {
	*DexError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		DexError: &DexError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type CacheError struct {
	*DexError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		DexError: &DexError{
			Message:    message,
			Code:       CodeCache,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}
