package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNegativeAmortization = errors.New("EMI too low: negative amortization")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidDate          = errors.New("invalid date")
	ErrValidationFailed     = errors.New("validation failed")
	ErrCacheMiss            = errors.New("cache miss")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeNegativeAmortization = "NEGATIVE_AMORTIZATION"
	ErrCodeInvalidRequest       = "INVALID_REQUEST"
	ErrCodeInvalidDate          = "INVALID_DATE"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// WrapNegativeAmortization reports an EMI that does not cover the first month's interest.
func WrapNegativeAmortization(emi, firstInterest string) *BusinessError {
	return NewBusinessError(
		ErrCodeNegativeAmortization,
		fmt.Sprintf("EMI %s does not cover first month interest %s", emi, firstInterest),
		ErrNegativeAmortization,
	)
}

func WrapInvalidRequest(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRequest,
		"request body could not be decoded",
		fmt.Errorf("%w: %v", ErrInvalidRequest, err),
	)
}

func WrapInvalidDate(field, value string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDate,
		fmt.Sprintf("%s %q is not a YYYY-MM-DD date", field, value),
		ErrInvalidDate,
	)
}

func WrapValidationFailed(count int) *BusinessError {
	return NewBusinessError(
		ErrCodeValidationFailed,
		fmt.Sprintf("%d field(s) failed validation", count),
		ErrValidationFailed,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// IsNegativeAmortization reports whether err carries the negative amortization failure.
func IsNegativeAmortization(err error) bool {
	return errors.Is(err, ErrNegativeAmortization)
}
