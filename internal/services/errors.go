package services

import "errors"

// Standard service errors
var (
	// Data errors
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input provided")
	ErrInvalidFormat = errors.New("invalid format")

	// Storage errors
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrStoreCorrupted   = errors.New("store corrupted")

	// Service errors
	ErrServiceUnavailable = errors.New("service unavailable")
)

// IsRetryableError determines if an error should be retried
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, ErrServiceUnavailable)
}

// IsPermanentError determines if an error is permanent and should not be retried
func IsPermanentError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrStoreCorrupted)
}
