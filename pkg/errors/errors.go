package errors

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCancelled indicates that an operation was cancelled
	ErrCancelled = errors.New("operation cancelled")

	// ErrRateLimited indicates that the rate limit has been exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrExternalService indicates an error with an external service
	ErrExternalService = errors.New("external service error")

	// ErrDatabaseOperation indicates a database operation failure
	ErrDatabaseOperation = errors.New("database operation failed")

	// ErrUnknownSource indicates a feed source key that is not in the registry
	ErrUnknownSource = errors.New("unknown feed source")

	// ErrSourceDisabled indicates a feed source that is disabled in the registry
	ErrSourceDisabled = errors.New("feed source disabled")

	// ErrInvalidReliability indicates a reliability score outside [0, 1]
	ErrInvalidReliability = errors.New("reliability score must be between 0.0 and 1.0")
)

// ServiceError represents a service-level error with additional context
type ServiceError struct {
	Op      string                 // Operation that failed
	Service string                 // Service where the error occurred
	Err     error                  // Underlying error
	Context map[string]interface{} // Additional context
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if len(e.Context) > 0 {
		return fmt.Sprintf("%s.%s: %v (context: %v)", e.Service, e.Op, e.Err, e.Context)
	}
	return fmt.Sprintf("%s.%s: %v", e.Service, e.Op, e.Err)
}

// Unwrap allows errors.Is and errors.As to work
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}

// WithContext adds context to a ServiceError
func (e *ServiceError) WithContext(key string, value interface{}) *ServiceError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnknownSource checks if an error refers to a source missing from the registry
func IsUnknownSource(err error) bool {
	return errors.Is(err, ErrUnknownSource)
}

// IsSourceDisabled checks if an error refers to a disabled source
func IsSourceDisabled(err error) bool {
	return errors.Is(err, ErrSourceDisabled)
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrExternalService)
}
