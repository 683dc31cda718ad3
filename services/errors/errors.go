package errors

import "fmt"

// ServiceError is the error type raised by the service layer. Controllers
// inspect the code to pick a response status.
type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

type ErrorCode int

const (
	ErrDatabase ErrorCode = iota + 1000
	ErrNotFound
	ErrDuplicate

	ErrInvalidInput
	ErrUnauthorized
	ErrForbidden

	ErrInternal
)

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// New creates a new service error.
func New(code ErrorCode, message string) error {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error.
func Wrap(code ErrorCode, message string, err error) error {
	return &ServiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsServiceError reports whether err is a ServiceError.
func IsServiceError(err error) bool {
	_, ok := err.(*ServiceError)
	return ok
}

// GetErrorCode returns the code of a service error, or ErrInternal for
// anything else.
func GetErrorCode(err error) ErrorCode {
	if se, ok := err.(*ServiceError); ok {
		return se.Code
	}
	return ErrInternal
}

// GetMessage returns the client-safe message of a service error. Unknown
// errors get a generic message so internals never leak to the client.
func GetMessage(err error) string {
	if se, ok := err.(*ServiceError); ok {
		return se.Message
	}
	return "Internal server error"
}
