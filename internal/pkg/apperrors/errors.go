package apperrors

import "errors"

// Common errors
var (
	// Validation errors
	ErrValidationFailed = errors.New("all fields are required")
	ErrBadRequest       = errors.New("bad request")

	// Course errors
	ErrCourseNotFound  = errors.New("course with given id does not exist")
	ErrCourseExists    = errors.New("course title already exists")
	ErrLectureNotFound = errors.New("lecture with given id does not exist")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")

	// Authorization errors
	ErrPermissionDenied     = errors.New("permission denied")
	ErrSubscriptionRequired = errors.New("please subscribe to access this route")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")

	// Upstream collaborator errors
	ErrUpstream = errors.New("upstream service failure")
)

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewUpstreamError wraps an upstream collaborator failure with its message
func NewUpstreamError(err error) error {
	if err == nil {
		return nil
	}
	return &CustomError{Err: ErrUpstream, Message: err.Error()}
}
