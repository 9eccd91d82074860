package errors

import (
	"errors"
	"fmt"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Kind classifies a failure for logging and message selection.
type Kind string

const (
	KindValidation  Kind = "ValidationError"
	KindRateLimit   Kind = "RateLimitError"
	KindTooFrequent Kind = "TooFrequentPostingError"
	KindDatabase    Kind = "DatabaseError"
	KindUpload      Kind = "UploadError"
	KindUnknown     Kind = "UnknownError"
)

// ErrTooFrequentPosting is the persistence-enforced per-client cadence
// violation (one post per 60s). Distinct from the generic rate limit:
// both throttle posting but carry different user-facing messages.
var ErrTooFrequentPosting = errors.New("posted too recently")

// ErrRateLimited is the generic sliding-window throttle rejection.
var ErrRateLimited = errors.New("rate limit exceeded")

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DatabaseError wraps a persistence failure that is not user-actionable.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

// Classify maps an error to its taxonomy kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case Is[*ValidationError](err):
		return KindValidation
	case errors.Is(err, ErrTooFrequentPosting):
		return KindTooFrequent
	case errors.Is(err, ErrRateLimited):
		return KindRateLimit
	case Is[*DatabaseError](err):
		return KindDatabase
	default:
		return KindUnknown
	}
}
