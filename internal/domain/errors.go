package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that the directory has no usable record for an identifier.
	ErrNotFound = errors.New("not found")
	// ErrDirectoryUnavailable signals a transport failure or a non-success status from the directory.
	ErrDirectoryUnavailable = errors.New("directory unavailable")
	// ErrMalformedResponse signals a response body that does not have the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// Messages shown to the user verbatim.
const (
	MsgDetailFailed = "Failed to fetch brewery details."
	MsgSearchFailed = "Failed to fetch breweries."
)

// Failure carries a user-facing message alongside the underlying cause.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return fmt.Sprintf("%s: %v", f.Message, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// NewFailure wraps err with a user-facing message.
func NewFailure(message string, err error) error {
	return &Failure{Message: message, Err: err}
}

// MessageOf returns the user-facing message of err, or fallback when err is not a Failure.
func MessageOf(err error, fallback string) string {
	var f *Failure
	if errors.As(err, &f) && f.Message != "" {
		return f.Message
	}
	return fallback
}
