package webutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Public messages used when a handler supplies none.
const (
	msgBadRequest         = "Bad Request"
	msgNotFound           = "Resource not found"
	msgInternalServer     = "Internal Server Error"
	msgServiceUnavailable = "Service Unavailable"
)

// HTTPError carries a status code and the message shown to the client.
// The cause is logged by MakeHandler and never sent.
type HTTPError struct {
	cause   error
	Code    int
	Message string
}

func (he HTTPError) Error() string {
	return he.Message
}

func (he HTTPError) Unwrap() error {
	return he.cause
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

// NewHTTPError returns an HTTPError whose cause is its own message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{cause: errors.New(message), Code: code, Message: message}
}

// NewHTTPErrorWrap returns an HTTPError over cause.
func NewHTTPErrorWrap(code int, message string, cause error) *HTTPError {
	return &HTTPError{cause: cause, Code: code, Message: message}
}

func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, orDefault(message, msgBadRequest))
}

func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, orDefault(message, msgNotFound))
}

// ErrInternalServerWrap hides message from the client; it only reaches the log.
func ErrInternalServerWrap(message string, cause error) *HTTPError {
	return NewHTTPErrorWrap(http.StatusInternalServerError, msgInternalServer, fmt.Errorf("%s: %w", message, cause))
}

// ErrServiceUnavailableWrap reports a dependency of the dashboard that is not available.
func ErrServiceUnavailableWrap(message string, cause error) *HTTPError {
	return NewHTTPErrorWrap(http.StatusServiceUnavailable, orDefault(message, msgServiceUnavailable), cause)
}
