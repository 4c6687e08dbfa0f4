package flexpay

import (
	"errors"
	"fmt"
)

// TransportError reports a failure to complete an HTTP round trip: a network
// error, a timeout, or a body that could not be parsed as JSON. It is never
// keyed to a gateway response code.
type TransportError struct {
	Op         string
	HTTPStatus int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("flexpay: %s: transport failure (status %d): %v", e.Op, e.HTTPStatus, e.Err)
	}
	return fmt.Sprintf("flexpay: %s: transport failure: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ResponseError is a well-formed gateway outcome that was not approved. The
// response code enumeration is the whole error taxonomy; HTTPStatus is kept
// for diagnostics only and carries no independent meaning.
type ResponseError struct {
	ResponseCode ResponseCode
	HTTPStatus   int
	Message      string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("flexpay: gateway returned %s (http %d): %s", e.ResponseCode, e.HTTPStatus, e.Message)
}

// ValidationError is raised by the client before any network call, for
// conditions it can determine statically.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "flexpay: " + e.Message
}

func IsTransportError(err error) (*TransportError, bool) {
	var transportErr *TransportError
	ok := errors.As(err, &transportErr)
	return transportErr, ok
}

func IsResponseError(err error) (*ResponseError, bool) {
	var responseErr *ResponseError
	ok := errors.As(err, &responseErr)
	return responseErr, ok
}

func IsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	ok := errors.As(err, &validationErr)
	return validationErr, ok
}
