package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindNetwork    ErrorKind = "network"
	KindHTTPStatus ErrorKind = "http_status"
	KindOther      ErrorKind = "other"
)

// NetworkError means no response was received: dial failure, reset, timeout
// or cancelled context.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// HTTPStatusError is a response from the backend outside the 2xx range.
// Body holds the raw response so callers can inspect the backend's message.
type HTTPStatusError struct {
	Method string
	URL    string
	Status int
	Body   []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
}

func (e *HTTPStatusError) NotFound() bool { return e.Status == http.StatusNotFound }

func AsNetworkError(err error) (*NetworkError, bool) {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne, true
	}
	return nil, false
}

func AsHTTPStatusError(err error) (*HTTPStatusError, bool) {
	var se *HTTPStatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ClassifyError tags err so callers can branch without matching on messages.
func ClassifyError(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case isNetwork(err):
		return KindNetwork
	case isHTTPStatus(err):
		return KindHTTPStatus
	default:
		return KindOther
	}
}

func isNetwork(err error) bool {
	_, ok := AsNetworkError(err)
	return ok
}

func isHTTPStatus(err error) bool {
	_, ok := AsHTTPStatusError(err)
	return ok
}
