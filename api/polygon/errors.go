package polygon

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// TransportError means the aggregates request did not complete: network,
// DNS, TLS, timeout, or a non-2xx status from the source.
type TransportError struct {
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("polygon: %s returned status %d: %s", e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("polygon: request to %s failed: %v", e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError means the source answered but the payload is not the expected
// aggregates shape.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("polygon: %s: %v", e.Reason, e.Err)
	}
	return "polygon: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// redact drops the query string from errors http.Client produces, it carries the api key.
func redact(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	u := ue.URL
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return &url.Error{Op: ue.Op, URL: u, Err: ue.Err}
}
