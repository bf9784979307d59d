package core

import (
	"errors"
	"fmt"
)

// ValidationError is a request that was rejected before touching the source
// or the store.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %v", e.Reason, e.Err)
	}
	return "invalid " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(reason string, err error) error {
	return &ValidationError{Reason: reason, Err: err}
}

func (sc *ServiceContext) validate(reason string, v any) error {
	if err := sc.Validate.Struct(v); err != nil {
		return invalid(reason, err)
	}
	return nil
}
