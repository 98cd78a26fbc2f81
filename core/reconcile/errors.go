package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedShape is returned when a payload matches no known account schema.
	ErrUnrecognizedShape = errors.New("unrecognized account shape")

	// ErrMalformedNumber is returned when a present numeric field cannot be decoded.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrEmptyAccountID is returned for rows without an account identity.
	ErrEmptyAccountID = errors.New("empty account id")
)

// NormalizeError wraps a normalization failure with the offending field.
type NormalizeError struct {
	// Field is the JSON path of the field that failed, empty for shape errors.
	Field string
	Err   error
}

func (e *NormalizeError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *NormalizeError) Unwrap() error { return e.Err }
