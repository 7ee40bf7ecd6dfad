package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no customer has the requested id.
var ErrNotFound = errors.New("customer not found")

// TransportError reports a failed call to the persistence backend. The cache
// treats it as "offline" and falls back to local data.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsValidation reports whether err is, or wraps, a validation failure.
func IsValidation(err error) bool {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single ValidationError
	return errors.As(err, &single)
}
