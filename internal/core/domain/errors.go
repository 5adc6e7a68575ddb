package domain

import (
	"fmt"
)

// ValidationError reports a required payload field that was absent.
// The dispatcher relays its message to the sender as an error event.
type ValidationError struct {
	Event EventType
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Event, e.Field)
}

// ConflictError reports a call-state precondition failure.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ErrAlreadyInCall is returned when start-call names a caller or callee
// that already has a call record.
var ErrAlreadyInCall = &ConflictError{Message: "One of the users is already in a call"}
