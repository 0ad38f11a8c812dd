package models

import "errors"

var (
	// ErrMissingFields is returned when a draft is missing a required field.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidTransition is returned for a status change the state machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidValue is returned when an enum field holds an unknown value.
	ErrInvalidValue = errors.New("invalid value")
)

// blank reports whether s is empty once surrounding whitespace is removed.
func blank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
