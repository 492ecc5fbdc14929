package random

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when a generator receives bounds it cannot
// sample from, such as min > max or a negative length.
var ErrInvalidRange = errors.New("invalid random range")

// RangeError describes the generator call that received invalid bounds.
type RangeError struct {
	// Op is the generator that failed (e.g., "String", "Integer").
	Op string

	// Min and Max are the bounds as passed by the caller.
	Min, Max any

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("random: %s: %s: [%v, %v]", e.Op, e.Details, e.Min, e.Max)
	}
	return fmt.Sprintf("random: %s: invalid range [%v, %v]", e.Op, e.Min, e.Max)
}

// Is reports whether target is ErrInvalidRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

func newRangeError(op string, min, max any, details string) *RangeError {
	return &RangeError{Op: op, Min: min, Max: max, Details: details}
}
